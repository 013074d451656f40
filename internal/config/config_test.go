package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `level: aaa
format: json
tokens:
  - tokens/colors.json
stylesheets:
  - /abs/base.css
  - theme.css
ignore:
  colors:
    - "#ff00ff"
  pairs:
    - ["#111111", "#222222"]
  selectors:
    - ".brand-*"
`

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := writeConfig(t, dir, "huelint.yml", sampleConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != "aaa" || cfg.Format != "json" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if want := filepath.Join(dir, "tokens", "colors.json"); len(cfg.Tokens) != 1 || cfg.Tokens[0] != want {
		t.Fatalf("tokens = %v", cfg.Tokens)
	}
	// absolute paths pass through, relative ones anchor to the config dir
	if cfg.Stylesheets[0] != "/abs/base.css" {
		t.Fatalf("stylesheets = %v", cfg.Stylesheets)
	}
	if want := filepath.Join(dir, "theme.css"); cfg.Stylesheets[1] != want {
		t.Fatalf("stylesheets = %v", cfg.Stylesheets)
	}

	ign := cfg.IgnoreConfig()
	if len(ign.Colors) != 1 || len(ign.Pairs) != 1 || len(ign.Selectors) != 1 {
		t.Fatalf("ignore = %+v", ign)
	}
	if ign.Pairs[0] != [2]string{"#111111", "#222222"} {
		t.Fatalf("pairs = %+v", ign.Pairs)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	bad := writeConfig(t, dir, "bad-level.yml", "level: aab\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("bad level accepted")
	}
	bad = writeConfig(t, dir, "bad-format.yml", "format: xml\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("bad format accepted")
	}
	bad = writeConfig(t, dir, "not-yaml.yml", "{{{\n")
	if _, err := Load(bad); err == nil {
		t.Fatal("malformed yaml accepted")
	}
	if _, err := Load(filepath.Join(dir, "missing.yml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		writeConfig(t, dir, ".huelint.yml", "level: aa\n")
		cfg, err := Discover(dir)
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Level != "aa" {
			t.Fatalf("cfg = %+v", cfg)
		}
	})

	t.Run("absent_yields_empty", func(t *testing.T) {
		t.Parallel()
		cfg, err := Discover(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Level != "" || len(cfg.Tokens) != 0 {
			t.Fatalf("cfg = %+v", cfg)
		}
	})
}
