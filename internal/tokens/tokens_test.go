package tokens

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadJSON(t *testing.T) {
	t.Parallel()
	const doc = `{
		"color": {
			"primary": "#331188",
			"muted": {"value": "#666666"}
		},
		"--already-prefixed": "10px",
		"weight": 700
	}`
	got, err := ReadJSON([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"--color-primary":   "#331188",
		"--color-muted":     "#666666",
		"--already-prefixed": "10px",
		"--weight":          "700",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, expected %q (all: %+v)", k, got[k], v, got)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("got %d properties: %+v", len(got), got)
	}
}

func TestReadYAML(t *testing.T) {
	t.Parallel()
	const doc = `
color:
  primary: "#331188"
  on-dark:
    value: "#f9fafb"
spacing: 4
`
	got, err := ReadYAML([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if got["--color-primary"] != "#331188" {
		t.Fatalf("props = %+v", got)
	}
	if got["--color-on-dark"] != "#f9fafb" {
		t.Fatalf("props = %+v", got)
	}
	if got["--spacing"] != "4" {
		t.Fatalf("props = %+v", got)
	}
}

func TestReadCSS(t *testing.T) {
	t.Parallel()
	got, err := ReadCSS([]byte(`:root { --brand: #123456; color: red } .theme { --accent: hsl(200, 50%, 40%) }`))
	if err != nil {
		t.Fatal(err)
	}
	if got["--brand"] != "#123456" || got["--accent"] != "hsl(200, 50%, 40%)" {
		t.Fatalf("props = %+v", got)
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tokens.json")
	if err := os.WriteFile(jsonPath, []byte(`{"fg": "#111111"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if got["--fg"] != "#111111" {
		t.Fatalf("props = %+v", got)
	}

	if _, err := ReadFile(filepath.Join(dir, "tokens.toml")); err == nil {
		t.Fatal("unsupported extension accepted")
	}
	if _, err := ReadFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestMergePriority(t *testing.T) {
	t.Parallel()
	got := Merge(
		map[string]string{"--a": "low", "--b": "low"},
		map[string]string{"--b": "high"},
	)
	if got["--a"] != "low" || got["--b"] != "high" {
		t.Fatalf("merged = %+v", got)
	}
}
