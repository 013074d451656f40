// Package tokens reads design-token files (JSON, YAML, or CSS custom
// property sheets) into the flat custom-property map the resolver
// consumes. Nested token groups flatten with dashes, so
// {"color":{"primary":"#331188"}} becomes --color-primary; a nested
// {"value": ...} object follows the common design-token convention and
// contributes its value.
package tokens

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"huelint/internal/cssnorm"
)

// ReadFile loads one token file, dispatching on extension: .json,
// .yaml/.yml, or .css.
func ReadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(data)
	case ".yaml", ".yml":
		return ReadYAML(data)
	case ".css":
		return ReadCSS(data)
	}
	return nil, fmt.Errorf("unsupported token file format %q", filepath.Ext(path))
}

// ReadJSON flattens a JSON token document.
func ReadJSON(data []byte) (map[string]string, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("token JSON: %w", err)
	}
	out := map[string]string{}
	flatten("", root, out)
	return out, nil
}

// ReadYAML flattens a YAML token document.
func ReadYAML(data []byte) (map[string]string, error) {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("token YAML: %w", err)
	}
	out := map[string]string{}
	flatten("", root, out)
	return out, nil
}

// ReadCSS collects the custom properties declared in a stylesheet,
// ignoring everything else in it.
func ReadCSS(data []byte) (map[string]string, error) {
	_, props, err := cssnorm.Normalize(string(data))
	if err != nil {
		return nil, err
	}
	return props, nil
}

// Merge combines token maps in ascending priority order.
func Merge(maps ...map[string]string) map[string]string {
	return cssnorm.MergeProperties(maps...)
}

func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		// token-object convention: {value: x} binds x to the group name
		if val, ok := v["value"]; ok && prefix != "" {
			if s, ok := scalar(val); ok {
				out[propName(prefix)] = s
				return
			}
		}
		for k, child := range v {
			key := strings.TrimSpace(k)
			if key == "" {
				continue
			}
			if prefix != "" {
				key = prefix + "-" + key
			}
			flatten(key, child, out)
		}
	default:
		if prefix == "" {
			return
		}
		if s, ok := scalar(v); ok {
			out[propName(prefix)] = s
		}
	}
}

func scalar(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), true
	case int:
		return fmt.Sprintf("%d", s), true
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", s), "0"), "."), true
	case bool:
		return fmt.Sprintf("%t", s), true
	}
	return "", false
}

func propName(path string) string {
	if strings.HasPrefix(path, "--") {
		return path
	}
	return "--" + path
}
