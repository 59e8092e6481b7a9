package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadValues reads a YAML (or JSON) mapping from path, or from stdin when
// path is "-". An empty path yields an empty map.
func loadValues(stdin io.Reader, path string) (map[string]any, error) {
	values := make(map[string]any)
	if path == "" {
		return values, nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}

	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	if values == nil {
		values = make(map[string]any)
	}
	return values, nil
}

// applySets parses name=value pairs into values. The value is read as a YAML
// scalar or flow sequence, so "3" is a number and "[a, b]" a list; anything
// that does not parse stays a plain string.
func applySets(values map[string]any, sets []string) error {
	for _, s := range sets {
		name, raw, ok := strings.Cut(s, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid --set %q: expected name=value", s)
		}
		values[name] = parseScalar(raw)
	}
	return nil
}

func parseScalar(raw string) any {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	if _, isMap := v.(map[string]any); isMap {
		return raw
	}
	return v
}
