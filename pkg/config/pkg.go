package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFrom reads, parses, and validates the configuration at path. Settings
// absent from the file keep their defaults.
func LoadFrom(path string) (Options, error) {
	opts := NewOptions()

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return opts, fmt.Errorf("config: read file error: %w", err)
	}

	opts, err = parseContent(content)
	if err != nil {
		return opts, err
	}

	if err := Validate(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

func parseContent(content []byte) (Options, error) {
	result := NewOptions()

	err := yaml.Unmarshal(content, &result)
	if err != nil {
		return result, fmt.Errorf("config: yaml unmarshal failed: %w", err)
	}

	return result, nil
}
