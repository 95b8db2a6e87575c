package policy

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads a release policy from a YAML file. Fields left unset in
// the file keep their default values.
func LoadFromFile(path string) (*ReleasePolicy, error) {
	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads a release policy from YAML bytes.
func LoadFromBytes(data []byte) (*ReleasePolicy, error) {
	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse policy file: %w", err)
	}
	return p, nil
}

// SaveToFile saves a release policy to a YAML file.
func SaveToFile(p *ReleasePolicy, path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal policy: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write policy file: %w", err)
	}

	return nil
}
