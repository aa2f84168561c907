package dungeon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlPoolFile is the top-level YAML structure for dungeon files.
type yamlPoolFile struct {
	Version string           `yaml:"version"`
	Cards   []CardDefinition `yaml:"cards"`
}

// LoadFromFile reads and validates a dungeon pool YAML file.
//
// Precondition: path must point to a valid YAML dungeon file.
// Postcondition: Returns a validated Pool or a non-nil error.
func LoadFromFile(path string) (*Pool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dungeon file %s: %w", path, err)
	}
	pool, err := LoadFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading dungeon from %s: %w", path, err)
	}
	return pool, nil
}

// LoadFromBytes parses and validates a dungeon pool from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the dungeon schema.
// Postcondition: Returns a validated Pool or a non-nil error.
func LoadFromBytes(data []byte) (*Pool, error) {
	var file yamlPoolFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing dungeon YAML: %w", err)
	}

	pool := &Pool{Version: file.Version, Cards: file.Cards}
	if pool.Version == "" {
		pool.Version = "1.0"
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("validating dungeon: %w", err)
	}
	return pool, nil
}
