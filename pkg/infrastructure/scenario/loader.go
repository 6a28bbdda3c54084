// Package scenario reads ration scenarios from YAML, layered over embedded defaults.
package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/npcunard/herdfeed/pkg/application/dto"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns a fresh scenario holding the embedded default values
func Defaults() (dto.Scenario, error) {
	var sc dto.Scenario
	if err := yaml.Unmarshal(defaultsYAML, &sc); err != nil {
		return dto.Scenario{}, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	return sc, nil
}

// MustDefaults is like Defaults but panics on error.
func MustDefaults() dto.Scenario {
	sc, err := Defaults()
	if err != nil {
		panic(fmt.Sprintf("scenario: %v", err))
	}
	return sc
}

// Load reads a scenario file over base. If path is empty, base is
// returned unchanged.
func Load(base dto.Scenario, path string) (dto.Scenario, error) {
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return dto.Scenario{}, fmt.Errorf("reading scenario file: %w", err)
	}
	return Parse(base, data)
}

// Parse decodes YAML over a base scenario. Only fields present in data are
// overwritten; a feeds list replaces the base list, and "herd: null" drops
// the herd context.
func Parse(base dto.Scenario, data []byte) (dto.Scenario, error) {
	sc := base
	if base.Herd != nil {
		herd := *base.Herd
		sc.Herd = &herd
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return dto.Scenario{}, fmt.Errorf("parsing scenario file: %w", err)
	}
	return sc, nil
}

// Marshal renders a scenario as YAML
func Marshal(sc dto.Scenario) ([]byte, error) {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}
	return data, nil
}
