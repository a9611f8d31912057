package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keyAPI     = "api"
	keyCache   = "cache"
	keyLogging = "logging"
	keyUI      = "ui"
)

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged; unknown
// keys are ignored.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]yaml.Node
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	for key, node := range overlay {
		if err = unmarshalSection(target, key, &node); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection replaces one section of target with the decoded node.
func unmarshalSection(target *Config, key string, node *yaml.Node) error {
	switch key {
	case keyAPI:
		var section APIConfig
		if err := node.Decode(&section); err != nil {
			return err
		}
		target.API = section
	case keyCache:
		var section CacheConfig
		if err := node.Decode(&section); err != nil {
			return err
		}
		target.Cache = section
	case keyLogging:
		var section LoggingConfig
		if err := node.Decode(&section); err != nil {
			return err
		}
		target.Logging = section
	case keyUI:
		var section UIConfig
		if err := node.Decode(&section); err != nil {
			return err
		}
		target.UI = section
	}
	return nil
}
