package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Settings is a block of build settings. It may include named setting
// groups and carry per-configuration overrides, each itself a Settings
// block.
type Settings struct {
	BuildSettings  map[string]any      `json:"base,omitempty"`
	Groups         []string            `json:"groups,omitempty"`
	ConfigSettings map[string]Settings `json:"configs,omitempty"`
}

// IsEmpty reports whether the block carries nothing at all.
func (s Settings) IsEmpty() bool {
	return len(s.BuildSettings) == 0 && len(s.Groups) == 0 && len(s.ConfigSettings) == 0
}

// UnmarshalYAML accepts either a flat map of build settings or the
// grouped form with base, groups and configs keys.
func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: settings must be a mapping", value.Line)
	}
	if !isGroupedSettings(value) {
		return value.Decode(&s.BuildSettings)
	}
	var raw struct {
		Base    map[string]any      `yaml:"base"`
		Groups  []string            `yaml:"groups"`
		Configs map[string]Settings `yaml:"configs"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.BuildSettings = raw.Base
	s.Groups = raw.Groups
	s.ConfigSettings = raw.Configs
	return nil
}

func isGroupedSettings(n *yaml.Node) bool {
	for i := 0; i+1 < len(n.Content); i += 2 {
		switch n.Content[i].Value {
		case "base", "groups", "configs":
			return true
		}
	}
	return false
}
