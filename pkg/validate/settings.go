package validate

import (
	"slices"
	"strings"

	"github.com/Koagonzalo/XcodeGen/pkg/spec"
)

// checkSettings validates one settings block: its group inclusions, its
// per-config override keys, and the shape heuristic for build settings
// that look like misplaced per-config overrides.
func (v *validator) checkSettings(s spec.Settings, where string) {
	if s.IsEmpty() {
		return
	}
	for _, group := range s.Groups {
		v.resolveGroup(group, where+".groups")
	}

	if !v.disabled(spec.MissingConfigs) {
		for _, key := range spec.SortedKeys(s.ConfigSettings) {
			if !v.matchesConfig(key) {
				e := errorf(KindInvalidBuildSettingConfig, where+".configs."+key,
					"settings reference config %q which does not match any declared config", key)
				e.Config = key
				v.add(e)
			}
		}
	}

	// Fires only when every key names a config.
	if n := len(s.BuildSettings); n > 0 && n == len(v.p.Configs) {
		all := true
		for key := range s.BuildSettings {
			if !v.matchesConfig(key) {
				all = false
				break
			}
		}
		if all {
			v.add(errorf(KindInvalidPerConfigSettings, where,
				"settings keys all name configs; per-config settings belong under `configs`"))
		}
	}
}

// matchesConfig reports whether key is a case-insensitive substring of
// any declared config name.
func (v *validator) matchesConfig(key string) bool {
	lower := strings.ToLower(key)
	for _, c := range v.p.Configs {
		if strings.Contains(strings.ToLower(c.Name), lower) {
			return true
		}
	}
	return false
}

// resolveGroup validates a named settings group at most once per pass.
// Re-entering a group that is still being expanded is an inclusion cycle.
func (v *validator) resolveGroup(name, from string) {
	group, ok := v.p.SettingGroups[name]
	if !ok {
		if !v.unknownGroups[name] {
			v.unknownGroups[name] = true
			e := errorf(KindInvalidSettingsGroup, from, "settings group %q does not exist", name)
			e.Reference = name
			v.add(e)
		}
		return
	}
	if i := slices.Index(v.stack, name); i >= 0 {
		cycle := append(slices.Clone(v.stack[i:]), name)
		e := errorf(KindInvalidSettingsGroupCycle, "settingGroups."+name,
			"settings groups include each other: %s", strings.Join(cycle, " -> "))
		e.Reference = name
		v.add(e)
		return
	}
	if v.resolved[name] {
		return
	}

	v.stack = append(v.stack, name)
	v.checkSettings(group, "settingGroups."+name)
	v.stack = v.stack[:len(v.stack)-1]
	v.resolved[name] = true
}
