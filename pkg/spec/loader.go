package spec

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// document is the on-disk shape of a project spec. Named entities are
// keyed by name and flattened into ordered slices by project().
type document struct {
	Name              string                      `yaml:"name"`
	Options           Options                     `yaml:"options,omitempty"`
	Configs           map[string]ConfigType       `yaml:"configs,omitempty"`
	Settings          Settings                    `yaml:"settings,omitempty"`
	SettingGroups     map[string]Settings         `yaml:"settingGroups,omitempty"`
	Packages          map[string]Package          `yaml:"packages,omitempty"`
	ConfigFiles       map[string]string           `yaml:"configFiles,omitempty"`
	FileGroups        []string                    `yaml:"fileGroups,omitempty"`
	Targets           map[string]Target           `yaml:"targets,omitempty"`
	AggregateTargets  map[string]AggregateTarget  `yaml:"aggregateTargets,omitempty"`
	ProjectReferences map[string]ProjectReference `yaml:"projectReferences,omitempty"`
	Schemes           map[string]Scheme           `yaml:"schemes,omitempty"`
}

// DefaultConfigs are used when a document declares no configs.
var DefaultConfigs = []Config{
	{Name: "Debug", Type: ConfigDebug},
	{Name: "Release", Type: ConfigRelease},
}

// LoadFile reads and parses a project spec. The project's base path is
// the file's directory.
func LoadFile(path string) (*Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project spec: %w", err)
	}
	defer f.Close()
	p, err := Load(f)
	if err != nil {
		return nil, err
	}
	p.BasePath = filepath.Dir(path)
	return p, nil
}

// Load parses a project spec from r. Unknown top-level keys are rejected.
// Keys inside targets, options and other entities that the model does not
// cover are ignored. BasePath is left empty.
func Load(r io.Reader) (*Project, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode project spec: %w", err)
	}
	if err := checkTopLevelKeys(&root); err != nil {
		return nil, fmt.Errorf("decode project spec: %w", err)
	}

	var doc document
	if err := root.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode project spec: %w", err)
	}
	return doc.project(), nil
}

// topLevelKeys is the set of yaml names declared on document.
var topLevelKeys = func() map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeFor[document]()
	for i := range t.NumField() {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		keys[name] = true
	}
	return keys
}()

func checkTopLevelKeys(root *yaml.Node) error {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil // Decode reports the type mismatch
	}
	var errs []error
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if !topLevelKeys[k.Value] {
			errs = append(errs, fmt.Errorf("line %d: unknown top-level field %q", k.Line, k.Value))
		}
	}
	return errors.Join(errs...)
}

func (d *document) project() *Project {
	p := &Project{
		Name:          d.Name,
		Options:       d.Options,
		Settings:      d.Settings,
		SettingGroups: d.SettingGroups,
		Packages:      d.Packages,
		ConfigFiles:   d.ConfigFiles,
		FileGroups:    d.FileGroups,
	}

	if len(d.Configs) == 0 {
		p.Configs = append([]Config(nil), DefaultConfigs...)
	}
	for _, name := range SortedKeys(d.Configs) {
		p.Configs = append(p.Configs, Config{Name: name, Type: d.Configs[name]})
	}
	for _, name := range SortedKeys(d.Targets) {
		t := d.Targets[name]
		t.Name = name
		p.Targets = append(p.Targets, t)
	}
	for _, name := range SortedKeys(d.AggregateTargets) {
		t := d.AggregateTargets[name]
		t.Name = name
		p.AggregateTargets = append(p.AggregateTargets, t)
	}
	for _, name := range SortedKeys(d.ProjectReferences) {
		r := d.ProjectReferences[name]
		r.Name = name
		p.ProjectReferences = append(p.ProjectReferences, r)
	}
	for _, name := range SortedKeys(d.Schemes) {
		s := d.Schemes[name]
		s.Name = name
		p.Schemes = append(p.Schemes, s)
	}
	return p
}
