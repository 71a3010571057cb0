// Package preset loads named dice-macro presets ("pb" -> "1d20+5") from a
// user's preset directories.
package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is one named dice macro.
type Preset struct {
	Name        string `yaml:"name"`
	Expr        string `yaml:"expr"`
	Description string `yaml:"description,omitempty"`
}

// Loader reads presets from a fallback hierarchy of directories: the first
// directory holding a given file wins, same search order the rest of this
// module's YAML-backed config uses.
type Loader struct {
	dirs []string
}

// NewLoader builds a Loader that searches dirs in order.
func NewLoader(dirs []string) *Loader {
	return &Loader{dirs: dirs}
}

// Load finds and decodes the named preset, searching dirs in order.
func (l *Loader) Load(name string) (*Preset, error) {
	ref := filepath.Join("presets", fmt.Sprintf("%s.yaml", slug(name)))
	var p Preset
	if err := l.decode(ref, &p); err != nil {
		return nil, fmt.Errorf("preset %q: %w", name, err)
	}
	if p.Name == "" {
		p.Name = name
	}
	return &p, nil
}

// List returns every preset in the first directory of dirs that has a
// presets/ subdirectory, sorted by name; later directories are not read.
// Used for REPL autocomplete.
func (l *Loader) List() ([]*Preset, error) {
	for _, dir := range l.dirs {
		presetsDir := filepath.Join(dir, "presets")
		entries, err := os.ReadDir(presetsDir)
		if err != nil {
			continue
		}
		var out []*Preset
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
				continue
			}
			var p Preset
			f, err := os.Open(filepath.Join(presetsDir, e.Name()))
			if err != nil {
				continue
			}
			err = yaml.NewDecoder(f).Decode(&p)
			f.Close()
			if err != nil {
				continue
			}
			if p.Name == "" {
				p.Name = strings.TrimSuffix(e.Name(), ".yaml")
			}
			out = append(out, &p)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return out, nil
	}
	return nil, nil
}

func (l *Loader) decode(ref string, target any) error {
	for _, dir := range l.dirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(target); err != nil {
			return fmt.Errorf("failed to decode yaml %s: %w", ref, err)
		}
		return nil
	}
	return fmt.Errorf("could not find %s in any preset directory", ref)
}

func slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
