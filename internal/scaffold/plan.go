package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Step sources.
const (
	SourceTemplate = "template"
	SourceManifest = "manifest"
)

// DefaultFileMode is applied to generated files that do not declare a mode.
const DefaultFileMode fs.FileMode = 0666

// DirMode is applied to every generated directory.
const DirMode fs.FileMode = 0755

// FileStep writes one file.
type FileStep struct {
	Source   string `yaml:"source"`
	Template string `yaml:"template"`
	Dest     string `yaml:"dest"`
	RawMode  string `yaml:"mode"`

	Mode fs.FileMode `yaml:"-"`
}

// Branch is an independent unit of work. Branches have no ordering relative
// to each other; within a branch Dir is created before any file is written.
type Branch struct {
	Name  string     `yaml:"name"`
	Dir   string     `yaml:"dir"`
	When  string     `yaml:"when"`
	Files []FileStep `yaml:"files"`
}

// Plan is the ordered list of branches to run under the root directory.
type Plan struct {
	Branches []Branch `yaml:"branches"`
}

// LoadPlan reads the plan named name from fsys and keeps only the branches
// whose condition is enabled in features.
func LoadPlan(fsys fs.FS, name string, features map[string]bool) (*Plan, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading scaffold plan %s: %w", name, err)
	}

	var raw Plan
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing scaffold plan %s: %w", name, err)
	}

	plan := &Plan{}
	for _, b := range raw.Branches {
		if b.When != "" && !features[b.When] {
			continue
		}
		if err := b.normalize(); err != nil {
			return nil, fmt.Errorf("scaffold plan %s: %w", name, err)
		}
		plan.Branches = append(plan.Branches, b)
	}
	return plan, nil
}

func (b *Branch) normalize() error {
	if b.Name == "" {
		return fmt.Errorf("branch without a name")
	}
	for i := range b.Files {
		f := &b.Files[i]
		if f.Source == "" {
			f.Source = SourceTemplate
		}
		switch f.Source {
		case SourceTemplate:
			if f.Template == "" {
				return fmt.Errorf("branch %s: step %s has no template", b.Name, f.Dest)
			}
		case SourceManifest:
		default:
			return fmt.Errorf("branch %s: unknown source %q", b.Name, f.Source)
		}

		if f.Dest == "" {
			return fmt.Errorf("branch %s: step without dest", b.Name)
		}
		// A file must live directly in its branch directory so the directory
		// step is always its parent.
		parent := path.Dir(f.Dest)
		if parent == "." {
			parent = ""
		}
		if parent != b.Dir {
			return fmt.Errorf("branch %s: %s is outside %q", b.Name, f.Dest, b.Dir)
		}

		f.Mode = DefaultFileMode
		if f.RawMode != "" {
			m, err := strconv.ParseUint(f.RawMode, 8, 32)
			if err != nil {
				return fmt.Errorf("branch %s: invalid mode %q for %s", b.Name, f.RawMode, f.Dest)
			}
			f.Mode = fs.FileMode(m)
		}
	}
	return nil
}

// Dirs returns the branch directories in plan order.
func (p *Plan) Dirs() []string {
	var dirs []string
	for _, b := range p.Branches {
		if b.Dir != "" {
			dirs = append(dirs, b.Dir)
		}
	}
	return dirs
}

// Files returns every file destination in plan order.
func (p *Plan) Files() []string {
	var files []string
	for _, b := range p.Branches {
		for _, f := range b.Files {
			files = append(files, f.Dest)
		}
	}
	return files
}
