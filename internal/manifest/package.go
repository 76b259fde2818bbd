package manifest

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// baseDependencies is the fixed dependency set of every generated app.
var baseDependencies = map[string]string{
	"bluebird":      "~3.5.1",
	"body-parser":   "~1.18.2",
	"cookie-parser": "~1.4.3",
	"cors":          "~2.8.4",
	"debug":         "~2.6.9",
	"express":       "~4.15.5",
	"mongoose":      "~4.13.0",
	"morgan":        "~1.9.0",
	"serve-favicon": "~2.4.5",
}

// viewEngines maps each supported --view value to its npm dependency.
var viewEngines = map[string]struct{ pkg, version string }{
	"ejs":  {"ejs", "~2.5.7"},
	"hbs":  {"hbs", "~4.0.1"},
	"hjs":  {"hjs", "~0.0.6"},
	"jade": {"jade", "~1.11.0"},
	"pug":  {"pug", "2.0.0-beta11"},
	"twig": {"twig", "~0.10.3"},
	"vash": {"vash", "~0.12.2"},
}

// ViewEngines returns the supported view engine names, sorted.
func ViewEngines() []string {
	names := make([]string, 0, len(viewEngines))
	for name := range viewEngines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsViewEngine reports whether name is a supported view engine.
func IsViewEngine(name string) bool {
	_, ok := viewEngines[name]
	return ok
}

// Package is the package.json of a generated app.
type Package struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Private      bool              `json:"private"`
	Scripts      map[string]string `json:"scripts"`
	Dependencies map[string]string `json:"dependencies"`
}

// New returns the manifest for an app named name using the view engine view.
func New(name, view string) (*Package, error) {
	engine, ok := viewEngines[view]
	if !ok {
		return nil, fmt.Errorf("unsupported view engine %q", view)
	}

	deps := make(map[string]string, len(baseDependencies)+1)
	for k, v := range baseDependencies {
		deps[k] = v
	}
	deps[engine.pkg] = engine.version

	return &Package{
		Name:    name,
		Version: "0.0.0",
		Private: true,
		Scripts: map[string]string{
			"start": "node ./bin/www",
		},
		Dependencies: deps,
	}, nil
}

// CheckRanges verifies that every dependency range parses as a semver
// constraint.
func (p *Package) CheckRanges() error {
	names := make([]string, 0, len(p.Dependencies))
	for name := range p.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := semver.NewConstraint(p.Dependencies[name]); err != nil {
			return fmt.Errorf("dependency %s has invalid range %q: %w", name, p.Dependencies[name], err)
		}
	}
	return nil
}

// Marshal serializes the manifest the way npm writes it: two-space indent,
// dependencies sorted by name, trailing newline.
func (p *Package) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling package.json: %w", err)
	}
	return append(data, '\n'), nil
}

// Build checks and serializes the manifest, returning an error if any range
// or schema rule is violated.
func (p *Package) Build() ([]byte, error) {
	if err := p.CheckRanges(); err != nil {
		return nil, err
	}
	data, err := p.Marshal()
	if err != nil {
		return nil, err
	}
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("generated package.json is invalid: %s", result.Summary())
	}
	return data, nil
}
