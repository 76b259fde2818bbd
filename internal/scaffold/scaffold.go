package scaffold

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/expressapi-labs/express-api/internal/manifest"
	"github.com/expressapi-labs/express-api/internal/plog"
	"github.com/expressapi-labs/express-api/internal/render"
)

// PlanFile is the plan resource name inside the template root.
const PlanFile = "plan.yaml"

// Options configures one generation run.
type Options struct {
	Dest     string          // destination directory as given by the user
	AppName  string          // sanitized app name
	View     string          // view engine, e.g. "jade"
	Features map[string]bool // enables conditional branches, e.g. "git"

	Templates fs.FS    // template root holding plan.yaml; defaults to the embedded one
	Reporter  Reporter // receives one call per created path

	// OnComplete runs exactly once, after every branch succeeded.
	OnComplete func()
}

// Result holds the outcome of a generation run.
type Result struct {
	Dest    string
	AppName string
	Planned []string // every directory and file the plan targets
	Created []string // what was actually created, in creation order
}

// Missing returns planned paths that were not created.
func (r *Result) Missing() []string {
	done := make(map[string]bool, len(r.Created))
	for _, p := range r.Created {
		done[p] = true
	}
	var missing []string
	for _, p := range r.Planned {
		if !done[p] {
			missing = append(missing, p)
		}
	}
	return missing
}

// Generate scaffolds a new app at opts.Dest. On failure the returned Result
// still lists what was created so the caller can report a partial tree.
func Generate(opts Options) (*Result, error) {
	templates := opts.Templates
	if templates == nil {
		templates = render.Templates
	}

	plan, err := LoadPlan(templates, PlanFile, opts.Features)
	if err != nil {
		return nil, err
	}

	// Build the manifest up front: an invalid one must fail before anything
	// touches the disk.
	pkg, err := manifest.New(opts.AppName, opts.View)
	if err != nil {
		return nil, err
	}
	pkgJSON, err := pkg.Build()
	if err != nil {
		return nil, err
	}

	result := &Result{
		Dest:    opts.Dest,
		AppName: opts.AppName,
		Planned: plannedPaths(opts.Dest, plan),
	}

	s := NewScaffolder(opts.Reporter)
	renderer := render.New(templates)
	locals := render.Locals{
		"name": opts.AppName,
		"view": opts.View,
	}

	if err := s.EnsureDirectory(opts.Dest, DirMode); err != nil {
		result.Created = s.Created()
		return result, err
	}

	tracker := NewTracker(opts.OnComplete)
	for _, b := range plan.Branches {
		tracker.Go(b.Name, func() error {
			return runBranch(s, renderer, locals, pkgJSON, opts.Dest, b)
		})
	}

	err = tracker.Wait()
	result.Created = s.Created()
	if err != nil {
		return result, fmt.Errorf("generating %s: %w", opts.Dest, err)
	}
	plog.Debug("scaffold complete", "dest", opts.Dest, "created", len(result.Created))
	return result, nil
}

func runBranch(s *Scaffolder, r *render.Renderer, locals render.Locals, pkgJSON []byte, dest string, b Branch) error {
	if b.Dir != "" {
		if err := s.EnsureDirectory(join(dest, b.Dir), DirMode); err != nil {
			return err
		}
	}

	for _, step := range b.Files {
		var content string
		switch step.Source {
		case SourceManifest:
			content = string(pkgJSON)
		default:
			t := r.Template(step.Template)
			for k, v := range locals {
				t.Locals[k] = v
			}
			out, err := t.Render()
			if err != nil {
				return err
			}
			content = out
		}

		if err := s.WriteFile(join(dest, step.Dest), content, step.Mode); err != nil {
			return err
		}
	}
	plog.Debug("branch done", "branch", b.Name)
	return nil
}

func plannedPaths(dest string, plan *Plan) []string {
	paths := []string{dest}
	for _, d := range plan.Dirs() {
		paths = append(paths, join(dest, d))
	}
	for _, f := range plan.Files() {
		paths = append(paths, join(dest, f))
	}
	return paths
}

func join(dest, rel string) string {
	return filepath.Join(dest, filepath.FromSlash(rel))
}
