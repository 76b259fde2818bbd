package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// State is a step of the confirmation gate.
type State int

const (
	Checking State = iota
	Prompting
	Confirmed
	Aborted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Prompting:
		return "prompting"
	case Confirmed:
		return "confirmed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Question is shown when the destination already has content.
const Question = "destination is not empty, continue? [y/N] "

// ErrAborted is returned when the user declines to write into a non-empty
// destination.
var ErrAborted = errors.New("aborting")

var affirmative = map[string]bool{
	"y":    true,
	"yes":  true,
	"ok":   true,
	"true": true,
}

// IsAffirmative reports whether answer is one of y, yes, ok or true,
// ignoring case and surrounding whitespace.
func IsAffirmative(answer string) bool {
	return affirmative[strings.ToLower(strings.TrimSpace(answer))]
}

// Gate decides whether generation may write into a destination directory.
type Gate struct {
	Input  LineReader
	Output io.Writer
	Force  bool

	state State
}

// State returns the state the gate stopped in.
func (g *Gate) State() State { return g.state }

// Run walks the gate for dir. It returns nil once Confirmed, ErrAborted once
// Aborted, or a filesystem error if dir cannot be inspected. The input is
// released in both terminal states and after a failed read.
func (g *Gate) Run(ctx context.Context, dir string) error {
	g.state = Checking

	empty, err := IsEmptyDir(dir)
	if err != nil {
		return err
	}
	if empty || g.Force {
		return g.confirm()
	}

	g.state = Prompting
	fmt.Fprint(g.Output, Question)
	if f, ok := g.Output.(interface{ Flush() error }); ok {
		_ = f.Flush()
	}

	answer, err := g.Input.ReadLine(ctx)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = g.Input.Close()
		return fmt.Errorf("reading confirmation: %w", err)
	}
	if IsAffirmative(answer) {
		return g.confirm()
	}

	g.state = Aborted
	_ = g.Input.Close()
	return ErrAborted
}

func (g *Gate) confirm() error {
	g.state = Confirmed
	if g.Input != nil {
		_ = g.Input.Close()
	}
	return nil
}

// IsEmptyDir reports whether dir is missing or has no entries.
func IsEmptyDir(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("inspecting destination %s: %w", dir, err)
	}
	return len(entries) == 0, nil
}
