// Package console prints the user-facing lines of a scaffold run: one
// "create : <path>" line per directory or file, framed warnings on stderr,
// and the final next-steps block. Output is buffered; the exit coordinator
// flushes both streams before the process ends.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/expressapi-labs/express-api/internal/platform"
)

// Console owns the stdout and stderr streams of a run.
type Console struct {
	Out *Stream
	Err *Stream

	label lipgloss.Style
}

// New creates a Console over the given raw writers. The "create" label is
// colored only when stdout is a terminal.
func New(stdout, stderr io.Writer) *Console {
	r := lipgloss.NewRenderer(stdout)
	return &Console{
		Out:   NewStream(stdout),
		Err:   NewStream(stderr),
		label: r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Created logs a created directory or file.
func (c *Console) Created(path string) {
	fmt.Fprintf(c.Out, "   %s : %s\n", c.label.Render("create"), path)
}

// Warning prints a possibly multi-line warning to stderr, one
// "warning:" prefix per line, framed by blank lines.
func (c *Console) Warning(message string) {
	var b strings.Builder
	b.WriteString("\n")
	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintf(&b, "  warning: %s\n", line)
	}
	b.WriteString("\n")
	io.WriteString(c.Err, b.String())
}

// Errorf prints a plain line to stderr.
func (c *Console) Errorf(format string, args ...any) {
	fmt.Fprintf(c.Err, format+"\n", args...)
}

// Println prints a plain line to stdout.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// NextSteps prints the install and run instructions for a generated app.
func (c *Console) NextSteps(appName, path string, fromCmd bool) {
	prompt := platform.Prompt(fromCmd)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("   install dependencies:\n")
	fmt.Fprintf(&b, "     %s cd %s && npm install\n", prompt, path)
	b.WriteString("\n")
	b.WriteString("   run the app:\n")
	if fromCmd {
		fmt.Fprintf(&b, "     %s SET DEBUG=%s:* & npm start\n", prompt, appName)
	} else {
		fmt.Fprintf(&b, "     %s DEBUG=%s:* npm start\n", prompt, appName)
	}
	b.WriteString("\n")
	io.WriteString(c.Out, b.String())
}
