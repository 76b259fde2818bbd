package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/expressapi-labs/express-api/internal/platform"
)

// Reporter receives one call per created directory or file.
type Reporter interface {
	Created(path string)
}

// FilesystemError reports a failed directory or file creation.
type FilesystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// Scaffolder performs filesystem writes and remembers what it created. It is
// safe for concurrent use by independent branches.
type Scaffolder struct {
	reporter Reporter

	mu      sync.Mutex
	created []string
}

// NewScaffolder returns a Scaffolder reporting to r.
func NewScaffolder(r Reporter) *Scaffolder {
	return &Scaffolder{reporter: r}
}

// EnsureDirectory creates path and any missing parents. An existing directory
// is not an error.
func (s *Scaffolder) EnsureDirectory(path string, mode fs.FileMode) error {
	if err := os.MkdirAll(path, mode); err != nil {
		return &FilesystemError{Op: "mkdir", Path: path, Err: err}
	}
	s.record(path)
	return nil
}

// WriteFile writes content to path, replacing any existing file.
func (s *Scaffolder) WriteFile(path, content string, mode fs.FileMode) error {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return &FilesystemError{Op: "write", Path: path, Err: err}
	}
	if mode&0111 != 0 {
		if err := platform.Chmod(path, mode); err != nil {
			return &FilesystemError{Op: "chmod", Path: path, Err: err}
		}
	}
	s.record(path)
	return nil
}

func (s *Scaffolder) record(path string) {
	s.mu.Lock()
	s.created = append(s.created, path)
	s.mu.Unlock()
	if s.reporter != nil {
		s.reporter.Created(path)
	}
}

// Created returns the paths created so far, in creation order.
func (s *Scaffolder) Created() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.created...)
}
