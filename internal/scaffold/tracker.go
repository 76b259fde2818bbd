package scaffold

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Tracker joins the scaffold branches. Every branch is started with Go;
// Wait blocks until all of them returned and runs the completion action once
// if none failed. There is no counter for callers to keep in step.
type Tracker struct {
	g          errgroup.Group
	onComplete func()
	once       sync.Once

	mu   sync.Mutex
	errs []error
}

// NewTracker returns a Tracker that calls onComplete after a fully
// successful Wait. onComplete may be nil.
func NewTracker(onComplete func()) *Tracker {
	return &Tracker{onComplete: onComplete}
}

// Go starts branch name. A failing branch does not stop its siblings.
func (t *Tracker) Go(name string, fn func() error) {
	t.g.Go(func() error {
		if err := fn(); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			t.mu.Lock()
			t.errs = append(t.errs, err)
			t.mu.Unlock()
			return err
		}
		return nil
	})
}

// Wait joins all started branches. It returns every branch error joined, or
// nil after the completion action ran.
func (t *Tracker) Wait() error {
	// errgroup keeps only the first error; errs holds all of them.
	_ = t.g.Wait()

	t.mu.Lock()
	err := errors.Join(t.errs...)
	t.mu.Unlock()
	if err != nil {
		return err
	}

	t.once.Do(func() {
		if t.onComplete != nil {
			t.onComplete()
		}
	})
	return nil
}
