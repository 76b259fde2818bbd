// Package exit coordinates process termination. Output written through the
// console is buffered, so terminating with a bare os.Exit can drop the last
// lines of a run. A Coordinator flushes every registered stream first and
// only then calls the real terminate function.
package exit

import "sync"

// Stream is an output stream that can be drained before exit.
type Stream interface {
	Flush() error
}

// Coordinator owns termination for one process. The zero value is not usable;
// construct it with New.
type Coordinator struct {
	terminate func(code int)
	streams   []Stream

	mu       sync.Mutex
	exited   bool
	draining int
	code     int
	done     chan struct{}
}

// New returns a Coordinator that drains streams and then calls terminate.
// Production code passes os.Exit.
func New(terminate func(code int), streams ...Stream) *Coordinator {
	return &Coordinator{
		terminate: terminate,
		streams:   streams,
		done:      make(chan struct{}),
	}
}

// RequestExit flushes all streams and terminates with code. Only the first
// call has any effect; later calls wait for the first one to finish. When
// terminate does return (tests), RequestExit returns after it ran.
func (c *Coordinator) RequestExit(code int) {
	c.mu.Lock()
	if c.exited {
		c.mu.Unlock()
		<-c.done
		return
	}
	c.exited = true
	c.code = code
	// The extra count keeps draining from reaching zero while flushes are
	// still being issued.
	c.draining = len(c.streams) + 1
	c.mu.Unlock()

	for _, s := range c.streams {
		go func(s Stream) {
			_ = s.Flush()
			c.drained()
		}(s)
	}
	c.drained()
	<-c.done
}

func (c *Coordinator) drained() {
	c.mu.Lock()
	c.draining--
	last := c.draining == 0
	c.mu.Unlock()
	if !last {
		return
	}
	defer close(c.done)
	c.terminate(c.code)
}

// Exited reports whether termination has been requested.
func (c *Coordinator) Exited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.exited
}

// Draining returns the number of flushes still outstanding.
func (c *Coordinator) Draining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draining
}

// Code returns the requested exit code. It is meaningful only once Exited
// reports true.
func (c *Coordinator) Code() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code
}
