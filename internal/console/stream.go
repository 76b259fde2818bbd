package console

import (
	"bufio"
	"io"
	"sync"
)

// Stream is a buffered, goroutine-safe writer. Scaffold branches write to the
// same Stream concurrently; each Write lands as a unit.
type Stream struct {
	mu  sync.Mutex
	buf *bufio.Writer
	dst io.Writer
}

// NewStream wraps w in a buffered stream.
func NewStream(w io.Writer) *Stream {
	return &Stream{buf: bufio.NewWriter(w), dst: w}
}

// Write buffers p.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

// Flush pushes buffered bytes to the underlying writer and, when that writer
// is a file, asks the OS to commit it. Sync errors are ignored: terminals and
// pipes reject fsync and there is nothing useful to do about it.
func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.buf.Flush(); err != nil {
		return err
	}
	if f, ok := s.dst.(interface{ Sync() error }); ok {
		_ = f.Sync()
	}
	return nil
}
