package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// LineReader yields one line of interactive input at a time.
type LineReader interface {
	// ReadLine blocks until a line is available or ctx is done. The trailing
	// newline is stripped. At end of input it returns what was read and io.EOF.
	ReadLine(ctx context.Context) (string, error)
	// Close releases the underlying input. No reads are allowed afterwards.
	Close() error
}

// ErrClosed is returned by ReadLine after Close.
var ErrClosed = errors.New("prompt: reader closed")

type lineResult struct {
	line string
	err  error
}

// TerminalReader reads lines from an interactive input such as os.Stdin.
type TerminalReader struct {
	src    io.Reader
	reader *bufio.Reader

	mu     sync.Mutex
	closed bool
}

// NewTerminalReader wraps r. If r is an io.Closer, Close closes it.
func NewTerminalReader(r io.Reader) *TerminalReader {
	return &TerminalReader{src: r, reader: bufio.NewReader(r)}
}

// ReadLine reads one line. The read runs on its own goroutine so a cancelled
// context returns promptly even though the blocked read cannot be interrupted.
func (t *TerminalReader) ReadLine(ctx context.Context) (string, error) {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return "", ErrClosed
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		ch <- lineResult{line: strings.TrimRight(line, "\r\n"), err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		return res.line, res.err
	}
}

// Close marks the reader closed and closes the source when it can be closed.
func (t *TerminalReader) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil
	}
	t.closed = true
	if c, ok := t.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ScriptedReader replays a fixed list of lines. It is used by tests and by
// non-interactive callers that already know the answers.
type ScriptedReader struct {
	mu     sync.Mutex
	lines  []string
	reads  int
	closed bool
}

// NewScriptedReader returns a reader that yields lines in order and then io.EOF.
func NewScriptedReader(lines ...string) *ScriptedReader {
	return &ScriptedReader{lines: lines}
}

// ReadLine returns the next scripted line.
func (s *ScriptedReader) ReadLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", ErrClosed
	}
	if s.reads >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.reads]
	s.reads++
	return line, nil
}

// Close marks the reader closed.
func (s *ScriptedReader) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Reads returns how many lines have been consumed.
func (s *ScriptedReader) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reads
}

// Closed reports whether Close was called.
func (s *ScriptedReader) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
