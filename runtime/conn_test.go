package runtime

import (
	"net"
	"strings"
	"sync"
	"time"
)

// recordingConn is an in-memory client connection that keeps what the hub writes.
type recordingConn struct {
	mu     sync.Mutex
	data   strings.Builder
	closed bool
}

func (c *recordingConn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, net.ErrClosed
	}
	return c.data.Write(p)
}

func (c *recordingConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *recordingConn) SetWriteDeadline(time.Time) error {
	return nil
}

func (c *recordingConn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Lines returns every complete line received so far.
func (c *recordingConn) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw := c.data.String()
	if raw == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(raw, "\n"), "\n")
}

// Reset forgets the lines received so far.
func (c *recordingConn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.Reset()
}
