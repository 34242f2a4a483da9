package dummy

import (
	"io"
	"net"
	"sync"
	"time"
)

var _ net.Conn = new(Conn)

// Conn is an in-memory connection. Every Read returns the next piece it was initialized
// with, io.EOF is returned after all of them are consumed. Written data is accumulated.
type Conn struct {
	mu       sync.Mutex
	pieces   [][]byte
	written  []byte
	writes   int
	readErr  error
	writeErr error
	deadline struct {
		read, write bool
	}
	closed bool
}

func NewConn(pieces ...[]byte) *Conn {
	return &Conn{pieces: pieces}
}

// ReadError makes every Read after the pieces are consumed return err instead of io.EOF.
func (c *Conn) ReadError(err error) *Conn {
	c.readErr = err
	return c
}

// WriteError makes every Write fail.
func (c *Conn) WriteError(err error) *Conn {
	c.writeErr = err
	return c
}

func (c *Conn) Read(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pieces) == 0 {
		if c.readErr != nil {
			return 0, c.readErr
		}

		return 0, io.EOF
	}

	n = copy(b, c.pieces[0])
	if n < len(c.pieces[0]) {
		c.pieces[0] = c.pieces[0][n:]
	} else {
		c.pieces = c.pieces[1:]
	}

	return n, nil
}

func (c *Conn) Write(b []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.writeErr != nil {
		return 0, c.writeErr
	}

	c.writes++
	c.written = append(c.written, b...)
	return len(b), nil
}

// Written returns everything written so far and the number of Write calls.
func (c *Conn) Written() ([]byte, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.written, c.writes
}

// Deadlines reports whether read and write deadlines were ever set.
func (c *Conn) Deadlines() (read, write bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deadline.read, c.deadline.write
}

func (c *Conn) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

func (c *Conn) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return nil
}

func (c *Conn) LocalAddr() net.Addr {
	return addr("local")
}

func (c *Conn) RemoteAddr() net.Addr {
	return addr("remote")
}

func (c *Conn) SetDeadline(t time.Time) error {
	_ = c.SetReadDeadline(t)
	return c.SetWriteDeadline(t)
}

func (c *Conn) SetReadDeadline(time.Time) error {
	c.mu.Lock()
	c.deadline.read = true
	c.mu.Unlock()
	return nil
}

func (c *Conn) SetWriteDeadline(time.Time) error {
	c.mu.Lock()
	c.deadline.write = true
	c.mu.Unlock()
	return nil
}

type addr string

func (addr) Network() string {
	return "dummy"
}

func (a addr) String() string {
	return string(a)
}
