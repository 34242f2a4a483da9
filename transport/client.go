package transport

import (
	"net"
	"time"

	"github.com/indigo-web/minihttp/internal/timer"
)

// Client wraps the connection, setting the deadline before every I/O operation.
type Client interface {
	Read() ([]byte, error)
	Write([]byte) (int, error)
	Conn() net.Conn
	Remote() net.Addr
}

type client struct {
	conn         net.Conn
	buff         []byte
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewClient(conn net.Conn, readTimeout, writeTimeout time.Duration, buff []byte) Client {
	return &client{
		buff:         buff,
		conn:         conn,
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

// Read reads data into the internal buffer and returns a piece of it back. The returned
// slice is valid only till the next call.
func (c *client) Read() ([]byte, error) {
	if err := c.conn.SetReadDeadline(timer.After(c.readTimeout)); err != nil {
		return nil, err
	}

	n, err := c.conn.Read(c.buff)
	return c.buff[:n], err
}

func (c *client) Write(b []byte) (n int, err error) {
	if err = c.conn.SetWriteDeadline(timer.After(c.writeTimeout)); err != nil {
		return 0, err
	}

	return c.conn.Write(b)
}

func (c *client) Conn() net.Conn {
	return c.conn
}

func (c *client) Remote() net.Addr {
	return c.conn.RemoteAddr()
}
