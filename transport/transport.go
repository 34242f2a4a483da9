package transport

import (
	"net"

	"github.com/indigo-web/minihttp/config"
)

type Transport interface {
	Bind(addr string) error
	// Listen runs the accept loop, passing every accepted connection to cb. The connection
	// is owned by cb since then. It returns nil after Stop was called.
	Listen(cfg config.NET, cb func(conn net.Conn)) error
	Stop()
	Close()
}
