package transport

import (
	"errors"
	"net"
	"os"
	"sync/atomic"
	"time"

	"github.com/indigo-web/minihttp/config"
	"github.com/rs/zerolog"
)

const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

var _ Transport = new(TCP)

type listener interface {
	net.Listener
	SetDeadline(t time.Time) error
}

type TCP struct {
	l    listener
	log  zerolog.Logger
	stop *atomic.Bool
}

func NewTCP(log zerolog.Logger) *TCP {
	return &TCP{
		log:  log,
		stop: new(atomic.Bool),
	}
}

func bindTCP(addr string) (*net.TCPListener, error) {
	tcpaddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}

	return net.ListenTCP("tcp", tcpaddr)
}

func (t *TCP) Bind(addr string) (err error) {
	t.l, err = bindTCP(addr)
	return err
}

// Addr returns the bound address, useful when binding to the port 0. Returns nil if
// the transport isn't bound.
func (t *TCP) Addr() net.Addr {
	if t.l == nil {
		return nil
	}

	return t.l.Addr()
}

// Listen accepts connections one by one, so a blocked callback blocks the accept loop, too.
// The Accept() call is periodically interrupted in order to check whether it's time to stop.
// Other accept errors (e.g. EMFILE) are logged and retried with a growing delay. Listen
// returns only after Stop was called or the listener was closed.
func (t *TCP) Listen(cfg config.NET, cb func(conn net.Conn)) error {
	var delay time.Duration

	for !t.stop.Load() {
		err := t.l.SetDeadline(time.Now().Add(cfg.AcceptLoopInterruptPeriod))
		if err != nil {
			return err
		}

		conn, err := t.l.Accept()
		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded):
			continue
		case errors.Is(err, net.ErrClosed):
			if t.stop.Load() {
				return nil
			}

			return err
		default:
			delay = min(max(2*delay, minAcceptDelay), maxAcceptDelay)
			t.log.Error().Err(err).Dur("retry_in", delay).Msg("accept failed")
			time.Sleep(delay)
			continue
		}

		delay = 0
		cb(conn)
	}

	return nil
}

func (t *TCP) Stop() {
	t.stop.Store(true)
}

func (t *TCP) Close() {
	if t.l != nil {
		_ = t.l.Close()
	}
}
