package minihttp

import (
	"errors"
	"net"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http/serve"
	"github.com/indigo-web/minihttp/internal/files"
	"github.com/indigo-web/minihttp/internal/pool"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport"
	"github.com/rs/zerolog"
)

// App binds the listener, spawns the workers pool and dispatches every accepted connection
// to it as a single task.
type App struct {
	cfg   *config.Config
	log   zerolog.Logger
	hooks hooks
	tcp   *transport.TCP
	pool  *pool.Pool
}

// New returns a new App instance. The config must not be modified afterward.
func New(cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		cfg: cfg,
		log: log,
		tcp: transport.NewTCP(log),
	}
}

// NotifyOnStart calls the callback at the moment, when the listener is bound and workers are
// spawned. However, it isn't strongly guaranteed that the accept loop is already running.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment, when the server is down. It's guaranteed,
// that at the moment as the callback is called, no new connections are accepted and all the
// accepted ones are already served.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the bound address. It's nil till the App is started.
func (a *App) Addr() net.Addr {
	return a.tcp.Addr()
}

// Serve starts the server and blocks until Stop was called or the accept loop failed.
// If nil is passed instead of a router, the default routes are used.
func (a *App) Serve(r router.Router) error {
	if r == nil {
		r = router.NewDefault(files.Dir(a.cfg.Files.Directory), a.log)
	}

	if err := a.tcp.Bind(a.cfg.NET.Addr); err != nil {
		return err
	}

	a.pool = pool.New(a.cfg.Pool, a.log)
	a.log.Info().
		Stringer("addr", a.Addr()).
		Int("workers", a.cfg.Pool.Workers).
		Str("directory", a.cfg.Files.Directory).
		Msg("listening")

	callIfNotNil(a.hooks.OnStart)
	err := a.tcp.Listen(a.cfg.NET, a.dispatcher(r))

	// drain in-flight connections before releasing the socket
	a.pool.Stop()
	a.tcp.Close()

	stats := a.pool.Stats()
	a.log.Info().
		Uint64("served", stats.Executed).
		Uint64("panicked", stats.Panicked).
		Msg("stopped")
	callIfNotNil(a.hooks.OnStop)

	return err
}

// Stop stops accepting new connections, lets the queued and in-flight ones to be served
// and then Serve returns.
//
// NOTE: the call isn't blocking. The accept loop notices it within the
// config.NET.AcceptLoopInterruptPeriod.
func (a *App) Stop() {
	a.tcp.Stop()
}

func (a *App) dispatcher(r router.Router) func(net.Conn) {
	return func(conn net.Conn) {
		a.log.Debug().Stringer("remote", conn.RemoteAddr()).Msg("accepted connection")

		err := a.pool.Execute(func() {
			defer conn.Close()

			if err := serve.HTTP1(a.cfg, conn, r, a.log); err != nil {
				a.connError(conn, err)
			}
		})
		if err != nil {
			a.log.Error().Err(err).Stringer("remote", conn.RemoteAddr()).Msg("dropping connection")
			_ = conn.Close()
		}
	}
}

func (a *App) connError(conn net.Conn, err error) {
	event := a.log.Error()
	if errors.Is(err, serve.ErrParse) || errors.Is(err, serve.ErrNotUTF8) {
		event = a.log.Warn()
	}

	event.Err(err).Stringer("remote", conn.RemoteAddr()).Msg("connection failed")
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
