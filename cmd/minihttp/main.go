package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/indigo-web/minihttp"
	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/internal/logging"
)

func main() {
	cfg := config.Default()
	flag.StringVar(&cfg.Files.Directory, "directory", cfg.Files.Directory, "root directory for /files/ routes")
	flag.StringVar(&cfg.NET.Addr, "addr", cfg.NET.Addr, "address to listen on")
	flag.IntVar(&cfg.Pool.Workers, "workers", cfg.Pool.Workers, "number of workers serving connections")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "trace, debug, info, warn or error")
	flag.BoolVar(&cfg.Log.Pretty, "pretty", cfg.Log.Pretty, "human-readable logs")
	flag.Parse()

	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	app := minihttp.New(cfg, log)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-signals
		log.Info().Stringer("signal", sig).Msg("gracefully stopping")
		app.Stop()
	}()

	if err = app.Serve(nil); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}
