package config

import (
	"time"
)

type (
	NET struct {
		// Addr is the TCP address the server listens on.
		Addr string
		// ReadBufferSize is the size of a single read from the socket. Reads are repeated
		// and accumulated till the request is complete, limited by MaxRequestSize.
		ReadBufferSize int
		// MaxRequestSize limits how many bytes will be read from a single connection in
		// total, including the declared body.
		MaxRequestSize int
		// ReadTimeout controls how long a worker waits for the request to arrive. A silent
		// client is disconnected after it expires, freeing the worker.
		ReadTimeout time.Duration
		// WriteTimeout limits the time spent on writing the response.
		WriteTimeout time.Duration
		// AcceptLoopInterruptPeriod controls how often will the Accept() call be interrupted
		// in order to check whether it's time to stop. Defaults to 5 seconds.
		AcceptLoopInterruptPeriod time.Duration
	}

	Pool struct {
		// Workers is the number of persistent workers, spawned at start.
		Workers int
		// QueueSize is the capacity of the tasks queue. Submitting into a full queue blocks
		// the submitter until a slot frees.
		QueueSize int
	}

	Files struct {
		// Directory is the root for every /files/ operation.
		Directory string
	}

	Log struct {
		// Level is a zerolog level name: trace, debug, info, warn, error etc.
		Level string
		// Pretty enables human-readable console output instead of JSON lines.
		Pretty bool `test:"nullable"`
	}
)

// Config holds settings used across the server: network limits, the workers pool
// geometry, the files root and logging.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to initialize the
// config manually, because zero values are not meaningful here.
type Config struct {
	NET   NET
	Pool  Pool
	Files Files
	Log   Log
}

// Default returns default config.
func Default() *Config {
	return &Config{
		NET: NET{
			Addr:                      "127.0.0.1:4221",
			ReadBufferSize:            4096,
			MaxRequestSize:            2 * 1024 * 1024,
			ReadTimeout:               90 * time.Second,
			WriteTimeout:              30 * time.Second,
			AcceptLoopInterruptPeriod: 5 * time.Second,
		},
		Pool: Pool{
			Workers:   4,
			QueueSize: 64,
		},
		Files: Files{
			Directory: "/tmp/",
		},
		Log: Log{
			Level: "info",
		},
	}
}
