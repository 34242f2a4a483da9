package serve

import (
	"errors"
	"fmt"
	"io"
	"net"
	"unicode/utf8"

	"github.com/indigo-web/minihttp/config"
	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/parser/http1"
	"github.com/indigo-web/minihttp/router"
	"github.com/indigo-web/minihttp/transport"
	"github.com/rs/zerolog"
)

var (
	// ErrParse wraps every request parsing error. No response is sent in this case.
	ErrParse           = errors.New("can't parse the request")
	ErrNotUTF8         = errors.New("request isn't a valid UTF-8 text")
	ErrRequestTooLarge = errors.New("request exceeds the size limit")
)

// HTTP1 serves exactly one request: reads it, routes it, negotiates the content coding
// and writes the response back in a single write. Malformed requests are dropped without
// any response. The connection isn't closed, that's the caller's responsibility.
//
// A client disconnecting without sending anything isn't an error.
func HTTP1(cfg *config.Config, conn net.Conn, r router.Router, log zerolog.Logger) error {
	client := transport.NewClient(
		conn, cfg.NET.ReadTimeout, cfg.NET.WriteTimeout, make([]byte, cfg.NET.ReadBufferSize),
	)

	data, err := readRequest(client, cfg.NET.MaxRequestSize)
	switch {
	case err != nil:
		return err
	case len(data) == 0:
		return nil
	case !utf8.Valid(data):
		return ErrNotUTF8
	}

	request, err := http1.Parse(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}

	response := r.OnRequest(request)
	if acceptEncoding, found := request.Header("accept-encoding"); found {
		response.AcceptEncoding(acceptEncoding)
	}

	raw, err := response.Serialize(nil)
	if err != nil {
		log.Error().Err(err).Msg("can't serialize the response")
		raw, _ = http.NewResponse(status.InternalServerError).Serialize(nil)
	}

	if _, err = client.Write(raw); err != nil {
		return fmt.Errorf("write response: %w", err)
	}

	log.Debug().
		Stringer("remote", client.Remote()).
		Str("method", request.Method).
		Str("path", request.Path).
		Uint16("code", uint16(response.StatusCode())).
		Stringer("encoding", response.Encoding()).
		Msg("served")

	return nil
}

// readRequest reads till a complete request is buffered, the peer closes its end or the
// size limit is exceeded.
func readRequest(client transport.Client, limit int) ([]byte, error) {
	var buff []byte

	for {
		data, err := client.Read()
		buff = append(buff, data...)

		switch {
		case len(buff) > limit:
			return nil, ErrRequestTooLarge
		case err == io.EOF:
			return buff, nil
		case err != nil:
			return nil, fmt.Errorf("read request: %w", err)
		case http1.Framed(buff):
			return buff, nil
		}
	}
}
