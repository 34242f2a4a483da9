package http1

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

var (
	ErrMalformedRequest   = errors.New("malformed request")
	ErrInvalidRequestLine = errors.New("invalid request line")
	ErrInvalidHeader      = errors.New("invalid header")
)

// Parse turns a raw request into the structured one. The request line must consist of
// exactly three whitespace-separated tokens. Headers follow till the first empty line, each
// of them must contain a colon.
//
// If Content-Length is declared, exactly that many bytes following the empty line are taken
// as the body. Otherwise, the first non-empty line after it is the body, if there's any.
//
// Strings in the returned request reference the data, so it must not be modified until
// the request is discarded.
func Parse(data []byte) (*http.Request, error) {
	line, rest, ok := nextLine(data)
	if !ok {
		return nil, ErrMalformedRequest
	}

	tokens := strings.Fields(uf.B2S(line))
	if len(tokens) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRequestLine, line)
	}

	request := &http.Request{
		Method:  tokens[0],
		Path:    tokens[1],
		Proto:   tokens[2],
		Headers: make(http.Headers),
	}

	terminated := false
	for !terminated {
		line, rest, ok = nextLine(rest)
		if !ok {
			break
		}

		if len(line) == 0 {
			terminated = true
			break
		}

		key, value, found := strings.Cut(uf.B2S(line), ":")
		if !found {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHeader, line)
		}

		request.Headers[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	if !terminated {
		return request, nil
	}

	if value, found := request.Headers["content-length"]; found {
		length, err := parseContentLength(value)
		if err != nil {
			return nil, err
		}

		if length > len(rest) {
			return nil, fmt.Errorf(
				"%w: declared %d bytes of body, got only %d", ErrMalformedRequest, length, len(rest),
			)
		}

		if length > 0 {
			request.Body, request.HasBody = rest[:length], true
		}

		return request, nil
	}

	for {
		line, rest, ok = nextLine(rest)
		if !ok {
			return request, nil
		}

		if len(line) > 0 {
			request.Body, request.HasBody = line, true
			return request, nil
		}
	}
}

// Framed reports whether data holds a complete request: the headers section is terminated
// by an empty line and at least as many body bytes as Content-Length declares are present.
// Malformed headers sections are reported as complete, so they're rejected by Parse
// without waiting for more data.
func Framed(data []byte) bool {
	_, rest, found := bytes.Cut(data, lf)
	if !found {
		return false
	}

	contentLength := 0

	for {
		var line []byte
		line, rest, found = bytes.Cut(rest, lf)
		if !found {
			return false
		}

		line = bytes.TrimSuffix(line, cr)
		if len(line) == 0 {
			return len(rest) >= contentLength
		}

		key, value, colon := strings.Cut(uf.B2S(line), ":")
		if !colon {
			return true
		}

		if strcomp.EqualFold(strings.TrimSpace(key), "content-length") {
			length, err := parseContentLength(strings.TrimSpace(value))
			if err != nil {
				return true
			}

			contentLength = length
		}
	}
}

var (
	lf = []byte("\n")
	cr = []byte("\r")
)

// nextLine splits data by the first LF. A preceding CR is stripped, too. ok is false
// only if there's no data left.
func nextLine(data []byte) (line, rest []byte, ok bool) {
	if len(data) == 0 {
		return nil, nil, false
	}

	line, rest, _ = bytes.Cut(data, lf)
	return bytes.TrimSuffix(line, cr), rest, true
}

// maxContentLength caps the accepted declarations so that the value fits an int on every
// platform. The real cap is enforced by the connection reader, which is notably lower.
const maxContentLength = math.MaxInt32

func parseContentLength(raw string) (int, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("%w: empty content-length", ErrInvalidHeader)
	}

	num := 0
	for i := 0; i < len(raw); i++ {
		char := raw[i]
		if char < '0' || char > '9' {
			return 0, fmt.Errorf("%w: bad content-length %q", ErrInvalidHeader, raw)
		}

		digit := int(char - '0')
		if num > (maxContentLength-digit)/10 {
			return 0, fmt.Errorf("%w: content-length %q is too large", ErrInvalidHeader, raw)
		}

		num = num*10 + digit
	}

	return num, nil
}
