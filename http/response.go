package http

import (
	"strconv"
	"strings"

	"github.com/indigo-web/minihttp/http/codec"
	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
	json "github.com/json-iterator/go"
)

// Encoding is the negotiated content coding of the response body.
type Encoding uint8

const (
	Identity Encoding = iota
	Gzip
)

func (e Encoding) String() string {
	switch e {
	case Gzip:
		return "gzip"
	default:
		return codec.Identity
	}
}

const (
	// the response is never sent with more than content-type and content-encoding set
	// by the routes, so 4 is rather a generous upper bound
	preallocRespHeaders = 4
	crlf                = "\r\n"
)

var gzipCodec codec.Codec = codec.NewGZIP()

type Header struct {
	Key, Value string
}

// Response is a builder of the HTTP response. Headers are kept in insertion order, so
// the serialized form is deterministic.
type Response struct {
	code     status.Code
	headers  []Header
	body     []byte
	hasBody  bool
	encoding Encoding
}

// NewResponse returns a new instance of the Response object with no headers and no body.
func NewResponse(code status.Code) *Response {
	return &Response{
		code:    code,
		headers: make([]Header, 0, preallocRespHeaders),
	}
}

// Code sets a Response code.
func (r *Response) Code(code status.Code) *Response {
	r.code = code
	return r
}

// Header sets the header value, overriding the previous one with the same name, compared
// case-insensitively. Content-Length is always computed while serializing, therefore
// attempts to set it are ignored.
func (r *Response) Header(key, value string) *Response {
	if strcomp.EqualFold(key, "content-length") {
		return r
	}

	for i, header := range r.headers {
		if strcomp.EqualFold(header.Key, key) {
			r.headers[i].Value = value
			return r
		}
	}

	r.headers = append(r.headers, Header{
		Key:   key,
		Value: value,
	})

	return r
}

// ContentType sets a custom Content-Type header value.
func (r *Response) ContentType(value mime.MIME) *Response {
	return r.Header("Content-Type", value)
}

// String sets the response's body to the passed string
func (r *Response) String(body string) *Response {
	return r.Bytes(uf.S2B(body))
}

// Bytes sets the response's body to passed slice WITHOUT COPYING. Changing
// the passed slice later will affect the response by itself
func (r *Response) Bytes(body []byte) *Response {
	r.body = body
	r.hasBody = true
	return r
}

// Write implements io.Writer interface. It always returns n=len(b) and err=nil
func (r *Response) Write(b []byte) (n int, err error) {
	r.body = append(r.body, b...)
	r.hasBody = true
	return len(b), nil
}

// TryJSON serializes the model into the body and returns the error, if any occurred.
func (r *Response) TryJSON(model any) (*Response, error) {
	// the previous body may be a string-backed read-only memory, so it must never be reused
	r.body = nil
	stream := json.ConfigDefault.BorrowStream(r)
	stream.WriteVal(model)
	err := stream.Flush()
	if err == nil {
		err = stream.Error
	}
	json.ConfigDefault.ReturnStream(stream)

	return r.ContentType(mime.JSON), err
}

// JSON does the same as TryJSON does, except returned error is being implicitly wrapped
// by Error
func (r *Response) JSON(model any) *Response {
	resp, err := r.TryJSON(model)
	if err != nil {
		return r.Error(err)
	}

	return resp
}

// Error turns the response into an error one. The code is taken from status.HTTPError,
// otherwise it's status.InternalServerError. The body and the content type are discarded.
// If passed err is nil, nothing will happen.
func (r *Response) Error(err error) *Response {
	if err == nil {
		return r
	}

	r.body, r.hasBody = nil, false
	r.dropHeader("content-type")

	return r.Code(status.CodeOf(err))
}

// AcceptEncoding negotiates the body coding from a raw Accept-Encoding header value.
// Gzip is chosen if the exact `gzip` token presents among the comma-separated candidates.
// Otherwise, the encoding stays as it is.
func (r *Response) AcceptEncoding(value string) *Response {
	for _, token := range strings.Split(value, ",") {
		if strings.TrimSpace(token) == gzipCodec.Token() {
			r.encoding = Gzip
			return r.Header("Content-Encoding", gzipCodec.Token())
		}
	}

	return r
}

func (r *Response) StatusCode() status.Code {
	return r.code
}

func (r *Response) Encoding() Encoding {
	return r.encoding
}

// Body returns the body as it was set, before any content coding is applied.
func (r *Response) Body() (body []byte, present bool) {
	return r.body, r.hasBody
}

// Value returns the header value by its name, compared case-insensitively.
func (r *Response) Value(key string) (string, bool) {
	for _, header := range r.headers {
		if strcomp.EqualFold(header.Key, key) {
			return header.Value, true
		}
	}

	return "", false
}

// Headers returns headers in the order they were set. The returned slice must not be modified.
func (r *Response) Headers() []Header {
	return r.headers
}

// Serialize appends the wire representation of the response to dst. Content-Length
// always reflects the bytes which are actually written, i.e. after compression.
func (r *Response) Serialize(dst []byte) ([]byte, error) {
	body := r.body
	if r.encoding == Gzip && r.hasBody {
		compressed, err := gzipCodec.Encode(nil, r.body)
		if err != nil {
			return dst, err
		}

		body = compressed
	}

	dst = append(dst, status.Line(r.code)...)
	dst = append(dst, crlf...)

	for _, header := range r.headers {
		dst = append(dst, header.Key...)
		dst = append(dst, ": "...)
		dst = append(dst, header.Value...)
		dst = append(dst, crlf...)
	}

	dst = append(dst, "Content-Length: "...)
	dst = strconv.AppendInt(dst, int64(len(body)), 10)
	dst = append(dst, crlf+crlf...)

	return append(dst, body...), nil
}

func (r *Response) dropHeader(key string) {
	for i, header := range r.headers {
		if strcomp.EqualFold(header.Key, key) {
			r.headers = append(r.headers[:i], r.headers[i+1:]...)
			return
		}
	}
}

// Text returns a 200 OK response with a text/plain body.
func Text(body string) *Response {
	return NewResponse(status.OK).
		ContentType(mime.Plain).
		String(body)
}

// JSON returns a 200 OK response with the model serialized into the body. If the
// model can't be serialized, the response is 500 Internal Server Error.
func JSON(model any) *Response {
	return NewResponse(status.OK).JSON(model)
}
