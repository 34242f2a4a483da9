package router

import (
	"errors"
	"strings"

	"github.com/indigo-web/minihttp/http"
	"github.com/indigo-web/minihttp/http/method"
	"github.com/indigo-web/minihttp/http/mime"
	"github.com/indigo-web/minihttp/http/status"
	"github.com/indigo-web/minihttp/internal/files"
	"github.com/rs/zerolog"
)

const (
	echoPrefix  = "/echo/"
	filesPrefix = "/files/"
)

// NewDefault returns the table of the server's routes:
//
//	GET  /                → 200 OK
//	GET  /user-agent      → the User-Agent header value or 400 Bad Request
//	GET  /echo/{text}     → the text as is
//	POST /files/{name}    → stores the body, 201 Created
//	GET  /files/{name}    → the file contents or 404 Not Found
//
// Actually, every method except POST is treated as GET.
func NewDefault(storage files.Storage, log zerolog.Logger) *Table {
	f := fileHandlers{storage: storage, log: log}

	return New().
		Route("root", Exact("/"), Root).
		Route("user-agent", Exact("/user-agent"), UserAgent).
		Route("echo", Prefix(echoPrefix), Echo).
		Route("upload", Method(method.POST, Prefix(filesPrefix)), f.Upload).
		Route("download", Prefix(filesPrefix), f.Download)
}

func Root(*http.Request) *http.Response {
	return http.NewResponse(status.OK)
}

func UserAgent(request *http.Request) *http.Response {
	userAgent, found := request.Header("user-agent")
	if !found {
		return http.NewResponse(status.OK).Error(status.ErrBadRequest)
	}

	return http.Text(userAgent)
}

func Echo(request *http.Request) *http.Response {
	return http.Text(strings.TrimPrefix(request.Path, echoPrefix))
}

type fileHandlers struct {
	storage files.Storage
	log     zerolog.Logger
}

func (f fileHandlers) Upload(request *http.Request) *http.Response {
	name := strings.TrimPrefix(request.Path, filesPrefix)

	var body []byte
	if request.HasBody {
		body = request.Body
	}

	if err := f.storage.Write(name, body); err != nil {
		f.log.Error().Err(err).Str("file", name).Msg("can't store the file")
		return http.NewResponse(failure(err, status.InternalServerError))
	}

	return http.NewResponse(status.Created)
}

func (f fileHandlers) Download(request *http.Request) *http.Response {
	name := strings.TrimPrefix(request.Path, filesPrefix)

	data, err := f.storage.Read(name)
	if err != nil {
		f.log.Debug().Err(err).Str("file", name).Msg("can't read the file")
		return http.NewResponse(failure(err, status.NotFound))
	}

	return http.NewResponse(status.OK).
		ContentType(mime.OctetStream).
		Bytes(data)
}

// failure classifies storage errors. Names rejected by the storage are always
// forbidden, everything else is reported with the fallback code.
func failure(err error, fallback status.Code) status.Code {
	if errors.Is(err, status.ErrForbidden) {
		return status.Forbidden
	}

	return fallback
}
