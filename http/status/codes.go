package status

type (
	Code   uint16
	Status string
)

// The closed set of codes the server ever responds with.
const (
	OK      Code = 200 // RFC 9110, 15.3.1
	Created Code = 201 // RFC 9110, 15.3.2

	BadRequest Code = 400 // RFC 9110, 15.5.1
	Forbidden  Code = 403 // RFC 9110, 15.5.4
	NotFound   Code = 404 // RFC 9110, 15.5.5

	InternalServerError Code = 500 // RFC 9110, 15.6.1
)

var KnownCodes = []Code{OK, Created, BadRequest, Forbidden, NotFound, InternalServerError}

// Text returns a text for the HTTP status code. It returns the empty
// string if the code is unknown.
func Text(code Code) Status {
	switch code {
	case OK:
		return "OK"
	case Created:
		return "Created"
	case BadRequest:
		return "Bad Request"
	case Forbidden:
		return "Forbidden"
	case NotFound:
		return "Not Found"
	case InternalServerError:
		return "Internal Server Error"
	default:
		return ""
	}
}

// StringCode returns the code rendered in decimal digits.
func StringCode(code Code) string {
	switch code {
	case OK:
		return "200"
	case Created:
		return "201"
	case BadRequest:
		return "400"
	case Forbidden:
		return "403"
	case NotFound:
		return "404"
	case InternalServerError:
		return "500"
	default:
		return "500"
	}
}

// Line returns the complete status line, excluding the trailing CRLF. Unknown codes are
// rendered as 500 Internal Server Error, as no other response could be meaningful.
func Line(code Code) string {
	text := Text(code)
	if len(text) == 0 {
		code, text = InternalServerError, Text(InternalServerError)
	}

	return "HTTP/1.1 " + StringCode(code) + " " + string(text)
}
