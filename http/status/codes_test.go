package status

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test(t *testing.T) {
	t.Run("string codes", func(t *testing.T) {
		for _, code := range KnownCodes {
			require.Equal(t, strconv.Itoa(int(code)), StringCode(code))
			require.NotEmpty(t, Text(code))
		}
	})

	t.Run("status line", func(t *testing.T) {
		require.Equal(t, "HTTP/1.1 200 OK", Line(OK))
		require.Equal(t, "HTTP/1.1 201 Created", Line(Created))
		require.Equal(t, "HTTP/1.1 400 Bad Request", Line(BadRequest))
		require.Equal(t, "HTTP/1.1 403 Forbidden", Line(Forbidden))
		require.Equal(t, "HTTP/1.1 404 Not Found", Line(NotFound))
		require.Equal(t, "HTTP/1.1 500 Internal Server Error", Line(InternalServerError))
	})

	t.Run("unknown code", func(t *testing.T) {
		require.Empty(t, Text(Code(418)))
		require.Equal(t, "HTTP/1.1 500 Internal Server Error", Line(Code(418)))
	})
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, OK, CodeOf(nil))
	require.Equal(t, NotFound, CodeOf(ErrNotFound))
	require.Equal(t, Forbidden, CodeOf(fmt.Errorf("open: %w", ErrForbidden)))
	require.Equal(t, InternalServerError, CodeOf(fmt.Errorf("disk on fire")))
}
