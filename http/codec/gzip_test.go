package codec

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(text string) []byte {
	buff := bytes.NewBuffer(nil)
	c := gzip.NewWriter(buff)
	_, err := c.Write([]byte(text))
	if err != nil {
		panic("unexpected error during gzipping")
	}
	if c.Close() != nil {
		panic("unexpected error during closing gzip writer")
	}

	return buff.Bytes()
}

func TestGZIP(t *testing.T) {
	g := NewGZIP()

	t.Run("round trip", func(t *testing.T) {
		text := strings.Repeat("Hello, world! Lorem ipsum! ", 100)
		compressed, err := g.Encode(nil, []byte(text))
		require.NoError(t, err)
		require.Less(t, len(compressed), len(text))

		decompressed, err := g.Decode(compressed)
		require.NoError(t, err)
		require.Equal(t, text, string(decompressed))
	})

	t.Run("appends to dst", func(t *testing.T) {
		compressed, err := g.Encode([]byte("prefix"), []byte("Hello, world!"))
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(compressed, []byte("prefix")))

		decompressed, err := g.Decode(compressed[len("prefix"):])
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(decompressed))
	})

	t.Run("decode foreign stream", func(t *testing.T) {
		text, err := g.Decode(gzipped("Hello, world!"))
		require.NoError(t, err)
		require.Equal(t, "Hello, world!", string(text))
	})

	t.Run("decode garbage", func(t *testing.T) {
		_, err := g.Decode([]byte("definitely not gzip"))
		require.Error(t, err)
	})

	t.Run("concurrent", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				text := strings.Repeat(string(rune('a'+i)), 1000)
				compressed, err := g.Encode(nil, []byte(text))
				assert.NoError(t, err)
				decompressed, err := g.Decode(compressed)
				assert.NoError(t, err)
				assert.Equal(t, text, string(decompressed))
			}(i)
		}
		wg.Wait()
	})

	require.Equal(t, "gzip", g.Token())
}
