package codec

import (
	"bytes"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var _ Codec = new(GZIP)

// GZIP is safe for concurrent use. Compressors are pooled, as allocating a new one
// per response is notably expensive.
type GZIP struct {
	writers sync.Pool
}

func NewGZIP() *GZIP {
	return &GZIP{
		writers: sync.Pool{
			New: func() any {
				// gzip.NewWriterLevel never returns an error on a valid level, so it's safe to ignore it
				w, _ := gzip.NewWriterLevel(nil, gzip.DefaultCompression)
				return w
			},
		},
	}
}

func (*GZIP) Token() string {
	return "gzip"
}

func (g *GZIP) Encode(dst, input []byte) ([]byte, error) {
	buff := bytes.NewBuffer(dst)
	w := g.writers.Get().(*gzip.Writer)
	defer g.writers.Put(w)

	w.Reset(buff)
	if _, err := w.Write(input); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

func (*GZIP) Decode(input []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(input))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return io.ReadAll(r)
}
