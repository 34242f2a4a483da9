package codec

type Token = string

// Identity stands for "no encoding", according to RFC
const Identity Token = "identity"

type Codec interface {
	// Token returns a coding token associated with the codec itself.
	Token() string
	// Encode appends the compressed input to dst and returns the extended slice.
	Encode(dst, input []byte) ([]byte, error)
	// Decode returns the decompressed input.
	Decode(input []byte) ([]byte, error)
}
