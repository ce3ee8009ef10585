package checkpoint

import (
	"fmt"

	"github.com/DataDog/zstd"
	"github.com/golang/snappy"
	"github.com/pierrec/lz4/v4"
)

// Codec names the compression applied to a snapshot inside a checkpoint.
type Codec string

const (
	None   Codec = "none"
	LZ4    Codec = "lz4"
	Snappy Codec = "snappy"
	Zstd   Codec = "zstd"
)

// Codecs returns every supported codec.
func Codecs() []Codec { return []Codec{None, LZ4, Snappy, Zstd} }

// ParseCodec checks that s names a supported codec. The empty string selects
// LZ4.
func ParseCodec(s string) (Codec, error) {
	if s == "" {
		return LZ4, nil
	}
	for _, c := range Codecs() {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w '%s'", ErrUnknownCodec, s)
}

// compress returns the encoded snapshot and the codec actually used. LZ4
// falls back to None for input it cannot shrink.
func compress(c Codec, raw []byte) ([]byte, Codec, error) {
	switch c {
	case None:
		return raw, None, nil
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, "", err
		}
		if n == 0 || n >= len(raw) {
			return raw, None, nil
		}
		return buf[:n], LZ4, nil
	case Snappy:
		return snappy.Encode(nil, raw), Snappy, nil
	case Zstd:
		out, err := zstd.CompressLevel(nil, raw, zstd.BestSpeed)
		if err != nil {
			return nil, "", err
		}
		return out, Zstd, nil
	}
	return nil, "", fmt.Errorf("%w '%s'", ErrUnknownCodec, c)
}

// decompress reverses compress. size is the length of the raw snapshot.
func decompress(c Codec, data []byte, size int) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch c {
	case None:
		out = data
	case LZ4:
		out = make([]byte, size)
		var n int
		n, err = lz4.UncompressBlock(data, out)
		out = out[:n]
	case Snappy:
		var n int
		if n, err = snappy.DecodedLen(data); err == nil && n != size {
			return nil, fmt.Errorf("%w: %s snapshot is %d bytes, expected %d",
				ErrCorrupt, c, n, size)
		}
		if err == nil {
			out, err = snappy.Decode(nil, data)
		}
	case Zstd:
		out, err = zstd.Decompress(nil, data)
	default:
		return nil, fmt.Errorf("%w '%s'", ErrUnknownCodec, c)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, c, err)
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: %s snapshot is %d bytes, expected %d",
			ErrCorrupt, c, len(out), size)
	}
	return out, nil
}
