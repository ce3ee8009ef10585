package checkpoint

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/blake2b"

	"github.com/phil-mansfield/randlib/math/rand"
)

func saved(t *testing.T, f rand.Family, codec Codec) (*rand.Generator, *Checkpoint, string) {
	t.Helper()
	g, err := rand.New(f, 77)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		g.Next()
	}
	buf := &bytes.Buffer{}
	c, err := Save(buf, g, codec)
	require.NoError(t, err)
	return g, c, buf.String()
}

func TestRoundTrip(t *testing.T) {
	families := []rand.Family{
		rand.FastRand32, rand.LFib668, rand.MRGRand49507, rand.Well19937c,
		rand.Pcg1024_32, rand.Cwg128, rand.Mt19937, rand.Xoroshiro1024,
	}
	for _, codec := range Codecs() {
		for _, f := range families {
			g, c, doc := saved(t, f, codec)
			require.Equal(t, f, c.Family)
			require.Equal(t, len(g.State()), c.Size)

			h, loaded, err := Load(strings.NewReader(doc))
			require.NoError(t, err, "%s/%s", codec, f)
			require.Equal(t, c.ID, loaded.ID)
			require.Equal(t, c.Codec, loaded.Codec)
			require.Equal(t, c.Digest, loaded.Digest)
			require.True(t, c.Created.Equal(loaded.Created))

			for i := 0; i < 1000; i++ {
				require.Equal(t, g.Next(), h.Next(), "%s/%s draw %d", codec, f, i)
			}
		}
	}
}

func TestCompressibleState(t *testing.T) {
	// Seeded states are incompressible, so zero out most of one.
	g, err := rand.New(rand.LFib1340, 1)
	require.NoError(t, err)
	state := g.State()
	for i := 8; i < len(state)-8; i++ {
		state[i] = 0
	}
	state[0] |= 1
	require.NoError(t, g.SetState(state))

	for _, codec := range []Codec{LZ4, Snappy, Zstd} {
		buf := &bytes.Buffer{}
		c, err := Save(buf, g, codec)
		require.NoError(t, err)
		require.Equal(t, codec, c.Codec)
		require.Less(t, buf.Len(), len(state))

		h, _, err := Load(buf)
		require.NoError(t, err)
		require.Equal(t, state, h.State())
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	g, err := rand.New(rand.Xoroshiro256, 3)
	require.NoError(t, err)
	c, err := SaveFile("~/stream.json", g, Zstd)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "stream.json"))
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	h, loaded, err := LoadFile("~/stream.json")
	require.NoError(t, err)
	require.Equal(t, c.ID, loaded.ID)
	require.Equal(t, g.Next(), h.Next())

	_, _, err = LoadFile(filepath.Join(dir, "missing.json"))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadErrors(t *testing.T) {
	_, c, doc := saved(t, rand.Pcg64_32, None)
	digest := hex.EncodeToString(c.Digest[:])

	tests := []struct {
		name string
		doc  string
		err  error
	}{
		{"truncated", doc[:len(doc)/2], ErrCorrupt},
		{"not json", "checkpoint", ErrCorrupt},
		{"missing field", strings.Replace(doc, `"size"`, `"length"`, 1), ErrCorrupt},
		{"bad version", strings.Replace(doc, `"version":"1.2.0"`, `"version":"one"`, 1), ErrCorrupt},
		{"future minor", strings.Replace(doc, `"version":"1.2.0"`, `"version":"1.9.0"`, 1), ErrVersion},
		{"future major", strings.Replace(doc, `"version":"1.2.0"`, `"version":"2.0.0"`, 1), ErrVersion},
		{"bad id", strings.Replace(doc, c.ID.String(), "not-a-uuid", 1), ErrCorrupt},
		{"family", strings.Replace(doc, `"pcg64_32"`, `"mt11213"`, 1), rand.ErrUnknownFamily},
		{"codec", strings.Replace(doc, `"codec":"none"`, `"codec":"brotli"`, 1), ErrUnknownCodec},
		{"digest", strings.Replace(doc, digest, strings.Repeat("0", len(digest)), 1), ErrCorrupt},
		{"short digest", strings.Replace(doc, digest, digest[:10], 1), ErrCorrupt},
		{"size", strings.Replace(doc, `"size":16`, `"size":17`, 1), ErrCorrupt},
		{"codec mismatch", strings.Replace(doc, `"codec":"none"`, `"codec":"zstd"`, 1), ErrCorrupt},
	}

	for _, test := range tests {
		require.NotEqual(t, doc, test.doc, test.name)
		_, _, err := Load(strings.NewReader(test.doc))
		require.Error(t, err, test.name)
		require.True(t, errors.Is(err, test.err), "%s: %v", test.name, err)
	}
}

func TestLoadSize(t *testing.T) {
	size := regexp.MustCompile(`"size":\d+`)
	for _, codec := range Codecs() {
		_, c, doc := saved(t, rand.Mt19937, codec)
		require.Equal(t, 2500, c.Size)

		for _, bad := range []string{"-1", "0", "2499", "2501", "1099511627776"} {
			edited := size.ReplaceAllString(doc, `"size":`+bad)
			require.NotEqual(t, doc, edited)
			_, _, err := Load(strings.NewReader(edited))
			require.True(t, errors.Is(err, ErrCorrupt), "%s size %s: %v",
				codec, bad, err)
		}
	}
}

func TestForbiddenSnapshot(t *testing.T) {
	// An all-zero xorshift state has a valid digest but is rejected when
	// restored.
	_, c, doc := saved(t, rand.Xorshift, None)
	state := gjson.Get(doc, "state").String()

	zero := make([]byte, c.Size)
	digest := blake2b.Sum256(zero)
	doc = strings.Replace(doc, hex.EncodeToString(c.Digest[:]),
		hex.EncodeToString(digest[:]), 1)
	doc = strings.Replace(doc, state, base64.StdEncoding.EncodeToString(zero), 1)

	_, _, err := Load(strings.NewReader(doc))
	require.True(t, errors.Is(err, rand.ErrInvalidState), "%v", err)
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec("")
	require.NoError(t, err)
	require.Equal(t, LZ4, c)
	for _, want := range Codecs() {
		c, err := ParseCodec(string(want))
		require.NoError(t, err)
		require.Equal(t, want, c)
	}
	_, err = ParseCodec("gzip")
	require.True(t, errors.Is(err, ErrUnknownCodec))
}
