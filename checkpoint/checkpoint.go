/*package checkpoint saves generator snapshots to self-describing JSON
envelopes and restores them.

An envelope records which family the snapshot belongs to, the randlib version
that wrote it, the codec used to compress it and a BLAKE2b-256 digest of the
uncompressed snapshot:

	{"id":"...","version":"1.2.0","family":"pcg64_32",
	 "created":"2024-05-01T10:00:00Z","codec":"lz4","size":16,
	 "digest":"...","state":"..."}
*/
package checkpoint

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/mailru/easyjson/jwriter"
	"github.com/mitchellh/go-homedir"
	"github.com/tidwall/gjson"
	"golang.org/x/crypto/blake2b"

	"github.com/phil-mansfield/randlib/math/rand"
	"github.com/phil-mansfield/randlib/version"
)

// ErrUnknownCodec is returned when a codec name is not supported.
var ErrUnknownCodec = errors.New("unknown codec")

// ErrCorrupt is returned when an envelope cannot be decoded or its snapshot
// does not match its digest.
var ErrCorrupt = errors.New("corrupt checkpoint")

// ErrVersion is returned for envelopes written by an incompatible version.
var ErrVersion = errors.New("incompatible checkpoint version")

var envelopeFields = []string{
	"id", "version", "family", "created", "codec", "size", "digest", "state",
}

// Checkpoint describes a saved snapshot. Size is the length of the
// uncompressed snapshot and Digest is its BLAKE2b-256 hash.
type Checkpoint struct {
	ID      uuid.UUID
	Version string
	Family  rand.Family
	Created time.Time
	Codec   Codec
	Size    int
	Digest  [blake2b.Size256]byte
}

// Save writes the state of g to w as an envelope compressed with codec.
// The codec recorded in the envelope may be None if compression would not
// shrink the snapshot.
func Save(w io.Writer, g *rand.Generator, codec Codec) (*Checkpoint, error) {
	raw := g.State()
	data, used, err := compress(codec, raw)
	if err != nil {
		return nil, err
	}

	c := &Checkpoint{
		ID:      uuid.New(),
		Version: version.SourceVersion,
		Family:  g.Family(),
		Created: time.Now().UTC().Truncate(time.Second),
		Codec:   used,
		Size:    len(raw),
		Digest:  blake2b.Sum256(raw),
	}

	jw := &jwriter.Writer{}
	c.marshal(jw, data)
	if _, err := jw.DumpTo(w); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Checkpoint) marshal(w *jwriter.Writer, state []byte) {
	w.RawString(`{"id":`)
	w.String(c.ID.String())
	w.RawString(`,"version":`)
	w.String(c.Version)
	w.RawString(`,"family":`)
	w.String(c.Family.String())
	w.RawString(`,"created":`)
	w.String(c.Created.Format(time.RFC3339))
	w.RawString(`,"codec":`)
	w.String(string(c.Codec))
	w.RawString(`,"size":`)
	w.Int(c.Size)
	w.RawString(`,"digest":`)
	w.String(hex.EncodeToString(c.Digest[:]))
	w.RawString(`,"state":`)
	w.Base64Bytes(state)
	w.RawByte('}')
}

// Load reads an envelope written by Save and returns a generator restored
// to the saved state.
func Load(r io.Reader) (*rand.Generator, *Checkpoint, error) {
	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	if !gjson.ValidBytes(doc) {
		return nil, nil, fmt.Errorf("%w: envelope is not valid JSON", ErrCorrupt)
	}

	fields := gjson.GetManyBytes(doc, envelopeFields...)
	for i, f := range fields {
		if !f.Exists() {
			return nil, nil, fmt.Errorf("%w: missing field '%s'",
				ErrCorrupt, envelopeFields[i])
		}
	}

	c := &Checkpoint{Version: fields[1].String()}
	readable, err := version.Readable(c.Version)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	} else if !readable {
		return nil, nil, fmt.Errorf("%w: written by %s, this is %s",
			ErrVersion, c.Version, version.SourceVersion)
	}

	if c.ID, err = uuid.Parse(fields[0].String()); err != nil {
		return nil, nil, fmt.Errorf("%w: id: %v", ErrCorrupt, err)
	}
	if c.Family, err = rand.Lookup(fields[2].String()); err != nil {
		return nil, nil, err
	}
	if c.Created, err = time.Parse(time.RFC3339, fields[3].String()); err != nil {
		return nil, nil, fmt.Errorf("%w: created: %v", ErrCorrupt, err)
	}
	if c.Codec, err = ParseCodec(fields[4].String()); err != nil {
		return nil, nil, err
	}
	c.Size = int(fields[5].Int())
	digest, err := hex.DecodeString(fields[6].String())
	if err != nil || len(digest) != len(c.Digest) {
		return nil, nil, fmt.Errorf("%w: malformed digest", ErrCorrupt)
	}
	copy(c.Digest[:], digest)

	data, err := base64.StdEncoding.DecodeString(fields[7].String())
	if err != nil {
		return nil, nil, fmt.Errorf("%w: state: %v", ErrCorrupt, err)
	}

	g, err := rand.New(c.Family, 0)
	if err != nil {
		return nil, nil, err
	}
	// Snapshots of a family all have the same length.
	if want := len(g.State()); c.Size != want {
		return nil, nil, fmt.Errorf("%w: size %d, %s snapshots are %d bytes",
			ErrCorrupt, c.Size, c.Family, want)
	}

	raw, err := decompress(c.Codec, data, c.Size)
	if err != nil {
		return nil, nil, err
	}
	if blake2b.Sum256(raw) != c.Digest {
		return nil, nil, fmt.Errorf("%w: digest mismatch", ErrCorrupt)
	}
	if err := g.SetState(raw); err != nil {
		return nil, nil, err
	}
	return g, c, nil
}

// SaveFile is Save to a file. A leading ~ in path is expanded to the home
// directory and the file is replaced atomically.
func SaveFile(path string, g *rand.Generator, codec Codec) (*Checkpoint, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	c, err := Save(tmp, g, codec)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile is Load from a file. A leading ~ in path is expanded to the home
// directory.
func LoadFile(path string) (*rand.Generator, *Checkpoint, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Load(f)
}
