package codec

import (
	"bytes"
	"encoding/binary"
	"io"

	"forest-ca/internal/core"
	"forest-ca/internal/errx"
)

// HeaderSize is the encoded size of a Header in bytes.
const HeaderSize = 20

// Version is the current versioned-format revision.
const Version uint16 = 1

// Magic opens every versioned file. Read as a float32 state it is a tiny
// non-integer value, which Encode never writes, so legacy files cannot start
// with it.
var Magic = [4]byte{'F', 'C', 'A', '1'}

// Format identifies the on-disk layout of a cell file.
type Format int

const (
	FormatLegacy Format = iota
	FormatV1
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatV1:
		return "v1"
	default:
		return "unknown"
	}
}

// Header prefixes the records of a versioned file.
type Header struct {
	Version    uint16
	RecordSize uint16
	Width      uint32
	Height     uint32
	Records    uint32
}

// NewHeader describes g in the current format revision.
func NewHeader(g *core.Grid) Header {
	return Header{
		Version:    Version,
		RecordSize: RecordSize,
		Width:      uint32(g.W),
		Height:     uint32(g.H),
		Records:    uint32(g.W * g.H),
	}
}

// MarshalBinary encodes h including the magic bytes.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic[:])
	byteOrder.PutUint16(buf[4:], h.Version)
	byteOrder.PutUint16(buf[6:], h.RecordSize)
	byteOrder.PutUint32(buf[8:], h.Width)
	byteOrder.PutUint32(buf[12:], h.Height)
	byteOrder.PutUint32(buf[16:], h.Records)
	return buf, nil
}

// ParseHeader decodes and checks a versioned header. The caller is expected
// to have matched Magic already.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, errx.ErrFormat.Withf("truncated header").With("bytes", len(data))
	}
	if !bytes.Equal(data[:4], Magic[:]) {
		return Header{}, errx.ErrFormat.Withf("bad magic").With("magic", string(data[:4]))
	}
	h := Header{
		Version:    binary.LittleEndian.Uint16(data[4:]),
		RecordSize: binary.LittleEndian.Uint16(data[6:]),
		Width:      binary.LittleEndian.Uint32(data[8:]),
		Height:     binary.LittleEndian.Uint32(data[12:]),
		Records:    binary.LittleEndian.Uint32(data[16:]),
	}
	switch {
	case h.Version != Version:
		return Header{}, errx.ErrFormat.Withf("unsupported format version %d", h.Version)
	case h.RecordSize != RecordSize:
		return Header{}, errx.ErrFormat.Withf("unsupported record size %d", h.RecordSize)
	case h.Width == 0 || h.Height == 0:
		return Header{}, errx.ErrFormat.Withf("header has empty dimensions").
			With("width", h.Width).With("height", h.Height)
	case uint64(h.Width)*uint64(h.Height) != uint64(h.Records):
		return Header{}, errx.ErrFormat.Withf("record count does not match dimensions").
			With("records", h.Records).With("width", h.Width).With("height", h.Height)
	}
	return h, nil
}

// EncodeWithHeader writes a header followed by the record stream.
func EncodeWithHeader(w io.Writer, g *core.Grid) error {
	hdr, _ := NewHeader(g).MarshalBinary()
	if _, err := w.Write(hdr); err != nil {
		return errx.ErrIO.Withf("write header").WithCause(err)
	}
	return Encode(w, g)
}

// SaveWithHeader writes g to path in the versioned layout.
func SaveWithHeader(g *core.Grid, path string) error {
	return writeFile(path, func(w io.Writer) error { return EncodeWithHeader(w, g) })
}

// SaveFormat writes g to path in the requested layout.
func SaveFormat(g *core.Grid, path string, f Format) error {
	if f == FormatV1 {
		return SaveWithHeader(g, path)
	}
	return Save(g, path)
}

// IsVersioned reports whether data starts with Magic.
func IsVersioned(data []byte) bool {
	return len(data) >= len(Magic) && bytes.Equal(data[:len(Magic)], Magic[:])
}

// DecodeAuto decodes either layout. For a versioned file, non-zero width and
// height must agree with the header; zero means "take it from the header".
// A legacy file always needs both dimensions.
func DecodeAuto(data []byte, width, height int) (*core.Grid, Format, error) {
	if !IsVersioned(data) {
		g, err := Decode(data, width, height)
		return g, FormatLegacy, err
	}
	h, err := ParseHeader(data)
	if err != nil {
		return nil, FormatV1, err
	}
	if (width != 0 && width != int(h.Width)) || (height != 0 && height != int(h.Height)) {
		return nil, FormatV1, errx.ErrFormat.Withf("header dimensions do not match request").
			With("header_width", h.Width).With("header_height", h.Height).
			With("width", width).With("height", height)
	}
	g, err := Decode(data[HeaderSize:], int(h.Width), int(h.Height))
	return g, FormatV1, err
}

// LoadAuto reads a cell file in either layout; see DecodeAuto.
func LoadAuto(path string, width, height int) (*core.Grid, Format, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, FormatLegacy, err
	}
	g, f, err := DecodeAuto(data, width, height)
	if err != nil {
		return nil, f, tagPath(err, path)
	}
	return g, f, nil
}
