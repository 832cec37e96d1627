package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/slotvec/codec"
	"github.com/hupe1980/slotvec/internal/conv"
)

const (
	// MagicNumber identifies slot vector snapshots (ASCII: "SLV1").
	MagicNumber = 0x534c5631
	// Version is the current snapshot format version.
	Version = 1

	// HeaderSize is the encoded size of Header.
	HeaderSize = 64
)

var (
	ErrInvalidMagic       = errors.New("snapshot: invalid magic number")
	ErrInvalidVersion     = errors.New("snapshot: unsupported version")
	ErrUnknownCompression = errors.New("snapshot: unknown compression")
	ErrCodecMismatch      = errors.New("snapshot: codec mismatch")
	ErrCorrupt            = errors.New("snapshot: corrupt payload")

	// ErrUnknownCodec is returned when the header names a codec that is not
	// built in and none was configured.
	ErrUnknownCodec = codec.ErrUnknownCodec
)

// Header is the 64-byte header at the start of every snapshot.
type Header struct {
	Magic         uint32
	Version       uint32
	Compression   Compression
	Policy        uint8 // slotvec.ReusePolicy
	Padding       [2]byte
	Codec         [codec.MaxNameLen]byte // zero padded
	SlotCount     uint64
	OccupiedCount uint64
	FreeCount     uint64
	PayloadSize   uint64 // stored (possibly compressed) bytes
	Checksum      uint32 // CRC32 (IEEE) of the stored payload
}

// CodecName returns the codec name without padding.
func (h *Header) CodecName() string {
	return string(bytes.TrimRight(h.Codec[:], "\x00"))
}

func (h *Header) setCodecName(name string) error {
	if len(name) == 0 || len(name) > codec.MaxNameLen {
		return fmt.Errorf("snapshot: codec name %q must be 1 to %d bytes", name, codec.MaxNameLen)
	}
	h.Codec = [codec.MaxNameLen]byte{}
	copy(h.Codec[:], name)
	return nil
}

func (h *Header) validate() error {
	if h.Magic != MagicNumber {
		return fmt.Errorf("%w: 0x%08x", ErrInvalidMagic, h.Magic)
	}
	if h.Version != Version {
		return fmt.Errorf("%w: %d", ErrInvalidVersion, h.Version)
	}
	if !h.Compression.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCompression, h.Compression)
	}
	if h.OccupiedCount > h.SlotCount || h.FreeCount != h.SlotCount-h.OccupiedCount {
		return fmt.Errorf("%w: %d slots, %d occupied, %d free", ErrCorrupt, h.SlotCount, h.OccupiedCount, h.FreeCount)
	}
	for _, n := range []uint64{h.SlotCount, h.PayloadSize} {
		if _, err := conv.Uint64ToInt(n); err != nil {
			return fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
	}
	return nil
}

func writeHeader(w io.Writer, h *Header) error {
	return binary.Write(w, binary.LittleEndian, h)
}

func readHeader(r io.Reader) (*Header, error) {
	var h Header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header", ErrCorrupt)
		}
		return nil, err
	}
	if err := h.validate(); err != nil {
		return nil, err
	}
	return &h, nil
}

// ChecksumMismatchError is returned when checksum verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("snapshot: checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}

// IsChecksumMismatch returns true if err is or wraps a checksum mismatch.
func IsChecksumMismatch(err error) bool {
	var cm *ChecksumMismatchError
	return errors.As(err, &cm)
}

func verifyChecksum(data []byte, expected uint32) error {
	if actual := crc32.ChecksumIEEE(data); actual != expected {
		return &ChecksumMismatchError{Expected: expected, Actual: actual}
	}
	return nil
}

// payloadReader walks the uncompressed payload.
type payloadReader struct {
	buf []byte
	off int
}

func (p *payloadReader) remaining() int { return len(p.buf) - p.off }

func (p *payloadReader) uint32() (uint32, error) {
	if p.remaining() < 4 {
		return 0, fmt.Errorf("%w: truncated at offset %d", ErrCorrupt, p.off)
	}
	v := binary.LittleEndian.Uint32(p.buf[p.off:])
	p.off += 4
	return v, nil
}

func (p *payloadReader) next(n int) ([]byte, error) {
	if n < 0 || p.remaining() < n {
		return nil, fmt.Errorf("%w: truncated at offset %d", ErrCorrupt, p.off)
	}
	b := p.buf[p.off : p.off+n]
	p.off += n
	return b, nil
}

// chunk reads a length-prefixed byte string.
func (p *payloadReader) chunk() ([]byte, error) {
	n, err := p.uint32()
	if err != nil {
		return nil, err
	}
	return p.next(int(n))
}

func appendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

func appendChunk(dst, b []byte) ([]byte, error) {
	n, err := conv.IntToUint32(len(b))
	if err != nil {
		return nil, fmt.Errorf("snapshot: chunk too large: %w", err)
	}
	dst = appendUint32(dst, n)
	return append(dst, b...), nil
}
