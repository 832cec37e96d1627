package snapshot

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/hupe1980/slotvec"
	"github.com/hupe1980/slotvec/codec"
	"github.com/hupe1980/slotvec/internal/occupancy"
)

// Info describes a snapshot without decoding its values.
type Info struct {
	Version     uint32
	Codec       string
	Compression Compression
	Policy      slotvec.ReusePolicy
	Len         int // slot count
	Count       int // occupied slots
	PayloadSize int64
}

func (h *Header) info() Info {
	return Info{
		Version:     h.Version,
		Codec:       h.CodecName(),
		Compression: h.Compression,
		Policy:      slotvec.ReusePolicy(h.Policy),
		Len:         int(h.SlotCount),
		Count:       int(h.OccupiedCount),
		PayloadSize: int64(h.PayloadSize),
	}
}

// Encode writes a snapshot of v to w and returns the number of bytes written.
func Encode[T any](w io.Writer, v *slotvec.Vector[T], optFns ...Option) (int64, error) {
	o := applyOptions(optFns)
	c := o.codec
	if c == nil {
		c = codec.Default
	}
	if !o.compression.valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCompression, o.compression)
	}

	h := &Header{
		Magic:         MagicNumber,
		Version:       Version,
		Compression:   o.compression,
		Policy:        uint8(v.Policy()),
		SlotCount:     uint64(v.Len()),
		OccupiedCount: uint64(v.Count()),
	}
	if err := h.setCodecName(c.Name()); err != nil {
		return 0, err
	}

	occ := occupancy.New(v.Len())
	for i := range v.Indices() {
		occ.Add(i)
	}
	bitmap, err := occ.MarshalBinary()
	if err != nil {
		return 0, err
	}

	free := v.FreeIndices()
	h.FreeCount = uint64(len(free))

	payload, err := appendChunk(make([]byte, 0, 4+len(bitmap)+4*len(free)+8*v.Count()), bitmap)
	if err != nil {
		return 0, err
	}
	for _, idx := range free {
		payload = appendUint32(payload, uint32(idx))
	}
	for i, value := range v.All() {
		b, err := c.Marshal(value)
		if err != nil {
			return 0, fmt.Errorf("snapshot: encode index %d with %s: %w", i, c.Name(), err)
		}
		if payload, err = appendChunk(payload, b); err != nil {
			return 0, err
		}
	}

	stored, err := compress(payload, o.compression)
	if err != nil {
		return 0, err
	}
	h.PayloadSize = uint64(len(stored))
	h.Checksum = crc32.ChecksumIEEE(stored)

	if err := writeHeader(w, h); err != nil {
		return 0, err
	}
	n, err := w.Write(stored)
	return int64(HeaderSize + n), err
}

// ReadInfo reads and validates only the header.
func ReadInfo(r io.Reader) (Info, error) {
	h, err := readHeader(r)
	if err != nil {
		return Info{}, err
	}
	return h.info(), nil
}

// Decode reads a snapshot written by Encode.
func Decode[T any](r io.Reader, optFns ...Option) (*slotvec.Vector[T], error) {
	o := applyOptions(optFns)

	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	policy := slotvec.ReusePolicy(h.Policy)
	if !policy.Valid() {
		return nil, fmt.Errorf("%w: reuse policy %d", ErrCorrupt, h.Policy)
	}

	c, err := resolveCodec(h.CodecName(), o.codec)
	if err != nil {
		return nil, err
	}

	var stored bytes.Buffer
	if _, err := io.Copy(&stored, io.LimitReader(r, int64(h.PayloadSize))); err != nil {
		return nil, err
	}
	if uint64(stored.Len()) != h.PayloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, stored.Len(), h.PayloadSize)
	}
	if err := verifyChecksum(stored.Bytes(), h.Checksum); err != nil {
		return nil, err
	}

	payload, err := decompress(stored.Bytes(), h.Compression)
	if err != nil {
		return nil, err
	}

	return decodePayload[T](h, payload, c, policy)
}

func resolveCodec(name string, configured codec.Codec) (codec.Codec, error) {
	if configured != nil {
		if configured.Name() != name {
			return nil, fmt.Errorf("%w: snapshot uses %q, configured %q", ErrCodecMismatch, name, configured.Name())
		}
		return configured, nil
	}
	return codec.Lookup(name)
}

func decodePayload[T any](h *Header, payload []byte, c codec.Codec, policy slotvec.ReusePolicy) (*slotvec.Vector[T], error) {
	p := &payloadReader{buf: payload}

	bitmap, err := p.chunk()
	if err != nil {
		return nil, err
	}
	occ := occupancy.New(0)
	if err := occ.UnmarshalBinaryMax(bitmap, h.SlotCount); err != nil {
		return nil, fmt.Errorf("%w: occupancy bitmap: %w", ErrCorrupt, err)
	}
	if uint64(occ.Count()) != h.OccupiedCount {
		return nil, fmt.Errorf("%w: bitmap holds %d slots, header says %d", ErrCorrupt, occ.Count(), h.OccupiedCount)
	}

	if h.FreeCount > uint64(p.remaining())/4 {
		return nil, fmt.Errorf("%w: free list truncated", ErrCorrupt)
	}
	free := make([]int, h.FreeCount)
	for i := range free {
		idx, err := p.uint32()
		if err != nil {
			return nil, err
		}
		free[i] = int(idx)
	}

	indices := make([]int, 0, h.OccupiedCount)
	values := make([]T, 0, h.OccupiedCount)
	for i, ok := occ.Next(0); ok; i, ok = occ.Next(i + 1) {
		b, err := p.chunk()
		if err != nil {
			return nil, err
		}
		var value T
		if err := c.Unmarshal(b, &value); err != nil {
			return nil, fmt.Errorf("snapshot: decode index %d with %s: %w", i, c.Name(), err)
		}
		indices = append(indices, i)
		values = append(values, value)
	}
	if p.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, p.remaining())
	}

	entries := func(yield func(int, T) bool) {
		for k, idx := range indices {
			if !yield(idx, values[k]) {
				return
			}
		}
	}

	v, err := slotvec.Restore(int(h.SlotCount), entries, free, slotvec.WithReusePolicy(policy))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return v, nil
}
