// Package codec encodes the values stored in a slot vector snapshot.
//
// Snapshots record the codec name in their header, so a snapshot written with
// one codec is only readable with a codec of the same name.
package codec

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownCodec is returned by Lookup for names no built-in codec uses.
var ErrUnknownCodec = errors.New("codec: unknown codec")

// MaxNameLen is the longest codec name a snapshot header can record.
const MaxNameLen = 16

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}

// Lookup is ByName with an error matching ErrUnknownCodec.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// Names lists the built-in codec names in sorted order.
func Names() []string {
	names := []string{JSON{}.Name(), GoJSON{}.Name()}
	slices.Sort(names)
	return names
}

// MustMarshal is a helper for tests and benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}
