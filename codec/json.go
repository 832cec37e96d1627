package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// Values round-trip as long as encoding/json can represent them: exported
// struct fields, maps with string-like keys, slices and scalars. Channels and
// funcs are rejected by Marshal.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec new snapshots use when none is configured.
var Default Codec = GoJSON{}
