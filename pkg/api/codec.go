package api

import (
	"encoding/json"
	"fmt"

	"connectrpc.com/connect"
)

// CodecName is the Connect codec name for plain JSON messages.
// It replaces Connect's default protojson codec, which needs generated types.
const CodecName = "json"

// JSONCodec marshals the plain Go message structs in this package with encoding/json.
type JSONCodec struct{}

var _ connect.Codec = JSONCodec{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}

// WithJSON is the option handlers and clients need to speak JSON messages.
func WithJSON() connect.Option {
	return connect.WithCodec(JSONCodec{})
}
