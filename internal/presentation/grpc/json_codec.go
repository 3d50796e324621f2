package grpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
)

// codecName is the content-subtype clients must request; the scoring wire
// messages are JSON-tagged structs, not protobuf messages.
const codecName = "json"

func init() {
	encoding.RegisterCodec(scoringCodec{})
}

// scoringCodec marshals the scoring service's wire messages as JSON.
type scoringCodec struct{}

func (scoringCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (scoringCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (scoringCodec) Name() string { return codecName }
