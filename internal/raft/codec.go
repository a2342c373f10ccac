package raft

import "encoding/json"

// jsonCodec marshals the hand-written api structs on the wire. Both
// ends force it, so the name never hits content-type negotiation.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return "json" }
