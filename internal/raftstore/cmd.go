package raftstore

import (
	"encoding/json"
	"fmt"
	"time"

	regionpkg "regionkv/internal/region"
)

// OpType describes the kind of mutation carried in a raft command.
type OpType int8

const (
	OpPut OpType = iota
	OpDelete
)

// Operation represents a single key mutation.
type Operation struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value,omitempty"`
	Type  OpType `json:"type"`
}

// CmdHeader addresses a command to one region replica and pins the
// epoch the issuer observed, so the consumer can reject stale requests
// after splits or membership changes.
type CmdHeader struct {
	RegionID regionpkg.ID   `json:"region_id"`
	PeerID   uint64         `json:"peer_id"`
	Epoch    regionpkg.Epoch `json:"epoch"`
	Term     uint64         `json:"term,omitempty"`
}

// RaftCmdRequest is the structure replicated through raft once the
// target replica proposes it.
type RaftCmdRequest struct {
	Header     CmdHeader   `json:"header"`
	Operations []Operation `json:"operations"`
}

// Marshal serialises the request.
func (r *RaftCmdRequest) Marshal() ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("nil command request")
	}
	return json.Marshal(r)
}

// UnmarshalRaftCmdRequest deserialises request bytes.
func UnmarshalRaftCmdRequest(data []byte) (*RaftCmdRequest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty command payload")
	}
	var req RaftCmdRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// RaftCmdResponse is delivered through the command's callback once the
// command has been applied (or rejected) by the replica.
type RaftCmdResponse struct {
	Header   CmdHeader `json:"header"`
	CommitTs uint64    `json:"commit_ts,omitempty"`
}

// Callback completes a proposal. It is invoked exactly once, by the
// consuming worker, never by the router.
type Callback func(*RaftCmdResponse, error)

// RaftCommand pairs a client or administrative request with its
// completion callback. Deadline, when non-zero, travels with the
// command; enforcement belongs to the consuming state machine.
type RaftCommand struct {
	Request  *RaftCmdRequest
	Callback Callback
	Deadline time.Time
}

func (*RaftCommand) peerMsg() {}

// NewRaftCommand builds a command without a deadline.
func NewRaftCommand(req *RaftCmdRequest, cb Callback) *RaftCommand {
	return &RaftCommand{Request: req, Callback: cb}
}

// RegionID returns the destination region from the request header.
func (c *RaftCommand) RegionID() regionpkg.ID {
	if c == nil || c.Request == nil {
		return 0
	}
	return c.Request.Header.RegionID
}
