package raft

import (
	raftstore "regionkv/internal/raftstore"
)

// Transport moves raft messages between stores. The destination store
// is taken from the message's ToPeer.
type Transport interface {
	// Send delivers one decoded raft message to its destination store.
	Send(msg *raftstore.RaftMessage) error

	// AddStore records the address of a store.
	AddStore(id uint64, addr string) error

	// RemoveStore drops a store and tears down any open stream to it.
	RemoveStore(id uint64) error
}

// NoopTransport is a placeholder transport used by single-store setups
// and tests where messages never leave the process.
type NoopTransport struct{}

func NewNoopTransport() Transport { return &NoopTransport{} }

func (t *NoopTransport) Send(msg *raftstore.RaftMessage) error { return nil }

func (t *NoopTransport) AddStore(id uint64, addr string) error { return nil }

func (t *NoopTransport) RemoveStore(id uint64) error { return nil }
