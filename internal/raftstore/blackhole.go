package raftstore

import (
	"time"

	regionpkg "regionkv/internal/region"
)

// RaftStoreBlackHole satisfies the full routing surface while routing
// nothing. It is used where a router must be structurally present but
// the subsystem is disabled, e.g. offline tooling. Every call succeeds
// immediately and never blocks.
type RaftStoreBlackHole struct{}

var _ RaftStoreRouter = RaftStoreBlackHole{}

func (RaftStoreBlackHole) SendStore(StoreMsg) {}

func (RaftStoreBlackHole) SendProposal(*RaftCommand) error { return nil }

func (RaftStoreBlackHole) SendCasual(regionpkg.ID, CasualMessage) error { return nil }

func (RaftStoreBlackHole) SendRaftMessage(*RaftMessage) error { return nil }

func (RaftStoreBlackHole) SignificantSend(regionpkg.ID, SignificantMessage) error { return nil }

func (RaftStoreBlackHole) BroadcastNormal(func() PeerMsg) {}

func (RaftStoreBlackHole) SendCommand(*RaftCmdRequest, Callback) error { return nil }

func (RaftStoreBlackHole) SendCommandWithDeadline(*RaftCmdRequest, Callback, time.Time) error {
	return nil
}

func (RaftStoreBlackHole) ReportUnreachable(uint64) error { return nil }

func (RaftStoreBlackHole) BroadcastUnreachable(uint64) {}
