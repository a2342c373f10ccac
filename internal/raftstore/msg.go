package raftstore

import (
	regionpkg "regionkv/internal/region"

	"go.etcd.io/etcd/raft/v3/raftpb"
)

// PeerMsg is implemented by every message the router can deliver to a
// single region replica. Ownership of the message transfers to the
// channel on a successful send; on failure it is handed back inside
// ErrRegionNotFound.
type PeerMsg interface {
	peerMsg()
}

// PeerEnvelope pairs a peer message with its destination region. This is
// the unit consumed by the peer worker pool.
type PeerEnvelope struct {
	RegionID regionpkg.ID
	Msg      PeerMsg
}

// RaftMessage is a decoded raft network message addressed to one region
// replica. The raftpb payload is produced by the consensus engine on the
// sending store; the surrounding fields route it.
type RaftMessage struct {
	RegionID    regionpkg.ID
	FromPeer    regionpkg.Peer
	ToPeer      regionpkg.Peer
	RegionEpoch regionpkg.Epoch
	Message     raftpb.Message
}

func (*RaftMessage) peerMsg() {}

// SignificantKind enumerates events feeding raft's failure detector.
type SignificantKind int

const (
	// SignificantStoreUnreachable reports that a whole store cannot be
	// reached; every region with a peer there needs to know.
	SignificantStoreUnreachable SignificantKind = iota
	// SignificantPeerUnreachable reports a single unreachable peer.
	SignificantPeerUnreachable
	// SignificantSnapshotStatus reports the outcome of sending a
	// snapshot to a follower.
	SignificantSnapshotStatus
)

// SignificantMessage must never be silently dropped: consensus liveness
// detection depends on it eventually reaching the replica while the
// replica is alive. The router either enqueues it or returns an error.
type SignificantMessage struct {
	Kind     SignificantKind
	StoreID  uint64
	ToPeerID uint64
	// Rejected is meaningful for SignificantSnapshotStatus only.
	Rejected bool
}

func (SignificantMessage) peerMsg() {}

// CasualKind enumerates best-effort region-local notifications.
type CasualKind int

const (
	// CasualSplitRegion suggests the region split at the given keys.
	CasualSplitRegion CasualKind = iota
	// CasualRegionApproximateSize reports an estimated region size.
	CasualRegionApproximateSize
)

// CasualMessage is droppable; losing one costs freshness, not
// correctness.
type CasualMessage struct {
	Kind            CasualKind
	SplitKeys       [][]byte
	ApproximateSize uint64
}

func (CasualMessage) peerMsg() {}

// StoreMsgKind enumerates store-wide events.
type StoreMsgKind int

const (
	// StoreMsgUnreachable is the store-level twin of
	// SignificantStoreUnreachable, consumed by the store state machine.
	StoreMsgUnreachable StoreMsgKind = iota
	// StoreMsgTick drives periodic store-level work.
	StoreMsgTick
	// StoreMsgSnapshotApplied notifies that a region finished applying
	// a snapshot.
	StoreMsgSnapshotApplied
)

// StoreMsg is addressed to the single store-wide state machine rather
// than any region.
type StoreMsg struct {
	Kind     StoreMsgKind
	StoreID  uint64
	RegionID regionpkg.ID
}
