package raftstore

import (
	"sync"
	"sync/atomic"

	regionpkg "regionkv/internal/region"
)

// PeerFsm is the replica state machine for one region, driven by the
// peer worker that currently owns it. The consensus logic itself lives
// behind this type; the router only needs identity and metadata.
type PeerFsm struct {
	peerID uint64
	region *regionpkg.Region
}

// NewPeerFsm constructs a replica state machine shell for registration.
func NewPeerFsm(peerID uint64, region *regionpkg.Region) *PeerFsm {
	return &PeerFsm{peerID: peerID, region: region}
}

// PeerID returns the replica's peer identifier.
func (p *PeerFsm) PeerID() uint64 { return p.peerID }

// Region returns the region metadata the replica serves.
func (p *PeerFsm) Region() *regionpkg.Region { return p.region }

// Applier applies committed raft log entries to the storage engine for
// one region. It is derived from the peer at registration time so the
// apply worker never races replica creation.
type Applier struct {
	regionID regionpkg.ID
	peerID   uint64
}

// NewApplierFromPeer derives the applier for a freshly registered peer.
func NewApplierFromPeer(fsm *PeerFsm) *Applier {
	a := &Applier{peerID: fsm.PeerID()}
	if r := fsm.Region(); r != nil {
		a.regionID = r.ID
	}
	return a
}

// RegionID returns the region the applier serves.
func (a *Applier) RegionID() regionpkg.ID { return a.regionID }

// PeerState is the routing-table entry for one region: the replica fsm
// and its applier, owned collectively by the table and whichever worker
// currently drives the replica. The closed flag is readable without the
// lock so the send fast path never contends with the owning worker.
type PeerState struct {
	closed atomic.Bool

	mu      sync.Mutex
	fsm     *PeerFsm
	applier *Applier
}

func newPeerState(applier *Applier, fsm *PeerFsm) *PeerState {
	return &PeerState{fsm: fsm, applier: applier}
}

// Closed reports whether the entry no longer accepts deliveries.
func (s *PeerState) Closed() bool { return s.closed.Load() }

// Applier returns the region's applier.
func (s *PeerState) Applier() *Applier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applier
}

// WithFsm runs f with exclusive access to the replica state machine.
// Callers must not hold the lock across channel sends.
func (s *PeerState) WithFsm(f func(*PeerFsm)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(s.fsm)
}
