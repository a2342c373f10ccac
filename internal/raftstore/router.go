package raftstore

import (
	"log"
	"time"

	regionpkg "regionkv/internal/region"
)

// StoreRouter delivers store-wide messages to the store state machine.
type StoreRouter interface {
	// SendStore is fire-and-forget: the store channel outliving the
	// router is a process invariant, so there is nothing for a caller
	// to handle.
	SendStore(msg StoreMsg)
}

// ProposalRouter delivers raft commands to their target region.
type ProposalRouter interface {
	SendProposal(cmd *RaftCommand) error
}

// CasualRouter delivers best-effort region notifications.
type CasualRouter interface {
	SendCasual(regionID regionpkg.ID, msg CasualMessage) error
}

// RaftStoreRouter is the full capability surface every component uses
// to reach a replica. Implementations must be safe for concurrent use.
type RaftStoreRouter interface {
	StoreRouter
	ProposalRouter
	CasualRouter

	// SendRaftMessage routes a decoded raft network message; the
	// destination region comes from the message itself.
	SendRaftMessage(msg *RaftMessage) error

	// SignificantSend delivers a message that must not be silently
	// dropped: it either lands in the region's queue or the caller gets
	// an explicit error.
	SignificantSend(regionID regionpkg.ID, msg SignificantMessage) error

	// BroadcastNormal invokes msgGen once per currently registered
	// region and enqueues the produced message there. Best-effort:
	// regions registered or closed mid-broadcast may be missed.
	BroadcastNormal(msgGen func() PeerMsg)

	// SendCommand wraps req+cb into a proposal and routes it.
	SendCommand(req *RaftCmdRequest, cb Callback) error

	// SendCommandWithDeadline attaches a deadline to the command; the
	// consuming state machine enforces it.
	SendCommandWithDeadline(req *RaftCmdRequest, cb Callback, deadline time.Time) error

	// ReportUnreachable broadcasts a store-unreachable significant
	// message to every region.
	ReportUnreachable(storeID uint64) error

	// BroadcastUnreachable sends the store-level unreachable event to
	// the store state machine.
	BroadcastUnreachable(storeID uint64)
}

// RaftRouter routes messages to per-region replica state machines and
// the store state machine. It composes the routing table with the two
// worker-facing channels.
type RaftRouter struct {
	peers       *peerMap
	peerSender  chan<- PeerEnvelope
	storeSender chan<- StoreMsg
	metrics     *routerMetrics
}

var _ RaftStoreRouter = (*RaftRouter)(nil)

// NewRaftRouter builds a router over caller-owned channels. The
// receiving ends are drained by the peer and store worker pools.
func NewRaftRouter(peerSender chan<- PeerEnvelope, storeSender chan<- StoreMsg) *RaftRouter {
	return &RaftRouter{
		peers:       newPeerMap(defaultShardCount),
		peerSender:  peerSender,
		storeSender: storeSender,
		metrics:     defaultRouterMetrics,
	}
}

// Register inserts the routing entry for a freshly created replica and
// derives its applier. Upstream guarantees exactly one registration per
// region instance; a live entry being overwritten indicates a lifecycle
// bug and is logged.
func (r *RaftRouter) Register(peer *PeerFsm) {
	region := peer.Region()
	if region == nil {
		log.Printf("[raftstore] refusing to register peer %d without region metadata", peer.PeerID())
		return
	}
	id := region.ID
	log.Printf("[raftstore] register region %d:%d, peer %d", id, region.Epoch.Version, peer.PeerID())
	applier := NewApplierFromPeer(peer)
	if existed := r.peers.Set(id, newPeerState(applier, peer)); existed {
		log.Printf("[raftstore] region %d registered twice, replacing live entry", id)
	}
	r.metrics.regions.Set(float64(r.peers.Len()))
}

// Close marks the region's entry closed, then removes it. The order
// matters: once the flag is set, concurrent senders observe rejection
// before the entry disappears, and after Close returns every send for
// the id fails with ErrRegionNotFound. Closing an unknown region is a
// no-op.
func (r *RaftRouter) Close(id regionpkg.ID) {
	state := r.peers.Get(id)
	if state == nil {
		return
	}
	state.closed.Store(true)
	// The caller-supplied id is authoritative; the fsm's own region id
	// can only disagree if lifecycle bookkeeping broke upstream.
	state.WithFsm(func(fsm *PeerFsm) {
		if region := fsm.Region(); region != nil && region.ID != id {
			log.Printf("[raftstore] close id %d does not match fsm region %d", id, region.ID)
		}
	})
	r.peers.Remove(id)
	r.metrics.regions.Set(float64(r.peers.Len()))
}

// Send routes a peer message to the given region. A message enqueued in
// the window between the closed-flag check here and the flag being set
// in Close may still reach the channel; the consuming worker discards
// envelopes for regions it has already retired. That window is the
// price of a lock-free fast path and is deliberate.
func (r *RaftRouter) Send(id regionpkg.ID, msg PeerMsg) error {
	if state := r.peers.Get(id); state != nil && !state.Closed() {
		r.peerSender <- PeerEnvelope{RegionID: id, Msg: msg}
		return nil
	}
	return &ErrRegionNotFound{RegionID: id, Msg: msg}
}

// SendStore delivers a store-wide message.
func (r *RaftRouter) SendStore(msg StoreMsg) {
	r.storeSender <- msg
}

// SendProposal routes a command to the region named in its header.
func (r *RaftRouter) SendProposal(cmd *RaftCommand) error {
	return r.sendCounted("proposal", cmd.RegionID(), cmd)
}

// SendCasual routes a best-effort notification.
func (r *RaftRouter) SendCasual(regionID regionpkg.ID, msg CasualMessage) error {
	return r.sendCounted("casual", regionID, msg)
}

// SendRaftMessage routes a decoded raft network message using the
// region id carried by the message itself.
func (r *RaftRouter) SendRaftMessage(msg *RaftMessage) error {
	return r.sendCounted("raft_message", msg.RegionID, msg)
}

// SignificantSend routes a must-not-drop message. The delivery contract
// is the same as Send; what differs is the caller's obligation to
// surface the error loudly instead of ignoring it.
func (r *RaftRouter) SignificantSend(regionID regionpkg.ID, msg SignificantMessage) error {
	return r.sendCounted("significant", regionID, msg)
}

func (r *RaftRouter) sendCounted(kind string, id regionpkg.ID, msg PeerMsg) error {
	if err := r.Send(id, msg); err != nil {
		r.metrics.sends.WithLabelValues(kind, "region_not_found").Inc()
		return err
	}
	r.metrics.sends.WithLabelValues(kind, "ok").Inc()
	return nil
}

// BroadcastNormal enqueues one generated message per registered region.
// The iteration holds no table-wide lock, so the set of recipients is a
// weakly consistent snapshot.
func (r *RaftRouter) BroadcastNormal(msgGen func() PeerMsg) {
	r.peers.Range(func(id regionpkg.ID, state *PeerState) bool {
		if state.Closed() {
			return true
		}
		r.peerSender <- PeerEnvelope{RegionID: id, Msg: msgGen()}
		r.metrics.broadcasts.Inc()
		return true
	})
}

// SendCommand wraps the request and callback into a proposal.
func (r *RaftRouter) SendCommand(req *RaftCmdRequest, cb Callback) error {
	return r.SendProposal(NewRaftCommand(req, cb))
}

// SendCommandWithDeadline attaches a deadline before routing; the
// router only carries it, the replica enforces it.
func (r *RaftRouter) SendCommandWithDeadline(req *RaftCmdRequest, cb Callback, deadline time.Time) error {
	cmd := NewRaftCommand(req, cb)
	cmd.Deadline = deadline
	return r.SendProposal(cmd)
}

// ReportUnreachable tells every region that a store went dark, feeding
// each raft group's failure detector.
func (r *RaftRouter) ReportUnreachable(storeID uint64) error {
	r.BroadcastNormal(func() PeerMsg {
		return SignificantMessage{Kind: SignificantStoreUnreachable, StoreID: storeID}
	})
	return nil
}

// BroadcastUnreachable delivers the store-level unreachable event.
func (r *RaftRouter) BroadcastUnreachable(storeID uint64) {
	r.SendStore(StoreMsg{Kind: StoreMsgUnreachable, StoreID: storeID})
}
