package region

import "bytes"

// ID uniquely identifies a Region. It is stable for the region's
// lifetime; splits and merges allocate fresh IDs elsewhere.
type ID uint64

// KeyRange describes the inclusive-exclusive key range handled by a Region.
type KeyRange struct {
	Start []byte
	End   []byte // empty slice denotes infinity
}

// Epoch tracks structural changes of a Region.
type Epoch struct {
	// Version increases when the key range of a Region changes (split/merge).
	Version uint64
	// ConfVersion increases when the peer set changes (add/remove peers).
	ConfVersion uint64
}

// Stale reports whether e lags behind other in either dimension.
// Messages stamped with a stale epoch are rejected by the replica.
func (e Epoch) Stale(other Epoch) bool {
	return e.Version < other.Version || e.ConfVersion < other.ConfVersion
}

// PeerRole distinguishes voting members from learners.
type PeerRole int

const (
	// Voter is a full voting member of the Region's Raft group.
	Voter PeerRole = iota
	// Learner only receives logs; not part of quorum until promoted.
	Learner
)

// Peer describes a Region replica hosted on a Store.
type Peer struct {
	ID      uint64
	StoreID uint64
	Role    PeerRole
}

// Region aggregates metadata describing a single shard of the keyspace.
type Region struct {
	ID    ID
	Range KeyRange
	Epoch Epoch
	Peers []Peer
}

// ContainsKey reports whether the region manages the provided key.
func (r *Region) ContainsKey(key []byte) bool {
	if r == nil {
		return false
	}
	if len(r.Range.Start) > 0 && bytes.Compare(key, r.Range.Start) < 0 {
		return false
	}
	if len(r.Range.End) > 0 && bytes.Compare(key, r.Range.End) >= 0 {
		return false
	}
	return true
}

// PeerOnStore returns the region's peer hosted on the given store, if any.
func (r *Region) PeerOnStore(storeID uint64) (Peer, bool) {
	if r == nil {
		return Peer{}, false
	}
	for _, p := range r.Peers {
		if p.StoreID == storeID {
			return p, true
		}
	}
	return Peer{}, false
}

// Clone returns a copy of the Region metadata for safe mutation.
func (r *Region) Clone() Region {
	if r == nil {
		return Region{}
	}
	cp := *r
	cp.Range = KeyRange{
		Start: append([]byte(nil), r.Range.Start...),
		End:   append([]byte(nil), r.Range.End...),
	}
	if len(r.Peers) > 0 {
		cp.Peers = append([]Peer(nil), r.Peers...)
	}
	return cp
}
