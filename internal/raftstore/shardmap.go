package raftstore

import (
	"sync"

	regionpkg "regionkv/internal/region"
)

const defaultShardCount = 32

// peerMap is a sharded concurrent map from region ID to PeerState.
// Lookups from sender goroutines and structural changes from the
// lifecycle path lock only the shard owning the key, so unrelated
// regions never contend.
type peerMap struct {
	shards []*peerMapShard
}

type peerMapShard struct {
	sync.RWMutex
	items map[regionpkg.ID]*PeerState
}

func newPeerMap(shardCount int) *peerMap {
	if shardCount <= 0 {
		shardCount = defaultShardCount
	}
	m := &peerMap{shards: make([]*peerMapShard, shardCount)}
	for i := range m.shards {
		m.shards[i] = &peerMapShard{items: make(map[regionpkg.ID]*PeerState)}
	}
	return m
}

func (m *peerMap) shardFor(id regionpkg.ID) *peerMapShard {
	// Fibonacci hashing; region IDs are allocated sequentially, so the
	// raw low bits would pile neighbours into the same shard.
	h := uint64(id) * 0x9e3779b97f4a7c15
	return m.shards[h%uint64(len(m.shards))]
}

func (m *peerMap) Get(id regionpkg.ID) *PeerState {
	shard := m.shardFor(id)
	shard.RLock()
	defer shard.RUnlock()
	return shard.items[id]
}

// Set stores the entry and reports whether an entry was already present
// for the id.
func (m *peerMap) Set(id regionpkg.ID, state *PeerState) bool {
	shard := m.shardFor(id)
	shard.Lock()
	defer shard.Unlock()
	_, existed := shard.items[id]
	shard.items[id] = state
	return existed
}

func (m *peerMap) Remove(id regionpkg.ID) {
	shard := m.shardFor(id)
	shard.Lock()
	defer shard.Unlock()
	delete(shard.items, id)
}

func (m *peerMap) Len() int {
	total := 0
	for _, shard := range m.shards {
		shard.RLock()
		total += len(shard.items)
		shard.RUnlock()
	}
	return total
}

// Range calls f for each entry until f returns false. The view is
// weakly consistent: entries added or removed concurrently may or may
// not be observed, and no lock is held across the whole table.
func (m *peerMap) Range(f func(id regionpkg.ID, state *PeerState) bool) {
	for _, shard := range m.shards {
		shard.RLock()
		ids := make([]regionpkg.ID, 0, len(shard.items))
		states := make([]*PeerState, 0, len(shard.items))
		for id, st := range shard.items {
			ids = append(ids, id)
			states = append(states, st)
		}
		shard.RUnlock()
		for i := range ids {
			if !f(ids[i], states[i]) {
				return
			}
		}
	}
}
