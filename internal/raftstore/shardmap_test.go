package raftstore

import (
	"sync"
	"testing"

	regionpkg "regionkv/internal/region"
)

func testState(id regionpkg.ID) *PeerState {
	fsm := NewPeerFsm(uint64(id)*10, &regionpkg.Region{ID: id})
	return newPeerState(NewApplierFromPeer(fsm), fsm)
}

func TestPeerMapBasicOps(t *testing.T) {
	m := newPeerMap(0) // zero falls back to the default shard count

	if got := m.Get(1); got != nil {
		t.Fatalf("expected empty map, got %v", got)
	}
	st := testState(1)
	if existed := m.Set(1, st); existed {
		t.Fatalf("fresh insert reported an existing entry")
	}
	if existed := m.Set(1, st); !existed {
		t.Fatalf("overwrite not reported")
	}
	if m.Get(1) != st {
		t.Fatalf("lookup returned a different entry")
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	m.Remove(1)
	if m.Get(1) != nil {
		t.Fatalf("entry survived removal")
	}
}

func TestPeerMapConcurrentAccess(t *testing.T) {
	m := newPeerMap(8)
	const perWorker = 200

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			base := regionpkg.ID(w * perWorker)
			for i := 0; i < perWorker; i++ {
				id := base + regionpkg.ID(i)
				m.Set(id, testState(id))
				if m.Get(id) == nil {
					t.Errorf("id %d missing right after insert", id)
					return
				}
				if i%2 == 0 {
					m.Remove(id)
				}
			}
		}(w)
	}
	wg.Wait()

	want := 8 * perWorker / 2
	if got := m.Len(); got != want {
		t.Fatalf("len = %d, want %d", got, want)
	}
}

func TestPeerMapRange(t *testing.T) {
	m := newPeerMap(4)
	for id := regionpkg.ID(1); id <= 10; id++ {
		m.Set(id, testState(id))
	}

	seen := make(map[regionpkg.ID]bool)
	m.Range(func(id regionpkg.ID, state *PeerState) bool {
		if state == nil {
			t.Fatalf("nil state for id %d", id)
		}
		seen[id] = true
		return true
	})
	if len(seen) != 10 {
		t.Fatalf("range visited %d entries, want 10", len(seen))
	}

	visited := 0
	m.Range(func(regionpkg.ID, *PeerState) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Fatalf("range ignored early stop, visited %d", visited)
	}
}
