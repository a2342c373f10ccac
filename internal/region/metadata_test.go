package region

import "testing"

func TestContainsKey(t *testing.T) {
	r := &Region{
		ID:    2,
		Range: KeyRange{Start: []byte("b"), End: []byte("m")},
	}

	cases := []struct {
		key  string
		want bool
	}{
		{key: "b", want: true},
		{key: "hello", want: true},
		{key: "m", want: false},
		{key: "a", want: false},
		{key: "z", want: false},
	}
	for _, tc := range cases {
		if got := r.ContainsKey([]byte(tc.key)); got != tc.want {
			t.Fatalf("ContainsKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}

	var nilRegion *Region
	if nilRegion.ContainsKey([]byte("x")) {
		t.Fatalf("nil region should contain nothing")
	}
}

func TestEpochStale(t *testing.T) {
	current := Epoch{Version: 3, ConfVersion: 2}
	if current.Stale(current) {
		t.Fatalf("epoch stale against itself")
	}
	if !(Epoch{Version: 2, ConfVersion: 2}).Stale(current) {
		t.Fatalf("older version not detected as stale")
	}
	if !(Epoch{Version: 3, ConfVersion: 1}).Stale(current) {
		t.Fatalf("older conf version not detected as stale")
	}
}

func TestPeerOnStore(t *testing.T) {
	r := &Region{
		ID: 1,
		Peers: []Peer{
			{ID: 10, StoreID: 1, Role: Voter},
			{ID: 11, StoreID: 2, Role: Learner},
		},
	}
	p, ok := r.PeerOnStore(2)
	if !ok || p.ID != 11 || p.Role != Learner {
		t.Fatalf("unexpected peer %+v ok=%v", p, ok)
	}
	if _, ok := r.PeerOnStore(9); ok {
		t.Fatalf("found peer on unknown store")
	}
}

func TestClone(t *testing.T) {
	r := &Region{
		ID:    4,
		Range: KeyRange{Start: []byte("a"), End: []byte("z")},
		Peers: []Peer{{ID: 40, StoreID: 1}},
	}
	cp := r.Clone()
	cp.Range.Start[0] = 'x'
	cp.Peers[0].StoreID = 9
	if r.Range.Start[0] != 'a' || r.Peers[0].StoreID != 1 {
		t.Fatalf("clone shares memory with original")
	}
}
