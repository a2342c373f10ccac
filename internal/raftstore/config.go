package raftstore

const (
	defaultPeerChannelCapacity  = 4096
	defaultStoreChannelCapacity = 256
)

// Config sizes the routing structures. Channel capacities bound how far
// producers can run ahead of the worker pools before sends block;
// blocking there is backpressure, not an error.
type Config struct {
	PeerChannelCapacity  int
	StoreChannelCapacity int
	ShardCount           int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		PeerChannelCapacity:  defaultPeerChannelCapacity,
		StoreChannelCapacity: defaultStoreChannelCapacity,
		ShardCount:           defaultShardCount,
	}
}

func (c Config) withDefaults() Config {
	if c.PeerChannelCapacity <= 0 {
		c.PeerChannelCapacity = defaultPeerChannelCapacity
	}
	if c.StoreChannelCapacity <= 0 {
		c.StoreChannelCapacity = defaultStoreChannelCapacity
	}
	if c.ShardCount <= 0 {
		c.ShardCount = defaultShardCount
	}
	return c
}

// NewRouter builds a router plus the receiving ends of its channels,
// which the peer and store worker pools drain.
func (c Config) NewRouter() (*RaftRouter, <-chan PeerEnvelope, <-chan StoreMsg) {
	c = c.withDefaults()
	peerCh := make(chan PeerEnvelope, c.PeerChannelCapacity)
	storeCh := make(chan StoreMsg, c.StoreChannelCapacity)
	router := NewRaftRouter(peerCh, storeCh)
	// Resize before the router escapes to any other goroutine.
	if c.ShardCount != defaultShardCount {
		router.peers = newPeerMap(c.ShardCount)
	}
	return router, peerCh, storeCh
}
