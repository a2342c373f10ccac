package config

import (
	rafttransport "regionkv/internal/raft"
	raftstore "regionkv/internal/raftstore"
)

// StoreConfig is the on-disk configuration of one store process.
type StoreConfig struct {
	StoreID   uint64          `yaml:"storeID"`
	Raftstore RaftstoreConfig `yaml:"raftstore"`
	Transport TransportConfig `yaml:"transport"`
}

type RaftstoreConfig struct {
	PeerChannelCapacity  int `yaml:"peerChannelCapacity"`
	StoreChannelCapacity int `yaml:"storeChannelCapacity"`
	ShardCount           int `yaml:"shardCount"`
}

type TransportConfig struct {
	Address string `yaml:"address"`
}

// RouterConfig maps the yaml model onto raftstore defaults; zero values
// fall back there.
func (c *StoreConfig) RouterConfig() raftstore.Config {
	return raftstore.Config{
		PeerChannelCapacity:  c.Raftstore.PeerChannelCapacity,
		StoreChannelCapacity: c.Raftstore.StoreChannelCapacity,
		ShardCount:           c.Raftstore.ShardCount,
	}
}

// TransportServerConfig returns the transport server settings.
func (c *StoreConfig) TransportServerConfig() rafttransport.ServerConfig {
	return rafttransport.ServerConfig{Address: c.Transport.Address}
}
