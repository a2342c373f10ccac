package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadStoreConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.yaml")
	data := []byte(`
storeID: 5
raftstore:
  peerChannelCapacity: 128
  storeChannelCapacity: 16
  shardCount: 8
transport:
  address: "127.0.0.1:20160"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadStoreConfig(path)
	require.NoError(t, err)
	require.Equal(t, uint64(5), cfg.StoreID)
	require.Equal(t, "127.0.0.1:20160", cfg.TransportServerConfig().Address)

	rc := cfg.RouterConfig()
	require.Equal(t, 128, rc.PeerChannelCapacity)
	require.Equal(t, 16, rc.StoreChannelCapacity)
	require.Equal(t, 8, rc.ShardCount)

	_, peerCh, storeCh := rc.NewRouter()
	require.Equal(t, 128, cap(peerCh))
	require.Equal(t, 16, cap(storeCh))
}

// Zero values in the file fall back to raftstore defaults at router
// construction.
func TestRouterConfigDefaults(t *testing.T) {
	cfg := &StoreConfig{}
	_, peerCh, storeCh := cfg.RouterConfig().NewRouter()
	require.Equal(t, 4096, cap(peerCh))
	require.Equal(t, 256, cap(storeCh))
}

func TestLoadStoreConfigMissingFile(t *testing.T) {
	if _, err := LoadStoreConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
