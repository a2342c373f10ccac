package raftstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	regionpkg "regionkv/internal/region"
)

type recordingReader struct {
	readID *ReadID
	req    *RaftCmdRequest
	err    error
}

func (r *recordingReader) Read(readID *ReadID, req *RaftCmdRequest, cb Callback) error {
	r.readID = readID
	r.req = req
	if r.err != nil {
		return r.err
	}
	cb(&RaftCmdResponse{Header: req.Header, CommitTs: 42}, nil)
	return nil
}

func TestServerRouterReadDelegates(t *testing.T) {
	router, _, _ := newTestRouter(t)
	reader := &recordingReader{}
	srv := NewServerRaftStoreRouter(router, reader)

	readID := ReadID(7)
	req := &RaftCmdRequest{Header: CmdHeader{RegionID: 1}}
	var resp *RaftCmdResponse
	err := srv.Read(&readID, req, func(r *RaftCmdResponse, err error) {
		resp = r
	})
	require.NoError(t, err)
	require.Same(t, req, reader.req)
	require.Equal(t, readID, *reader.readID)
	require.NotNil(t, resp)
	require.Equal(t, uint64(42), resp.CommitTs)
}

// The wrapper keeps the full routing surface of the inner router.
func TestServerRouterRoutesThrough(t *testing.T) {
	router, peerCh, storeCh := newTestRouter(t)
	registerRegion(router, 2, 20)
	srv := NewServerRaftStoreRouter(router, &recordingReader{})

	if err := srv.SendCasual(2, CasualMessage{Kind: CasualSplitRegion}); err != nil {
		t.Fatalf("casual via wrapper failed: %v", err)
	}
	env := <-peerCh
	require.Equal(t, regionpkg.ID(2), env.RegionID)

	srv.SendStore(StoreMsg{Kind: StoreMsgTick})
	msg := <-storeCh
	require.Equal(t, StoreMsgTick, msg.Kind)
}
