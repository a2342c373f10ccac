package raft

import (
	"net"
	"testing"
	"time"

	"go.etcd.io/etcd/raft/v3/raftpb"
	"google.golang.org/grpc"

	raftstore "regionkv/internal/raftstore"
	regionpkg "regionkv/internal/region"
)

func startTransportServer(t *testing.T, router raftstore.RaftStoreRouter) string {
	t.Helper()
	server := grpc.NewServer(grpc.ForceServerCodec(jsonCodec{}))
	RegisterGRPCTransportServer(server, router)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	go func() {
		_ = server.Serve(lis)
	}()
	t.Cleanup(server.GracefulStop)
	return lis.Addr().String()
}

func TestGRPCTransportSend(t *testing.T) {
	router, peerCh, _ := raftstore.DefaultConfig().NewRouter()
	router.Register(raftstore.NewPeerFsm(20, &regionpkg.Region{
		ID:    2,
		Epoch: regionpkg.Epoch{Version: 1, ConfVersion: 1},
	}))
	addr := startTransportServer(t, router)

	transport := NewGRPCTransport(1, DefaultDialer{})
	if err := transport.AddStore(2, addr); err != nil {
		t.Fatalf("add store failed: %v", err)
	}
	defer func() { _ = transport.RemoveStore(2) }()

	msg := &raftstore.RaftMessage{
		RegionID:    2,
		FromPeer:    regionpkg.Peer{ID: 21, StoreID: 1},
		ToPeer:      regionpkg.Peer{ID: 20, StoreID: 2},
		RegionEpoch: regionpkg.Epoch{Version: 1, ConfVersion: 1},
		Message:     raftpb.Message{From: 21, To: 20, Type: raftpb.MsgApp},
	}
	if err := transport.Send(msg); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	select {
	case env := <-peerCh:
		if env.RegionID != 2 {
			t.Fatalf("routed to region %d, want 2", env.RegionID)
		}
		received, ok := env.Msg.(*raftstore.RaftMessage)
		if !ok {
			t.Fatalf("unexpected message type %T", env.Msg)
		}
		if received.Message.Type != raftpb.MsgApp || received.FromPeer.ID != 21 {
			t.Fatalf("unexpected message: %+v", received)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for message")
	}
}

// A message for an unknown region must not kill the stream; later
// messages for live regions still get through.
func TestGRPCTransportUnknownRegionKeepsStream(t *testing.T) {
	router, peerCh, _ := raftstore.DefaultConfig().NewRouter()
	router.Register(raftstore.NewPeerFsm(30, &regionpkg.Region{
		ID:    3,
		Epoch: regionpkg.Epoch{Version: 1, ConfVersion: 1},
	}))
	addr := startTransportServer(t, router)

	transport := NewGRPCTransport(1, DefaultDialer{})
	if err := transport.AddStore(2, addr); err != nil {
		t.Fatalf("add store failed: %v", err)
	}
	defer func() { _ = transport.RemoveStore(2) }()

	unknown := &raftstore.RaftMessage{
		RegionID: 99,
		ToPeer:   regionpkg.Peer{ID: 990, StoreID: 2},
		Message:  raftpb.Message{Type: raftpb.MsgHeartbeat},
	}
	if err := transport.Send(unknown); err != nil {
		t.Fatalf("send of unknown-region message failed: %v", err)
	}
	known := &raftstore.RaftMessage{
		RegionID: 3,
		ToPeer:   regionpkg.Peer{ID: 30, StoreID: 2},
		Message:  raftpb.Message{Type: raftpb.MsgHeartbeat},
	}
	if err := transport.Send(known); err != nil {
		t.Fatalf("send after unknown-region message failed: %v", err)
	}

	select {
	case env := <-peerCh:
		if env.RegionID != 3 {
			t.Fatalf("routed to region %d, want 3", env.RegionID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for message after unknown-region drop")
	}
}
