package raft

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/gogo/protobuf/proto"
	"go.etcd.io/etcd/raft/v3/raftpb"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	raftstore "regionkv/internal/raftstore"
	regionpkg "regionkv/internal/region"
	api "regionkv/pkg/api"
)

// GRPCDialer abstracts dialing so tests can inject custom behaviour.
type GRPCDialer interface {
	Dial(ctx context.Context, target string) (*grpc.ClientConn, error)
}

type DefaultDialer struct{}

func (DefaultDialer) Dial(ctx context.Context, target string) (*grpc.ClientConn, error) {
	return grpc.DialContext(ctx, target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(jsonCodec{})),
	)
}

type clientStream struct {
	conn   *grpc.ClientConn
	stream api.RaftTransport_SendClient
}

// GRPCTransport ships raft messages to remote stores over per-store
// client streams, dialed lazily and torn down on error.
type GRPCTransport struct {
	mu        sync.RWMutex
	storeID   uint64
	addresses map[uint64]string
	streams   map[uint64]*clientStream
	dialer    GRPCDialer
}

func NewGRPCTransport(storeID uint64, dialer GRPCDialer) *GRPCTransport {
	if dialer == nil {
		dialer = DefaultDialer{}
	}
	return &GRPCTransport{
		storeID:   storeID,
		addresses: make(map[uint64]string),
		streams:   make(map[uint64]*clientStream),
		dialer:    dialer,
	}
}

func (t *GRPCTransport) AddStore(id uint64, addr string) error {
	if addr == "" {
		return fmt.Errorf("no address provided for store %d", id)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.addresses[id] = addr
	return nil
}

func (t *GRPCTransport) RemoveStore(id uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.addresses, id)
	if cs, ok := t.streams[id]; ok {
		_, _ = cs.stream.CloseAndRecv()
		_ = cs.conn.Close()
		delete(t.streams, id)
	}
	return nil
}

func (t *GRPCTransport) Send(msg *raftstore.RaftMessage) error {
	if msg == nil {
		return nil
	}
	to := msg.ToPeer.StoreID
	cs, err := t.ensureStream(to)
	if err != nil {
		return err
	}
	payload, err := proto.Marshal(&msg.Message)
	if err != nil {
		return err
	}
	wire := &api.RaftMessage{
		RegionId:         uint64(msg.RegionID),
		FromPeerId:       msg.FromPeer.ID,
		FromStoreId:      msg.FromPeer.StoreID,
		ToPeerId:         msg.ToPeer.ID,
		ToStoreId:        msg.ToPeer.StoreID,
		EpochVersion:     msg.RegionEpoch.Version,
		EpochConfVersion: msg.RegionEpoch.ConfVersion,
		Message:          payload,
	}
	if err := cs.stream.Send(wire); err != nil {
		t.closeStream(to)
		return err
	}
	return nil
}

func (t *GRPCTransport) ensureStream(to uint64) (*clientStream, error) {
	t.mu.RLock()
	cs, ok := t.streams[to]
	addr := t.addresses[to]
	t.mu.RUnlock()
	if ok {
		return cs, nil
	}
	if addr == "" {
		return nil, fmt.Errorf("unknown address for store %d", to)
	}
	conn, err := t.dialer.Dial(context.Background(), addr)
	if err != nil {
		return nil, err
	}
	client := api.NewRaftTransportClient(conn)
	stream, err := client.Send(context.Background())
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	cs = &clientStream{conn: conn, stream: stream}
	t.mu.Lock()
	t.streams[to] = cs
	t.mu.Unlock()
	return cs, nil
}

func (t *GRPCTransport) closeStream(to uint64) {
	t.mu.Lock()
	if cs, ok := t.streams[to]; ok {
		_, _ = cs.stream.CloseAndRecv()
		_ = cs.conn.Close()
		delete(t.streams, to)
	}
	t.mu.Unlock()
}

// GRPCTransportServer receives raft message streams from remote stores
// and hands each message to the local router.
type GRPCTransportServer struct {
	api.UnimplementedRaftTransportServer
	router raftstore.RaftStoreRouter
}

func NewGRPCTransportServer(router raftstore.RaftStoreRouter) *GRPCTransportServer {
	return &GRPCTransportServer{router: router}
}

func (s *GRPCTransportServer) Send(stream api.RaftTransport_SendServer) error {
	for {
		wire, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return stream.SendAndClose(&api.RaftAck{})
		}
		if err != nil {
			return err
		}
		var payload raftpb.Message
		if err := proto.Unmarshal(wire.Message, &payload); err != nil {
			return err
		}
		msg := &raftstore.RaftMessage{
			RegionID: regionpkg.ID(wire.RegionId),
			FromPeer: regionpkg.Peer{ID: wire.FromPeerId, StoreID: wire.FromStoreId},
			ToPeer:   regionpkg.Peer{ID: wire.ToPeerId, StoreID: wire.ToStoreId},
			RegionEpoch: regionpkg.Epoch{
				Version:     wire.EpochVersion,
				ConfVersion: wire.EpochConfVersion,
			},
			Message: payload,
		}
		if err := s.router.SendRaftMessage(msg); err != nil {
			// A missing region is recoverable from the sender's point
			// of view; keep the stream alive for the other regions
			// multiplexed on it.
			var notFound *raftstore.ErrRegionNotFound
			if errors.As(err, &notFound) {
				log.Printf("[transport] drop raft message for region %d: not found", notFound.RegionID)
				continue
			}
			return err
		}
	}
}

func RegisterGRPCTransportServer(s grpc.ServiceRegistrar, router raftstore.RaftStoreRouter) {
	api.RegisterRaftTransportServer(s, NewGRPCTransportServer(router))
}
