// Package api holds the hand-written gRPC surface of the raft
// transport. Messages travel with the JSON codec registered by the
// transport layer, so no generated code is required.
package api

import (
	"context"

	"google.golang.org/grpc"
)

// RaftMessage is the wire envelope for one raft message between stores.
// Message carries the marshalled raftpb payload; the other fields route
// and validate it on the receiving store.
type RaftMessage struct {
	RegionId         uint64
	FromPeerId       uint64
	FromStoreId      uint64
	ToPeerId         uint64
	ToStoreId        uint64
	EpochVersion     uint64
	EpochConfVersion uint64
	Message          []byte
}

// RaftAck closes a Send stream.
type RaftAck struct{}

type RaftTransport_SendClient interface {
	Send(*RaftMessage) error
	CloseAndRecv() (*RaftAck, error)
}

type RaftTransport_SendServer interface {
	Recv() (*RaftMessage, error)
	SendAndClose(*RaftAck) error
	Context() context.Context
}

type RaftTransportClient interface {
	Send(ctx context.Context, opts ...grpc.CallOption) (RaftTransport_SendClient, error)
}

type RaftTransportServer interface {
	Send(RaftTransport_SendServer) error
}

type UnimplementedRaftTransportServer struct{}

func (UnimplementedRaftTransportServer) Send(RaftTransport_SendServer) error { return nil }

var raftTransportServiceDesc = grpc.ServiceDesc{
	ServiceName: "regionkv.api.RaftTransport",
	HandlerType: (*RaftTransportServer)(nil),
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Send",
			Handler:       _RaftTransport_Send_Handler,
			ClientStreams: true,
		},
	},
}

func RegisterRaftTransportServer(s grpc.ServiceRegistrar, srv RaftTransportServer) {
	s.RegisterService(&raftTransportServiceDesc, srv)
}

func _RaftTransport_Send_Handler(srv interface{}, stream grpc.ServerStream) error {
	return srv.(RaftTransportServer).Send(&raftTransportSendServer{stream})
}

type raftTransportSendServer struct {
	grpc.ServerStream
}

func (x *raftTransportSendServer) Recv() (*RaftMessage, error) {
	m := new(RaftMessage)
	if err := x.ServerStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (x *raftTransportSendServer) SendAndClose(ack *RaftAck) error {
	return x.ServerStream.SendMsg(ack)
}

type raftTransportClient struct {
	cc grpc.ClientConnInterface
}

// NewRaftTransportClient wraps a client connection with the transport API.
func NewRaftTransportClient(cc grpc.ClientConnInterface) RaftTransportClient {
	return &raftTransportClient{cc: cc}
}

func (c *raftTransportClient) Send(ctx context.Context, opts ...grpc.CallOption) (RaftTransport_SendClient, error) {
	stream, err := c.cc.NewStream(ctx, &raftTransportServiceDesc.Streams[0], "/regionkv.api.RaftTransport/Send", opts...)
	if err != nil {
		return nil, err
	}
	return &raftTransportSendClient{stream}, nil
}

type raftTransportSendClient struct {
	grpc.ClientStream
}

func (x *raftTransportSendClient) Send(m *RaftMessage) error {
	return x.ClientStream.SendMsg(m)
}

func (x *raftTransportSendClient) CloseAndRecv() (*RaftAck, error) {
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	m := new(RaftAck)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
