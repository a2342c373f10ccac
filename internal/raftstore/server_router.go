package raftstore

// ReadID identifies one thread-of-reads for lease-validated local
// reads, letting the reader amortise lease checks across a batch.
type ReadID uint64

// LocalReader serves linearizable reads from locally cached state while
// the leader lease is valid. It owns the fallback decision: when the
// local path cannot serve the request it must route it onward itself,
// honouring the same no-silent-drop contract as SignificantSend.
type LocalReader interface {
	Read(readID *ReadID, req *RaftCmdRequest, cb Callback) error
}

// LocalReadRouter is the read-path capability exposed to the server
// layer.
type LocalReadRouter interface {
	Read(readID *ReadID, req *RaftCmdRequest, cb Callback) error
}

// ServerRaftStoreRouter is the router handed to the RPC server layer:
// the full routing surface plus a local-read shortcut that can bypass
// the message channels entirely for lease-covered reads.
type ServerRaftStoreRouter struct {
	*RaftRouter
	localReader LocalReader
}

var (
	_ RaftStoreRouter = (*ServerRaftStoreRouter)(nil)
	_ LocalReadRouter = (*ServerRaftStoreRouter)(nil)
)

// NewServerRaftStoreRouter wraps the router with a local reader.
func NewServerRaftStoreRouter(router *RaftRouter, reader LocalReader) *ServerRaftStoreRouter {
	return &ServerRaftStoreRouter{RaftRouter: router, localReader: reader}
}

// Read attempts the request against lease-validated local state. No
// region lookup happens here; the reader falls back to the proposal
// path on its own when the lease cannot cover the read.
func (s *ServerRaftStoreRouter) Read(readID *ReadID, req *RaftCmdRequest, cb Callback) error {
	return s.localReader.Read(readID, req, cb)
}
