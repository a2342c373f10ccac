package raftstore

import (
	"fmt"

	regionpkg "regionkv/internal/region"
)

// ErrRegionNotFound is the only routing-layer error: the target region
// is absent from the table or already closed. Msg carries the
// undelivered payload back to the caller, which may retry elsewhere,
// redirect, or turn it into a client-visible response. The router never
// treats this condition as fatal.
type ErrRegionNotFound struct {
	RegionID regionpkg.ID
	Msg      PeerMsg
}

func (e *ErrRegionNotFound) Error() string {
	return fmt.Sprintf("region %d not found", e.RegionID)
}
