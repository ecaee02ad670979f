package booking

import (
	"context"
	"time"
)

// overlapSource is the one store capability the availability index needs.
type overlapSource interface {
	AnyApprovedOverlap(ctx context.Context, resourceID int64, start, end time.Time, excludeID int64) (bool, error)
}

// AvailabilityIndex answers whether a resource is free over an inclusive
// date window. Only approved bookings block: pending requests are free to
// compete and terminal bookings never block. It is a read-only view over
// the booking store.
type AvailabilityIndex struct {
	store overlapSource
}

func NewAvailabilityIndex(store overlapSource) *AvailabilityIndex {
	return &AvailabilityIndex{store: store}
}

// IsFree reports whether no approved booking for the resource overlaps
// [start, end]. excludeID lets a booking being transitioned skip itself.
func (ix *AvailabilityIndex) IsFree(ctx context.Context, resourceID int64, start, end time.Time, excludeID int64) (bool, error) {
	overlap, err := ix.store.AnyApprovedOverlap(ctx, resourceID, start, end, excludeID)
	if err != nil {
		return false, err
	}
	return !overlap, nil
}
