package repository

import (
	"context"
	"time"

	"github.com/neighbourgood/booking/internal/domain"
)

// BookingFilter narrows List to the bookings an actor is party to.
// Role selects which side: owner, borrower, or both when empty.
type BookingFilter struct {
	ActorID    int64
	Role       domain.Role
	Status     domain.BookingStatus
	ResourceID int64
	Limit      int
	Offset     int
}

// BookingRepository is the single writer for bookings. UpdateStatus is a
// compare-and-set on (id, status): the write succeeds only if the stored
// status still matches what the caller observed. ApproveIfFree is the
// commit point for approvals: the overlap check against approved bookings
// and the compare-and-set happen as one atomic unit, so of two concurrent
// approvals over overlapping windows at most one can win.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, expected, next domain.BookingStatus) (*domain.Booking, error)
	ApproveIfFree(ctx context.Context, id int64, expected domain.BookingStatus) (*domain.Booking, error)
	List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int, error)
	AnyApprovedOverlap(ctx context.Context, resourceID int64, start, end time.Time, excludeID int64) (bool, error)
	ListActiveInWindow(ctx context.Context, resourceID int64, start, end time.Time) ([]domain.Booking, error)
	ListApprovedEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
}
