package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusApproved  BookingStatus = "approved"
	BookingStatusRejected  BookingStatus = "rejected"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// BookingStatuses lists every valid status token.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusApproved,
	BookingStatusRejected,
	BookingStatusCancelled,
	BookingStatusCompleted,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected,
		BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusRejected, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Role is an actor's relation to a booking, derived per call from the
// owner/borrower ids rather than stored.
type Role string

const (
	RoleOwner    Role = "owner"
	RoleBorrower Role = "borrower"
	RoleNone     Role = ""
)

// Booking is a time-windowed borrow request for a resource. The owner id
// and resource title are snapshotted at creation so the booking stays
// self-contained if the catalog entry changes later. StartDate and EndDate
// are date-only values (midnight UTC) and the window is inclusive on both
// ends.
type Booking struct {
	ID            int64
	ResourceID    int64
	ResourceTitle string
	OwnerID       int64
	BorrowerID    int64
	StartDate     time.Time
	EndDate       time.Time
	Message       string
	Status        BookingStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RoleOf classifies an actor relative to the booking.
func (b *Booking) RoleOf(actorID int64) Role {
	switch actorID {
	case b.OwnerID:
		return RoleOwner
	case b.BorrowerID:
		return RoleBorrower
	}
	return RoleNone
}

// Overlaps reports whether the booking's inclusive date window intersects
// the inclusive window [start, end].
func (b *Booking) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !start.After(b.EndDate)
}
