package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/neighbourgood/booking/internal/domain"
)

// MemBookingRepository keeps bookings in a mutex-guarded map with the same
// compare-and-set semantics as the Postgres repository. It backs the engine
// tests and local development without a database.
type MemBookingRepository struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]domain.Booking
}

func NewMemBookingRepository() *MemBookingRepository {
	return &MemBookingRepository{nextID: 1, bookings: make(map[int64]domain.Booking)}
}

func (r *MemBookingRepository) Create(_ context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	booking.ID = r.nextID
	booking.Status = domain.BookingStatusPending
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.nextID++
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemBookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NotFoundf("booking %d", id)
	}
	return &b, nil
}

func (r *MemBookingRepository) UpdateStatus(_ context.Context, id int64, expected, next domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NotFoundf("booking %d", id)
	}
	if b.Status != expected {
		return nil, domain.Conflictf("booking %d is %q, expected %q", id, b.Status, expected)
	}
	b.Status = next
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return &b, nil
}

func (r *MemBookingRepository) ApproveIfFree(_ context.Context, id int64, expected domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NotFoundf("booking %d", id)
	}
	if b.Status != expected {
		return nil, domain.Conflictf("booking %d is %q, expected %q", id, b.Status, expected)
	}
	for _, other := range r.bookings {
		if other.ResourceID != b.ResourceID || other.ID == b.ID || other.Status != domain.BookingStatusApproved {
			continue
		}
		if other.Overlaps(b.StartDate, b.EndDate) {
			return nil, domain.Conflictf("booking %d overlaps approved booking %d", b.ID, other.ID)
		}
	}
	b.Status = domain.BookingStatusApproved
	b.UpdatedAt = time.Now().UTC()
	r.bookings[id] = b
	return &b, nil
}

func (r *MemBookingRepository) List(_ context.Context, filter BookingFilter) ([]domain.Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	matched := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		switch filter.Role {
		case domain.RoleOwner:
			if b.OwnerID != filter.ActorID {
				continue
			}
		case domain.RoleBorrower:
			if b.BorrowerID != filter.ActorID {
				continue
			}
		default:
			if b.OwnerID != filter.ActorID && b.BorrowerID != filter.ActorID {
				continue
			}
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.ResourceID != 0 && b.ResourceID != filter.ResourceID {
			continue
		}
		matched = append(matched, b)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if filter.Offset >= total {
		return []domain.Booking{}, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *MemBookingRepository) AnyApprovedOverlap(_ context.Context, resourceID int64, start, end time.Time, excludeID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.ResourceID != resourceID || b.ID == excludeID || b.Status != domain.BookingStatusApproved {
			continue
		}
		if b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemBookingRepository) ListActiveInWindow(_ context.Context, resourceID int64, start, end time.Time) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.ResourceID != resourceID {
			continue
		}
		if b.Status != domain.BookingStatusPending && b.Status != domain.BookingStatusApproved {
			continue
		}
		if b.Overlaps(start, end) {
			active = append(active, b)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].StartDate.Before(active[j].StartDate) })
	return active, nil
}

func (r *MemBookingRepository) ListApprovedEndedBefore(_ context.Context, deadline time.Time) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ended := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.Status == domain.BookingStatusApproved && b.EndDate.Before(deadline) {
			ended = append(ended, b)
		}
	}
	sort.Slice(ended, func(i, j int) bool { return ended[i].EndDate.Before(ended[j].EndDate) })
	return ended, nil
}

var _ BookingRepository = (*MemBookingRepository)(nil)
