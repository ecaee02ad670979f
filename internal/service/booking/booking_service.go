package booking

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/neighbourgood/booking/internal/domain"
	"github.com/neighbourgood/booking/internal/kafka"
	"github.com/neighbourgood/booking/internal/metrics"
	"github.com/neighbourgood/booking/internal/repository"
	"github.com/neighbourgood/booking/internal/service/catalog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type BookingUseCase interface {
	RequestBooking(ctx context.Context, input RequestBookingInput) (*domain.Booking, error)
	ChangeStatus(ctx context.Context, bookingID, actorID int64, target domain.BookingStatus) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, input ListBookingsInput) ([]domain.Booking, int, error)
	ResourceCalendar(ctx context.Context, resourceID int64, year int, month time.Month) ([]domain.Booking, error)
	RemindDueReturns(ctx context.Context) ([]domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type RequestBookingInput struct {
	ResourceID int64     `json:"resource_id"`
	BorrowerID int64     `json:"borrower_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	Message    string    `json:"message"`
}

type ListBookingsInput struct {
	ActorID    int64
	Role       domain.Role
	Status     domain.BookingStatus
	ResourceID int64
	Limit      int
	Offset     int
}

// BookingService orchestrates booking requests and status changes. It holds
// no booking state of its own: the repository is the single source of truth
// and every conflicting write is resolved there by compare-and-set.
type BookingService struct {
	bookings           repository.BookingRepository
	catalog            catalog.CatalogUseCase
	availability       *AvailabilityIndex
	producer           Producer
	metrics            *metrics.Metrics
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	catalogSvc catalog.CatalogUseCase,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		catalog:      catalogSvc,
		availability: NewAvailabilityIndex(bookings),
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// RequestBooking creates a pending borrow request. Deliberately no overlap
// check here: competing pending requests for the same window may coexist,
// and the first one the owner approves wins.
func (s *BookingService) RequestBooking(ctx context.Context, input RequestBookingInput) (*domain.Booking, error) {
	start := dateOnly(input.StartDate)
	end := dateOnly(input.EndDate)
	if end.Before(start) {
		s.countRejected("date_order")
		return nil, domain.Validationf("end_date must be on or after start_date")
	}

	resource, err := s.catalog.GetByID(ctx, input.ResourceID)
	if err != nil {
		return nil, err
	}
	if !resource.IsAvailable {
		s.countRejected("resource_unavailable")
		return nil, domain.Validationf("resource %d is not listed as available", resource.ID)
	}
	if resource.OwnerID == input.BorrowerID {
		s.countRejected("self_booking")
		return nil, domain.Validationf("cannot book your own resource")
	}

	booking := &domain.Booking{
		ResourceID:    resource.ID,
		ResourceTitle: resource.Title,
		OwnerID:       resource.OwnerID,
		BorrowerID:    input.BorrowerID,
		StartDate:     start,
		EndDate:       end,
		Message:       input.Message,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.publish(ctx, "booking_requested", booking)
	return booking, nil
}

// ChangeStatus applies one transition. The authority verdict is computed on
// the fetched booking; for approvals the availability index is re-checked
// immediately before the compare-and-set write, which narrows (but cannot
// eliminate) the race window. Losing the race surfaces as ErrConflict and
// the caller decides whether to re-fetch and retry.
func (s *BookingService) ChangeStatus(ctx context.Context, bookingID, actorID int64, target domain.BookingStatus) (*domain.Booking, error) {
	if !target.Valid() {
		return nil, domain.Validationf("unknown status %q", target)
	}

	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	role := current.RoleOf(actorID)
	if err := Decide(current.Status, role, target); err != nil {
		return nil, err
	}

	var updated *domain.Booking
	if target == domain.BookingStatusApproved {
		// Cheap pre-check to fail fast; the store repeats it atomically
		// with the write.
		free, err := s.availability.IsFree(ctx, current.ResourceID, current.StartDate, current.EndDate, current.ID)
		if err != nil {
			return nil, err
		}
		if !free {
			s.countConflict()
			return nil, domain.Conflictf("resource no longer available for %s..%s",
				current.StartDate.Format(time.DateOnly), current.EndDate.Format(time.DateOnly))
		}
		updated, err = s.bookings.ApproveIfFree(ctx, bookingID, current.Status)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.countConflict()
			}
			return nil, err
		}
	} else {
		var err error
		updated, err = s.bookings.UpdateStatus(ctx, bookingID, current.Status, target)
		if err != nil {
			if errors.Is(err, domain.ErrConflict) {
				s.countConflict()
			}
			return nil, err
		}
	}

	if s.metrics != nil {
		s.metrics.Transitions.WithLabelValues(string(target)).Inc()
	}
	s.publish(ctx, "booking_"+string(target), updated)
	return updated, nil
}

// GetBooking returns one booking to its owner or borrower; anyone else is
// refused.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, actorID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RoleOf(actorID) == domain.RoleNone {
		return nil, domain.Forbiddenf("actor is not a party to booking %d", bookingID)
	}
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, input ListBookingsInput) ([]domain.Booking, int, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	return s.bookings.List(ctx, repository.BookingFilter{
		ActorID:    input.ActorID,
		Role:       input.Role,
		Status:     input.Status,
		ResourceID: input.ResourceID,
		Limit:      limit,
		Offset:     offset,
	})
}

// ResourceCalendar lists the pending and approved bookings of a resource
// that touch the given month, for calendar display. Terminal bookings are
// omitted.
func (s *BookingService) ResourceCalendar(ctx context.Context, resourceID int64, year int, month time.Month) ([]domain.Booking, error) {
	if _, err := s.catalog.GetByID(ctx, resourceID); err != nil {
		return nil, err
	}

	firstDay := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstDay.AddDate(0, 1, -1)
	return s.bookings.ListActiveInWindow(ctx, resourceID, firstDay, lastDay)
}

// RemindDueReturns publishes a return-due notification for every approved
// booking whose window has elapsed. Completion itself stays a manual,
// owner-only transition; this sweep never changes state.
func (s *BookingService) RemindDueReturns(ctx context.Context) ([]domain.Booking, error) {
	today := dateOnly(time.Now().UTC())
	due, err := s.bookings.ListApprovedEndedBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	for i := range due {
		s.publish(ctx, "booking_return_due", &due[i])
	}
	return due, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		BookingID:     booking.ID,
		ResourceID:    booking.ResourceID,
		ResourceTitle: booking.ResourceTitle,
		OwnerID:       booking.OwnerID,
		BorrowerID:    booking.BorrowerID,
		StartDate:     booking.StartDate.Format(time.DateOnly),
		EndDate:       booking.EndDate.Format(time.DateOnly),
		Status:        string(booking.Status),
		OccurredAt:    time.Now().UTC(),
	}
	// Key by booking id so all events of one booking stay ordered within
	// a partition.
	key := strconv.FormatInt(booking.ID, 10)
	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		slog.Warn("publish booking event", "type", eventType, "booking_id", booking.ID, "err", err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			slog.Warn("publish notification event", "type", eventType, "booking_id", booking.ID, "err", err)
		}
	}
}

func (s *BookingService) countConflict() {
	if s.metrics != nil {
		s.metrics.Conflicts.Inc()
	}
}

func (s *BookingService) countRejected(reason string) {
	if s.metrics != nil {
		s.metrics.RejectedRequests.WithLabelValues(reason).Inc()
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ BookingUseCase = (*BookingService)(nil)
