package booking

import (
	"context"
	"testing"
	"time"

	"github.com/neighbourgood/booking/internal/domain"
	"github.com/neighbourgood/booking/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBooking(t *testing.T, repo *repository.MemBookingRepository, status domain.BookingStatus, start, end string) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		ResourceID: resourceID,
		OwnerID:    ownerID,
		BorrowerID: borrowerID,
		StartDate:  date(start),
		EndDate:    date(end),
	}
	require.NoError(t, repo.Create(context.Background(), b))
	if status != domain.BookingStatusPending {
		_, err := repo.UpdateStatus(context.Background(), b.ID, domain.BookingStatusPending, status)
		require.NoError(t, err)
	}
	return b
}

func TestAvailabilityIndex_overlapArithmetic(t *testing.T) {
	repo := repository.NewMemBookingRepository()
	seedBooking(t, repo, domain.BookingStatusApproved, "2025-06-10", "2025-06-15")
	ix := NewAvailabilityIndex(repo)
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end string
		free       bool
	}{
		{"fully before", "2025-06-01", "2025-06-09", true},
		{"fully after", "2025-06-16", "2025-06-20", true},
		{"touching start day", "2025-06-05", "2025-06-10", false},
		{"touching end day", "2025-06-15", "2025-06-18", false},
		{"contained", "2025-06-11", "2025-06-12", false},
		{"containing", "2025-06-01", "2025-06-30", false},
		{"identical", "2025-06-10", "2025-06-15", false},
		{"single free day before", "2025-06-09", "2025-06-09", true},
		{"single blocked day", "2025-06-10", "2025-06-10", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			free, err := ix.IsFree(ctx, resourceID, date(tc.start), date(tc.end), 0)
			require.NoError(t, err)
			assert.Equal(t, tc.free, free)
		})
	}
}

func TestAvailabilityIndex_onlyApprovedBlocks(t *testing.T) {
	ctx := context.Background()
	for _, status := range []domain.BookingStatus{
		domain.BookingStatusPending,
		domain.BookingStatusRejected,
		domain.BookingStatusCancelled,
		domain.BookingStatusCompleted,
	} {
		repo := repository.NewMemBookingRepository()
		seedBooking(t, repo, status, "2025-06-10", "2025-06-15")
		ix := NewAvailabilityIndex(repo)

		free, err := ix.IsFree(ctx, resourceID, date("2025-06-12"), date("2025-06-13"), 0)
		require.NoError(t, err)
		assert.True(t, free, "status %s must not block", status)
	}
}

func TestAvailabilityIndex_excludesSelf(t *testing.T) {
	repo := repository.NewMemBookingRepository()
	b := seedBooking(t, repo, domain.BookingStatusApproved, "2025-06-10", "2025-06-15")
	ix := NewAvailabilityIndex(repo)

	free, err := ix.IsFree(context.Background(), resourceID, b.StartDate, b.EndDate, b.ID)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestAvailabilityIndex_otherResourceDoesNotBlock(t *testing.T) {
	repo := repository.NewMemBookingRepository()
	seedBooking(t, repo, domain.BookingStatusApproved, "2025-06-10", "2025-06-15")
	ix := NewAvailabilityIndex(repo)

	free, err := ix.IsFree(context.Background(), 77, date("2025-06-10"), date("2025-06-15"), 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestBookingOverlaps(t *testing.T) {
	b := &domain.Booking{StartDate: date("2025-06-10"), EndDate: date("2025-06-15")}
	assert.True(t, b.Overlaps(date("2025-06-15"), date("2025-06-20")))
	assert.True(t, b.Overlaps(date("2025-06-01"), date("2025-06-10")))
	assert.False(t, b.Overlaps(date("2025-06-16"), date("2025-06-20")))
	assert.False(t, b.Overlaps(date("2025-06-01"), date("2025-06-09")))
}

func TestDateOnlyNormalizesToMidnightUTC(t *testing.T) {
	in := time.Date(2025, 6, 10, 23, 45, 0, 0, time.UTC)
	got := dateOnly(in)
	assert.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), got)
}
