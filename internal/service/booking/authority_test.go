package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/neighbourgood/booking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type edge struct {
	from domain.BookingStatus
	role domain.Role
	to   domain.BookingStatus
}

var allowedEdges = map[edge]bool{
	{domain.BookingStatusPending, domain.RoleOwner, domain.BookingStatusApproved}:     true,
	{domain.BookingStatusPending, domain.RoleOwner, domain.BookingStatusRejected}:     true,
	{domain.BookingStatusPending, domain.RoleBorrower, domain.BookingStatusCancelled}: true,
	{domain.BookingStatusApproved, domain.RoleOwner, domain.BookingStatusCompleted}:   true,
	{domain.BookingStatusApproved, domain.RoleBorrower, domain.BookingStatusCancelled}: true,
}

// Every (status, role, target) triple outside the transition table must be
// rejected, so the whole space is enumerated.
func TestDecide_exhaustive(t *testing.T) {
	roles := []domain.Role{domain.RoleOwner, domain.RoleBorrower}
	for _, from := range domain.BookingStatuses {
		for _, role := range roles {
			for _, to := range domain.BookingStatuses {
				name := fmt.Sprintf("%s_%s_%s", from, role, to)
				t.Run(name, func(t *testing.T) {
					err := Decide(from, role, to)
					if allowedEdges[edge{from, role, to}] {
						assert.NoError(t, err)
					} else {
						assert.ErrorIs(t, err, domain.ErrInvalidTransition)
					}
				})
			}
		}
	}
}

func TestDecide_strangerIsForbidden(t *testing.T) {
	for _, from := range domain.BookingStatuses {
		for _, to := range domain.BookingStatuses {
			err := Decide(from, domain.RoleNone, to)
			assert.ErrorIs(t, err, domain.ErrForbidden, "%s -> %s", from, to)
		}
	}
}

func TestDecide_sameStatusIsInvalid(t *testing.T) {
	for _, status := range domain.BookingStatuses {
		assert.ErrorIs(t, Decide(status, domain.RoleOwner, status), domain.ErrInvalidTransition)
		assert.ErrorIs(t, Decide(status, domain.RoleBorrower, status), domain.ErrInvalidTransition)
	}
}

func TestDecide_terminalStatesHaveNoExits(t *testing.T) {
	terminals := []domain.BookingStatus{
		domain.BookingStatusRejected,
		domain.BookingStatusCancelled,
		domain.BookingStatusCompleted,
	}
	for _, from := range terminals {
		require.True(t, from.Terminal())
		for _, to := range domain.BookingStatuses {
			assert.ErrorIs(t, Decide(from, domain.RoleOwner, to), domain.ErrInvalidTransition)
			assert.ErrorIs(t, Decide(from, domain.RoleBorrower, to), domain.ErrInvalidTransition)
		}
	}
}

func TestDecide_transitionErrorCarriesEdge(t *testing.T) {
	err := Decide(domain.BookingStatusCancelled, domain.RoleOwner, domain.BookingStatusApproved)
	var te *domain.TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, domain.BookingStatusCancelled, te.From)
	assert.Equal(t, domain.BookingStatusApproved, te.To)
}
