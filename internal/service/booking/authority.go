package booking

import "github.com/neighbourgood/booking/internal/domain"

// Decide is the transition authority: a pure verdict on whether an actor in
// the given role may move a booking from current to requested. It performs
// no I/O, so the whole table is enumerable in tests.
//
//	pending  -> approved   owner    (approval also re-checks availability)
//	pending  -> rejected   owner
//	pending  -> cancelled  borrower
//	approved -> completed  owner
//	approved -> cancelled  borrower
//
// rejected, cancelled and completed are terminal.
func Decide(current domain.BookingStatus, role domain.Role, requested domain.BookingStatus) error {
	if role == domain.RoleNone {
		return domain.Forbiddenf("actor is not a party to this booking")
	}

	switch current {
	case domain.BookingStatusPending:
		if role == domain.RoleOwner && (requested == domain.BookingStatusApproved || requested == domain.BookingStatusRejected) {
			return nil
		}
		if role == domain.RoleBorrower && requested == domain.BookingStatusCancelled {
			return nil
		}
	case domain.BookingStatusApproved:
		if role == domain.RoleOwner && requested == domain.BookingStatusCompleted {
			return nil
		}
		if role == domain.RoleBorrower && requested == domain.BookingStatusCancelled {
			return nil
		}
	}
	return &domain.TransitionError{From: current, To: requested}
}
