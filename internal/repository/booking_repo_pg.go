package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neighbourgood/booking/internal/domain"
)

const bookingColumns = `id, resource_id, resource_title, owner_id, borrower_id, start_date, end_date, message, status, created_at, updated_at`

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	booking.Status = domain.BookingStatusPending
	if err := r.db.QueryRow(ctx, `INSERT INTO bookings (resource_id, resource_title, owner_id, borrower_id, start_date, end_date, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.ResourceID, booking.ResourceTitle, booking.OwnerID, booking.BorrowerID,
		booking.StartDate, booking.EndDate, booking.Message, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("booking %d", id)
		}
		return nil, err
	}
	return b, nil
}

// UpdateStatus writes the new status only if the stored status still equals
// expected. A concurrent writer that got there first makes the row
// invisible to the WHERE clause, which surfaces as ErrConflict.
func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, expected, next domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3 RETURNING `+bookingColumns, next, id, expected)
	b, err := scanBooking(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	var current domain.BookingStatus
	if err := r.db.QueryRow(ctx, `SELECT status FROM bookings WHERE id=$1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("booking %d", id)
		}
		return nil, err
	}
	return nil, domain.Conflictf("booking %d is %q, expected %q", id, current, expected)
}

// ApproveIfFree commits an approval in one transaction. A per-resource
// advisory lock serializes concurrent approvals for the same resource just
// long enough for the overlap re-check and the compare-and-set; approvals
// for other resources are unaffected.
func (r *PGBookingRepository) ApproveIfFree(ctx context.Context, id int64, expected domain.BookingStatus) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	current, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundf("booking %d", id)
		}
		return nil, err
	}
	if current.Status != expected {
		return nil, domain.Conflictf("booking %d is %q, expected %q", id, current.Status, expected)
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, current.ResourceID); err != nil {
		return nil, err
	}

	var overlap bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE resource_id=$1 AND status=$2 AND start_date <= $3 AND end_date >= $4 AND id <> $5
	)`, current.ResourceID, domain.BookingStatusApproved, current.EndDate, current.StartDate, current.ID).Scan(&overlap); err != nil {
		return nil, err
	}
	if overlap {
		return nil, domain.Conflictf("booking %d overlaps an approved booking", id)
	}

	row = tx.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2 AND status=$3 RETURNING `+bookingColumns,
		domain.BookingStatusApproved, id, expected)
	updated, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.Conflictf("booking %d changed status concurrently", id)
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *PGBookingRepository) List(ctx context.Context, filter BookingFilter) ([]domain.Booking, int, error) {
	where, args := buildBookingWhere(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func buildBookingWhere(filter BookingFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	switch filter.Role {
	case domain.RoleOwner:
		conds = append(conds, "owner_id="+arg(filter.ActorID))
	case domain.RoleBorrower:
		conds = append(conds, "borrower_id="+arg(filter.ActorID))
	default:
		p := arg(filter.ActorID)
		conds = append(conds, fmt.Sprintf("(owner_id=%s OR borrower_id=%s)", p, p))
	}
	if filter.Status != "" {
		conds = append(conds, "status="+arg(filter.Status))
	}
	if filter.ResourceID != 0 {
		conds = append(conds, "resource_id="+arg(filter.ResourceID))
	}

	where := " WHERE " + conds[0]
	for _, c := range conds[1:] {
		where += " AND " + c
	}
	return where, args
}

func (r *PGBookingRepository) AnyApprovedOverlap(ctx context.Context, resourceID int64, start, end time.Time, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM bookings
		WHERE resource_id=$1 AND status=$2 AND start_date <= $3 AND end_date >= $4 AND id <> $5
	)`, resourceID, domain.BookingStatusApproved, end, start, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PGBookingRepository) ListActiveInWindow(ctx context.Context, resourceID int64, start, end time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE resource_id=$1 AND status IN ($2, $3) AND start_date <= $4 AND end_date >= $5
		ORDER BY start_date`,
		resourceID, domain.BookingStatusPending, domain.BookingStatusApproved, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListApprovedEndedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE status=$1 AND end_date < $2
		ORDER BY end_date`,
		domain.BookingStatusApproved, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.ResourceID, &b.ResourceTitle, &b.OwnerID, &b.BorrowerID,
		&b.StartDate, &b.EndDate, &b.Message, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
