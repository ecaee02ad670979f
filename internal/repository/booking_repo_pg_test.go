package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewBookingRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewBookingRepository(pool)
	assert.NotNil(t, repo)
}

func TestBuildBookingWhere(t *testing.T) {
	where, args := buildBookingWhere(BookingFilter{ActorID: 1})
	assert.Equal(t, " WHERE (owner_id=$1 OR borrower_id=$1)", where)
	assert.Equal(t, []any{int64(1)}, args)

	where, args = buildBookingWhere(BookingFilter{ActorID: 1, Role: "owner", Status: "pending", ResourceID: 10})
	assert.Equal(t, " WHERE owner_id=$1 AND status=$2 AND resource_id=$3", where)
	assert.Len(t, args, 3)
}
