package domain

import "time"

// Resource is the catalog entry a booking reserves. The catalog is owned by
// a separate subsystem; this service only reads it for ownership,
// availability and the title snapshot.
type Resource struct {
	ID          int64
	Title       string
	Description string
	Category    string
	OwnerID     int64
	IsAvailable bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
