package calllog

import (
	"context"
	"time"
)

// Repository is the persistence contract for call logs.
//
// Create MUST be append-only from the webhook pipeline's point of view:
// no Update/Delete is exposed here.
type Repository interface {
	Create(ctx context.Context, log CallLog) error
	List(ctx context.Context, f ListFilter) ([]CallLog, error)
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	// PhoneContains matches a case-insensitive substring of the phone field.
	PhoneContains string
	Status        CallStatus
	Direction     CallDirection

	// Since keeps only calls whose timestamp is at or after this instant.
	Since time.Time

	// Limit caps the number of rows returned, newest-first.
	// Implementations apply DefaultListLimit when zero.
	Limit int
}

const DefaultListLimit = 500
