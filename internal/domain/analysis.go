package domain

import "time"

// Analysis is one generated commentary. Immutable once created, append-only
// history per user.
type Analysis struct {
	ID        int64
	UserID    int64
	Symbol    string
	Text      string
	CreatedAt time.Time
}
