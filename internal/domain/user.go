package domain

import "time"

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string

	IsPremium    bool
	PremiumUntil *time.Time

	// Daily quota counters. AnalysesCountToday is meaningful only while
	// LastAnalysisDate matches the current calendar day; any read on a new
	// day must reset it first (see the quota package).
	AnalysesCountToday int
	LastAnalysisDate   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPremiumActive reports whether the premium tier applies at the given
// moment. An expired premium is treated as free even if the flag was never
// physically cleared.
func (u *User) IsPremiumActive(now time.Time) bool {
	if !u.IsPremium {
		return false
	}
	if u.PremiumUntil == nil {
		return true
	}
	return u.PremiumUntil.After(now)
}

func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username != "" {
		return u.Username
	}
	return "трейдер"
}
