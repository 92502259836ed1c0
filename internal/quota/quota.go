// Package quota implements the daily analysis quota ledger core: tier
// resolution, the lazy calendar-day reset and the check-and-reserve
// admission decision.
//
// All functions are pure over the user row plus an explicit "now" — there is
// no hidden clock, which keeps the reset logic testable without mocking
// system time. Persistence and same-user serialization live in the service
// layer (a row lock around Reserve).
package quota

import (
	"time"

	"github.com/set-night/cryptopulse/internal/domain"
)

type Tier int

const (
	TierFree Tier = iota
	TierPremium
)

func (t Tier) String() string {
	if t == TierPremium {
		return "premium"
	}
	return "free"
}

// Limits holds the configured daily allowance per tier.
type Limits struct {
	Free    int
	Premium int
}

func (l Limits) ForTier(t Tier) int {
	if t == TierPremium {
		return l.Premium
	}
	return l.Free
}

// Decision is the outcome of one reservation attempt.
type Decision struct {
	Allowed   bool
	Tier      Tier
	Limit     int
	Used      int  // count after the attempt
	Remaining int  // slots left after the attempt
	DayReset  bool // lazy daily reset was applied
}

// ResolveTier returns the tier in effect at the given moment. Premium with an
// expiry in the past is free, regardless of the stored flag.
func ResolveTier(u *domain.User, now time.Time) Tier {
	if u.IsPremiumActive(now) {
		return TierPremium
	}
	return TierFree
}

// Reserve applies the lazy daily reset and, if a slot is available,
// consumes it by mutating u's counters. A denial leaves the counters
// untouched apart from the reset itself. The caller is responsible for
// persisting u atomically under a per-row lock.
func Reserve(u *domain.User, now time.Time, limits Limits) Decision {
	reset := applyDayReset(u, now)

	tier := ResolveTier(u, now)
	limit := limits.ForTier(tier)

	d := Decision{
		Tier:     tier,
		Limit:    limit,
		Used:     u.AnalysesCountToday,
		DayReset: reset,
	}

	if u.AnalysesCountToday >= limit {
		d.Remaining = 0
		return d
	}

	u.AnalysesCountToday++
	day := dayOf(now)
	u.LastAnalysisDate = &day

	d.Allowed = true
	d.Used = u.AnalysesCountToday
	d.Remaining = limit - u.AnalysesCountToday
	return d
}

// Remaining reports how many slots the user has left today without consuming
// one. The receiver is not mutated.
func Remaining(u *domain.User, now time.Time, limits Limits) int {
	used := u.AnalysesCountToday
	if u.LastAnalysisDate == nil || !sameDay(*u.LastAnalysisDate, now) {
		used = 0
	}
	limit := limits.ForTier(ResolveTier(u, now))
	if used >= limit {
		return 0
	}
	return limit - used
}

// applyDayReset zeroes the counter when the stored date is not today.
func applyDayReset(u *domain.User, now time.Time) bool {
	if u.LastAnalysisDate != nil && sameDay(*u.LastAnalysisDate, now) {
		return false
	}
	if u.LastAnalysisDate == nil && u.AnalysesCountToday == 0 {
		return false
	}
	u.AnalysesCountToday = 0
	day := dayOf(now)
	u.LastAnalysisDate = &day
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
