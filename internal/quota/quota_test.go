package quota

import (
	"testing"
	"time"

	"github.com/set-night/cryptopulse/internal/domain"
)

var limits = Limits{Free: 3, Premium: 50}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

func freeUser(count int, lastDate *time.Time) *domain.User {
	return &domain.User{
		ID:                 1,
		TelegramID:         100,
		AnalysesCountToday: count,
		LastAnalysisDate:   lastDate,
	}
}

func TestResolveTier(t *testing.T) {
	now := at(2025, time.March, 10, 12)
	past := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)

	tests := []struct {
		name  string
		user  *domain.User
		wantT Tier
	}{
		{"free flag unset", &domain.User{}, TierFree},
		{"premium no expiry", &domain.User{IsPremium: true}, TierPremium},
		{"premium future expiry", &domain.User{IsPremium: true, PremiumUntil: &future}, TierPremium},
		{"premium expired", &domain.User{IsPremium: true, PremiumUntil: &past}, TierFree},
		{"expiry without flag", &domain.User{PremiumUntil: &future}, TierFree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveTier(tt.user, now); got != tt.wantT {
				t.Errorf("ResolveTier() = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestReserve_NeverExceedsLimit(t *testing.T) {
	now := at(2025, time.March, 10, 12)
	u := freeUser(0, nil)

	allowed := 0
	for i := 0; i < 10; i++ {
		d := Reserve(u, now, limits)
		if d.Allowed {
			allowed++
		}
	}
	if allowed != limits.Free {
		t.Errorf("allowed %d reservations, want %d", allowed, limits.Free)
	}
	if u.AnalysesCountToday != limits.Free {
		t.Errorf("count = %d, want %d", u.AnalysesCountToday, limits.Free)
	}
}

func TestReserve_MidnightCrossingResets(t *testing.T) {
	yesterday := day(2025, time.March, 9)
	u := freeUser(3, &yesterday)

	d := Reserve(u, at(2025, time.March, 10, 0), limits)

	if !d.Allowed {
		t.Fatalf("Reserve() denied after day change; decision %+v", d)
	}
	if !d.DayReset {
		t.Error("DayReset = false, want true")
	}
	if u.AnalysesCountToday != 1 {
		t.Errorf("count = %d, want 1", u.AnalysesCountToday)
	}
	if u.LastAnalysisDate == nil || !u.LastAnalysisDate.Equal(day(2025, time.March, 10)) {
		t.Errorf("LastAnalysisDate = %v, want 2025-03-10", u.LastAnalysisDate)
	}
}

func TestReserve_DenialIsSideEffectFree(t *testing.T) {
	today := day(2025, time.March, 10)
	u := freeUser(3, &today)

	d := Reserve(u, at(2025, time.March, 10, 15), limits)

	if d.Allowed {
		t.Fatal("Reserve() allowed over the limit")
	}
	if d.Remaining != 0 {
		t.Errorf("Remaining = %d, want 0", d.Remaining)
	}
	if u.AnalysesCountToday != 3 {
		t.Errorf("count mutated to %d on denial", u.AnalysesCountToday)
	}
}

func TestReserve_ExpiredPremiumUsesFreeLimit(t *testing.T) {
	now := at(2025, time.March, 10, 12)
	expired := now.Add(-time.Minute)
	today := day(2025, time.March, 10)
	u := freeUser(3, &today)
	u.IsPremium = true
	u.PremiumUntil = &expired

	d := Reserve(u, now, limits)
	if d.Allowed {
		t.Error("expired premium admitted beyond the free limit")
	}
	if d.Tier != TierFree {
		t.Errorf("Tier = %v, want TierFree", d.Tier)
	}
}

func TestReserve_PremiumLimit(t *testing.T) {
	now := at(2025, time.March, 10, 12)
	until := now.Add(30 * 24 * time.Hour)
	today := day(2025, time.March, 10)
	u := freeUser(10, &today)
	u.IsPremium = true
	u.PremiumUntil = &until

	d := Reserve(u, now, limits)
	if !d.Allowed {
		t.Fatal("premium user denied below the premium limit")
	}
	if d.Limit != limits.Premium {
		t.Errorf("Limit = %d, want %d", d.Limit, limits.Premium)
	}
	if d.Remaining != limits.Premium-11 {
		t.Errorf("Remaining = %d, want %d", d.Remaining, limits.Premium-11)
	}
}

func TestRemaining(t *testing.T) {
	now := at(2025, time.March, 10, 12)
	today := day(2025, time.March, 10)
	yesterday := day(2025, time.March, 9)

	tests := []struct {
		name string
		user *domain.User
		want int
	}{
		{"fresh user", freeUser(0, nil), 3},
		{"partially used", freeUser(2, &today), 1},
		{"exhausted", freeUser(3, &today), 0},
		{"stale counter from yesterday", freeUser(3, &yesterday), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.user.AnalysesCountToday
			if got := Remaining(tt.user, now, limits); got != tt.want {
				t.Errorf("Remaining() = %d, want %d", got, tt.want)
			}
			if tt.user.AnalysesCountToday != before {
				t.Error("Remaining() mutated the user")
			}
		})
	}
}
