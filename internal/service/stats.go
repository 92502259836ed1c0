package service

import (
	"context"
	"time"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/repository"
)

// StatsService serves the read-only aggregates behind the admin /stats
// command and the stats API.
type StatsService struct {
	store *repository.Store
}

func NewStatsService(store *repository.Store) *StatsService {
	return &StatsService{store: store}
}

func (s *StatsService) Users(ctx context.Context, now time.Time) (*repository.UserStats, error) {
	return s.store.GetUserStats(ctx, now)
}

// TopSymbols ranks the most analyzed symbols of the recent lookback window.
func (s *StatsService) TopSymbols(ctx context.Context, now time.Time) ([]repository.SymbolCount, error) {
	return s.store.TopSymbols(ctx, now.AddDate(0, 0, -config.TopSymbolsDays), config.TopSymbolsLimit)
}
