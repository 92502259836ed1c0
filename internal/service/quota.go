package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/set-night/cryptopulse/internal/quota"
	"github.com/set-night/cryptopulse/internal/repository"
)

// QuotaService is the daily quota ledger over the persistence store. The
// admission logic itself lives in the quota package; this layer adds the
// row lock and the durable write, so a reservation is never observable
// without its persisted state change.
type QuotaService struct {
	db     *pgxpool.Pool
	store  *repository.Store
	limits quota.Limits
}

func NewQuotaService(db *pgxpool.Pool, store *repository.Store, limits quota.Limits) *QuotaService {
	return &QuotaService{db: db, store: store, limits: limits}
}

func (s *QuotaService) Limits() quota.Limits {
	return s.limits
}

// CheckAndReserve atomically admits or denies one analysis request.
// Concurrent calls for the same user serialize on the row lock; a denial
// writes nothing except a lazy day reset.
func (s *QuotaService) CheckAndReserve(ctx context.Context, userID int64, now time.Time) (quota.Decision, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return quota.Decision{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.store.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return quota.Decision{}, fmt.Errorf("lock user: %w", err)
	}

	d := quota.Reserve(user, now, s.limits)

	if d.Allowed || d.DayReset {
		if err := qtx.UpdateUserQuota(ctx, user.ID, user.AnalysesCountToday, user.LastAnalysisDate); err != nil {
			return quota.Decision{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return quota.Decision{}, fmt.Errorf("commit: %w", err)
	}
	return d, nil
}

// Remaining reports today's unused slots from a fresh read, without
// consuming one.
func (s *QuotaService) Remaining(ctx context.Context, userID int64, now time.Time) (int, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return quota.Remaining(user, now, s.limits), nil
}
