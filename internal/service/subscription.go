package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/repository"
)

// SubscriptionService maintains the premium flag and the append-only event
// trail. Real payment settlement is not implemented: the only status
// transitions come from the test activation commands.
type SubscriptionService struct {
	db    *pgxpool.Pool
	store *repository.Store
}

func NewSubscriptionService(db *pgxpool.Pool, store *repository.Store) *SubscriptionService {
	return &SubscriptionService{db: db, store: store}
}

// GrantTestPremium enables premium for the given number of days and records
// a test_granted event. An already-active premium is extended from its
// current expiry.
func (s *SubscriptionService) GrantTestPremium(ctx context.Context, userID int64, days int, now time.Time) (time.Time, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return time.Time{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.store.WithTx(tx)

	user, err := qtx.GetUserForUpdate(ctx, userID)
	if err != nil {
		return time.Time{}, fmt.Errorf("lock user: %w", err)
	}

	until := now.AddDate(0, 0, days)
	if user.IsPremiumActive(now) && user.PremiumUntil != nil {
		until = user.PremiumUntil.AddDate(0, 0, days)
	}

	if err := qtx.SetUserPremium(ctx, userID, true, &until); err != nil {
		return time.Time{}, err
	}

	event := &domain.SubscriptionEvent{
		UserID:    userID,
		PaymentID: uuid.NewString(),
		Plan:      domain.PlanPremium30d,
		Amount:    decimal.Zero,
		Status:    domain.SubscriptionTestGranted,
	}
	if err := qtx.InsertSubscriptionEvent(ctx, event); err != nil {
		return time.Time{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return time.Time{}, fmt.Errorf("commit: %w", err)
	}
	return until, nil
}

// RevokePremium clears the premium flag and records a revoked event.
func (s *SubscriptionService) RevokePremium(ctx context.Context, userID int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	qtx := s.store.WithTx(tx)

	if err := qtx.SetUserPremium(ctx, userID, false, nil); err != nil {
		return err
	}

	event := &domain.SubscriptionEvent{
		UserID:    userID,
		PaymentID: uuid.NewString(),
		Plan:      domain.PlanPremium30d,
		Amount:    decimal.Zero,
		Status:    domain.SubscriptionRevoked,
	}
	if err := qtx.InsertSubscriptionEvent(ctx, event); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RecordPendingPurchase appends an audit row for a purchase intent shown to
// the user. Nothing is charged.
func (s *SubscriptionService) RecordPendingPurchase(ctx context.Context, userID int64, plan domain.SubscriptionPlan, amount float64) error {
	event := &domain.SubscriptionEvent{
		UserID:    userID,
		PaymentID: uuid.NewString(),
		Plan:      plan,
		Amount:    decimal.NewFromFloat(amount),
		Status:    domain.SubscriptionPending,
	}
	return s.store.InsertSubscriptionEvent(ctx, event)
}
