package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/set-night/cryptopulse/internal/domain"
)

// DBTX is the subset of pgx executors the store needs, satisfied by both
// *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store holds all SQL access to users, analyses and subscription events.
type Store struct {
	db DBTX
}

func NewStore(db DBTX) *Store {
	return &Store{db: db}
}

// WithTx returns a Store bound to the given transaction.
func (s *Store) WithTx(tx pgx.Tx) *Store {
	return &Store{db: tx}
}

const userColumns = `id, telegram_id, username, first_name, last_name,
	is_premium, premium_until, analyses_count_today, last_analysis_date,
	created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.TelegramID, &u.Username, &u.FirstName, &u.LastName,
		&u.IsPremium, &u.PremiumUntil, &u.AnalysesCountToday, &u.LastAnalysisDate,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE telegram_id = $1`, telegramID)
	return scanUser(row)
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetUserForUpdate locks the user row for the duration of the surrounding
// transaction. This is what serializes concurrent reservations from the same
// user.
func (s *Store) GetUserForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	row := s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id)
	return scanUser(row)
}

func (s *Store) CreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string) (*domain.User, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, first_name, last_name)
		VALUES ($1, $2, $3, $4)
		RETURNING `+userColumns,
		telegramID, username, firstName, lastName)
	return scanUser(row)
}

func (s *Store) UpdateUserInfo(ctx context.Context, id int64, username, firstName, lastName string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE users SET username = $2, first_name = $3, last_name = $4, updated_at = NOW()
		WHERE id = $1`,
		id, username, firstName, lastName)
	if err != nil {
		return fmt.Errorf("update user info: %w", err)
	}
	return nil
}

// UpdateUserQuota persists the daily counters written by a reservation.
func (s *Store) UpdateUserQuota(ctx context.Context, id int64, count int, lastDate *time.Time) error {
	_, err := s.db.Exec(ctx, `
		UPDATE users SET analyses_count_today = $2, last_analysis_date = $3, updated_at = NOW()
		WHERE id = $1`,
		id, count, lastDate)
	if err != nil {
		return fmt.Errorf("update user quota: %w", err)
	}
	return nil
}

func (s *Store) SetUserPremium(ctx context.Context, id int64, isPremium bool, until *time.Time) error {
	_, err := s.db.Exec(ctx, `
		UPDATE users SET is_premium = $2, premium_until = $3, updated_at = NOW()
		WHERE id = $1`,
		id, isPremium, until)
	if err != nil {
		return fmt.Errorf("set user premium: %w", err)
	}
	return nil
}

func (s *Store) InsertAnalysis(ctx context.Context, userID int64, symbol, text string, createdAt time.Time) (*domain.Analysis, error) {
	var a domain.Analysis
	err := s.db.QueryRow(ctx, `
		INSERT INTO analyses (user_id, symbol, analysis_text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, symbol, analysis_text, created_at`,
		userID, symbol, text, createdAt).
		Scan(&a.ID, &a.UserID, &a.Symbol, &a.Text, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert analysis: %w", err)
	}
	return &a, nil
}

func (s *Store) ListAnalyses(ctx context.Context, userID int64, limit int) ([]domain.Analysis, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, symbol, analysis_text, created_at
		FROM analyses WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	defer rows.Close()

	var out []domain.Analysis
	for rows.Next() {
		var a domain.Analysis
		if err := rows.Scan(&a.ID, &a.UserID, &a.Symbol, &a.Text, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan analysis: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) InsertSubscriptionEvent(ctx context.Context, e *domain.SubscriptionEvent) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO subscription_events (user_id, payment_id, plan, amount, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		e.UserID, e.PaymentID, string(e.Plan), e.Amount, string(e.Status)).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription event: %w", err)
	}
	return nil
}

func (s *Store) ListSubscriptionEvents(ctx context.Context, userID int64, limit int) ([]domain.SubscriptionEvent, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, payment_id, plan, amount, status, created_at
		FROM subscription_events WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list subscription events: %w", err)
	}
	defer rows.Close()

	var out []domain.SubscriptionEvent
	for rows.Next() {
		var (
			e      domain.SubscriptionEvent
			plan   string
			status string
			amount decimal.Decimal
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.PaymentID, &plan, &amount, &status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription event: %w", err)
		}
		e.Plan = domain.SubscriptionPlan(plan)
		e.Status = domain.SubscriptionStatus(status)
		e.Amount = amount
		out = append(out, e)
	}
	return out, rows.Err()
}

// Stats aggregates, mirroring the admin /stats report.

type UserStats struct {
	TotalUsers    int64
	PremiumUsers  int64
	ActiveToday   int64
	AnalysesToday int64
}

func (s *Store) GetUserStats(ctx context.Context, now time.Time) (*UserStats, error) {
	// the day boundary is UTC midnight, same as the quota ledger; casting
	// the timestamp in SQL would use the session time zone instead
	day := utcDay(now)

	var st UserStats
	err := s.db.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_premium AND (premium_until IS NULL OR premium_until > $1)),
			COUNT(*) FILTER (WHERE last_analysis_date = $2::date)
		FROM users`, now, day).
		Scan(&st.TotalUsers, &st.PremiumUsers, &st.ActiveToday)
	if err != nil {
		return nil, fmt.Errorf("user stats: %w", err)
	}

	err = s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM analyses WHERE (created_at AT TIME ZONE 'UTC')::date = $1::date`, day).
		Scan(&st.AnalysesToday)
	if err != nil {
		return nil, fmt.Errorf("analysis stats: %w", err)
	}
	return &st, nil
}

// utcDay renders the UTC calendar date for a date-typed SQL parameter.
func utcDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

type SymbolCount struct {
	Symbol string
	Count  int64
}

func (s *Store) TopSymbols(ctx context.Context, since time.Time, limit int) ([]SymbolCount, error) {
	rows, err := s.db.Query(ctx, `
		SELECT symbol, COUNT(*) FROM analyses
		WHERE created_at >= $1
		GROUP BY symbol ORDER BY COUNT(*) DESC LIMIT $2`,
		since, limit)
	if err != nil {
		return nil, fmt.Errorf("top symbols: %w", err)
	}
	defer rows.Close()

	var out []SymbolCount
	for rows.Next() {
		var sc SymbolCount
		if err := rows.Scan(&sc.Symbol, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan symbol count: %w", err)
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}
