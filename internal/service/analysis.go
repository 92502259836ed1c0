package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/indicator"
	"github.com/set-night/cryptopulse/internal/metrics"
	"github.com/set-night/cryptopulse/internal/prompt"
	"github.com/set-night/cryptopulse/internal/quota"
)

// Collaborator seams of the analysis pipeline. Production wiring uses
// QuotaService, MarketDataService, AIService, NewsService and the store.
type (
	QuotaReserver interface {
		CheckAndReserve(ctx context.Context, userID int64, now time.Time) (quota.Decision, error)
	}

	MarketData interface {
		Fetch(ctx context.Context, symbol string, window int) ([]domain.Bar, error)
	}

	Completer interface {
		Complete(ctx context.Context, userPrompt string) (string, error)
	}

	AnalysisRecorder interface {
		InsertAnalysis(ctx context.Context, userID int64, symbol, text string, createdAt time.Time) (*domain.Analysis, error)
	}

	NewsSource interface {
		Digest(ctx context.Context, symbol string) (*domain.NewsDigest, error)
	}
)

// Result carries a finished analysis back to the handler.
type Result struct {
	Text     string
	Decision quota.Decision
	Analysis *domain.Analysis
}

// AnalysisService runs the full pipeline: quota reservation, market data,
// indicators, prompt, AI completion and the persisted record.
type AnalysisService struct {
	quota    QuotaReserver
	market   MarketData
	ai       Completer
	recorder AnalysisRecorder
	news     NewsSource
	metrics  *metrics.Metrics
	window   int
}

func NewAnalysisService(q QuotaReserver, md MarketData, ai Completer, rec AnalysisRecorder, news NewsSource, m *metrics.Metrics) *AnalysisService {
	return &AnalysisService{
		quota:    q,
		market:   md,
		ai:       ai,
		recorder: rec,
		news:     news,
		metrics:  m,
		window:   config.DefaultWindow,
	}
}

// Request runs one analysis for the user. A consumed quota slot is not
// returned on downstream failure: retrying a flaky upstream costs a slot,
// which keeps the ledger monotonic within a day and the failure path free
// of a second write.
func (s *AnalysisService) Request(ctx context.Context, user *domain.User, symbol string, now time.Time) (*Result, error) {
	start := time.Now()
	s.metrics.ActiveRequests.Inc()
	defer s.metrics.ActiveRequests.Dec()

	symbol = strings.TrimSpace(symbol)
	if !ValidateSymbol(symbol) {
		s.metrics.ObserveOutcome("symbol_not_found", start)
		return nil, fmt.Errorf("%w: %q", domain.ErrSymbolNotFound, symbol)
	}

	d, err := s.quota.CheckAndReserve(ctx, user.ID, now)
	if err != nil {
		s.metrics.ObserveOutcome("store_error", start)
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	if !d.Allowed {
		s.metrics.QuotaDenials.Inc()
		s.metrics.ObserveOutcome("quota_denied", start)
		return &Result{Decision: d}, domain.ErrQuotaExceeded
	}

	mdCtx, cancel := context.WithTimeout(ctx, config.MarketDataTimeout)
	mdStart := time.Now()
	bars, err := s.market.Fetch(mdCtx, symbol, s.window)
	cancel()
	s.metrics.MarketDataDur.Observe(time.Since(mdStart).Seconds())
	if err != nil {
		outcome := "data_error"
		if errors.Is(err, domain.ErrSymbolNotFound) {
			outcome = "symbol_not_found"
		}
		s.metrics.ObserveOutcome(outcome, start)
		return nil, err
	}

	sum, err := indicator.Compute(bars, config.RSIPeriod)
	if err != nil {
		s.metrics.ObserveOutcome("data_error", start)
		return nil, err
	}

	var digest *domain.NewsDigest
	if d.Tier == quota.TierPremium && s.news != nil {
		newsCtx, cancel := context.WithTimeout(ctx, config.NewsTimeout)
		digest, err = s.news.Digest(newsCtx, symbol)
		cancel()
		if err != nil {
			// News is an enrichment, never a failure.
			slog.Warn("news digest unavailable", "symbol", symbol, "error", err)
			digest = nil
		}
	}

	userPrompt := prompt.Build(symbol, bars, sum, digest)

	aiCtx, cancel := context.WithTimeout(ctx, config.AIRequestTimeout)
	aiStart := time.Now()
	text, err := s.ai.Complete(aiCtx, userPrompt)
	cancel()
	s.metrics.AIDur.Observe(time.Since(aiStart).Seconds())
	if err != nil {
		s.metrics.ObserveOutcome("ai_error", start)
		return nil, err
	}

	rec, err := s.recorder.InsertAnalysis(ctx, user.ID, normalizeSymbol(symbol), text, now)
	if err != nil {
		// The user already has the text; losing the history row is logged,
		// not surfaced.
		slog.Error("failed to persist analysis", "user_id", user.ID, "symbol", symbol, "error", err)
		s.metrics.ObserveOutcome("store_error", start)
		return &Result{Text: text, Decision: d}, nil
	}

	s.metrics.ObserveOutcome("ok", start)
	return &Result{Text: text, Decision: d, Analysis: rec}, nil
}
