package domain

import "errors"

var (
	// ErrQuotaExceeded is an expected outcome, not a fault: the caller must
	// render it as a normal user-facing reply.
	ErrQuotaExceeded = errors.New("daily analysis limit reached")

	ErrSymbolNotFound   = errors.New("symbol not found")
	ErrDataUnavailable  = errors.New("market data unavailable")
	ErrInsufficientData = errors.New("not enough price history")
	ErrAIUnavailable    = errors.New("ai service unavailable")
	ErrAIRateLimited    = errors.New("ai service rate limited")
	ErrPersistence      = errors.New("storage failure")
	ErrUserNotFound     = errors.New("user not found")
)
