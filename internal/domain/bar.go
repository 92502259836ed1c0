package domain

import "time"

// Bar is one daily OHLCV candle. Windows are ordered oldest first.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// NewsDigest summarizes recent headlines for a symbol: an aggregate sentiment
// score in [-1, 1] with a label, plus the headlines themselves.
type NewsDigest struct {
	Score     float64
	Label     string
	Headlines []string
}
