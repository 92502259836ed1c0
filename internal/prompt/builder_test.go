package prompt

import (
	"strings"
	"testing"
	"time"

	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/indicator"
)

func window(closes ...float64) []domain.Bar {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c, High: c, Low: c, Close: c,
			Volume: 500,
		}
	}
	return bars
}

func TestBuild_Deterministic(t *testing.T) {
	bars := window(100, 103, 108)
	sum, err := indicator.Compute(bars, indicator.DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	a := Build("BTC", bars, sum, nil)
	b := Build("BTC", bars, sum, nil)
	if a != b {
		t.Error("repeated Build() produced different prompts")
	}
}

func TestBuild_DistinctSummariesDistinctPrompts(t *testing.T) {
	up := window(100, 104, 110)
	down := window(110, 104, 100)

	upSum, err := indicator.Compute(up, indicator.DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	downSum, err := indicator.Compute(down, indicator.DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	if Build("BTC", up, upSum, nil) == Build("BTC", down, downSum, nil) {
		t.Error("different summaries produced identical prompts")
	}
}

func TestBuild_ContainsKeyFacts(t *testing.T) {
	bars := window(100, 103, 110)
	sum, err := indicator.Compute(bars, indicator.DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	p := Build("ETH", bars, sum, nil)
	for _, want := range []string{"ETH", "110.00", "восходящий", "SMA", "Волатильность"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuild_NewsBlock(t *testing.T) {
	bars := window(100, 101, 102)
	sum, err := indicator.Compute(bars, indicator.DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	digest := &domain.NewsDigest{
		Score:     0.4,
		Label:     "positive",
		Headlines: []string{"Bitcoin ETF approved", "Institutional adoption grows"},
	}

	p := Build("BTC", bars, sum, digest)
	if !strings.Contains(p, "НОВОСТНОЙ ФОН") {
		t.Error("prompt missing the news block")
	}
	if !strings.Contains(p, "Bitcoin ETF approved") {
		t.Error("prompt missing a headline")
	}

	plain := Build("BTC", bars, sum, nil)
	if strings.Contains(plain, "НОВОСТНОЙ ФОН") {
		t.Error("news block rendered without a digest")
	}
}
