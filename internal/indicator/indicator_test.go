package indicator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/set-night/cryptopulse/internal/domain"
)

func barsFromCloses(closes ...float64) []domain.Bar {
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]domain.Bar, len(closes))
	for i, c := range closes {
		bars[i] = domain.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1000,
		}
	}
	return bars
}

func assertClose(t *testing.T, label string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %.6f, want %.6f (tol=%.6f)", label, got, want, tol)
	}
}

func TestCompute_SMA(t *testing.T) {
	// Hand-calculated: (100+102+104+103+105)/5 = 102.8
	s, err := Compute(barsFromCloses(100, 102, 104, 103, 105), DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertClose(t, "SMA", s.SMA, 102.8, 0.0001)
}

func TestCompute_Trend(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		want   Trend
	}{
		{"up beyond band", []float64{100, 103, 106}, TrendUp},
		{"down beyond band", []float64{100, 97, 94}, TrendDown},
		{"inside band", []float64{100, 104, 103}, TrendFlat},
		{"exactly +5 is flat", []float64{100, 105}, TrendFlat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compute(barsFromCloses(tt.closes...), DefaultRSIPeriod)
			if err != nil {
				t.Fatalf("Compute() error: %v", err)
			}
			if s.Trend != tt.want {
				t.Errorf("Trend = %v (change %.2f%%), want %v", s.Trend, s.ChangePct, tt.want)
			}
		})
	}
}

func TestCompute_RSI(t *testing.T) {
	// RSI(3) over 100, 101, 102, 103: all gains, avgLoss = 0 -> RSI 100.
	s, err := Compute(barsFromCloses(100, 101, 102, 103), 3)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !s.HasRSI {
		t.Fatal("HasRSI = false with period+1 bars")
	}
	assertClose(t, "RSI all gains", s.RSI, 100, 0.0001)

	// RSI(2) over 100, 102, 101, 103:
	// seed deltas: +2, -1 -> avgGain=1, avgLoss=0.5
	// next delta +2: avgGain=(1*1+2)/2=1.5, avgLoss=(0.5*1+0)/2=0.25
	// RS=6, RSI=100-100/7 = 85.714286
	s, err = Compute(barsFromCloses(100, 102, 101, 103), 2)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertClose(t, "RSI mixed", s.RSI, 85.714286, 0.0001)
}

func TestCompute_RSIRequiresEnoughBars(t *testing.T) {
	s, err := Compute(barsFromCloses(100, 101, 102), 14)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if s.HasRSI {
		t.Error("HasRSI = true with a window shorter than period+1")
	}
}

func TestCompute_Volatility(t *testing.T) {
	// Closes 100, 110, 99: returns +0.10, -0.10; mean 0,
	// population stddev = 0.10 -> 10%.
	s, err := Compute(barsFromCloses(100, 110, 99), DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertClose(t, "volatility", s.Volatility, 10.0, 0.0001)
}

func TestCompute_InsufficientData(t *testing.T) {
	for _, n := range []int{0, 1} {
		closes := make([]float64, n)
		for i := range closes {
			closes[i] = 100
		}
		_, err := Compute(barsFromCloses(closes...), DefaultRSIPeriod)
		if !errors.Is(err, domain.ErrInsufficientData) {
			t.Errorf("Compute() with %d bars: err = %v, want ErrInsufficientData", n, err)
		}
	}
}

func TestCompute_ZeroPriceBarDoesNotPanic(t *testing.T) {
	s, err := Compute(barsFromCloses(100, 0, 105, 0, 110), DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if math.IsNaN(s.Volatility) || math.IsInf(s.Volatility, 0) {
		t.Errorf("volatility = %v with zero-price bars", s.Volatility)
	}
	if math.IsNaN(s.ChangePct) {
		t.Errorf("change = %v with zero-price bars", s.ChangePct)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	bars := barsFromCloses(100, 102, 104, 101, 99, 103, 108, 107, 105, 110,
		112, 111, 109, 113, 115, 114, 118, 117, 120, 119)

	a, err := Compute(bars, DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	b, err := Compute(bars, DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if *a != *b {
		t.Errorf("repeated Compute() differs:\n%+v\n%+v", *a, *b)
	}
}

func TestCompute_HighLowVolume(t *testing.T) {
	bars := []domain.Bar{
		{Close: 100, High: 120, Low: 95, Volume: 1000},
		{Close: 102, High: 104, Low: 90, Volume: 3000},
	}
	s, err := Compute(bars, DefaultRSIPeriod)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertClose(t, "high", s.High, 120, 0.0001)
	assertClose(t, "low", s.Low, 90, 0.0001)
	assertClose(t, "avg volume", s.AvgVolume, 2000, 0.0001)
}
