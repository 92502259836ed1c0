// Package indicator computes summary statistics over a daily OHLCV window.
//
// Compute is a pure, deterministic transform: the same window always yields
// the same summary. Rules in effect:
//
//   - Trend: percent change of the last close vs the first close; above +5%
//     is Up, below -5% is Down, otherwise Flat.
//   - SMA: simple average of closes over the whole window.
//   - RSI: Wilder smoothing with an SMA seed over the first period deltas,
//     reported only when the window supplies at least period+1 bars.
//   - Volatility: population standard deviation of daily close-to-close
//     returns, in percent.
//
// Every division is guarded; zero-price or zero-volume bars contribute
// nothing instead of faulting.
package indicator

import (
	"fmt"
	"math"

	"github.com/set-night/cryptopulse/internal/domain"
)

type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// flatBandPct is the +-band of period change treated as a sideways market.
const flatBandPct = 5.0

const DefaultRSIPeriod = 14

// Summary is the indicator output for one window.
type Summary struct {
	Trend      Trend
	ChangePct  float64 // close change over the window, percent
	SMA        float64 // over the full window
	RSI        float64
	HasRSI     bool    // false when the window is shorter than period+1 bars
	Volatility float64 // stddev of daily returns, percent
	High       float64 // period high
	Low        float64 // period low
	AvgVolume  float64
}

// Compute derives a Summary from an oldest-first bar window.
// Windows shorter than 2 bars cannot produce returns and are rejected with
// domain.ErrInsufficientData.
func Compute(bars []domain.Bar, rsiPeriod int) (*Summary, error) {
	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: got %d bars, need at least 2", domain.ErrInsufficientData, len(bars))
	}
	if rsiPeriod <= 0 {
		rsiPeriod = DefaultRSIPeriod
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	s := &Summary{
		SMA:        mean(closes),
		Volatility: returnsVolatility(closes),
		High:       bars[0].High,
		Low:        bars[0].Low,
	}

	s.ChangePct = changePct(closes[0], closes[len(closes)-1])
	s.Trend = classifyTrend(s.ChangePct)

	if rsi, ok := wilderRSI(closes, rsiPeriod); ok {
		s.RSI = rsi
		s.HasRSI = true
	}

	var volSum float64
	for _, b := range bars {
		if b.High > s.High {
			s.High = b.High
		}
		if b.Low < s.Low {
			s.Low = b.Low
		}
		volSum += b.Volume
	}
	s.AvgVolume = volSum / float64(len(bars))

	return s, nil
}

func classifyTrend(changePct float64) Trend {
	switch {
	case changePct > flatBandPct:
		return TrendUp
	case changePct < -flatBandPct:
		return TrendDown
	default:
		return TrendFlat
	}
}

func changePct(first, last float64) float64 {
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// returnsVolatility is the population stddev of daily close-to-close returns,
// in percent. Bars following a zero close contribute a zero return.
func returnsVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}
	returns := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}

	m := mean(returns)
	var sq float64
	for _, r := range returns {
		sq += (r - m) * (r - m)
	}
	return math.Sqrt(sq/float64(len(returns))) * 100
}

// wilderRSI computes RSI over the last period+1 closes: SMA seed over the
// first period deltas, then Wilder smoothing for the rest of the window.
func wilderRSI(closes []float64, period int) (float64, bool) {
	if len(closes) < period+1 {
		return 0, false
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			avgGain += delta
		} else {
			avgLoss += -delta
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)

	p := float64(period)
	for i := period + 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if delta > 0 {
			gain = delta
		} else {
			loss = -delta
		}
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
	}

	if avgLoss == 0 {
		return 100, true
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), true
}
