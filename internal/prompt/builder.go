// Package prompt assembles the analysis prompt sent to the AI model. Pure
// string formatting: the same inputs always produce the same prompt, and two
// different indicator summaries never collapse into the same text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/set-night/cryptopulse/internal/domain"
	"github.com/set-night/cryptopulse/internal/indicator"
)

// SystemPrompt sets the analyst persona for every completion request.
const SystemPrompt = `Ты — опытный криптовалютный аналитик. Тебе передают рыночные данные и технические индикаторы по одному токену.

Составь структурированный анализ на русском языке:
1. Краткий вывод о текущей ситуации (2-3 предложения).
2. Интерпретация тренда и индикаторов (SMA, RSI, волатильность).
3. Ключевые уровни: максимум и минимум периода.
4. Возможные сценарии движения цены.

Не давай финансовых советов и не обещай доходность. В конце добавь дисклеймер о том, что анализ не является инвестиционной рекомендацией.`

// historyDepth is how many of the latest bars go into the detail table.
const historyDepth = 10

// Build renders the user prompt from the bar window and indicator summary.
// digest is optional; when present a news block is appended.
func Build(symbol string, bars []domain.Bar, sum *indicator.Summary, digest *domain.NewsDigest) string {
	var b strings.Builder

	first := bars[0]
	last := bars[len(bars)-1]

	fmt.Fprintf(&b, "Анализ криптовалюты: %s\n\n", symbol)

	fmt.Fprintf(&b, "ТЕКУЩИЕ ДАННЫЕ:\n")
	fmt.Fprintf(&b, "Последняя цена закрытия: $%.2f\n", last.Close)
	fmt.Fprintf(&b, "Дата: %s\n\n", last.Timestamp.Format("2006-01-02"))

	fmt.Fprintf(&b, "СТАТИСТИКА ЗА ПЕРИОД (%d дней):\n", len(bars))
	fmt.Fprintf(&b, "Начальная цена: $%.2f\n", first.Close)
	fmt.Fprintf(&b, "Изменение: $%.2f (%+.2f%%)\n", last.Close-first.Close, sum.ChangePct)
	fmt.Fprintf(&b, "Максимум: $%.2f\n", sum.High)
	fmt.Fprintf(&b, "Минимум: $%.2f\n", sum.Low)
	fmt.Fprintf(&b, "Средний объем: %.0f\n\n", sum.AvgVolume)

	fmt.Fprintf(&b, "ДЕТАЛЬНАЯ ИСТОРИЯ (последние %d дней):\n", min(historyDepth, len(bars)))
	b.WriteString(historyTable(bars))
	b.WriteString("\n")

	fmt.Fprintf(&b, "ТЕХНИЧЕСКИЕ ИНДИКАТОРЫ:\n")
	fmt.Fprintf(&b, "Тренд: %s\n", trendLabel(sum.Trend, sum.ChangePct))
	fmt.Fprintf(&b, "SMA(%d): $%.2f (цена %s SMA)\n", len(bars), sum.SMA, smaPosition(last.Close, sum.SMA))
	if sum.HasRSI {
		fmt.Fprintf(&b, "RSI(%d): %.2f (%s)\n", indicator.DefaultRSIPeriod, sum.RSI, rsiLabel(sum.RSI))
	} else {
		b.WriteString("RSI: недостаточно данных\n")
	}
	fmt.Fprintf(&b, "Волатильность дневных доходностей: %.2f%%\n", sum.Volatility)

	if digest != nil && len(digest.Headlines) > 0 {
		fmt.Fprintf(&b, "\nНОВОСТНОЙ ФОН (%d заголовков, тональность: %s, %.2f):\n",
			len(digest.Headlines), digest.Label, digest.Score)
		for _, h := range digest.Headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	return b.String()
}

func historyTable(bars []domain.Bar) string {
	var b strings.Builder
	b.WriteString("Дата       | Открытие | Максимум | Минимум  | Закрытие | Объем\n")

	start := len(bars) - historyDepth
	if start < 0 {
		start = 0
	}
	for _, bar := range bars[start:] {
		fmt.Fprintf(&b, "%s | %8.2f | %8.2f | %8.2f | %8.2f | %.0f\n",
			bar.Timestamp.Format("2006-01-02"), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	return b.String()
}

func trendLabel(t indicator.Trend, changePct float64) string {
	switch t {
	case indicator.TrendUp:
		return fmt.Sprintf("восходящий (%+.2f%%)", changePct)
	case indicator.TrendDown:
		return fmt.Sprintf("нисходящий (%+.2f%%)", changePct)
	default:
		return fmt.Sprintf("боковой (%+.2f%%)", changePct)
	}
}

func smaPosition(price, sma float64) string {
	if price > sma {
		return "выше"
	}
	return "ниже"
}

func rsiLabel(rsi float64) string {
	switch {
	case rsi > 70:
		return "перекуплен"
	case rsi < 30:
		return "перепродан"
	default:
		return "нейтрален"
	}
}
