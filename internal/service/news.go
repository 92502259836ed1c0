package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/domain"
)

// NewsService scrapes recent headlines for a coin and scores their tone with
// a keyword lexicon. It is best-effort: callers treat any error as "no news".
type NewsService struct {
	httpClient *http.Client
	baseURL    string
}

func NewNewsService() *NewsService {
	return &NewsService{
		httpClient: &http.Client{Timeout: config.NewsTimeout},
		baseURL:    "https://finance.yahoo.com/quote",
	}
}

var negativeWords = []string{
	"hack", "scam", "fraud", "lawsuit", "ban", "fall", "drop", "bearish",
	"fud", "exploit", "loss", "down", "risk", "fine", "penalty",
}

var positiveWords = []string{
	"surge", "rise", "growth", "bullish", "adoption", "partnership",
	"profit", "up", "gain", "win", "approve", "etf", "funding",
}

// Digest fetches up to MaxNewsHeadlines recent headlines and their overall
// sentiment for the symbol.
func (s *NewsService) Digest(ctx context.Context, symbol string) (*domain.NewsDigest, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	pageURL := fmt.Sprintf("%s/%s-USD/news", s.baseURL, symbol)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch news: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse news page: %w", err)
	}

	headlines := extractHeadlines(doc, config.MaxNewsHeadlines)
	if len(headlines) == 0 {
		return nil, fmt.Errorf("no headlines for %s", symbol)
	}

	score, label := Sentiment(headlines)
	return &domain.NewsDigest{
		Score:     score,
		Label:     label,
		Headlines: headlines,
	}, nil
}

func extractHeadlines(doc *goquery.Document, limit int) []string {
	seen := make(map[string]bool)
	headlines := make([]string, 0, limit)
	doc.Find("h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" || seen[text] {
			return true
		}
		seen[text] = true
		headlines = append(headlines, text)
		return len(headlines) < limit
	})
	return headlines
}

// Sentiment scores headlines by keyword counts. The score lands in [-1, 1];
// anything past ±0.2 gets a non-neutral label.
func Sentiment(headlines []string) (float64, string) {
	var pos, neg int
	for _, h := range headlines {
		lower := strings.ToLower(h)
		for _, w := range positiveWords {
			pos += strings.Count(lower, w)
		}
		for _, w := range negativeWords {
			neg += strings.Count(lower, w)
		}
	}

	score := float64(pos-neg) / float64(pos+neg+1)
	switch {
	case score > 0.2:
		return score, "позитивный"
	case score < -0.2:
		return score, "негативный"
	default:
		return score, "нейтральный"
	}
}
