package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSentiment(t *testing.T) {
	cases := []struct {
		name      string
		headlines []string
		wantLabel string
		positive  bool
		negative  bool
	}{
		{
			name:      "clearly positive",
			headlines: []string{"Bitcoin ETF approved", "Institutional adoption surge continues"},
			wantLabel: "позитивный",
			positive:  true,
		},
		{
			name:      "clearly negative",
			headlines: []string{"Exchange hack causes massive loss", "Regulators ban crypto lending"},
			wantLabel: "негативный",
			negative:  true,
		},
		{
			name:      "mixed",
			headlines: []string{"Prices rise despite lawsuit risk", "Market drop follows ETF gain"},
			wantLabel: "нейтральный",
		},
		{
			name:      "no keywords",
			headlines: []string{"Quarterly report published on schedule"},
			wantLabel: "нейтральный",
		},
		{
			name:      "empty",
			headlines: nil,
			wantLabel: "нейтральный",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			score, label := Sentiment(c.headlines)
			if label != c.wantLabel {
				t.Errorf("label = %q, want %q (score %v)", label, c.wantLabel, score)
			}
			if c.positive && score <= 0 {
				t.Errorf("score = %v, want > 0", score)
			}
			if c.negative && score >= 0 {
				t.Errorf("score = %v, want < 0", score)
			}
			if score < -1 || score > 1 {
				t.Errorf("score %v outside [-1, 1]", score)
			}
		})
	}
}

func TestDigest_ExtractsHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<h3>Bitcoin surge continues after ETF approval</h3>
			<h3>Miners report record profit</h3>
			<h3></h3>
			<h3>Miners report record profit</h3>
		</body></html>`)
	}))
	defer srv.Close()

	svc := NewNewsService()
	svc.baseURL = srv.URL

	digest, err := svc.Digest(context.Background(), "btc")
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if len(digest.Headlines) != 2 {
		t.Fatalf("headlines = %v, want 2 unique non-empty", digest.Headlines)
	}
	if digest.Label != "позитивный" {
		t.Errorf("label = %q, want позитивный (score %v)", digest.Label, digest.Score)
	}
}

func TestDigest_NoHeadlinesIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><p>nothing here</p></body></html>`)
	}))
	defer srv.Close()

	svc := NewNewsService()
	svc.baseURL = srv.URL

	if _, err := svc.Digest(context.Background(), "BTC"); err == nil {
		t.Fatal("expected error for a page without headlines")
	}
}

func TestDigest_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewNewsService()
	svc.baseURL = srv.URL

	if _, err := svc.Digest(context.Background(), "BTC"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
