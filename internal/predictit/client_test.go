package predictit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testClientConfig() ClientConfig {
	return ClientConfig{
		MaxRetries:     3,
		RetryDelayBase: time.Millisecond,
		RateLimit:      rate.Inf,
		RateBurst:      1,
	}
}

func TestFetchMarkets_RealAPIFormat(t *testing.T) {
	// Mock server returning data in the real /api/marketdata/all shape.
	// Note: bestBuyYesCost / bestBuyNoCost are null when a side is unquoted,
	// and dateEnd is the literal string "NA" when no date is scheduled.
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/marketdata/all/" {
			t.Errorf("Expected path /marketdata/all/, got %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"markets": [
				{
					"id": 2721,
					"name": "Which party will win the 2028 presidential election?",
					"shortName": "2028 presidential election",
					"url": "https://www.predictit.org/markets/detail/2721",
					"status": "Open",
					"contracts": [
						{
							"id": 4389,
							"name": "Democratic",
							"shortName": "Democratic",
							"dateEnd": "NA",
							"status": "Open",
							"bestBuyYesCost": 0.53,
							"bestBuyNoCost": 0.49
						},
						{
							"id": 4390,
							"name": "Republican",
							"shortName": "Republican",
							"dateEnd": "2028-11-07T00:00:00",
							"status": "Open",
							"bestBuyYesCost": null,
							"bestBuyNoCost": 0.52
						}
					]
				}
			]
		}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, 30*time.Second, testClientConfig())

	markets, err := client.FetchMarkets(context.Background())
	if err != nil {
		t.Fatalf("FetchMarkets failed: %v", err)
	}

	if len(markets) != 1 {
		t.Fatalf("Expected 1 market, got %d", len(markets))
	}

	m := markets[0]
	if m.ID != 2721 {
		t.Errorf("Market ID = %d, want 2721", m.ID)
	}
	if m.Status != "Open" {
		t.Errorf("Market status = %q, want Open", m.Status)
	}
	if len(m.Contracts) != 2 {
		t.Fatalf("Expected 2 contracts, got %d", len(m.Contracts))
	}

	first := m.Contracts[0]
	if first.BestBuyYesCost == nil || *first.BestBuyYesCost != 0.53 {
		t.Errorf("First contract yes cost = %v, want 0.53", first.BestBuyYesCost)
	}
	if first.DateEnd != "NA" {
		t.Errorf("First contract dateEnd = %q, want NA", first.DateEnd)
	}

	second := m.Contracts[1]
	if second.BestBuyYesCost != nil {
		t.Errorf("Second contract yes cost = %v, want nil for null quote", second.BestBuyYesCost)
	}
	if second.BestBuyNoCost == nil || *second.BestBuyNoCost != 0.52 {
		t.Errorf("Second contract no cost = %v, want 0.52", second.BestBuyNoCost)
	}
}

func TestFetchMarkets_RetriesOnServerError(t *testing.T) {
	attempts := 0
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"markets": []}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, 30*time.Second, testClientConfig())

	markets, err := client.FetchMarkets(context.Background())
	if err != nil {
		t.Fatalf("FetchMarkets failed: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	if len(markets) != 0 {
		t.Errorf("Expected empty snapshot, got %d markets", len(markets))
	}
}

func TestFetchMarkets_ExhaustsRetries(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, 30*time.Second, testClientConfig())

	if _, err := client.FetchMarkets(context.Background()); err == nil {
		t.Error("FetchMarkets expected error after exhausting retries, got nil")
	}
}

func TestFetchMarkets_RejectsInvalidMarket(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Market missing a name fails model validation.
		_, _ = w.Write([]byte(`{"markets": [{"id": 1, "name": "", "status": "Open", "contracts": []}]}`))
	}))
	defer mockServer.Close()

	client := NewClient(mockServer.URL, 30*time.Second, testClientConfig())

	if _, err := client.FetchMarkets(context.Background()); err == nil {
		t.Error("FetchMarkets expected validation error, got nil")
	}
}
