// Package predictit provides a read-only client for the public PredictIt
// market-data API. It fetches the full market snapshot and converts it into
// the internal snapshot models; all evaluation happens elsewhere on the
// already-materialized data.
package predictit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/jmckib/predictit-longshot-fund/internal/models"
)

// Client provides access to the PredictIt market-data API.
type Client struct {
	apiBaseURL     string
	httpClient     *http.Client
	limiter        *rate.Limiter
	maxRetries     int
	retryDelayBase time.Duration
}

// ClientConfig tunes retry and rate-limit behavior. Zero values fall back to
// conservative defaults.
type ClientConfig struct {
	MaxRetries     int
	RetryDelayBase time.Duration
	RateLimit      rate.Limit // requests per second against the public API
	RateBurst      int
}

// apiMarket mirrors one market object from /api/marketdata/all.
type apiMarket struct {
	ID        int64         `json:"id"`
	Name      string        `json:"name"`
	ShortName string        `json:"shortName"`
	URL       string        `json:"url"`
	Status    string        `json:"status"`
	Contracts []apiContract `json:"contracts"`
}

// apiContract mirrors one contract object. The two buy quotes are nullable in
// the feed; a null means nobody is offering that side right now.
type apiContract struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	ShortName      string   `json:"shortName"`
	DateEnd        string   `json:"dateEnd"`
	Status         string   `json:"status"`
	BestBuyYesCost *float64 `json:"bestBuyYesCost"`
	BestBuyNoCost  *float64 `json:"bestBuyNoCost"`
}

// NewClient creates a new PredictIt client.
func NewClient(apiBaseURL string, timeout time.Duration, cfg ClientConfig) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelayBase <= 0 {
		cfg.RetryDelayBase = time.Second
	}
	if cfg.RateLimit <= 0 {
		// The public API asks for at most one request per minute per endpoint;
		// a one-shot run only issues a single request, so this just guards
		// embedding callers that loop.
		cfg.RateLimit = rate.Every(time.Minute)
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 1
	}

	return &Client{
		apiBaseURL:     apiBaseURL,
		httpClient:     &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
		maxRetries:     cfg.MaxRetries,
		retryDelayBase: cfg.RetryDelayBase,
	}
}

// FetchMarkets retrieves the full market snapshot from /marketdata/all and
// converts it to internal models. Markets that fail model validation are
// rejected as a whole: the caller gets either a well-formed snapshot or an
// error, never a partial one.
func (c *Client) FetchMarkets(ctx context.Context) ([]models.Market, error) {
	url := fmt.Sprintf("%s/marketdata/all/", c.apiBaseURL)

	resp, err := c.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	var response struct {
		Markets []apiMarket `json:"markets"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode markets: %w", err)
	}

	markets := make([]models.Market, 0, len(response.Markets))
	for _, am := range response.Markets {
		market := convertMarket(am)
		if err := market.Validate(); err != nil {
			return nil, fmt.Errorf("invalid market %d in feed: %w", am.ID, err)
		}
		markets = append(markets, market)
	}

	return markets, nil
}

// convertMarket maps an API market to the internal snapshot model.
func convertMarket(am apiMarket) models.Market {
	contracts := make([]models.Contract, 0, len(am.Contracts))
	for _, ac := range am.Contracts {
		contracts = append(contracts, models.Contract{
			Name:           ac.Name,
			DateEnd:        ac.DateEnd,
			BestBuyYesCost: ac.BestBuyYesCost,
			BestBuyNoCost:  ac.BestBuyNoCost,
		})
	}
	return models.Market{
		ID:        am.ID,
		Name:      am.Name,
		Status:    am.Status,
		URL:       am.URL,
		Contracts: contracts,
	}
}

// doRequest performs an HTTP GET with rate limiting and retry on transport
// errors and server errors.
func (c *Client) doRequest(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error

	for i := 0; i < c.maxRetries; i++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(c.retryDelayBase * time.Duration(i+1))
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			time.Sleep(c.retryDelayBase * time.Duration(i+1))
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}
