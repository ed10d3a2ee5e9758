// Package models defines the core domain entities for the longshot advisor.
// These models represent the PredictIt market snapshot handed to the evaluator
// and the evaluated contract records the evaluator produces. All models include
// built-in validation to ensure data integrity throughout the application.
//
// Terminology (matching PredictIt's own naming):
//   - Market: a PredictIt market page, which groups one or more contracts.
//   - Contract: a single yes/no instrument within a market. Each side of a
//     contract (Yes/No) is quoted and evaluated independently.
package models

import (
	"errors"
)

// Sentinel values PredictIt uses in the dateEnd field when a contract has no
// scheduled end date.
const (
	DateEndNA  = "NA"
	DateEndNA2 = "N/A"
)

// StatusOpen is the market status for tradeable markets; markets in any other
// status are ignored by the evaluator.
const StatusOpen = "Open"

// Market represents one PredictIt market from the snapshot feed, with its
// contracts and their current buy quotes.
type Market struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Status    string     `json:"status"`
	URL       string     `json:"url"`
	Contracts []Contract `json:"contracts"`
}

// Contract represents a single instrument within a market. A quote side may be
// absent (nil) when nobody is offering that side; this is not an error.
// DateEnd carries the raw feed value: either a parseable date/time string or
// one of the "no date" sentinels.
type Contract struct {
	Name           string   `json:"name"`
	DateEnd        string   `json:"date_end"`
	BestBuyYesCost *float64 `json:"best_buy_yes_cost"`
	BestBuyNoCost  *float64 `json:"best_buy_no_cost"`
}

// HasEndDate reports whether the feed supplied a usable end-date string.
func (c *Contract) HasEndDate() bool {
	return c.DateEnd != "" && c.DateEnd != DateEndNA && c.DateEnd != DateEndNA2
}

// Validate checks that all market fields are valid.
func (m *Market) Validate() error {
	if m.ID <= 0 {
		return errors.New("market ID must be positive")
	}
	if m.Name == "" {
		return errors.New("market name must not be empty")
	}
	if m.Status == "" {
		return errors.New("market status must not be empty")
	}
	for _, c := range m.Contracts {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that all contract fields are valid. Quote values are only
// range checked when present; the evaluator enforces the stricter open-interval
// requirement when it actually takes a side.
func (c *Contract) Validate() error {
	if c.Name == "" {
		return errors.New("contract name must not be empty")
	}
	if c.BestBuyYesCost != nil && (*c.BestBuyYesCost < 0.0 || *c.BestBuyYesCost > 1.0) {
		return errors.New("best buy yes cost must be between 0.0 and 1.0")
	}
	if c.BestBuyNoCost != nil && (*c.BestBuyNoCost < 0.0 || *c.BestBuyNoCost > 1.0) {
		return errors.New("best buy no cost must be between 0.0 and 1.0")
	}
	return nil
}
