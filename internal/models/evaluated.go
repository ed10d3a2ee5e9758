package models

import (
	"errors"
	"time"
)

// Side identifies which side of a contract a quote belongs to.
type Side string

const (
	// SideYes is the buy-yes side of a contract.
	SideYes Side = "Yes"
	// SideNo is the buy-no side of a contract.
	SideNo Side = "No"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideYes || s == SideNo
}

// EvaluatedContract is one fully-computed opportunity: a single side of a
// single contract with its bias-corrected price and expected profit under the
// configured capital budget. Records are immutable once created; the reporting
// layer only filters, sorts, and renders them.
//
// DebiasedPrice, ProfitPerShare, TotalProfit, and TotalProfitNetFees are
// rounded to 2 decimals for reporting.
type EvaluatedContract struct {
	ID                 string     `json:"id"`
	MarketID           int64      `json:"market_id"`
	MarketName         string     `json:"market_name"`
	ContractName       string     `json:"contract_name,omitempty"` // empty when the market has a single contract
	Side               Side       `json:"side"`
	Price              float64    `json:"price"` // quoted probability, strictly in (0,1)
	DebiasedPrice      float64    `json:"debiased_price"`
	ProfitPerShare     float64    `json:"profit_per_share"`
	MaxShares          int        `json:"max_shares"` // floor(budget / price)
	TotalProfit        float64    `json:"total_profit"`
	TotalProfitNetFees float64    `json:"total_profit_net_fees"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	EndDateIsManual    bool       `json:"end_date_is_manual"` // true when EndDate came from the override table
	URL                string     `json:"url"`
}

// Validate checks that all evaluated contract fields are valid.
func (e *EvaluatedContract) Validate() error {
	if e.ID == "" {
		return errors.New("evaluated contract ID must not be empty")
	}
	if e.MarketID <= 0 {
		return errors.New("market ID must be positive")
	}
	if e.MarketName == "" {
		return errors.New("market name must not be empty")
	}
	if !e.Side.Valid() {
		return errors.New("side must be 'Yes' or 'No'")
	}
	if e.Price <= 0.0 || e.Price >= 1.0 {
		return errors.New("price must be strictly between 0.0 and 1.0")
	}
	if e.DebiasedPrice < 0.0 || e.DebiasedPrice > 1.0 {
		return errors.New("debiased price must be between 0.0 and 1.0")
	}
	if e.MaxShares < 0 {
		return errors.New("max shares must not be negative")
	}
	if e.EndDateIsManual && e.EndDate == nil {
		return errors.New("end date must be set when marked as manual")
	}
	return nil
}
