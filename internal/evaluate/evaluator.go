// Package evaluate turns a market snapshot into evaluated contract records.
//
// For every open market, every contract, and every quoted side, the evaluator
// corrects the quoted price for favorite-longshot bias and derives the
// expected profit of buying that side up to a fixed capital budget:
//
//	profit_per_share = debiased_price − price
//	max_shares       = floor(budget / price)
//	total_profit     = max_shares × profit_per_share
//	net_fees         = total_profit × (1 − fee_rate)
//
// A missing quote side is not an error; that opportunity simply does not
// exist. A price at 0 or 1, or an unparseable end date, aborts the whole
// batch, since either indicates corrupt upstream data.
package evaluate

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmckib/predictit-longshot-fund/internal/dates"
	"github.com/jmckib/predictit-longshot-fund/internal/debias"
	"github.com/jmckib/predictit-longshot-fund/internal/logger"
	"github.com/jmckib/predictit-longshot-fund/internal/models"
)

// Config holds the economic parameters of an evaluation run.
type Config struct {
	Budget          float64 // capital deployed per opportunity, in dollars
	FeeRate         float64 // exchange fee on profit, e.g. 0.10
	BiasCoefficient float64 // 0 means debias.DefaultCoefficient
	DateOnly        bool    // discard time-of-day from end dates
}

// Evaluator composes the price debiaser and the date normalizer into the full
// per-contract computation. It holds no mutable state between calls.
type Evaluator struct {
	debiaser   *debias.Debiaser
	normalizer *dates.Normalizer
	budget     float64
	feeRate    float64
}

// New creates an Evaluator. The budget must be positive and the fee rate must
// lie in [0, 1).
func New(cfg Config) (*Evaluator, error) {
	if cfg.Budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %v", cfg.Budget)
	}
	if cfg.FeeRate < 0 || cfg.FeeRate >= 1 {
		return nil, fmt.Errorf("fee rate must be in [0, 1), got %v", cfg.FeeRate)
	}
	return &Evaluator{
		debiaser:   debias.New(cfg.BiasCoefficient),
		normalizer: dates.NewNormalizer(cfg.DateOnly),
		budget:     cfg.Budget,
		feeRate:    cfg.FeeRate,
	}, nil
}

// Evaluate produces one record per (contract, side) with a present quote
// across all open markets. Output order is insertion order: market order,
// then contract order, then Yes before No. overrides may be nil.
//
// Any *debias.DomainError or *dates.ParseError aborts the batch and is
// returned wrapped with the offending market's identity.
func (e *Evaluator) Evaluate(markets []models.Market, overrides dates.Provider) ([]models.EvaluatedContract, error) {
	var records []models.EvaluatedContract
	skippedMarkets := 0
	skippedSides := 0

	for _, market := range markets {
		if market.Status != models.StatusOpen {
			skippedMarkets++
			continue
		}

		for _, contract := range market.Contracts {
			// A market whose only contract is the market itself needs no
			// separate contract label.
			contractName := contract.Name
			if len(market.Contracts) == 1 {
				contractName = ""
			}

			for _, quote := range []struct {
				side  models.Side
				price *float64
			}{
				{models.SideYes, contract.BestBuyYesCost},
				{models.SideNo, contract.BestBuyNoCost},
			} {
				if quote.price == nil {
					skippedSides++
					continue
				}

				record, err := e.evaluateSide(market, contract, contractName, quote.side, *quote.price, overrides)
				if err != nil {
					return nil, err
				}
				records = append(records, record)
			}
		}
	}

	logger.Debug("Evaluate: %d records from %d markets (skipped %d non-open markets, %d unquoted sides)",
		len(records), len(markets), skippedMarkets, skippedSides)

	return records, nil
}

// evaluateSide computes a single record for one quoted side of one contract.
func (e *Evaluator) evaluateSide(
	market models.Market,
	contract models.Contract,
	contractName string,
	side models.Side,
	price float64,
	overrides dates.Provider,
) (models.EvaluatedContract, error) {
	debiased, err := e.debiaser.Debias(price)
	if err != nil {
		return models.EvaluatedContract{}, fmt.Errorf("market %d (%s), contract %q, side %s: %w",
			market.ID, market.Name, contract.Name, side, err)
	}

	endDate, manual, err := e.normalizer.Normalize(contract.DateEnd, market.ID, overrides)
	if err != nil {
		return models.EvaluatedContract{}, fmt.Errorf("market %q: %w", market.Name, err)
	}

	profitPerShare := debiased - price
	maxShares := int(math.Floor(e.budget / price))
	totalProfit := float64(maxShares) * profitPerShare
	netFees := totalProfit * (1 - e.feeRate)

	return models.EvaluatedContract{
		ID:                 uuid.New().String(),
		MarketID:           market.ID,
		MarketName:         market.Name,
		ContractName:       contractName,
		Side:               side,
		Price:              price,
		DebiasedPrice:      round2(debiased),
		ProfitPerShare:     round2(profitPerShare),
		MaxShares:          maxShares,
		TotalProfit:        round2(totalProfit),
		TotalProfitNetFees: round2(netFees),
		EndDate:            endDate,
		EndDateIsManual:    manual,
		URL:                market.URL,
	}, nil
}

// round2 rounds a reported figure to 2 decimals using exact decimal
// arithmetic, avoiding float representation artifacts in the output.
func round2(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}
