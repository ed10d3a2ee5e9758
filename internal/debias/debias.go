// Package debias corrects quoted prediction-market prices for favorite-longshot
// bias: the tendency of market prices to overstate unlikely outcomes and
// understate likely ones.
//
// The correction rescales the quoted probability in quantile space:
//
//	debiased = Φ(c × Φ⁻¹(price))
//
// where Φ is the standard-normal CDF and c is an empirically fitted
// coefficient. The default coefficient of 1.64 comes from "Forecasting
// Elections: Comparing Prediction Markets, Polls, and their Biases" by David
// Rothschild, Public Opinion Quarterly, Vol. 73, No. 5, 2009.
package debias

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultCoefficient is the Rothschild (2009) de-biasing coefficient.
const DefaultCoefficient = 1.64

// DomainError indicates a price outside the open unit interval. The quantile
// function is undefined at 0 and 1, and such a price indicates corrupt
// upstream data, so callers must treat this as fatal for the whole batch.
type DomainError struct {
	Price float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("price %v outside (0, 1): cannot debias", e.Price)
}

// Debiaser applies the favorite-longshot correction with a fixed coefficient.
// It is pure and safe for concurrent use.
type Debiaser struct {
	coefficient float64
	normal      distuv.Normal
}

// New creates a Debiaser with the given coefficient. A coefficient <= 0 falls
// back to DefaultCoefficient.
func New(coefficient float64) *Debiaser {
	if coefficient <= 0 {
		coefficient = DefaultCoefficient
	}
	return &Debiaser{
		coefficient: coefficient,
		normal:      distuv.Normal{Mu: 0, Sigma: 1},
	}
}

// Coefficient returns the coefficient this Debiaser was built with.
func (d *Debiaser) Coefficient() float64 {
	return d.coefficient
}

// Debias returns the bias-corrected probability for a quoted price.
// Returns a *DomainError when price <= 0 or price >= 1.
func (d *Debiaser) Debias(price float64) (float64, error) {
	if price <= 0.0 || price >= 1.0 {
		return 0, &DomainError{Price: price}
	}
	return d.normal.CDF(d.coefficient * d.normal.Quantile(price)), nil
}
