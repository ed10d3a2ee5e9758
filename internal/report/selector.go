// Package report partitions evaluated contracts into the two advisory views
// and renders them as CSV tables or console text.
//
// The near-term view surfaces dated opportunities expiring inside a lookahead
// window whose expected profit clears a floor. The undated view surfaces
// everything with no firm deadline, ranked by expected profit. Manually
// overridden dates are considered too unreliable for time-boxed claims: under
// the default policy they are excluded from the near-term view and grouped
// with the undated opportunities instead.
package report

import (
	"sort"
	"time"

	"github.com/jmckib/predictit-longshot-fund/internal/models"
)

// Selector partitions and ranks evaluated contracts.
type Selector struct {
	windowDays     int
	profitFloor    float64
	topN           int
	distrustManual bool
}

// NewSelector creates a Selector. windowDays bounds the near-term view,
// profitFloor is the minimum total profit for near-term inclusion, topN caps
// the undated view, and distrustManual controls whether manually-dated records
// are kept out of the near-term view and surfaced as undated instead.
func NewSelector(windowDays int, profitFloor float64, topN int, distrustManual bool) *Selector {
	return &Selector{
		windowDays:     windowDays,
		profitFloor:    profitFloor,
		topN:           topN,
		distrustManual: distrustManual,
	}
}

// NearTerm returns records with a firm end date before now + windowDays and a
// total profit above the floor, in evaluation order. No further sort is
// imposed; the evaluator's insertion order is the reference behavior.
func (s *Selector) NearTerm(records []models.EvaluatedContract, now time.Time) []models.EvaluatedContract {
	// Comparisons are at calendar-date granularity: a contract ending exactly
	// windowDays from today is not near-term.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := today.AddDate(0, 0, s.windowDays)

	selected := make([]models.EvaluatedContract, 0)
	for _, rec := range records {
		if rec.EndDate == nil {
			continue
		}
		if s.distrustManual && rec.EndDateIsManual {
			continue
		}
		if !rec.EndDate.Before(cutoff) {
			continue
		}
		if rec.TotalProfit <= s.profitFloor {
			continue
		}
		selected = append(selected, rec)
	}
	return selected
}

// Undated returns records with no end date (plus manually-dated records under
// the distrust policy), sorted by total profit descending. The sort is stable:
// ties keep their evaluation order. At most topN records are returned.
func (s *Selector) Undated(records []models.EvaluatedContract) []models.EvaluatedContract {
	selected := make([]models.EvaluatedContract, 0)
	for _, rec := range records {
		if rec.EndDate == nil || (s.distrustManual && rec.EndDateIsManual) {
			selected = append(selected, rec)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].TotalProfit > selected[j].TotalProfit
	})

	if s.topN > 0 && len(selected) > s.topN {
		selected = selected[:s.topN]
	}
	return selected
}

// TopByProfit returns the k most profitable records across the whole evaluated
// set regardless of end date, sorted by total profit descending with stable
// ties. Used by the console narrative and the Telegram notification.
func TopByProfit(records []models.EvaluatedContract, k int) []models.EvaluatedContract {
	ranked := make([]models.EvaluatedContract, len(records))
	copy(ranked, records)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalProfit > ranked[j].TotalProfit
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
