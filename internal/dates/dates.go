// Package dates normalizes the heterogeneous end-date strings from the
// PredictIt feed into calendar dates, with optional manually-curated overrides
// for markets the feed reports no date for.
package dates

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	"github.com/jmckib/predictit-longshot-fund/internal/models"
)

// manualLayout is the strict layout for override-table dates and for the
// truncation fallback (MM/DD/YYYY).
const manualLayout = "01/02/2006"

// truncateLen is how many leading characters form a clean MM/DD/YYYY date in
// the feed's malformed "date time (TZ)" strings.
const truncateLen = 10

// Provider supplies manually-curated end dates by market ID. Implementations
// return the raw MM/DD/YYYY string and whether an entry exists.
type Provider interface {
	EndDate(marketID int64) (string, bool)
}

// ParseError indicates that no parsing strategy succeeded for a date string.
// Like a price domain error, this is fatal for the whole batch: it means the
// feed shape has drifted and every derived figure is suspect.
type ParseError struct {
	MarketID int64
	Raw      string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("market %d: cannot parse end date %q: %v", e.MarketID, e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Normalizer turns raw feed date strings into time values. When dateOnly is
// set, the time-of-day component is discarded and results are midnight UTC;
// downstream window comparisons only need calendar-date granularity, but
// callers rendering timestamps may want it retained.
type Normalizer struct {
	dateOnly bool
}

// NewNormalizer creates a Normalizer. dateOnly controls whether parsed values
// are truncated to calendar dates.
func NewNormalizer(dateOnly bool) *Normalizer {
	return &Normalizer{dateOnly: dateOnly}
}

// Normalize resolves the end date for one contract.
//
// A sentinel or empty raw value consults overrides by market ID: a hit parses
// strictly as MM/DD/YYYY and returns manual=true, a miss returns (nil, false).
// Anything else goes through a general-purpose parse, then a strict
// MM/DD/YYYY parse of the first 10 characters (the feed emits a few dates
// like "02/25/2022 11:00:00 AM (ET)" that only parse that way). When both
// fail the error is a *ParseError.
//
// overrides may be nil, which behaves like an empty table.
func (n *Normalizer) Normalize(raw string, marketID int64, overrides Provider) (*time.Time, bool, error) {
	if raw == "" || raw == models.DateEndNA || raw == models.DateEndNA2 {
		if overrides == nil {
			return nil, false, nil
		}
		manual, ok := overrides.EndDate(marketID)
		if !ok {
			return nil, false, nil
		}
		t, err := time.Parse(manualLayout, manual)
		if err != nil {
			return nil, false, &ParseError{MarketID: marketID, Raw: manual, Err: err}
		}
		t = n.truncate(t)
		return &t, true, nil
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		if len(raw) < truncateLen {
			return nil, false, &ParseError{MarketID: marketID, Raw: raw, Err: err}
		}
		t, err = time.Parse(manualLayout, raw[:truncateLen])
		if err != nil {
			return nil, false, &ParseError{MarketID: marketID, Raw: raw, Err: err}
		}
	}

	t = n.truncate(t)
	return &t, false, nil
}

// truncate drops the time-of-day component when the Normalizer is date-only.
func (n *Normalizer) truncate(t time.Time) time.Time {
	if !n.dateOnly {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
