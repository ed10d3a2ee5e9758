// Package overrides loads the manually-curated end-date table from a JSON side
// file. The table maps PredictIt market IDs to MM/DD/YYYY date strings and is
// consulted only when the feed itself provides no end date. Manually-sourced
// dates are lower-confidence than feed dates and the reporting layer treats
// them accordingly.
package overrides

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// Table is an immutable in-memory view of the override file. It implements the
// dates.Provider capability interface.
type Table struct {
	endDates map[int64]string
}

// Load reads an override file: a single JSON object whose keys are decimal
// market IDs and whose values are MM/DD/YYYY date strings.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read override file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse override file %s: %w", path, err)
	}

	endDates := make(map[int64]string, len(raw))
	for key, value := range raw {
		id, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid market ID %q in override file %s: %w", key, path, err)
		}
		endDates[id] = value
	}

	return &Table{endDates: endDates}, nil
}

// NewFromMap builds a Table from an in-memory mapping. Intended for tests and
// embedding callers that source overrides elsewhere.
func NewFromMap(endDates map[int64]string) *Table {
	copied := make(map[int64]string, len(endDates))
	for id, date := range endDates {
		copied[id] = date
	}
	return &Table{endDates: copied}
}

// EndDate returns the override date string for a market, if one exists.
func (t *Table) EndDate(marketID int64) (string, bool) {
	date, ok := t.endDates[marketID]
	return date, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.endDates)
}
