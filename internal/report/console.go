package report

import (
	"fmt"
	"io"

	"github.com/jmckib/predictit-longshot-fund/internal/models"
)

// WriteNarrative writes the console rendering: the topK most profitable
// records across the whole evaluated set, one numbered block per record with
// the market, side, and profit figures. The end date is shown only when the
// feed or the override table supplied one.
func WriteNarrative(w io.Writer, records []models.EvaluatedContract, topK int) error {
	top := TopByProfit(records, topK)

	if len(top) == 0 {
		_, err := fmt.Fprintln(w, "No opportunities found.")
		return err
	}

	if _, err := fmt.Fprintf(w, "Top %d contracts by expected profit:\n\n", len(top)); err != nil {
		return err
	}

	for i, rec := range top {
		name := rec.MarketName
		if rec.ContractName != "" {
			name = fmt.Sprintf("%s — %s", rec.MarketName, rec.ContractName)
		}

		if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, name); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n", rec.URL); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Buy %s at %s (debiased %s), profit/share %s\n",
			rec.Side, formatFloat(rec.Price), formatFloat(rec.DebiasedPrice),
			formatFloat(rec.ProfitPerShare)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Total profit: %s (%s after fees), %d shares\n",
			formatFloat(rec.TotalProfit), formatFloat(rec.TotalProfitNetFees),
			rec.MaxShares); err != nil {
			return err
		}
		if rec.EndDate != nil {
			suffix := ""
			if rec.EndDateIsManual {
				suffix = " (manual)"
			}
			if _, err := fmt.Fprintf(w, "   Ends: %s%s\n", rec.EndDate.Format(endDateLayout), suffix); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}
