package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jmckib/predictit-longshot-fund/internal/models"
)

// csvColumns is the fixed column order of the tabular report.
var csvColumns = []string{
	"market_name",
	"market_id",
	"contract_name",
	"side",
	"price",
	"debiased_price",
	"profit_per_share",
	"total_profit",
	"total_profit_net_fees",
	"end_date",
	"url",
}

// endDateLayout is how end dates render in reports.
const endDateLayout = "2006-01-02"

// WriteCSV writes one view as a titled CSV table: the title on its own line,
// then a header row, then one row per record.
func WriteCSV(w io.Writer, title string, records []models.EvaluatedContract) error {
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, rec := range records {
		endDate := ""
		if rec.EndDate != nil {
			endDate = rec.EndDate.Format(endDateLayout)
		}
		row := []string{
			rec.MarketName,
			strconv.FormatInt(rec.MarketID, 10),
			rec.ContractName,
			string(rec.Side),
			formatFloat(rec.Price),
			formatFloat(rec.DebiasedPrice),
			formatFloat(rec.ProfitPerShare),
			formatFloat(rec.TotalProfit),
			formatFloat(rec.TotalProfitNetFees),
			endDate,
			rec.URL,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// formatFloat renders a float with the fewest digits that round-trip it, so
// quoted prices appear exactly as the feed quoted them.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
