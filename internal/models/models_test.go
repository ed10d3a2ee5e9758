package models

import (
	"testing"
	"time"
)

func floatPtr(f float64) *float64 { return &f }

func TestMarketValidate(t *testing.T) {
	tests := []struct {
		name    string
		market  Market
		wantErr bool
	}{
		{
			name: "valid market",
			market: Market{
				ID:     2721,
				Name:   "Which party will win the presidency?",
				Status: "Open",
				URL:    "https://www.predictit.org/markets/detail/2721",
				Contracts: []Contract{
					{Name: "Democratic", DateEnd: "2026-11-03T00:00:00", BestBuyYesCost: floatPtr(0.53)},
				},
			},
			wantErr: false,
		},
		{
			name: "zero ID",
			market: Market{
				Name:   "Which party will win the presidency?",
				Status: "Open",
			},
			wantErr: true,
		},
		{
			name: "empty name",
			market: Market{
				ID:     2721,
				Status: "Open",
			},
			wantErr: true,
		},
		{
			name: "empty status",
			market: Market{
				ID:   2721,
				Name: "Which party will win the presidency?",
			},
			wantErr: true,
		},
		{
			name: "contract quote out of range",
			market: Market{
				ID:     2721,
				Name:   "Which party will win the presidency?",
				Status: "Open",
				Contracts: []Contract{
					{Name: "Democratic", BestBuyYesCost: floatPtr(1.5)},
				},
			},
			wantErr: true,
		},
		{
			name: "contract without quotes is fine",
			market: Market{
				ID:        2721,
				Name:      "Which party will win the presidency?",
				Status:    "Open",
				Contracts: []Contract{{Name: "Democratic", DateEnd: "NA"}},
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.market.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Market.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContractHasEndDate(t *testing.T) {
	tests := []struct {
		dateEnd string
		want    bool
	}{
		{"2026-11-03T00:00:00", true},
		{"02/25/2022 11:00:00 AM (ET)", true},
		{"NA", false},
		{"N/A", false},
		{"", false},
	}

	for _, tt := range tests {
		c := Contract{Name: "x", DateEnd: tt.dateEnd}
		if got := c.HasEndDate(); got != tt.want {
			t.Errorf("HasEndDate(%q) = %v, want %v", tt.dateEnd, got, tt.want)
		}
	}
}

func TestEvaluatedContractValidate(t *testing.T) {
	endDate := time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)

	valid := EvaluatedContract{
		ID:                 "rec-1",
		MarketID:           2721,
		MarketName:         "Which party will win the presidency?",
		ContractName:       "Democratic",
		Side:               SideYes,
		Price:              0.53,
		DebiasedPrice:      0.55,
		ProfitPerShare:     0.02,
		MaxShares:          1603,
		TotalProfit:        32.06,
		TotalProfitNetFees: 28.85,
		EndDate:            &endDate,
		URL:                "https://www.predictit.org/markets/detail/2721",
	}

	tests := []struct {
		name    string
		mutate  func(*EvaluatedContract)
		wantErr bool
	}{
		{"valid record", func(e *EvaluatedContract) {}, false},
		{"empty ID", func(e *EvaluatedContract) { e.ID = "" }, true},
		{"zero market ID", func(e *EvaluatedContract) { e.MarketID = 0 }, true},
		{"empty market name", func(e *EvaluatedContract) { e.MarketName = "" }, true},
		{"unknown side", func(e *EvaluatedContract) { e.Side = "Maybe" }, true},
		{"price at lower boundary", func(e *EvaluatedContract) { e.Price = 0.0 }, true},
		{"price at upper boundary", func(e *EvaluatedContract) { e.Price = 1.0 }, true},
		{"negative max shares", func(e *EvaluatedContract) { e.MaxShares = -1 }, true},
		{"manual flag without end date", func(e *EvaluatedContract) {
			e.EndDate = nil
			e.EndDateIsManual = true
		}, true},
		{"manual flag with end date", func(e *EvaluatedContract) { e.EndDateIsManual = true }, false},
		{"no end date at all", func(e *EvaluatedContract) { e.EndDate = nil }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := valid
			tt.mutate(&rec)
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("EvaluatedContract.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
