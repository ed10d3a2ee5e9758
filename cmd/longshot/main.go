package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/jmckib/predictit-longshot-fund/internal/config"
	"github.com/jmckib/predictit-longshot-fund/internal/dates"
	"github.com/jmckib/predictit-longshot-fund/internal/evaluate"
	"github.com/jmckib/predictit-longshot-fund/internal/logger"
	"github.com/jmckib/predictit-longshot-fund/internal/overrides"
	"github.com/jmckib/predictit-longshot-fund/internal/predictit"
	"github.com/jmckib/predictit-longshot-fund/internal/report"
	"github.com/jmckib/predictit-longshot-fund/internal/telegram"
)

var (
	configPath = flag.String("config", "configs/config.yaml", "Path to configuration file")
	output     = flag.String("output", "", "Override report.output (csv or console)")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *output != "" {
		cfg.Report.Output = *output
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	logger.Info("Configuration loaded from %s", *configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Override table is only consulted for markets the feed reports no date
	// for; skip loading it entirely when manual dates are disabled.
	var overrideTable dates.Provider
	if cfg.Advisor.UseManualDates {
		table, err := overrides.Load(cfg.Advisor.OverridesPath)
		if err != nil {
			logger.Fatal("Failed to load override table: %v", err)
		}
		logger.Info("Loaded %d end-date overrides from %s", table.Len(), cfg.Advisor.OverridesPath)
		overrideTable = table
	}

	client := predictit.NewClient(
		cfg.PredictIt.APIBaseURL,
		cfg.PredictIt.Timeout,
		predictit.ClientConfig{
			MaxRetries:     cfg.PredictIt.MaxRetries,
			RetryDelayBase: cfg.PredictIt.RetryDelayBase,
			RateLimit:      rate.Limit(cfg.PredictIt.RateLimit),
			RateBurst:      cfg.PredictIt.RateBurst,
		},
	)

	fetchStart := time.Now()
	markets, err := client.FetchMarkets(ctx)
	if err != nil {
		logger.Fatal("Failed to fetch market snapshot: %v", err)
	}
	logger.Info("Fetched %d markets in %v", len(markets), time.Since(fetchStart).Round(time.Millisecond))

	evaluator, err := evaluate.New(evaluate.Config{
		Budget:          cfg.Advisor.Budget,
		FeeRate:         cfg.Advisor.FeeRate,
		BiasCoefficient: cfg.Advisor.BiasCoefficient,
		DateOnly:        cfg.Advisor.DateOnly,
	})
	if err != nil {
		logger.Fatal("Failed to build evaluator: %v", err)
	}

	records, err := evaluator.Evaluate(markets, overrideTable)
	if err != nil {
		logger.Fatal("Evaluation aborted: %v", err)
	}
	logger.Info("Evaluated %d contract sides", len(records))

	switch cfg.Report.Output {
	case config.OutputConsole:
		if err := report.WriteNarrative(os.Stdout, records, cfg.Report.ConsoleTopK); err != nil {
			logger.Fatal("Failed to write report: %v", err)
		}
	case config.OutputCSV:
		selector := report.NewSelector(
			cfg.Report.WindowDays,
			cfg.Report.ProfitFloor,
			cfg.Report.TopN,
			cfg.Report.ExcludeManualNearTerm,
		)

		nearTerm := selector.NearTerm(records, time.Now())
		title := fmt.Sprintf("Profitable contracts expiring within %d days:", cfg.Report.WindowDays)
		if err := report.WriteCSV(os.Stdout, title, nearTerm); err != nil {
			logger.Fatal("Failed to write near-term report: %v", err)
		}

		fmt.Println()

		undated := selector.Undated(records)
		title = fmt.Sprintf("The most profitable %d contracts with no end date:", cfg.Report.TopN)
		if err := report.WriteCSV(os.Stdout, title, undated); err != nil {
			logger.Fatal("Failed to write undated report: %v", err)
		}
	}

	if cfg.Telegram.Enabled {
		tgClient, err := telegram.NewClient(
			cfg.Telegram.BotToken,
			cfg.Telegram.ChatID,
			cfg.Telegram.MaxRetries,
			cfg.Telegram.RetryDelayBase,
		)
		if err != nil {
			logger.Fatal("Failed to initialize Telegram client: %v", err)
		}
		if err := tgClient.SendTopOpportunities(records, cfg.Telegram.TopK); err != nil {
			logger.Error("Failed to send Telegram notification: %v", err)
		} else {
			logger.Info("Sent top %d opportunities to Telegram", cfg.Telegram.TopK)
		}
	}
}
