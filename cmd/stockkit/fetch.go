package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"StockKit/internal/calculator"
	"StockKit/internal/chart"
	"StockKit/internal/collector"
	"StockKit/internal/importer"
	"StockKit/internal/model"
	"StockKit/internal/notifier"
)

const (
	defaultStart = "2024-01-01"
	defaultEnd   = "2024-01-31"
	dateLayout   = "2006-01-02"
)

type fetchOptions struct {
	symbol   string
	start    string
	end      string
	retries  int
	maxDelay time.Duration
	fallback string
	dir      string
	noChart  bool
}

func newFetchCmd(a *app) *cobra.Command {
	var o fetchOptions
	cmd := &cobra.Command{
		Use:   "fetch SYMBOL",
		Short: "Fetch daily prices with retries, falling back to a local CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o.symbol = args[0]
			return runFetch(cmd.Context(), a, o)
		},
	}
	cmd.Flags().StringVar(&o.start, "start", defaultStart, "first day (inclusive), YYYY-MM-DD")
	cmd.Flags().StringVar(&o.end, "end", defaultEnd, "last day (exclusive), YYYY-MM-DD")
	cmd.Flags().IntVar(&o.retries, "retries", 0, "attempts before giving up (default from config)")
	cmd.Flags().DurationVar(&o.maxDelay, "max-delay", 0, "backoff ceiling (default from config)")
	cmd.Flags().StringVar(&o.fallback, "fallback", "", "CSV to import when every attempt fails")
	cmd.Flags().StringVar(&o.dir, "dir", ".", "directory for the price chart")
	cmd.Flags().BoolVar(&o.noChart, "no-chart", false, "skip chart rendering")
	return cmd
}

func parseRange(start, end string) (model.DateRange, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("start date: %w", err)
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return model.DateRange{}, fmt.Errorf("end date: %w", err)
	}
	if !e.After(s) {
		return model.DateRange{}, fmt.Errorf("end date %s must be after start date %s", end, start)
	}
	return model.DateRange{Start: s, End: e}, nil
}

func runFetch(ctx context.Context, a *app, o fetchOptions) error {
	rng, err := parseRange(o.start, o.end)
	if err != nil {
		return err
	}
	cfg := a.cfg
	retries, maxDelay := cfg.Fetch.Retries, cfg.Fetch.MaxDelay
	if o.retries > 0 {
		retries = o.retries
	}
	if o.maxDelay > 0 {
		maxDelay = o.maxDelay
	}

	fetcher := collector.NewYahooFetcher(cfg.Fetch.BaseURL, cfg.Proxy, cfg.Fetch.Timeout)
	retrier := collector.NewRetrier(fetcher, retries, maxDelay)
	if cfg.Fetch.UserAgent != "" {
		retrier.Options = retrier.Options.WithUserAgent(cfg.Fetch.UserAgent)
	}

	fallbackPath := o.fallback
	if fallbackPath == "" {
		fallbackPath = cfg.Fetch.FallbackCSV
	}
	var col *collector.Collector
	fallback := func(cause error) (string, error) {
		a.printf("Fetching %s failed: %v\n%s", o.symbol, cause, notifier.FormatAttempts(col.Attempts))
		if fallbackPath != "" {
			return fallbackPath, nil
		}
		if !interactive() {
			return "", nil
		}
		return askString("CSV file to import instead (empty to give up)", "")
	}

	col = collector.NewCollector(retrier, importer.New(), fallback, a.rec)
	series, err := col.Collect(ctx, o.symbol, rng)
	switch {
	case errors.Is(err, collector.ErrNoData):
		a.printf("No data returned for %s between %s and %s\n", o.symbol, o.start, o.end)
		return nil
	case err != nil:
		a.printf("Could not get data for %s. You can import a CSV with `stockkit import`.\n", o.symbol)
		return err
	}
	return analyse(a, series, o.symbol, o.dir, o.noChart)
}

// analyse prints the summary and renders the chart. Chart failures are
// reported but do not fail the command.
func analyse(a *app, s *model.Series, symbol, dir string, noChart bool) error {
	a.printf("\n%s\n", notifier.FormatSummary(calculator.Summarize(s)))
	if noChart {
		return nil
	}
	if symbol != "" {
		s.Symbol = symbol
	}
	path, err := chart.Render(s, dir)
	if err != nil {
		log.Printf("[ERROR] render chart: %v", err)
		a.printf("Could not draw the price chart: %v\n", err)
		return nil
	}
	a.printf("Price chart saved to %s\n", path)
	return nil
}
