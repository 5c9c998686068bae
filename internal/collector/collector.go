package collector

import (
	"context"
	"errors"
	"fmt"
	"log"

	"StockKit/internal/model"
	"StockKit/internal/recorder"
)

// Importer loads a series from a local file.
type Importer interface {
	Import(path, symbol string) (*model.Series, error)
}

// FallbackFunc supplies the local file to import once the remote path failed.
// Returning "" declines the fallback.
type FallbackFunc func(cause error) (string, error)

// Collector orchestrates remote acquisition with a local import fallback.
type Collector struct {
	Retrier  *Retrier
	Importer Importer
	Fallback FallbackFunc
	Recorder recorder.Recorder

	// Attempts holds the attempt log of the most recent Collect call.
	Attempts []model.FetchAttempt
}

// NewCollector creates a new Collector.
func NewCollector(r *Retrier, im Importer, fallback FallbackFunc, rec recorder.Recorder) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{Retrier: r, Importer: im, Fallback: fallback, Recorder: rec}
}

// Collect fetches symbol over rng. When every remote attempt fails it asks
// Fallback for a local file and imports it. An explicit empty response is
// returned as ErrNoData without falling back.
func (c *Collector) Collect(ctx context.Context, symbol string, rng model.DateRange) (*model.Series, error) {
	res, err := c.Retrier.Fetch(ctx, symbol, rng)
	c.Attempts = res.Attempts
	if rerr := c.Recorder.RecordFetchAttempts(symbol, res.Attempts); rerr != nil {
		log.Printf("[ERROR] record fetch attempts: %v", rerr)
	}
	if err == nil {
		return res.Series, nil
	}
	if !errors.Is(err, ErrExhaustedRetries) {
		return nil, err
	}
	if c.Fallback == nil || c.Importer == nil {
		return nil, err
	}

	path, ferr := c.Fallback(err)
	if ferr != nil {
		return nil, fmt.Errorf("%w; fallback aborted: %w", err, ferr)
	}
	if path == "" {
		return nil, err
	}
	log.Printf("[INFO] remote fetch failed, importing %s", path)
	series, ierr := c.Importer.Import(path, symbol)
	if ierr != nil {
		return nil, fmt.Errorf("%w; local import also failed: %w", err, ierr)
	}
	return series, nil
}
