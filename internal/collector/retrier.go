package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/cenkalti/backoff/v4"

	"StockKit/internal/model"
)

const (
	DefaultRetries  = 3
	DefaultMaxDelay = 10 * time.Second
)

var (
	// ErrNoData means the provider answered with an explicitly empty series.
	ErrNoData = errors.New("no data")
	// ErrExhaustedRetries means every configured attempt failed.
	ErrExhaustedRetries = errors.New("retries exhausted")
)

// FetchResult carries the series, when one was obtained, and the attempt log.
type FetchResult struct {
	Series   *model.Series
	Attempts []model.FetchAttempt
}

// Retrier drives a Fetcher with exponential backoff. Empty responses are
// terminal, only errors are retried.
type Retrier struct {
	Fetcher  Fetcher
	Retries  int
	MaxDelay time.Duration
	Options  RequestOptions
	Timer    backoff.Timer // nil uses a real timer
}

// NewRetrier creates a Retrier with defaults for zero values.
func NewRetrier(f Fetcher, retries int, maxDelay time.Duration) *Retrier {
	if retries <= 0 {
		retries = DefaultRetries
	}
	if maxDelay <= 0 {
		maxDelay = DefaultMaxDelay
	}
	return &Retrier{
		Fetcher:  f,
		Retries:  retries,
		MaxDelay: maxDelay,
		Options:  DefaultRequestOptions(),
	}
}

// Fetch attempts up to Retries fetches of symbol over rng. It returns the
// series on the first success, ErrNoData on the first empty response, or an
// error wrapping ErrExhaustedRetries and the last cause. The result is never
// nil and always lists the attempts made.
func (r *Retrier) Fetch(ctx context.Context, symbol string, rng model.DateRange) (*FetchResult, error) {
	retries := r.Retries
	if retries <= 0 {
		retries = DefaultRetries
	}
	res := &FetchResult{}
	log.Printf("[INFO] fetching %s from %s (%s to %s)", symbol, r.Fetcher.Name(),
		rng.Start.Format("2006-01-02"), rng.End.Format("2006-01-02"))

	op := func() error {
		a := model.FetchAttempt{Index: len(res.Attempts)}
		series, err := r.Fetcher.FetchRange(ctx, symbol, rng, r.Options)
		switch {
		case err != nil:
			a.Outcome, a.Err = model.OutcomeError, err
			res.Attempts = append(res.Attempts, a)
			log.Printf("[WARN] fetch attempt %d/%d failed: %v", a.Index+1, retries, err)
			return err
		case series.Empty():
			a.Outcome = model.OutcomeEmpty
			res.Attempts = append(res.Attempts, a)
			log.Printf("[WARN] %s returned no data for %s", r.Fetcher.Name(), symbol)
			return backoff.Permanent(ErrNoData)
		default:
			a.Outcome = model.OutcomeSuccess
			res.Attempts = append(res.Attempts, a)
			res.Series = series
			log.Printf("[INFO] fetched %d bars for %s", series.Len(), symbol)
			return nil
		}
	}
	notify := func(err error, wait time.Duration) {
		res.Attempts[len(res.Attempts)-1].Delay = wait
		log.Printf("[INFO] retrying in %v", wait)
	}

	b := backoff.WithContext(backoff.WithMaxRetries(NewPolicy(r.MaxDelay), uint64(retries-1)), ctx)
	err := backoff.RetryNotifyWithTimer(op, b, notify, r.Timer)
	switch {
	case err == nil:
		return res, nil
	case errors.Is(err, ErrNoData):
		return res, ErrNoData
	case ctx.Err() != nil:
		return res, ctx.Err()
	default:
		log.Printf("[ERROR] all %d attempts failed", len(res.Attempts))
		return res, fmt.Errorf("%w after %d attempts: %w", ErrExhaustedRetries, len(res.Attempts), err)
	}
}
