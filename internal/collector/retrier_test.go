package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockKit/internal/model"
)

// fakeTimer fires immediately and remembers every requested wait.
type fakeTimer struct {
	waits []time.Duration
	c     chan time.Time
}

func (t *fakeTimer) Start(d time.Duration) {
	t.waits = append(t.waits, d)
	t.c = make(chan time.Time, 1)
	t.c <- time.Now()
}

func (t *fakeTimer) Stop() {}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

type reply struct {
	series *model.Series
	err    error
}

// scriptedFetcher answers calls from a fixed script, repeating the last reply.
type scriptedFetcher struct {
	replies []reply
	calls   int
	opts    []RequestOptions
}

func (f *scriptedFetcher) Name() string { return "scripted" }

func (f *scriptedFetcher) FetchRange(_ context.Context, _ string, _ model.DateRange, opts RequestOptions) (*model.Series, error) {
	f.opts = append(f.opts, opts)
	r := f.replies[len(f.replies)-1]
	if f.calls < len(f.replies) {
		r = f.replies[f.calls]
	}
	f.calls++
	return r.series, r.err
}

func testSeries(t *testing.T) *model.Series {
	t.Helper()
	s, err := model.NewSeries("AAPL", "scripted", []model.Bar{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: model.Float(185.64)},
		{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Close: model.Float(184.25)},
	})
	require.NoError(t, err)
	return s
}

func emptySeries() *model.Series {
	return &model.Series{Symbol: "AAPL", Source: "scripted"}
}

var testRange = model.DateRange{
	Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
}

func newTestRetrier(f Fetcher, retries int) (*Retrier, *fakeTimer) {
	r := NewRetrier(f, retries, 10*time.Second)
	tm := &fakeTimer{}
	r.Timer = tm
	return r, tm
}

func TestRetrier_ExhaustsAfterConfiguredAttempts(t *testing.T) {
	cause := errors.New("connection reset")
	f := &scriptedFetcher{replies: []reply{{err: cause}}}
	r, tm := newTestRetrier(f, 3)

	res, err := r.Fetch(context.Background(), "AAPL", testRange)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExhaustedRetries)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, f.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, tm.waits)

	require.NotNil(t, res)
	require.Len(t, res.Attempts, 3)
	var total time.Duration
	for i, a := range res.Attempts {
		assert.Equal(t, i, a.Index)
		assert.Equal(t, model.OutcomeError, a.Outcome)
		total += a.Delay
	}
	assert.Equal(t, 3*time.Second, total)
	assert.Zero(t, res.Attempts[2].Delay, "no wait after the final attempt")
	assert.Nil(t, res.Series)
}

func TestRetrier_SuccessStopsImmediately(t *testing.T) {
	f := &scriptedFetcher{replies: []reply{{series: testSeries(t)}}}
	r, tm := newTestRetrier(f, 3)

	res, err := r.Fetch(context.Background(), "AAPL", testRange)

	require.NoError(t, err)
	assert.Equal(t, 1, f.calls)
	assert.Empty(t, tm.waits)
	assert.Equal(t, 2, res.Series.Len())
	require.Len(t, res.Attempts, 1)
	assert.Equal(t, model.OutcomeSuccess, res.Attempts[0].Outcome)
}

func TestRetrier_RecoversAfterFailure(t *testing.T) {
	f := &scriptedFetcher{replies: []reply{
		{err: errors.New("timeout")},
		{series: testSeries(t)},
	}}
	r, tm := newTestRetrier(f, 3)

	res, err := r.Fetch(context.Background(), "AAPL", testRange)

	require.NoError(t, err)
	assert.Equal(t, 2, f.calls)
	assert.Equal(t, []time.Duration{time.Second}, tm.waits)
	assert.Equal(t, time.Second, res.Attempts[0].Delay)
	assert.Equal(t, model.OutcomeSuccess, res.Attempts[1].Outcome)
}

func TestRetrier_EmptyIsTerminal(t *testing.T) {
	f := &scriptedFetcher{replies: []reply{{series: emptySeries()}}}
	r, tm := newTestRetrier(f, 3)

	res, err := r.Fetch(context.Background(), "AAPL", testRange)

	assert.ErrorIs(t, err, ErrNoData)
	assert.NotErrorIs(t, err, ErrExhaustedRetries)
	assert.Equal(t, 1, f.calls)
	assert.Empty(t, tm.waits)
	require.Len(t, res.Attempts, 1)
	assert.Equal(t, model.OutcomeEmpty, res.Attempts[0].Outcome)
}

func TestRetrier_EmptyAfterFailureIsTerminal(t *testing.T) {
	f := &scriptedFetcher{replies: []reply{
		{err: errors.New("502 bad gateway")},
		{series: emptySeries()},
		{series: testSeries(t)},
	}}
	r, _ := newTestRetrier(f, 3)

	_, err := r.Fetch(context.Background(), "AAPL", testRange)

	assert.ErrorIs(t, err, ErrNoData)
	assert.Equal(t, 2, f.calls)
}

func TestRetrier_SingleAttempt(t *testing.T) {
	f := &scriptedFetcher{replies: []reply{{err: errors.New("boom")}}}
	r, tm := newTestRetrier(f, 1)

	_, err := r.Fetch(context.Background(), "AAPL", testRange)

	assert.ErrorIs(t, err, ErrExhaustedRetries)
	assert.Equal(t, 1, f.calls)
	assert.Empty(t, tm.waits)
}

func TestRetrier_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := &scriptedFetcher{replies: []reply{{err: errors.New("boom")}}}
	r, _ := newTestRetrier(f, 3)

	_, err := r.Fetch(ctx, "AAPL", testRange)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, f.calls)
}

func TestRetrier_PassesCallScopedOptions(t *testing.T) {
	f := &scriptedFetcher{replies: []reply{{series: testSeries(t)}}}
	r, _ := newTestRetrier(f, 3)
	r.Options = r.Options.WithUserAgent("stockkit-test/1.0")

	_, err := r.Fetch(context.Background(), "AAPL", testRange)

	require.NoError(t, err)
	require.Len(t, f.opts, 1)
	assert.Equal(t, "stockkit-test/1.0", f.opts[0].Header.Get("User-Agent"))
	assert.Equal(t, BrowserUserAgent, DefaultRequestOptions().Header.Get("User-Agent"),
		"WithUserAgent must not alter the defaults")
}
