package collector

import (
	"context"
	"net/http"

	"StockKit/internal/model"
)

// BrowserUserAgent is sent by default so the provider treats us like a browser.
const BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/96.0.4664.110 Safari/537.36"

// RequestOptions customises a single fetch call. It is never stored on the
// fetcher, so concurrent calls cannot observe each other's headers.
type RequestOptions struct {
	Header http.Header
}

// DefaultRequestOptions returns options carrying the browser User-Agent.
func DefaultRequestOptions() RequestOptions {
	h := http.Header{}
	h.Set("User-Agent", BrowserUserAgent)
	return RequestOptions{Header: h}
}

// WithUserAgent returns a copy of o with the User-Agent replaced.
func (o RequestOptions) WithUserAgent(ua string) RequestOptions {
	h := o.Header.Clone()
	if h == nil {
		h = http.Header{}
	}
	h.Set("User-Agent", ua)
	return RequestOptions{Header: h}
}

func (o RequestOptions) apply(req *http.Request) {
	for k, vs := range o.Header {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
}

// Fetcher performs a single remote retrieval of daily bars.
// A nil error with an empty series means the provider explicitly had no data.
type Fetcher interface {
	FetchRange(ctx context.Context, symbol string, rng model.DateRange, opts RequestOptions) (*model.Series, error)
	Name() string
}
