package model

import (
	"fmt"
	"sort"
	"time"
)

// Field names a recognised value column of a daily bar.
type Field string

const (
	FieldClose    Field = "Close"
	FieldAdjClose Field = "Adj Close"
	FieldVolume   Field = "Volume"
)

// Fields lists the recognised value columns in display order.
var Fields = []Field{FieldClose, FieldAdjClose, FieldVolume}

// Bar is one dated row of a time series. Nil fields are absent.
type Bar struct {
	Date     time.Time
	Close    *float64
	AdjClose *float64
	Volume   *float64
}

// Value returns the bar's value for f, or nil when absent.
func (b Bar) Value(f Field) *float64 {
	switch f {
	case FieldClose:
		return b.Close
	case FieldAdjClose:
		return b.AdjClose
	case FieldVolume:
		return b.Volume
	}
	return nil
}

// Set stores v into the field f.
func (b *Bar) Set(f Field, v *float64) {
	switch f {
	case FieldClose:
		b.Close = v
	case FieldAdjClose:
		b.AdjClose = v
	case FieldVolume:
		b.Volume = v
	}
}

// Series holds raw daily bars for analysis, keyed by strictly increasing dates.
type Series struct {
	Symbol string
	Source string // "yahoo" or the imported file path
	Bars   []Bar
}

// NewSeries sorts bars chronologically and rejects duplicate dates.
func NewSeries(symbol, source string, bars []Bar) (*Series, error) {
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for i := 1; i < len(sorted); i++ {
		if !sorted[i].Date.After(sorted[i-1].Date) {
			return nil, fmt.Errorf("duplicate date %s", sorted[i].Date.Format("2006-01-02"))
		}
	}
	return &Series{Symbol: symbol, Source: source, Bars: sorted}, nil
}

// Len returns the number of bars.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Empty reports whether the series holds no bars.
func (s *Series) Empty() bool { return s.Len() == 0 }

// Has reports whether at least one bar carries a value for f.
func (s *Series) Has(f Field) bool {
	if s == nil {
		return false
	}
	for _, b := range s.Bars {
		if b.Value(f) != nil {
			return true
		}
	}
	return false
}

// Points returns the dates and values of f, skipping bars where it is absent.
func (s *Series) Points(f Field) ([]time.Time, []float64) {
	if s == nil {
		return nil, nil
	}
	var dates []time.Time
	var values []float64
	for _, b := range s.Bars {
		if v := b.Value(f); v != nil {
			dates = append(dates, b.Date)
			values = append(values, *v)
		}
	}
	return dates, values
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
