// Package chart renders a price series to a PNG file.
package chart

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"StockKit/internal/model"
)

var ErrNoPrice = errors.New("series has no Close or Adj Close values")

// FileName is the chart file written for symbol.
func FileName(symbol string) string {
	return fmt.Sprintf("%s_price_chart.png", symbol)
}

// Render writes the price chart for s into dir, replacing any existing file,
// and returns its path. Close is plotted when present, otherwise Adj Close.
func Render(s *model.Series, dir string) (string, error) {
	field := model.FieldClose
	label := "Close"
	if !s.Has(field) {
		field, label = model.FieldAdjClose, "Adj Close"
	}
	dates, values := s.Points(field)
	if len(values) == 0 {
		return "", ErrNoPrice
	}

	pts := make(plotter.XYs, len(values))
	for i := range values {
		pts[i].X = float64(dates[i].Unix())
		pts[i].Y = values[i]
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s price", s.Symbol)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Price"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("build line: %w", err)
	}
	p.Add(line)
	p.Legend.Add(label, line)
	p.Legend.Top = true

	path := filepath.Join(dir, FileName(s.Symbol))
	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("save chart: %w", err)
	}
	log.Printf("[INFO] price chart saved to %s", path)
	return path, nil
}
