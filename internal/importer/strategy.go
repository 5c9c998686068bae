package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"StockKit/internal/model"
)

// Strategy parses CSV content under one schema assumption.
type Strategy interface {
	Name() string
	Parse(r io.Reader, symbol, source string) (*model.Series, error)
}

// IndexColumn treats the first column of every row as the date key.
type IndexColumn struct{}

func (IndexColumn) Name() string { return "index-column" }

func (IndexColumn) Parse(r io.Reader, symbol, source string) (*model.Series, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("need a date column and at least one value column, got %d columns", len(header))
	}
	return buildSeries(header, rows, 0, symbol, source)
}

// DateColumn parses generically and promotes the column named DateHeader.
type DateColumn struct{}

// DateHeader is the exact header of the date column DateColumn looks for.
const DateHeader = "Date"

func (DateColumn) Name() string { return "date-column" }

func (DateColumn) Parse(r io.Reader, symbol, source string) (*model.Series, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, h := range header {
		if h == DateHeader {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no %q column in header %q", DateHeader, header)
	}
	return buildSeries(header, rows, idx, symbol, source)
}

func readAll(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty file")
	}
	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return header, records[1:], nil
}

func buildSeries(header []string, rows [][]string, dateIdx int, symbol, source string) (*model.Series, error) {
	cols := map[model.Field]int{}
	for i, h := range header {
		if i == dateIdx {
			continue
		}
		for _, f := range model.Fields {
			if h == string(f) {
				cols[f] = i
			}
		}
	}

	bars := make([]model.Bar, 0, len(rows))
	for n, row := range rows {
		line := n + 2
		if dateIdx >= len(row) {
			return nil, fmt.Errorf("line %d: missing date column", line)
		}
		d, err := parseDate(row[dateIdx])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		b := model.Bar{Date: d}
		for f, i := range cols {
			if i >= len(row) {
				continue
			}
			v, err := parseValue(row[i])
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w", line, f, err)
			}
			b.Set(f, v)
		}
		bars = append(bars, b)
	}
	return model.NewSeries(symbol, source, bars)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date", s)
}

func parseValue(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "null":
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %q as a number", s)
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	return &v, nil
}
