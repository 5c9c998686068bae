package model

import (
	"testing"
	"time"
)

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func TestNewSeries_SortsByDate(t *testing.T) {
	s, err := NewSeries("AAPL", "test", []Bar{
		{Date: day(4), Close: Float(3)},
		{Date: day(2), Close: Float(1)},
		{Date: day(3), Close: Float(2)},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < s.Len(); i++ {
		if !s.Bars[i].Date.After(s.Bars[i-1].Date) {
			t.Fatalf("bars not strictly increasing at %d", i)
		}
	}
	if *s.Bars[0].Close != 1 {
		t.Errorf("expected first close 1, got %v", *s.Bars[0].Close)
	}
}

func TestNewSeries_RejectsDuplicateDates(t *testing.T) {
	_, err := NewSeries("AAPL", "test", []Bar{{Date: day(2)}, {Date: day(2)}})
	if err == nil {
		t.Fatal("expected duplicate date error")
	}
}

func TestSeries_HasAndPoints(t *testing.T) {
	s, _ := NewSeries("AAPL", "test", []Bar{
		{Date: day(2), Close: Float(10), Volume: Float(100)},
		{Date: day(3), Volume: Float(200)},
		{Date: day(4), Close: Float(12)},
	})
	if !s.Has(FieldClose) || !s.Has(FieldVolume) {
		t.Error("expected Close and Volume to be present")
	}
	if s.Has(FieldAdjClose) {
		t.Error("Adj Close should be absent")
	}
	dates, values := s.Points(FieldClose)
	if len(dates) != 2 || len(values) != 2 {
		t.Fatalf("expected 2 close points, got %d", len(values))
	}
	if !dates[1].Equal(day(4)) || values[1] != 12 {
		t.Errorf("unexpected second point %v=%v", dates[1], values[1])
	}
}

func TestSeries_NilSafe(t *testing.T) {
	var s *Series
	if s.Len() != 0 || !s.Empty() || s.Has(FieldClose) {
		t.Error("nil series should be empty")
	}
}

func TestDateRange_HalfOpen(t *testing.T) {
	r := DateRange{Start: day(1), End: day(31)}
	if !r.Contains(day(1)) {
		t.Error("start should be included")
	}
	if r.Contains(day(31)) {
		t.Error("end should be excluded")
	}
	if r.Contains(day(1).Add(-time.Hour)) {
		t.Error("time before start should be excluded")
	}
}

func TestInventory_Version(t *testing.T) {
	inv := &Inventory{Records: []PackageRecord{
		{Name: "openbb", Version: "4.4.0", Installed: true},
		{Name: "openbb-core"},
	}}
	if v := inv.Version("openbb"); v != "4.4.0" {
		t.Errorf("expected 4.4.0, got %q", v)
	}
	if v := inv.Version("openbb-core"); v != "" {
		t.Errorf("absent component should have empty version, got %q", v)
	}
	if v := inv.Version("missing"); v != "" {
		t.Errorf("unknown component should have empty version, got %q", v)
	}
	if n := len(inv.Installed()); n != 1 {
		t.Errorf("expected 1 installed record, got %d", n)
	}
}
