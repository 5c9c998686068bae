package scheduler

import (
	"context"
	"strings"
	"testing"

	"StockKit/internal/model"
)

type scriptedDoctor struct {
	statuses []model.VerdictStatus
	calls    int
}

func (d *scriptedDoctor) Diagnose(context.Context) (*model.Inventory, model.CompatibilityVerdict) {
	st := d.statuses[d.calls]
	d.calls++
	return &model.Inventory{}, model.CompatibilityVerdict{Status: st, Explanation: string(st)}
}

type captureSender struct{ sent []string }

func (c *captureSender) SendWithRetry(_ context.Context, text string, _ int) error {
	c.sent = append(c.sent, text)
	return nil
}

func TestRunCheckNow_AlertsOnChangeOnly(t *testing.T) {
	d := &scriptedDoctor{statuses: []model.VerdictStatus{
		model.StatusCompatible,
		model.StatusMismatched,
		model.StatusMismatched,
		model.StatusCompatible,
		model.StatusNotInstalled,
	}}
	n := &captureSender{}
	s := NewScheduler(context.Background(), d, n)

	for range d.statuses {
		s.RunCheckNow()
	}

	if len(n.sent) != 2 {
		t.Fatalf("expected 2 alerts, got %d: %q", len(n.sent), n.sent)
	}
	if !strings.Contains(n.sent[0], "mismatched") || !strings.Contains(n.sent[1], "not_installed") {
		t.Errorf("unexpected alerts %q", n.sent)
	}
}

func TestRunCheckNow_NoNotifier(t *testing.T) {
	d := &scriptedDoctor{statuses: []model.VerdictStatus{model.StatusMismatched}}
	s := NewScheduler(context.Background(), d, nil)
	if v := s.RunCheckNow(); v.Status != model.StatusMismatched {
		t.Errorf("unexpected status %s", v.Status)
	}
}

func TestRegister_InvalidCron(t *testing.T) {
	s := NewScheduler(context.Background(), &scriptedDoctor{}, nil)
	if err := s.Register("every morning"); err == nil {
		t.Error("expected error for invalid cron expression")
	}
	if err := s.Register("0 0 9 * * *"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
