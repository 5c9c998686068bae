package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"StockKit/internal/model"
	"StockKit/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Diagnoser takes an inventory and evaluates it.
type Diagnoser interface {
	Diagnose(ctx context.Context) (*model.Inventory, model.CompatibilityVerdict)
}

// Sender delivers alert text.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler runs the consistency check on a cron schedule and alerts when
// the verdict changes away from compatible. It never reconciles on its own.
type Scheduler struct {
	Cron     *cron.Cron
	Doctor   Diagnoser
	Notifier Sender // nil disables alerts
	Ctx      context.Context

	mu   sync.Mutex
	last model.VerdictStatus
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, d Diagnoser, n Sender) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Doctor:   d,
		Notifier: n,
		Ctx:      ctx,
	}
}

// Register adds the periodic check.
func (s *Scheduler) Register(checkCron string) error {
	if _, err := s.Cron.AddFunc(checkCron, func() { s.RunCheckNow() }); err != nil {
		return fmt.Errorf("register check task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running check.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunCheckNow executes one consistency check and returns its verdict.
func (s *Scheduler) RunCheckNow() model.CompatibilityVerdict {
	log.Println("[INFO] running consistency check")
	inv, verdict := s.Doctor.Diagnose(s.Ctx)

	s.mu.Lock()
	changed := verdict.Status != s.last
	s.last = verdict.Status
	s.mu.Unlock()

	if changed && !verdict.Compatible() {
		s.trySend(notifier.FormatVerdict(verdict) + "\n" + notifier.FormatInventory(inv))
	}
	return verdict
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
