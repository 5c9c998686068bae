package bundle

import (
	"context"
	"fmt"
	"log"

	"StockKit/internal/model"
	"StockKit/internal/pip"
	"StockKit/internal/recorder"
)

// Interpreter reports the Python version the bundle runs on.
type Interpreter interface {
	PythonVersion(ctx context.Context) (pip.Version, error)
}

// Doctor ties inventory, check, reconciliation and verification together and
// journals each step.
type Doctor struct {
	Pip         Pip
	Interpreter Interpreter
	Components  []string
	Rules       Rules
	Reconciler  *Reconciler
	Recorder    recorder.Recorder
}

// NewDoctor builds a Doctor around a pip client.
func NewDoctor(c *pip.Client, noCache bool, rec recorder.Recorder) *Doctor {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	r := NewReconciler(c)
	r.NoCache = noCache
	return &Doctor{
		Pip:         c,
		Interpreter: c,
		Components:  InventoryComponents,
		Rules:       DefaultRules,
		Reconciler:  r,
		Recorder:    rec,
	}
}

// CheckInterpreter fails below Python 3.8 and warns below 3.9.
func (d *Doctor) CheckInterpreter(ctx context.Context) (pip.Version, error) {
	v, err := d.Interpreter.PythonVersion(ctx)
	if err != nil {
		return v, fmt.Errorf("python version: %w", err)
	}
	if !v.AtLeast(3, 8) {
		return v, fmt.Errorf("python %s is too old, %s 4.x needs at least 3.8", v, Anchor)
	}
	if !v.AtLeast(3, 9) {
		log.Printf("[WARN] python %s: %s 4.x recommends 3.9 or newer", v, Anchor)
	}
	return v, nil
}

// Diagnose takes a fresh inventory and evaluates it.
func (d *Doctor) Diagnose(ctx context.Context) (*model.Inventory, model.CompatibilityVerdict) {
	inv := TakeInventory(ctx, d.Pip, d.Components)
	if err := d.Recorder.RecordInventory(inv); err != nil {
		log.Printf("[ERROR] record inventory: %v", err)
	}
	verdict := Check(inv, d.Rules)
	if err := d.Recorder.RecordVerdict(verdict); err != nil {
		log.Printf("[ERROR] record verdict: %v", err)
	}
	log.Printf("[INFO] consistency: %s (%s)", verdict.Status, verdict.Explanation)
	return inv, verdict
}

// Reconcile runs the reconciliation transaction and journals it.
func (d *Doctor) Reconcile(ctx context.Context) (*model.ReconciliationOutcome, error) {
	out, err := d.Reconciler.Run(ctx)
	if rerr := d.Recorder.RecordReconciliation(out); rerr != nil {
		log.Printf("[ERROR] record reconciliation: %v", rerr)
	}
	return out, err
}

// Verify runs the post-install verifier.
func (d *Doctor) Verify(ctx context.Context) *model.Verification {
	return Verify(ctx, d.Pip)
}
