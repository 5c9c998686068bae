package bundle

import (
	"context"
	"errors"
	"fmt"
	"log"

	"StockKit/internal/model"
)

// ErrInstallFailed means the pinned install did not complete. The uninstall
// step is not rolled back.
var ErrInstallFailed = errors.New("pinned install failed")

// Reconciler removes every bundle component and installs one pinned target.
type Reconciler struct {
	Pip        Pip
	Components []string
	Target     Target
	NoCache    bool
}

// NewReconciler returns a Reconciler for the default component set and target.
func NewReconciler(pip Pip) *Reconciler {
	return &Reconciler{
		Pip:        pip,
		Components: ReconcileComponents,
		Target:     DefaultTarget,
		NoCache:    true,
	}
}

// Run performs the transaction. The returned outcome is never nil; the error
// is non-nil only when the pinned install failed.
func (r *Reconciler) Run(ctx context.Context) (*model.ReconciliationOutcome, error) {
	out := &model.ReconciliationOutcome{Target: r.Target.String()}

	log.Printf("[INFO] uninstalling %d bundle components", len(r.Components))
	for _, name := range r.Components {
		step := model.StepResult{Component: name}
		removed, err := r.Pip.Uninstall(ctx, name)
		if err != nil {
			log.Printf("[WARN] uninstall %s: %v", name, err)
			step.Err = err
		} else {
			step.OK, step.Removed = true, removed
		}
		out.Uninstalls = append(out.Uninstalls, step)
	}

	spec := r.Target.String()
	log.Printf("[INFO] installing %s", spec)
	out.Install = model.StepResult{Component: spec}
	if err := r.Pip.Install(ctx, spec, r.NoCache); err != nil {
		log.Printf("[ERROR] install %s: %v", spec, err)
		out.Install.Err = err
		return out, fmt.Errorf("%w: %s: %w", ErrInstallFailed, spec, err)
	}
	out.Install.OK = true
	out.Success = true
	log.Printf("[INFO] installed %s (%d components removed first)", spec, len(out.Removed()))
	return out, nil
}
