package recorder

import "StockKit/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordFetchAttempts(_ string, _ []model.FetchAttempt) error { return nil }
func (n *NoopRecorder) RecordInventory(_ *model.Inventory) error                   { return nil }
func (n *NoopRecorder) RecordVerdict(_ model.CompatibilityVerdict) error           { return nil }
func (n *NoopRecorder) RecordReconciliation(_ *model.ReconciliationOutcome) error  { return nil }
func (n *NoopRecorder) Close() error                                               { return nil }
