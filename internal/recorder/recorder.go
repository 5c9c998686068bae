package recorder

import "StockKit/internal/model"

// Recorder keeps an audit journal of workflow runs. It never stores price
// data, only what was attempted and what the environment looked like.
type Recorder interface {
	RecordFetchAttempts(symbol string, attempts []model.FetchAttempt) error
	RecordInventory(inv *model.Inventory) error
	RecordVerdict(v model.CompatibilityVerdict) error
	RecordReconciliation(out *model.ReconciliationOutcome) error
	Close() error
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
