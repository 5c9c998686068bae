package bundle

import (
	"context"
	"log"

	"StockKit/internal/model"
)

// TakeInventory queries the installed version of every component. A lookup
// that fails is logged and recorded in Failures; the rest still run.
func TakeInventory(ctx context.Context, pip Pip, components []string) *model.Inventory {
	inv := &model.Inventory{Failures: map[string]error{}}
	for _, name := range components {
		rec := model.PackageRecord{Name: name}
		version, installed, err := pip.Show(ctx, name)
		if err != nil {
			log.Printf("[WARN] inventory %s: %v", name, err)
			inv.Failures[name] = err
		} else {
			rec.Version, rec.Installed = version, installed
		}
		inv.Records = append(inv.Records, rec)
	}
	log.Printf("[INFO] inventory: %d/%d components installed, %d lookups failed",
		len(inv.Installed()), len(components), len(inv.Failures))
	return inv
}
