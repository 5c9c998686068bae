package bundle

import (
	"fmt"

	"StockKit/internal/model"
)

// Rules maps an anchor major version to the core major version it requires.
type Rules map[string]string

// DefaultRules: openbb 4.x ships against openbb-core 1.x.
var DefaultRules = Rules{"4": "1"}

// Check evaluates the anchor/core pair in inv. Anchor majors with no rule are
// reported as unknown rather than assumed compatible.
func Check(inv *model.Inventory, rules Rules) model.CompatibilityVerdict {
	anchor := inv.Version(Anchor)
	core := inv.Version(Core)
	v := model.CompatibilityVerdict{AnchorVersion: anchor, CoreVersion: core}

	// A failed lookup says nothing about whether the package is installed.
	for _, name := range []string{Anchor, Core} {
		if err := inv.Failures[name]; err != nil {
			v.Status = model.StatusUnknown
			v.Explanation = fmt.Sprintf("cannot determine %s version: %v", name, err)
			return v
		}
	}

	if anchor == "" {
		v.Status = model.StatusNotInstalled
		v.Explanation = fmt.Sprintf("%s is not installed", Anchor)
		return v
	}

	want, ok := rules[major(anchor)]
	if !ok {
		v.Status = model.StatusUnknown
		v.Explanation = fmt.Sprintf("no compatibility rule for %s %s.x; %s cannot be validated",
			Anchor, major(anchor), describe(Core, core))
		return v
	}

	if core != "" && major(core) == want {
		v.Status = model.StatusCompatible
		v.Explanation = fmt.Sprintf("%s %s matches %s", Anchor, anchor, describe(Core, core))
		return v
	}
	v.Status = model.StatusMismatched
	v.Explanation = fmt.Sprintf("%s %s.x requires %s %s.x, found %s",
		Anchor, major(anchor), Core, want, describe(Core, core))
	return v
}
