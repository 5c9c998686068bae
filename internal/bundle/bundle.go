// Package bundle inventories, checks and reconciles the installed OpenBB
// package set against one pinned, known-good release.
package bundle

import (
	"context"
	"fmt"
	"strings"
)

const (
	// Anchor is the top-level package whose version drives the rule.
	Anchor = "openbb"
	// Core is the dependency that must agree with the anchor.
	Core = "openbb-core"
)

// InventoryComponents are the components inspected by the consistency check.
var InventoryComponents = []string{
	"openbb", "openbb-core", "openbb-equity", "openbb-yfinance",
	"openbb-charting", "openbb-crypto",
}

// ReconcileComponents are every package removed before a reinstall.
var ReconcileComponents = []string{
	"openbb", "openbb-core", "openbb-equity", "openbb-yfinance",
	"openbb-charting", "openbb-crypto", "openbb-economy",
	"openbb-forecast", "openbb-index", "openbb-macro",
	"openbb-news", "openbb-options", "openbb-patterns",
	"openbb-politics", "openbb-portfolio", "openbb-screener",
	"openbb-sectors", "openbb-stocks", "openbb-surveillance",
	"openbb-terms", "openbb-time", "openbb-treasury",
	"openbb-vendor", "openbb-world",
}

// Target is a pinned requirement, e.g. openbb[all]==4.4.0.
type Target struct {
	Name    string
	Version string
	Extras  []string
}

// DefaultTarget is the known-good release.
var DefaultTarget = Target{Name: Anchor, Version: "4.4.0", Extras: []string{"all"}}

func (t Target) String() string {
	s := t.Name
	if len(t.Extras) > 0 {
		s += "[" + strings.Join(t.Extras, ",") + "]"
	}
	if t.Version != "" {
		s += "==" + t.Version
	}
	return s
}

// Pip is the subset of the package manager the bundle workflows use.
type Pip interface {
	Show(ctx context.Context, pkg string) (version string, installed bool, err error)
	Uninstall(ctx context.Context, pkg string) (removed bool, err error)
	Install(ctx context.Context, spec string, noCache bool) error
	Script(ctx context.Context, src string) (string, error)
}

// major returns the text before the first dot of a version string.
func major(version string) string {
	m, _, _ := strings.Cut(strings.TrimSpace(version), ".")
	return m
}

func describe(name, version string) string {
	if version == "" {
		return fmt.Sprintf("%s (not installed)", name)
	}
	return fmt.Sprintf("%s %s", name, version)
}
