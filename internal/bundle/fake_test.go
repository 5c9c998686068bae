package bundle

import (
	"context"
	"errors"
	"strings"
)

// fakePip is an in-memory package registry.
type fakePip struct {
	installed    map[string]string
	showErr      map[string]error
	uninstallErr map[string]error
	installErr   error
	// provides is what installing the target puts in the registry.
	provides map[string]string

	installs  []string
	noCache   []bool
	script    string
	scriptErr error
}

func newFakePip(installed map[string]string) *fakePip {
	if installed == nil {
		installed = map[string]string{}
	}
	return &fakePip{
		installed:    installed,
		showErr:      map[string]error{},
		uninstallErr: map[string]error{},
		provides: map[string]string{
			"openbb":          "4.4.0",
			"openbb-core":     "1.4.0",
			"openbb-equity":   "1.4.0",
			"openbb-yfinance": "1.4.0",
		},
	}
}

func (f *fakePip) Show(_ context.Context, pkg string) (string, bool, error) {
	if err := f.showErr[pkg]; err != nil {
		return "", false, err
	}
	v, ok := f.installed[pkg]
	return v, ok, nil
}

func (f *fakePip) Uninstall(_ context.Context, pkg string) (bool, error) {
	if err := f.uninstallErr[pkg]; err != nil {
		return false, err
	}
	if _, ok := f.installed[pkg]; !ok {
		return false, nil
	}
	delete(f.installed, pkg)
	return true, nil
}

func (f *fakePip) Install(_ context.Context, spec string, noCache bool) error {
	f.installs = append(f.installs, spec)
	f.noCache = append(f.noCache, noCache)
	if f.installErr != nil {
		return f.installErr
	}
	if !strings.HasPrefix(spec, Anchor) {
		return errors.New("unknown requirement " + spec)
	}
	for k, v := range f.provides {
		f.installed[k] = v
	}
	return nil
}

func (f *fakePip) Script(context.Context, string) (string, error) {
	return f.script, f.scriptErr
}

func (f *fakePip) snapshot() map[string]string {
	out := make(map[string]string, len(f.installed))
	for k, v := range f.installed {
		out[k] = v
	}
	return out
}
