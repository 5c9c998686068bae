package model

// PackageRecord is the installed state of one bundle component.
type PackageRecord struct {
	Name      string
	Version   string // empty when not installed
	Installed bool
}

// Inventory is a fresh snapshot of component versions, in query order.
type Inventory struct {
	Records  []PackageRecord
	Failures map[string]error // lookups that could not be completed
}

// Lookup returns the record for name.
func (inv *Inventory) Lookup(name string) (PackageRecord, bool) {
	if inv == nil {
		return PackageRecord{}, false
	}
	for _, r := range inv.Records {
		if r.Name == name {
			return r, true
		}
	}
	return PackageRecord{}, false
}

// Version returns the installed version of name, or "" when absent.
func (inv *Inventory) Version(name string) string {
	r, ok := inv.Lookup(name)
	if !ok || !r.Installed {
		return ""
	}
	return r.Version
}

// Installed returns only the records of installed components.
func (inv *Inventory) Installed() []PackageRecord {
	if inv == nil {
		return nil
	}
	var out []PackageRecord
	for _, r := range inv.Records {
		if r.Installed {
			out = append(out, r)
		}
	}
	return out
}

// VerdictStatus classifies the anchor/core version relationship.
type VerdictStatus string

const (
	StatusNotInstalled VerdictStatus = "not_installed"
	StatusCompatible   VerdictStatus = "compatible"
	StatusMismatched   VerdictStatus = "mismatched"
	StatusUnknown      VerdictStatus = "unknown"
)

// CompatibilityVerdict is the consistency checker's result.
type CompatibilityVerdict struct {
	Status        VerdictStatus
	Explanation   string
	AnchorVersion string
	CoreVersion   string
}

// Compatible reports whether the installed set passed a known rule.
func (v CompatibilityVerdict) Compatible() bool { return v.Status == StatusCompatible }

// StepResult is the result of one package-manager step.
type StepResult struct {
	Component string
	OK        bool
	Removed   bool // uninstall actually removed something
	Err       error
}

// ReconciliationOutcome summarises one uninstall/reinstall transaction.
type ReconciliationOutcome struct {
	Target     string
	Uninstalls []StepResult
	Install    StepResult
	Success    bool
}

// Removed returns the components the uninstall step actually removed.
func (o *ReconciliationOutcome) Removed() []string {
	var names []string
	for _, u := range o.Uninstalls {
		if u.Removed {
			names = append(names, u.Component)
		}
	}
	return names
}

// Verification is the post-install verifier's report.
type Verification struct {
	Importable   bool
	Version      string // "unknown" when not exposed
	AccessObject bool
	Providers    []string
	ProbeWarning string
	Err          error
	Caveat       string
}
