package bundle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"StockKit/internal/model"
)

// RestartCaveat is always attached to a verification: interpreters that were
// running during a reinstall still hold the old modules.
const RestartCaveat = "restart any running Python sessions before using openbb; " +
	"modules loaded before the reinstall stay stale until the interpreter restarts"

// probeScript imports the bundle in a fresh interpreter and prints one JSON object.
const probeScript = `
import json
out = {"importable": False, "version": None, "obb": False, "providers": None, "probe_error": None, "error": None}
try:
    import openbb
    out["importable"] = True
    out["version"] = getattr(openbb, "__version__", None)
    from openbb import obb
    out["obb"] = True
    try:
        p = obb.equity.price.historical.providers
        out["providers"] = [str(x) for x in p] if isinstance(p, (list, tuple, set)) else [str(p)]
    except Exception as e:
        out["probe_error"] = "%s: %s" % (type(e).__name__, e)
except Exception as e:
    out["error"] = "%s: %s" % (type(e).__name__, e)
print(json.dumps(out))
`

type probeOutput struct {
	Importable bool     `json:"importable"`
	Version    *string  `json:"version"`
	OBB        bool     `json:"obb"`
	Providers  []string `json:"providers"`
	ProbeError *string  `json:"probe_error"`
	Error      *string  `json:"error"`
}

// Verify checks that the bundle imports and exposes its access object.
// A failing provider probe is only a warning.
func Verify(ctx context.Context, pip Pip) *model.Verification {
	v := &model.Verification{Version: "unknown", Caveat: RestartCaveat}

	stdout, err := pip.Script(ctx, probeScript)
	if err != nil {
		v.Err = fmt.Errorf("run import probe: %w", err)
		log.Printf("[ERROR] %v", v.Err)
		return v
	}

	var out probeOutput
	if err := json.Unmarshal([]byte(lastJSONLine(stdout)), &out); err != nil {
		v.Err = fmt.Errorf("decode import probe output: %w", err)
		log.Printf("[ERROR] %v", v.Err)
		return v
	}
	if out.Version != nil && *out.Version != "" {
		v.Version = *out.Version
	}
	v.Importable = out.Importable && out.OBB
	v.AccessObject = out.OBB
	if out.Error != nil {
		v.Err = errors.New(*out.Error)
		log.Printf("[ERROR] import %s: %v", Anchor, v.Err)
		return v
	}
	if out.ProbeError != nil {
		v.ProbeWarning = *out.ProbeError
		log.Printf("[WARN] provider probe failed, %s may be partially usable: %s", Anchor, v.ProbeWarning)
	} else {
		v.Providers = out.Providers
	}
	log.Printf("[INFO] %s %s importable", Anchor, v.Version)
	return v
}

// lastJSONLine skips any banner lines a package prints on import.
func lastJSONLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); strings.HasPrefix(l, "{") {
			return l
		}
	}
	return s
}
