// Package probe discovers the active host container by scanning an ordered
// candidate list.
//
// The candidate list is restricted by configuration to the editors the
// add-on actually supports: asking the host for a container's UI handle
// implicitly requires that container's scope, so probing fewer candidates
// keeps the requested scope set minimal.
package probe

import (
	"context"

	"github.com/jamesprial/scope-auth-gate/internal/authgate/gatecore"
	"github.com/jamesprial/scope-auth-gate/internal/authgate/gateerr"
)

// Detector scans container candidates for a live UI handle.
type Detector struct {
	ui         gatecore.UIService
	candidates []gatecore.ContainerType
}

// NewDetector creates a detector over the given candidate list.
// Candidates are probed in the order given; the list is fixed for the
// lifetime of the detector.
func NewDetector(ui gatecore.UIService, candidates []gatecore.ContainerType) *Detector {
	return &Detector{
		ui:         ui,
		candidates: candidates,
	}
}

// DetectActiveUI returns the first candidate whose UI handle is obtainable.
//
// The host guarantees at most one candidate is active per invocation, so
// the first hit is the active container. Inactive candidates report
// ok=false and the scan continues; they never surface as errors. A genuine
// host failure from any candidate aborts the scan and propagates.
//
// found is false when no candidate is active, e.g. execution driven by a
// time-based trigger with no editor open.
func (d *Detector) DetectActiveUI(ctx context.Context) (*gatecore.ActiveUI, bool, error) {
	for _, candidate := range d.candidates {
		handle, ok, err := d.ui.ActiveUI(ctx, candidate)
		if err != nil {
			return nil, false, gateerr.NewHostUnavailableError("DetectActiveUI", err).
				WithContext("container", string(candidate))
		}
		if !ok {
			continue
		}
		return &gatecore.ActiveUI{Container: candidate, Handle: handle}, true, nil
	}
	return nil, false, nil
}
