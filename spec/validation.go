package spec

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// ValidationError describes one invalid skill source. Load-time
// validation collects every failure before reporting, so authors who
// add skills in batches get a single itemized report.
type ValidationError struct {
	// Origin is the offending source (file path or label).
	Origin string

	// SkillID is set when the source got far enough to have an ID.
	SkillID string

	// Reason is a human-readable description of the failure.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.SkillID != "" {
		return fmt.Sprintf("%s (skill %q): %s", e.Origin, e.SkillID, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Origin, e.Reason)
}

// ValidationReport aggregates every validation failure from one load
// pass. It is the only error a failed load produces; no partial
// registry accompanies it.
type ValidationReport struct {
	errs []*ValidationError
}

func (r *ValidationReport) Append(ve *ValidationError) {
	if ve == nil {
		return
	}
	r.errs = append(r.errs, ve)
}

// Errors returns the individual failures in collection order.
func (r *ValidationReport) Errors() []*ValidationError {
	return append([]*ValidationError(nil), r.errs...)
}

// Err returns nil when the report is empty, otherwise the report
// itself. Callers should always gate on Err rather than len checks.
func (r *ValidationReport) Err() error {
	if r == nil || len(r.errs) == 0 {
		return nil
	}
	return r
}

func (r *ValidationReport) Error() string {
	m := &multierror.Error{ErrorFormat: reportFormat}
	for _, ve := range r.errs {
		m = multierror.Append(m, ve)
	}
	return fmt.Sprintf("%v: %v", ErrValidation, m)
}

// Is makes errors.Is(err, spec.ErrValidation) true for reports.
func (r *ValidationReport) Is(target error) bool {
	return target == ErrValidation
}

// Unwrap exposes the individual failures to errors.Is/As walks.
func (r *ValidationReport) Unwrap() []error {
	out := make([]error, 0, len(r.errs))
	for _, ve := range r.errs {
		out = append(out, ve)
	}
	return out
}

func reportFormat(errs []error) string {
	if len(errs) == 1 {
		return fmt.Sprintf("1 invalid skill source: %v", errs[0])
	}
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, "  * "+err.Error())
	}
	return fmt.Sprintf("%d invalid skill sources:\n%s", len(errs), strings.Join(lines, "\n"))
}
