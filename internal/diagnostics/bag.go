package diagnostics

// Bag is an ordered, append-only collection of Diagnostics produced by a
// single pipeline run. It is one of the two process-wide mutable objects
// threaded explicitly through every pass (see spec §5, §9 — the other is
// the Naming Authority).
type Bag struct {
	items []*Diagnostic
	runID string
}

func NewBag() *Bag {
	return &Bag{}
}

// SetRunID stamps the bag with the run identifier the pipeline generated
// for this invocation (pipeline.NewContext calls this once, up front).
func (b *Bag) SetRunID(id string) {
	b.runID = id
}

// RunID returns the identifier this bag was stamped with, or "" if none.
func (b *Bag) RunID() string {
	return b.runID
}

func (b *Bag) Add(d *Diagnostic) {
	b.items = append(b.items, d)
}

func (b *Bag) Addf(code Code, severity Severity, site Site, message string) {
	b.Add(New(code, severity, site, message))
}

// All returns every diagnostic recorded, in emission order.
func (b *Bag) All() []*Diagnostic {
	return b.items
}

// Errors returns only Error-severity diagnostics.
func (b *Bag) Errors() []*Diagnostic {
	var out []*Diagnostic
	for _, d := range b.items {
		if d.Severity == Error {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
// The Gate fails the run whenever this is true (spec §4.14).
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// CountsByCode reports, per code, how many diagnostics were recorded —
// the basis of the Gate's "per-code counts" machine-readable summary.
func (b *Bag) CountsByCode() map[Code]int {
	counts := make(map[Code]int)
	for _, d := range b.items {
		counts[d.Code]++
	}
	return counts
}

// CountsBySeverity reports totals per severity tier.
func (b *Bag) CountsBySeverity() map[Severity]int {
	counts := make(map[Severity]int)
	for _, d := range b.items {
		counts[d.Severity]++
	}
	return counts
}

// Merge appends every diagnostic from other onto b, preserving order.
// Used when a pass is run as an independent sub-computation (e.g. per
// namespace) and its findings need folding back into the run-wide bag.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
}
