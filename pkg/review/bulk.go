package review

import "fmt"

// BulkOutcome aggregates a bulk operation over selected items. The
// operation keeps going past individual failures so one bad item does
// not abort the rest.
type BulkOutcome struct {
	Succeeded int
	Failed    int
	FailedIDs []string
}

// Record tallies one item result.
func (o *BulkOutcome) Record(id string, err error) {
	if err != nil {
		o.Failed++
		o.FailedIDs = append(o.FailedIDs, id)
		return
	}
	o.Succeeded++
}

// AllSucceeded reports whether every item went through.
func (o *BulkOutcome) AllSucceeded() bool { return o.Failed == 0 }

// Summary renders the user-facing result line, e.g. "4 succeeded, 1 failed".
func (o *BulkOutcome) Summary() string {
	if o.Failed == 0 {
		return fmt.Sprintf("%d succeeded", o.Succeeded)
	}
	return fmt.Sprintf("%d succeeded, %d failed", o.Succeeded, o.Failed)
}

// Apply runs fn over each id in order, aggregating per-item results.
func Apply(ids []string, fn func(id string) error) *BulkOutcome {
	outcome := &BulkOutcome{}
	for _, id := range ids {
		outcome.Record(id, fn(id))
	}
	return outcome
}
