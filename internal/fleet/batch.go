package fleet

import "fmt"

// Outcome is the result of one item in a best-effort batch.
type Outcome struct {
	Item string
	Err  error
}

func (o Outcome) OK() bool {
	return o.Err == nil
}

// Batch accumulates per-item outcomes; one failing item never stops the rest.
type Batch struct {
	Step     string
	Outcomes []Outcome
}

func (b *Batch) Record(item string, err error) {
	b.Outcomes = append(b.Outcomes, Outcome{Item: item, Err: err})
}

func (b Batch) Succeeded() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

func (b Batch) Failed() []Outcome {
	var failed []Outcome
	for _, o := range b.Outcomes {
		if !o.OK() {
			failed = append(failed, o)
		}
	}
	return failed
}

// Err summarises failures as a *PartialFailureError, or nil.
func (b Batch) Err() error {
	failed := len(b.Failed())
	if failed == 0 {
		return nil
	}
	return &PartialFailureError{Step: b.Step, Failed: failed, Total: len(b.Outcomes)}
}

// PartialFailureError reports how many items of a batch failed. The
// individual reasons were already reported as they happened.
type PartialFailureError struct {
	Step   string
	Failed int
	Total  int
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %d of %d failed", e.Step, e.Failed, e.Total)
}
