package filevalidator

import (
	"fmt"
	"strings"
)

// Accepted is a candidate that passed validation
type Accepted struct {
	*Candidate

	// Preview is a data URI, set only when previews were requested for an
	// image file and the read succeeded.
	Preview string
}

// HasPreview reports whether a preview was generated
func (a *Accepted) HasPreview() bool {
	return a.Preview != ""
}

// Rejected is a candidate that failed validation, with the reason
type Rejected struct {
	*Candidate

	Err *ValidationError
}

// Error implements the error interface
func (r *Rejected) Error() string {
	return fmt.Sprintf("%s: %v", r.Name(), r.Err)
}

// Outcome is the classification of a single candidate. Exactly one of
// Accepted and Rejected is set.
type Outcome struct {
	Accepted *Accepted
	Rejected *Rejected
}

// OK reports whether the candidate was accepted
func (o Outcome) OK() bool {
	return o.Accepted != nil
}

// Result partitions a batch into accepted and rejected files
type Result struct {
	Accepted []*Accepted
	Rejected []*Rejected
}

// Len returns the number of classified files
func (r *Result) Len() int {
	return len(r.Accepted) + len(r.Rejected)
}

func (r *Result) add(o Outcome) {
	if o.Accepted != nil {
		r.Accepted = append(r.Accepted, o.Accepted)
		return
	}
	r.Rejected = append(r.Rejected, o.Rejected)
}

// Summary returns a human-readable summary of the batch
func (r *Result) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d accepted, %d rejected", len(r.Accepted), len(r.Rejected))
	for _, rej := range r.Rejected {
		fmt.Fprintf(&b, "\n  ✗ %s: %s", rej.Name(), rej.Err.Message)
	}
	return b.String()
}
