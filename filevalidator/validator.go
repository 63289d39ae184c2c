package filevalidator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Previewer turns a candidate's bytes into a displayable data URI
type Previewer interface {
	ReadAsDataURI(ctx context.Context, c *Candidate) (string, error)
}

// PreviewerFunc adapts a function to the Previewer interface
type PreviewerFunc func(ctx context.Context, c *Candidate) (string, error)

// ReadAsDataURI calls f(ctx, c)
func (f PreviewerFunc) ReadAsDataURI(ctx context.Context, c *Candidate) (string, error) {
	return f(ctx, c)
}

// Validator validates candidates against a fixed set of constraints.
// It is safe for concurrent use.
type Validator struct {
	constraints Constraints
	previewer   Previewer
}

// New creates a new validator. previewer may be nil when previews are disabled.
func New(constraints Constraints, previewer Previewer) *Validator {
	return &Validator{
		constraints: constraints,
		previewer:   previewer,
	}
}

// NewDefault creates a validator that accepts everything
func NewDefault() *Validator {
	return New(DefaultConstraints(), nil)
}

// GetConstraints returns the current validation constraints
func (v *Validator) GetConstraints() Constraints {
	return v.constraints
}

// ValidateOne classifies a single candidate. The first failing rule wins:
// accept pattern, then size, then preview generation.
func (v *Validator) ValidateOne(ctx context.Context, c *Candidate) Outcome {
	accept := v.constraints.accept()
	if !MatchAccept(accept, c.MIMEType()) {
		return reject(c, NewValidationError(ErrorTypeUnacceptedType, c.Name(),
			fmt.Sprintf("file type %q is not accepted (accept: %s)", c.MIMEType(), accept)))
	}

	if limit := v.constraints.MaxFileSize; limit > 0 && c.Size() > limit {
		return reject(c, NewValidationError(ErrorTypeSize, c.Name(),
			fmt.Sprintf("file size too big: %d bytes (max: %d bytes)", c.Size(), limit)))
	}

	accepted := &Accepted{Candidate: c}
	if v.constraints.GeneratePreviews && c.IsImage() {
		if v.previewer == nil {
			return reject(c, newPreviewError(c.Name(), ErrNoPreviewer))
		}
		preview, err := v.previewer.ReadAsDataURI(ctx, c)
		if err != nil {
			// A failed preview voids acceptance of the whole file.
			return reject(c, newPreviewError(c.Name(), err))
		}
		accepted.Preview = preview
	}

	return Outcome{Accepted: accepted}
}

// ValidateFiles validates every candidate of a batch concurrently and waits
// for all of them. One file's failure never stops the others. Both
// partitions keep submission order.
func (v *Validator) ValidateFiles(ctx context.Context, batch []*Candidate) *Result {
	outcomes := make([]Outcome, len(batch))

	g := new(errgroup.Group)
	if v.constraints.Concurrency > 0 {
		g.SetLimit(v.constraints.Concurrency)
	}
	for i, c := range batch {
		g.Go(func() error {
			outcomes[i] = v.ValidateOne(ctx, c)
			return nil
		})
	}
	// Tasks never fail; Wait is only the fan-in barrier.
	_ = g.Wait()

	result := &Result{}
	for _, o := range outcomes {
		result.add(o)
	}
	return result
}

func reject(c *Candidate, err *ValidationError) Outcome {
	return Outcome{Rejected: &Rejected{Candidate: c, Err: err}}
}
