package filevalidator

// Builder provides a fluent API for constructing validators
type Builder struct {
	constraints Constraints
	previewer   Previewer
}

// NewBuilder creates a new validator builder with default constraints
func NewBuilder() *Builder {
	return &Builder{
		constraints: DefaultConstraints(),
	}
}

// ForImages creates a builder preset for image intake with previews
func ForImages() *Builder {
	return &Builder{
		constraints: ImageConstraints(),
	}
}

// Accept sets the accept pattern (e.g., "*", "image/*", "application/pdf")
func (b *Builder) Accept(pattern string) *Builder {
	b.constraints.Accept = pattern
	return b
}

// MaxSize sets the maximum allowed file size. Zero removes the limit.
func (b *Builder) MaxSize(size int64) *Builder {
	b.constraints.MaxFileSize = size
	return b
}

// WithPreviews enables preview generation for image files
func (b *Builder) WithPreviews() *Builder {
	b.constraints.GeneratePreviews = true
	return b
}

// WithoutPreviews disables preview generation
func (b *Builder) WithoutPreviews() *Builder {
	b.constraints.GeneratePreviews = false
	return b
}

// Concurrency caps how many files of a batch are validated at once
func (b *Builder) Concurrency(n int) *Builder {
	b.constraints.Concurrency = n
	return b
}

// Previewer sets the preview generator used for image files
func (b *Builder) Previewer(p Previewer) *Builder {
	b.previewer = p
	return b
}

// Build creates the validator
func (b *Builder) Build() *Validator {
	return New(b.constraints, b.previewer)
}

// Constraints returns the constraints built so far
func (b *Builder) Constraints() Constraints {
	return b.constraints
}
