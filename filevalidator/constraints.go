package filevalidator

// Size constants for easier file size configuration
const (
	KB = int64(1024)
	MB = KB * 1024
	GB = MB * 1024
)

// AcceptAll is the accept pattern that matches every MIME type.
const AcceptAll = "*"

// Constraints defines the configuration for intake validation
type Constraints struct {
	// Accept is the MIME filter. "*" accepts everything, "major/*" compares
	// major types, anything else must occur as a substring of the MIME type.
	Accept string

	// MaxFileSize is the maximum allowed file size in bytes, inclusive.
	// Zero means no limit.
	MaxFileSize int64

	// GeneratePreviews enables data URI previews for image files
	GeneratePreviews bool

	// Concurrency caps the number of files validated at once.
	// Zero or negative means every file in a batch runs concurrently.
	Concurrency int
}

// DefaultConstraints accepts any file of any size without previews
func DefaultConstraints() Constraints {
	return Constraints{
		Accept: AcceptAll,
	}
}

// ImageConstraints accepts images only and generates previews
func ImageConstraints() Constraints {
	return Constraints{
		Accept:           "image/*",
		MaxFileSize:      10 * MB,
		GeneratePreviews: true,
	}
}

func (c Constraints) accept() string {
	if c.Accept == "" {
		return AcceptAll
	}
	return c.Accept
}
