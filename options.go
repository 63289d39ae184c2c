package dropzone

import (
	"github.com/sirupsen/logrus"

	"github.com/gobeaver/dropzone/filevalidator"
)

// Option represents a configuration option
type Option func(*options)

type options struct {
	logger       logrus.FieldLogger
	previewer    filevalidator.Previewer
	selector     Selector
	element      Element
	listeners    []Listener
	initialFiles []*filevalidator.Candidate
}

// WithLogger sets the logger. By default a logrus logger at the configured
// level is used.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithPreviewer replaces the default preview generator
func WithPreviewer(p filevalidator.Previewer) Option {
	return func(o *options) {
		o.previewer = p
	}
}

// WithSelector sets the chooser used by TriggerSelection
func WithSelector(s Selector) Option {
	return func(o *options) {
		o.selector = s
	}
}

// WithElement sets the root of the element subtree the drag gate watches
func WithElement(el Element) Option {
	return func(o *options) {
		o.element = el
	}
}

// WithListener registers a listener before initial files are seeded, so it
// observes the seeding events too.
func WithListener(l Listener) Option {
	return func(o *options) {
		o.listeners = append(o.listeners, l)
	}
}

// WithInitialFiles seeds the working set through the normal intake path
func WithInitialFiles(files ...*filevalidator.Candidate) Option {
	return func(o *options) {
		o.initialFiles = append(o.initialFiles, files...)
	}
}
