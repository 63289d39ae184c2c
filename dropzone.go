package dropzone

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/gobeaver/dropzone/filevalidator"
	"github.com/gobeaver/dropzone/preview"
)

// Dropzone collects files from drop gestures and explicit selection,
// validates them and maintains the working set of accepted files.
// It is safe for concurrent use.
type Dropzone struct {
	cfg       Config
	validator *filevalidator.Validator
	gate      *Gate
	selector  Selector
	log       logrus.FieldLogger

	// mu guards files and lastReplace
	mu          sync.RWMutex
	files       WorkingSet
	lastReplace uint64
	seq         atomic.Uint64

	// emitMu is taken before mu is released so events leave in commit order
	emitMu sync.Mutex
	events emitter

	selecting atomic.Bool
}

// New creates a dropzone from cfg. Initial files, from cfg.InitialFiles and
// WithInitialFiles, go through the same intake path as any other batch.
func New(ctx context.Context, cfg Config, opts ...Option) (*Dropzone, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	log := o.logger
	if log == nil {
		log = newLogger(cfg.LogLevel)
	}

	previewer := o.previewer
	if previewer == nil {
		previewer = newPreviewer(cfg)
	}

	d := &Dropzone{
		cfg:       cfg,
		validator: filevalidator.New(cfg.Constraints(), previewer),
		gate:      NewGate(o.element, cfg.Disabled),
		selector:  o.selector,
		log:       log,
	}
	for _, l := range o.listeners {
		d.Subscribe(l)
	}

	seed := o.initialFiles
	for _, p := range cfg.InitialPaths() {
		c, err := filevalidator.FromPath(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load initial file: %w", err)
		}
		seed = append(seed, c)
	}
	if len(seed) > 0 {
		// A refused seed batch is reported through EventBatchRejected.
		if _, err := d.SubmitBatch(ctx, seed); err != nil {
			log.WithError(err).Warn("initial files not accepted")
		}
	}

	return d, nil
}

func newLogger(level string) logrus.FieldLogger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

func newPreviewer(cfg Config) filevalidator.Previewer {
	var opts []preview.Option
	if d, _ := parseDuration(cfg.PreviewTimeout); d > 0 {
		opts = append(opts, preview.WithTimeout(d))
	}
	if cfg.PreviewMaxBytes > 0 {
		opts = append(opts, preview.WithMaxBytes(cfg.PreviewMaxBytes))
	}
	if ttl, _ := parseDuration(cfg.PreviewCacheTTL); ttl > 0 {
		opts = append(opts, preview.WithCache(preview.NewMemoryCache(), ttl))
	}
	return preview.New(opts...)
}

// Config returns the configuration the dropzone was created with, with
// Disabled reflecting the current gate state.
func (d *Dropzone) Config() Config {
	cfg := d.cfg
	cfg.Disabled = d.gate.State().Disabled
	return cfg
}

// Subscribe registers a listener and returns a function that removes it
func (d *Dropzone) Subscribe(l Listener) (unsubscribe func()) {
	return d.events.subscribe(l)
}

// State returns the current hover and disabled state
func (d *Dropzone) State() State {
	return d.gate.State()
}

// Files returns a snapshot of the working set
func (d *Dropzone) Files() []*filevalidator.Accepted {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.files.Snapshot()
}

// Len returns the number of files in the working set
func (d *Dropzone) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.files.Len()
}

// SetDisabled enables or disables intake
func (d *Dropzone) SetDisabled(disabled bool) {
	d.transition(d.gate.SetDisabled(disabled))
}

// DragEnter starts hover feedback
func (d *Dropzone) DragEnter() {
	d.transition(d.gate.DragEnter())
}

// DragOver starts hover feedback
func (d *Dropzone) DragOver() {
	d.transition(d.gate.DragOver())
}

// DragLeave ends hover feedback when related is outside the dropzone element
func (d *Dropzone) DragLeave(related Element) {
	d.transition(d.gate.DragLeave(related))
}

// Drop ends hover feedback and submits the dropped files
func (d *Dropzone) Drop(ctx context.Context, batch []*filevalidator.Candidate) (*filevalidator.Result, error) {
	d.transition(d.gate.Drop())
	return d.SubmitBatch(ctx, batch)
}

// TriggerSelection opens the configured chooser and submits what it
// returns. Only one selection may be open at a time.
func (d *Dropzone) TriggerSelection(ctx context.Context) (*filevalidator.Result, error) {
	if !d.gate.CanSelect() {
		return nil, ErrDisabled
	}
	if d.selector == nil {
		return nil, ErrNoSelector
	}
	if !d.selecting.CompareAndSwap(false, true) {
		return nil, ErrSelectionInProgress
	}
	defer d.selecting.Store(false)

	batch, err := d.selector.Select(ctx)
	if err != nil {
		return nil, fmt.Errorf("file selection failed: %w", err)
	}
	if len(batch) == 0 {
		d.log.Debug("file selection cancelled")
		return &filevalidator.Result{}, nil
	}
	return d.SubmitBatch(ctx, batch)
}

// SubmitBatch validates one intake batch and commits the accepted files.
//
// A batch refused as a whole returns a *BatchError and emits
// EventBatchRejected; the working set is untouched. Otherwise the per-file
// result is returned. When files are retained across batches only by
// replacement, a batch that finishes after a newer one has committed is
// discarded with ErrStaleBatch; its rejected files are still reported.
func (d *Dropzone) SubmitBatch(ctx context.Context, batch []*filevalidator.Candidate) (*filevalidator.Result, error) {
	id := uuid.NewString()
	log := d.log.WithFields(logrus.Fields{"batch": id, "files": len(batch)})

	if err := d.gate.Admit(len(batch), d.cfg.AllowMultiple); err != nil {
		log.WithError(err).Info("batch rejected")
		return nil, d.rejectBatch(id, len(batch), err)
	}
	if len(batch) == 0 {
		return &filevalidator.Result{}, nil
	}

	seq := d.seq.Add(1)
	log.Debug("validating batch")
	result := d.validator.ValidateFiles(ctx, batch)

	if err := d.apply(id, seq, result); err != nil {
		log.WithError(err).Warn("batch discarded")
		return result, err
	}

	log.WithFields(logrus.Fields{
		"accepted": len(result.Accepted),
		"rejected": len(result.Rejected),
	}).Info("batch processed")
	return result, nil
}

func (d *Dropzone) rejectBatch(id string, count int, err error) error {
	batchErr := &BatchError{BatchID: id, Count: count, Err: err}
	d.emitMu.Lock()
	d.events.emit(Event{Type: EventBatchRejected, BatchID: id, Err: batchErr})
	d.emitMu.Unlock()
	return batchErr
}

func (d *Dropzone) apply(id string, seq uint64, result *filevalidator.Result) error {
	var (
		events []Event
		err    error
	)

	d.mu.Lock()
	if len(result.Accepted) > 0 {
		replace := !d.cfg.RetainAcrossBatches || !d.cfg.AllowMultiple
		if replace && seq < d.lastReplace {
			err = &BatchError{BatchID: id, Count: len(result.Accepted), Err: ErrStaleBatch}
			events = append(events, Event{Type: EventBatchRejected, BatchID: id, Err: err})
		} else {
			if replace {
				d.lastReplace = seq
			}
			snapshot := d.files.Apply(result.Accepted, replace)
			events = append(events,
				Event{Type: EventChanged, BatchID: id, Files: snapshot},
				Event{Type: EventAdded, BatchID: id, Files: result.Accepted},
			)
		}
	}
	if len(result.Rejected) > 0 {
		events = append(events, Event{Type: EventRejected, BatchID: id, Rejected: result.Rejected})
	}
	d.commit(events)

	return err
}

// RemoveFile removes ref from the working set. It reports false and emits
// nothing when ref is not present.
func (d *Dropzone) RemoveFile(ref *filevalidator.Accepted) bool {
	d.mu.Lock()
	if !d.files.Remove(ref) {
		d.mu.Unlock()
		return false
	}
	snapshot := d.files.Snapshot()
	d.commit([]Event{
		{Type: EventChanged, Files: snapshot},
		{Type: EventRemoved, Files: []*filevalidator.Accepted{ref}},
	})

	d.log.WithField("file", ref.Name()).Debug("file removed")
	return true
}

// commit releases mu, which the caller holds, and emits events before any
// later commit can emit its own.
func (d *Dropzone) commit(events []Event) {
	d.emitMu.Lock()
	d.mu.Unlock()
	defer d.emitMu.Unlock()
	d.events.emit(events...)
}

func (d *Dropzone) transition(changed bool) {
	if !changed {
		return
	}
	d.emitMu.Lock()
	defer d.emitMu.Unlock()
	d.events.emit(Event{Type: EventStateChanged, State: d.gate.State()})
}
