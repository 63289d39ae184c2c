// Package preview reads image candidates into data URIs for display.
package preview

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/gobeaver/dropzone/filevalidator"
)

const defaultMIMEType = "application/octet-stream"

// ReadError is returned when a candidate's bytes cannot be read.
type ReadError struct {
	Filename string
	Err      error
}

// Error implements the error interface
func (e *ReadError) Error() string {
	return fmt.Sprintf("preview: read %s: %v", e.Filename, e.Err)
}

// Unwrap returns the underlying error
func (e *ReadError) Unwrap() error {
	return e.Err
}

// ErrTooLarge is the cause of a ReadError for files over the MaxBytes limit.
var ErrTooLarge = errors.New("file too large for preview")

// Option configures a Generator
type Option func(*Generator)

// WithTimeout bounds each read. Zero means only the caller's context applies.
func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		g.timeout = d
	}
}

// WithMaxBytes refuses to encode files larger than n bytes.
func WithMaxBytes(n int64) Option {
	return func(g *Generator) {
		g.maxBytes = n
	}
}

// WithCache reuses previews for candidates with the same fingerprint.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(g *Generator) {
		g.cache = cache
		g.cacheTTL = ttl
	}
}

// Generator reads whole files and encodes them as base64 data URIs.
// It is safe for concurrent use.
type Generator struct {
	timeout  time.Duration
	maxBytes int64
	cache    Cache
	cacheTTL time.Duration
}

// New creates a preview generator
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ReadAsDataURI reads c completely and returns "data:<mime>;base64,<payload>".
// The cache is keyed by the bytes read, so only the encoding is reused.
func (g *Generator) ReadAsDataURI(ctx context.Context, c *filevalidator.Candidate) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	data, err := g.read(ctx, c)
	if err != nil {
		return "", &ReadError{Filename: c.Name(), Err: err}
	}

	if g.cache == nil {
		return Encode(c.MIMEType(), data), nil
	}

	key := Fingerprint(c.MIMEType(), data)
	if uri, ok := g.cache.Get(key); ok {
		return uri, nil
	}
	uri := Encode(c.MIMEType(), data)
	g.cache.Set(key, uri, g.cacheTTL)
	return uri, nil
}

func (g *Generator) read(ctx context.Context, c *filevalidator.Candidate) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.maxBytes > 0 && c.Size() > g.maxBytes {
		return nil, ErrTooLarge
	}

	rc, err := c.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = &ctxReader{ctx: ctx, r: rc}
	if g.maxBytes > 0 {
		r = io.LimitReader(r, g.maxBytes+1)
	}

	// The declared size is not trusted for allocation.
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if g.maxBytes > 0 && int64(len(data)) > g.maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

// Encode formats data as a base64 data URI
func Encode(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = defaultMIMEType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Fingerprint identifies encoded content by its MIME type and bytes.
func Fingerprint(mimeType string, data []byte) string {
	h := xxhash.New()
	_, _ = h.WriteString(mimeType)
	_, _ = h.WriteString("\x00")
	_, _ = h.Write(data)
	return strconv.FormatUint(h.Sum64(), 16)
}

// ctxReader stops reading once its context is done
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

var _ filevalidator.Previewer = (*Generator)(nil)
