package filevalidator

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// OpenFunc opens the bytes behind a candidate for reading.
type OpenFunc func() (io.ReadCloser, error)

// Candidate is an immutable handle to a file submitted for intake.
// Two candidates are the same file only if they are the same pointer.
type Candidate struct {
	name         string
	size         int64
	mimeType     string
	lastModified time.Time
	open         OpenFunc
}

// NewCandidate creates a candidate from explicit attributes.
func NewCandidate(name string, size int64, mimeType string, lastModified time.Time, open OpenFunc) *Candidate {
	return &Candidate{
		name:         name,
		size:         size,
		mimeType:     mimeType,
		lastModified: lastModified,
		open:         open,
	}
}

// FromBytes creates an in-memory candidate.
func FromBytes(name, mimeType string, data []byte) *Candidate {
	return NewCandidate(name, int64(len(data)), mimeType, time.Now(), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FromPath creates a candidate for a local file. The MIME type comes from
// the extension and falls back to sniffing the file header.
func FromPath(p string) (*Candidate, error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", p)
	}

	open := func() (io.ReadCloser, error) { return os.Open(p) }
	mimeType := MIMETypeForExtension(strings.ToLower(filepath.Ext(p)))
	if mimeType == "" {
		mimeType, err = sniff(open)
		if err != nil {
			return nil, err
		}
	}

	return NewCandidate(filepath.Base(p), info.Size(), mimeType, info.ModTime(), open), nil
}

// FromFS creates a candidate for a file inside fsys.
func FromFS(fsys fs.FS, name string) (*Candidate, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", name)
	}

	open := func() (io.ReadCloser, error) { return fsys.Open(name) }
	mimeType := MIMETypeForExtension(strings.ToLower(path.Ext(name)))
	if mimeType == "" {
		mimeType, err = sniff(open)
		if err != nil {
			return nil, err
		}
	}

	return NewCandidate(path.Base(name), info.Size(), mimeType, info.ModTime(), open), nil
}

// FromFileHeader creates a candidate from a multipart form file. The MIME
// type is the part's declared Content-Type, as a browser would report it.
func FromFileHeader(fh *multipart.FileHeader) *Candidate {
	open := func() (io.ReadCloser, error) { return fh.Open() }
	return NewCandidate(fh.Filename, fh.Size, fh.Header.Get("Content-Type"), time.Time{}, open)
}

func sniff(open OpenFunc) (string, error) {
	rc, err := open()
	if err != nil {
		return "", err
	}
	defer rc.Close()
	return DetectMIME(rc)
}

// Name returns the file name.
func (c *Candidate) Name() string { return c.name }

// Size returns the file size in bytes.
func (c *Candidate) Size() int64 { return c.size }

// MIMEType returns the declared MIME type, possibly empty.
func (c *Candidate) MIMEType() string { return c.mimeType }

// LastModified returns the modification time, zero when unknown.
func (c *Candidate) LastModified() time.Time { return c.lastModified }

// Open opens the file contents. Callers must close the returned reader.
func (c *Candidate) Open() (io.ReadCloser, error) {
	if c.open == nil {
		return nil, fmt.Errorf("candidate %s has no content", c.name)
	}
	return c.open()
}

// IsImage reports whether the candidate's major MIME type is "image".
func (c *Candidate) IsImage() bool {
	return MajorType(c.mimeType) == "image"
}
