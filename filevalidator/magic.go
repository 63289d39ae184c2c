package filevalidator

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// sniffLen is how much of a file header DetectMIME inspects
const sniffLen = 512

type magicSignature struct {
	mime   string
	offset int
	magic  []byte
}

// Ordered by specificity (most specific first)
var magicSignatures = []magicSignature{
	{mime: "image/jpeg", magic: []byte{0xFF, 0xD8, 0xFF}},
	{mime: "image/png", magic: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	{mime: "image/gif", magic: []byte("GIF87a")},
	{mime: "image/gif", magic: []byte("GIF89a")},
	{mime: "image/webp", offset: 8, magic: []byte("WEBP")},
	{mime: "image/bmp", magic: []byte("BM")},
	{mime: "image/tiff", magic: []byte{0x49, 0x49, 0x2A, 0x00}},
	{mime: "image/tiff", magic: []byte{0x4D, 0x4D, 0x00, 0x2A}},
	{mime: "image/x-icon", magic: []byte{0x00, 0x00, 0x01, 0x00}},
	{mime: "image/heic", offset: 4, magic: []byte("ftypheic")},
	{mime: "image/avif", offset: 4, magic: []byte("ftypavif")},

	{mime: "application/pdf", magic: []byte("%PDF-")},
	{mime: "application/zip", magic: []byte{0x50, 0x4B, 0x03, 0x04}},
	{mime: "application/gzip", magic: []byte{0x1F, 0x8B}},
	{mime: "application/x-tar", offset: 257, magic: []byte("ustar")},

	{mime: "audio/mpeg", magic: []byte("ID3")},
	{mime: "audio/flac", magic: []byte("fLaC")},
	{mime: "audio/ogg", magic: []byte("OggS")},
	{mime: "audio/wav", magic: []byte("RIFF")}, // refined by the RIFF form type

	{mime: "video/webm", magic: []byte{0x1A, 0x45, 0xDF, 0xA3}},
	{mime: "video/mp4", offset: 4, magic: []byte("ftyp")},
}

// DetectMIME detects the MIME type from the first bytes of reader.
// Falls back to http.DetectContentType if no signature matches.
func DetectMIME(reader io.Reader) (string, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("failed to read file for MIME detection: %w", err)
	}
	return DetectMIMEFromBytes(buf[:n]), nil
}

// DetectMIMEFromBytes detects MIME type from a byte slice
func DetectMIMEFromBytes(data []byte) string {
	if len(data) == 0 {
		return "application/octet-stream"
	}

	for _, sig := range magicSignatures {
		if sig.offset+len(sig.magic) > len(data) {
			continue
		}
		if bytes.Equal(data[sig.offset:sig.offset+len(sig.magic)], sig.magic) {
			return refineRIFF(data, sig.mime)
		}
	}

	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx > 0 {
		contentType = contentType[:idx]
	}
	return contentType
}

// refineRIFF picks the concrete format of a RIFF container from its form type
func refineRIFF(data []byte, mime string) string {
	if mime != "audio/wav" || len(data) < 12 {
		return mime
	}
	switch string(data[8:12]) {
	case "AVI ":
		return "video/x-msvideo"
	case "WEBP":
		return "image/webp"
	}
	return mime
}
