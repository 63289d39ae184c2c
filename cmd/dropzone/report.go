package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gobeaver/dropzone/filevalidator"
)

type fileReport struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	Type    string `json:"type"`
	Preview bool   `json:"preview,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

type batchReport struct {
	Accepted []fileReport `json:"accepted"`
	Rejected []fileReport `json:"rejected"`
}

func newBatchReport(result *filevalidator.Result) batchReport {
	report := batchReport{
		Accepted: make([]fileReport, 0, len(result.Accepted)),
		Rejected: make([]fileReport, 0, len(result.Rejected)),
	}
	for _, a := range result.Accepted {
		report.Accepted = append(report.Accepted, fileReport{
			Name:    a.Name(),
			Size:    a.Size(),
			Type:    a.MIMEType(),
			Preview: a.HasPreview(),
		})
	}
	for _, r := range result.Rejected {
		report.Rejected = append(report.Rejected, fileReport{
			Name:   r.Name(),
			Size:   r.Size(),
			Type:   r.MIMEType(),
			Reason: string(r.Err.Type),
			Error:  r.Err.Message,
		})
	}
	return report
}

func (r batchReport) write(w io.Writer, jsonOutput bool) error {
	if jsonOutput {
		return json.NewEncoder(w).Encode(r)
	}

	for _, f := range r.Accepted {
		preview := ""
		if f.Preview {
			preview = " [preview]"
		}
		fmt.Fprintf(w, "  ✓ %s (%s, %d bytes)%s\n", f.Name, f.Type, f.Size, preview)
	}
	for _, f := range r.Rejected {
		fmt.Fprintf(w, "  ✗ %s: %s\n", f.Name, f.Error)
	}
	_, err := fmt.Fprintf(w, "%d accepted, %d rejected\n", len(r.Accepted), len(r.Rejected))
	return err
}
