// Package filevalidator classifies candidate files against intake
// constraints and partitions batches into accepted and rejected files.
//
// # Quick Start
//
//	validator := filevalidator.NewBuilder().
//	    Accept("image/*").
//	    MaxSize(5 * filevalidator.MB).
//	    WithPreviews().
//	    Previewer(preview.New()).
//	    Build()
//
//	result := validator.ValidateFiles(ctx, candidates)
//	for _, r := range result.Rejected {
//	    log.Printf("%s rejected: %v", r.Name(), r.Err)
//	}
//
// # Rules
//
// Each candidate is checked in order and the first failing rule wins:
//
//  1. Accept pattern. "*" matches everything, "image/*" compares the major
//     type, and any other pattern is matched as a substring of the MIME type.
//  2. Size. A file exactly at MaxFileSize is accepted.
//  3. Preview. When previews are enabled, image files are read into a data
//     URI. A failed read rejects the file.
//
// # Candidates
//
// Candidates are immutable and compared by pointer:
//
//	c := filevalidator.FromBytes("a.png", "image/png", data)
//	c, err := filevalidator.FromPath("/tmp/report.pdf")
//	c := filevalidator.FromFileHeader(header)
//
// # Errors
//
// Rejections carry a *ValidationError:
//
//	if filevalidator.IsErrorOfType(r.Err, filevalidator.ErrorTypeSize) {
//	    // too big
//	}
package filevalidator
