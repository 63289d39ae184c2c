// Package dropzone implements a file intake pipeline: files arrive in
// batches from drop gestures or an explicit chooser, each file is
// validated independently, and accepted files accumulate in a working set
// that listeners observe through events.
//
// # Basic Usage
//
//	dz, err := dropzone.New(ctx, dropzone.Config{
//	    Accept:              "image/*",
//	    MaxFileSize:         5 * filevalidator.MB,
//	    AllowMultiple:       true,
//	    RetainAcrossBatches: true,
//	    GeneratePreviews:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	unsubscribe := dz.Subscribe(func(ev dropzone.Event) {
//	    switch ev.Type {
//	    case dropzone.EventChanged:
//	        render(ev.Files)
//	    case dropzone.EventRejected:
//	        for _, r := range ev.Rejected {
//	            log.Printf("%s: %s", r.Name(), r.Err.Message)
//	        }
//	    }
//	})
//	defer unsubscribe()
//
//	result, err := dz.Drop(ctx, candidates)
//
// # Intake Gate
//
// A batch is refused as a whole, with a *BatchError and an
// EventBatchRejected, when the dropzone is disabled or when a batch of more
// than one file arrives while AllowMultiple is false. Refused batches never
// reach validation.
//
// Hover feedback follows DragEnter, DragOver, DragLeave and Drop. DragLeave
// only ends hovering when the pointer moved outside the element subtree set
// with WithElement.
//
// # Retention
//
// Accepted files are appended to the working set when both AllowMultiple
// and RetainAcrossBatches are true, otherwise they replace it. Every change
// emits EventChanged with the full snapshot, followed by EventAdded or
// EventRemoved. Files are identified by pointer, so RemoveFile needs the
// *filevalidator.Accepted from the working set.
//
// # Concurrency
//
// Batches may be submitted from several goroutines. Working set updates
// are serialized and events are delivered in commit order. Under the
// replace policy a batch that completes after a newer batch has committed
// is discarded with ErrStaleBatch.
//
// # Configuration
//
// Config can be loaded from the environment with GetConfig
// (BEAVER_DROPZONE_ACCEPT, BEAVER_DROPZONE_MAX_FILE_SIZE, ...) or from a
// YAML file with LoadConfigFile.
package dropzone
