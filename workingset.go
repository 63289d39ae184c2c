package dropzone

import "github.com/gobeaver/dropzone/filevalidator"

// WorkingSet is the ordered list of accepted files kept across intakes.
// It is not safe for concurrent use; Dropzone serializes access.
type WorkingSet struct {
	files []*filevalidator.Accepted
}

// Len returns the number of files
func (w *WorkingSet) Len() int {
	return len(w.files)
}

// Snapshot returns a copy of the current files
func (w *WorkingSet) Snapshot() []*filevalidator.Accepted {
	out := make([]*filevalidator.Accepted, len(w.files))
	copy(out, w.files)
	return out
}

// Contains reports whether ref is in the set
func (w *WorkingSet) Contains(ref *filevalidator.Accepted) bool {
	for _, f := range w.files {
		if f == ref {
			return true
		}
	}
	return false
}

// Apply replaces the set with accepted, or appends accepted to it, and
// returns the new snapshot.
func (w *WorkingSet) Apply(accepted []*filevalidator.Accepted, replace bool) []*filevalidator.Accepted {
	if replace {
		w.files = make([]*filevalidator.Accepted, len(accepted))
		copy(w.files, accepted)
	} else {
		w.files = append(w.files, accepted...)
	}
	return w.Snapshot()
}

// Remove drops every entry identical to ref. It reports false, leaving
// the set untouched, when ref is not present.
func (w *WorkingSet) Remove(ref *filevalidator.Accepted) bool {
	kept := make([]*filevalidator.Accepted, 0, len(w.files))
	for _, f := range w.files {
		if f != ref {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(w.files) {
		return false
	}
	w.files = kept
	return true
}
