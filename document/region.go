package document

import (
	"errors"
	"sync"
)

// ErrEmptyRegion is returned when an export is attempted before any preview
// markup has been rendered
var ErrEmptyRegion = errors.New("문서 요소를 찾을 수 없습니다")

// Region holds the live preview markup for one estimate. The export pipeline
// mutates the markup in place for print rendering, so mutation goes through
// an acquire-restore discipline: Acquire saves the current markup and locks
// the region, Release restores it no matter how the export ended.
type Region struct {
	mu     sync.Mutex
	markup string
}

// NewRegion creates an empty region
func NewRegion() *Region {
	return &Region{}
}

// SetMarkup replaces the region content. Called on every selection change.
func (r *Region) SetMarkup(markup string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.markup = markup
}

// Markup returns the current region content
func (r *Region) Markup() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markup
}

// Acquire locks the region for exclusive mutation and saves its current
// content. The caller must call Release on the returned snapshot, normally
// via defer, so the pre-export markup always comes back.
func (r *Region) Acquire() (*Snapshot, error) {
	r.mu.Lock()
	if r.markup == "" {
		r.mu.Unlock()
		return nil, ErrEmptyRegion
	}
	return &Snapshot{region: r, saved: r.markup}, nil
}

// Snapshot is an acquired region with its original content saved for restore
type Snapshot struct {
	region *Region
	saved  string
	done   bool
}

// Markup returns the region content as of the snapshot, including any
// mutations applied since Acquire
func (s *Snapshot) Markup() string {
	return s.region.markup
}

// Mutate rewrites the region content through fn. A failing fn leaves the
// content untouched.
func (s *Snapshot) Mutate(fn func(string) (string, error)) error {
	next, err := fn(s.region.markup)
	if err != nil {
		return err
	}
	s.region.markup = next
	return nil
}

// Release restores the saved markup and unlocks the region. Safe to call
// more than once.
func (s *Snapshot) Release() {
	if s.done {
		return
	}
	s.done = true
	s.region.markup = s.saved
	s.region.mu.Unlock()
}
