// Package paging keeps paginated listings inside the range the backend
// last reported.
package paging

import (
	"errors"
	"fmt"
	"sync"
)

// ErrOutOfRange is returned for a page the backend is known not to have.
var ErrOutOfRange = errors.New("page out of range")

const (
	DefaultSize = 10
	MaxSize     = 100
)

// Request is a page request as the console received it.
type Request struct {
	Page int
	Size int
}

// Normalize fills in defaults and caps the page size.
func (r Request) Normalize() Request {
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	return r
}

// CanNext reports whether a page after current exists.
func CanNext(current, totalPages int) bool {
	return current < totalPages-1
}

// CanPrev reports whether a page before current exists.
func CanPrev(current int) bool {
	return current > 0
}

type key struct {
	owner   string
	listing string
}

// Tracker remembers the last totalPages echoed for each owner's listing.
type Tracker struct {
	mu    sync.Mutex
	total map[key]int
}

func NewTracker() *Tracker {
	return &Tracker{total: make(map[key]int)}
}

// Check refuses negative pages and pages at or beyond the last known
// total. A listing never seen before only has the lower bound.
func (t *Tracker) Check(owner, listing string, req Request) error {
	if req.Page < 0 {
		return fmt.Errorf("%w: page %d", ErrOutOfRange, req.Page)
	}
	t.mu.Lock()
	total, seen := t.total[key{owner, listing}]
	t.mu.Unlock()
	if seen && req.Page > 0 && req.Page >= total {
		return fmt.Errorf("%w: page %d of %d", ErrOutOfRange, req.Page, total)
	}
	return nil
}

// Observe records the totalPages the backend returned for a listing.
func (t *Tracker) Observe(owner, listing string, totalPages int) {
	t.mu.Lock()
	t.total[key{owner, listing}] = totalPages
	t.mu.Unlock()
}

// Forget drops everything remembered for owner.
func (t *Tracker) Forget(owner string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.total {
		if k.owner == owner {
			delete(t.total, k)
		}
	}
}
