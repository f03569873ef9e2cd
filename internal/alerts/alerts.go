// Package alerts keeps the inline message shown beside a console form.
// A form shows at most one alert at a time: success, warning, a general
// error or an error pinned to the destination field. Setting any of them
// replaces whatever was there, and success confirmations expire.
package alerts

import (
	"sync"
	"time"
)

// Slot is where on the form an alert is rendered.
type Slot string

const (
	SlotGeneral     Slot = "general"
	SlotDestination Slot = "destination"
	SlotWarning     Slot = "warning"
	SlotSuccess     Slot = "success"
)

// Kind classifies why an alert exists.
type Kind string

const (
	KindValidation Kind = "validation"
	KindBackend    Kind = "backend-rejection"
	KindNetwork    Kind = "network"
	KindWarning    Kind = "warning"
	KindSuccess    Kind = "success"
)

// Alert is a single dismissible message.
type Alert struct {
	Slot      Slot       `json:"slot"`
	Kind      Kind       `json:"kind"`
	Message   string     `json:"message"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// Board holds the active alert for one form.
type Board struct {
	mu         sync.Mutex
	current    *Alert
	successTTL time.Duration
	now        func() time.Time
}

// NewBoard creates a board whose success alerts clear after successTTL.
func NewBoard(successTTL time.Duration) *Board {
	return &Board{successTTL: successTTL, now: time.Now}
}

func (b *Board) set(a Alert) Alert {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = &a
	return a
}

// Success records a confirmation that expires after the board's TTL.
func (b *Board) Success(message string) Alert {
	expires := b.now().Add(b.successTTL)
	return b.set(Alert{Slot: SlotSuccess, Kind: KindSuccess, Message: message, ExpiresAt: &expires})
}

// Warn records a warning, for example a refused no-op submission.
func (b *Board) Warn(message string) Alert {
	return b.set(Alert{Slot: SlotWarning, Kind: KindWarning, Message: message})
}

// Fail records an error of the given kind in slot.
func (b *Board) Fail(slot Slot, kind Kind, message string) Alert {
	return b.set(Alert{Slot: slot, Kind: kind, Message: message})
}

// Clear dismisses the active alert.
func (b *Board) Clear() {
	b.mu.Lock()
	b.current = nil
	b.mu.Unlock()
}

// Current returns the active alert, dropping an expired confirmation.
func (b *Board) Current() (Alert, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.current == nil {
		return Alert{}, false
	}
	if b.current.ExpiresAt != nil && !b.now().Before(*b.current.ExpiresAt) {
		b.current = nil
		return Alert{}, false
	}
	return *b.current, true
}

// Registry hands out one board per owner and form.
type Registry struct {
	mu         sync.Mutex
	boards     map[string]map[string]*Board
	successTTL time.Duration
}

func NewRegistry(successTTL time.Duration) *Registry {
	return &Registry{boards: make(map[string]map[string]*Board), successTTL: successTTL}
}

// For returns the board of form for owner, creating it on first use.
func (r *Registry) For(owner, form string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()
	forms, ok := r.boards[owner]
	if !ok {
		forms = make(map[string]*Board)
		r.boards[owner] = forms
	}
	board, ok := forms[form]
	if !ok {
		board = NewBoard(r.successTTL)
		forms[form] = board
	}
	return board
}

// Forget drops every board owned by owner.
func (r *Registry) Forget(owner string) {
	r.mu.Lock()
	delete(r.boards, owner)
	r.mu.Unlock()
}
