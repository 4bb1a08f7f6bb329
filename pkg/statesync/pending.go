// Package statesync provides the client-state synchronization primitives the
// marketplace relies on: a pending-action log for optimistic mutations, an
// idempotent id-keyed collection for realtime merges, and a loader that
// bounds how long a fetch may hold the UI in a loading state.
package statesync

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// State of a pending action.
type State int

const (
	StateUnknown State = iota
	StatePending
	StateConfirmed
	StateRolledBack
)

var ErrNotPending = errors.New("action is not pending")

type pendingEntry struct {
	state  State
	value  interface{}
	realID string
}

// PendingLog tracks optimistic mutations. Each staged action holds a
// temporary id until the backend answers: a confirmation swaps in the server
// record under its real id, a rollback removes the action and hands back the
// staged value so callers can restore prior state. An action settles exactly
// once; it is never silently duplicated.
type PendingLog struct {
	mu      sync.Mutex
	entries map[string]*pendingEntry
}

func NewPendingLog() *PendingLog {
	return &PendingLog{entries: make(map[string]*pendingEntry)}
}

// Stage records an optimistic action and returns its temporary id.
func (p *PendingLog) Stage(value interface{}) string {
	tempID := "temp-" + uuid.New().String()

	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries[tempID] = &pendingEntry{state: StatePending, value: value}
	return tempID
}

// Confirm settles a pending action with the server's record and real id.
// Returns ErrNotPending if the temp id is unknown or already settled.
func (p *PendingLog) Confirm(tempID, realID string, serverValue interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[tempID]
	if !ok || e.state != StatePending {
		return ErrNotPending
	}
	e.state = StateConfirmed
	e.value = serverValue
	e.realID = realID
	return nil
}

// Rollback settles a pending action as failed and returns the staged value
// so the caller can restore whatever the optimistic mutation displaced.
func (p *PendingLog) Rollback(tempID string) (interface{}, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[tempID]
	if !ok || e.state != StatePending {
		return nil, ErrNotPending
	}
	staged := e.value
	e.state = StateRolledBack
	e.value = nil
	return staged, nil
}

// StateOf reports the current state of an action.
func (p *PendingLog) StateOf(tempID string) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[tempID]
	if !ok {
		return StateUnknown
	}
	return e.state
}

// RealID returns the server id a confirmed action settled under.
func (p *PendingLog) RealID(tempID string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	e, ok := p.entries[tempID]
	if !ok || e.state != StateConfirmed {
		return "", false
	}
	return e.realID, true
}

// Pending returns the number of unsettled actions.
func (p *PendingLog) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, e := range p.entries {
		if e.state == StatePending {
			n++
		}
	}
	return n
}
