// Package audit records administrative mutations (user creation,
// deletion, permission grants) to a durable, newest-first event log.
package audit

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/ocireg/ocireg/internal/storage"
)

const prefixEvent = "ev:"

// EventType identifies what kind of administrative mutation occurred.
type EventType string

const (
	EventUserCreated       EventType = "user.created"
	EventUserDeleted       EventType = "user.deleted"
	EventPermissionGranted EventType = "permission.granted"
)

// Event is a single recorded administrative action.
type Event struct {
	ID      string    `json:"id"`
	Type    EventType `json:"type"`
	Time    time.Time `json:"time"`
	Actor   string    `json:"actor"`
	Target  string    `json:"target"`
	Details string    `json:"details,omitempty"`
}

// Log persists events using an Index's raw key-value space. It never
// participates in deciding whether a user or permission exists; it is
// read-only history for operators.
type Log struct {
	index *storage.Index
}

// NewLog creates an audit log backed by idx.
func NewLog(idx *storage.Index) *Log {
	return &Log{index: idx}
}

// reverseTimestamp encodes the current time so that lexicographic key
// order is newest-first.
func reverseTimestamp() string {
	return fmt.Sprintf("%019d", math.MaxInt64-time.Now().UnixNano())
}

// Record appends an event to the log. Errors are swallowed: a failure to
// record an audit entry must never cause the underlying admin mutation
// it describes to be rolled back or reported as failed.
func (l *Log) Record(typ EventType, actor, target, details string) {
	ev := Event{
		ID:      reverseTimestamp(),
		Type:    typ,
		Time:    time.Now(),
		Actor:   actor,
		Target:  target,
		Details: details,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	l.index.PutRaw(prefixEvent+ev.ID, data)
}

// List returns up to limit events (0 = no limit), newest first.
func (l *Log) List(limit int) ([]Event, error) {
	values, err := l.index.ScanPrefixOrdered(prefixEvent, limit)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(values))
	for _, v := range values {
		var ev Event
		if json.Unmarshal(v, &ev) != nil {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}
