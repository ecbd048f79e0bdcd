package audit

import (
	"testing"

	"github.com/ocireg/ocireg/internal/storage"
)

func TestRecordAndListNewestFirst(t *testing.T) {
	idx, err := storage.OpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer idx.Close()

	l := NewLog(idx)
	l.Record(EventUserCreated, "admin", "alice", "")
	l.Record(EventUserDeleted, "admin", "alice", "cleanup")

	events, err := l.List(0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Type != EventUserDeleted {
		t.Fatalf("expected most recent event first, got %v", events[0].Type)
	}
	if events[1].Type != EventUserCreated {
		t.Fatalf("expected oldest event last, got %v", events[1].Type)
	}
}

func TestListRespectsLimit(t *testing.T) {
	idx, err := storage.OpenIndex(t.TempDir())
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	defer idx.Close()

	l := NewLog(idx)
	l.Record(EventUserCreated, "admin", "a", "")
	l.Record(EventUserCreated, "admin", "b", "")
	l.Record(EventUserCreated, "admin", "c", "")

	events, err := l.List(2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
}
