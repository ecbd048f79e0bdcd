package storage

import (
	"bytes"
	"os"
	"testing"

	"github.com/ocireg/ocireg/pkg/digest"
)

func TestUploadSequentialAppendAndFinish(t *testing.T) {
	root := t.TempDir()
	um, err := NewUploadManager(root)
	if err != nil {
		t.Fatalf("NewUploadManager: %v", err)
	}
	bs, err := NewBlobStore(root)
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}
	defer bs.Close()

	u, err := um.Start("library/nginx")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	chunk1 := []byte("hello ")
	chunk2 := []byte("world")
	content := append(append([]byte{}, chunk1...), chunk2...)
	d := digest.FromBytes(content)

	n, err := u.Append(0, bytes.NewReader(chunk1))
	if err != nil {
		t.Fatalf("Append chunk1: %v", err)
	}
	if n != int64(len(chunk1)) {
		t.Fatalf("got n=%d, want %d", n, len(chunk1))
	}

	if _, err := u.Append(0, bytes.NewReader(chunk2)); err != ErrNonSequentialRange {
		t.Fatalf("expected ErrNonSequentialRange on stale offset, got %v", err)
	}

	if _, err := u.Append(int64(len(chunk1)), bytes.NewReader(chunk2)); err != nil {
		t.Fatalf("Append chunk2: %v", err)
	}

	if err := um.Finish(u.ID, d, bs); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	if !bs.Exists("library/nginx", d) {
		t.Error("expected finished upload to be adopted into blob store")
	}
	if _, err := um.Get(u.ID); err != ErrUploadNotFound {
		t.Fatalf("expected session to be removed after Finish, got %v", err)
	}
}

func TestUploadFinishDigestMismatch(t *testing.T) {
	root := t.TempDir()
	um, err := NewUploadManager(root)
	if err != nil {
		t.Fatalf("NewUploadManager: %v", err)
	}
	bs, err := NewBlobStore(root)
	if err != nil {
		t.Fatalf("NewBlobStore: %v", err)
	}
	defer bs.Close()

	u, err := um.Start("library/nginx")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := u.Append(0, bytes.NewReader([]byte("actual content"))); err != nil {
		t.Fatalf("Append: %v", err)
	}

	wrong := digest.FromBytes([]byte("different content"))
	if err := um.Finish(u.ID, wrong, bs); err == nil {
		t.Fatal("expected Finish to fail on digest mismatch")
	}
	if bs.Exists("library/nginx", wrong) {
		t.Error("mismatched upload must not be adopted into blob store")
	}
	if _, err := um.Get(u.ID); err != ErrUploadNotFound {
		t.Fatalf("expected session to be removed even on failed Finish, got %v", err)
	}
}

func TestUploadCancelRemovesTempFile(t *testing.T) {
	root := t.TempDir()
	um, err := NewUploadManager(root)
	if err != nil {
		t.Fatalf("NewUploadManager: %v", err)
	}

	u, err := um.Start("library/nginx")
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := u.Append(0, bytes.NewReader([]byte("partial"))); err != nil {
		t.Fatalf("Append: %v", err)
	}

	if err := um.Cancel(u.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if _, err := um.Get(u.ID); err != ErrUploadNotFound {
		t.Fatalf("expected session removed after Cancel, got %v", err)
	}
	if _, err := os.Stat(um.path(u.ID)); !os.IsNotExist(err) {
		t.Error("expected temp file removed after Cancel")
	}
}

func TestUploadGetUnknownSession(t *testing.T) {
	um, err := NewUploadManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewUploadManager: %v", err)
	}
	if _, err := um.Get("nonexistent"); err != ErrUploadNotFound {
		t.Fatalf("expected ErrUploadNotFound, got %v", err)
	}
}
