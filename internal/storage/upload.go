package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ocireg/ocireg/pkg/digest"
)

// ErrUploadNotFound is returned when a session lookup targets an id with
// no matching in-flight upload.
var ErrUploadNotFound = errors.New("upload not found")

// ErrNonSequentialRange is returned by PATCH when the supplied offset
// does not equal the session's current bytes_written, i.e. the client is
// trying to write somewhere other than the end of the file.
var ErrNonSequentialRange = errors.New("non-sequential range")

// UploadManager tracks in-flight chunked blob upload sessions. Session
// records live only in memory; abandoned sessions leave their temp file
// on disk, matching the core's "no background GC of uploads" contract.
type UploadManager struct {
	root string

	mu       sync.Mutex
	sessions map[string]*Upload
}

// Upload is a single resumable upload session: an id, the repository it
// targets, how many bytes have been appended so far, and the backing
// temporary file.
type Upload struct {
	ID           string
	Repository   string
	BytesWritten int64
	StartedAt    time.Time

	mu   sync.Mutex
	file *os.File
}

// NewUploadManager creates an upload manager rooted at root/uploads.
func NewUploadManager(root string) (*UploadManager, error) {
	dir := filepath.Join(root, "uploads")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &UploadManager{
		root:     root,
		sessions: make(map[string]*Upload),
	}, nil
}

func (um *UploadManager) path(id string) string {
	return filepath.Join(um.root, "uploads", id)
}

// Start creates a fresh session for repository and opens its backing
// file.
func (um *UploadManager) Start(repository string) (*Upload, error) {
	id := uuid.NewString()

	f, err := os.Create(um.path(id))
	if err != nil {
		return nil, fmt.Errorf("creating upload file: %w", err)
	}

	u := &Upload{
		ID:         id,
		Repository: repository,
		StartedAt:  time.Now(),
		file:       f,
	}

	um.mu.Lock()
	um.sessions[id] = u
	um.mu.Unlock()

	return u, nil
}

// Get returns the session for id.
func (um *UploadManager) Get(id string) (*Upload, error) {
	um.mu.Lock()
	defer um.mu.Unlock()

	u, ok := um.sessions[id]
	if !ok {
		return nil, ErrUploadNotFound
	}
	return u, nil
}

// Append writes r to the end of the session's file. offset must equal
// the session's current BytesWritten; any other value returns
// ErrNonSequentialRange without consuming r.
func (u *Upload) Append(offset int64, r io.Reader) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if offset != u.BytesWritten {
		return 0, ErrNonSequentialRange
	}

	n, err := io.Copy(u.file, r)
	u.BytesWritten += n
	if err != nil {
		return n, fmt.Errorf("appending to upload: %w", err)
	}
	return n, nil
}

// Finish closes the session, verifies the complete file hashes to
// expectedDigest, and if it matches, hands the verified temp file off to
// bs under the session's repository. The session record is removed
// whether verification succeeds or fails, so the id cannot be appended
// to, finished or cancelled afterwards; on failure the temp file is left
// on disk under the uploads directory.
func (um *UploadManager) Finish(id string, expectedDigest digest.Digest, bs *BlobStore) error {
	um.mu.Lock()
	u, ok := um.sessions[id]
	if ok {
		delete(um.sessions, id)
	}
	um.mu.Unlock()
	if !ok {
		return ErrUploadNotFound
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.file.Sync(); err != nil {
		return fmt.Errorf("syncing upload: %w", err)
	}
	if _, err := u.file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("seeking upload: %w", err)
	}

	h := sha256.New()
	if _, err := io.Copy(h, u.file); err != nil {
		return fmt.Errorf("hashing upload: %w", err)
	}
	actual := digest.Digest("sha256:" + hex.EncodeToString(h.Sum(nil)))

	if err := u.file.Close(); err != nil {
		return fmt.Errorf("closing upload: %w", err)
	}

	if actual != expectedDigest {
		return fmt.Errorf("%w: expected %s, got %s", digest.ErrDigestMismatch, expectedDigest, actual)
	}

	return bs.AdoptFile(u.Repository, expectedDigest, um.path(id))
}

// Cancel discards a session and removes its temp file.
func (um *UploadManager) Cancel(id string) error {
	um.mu.Lock()
	u, ok := um.sessions[id]
	if ok {
		delete(um.sessions, id)
	}
	um.mu.Unlock()
	if !ok {
		return ErrUploadNotFound
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.file.Close()
	return os.Remove(um.path(id))
}
