package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ocireg/ocireg/internal/pathutil"
	"github.com/ocireg/ocireg/pkg/digest"
)

// ErrManifestNotFound is returned when a reference has no stored
// manifest under the requested repository.
var ErrManifestNotFound = errors.New("manifest not found")

// manifestCacheSize bounds the in-memory cache of recomputed manifest
// digests and content types, keyed by filesystem path.
const manifestCacheSize = 4096

// negativeMissTTL bounds how long a "not found" result is remembered
// before the next lookup re-checks the filesystem, so a manifest pushed
// shortly after a miss becomes visible promptly.
const negativeMissTTL = 5 * time.Second

// ManifestStore persists manifests as flat files under
// {root}/manifests/{repository}/{reference}. A manifest PUT under a tag
// also writes a parallel copy under its digest reference, so the same
// bytes are retrievable either way. The filesystem is authoritative; the
// digest/content-type cache only saves recomputing SHA-256 on repeated
// reads of the same file.
type ManifestStore struct {
	root string

	cache    *LRUCache
	negative *NegativeCache
}

// manifestCacheEntry is what ManifestStore caches per file path.
type manifestCacheEntry struct {
	digest      digest.Digest
	contentType string
	modTime     int64
}

// NewManifestStore creates a manifest store rooted at root.
func NewManifestStore(root string) (*ManifestStore, error) {
	if err := os.MkdirAll(filepath.Join(root, "manifests"), 0o755); err != nil {
		return nil, fmt.Errorf("creating manifests directory: %w", err)
	}
	return &ManifestStore{
		root:     root,
		cache:    NewLRUCache(manifestCacheSize),
		negative: NewNegativeCache(manifestCacheSize, negativeMissTTL),
	}, nil
}

func (ms *ManifestStore) dir(repository string) string {
	return filepath.Join(ms.root, "manifests", repository)
}

func (ms *ManifestStore) path(repository, reference string) string {
	return filepath.Join(ms.dir(repository), reference)
}

func contentTypePath(manifestPath string) string {
	return manifestPath + ".content-type"
}

// Put writes body verbatim under repository/reference, records
// contentType as a sidecar, and — when reference is a tag rather than a
// digest — writes a second identical copy under the digest reference so
// the manifest is retrievable either way. It returns the computed
// digest.
func (ms *ManifestStore) Put(repository, reference, contentType string, body []byte) (digest.Digest, error) {
	d := digest.FromBytes(body)

	if err := ms.writeOne(repository, reference, contentType, body, d); err != nil {
		return "", err
	}

	digestRef := d.String()
	if reference != digestRef {
		if err := ms.writeOne(repository, digestRef, contentType, body, d); err != nil {
			return "", err
		}
	}

	return d, nil
}

func (ms *ManifestStore) writeOne(repository, reference, contentType string, body []byte, d digest.Digest) error {
	dir := ms.dir(repository)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating manifest directory: %w", err)
	}

	path := ms.path(repository, reference)

	tmp, err := os.CreateTemp(dir, ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp manifest file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(body); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing manifest: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp manifest file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming manifest into place: %w", err)
	}

	if err := os.WriteFile(contentTypePath(path), []byte(contentType), 0o644); err != nil {
		return fmt.Errorf("writing manifest content-type sidecar: %w", err)
	}

	ms.cache.Delete(path)
	ms.negative.Clear(path)
	return nil
}

// Get reads the manifest body at repository/reference along with its
// recorded content type and recomputed digest.
func (ms *ManifestStore) Get(repository, reference string) ([]byte, string, digest.Digest, error) {
	path := ms.path(repository, reference)

	if ms.negative.IsNotFound(path) {
		return nil, "", "", ErrManifestNotFound
	}

	body, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			ms.negative.MarkNotFound(path)
			return nil, "", "", ErrManifestNotFound
		}
		return nil, "", "", err
	}

	contentType := ms.readContentType(path)
	d := digest.FromBytes(body)

	return body, contentType, d, nil
}

// Stat returns the recorded content type, size, and digest of a manifest
// without reading its full body into the response (used for HEAD).
func (ms *ManifestStore) Stat(repository, reference string) (string, int64, digest.Digest, error) {
	path := ms.path(repository, reference)

	if ms.negative.IsNotFound(path) {
		return "", 0, "", ErrManifestNotFound
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			ms.negative.MarkNotFound(path)
			return "", 0, "", ErrManifestNotFound
		}
		return "", 0, "", err
	}

	if entry, ok := ms.lookupCache(path, info.ModTime().UnixNano()); ok {
		return entry.contentType, info.Size(), entry.digest, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", 0, "", err
	}
	defer f.Close()

	d, _, err := digest.FromReader(f)
	if err != nil {
		return "", 0, "", err
	}

	contentType := ms.readContentType(path)
	ms.cache.Set(path, manifestCacheEntry{digest: d, contentType: contentType, modTime: info.ModTime().UnixNano()})

	return contentType, info.Size(), d, nil
}

func (ms *ManifestStore) lookupCache(path string, modTime int64) (manifestCacheEntry, bool) {
	v, ok := ms.cache.Get(path)
	if !ok {
		return manifestCacheEntry{}, false
	}
	entry := v.(manifestCacheEntry)
	if entry.modTime != modTime {
		return manifestCacheEntry{}, false
	}
	return entry, true
}

func (ms *ManifestStore) readContentType(manifestPath string) string {
	data, err := os.ReadFile(contentTypePath(manifestPath))
	if err != nil {
		return ocispecDefaultMediaType
	}
	ct := strings.TrimSpace(string(data))
	if ct == "" {
		return ocispecDefaultMediaType
	}
	return ct
}

// ocispecDefaultMediaType mirrors ocispec.DefaultManifestMediaType; kept
// as a local constant so this package does not import the HTTP-facing
// wire-types package.
const ocispecDefaultMediaType = "application/vnd.oci.image.manifest.v1+json"

// Delete removes the manifest file at repository/reference. It does not
// remove the paired digest-addressed copy created at PUT time: the spec
// only requires unlinking the referenced file.
func (ms *ManifestStore) Delete(repository, reference string) error {
	path := ms.path(repository, reference)
	ms.cache.Delete(path)

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrManifestNotFound
		}
		return err
	}
	os.Remove(contentTypePath(path))
	ms.negative.MarkNotFound(path)
	return nil
}

// ListTags enumerates tag references (file names under the repository's
// manifest directory that are not digest references) in lexicographic
// order, applying the last cursor and an n limit. n < 0 means no limit
// was requested; n == 0 truncates to an empty result, matching a client
// that explicitly asked for zero entries.
func (ms *ManifestStore) ListTags(repository, last string, n int) ([]string, error) {
	entries, err := os.ReadDir(ms.dir(repository))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	var tags []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(name, "sha256:") || strings.HasSuffix(name, ".content-type") {
			continue
		}
		tags = append(tags, name)
	}
	sort.Strings(tags)

	if last != "" {
		filtered := tags[:0:0]
		for _, t := range tags {
			if t > last {
				filtered = append(filtered, t)
			}
		}
		tags = filtered
	}
	if n >= 0 && len(tags) > n {
		tags = tags[:n]
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

// SanitizeReference applies pathutil.Sanitize to a client-supplied
// reference and rejects an empty result. The ':' of a "sha256:<hex>"
// digest string is dropped like any other disallowed byte.
func SanitizeReference(reference string) (string, error) {
	clean := pathutil.Sanitize(reference)
	if clean == "" {
		return "", fmt.Errorf("empty reference after sanitization")
	}
	return clean, nil
}
