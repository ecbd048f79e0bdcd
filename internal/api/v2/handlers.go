// Package v2 implements the OCI Distribution v1.1.1 HTTP surface:
// manifest, blob, upload-session, tag-listing, and catalog endpoints.
package v2

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/ocireg/ocireg/internal/authz"
	"github.com/ocireg/ocireg/internal/pathutil"
	"github.com/ocireg/ocireg/internal/storage"
	"github.com/ocireg/ocireg/pkg/digest"
	"github.com/ocireg/ocireg/pkg/ocispec"
)

// Identity is the authenticated caller a request is being evaluated for.
// withAuthz is the per-request permission check the handler invokes
// against it before touching storage.
type Identity struct {
	Username    string
	Permissions []authz.Permission
}

// Handler implements the OCI Distribution API v2 surface.
type Handler struct {
	blobs     *storage.BlobStore
	manifests *storage.ManifestStore
	uploads   *storage.UploadManager
	index     *storage.Index
	log       *slog.Logger
}

// NewHandler creates a v2 API handler over the given storage components.
func NewHandler(blobs *storage.BlobStore, manifests *storage.ManifestStore, uploads *storage.UploadManager, index *storage.Index, log *slog.Logger) *Handler {
	return &Handler{
		blobs:     blobs,
		manifests: manifests,
		uploads:   uploads,
		index:     index,
		log:       log,
	}
}

var (
	repoNamePattern  = `[a-z0-9]+(?:[._-][a-z0-9]+)*(?:/[a-z0-9]+(?:[._-][a-z0-9]+)*)*`
	tagPattern       = `[a-zA-Z0-9_][a-zA-Z0-9._-]{0,127}`
	digestPattern    = `sha256:[a-f0-9]{64}`
	referencePattern = fmt.Sprintf(`(%s|%s)`, tagPattern, digestPattern)

	manifestPathRe = regexp.MustCompile(fmt.Sprintf(`^/v2/(%s)/manifests/(%s)$`, repoNamePattern, referencePattern))
	blobPathRe     = regexp.MustCompile(fmt.Sprintf(`^/v2/(%s)/blobs/(%s)$`, repoNamePattern, digestPattern))
	uploadStartRe  = regexp.MustCompile(fmt.Sprintf(`^/v2/(%s)/blobs/uploads/?$`, repoNamePattern))
	uploadPathRe   = regexp.MustCompile(fmt.Sprintf(`^/v2/(%s)/blobs/uploads/([a-zA-Z0-9-]+)$`, repoNamePattern))
	tagsListRe     = regexp.MustCompile(fmt.Sprintf(`^/v2/(%s)/tags/list$`, repoNamePattern))
)

// ServeHTTP routes a request to its OCI endpoint handler. id is the
// already-authenticated caller; authorization against a specific
// (repository, tag, action) happens per-branch below.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request, id Identity) {
	path := r.URL.Path

	if path == "/v2/" || path == "/v2" {
		h.handleBase(w, r)
		return
	}

	if path == "/v2/_catalog" {
		h.handleCatalog(w, r)
		return
	}

	if m := manifestPathRe.FindStringSubmatch(path); m != nil {
		repo, ref := pathutil.Sanitize(m[1]), m[2]
		// A digest reference already matched digestPattern; sanitizing it
		// would drop the ':' that the stored digest-named file carries.
		if !strings.HasPrefix(ref, "sha256:") {
			ref = pathutil.Sanitize(ref)
		}
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			h.withAuthz(w, id, repo, ref, authz.ActionPull, func() { h.handleGetManifest(w, r, repo, ref) })
		case http.MethodPut:
			h.withAuthz(w, id, repo, ref, authz.ActionPush, func() { h.handlePutManifest(w, r, repo, ref) })
		case http.MethodDelete:
			h.withAuthz(w, id, repo, ref, authz.ActionDelete, func() { h.handleDeleteManifest(w, r, repo, ref) })
		default:
			h.errorResponse(w, http.StatusMethodNotAllowed, ocispec.ErrCodeUnsupported, "method not allowed")
		}
		return
	}

	if m := blobPathRe.FindStringSubmatch(path); m != nil {
		repo, dgstStr := pathutil.Sanitize(m[1]), m[2]
		switch r.Method {
		case http.MethodGet, http.MethodHead:
			h.withAuthz(w, id, repo, "*", authz.ActionPull, func() { h.handleGetBlob(w, r, repo, dgstStr) })
		case http.MethodDelete:
			h.withAuthz(w, id, repo, "*", authz.ActionDelete, func() { h.handleDeleteBlob(w, r, repo, dgstStr) })
		default:
			h.errorResponse(w, http.StatusMethodNotAllowed, ocispec.ErrCodeUnsupported, "method not allowed")
		}
		return
	}

	if m := uploadStartRe.FindStringSubmatch(path); m != nil {
		repo := pathutil.Sanitize(m[1])
		if r.Method != http.MethodPost {
			h.errorResponse(w, http.StatusMethodNotAllowed, ocispec.ErrCodeUnsupported, "method not allowed")
			return
		}
		h.withAuthz(w, id, repo, "*", authz.ActionPush, func() { h.handleStartUpload(w, r, repo) })
		return
	}

	if m := uploadPathRe.FindStringSubmatch(path); m != nil {
		repo, uploadID := pathutil.Sanitize(m[1]), m[2]
		switch r.Method {
		case http.MethodPatch:
			h.withAuthz(w, id, repo, "*", authz.ActionPush, func() { h.handleUploadChunk(w, r, repo, uploadID) })
		case http.MethodPut:
			h.withAuthz(w, id, repo, "*", authz.ActionPush, func() { h.handleFinishUpload(w, r, repo, uploadID) })
		case http.MethodGet:
			h.withAuthz(w, id, repo, "*", authz.ActionPush, func() { h.handleUploadStatus(w, r, repo, uploadID) })
		case http.MethodDelete:
			h.withAuthz(w, id, repo, "*", authz.ActionPush, func() { h.handleCancelUpload(w, r, repo, uploadID) })
		default:
			h.errorResponse(w, http.StatusMethodNotAllowed, ocispec.ErrCodeUnsupported, "method not allowed")
		}
		return
	}

	if m := tagsListRe.FindStringSubmatch(path); m != nil {
		repo := pathutil.Sanitize(m[1])
		if r.Method != http.MethodGet {
			h.errorResponse(w, http.StatusMethodNotAllowed, ocispec.ErrCodeUnsupported, "method not allowed")
			return
		}
		h.withAuthz(w, id, repo, "*", authz.ActionPull, func() { h.handleListTags(w, r, repo) })
		return
	}

	h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeNameUnknown, "not found")
}

// withAuthz runs fn only if id's permissions authorize action against
// (repository, tag); otherwise it writes a 403 Denied response.
func (h *Handler) withAuthz(w http.ResponseWriter, id Identity, repository, tag string, action authz.Action, fn func()) {
	if !authz.Authorize(id.Permissions, repository, tag, action) {
		h.errorResponse(w, http.StatusForbidden, ocispec.ErrCodeDenied, "insufficient permissions")
		return
	}
	fn()
}

func (h *Handler) handleBase(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Docker-Distribution-API-Version", "registry/2.0")
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	n := parseLimit(r.URL.Query())
	last := r.URL.Query().Get("last")

	repos, err := h.index.ListRepositories(last, n)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeUnknown, err.Error())
		return
	}
	if repos == nil {
		repos = []string{}
	}
	h.jsonResponse(w, http.StatusOK, ocispec.Catalog{Repositories: repos})
}

func (h *Handler) handleGetManifest(w http.ResponseWriter, r *http.Request, repo, ref string) {
	if r.Method == http.MethodHead {
		contentType, size, d, err := h.manifests.Stat(repo, ref)
		if err == storage.ErrManifestNotFound {
			h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeManifestUnknown, "manifest not found")
			return
		}
		if err != nil {
			h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeManifestInvalid, err.Error())
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Docker-Content-Digest", d.String())
		w.Header().Set("Docker-Distribution-API-Version", "registry/2.0")
		w.WriteHeader(http.StatusOK)
		return
	}

	body, contentType, d, err := h.manifests.Get(repo, ref)
	if err == storage.ErrManifestNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeManifestUnknown, "manifest not found")
		return
	}
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeManifestInvalid, err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Docker-Content-Digest", d.String())
	w.Header().Set("Docker-Distribution-API-Version", "registry/2.0")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func (h *Handler) handlePutManifest(w http.ResponseWriter, r *http.Request, repo, ref string) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64*1024*1024))
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeManifestInvalid, "failed to read body")
		return
	}

	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = detectManifestMediaType(body)
	}

	d, err := h.manifests.Put(repo, ref, contentType, body)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeManifestInvalid, err.Error())
		return
	}

	if err := h.index.NoteRepository(repo); err != nil {
		h.log.Warn("failed to update catalog index", "repository", repo, "error", err)
	}

	w.Header().Set("Docker-Content-Digest", d.String())
	w.Header().Set("Location", fmt.Sprintf("/v2/%s/manifests/%s", repo, ref))
	w.WriteHeader(http.StatusCreated)
}

// detectManifestMediaType inspects a manifest body's top-level mediaType
// field, falling back to the default OCI manifest media type. The core
// never validates the rest of the document's shape.
func detectManifestMediaType(body []byte) string {
	var probe struct {
		MediaType string `json:"mediaType"`
	}
	if json.Unmarshal(body, &probe) == nil && probe.MediaType != "" {
		return probe.MediaType
	}
	return ocispec.DefaultManifestMediaType
}

func (h *Handler) handleDeleteManifest(w http.ResponseWriter, r *http.Request, repo, ref string) {
	if err := h.manifests.Delete(repo, ref); err == storage.ErrManifestNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeManifestUnknown, "manifest not found")
		return
	} else if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeManifestInvalid, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleGetBlob(w http.ResponseWriter, r *http.Request, repo, dgstStr string) {
	d, err := digest.Parse(dgstStr)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, err.Error())
		return
	}

	if rangeHeader := r.Header.Get("Range"); rangeHeader != "" {
		h.handleRangeRequest(w, r, repo, d, rangeHeader)
		return
	}

	if r.Method == http.MethodHead {
		size, err := h.blobs.Size(repo, d)
		if err == storage.ErrBlobNotFound {
			h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUnknown, "blob not found")
			return
		}
		if err != nil {
			h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUnknown, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
		w.Header().Set("Docker-Content-Digest", d.String())
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusOK)
		return
	}

	reader, size, err := h.blobs.Get(repo, d)
	if err == storage.ErrBlobNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUnknown, "blob not found")
		return
	}
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUnknown, err.Error())
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("Docker-Content-Digest", d.String())
	w.Header().Set("Accept-Ranges", "bytes")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, reader)
}

func (h *Handler) handleRangeRequest(w http.ResponseWriter, r *http.Request, repo string, d digest.Digest, rangeHeader string) {
	if !strings.HasPrefix(rangeHeader, "bytes=") {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeUnsupported, "invalid range header")
		return
	}

	size, err := h.blobs.Size(repo, d)
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUnknown, "blob not found")
		return
	}

	parts := strings.SplitN(strings.TrimPrefix(rangeHeader, "bytes="), "-", 2)
	if len(parts) != 2 {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeUnsupported, "invalid range")
		return
	}

	var start, end int64
	switch {
	case parts[0] == "":
		suffix, _ := strconv.ParseInt(parts[1], 10, 64)
		start, end = size-suffix, size-1
	case parts[1] == "":
		start, _ = strconv.ParseInt(parts[0], 10, 64)
		end = size - 1
	default:
		start, _ = strconv.ParseInt(parts[0], 10, 64)
		end, _ = strconv.ParseInt(parts[1], 10, 64)
	}

	if start < 0 || end >= size || start > end {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	reader, err := h.blobs.GetRange(repo, d, start, end)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUnknown, err.Error())
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatInt(end-start+1, 10))
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, size))
	w.Header().Set("Docker-Content-Digest", d.String())
	w.WriteHeader(http.StatusPartialContent)

	if r.Method == http.MethodHead {
		return
	}
	io.Copy(w, reader)
}

func (h *Handler) handleDeleteBlob(w http.ResponseWriter, r *http.Request, repo, dgstStr string) {
	d, err := digest.Parse(dgstStr)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, err.Error())
		return
	}

	if err := h.blobs.Delete(repo, d); err == storage.ErrBlobNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUnknown, "blob not found")
		return
	} else if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUnknown, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleStartUpload(w http.ResponseWriter, r *http.Request, repo string) {
	if mount := r.URL.Query().Get("mount"); mount != "" {
		from := pathutil.Sanitize(r.URL.Query().Get("from"))
		if h.tryMountBlob(w, repo, mount, from) {
			return
		}
	}

	if dgstStr := r.URL.Query().Get("digest"); dgstStr != "" {
		d, err := digest.Parse(dgstStr)
		if err != nil {
			h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, err.Error())
			return
		}

		contentLength, _ := strconv.ParseInt(r.Header.Get("Content-Length"), 10, 64)
		if err := h.blobs.Put(repo, d, r.Body, contentLength); err != nil {
			h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, err.Error())
			return
		}
		if err := h.index.NoteRepository(repo); err != nil {
			h.log.Warn("failed to update catalog index", "repository", repo, "error", err)
		}

		w.Header().Set("Location", fmt.Sprintf("/v2/%s/blobs/%s", repo, d))
		w.Header().Set("Docker-Content-Digest", d.String())
		w.WriteHeader(http.StatusCreated)
		return
	}

	upload, err := h.uploads.Start(repo)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUploadInvalid, err.Error())
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v2/%s/blobs/uploads/%s", repo, upload.ID))
	w.Header().Set("Docker-Upload-UUID", upload.ID)
	w.Header().Set("Range", "0-0")
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) tryMountBlob(w http.ResponseWriter, repo, dgstStr, from string) bool {
	d, err := digest.Parse(dgstStr)
	if err != nil {
		return false
	}
	if from == "" {
		return false
	}
	if err := h.blobs.Mount(repo, from, d); err != nil {
		return false
	}
	if err := h.index.NoteRepository(repo); err != nil {
		h.log.Warn("failed to update catalog index", "repository", repo, "error", err)
	}

	w.Header().Set("Location", fmt.Sprintf("/v2/%s/blobs/%s", repo, d))
	w.Header().Set("Docker-Content-Digest", d.String())
	w.WriteHeader(http.StatusCreated)
	return true
}

func (h *Handler) handleUploadChunk(w http.ResponseWriter, r *http.Request, repo, uploadID string) {
	upload, err := h.uploads.Get(uploadID)
	if err == storage.ErrUploadNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUploadUnknown, "upload not found")
		return
	}
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUploadInvalid, err.Error())
		return
	}

	offset := upload.BytesWritten
	if contentRange := r.Header.Get("Content-Range"); contentRange != "" {
		var start int64
		fmt.Sscanf(contentRange, "bytes %d-", &start)
		offset = start
	}

	if _, err := upload.Append(offset, r.Body); err != nil {
		if err == storage.ErrNonSequentialRange {
			w.Header().Set("Range", fmt.Sprintf("0-%d", upload.BytesWritten-1))
			w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
			return
		}
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUploadInvalid, err.Error())
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v2/%s/blobs/uploads/%s", repo, uploadID))
	w.Header().Set("Docker-Upload-UUID", uploadID)
	w.Header().Set("Range", fmt.Sprintf("0-%d", upload.BytesWritten-1))
	w.Header().Set("Content-Length", "0")
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) handleFinishUpload(w http.ResponseWriter, r *http.Request, repo, uploadID string) {
	dgstStr := r.URL.Query().Get("digest")
	if dgstStr == "" {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, "digest required")
		return
	}
	d, err := digest.Parse(dgstStr)
	if err != nil {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, err.Error())
		return
	}

	upload, err := h.uploads.Get(uploadID)
	if err == storage.ErrUploadNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUploadUnknown, "upload not found")
		return
	}
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUploadInvalid, err.Error())
		return
	}

	if r.ContentLength > 0 {
		if _, err := upload.Append(upload.BytesWritten, r.Body); err != nil {
			h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeBlobUploadInvalid, err.Error())
			return
		}
	}

	if err := h.uploads.Finish(uploadID, d, h.blobs); err != nil {
		h.errorResponse(w, http.StatusBadRequest, ocispec.ErrCodeDigestInvalid, err.Error())
		return
	}
	if err := h.index.NoteRepository(repo); err != nil {
		h.log.Warn("failed to update catalog index", "repository", repo, "error", err)
	}
	h.log.Info("blob upload finished", "repository", repo, "digest", d.ShortHex())

	w.Header().Set("Location", fmt.Sprintf("/v2/%s/blobs/%s", repo, d))
	w.Header().Set("Docker-Content-Digest", d.String())
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleUploadStatus(w http.ResponseWriter, r *http.Request, repo, uploadID string) {
	upload, err := h.uploads.Get(uploadID)
	if err == storage.ErrUploadNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUploadUnknown, "upload not found")
		return
	}
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUploadInvalid, err.Error())
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/v2/%s/blobs/uploads/%s", repo, uploadID))
	w.Header().Set("Docker-Upload-UUID", uploadID)
	w.Header().Set("Range", fmt.Sprintf("0-%d", upload.BytesWritten-1))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCancelUpload(w http.ResponseWriter, r *http.Request, repo, uploadID string) {
	if err := h.uploads.Cancel(uploadID); err == storage.ErrUploadNotFound {
		h.errorResponse(w, http.StatusNotFound, ocispec.ErrCodeBlobUploadUnknown, "upload not found")
		return
	} else if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeBlobUploadInvalid, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleListTags(w http.ResponseWriter, r *http.Request, repo string) {
	n := parseLimit(r.URL.Query())
	last := r.URL.Query().Get("last")

	tags, err := h.manifests.ListTags(repo, last, n)
	if err != nil {
		h.errorResponse(w, http.StatusInternalServerError, ocispec.ErrCodeNameUnknown, err.Error())
		return
	}

	if n > 0 && len(tags) == n {
		w.Header().Set("Link", fmt.Sprintf(`</v2/%s/tags/list?n=%d&last=%s>; rel="next"`, repo, n, tags[len(tags)-1]))
	}

	h.jsonResponse(w, http.StatusOK, ocispec.TagList{Name: repo, Tags: tags})
}

// parseLimit reads the "n" query parameter, distinguishing "absent" from
// "explicitly zero": an absent n means no limit (-1), while n=0 means the
// caller asked for zero entries and must get an empty list back rather
// than the unlimited set.
func parseLimit(q url.Values) int {
	if !q.Has("n") {
		return -1
	}
	n, err := strconv.Atoi(q.Get("n"))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, code, message string) {
	resp := ocispec.ErrorResponse{Errors: []ocispec.Error{{Code: code, Message: message}}}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
