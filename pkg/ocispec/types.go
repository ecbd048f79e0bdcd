// Package ocispec holds the wire types shared by the registry's HTTP surface:
// the OCI error envelope and the list responses for tags and the catalog.
package ocispec

// DefaultManifestMediaType is used when a stored manifest carries no
// mediaType field of its own.
const DefaultManifestMediaType = "application/vnd.oci.image.manifest.v1+json"

// ErrorResponse is the OCI Distribution error envelope.
type ErrorResponse struct {
	Errors []Error `json:"errors"`
}

// Error is a single OCI error entry.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

// Standard OCI Distribution error codes.
const (
	ErrCodeBlobUnknown         = "BLOB_UNKNOWN"
	ErrCodeBlobUploadInvalid   = "BLOB_UPLOAD_INVALID"
	ErrCodeBlobUploadUnknown   = "BLOB_UPLOAD_UNKNOWN"
	ErrCodeDigestInvalid       = "DIGEST_INVALID"
	ErrCodeManifestBlobUnknown = "MANIFEST_BLOB_UNKNOWN"
	ErrCodeManifestInvalid     = "MANIFEST_INVALID"
	ErrCodeManifestUnknown     = "MANIFEST_UNKNOWN"
	ErrCodeNameInvalid         = "NAME_INVALID"
	ErrCodeNameUnknown         = "NAME_UNKNOWN"
	ErrCodeSizeInvalid         = "SIZE_INVALID"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeDenied              = "DENIED"
	ErrCodeUnsupported         = "UNSUPPORTED"
	ErrCodeRangeInvalid        = "RANGE_INVALID"
	ErrCodeUnknown             = "UNKNOWN"
)

// TagList is the response body for GET /v2/<name>/tags/list.
type TagList struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Catalog is the response body for GET /v2/_catalog.
type Catalog struct {
	Repositories []string `json:"repositories"`
}
