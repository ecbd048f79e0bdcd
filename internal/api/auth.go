package api

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/ocireg/ocireg/internal/users"
)

// Authenticator extracts and verifies a request's credentials.
type Authenticator interface {
	// Authenticate returns the authenticated username and whether
	// credentials were present and valid.
	Authenticate(r *http.Request) (string, bool)
}

// BasicAuth authenticates requests against a users.Store using HTTP
// Basic credentials.
type BasicAuth struct {
	store *users.Store
}

// NewBasicAuth creates a Basic-auth authenticator backed by store.
func NewBasicAuth(store *users.Store) *BasicAuth {
	return &BasicAuth{store: store}
}

// Authenticate parses the Authorization header and checks the supplied
// password against the stored bcrypt hash for that username.
func (a *BasicAuth) Authenticate(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	if !strings.HasPrefix(header, "Basic ") {
		return "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", false
	}

	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", false
	}

	u, err := a.store.Find(username)
	if err != nil {
		return "", false
	}
	if !u.CheckPassword(password) {
		return "", false
	}
	return username, true
}
