// Package api wires authentication, authorization, and the admin surface
// around the OCI v2 handler.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	v2 "github.com/ocireg/ocireg/internal/api/v2"
	"github.com/ocireg/ocireg/internal/authz"
	"github.com/ocireg/ocireg/internal/users"
)

// Router is the registry's top-level HTTP handler.
type Router struct {
	v2Handler    *v2.Handler
	adminHandler *AdminHandler
	auth         Authenticator
	store        *users.Store
	log          *slog.Logger
	realm        string
}

// NewRouter creates the top-level router. realm is the host advertised in
// the WWW-Authenticate challenge, normally the configured listen address.
func NewRouter(v2Handler *v2.Handler, adminHandler *AdminHandler, auth Authenticator, store *users.Store, log *slog.Logger, realm string) *Router {
	return &Router{
		v2Handler:    v2Handler,
		adminHandler: adminHandler,
		auth:         auth,
		store:        store,
		log:          log,
		realm:        realm,
	}
}

// ServeHTTP implements http.Handler.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	start := time.Now()
	wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}
	wrapped.Header().Set("Docker-Distribution-API-Version", "registry/2.0")

	if req.Method == http.MethodOptions {
		rt.handleCORS(wrapped)
		rt.logRequest(req, wrapped.status, time.Since(start))
		return
	}

	if req.URL.Path == "/health" || req.URL.Path == "/healthz" {
		rt.handleHealth(wrapped)
		rt.logRequest(req, wrapped.status, time.Since(start))
		return
	}

	username, ok := rt.auth.Authenticate(req)
	if !ok {
		wrapped.Header().Set("WWW-Authenticate", fmt.Sprintf(`Basic realm=%q`, rt.realm))
		http.Error(wrapped, "Unauthorized", http.StatusUnauthorized)
		rt.logRequest(req, wrapped.status, time.Since(start))
		return
	}

	switch {
	case strings.HasPrefix(req.URL.Path, "/v2"):
		id := v2.Identity{Username: username, Permissions: rt.permissionsFor(username)}
		rt.v2Handler.ServeHTTP(wrapped, req, id)

	case strings.HasPrefix(req.URL.Path, "/admin/users"):
		if !authz.IsAdmin(rt.permissionsFor(username)) {
			http.Error(wrapped, "Forbidden", http.StatusForbidden)
			break
		}
		rt.adminHandler.ServeHTTP(wrapped, req, username)

	default:
		http.NotFound(wrapped, req)
	}

	rt.logRequest(req, wrapped.status, time.Since(start))
}

func (rt *Router) permissionsFor(username string) []authz.Permission {
	u, err := rt.store.Find(username)
	if err != nil {
		return nil
	}
	return u.Permissions
}

func (rt *Router) handleCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Docker-Content-Digest")
	w.Header().Set("Access-Control-Max-Age", "86400")
	w.WriteHeader(http.StatusNoContent)
}

func (rt *Router) handleHealth(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func (rt *Router) logRequest(req *http.Request, status int, duration time.Duration) {
	rt.log.Info("request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", status,
		"duration", duration,
	)
}

// responseWriter wraps http.ResponseWriter to capture the status code
// written, for access logging.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (w *responseWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
