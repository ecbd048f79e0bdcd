package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ocireg/ocireg/internal/audit"
	"github.com/ocireg/ocireg/internal/authz"
	"github.com/ocireg/ocireg/internal/users"
)

// AdminHandler serves the /admin/users surface: user CRUD and permission
// grants, gated on the caller holding the derived admin privilege.
type AdminHandler struct {
	store *users.Store
	log   *audit.Log
}

// NewAdminHandler creates an admin handler backed by store, recording
// every mutation to log.
func NewAdminHandler(store *users.Store, log *audit.Log) *AdminHandler {
	return &AdminHandler{store: store, log: log}
}

type userView struct {
	Username    string             `json:"username"`
	Permissions []authz.Permission `json:"permissions"`
}

type createUserRequest struct {
	Username    string             `json:"username"`
	Password    string             `json:"password"`
	Permissions []authz.Permission `json:"permissions"`
}

// ServeHTTP dispatches /admin/users requests. caller is the
// already-authenticated, already-admin-checked username performing the
// request.
func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request, caller string) {
	path := strings.TrimPrefix(r.URL.Path, "/admin/users")

	switch {
	case path == "" || path == "/":
		switch r.Method {
		case http.MethodGet:
			h.listUsers(w)
		case http.MethodPost:
			h.createUser(w, r, caller)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	case strings.HasSuffix(path, "/permissions"):
		username := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/permissions")
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.grantPermission(w, r, caller, username)

	default:
		username := strings.TrimPrefix(path, "/")
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.deleteUser(w, caller, username)
	}
}

func (h *AdminHandler) listUsers(w http.ResponseWriter) {
	list := h.store.List()
	views := make([]userView, 0, len(list))
	for _, u := range list {
		views = append(views, userView{Username: u.Username, Permissions: u.Permissions})
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request, caller string) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.store.Insert(req.Username, req.Password, req.Permissions); err != nil {
		if err == users.ErrConflict {
			w.WriteHeader(http.StatusConflict)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Record(audit.EventUserCreated, caller, req.Username, "")
	w.WriteHeader(http.StatusCreated)
}

func (h *AdminHandler) deleteUser(w http.ResponseWriter, caller, username string) {
	if username == caller {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if err := h.store.Remove(username); err != nil {
		if err == users.ErrNotFound {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Record(audit.EventUserDeleted, caller, username, "")
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminHandler) grantPermission(w http.ResponseWriter, r *http.Request, caller, username string) {
	var perm authz.Permission
	if err := json.NewDecoder(r.Body).Decode(&perm); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if err := h.store.Grant(username, perm); err != nil {
		if err == users.ErrNotFound {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	h.log.Record(audit.EventPermissionGranted, caller, username, perm.Repository+":"+perm.Tag)
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
