// Package users manages the registry's account file: bcrypt-hashed
// credentials plus the wildcard permission grants used by internal/authz.
package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ocireg/ocireg/internal/authz"
)

var (
	// ErrNotFound is returned when a lookup or mutation targets a username
	// that does not exist in the store.
	ErrNotFound = errors.New("user not found")
	// ErrConflict is returned when creating a user whose name is already
	// taken.
	ErrConflict = errors.New("user already exists")
)

// User is a single account: a username, a bcrypt password hash, and the
// permissions granted to it.
type User struct {
	Username     string             `json:"username"`
	PasswordHash string             `json:"password_hash"`
	Permissions  []authz.Permission `json:"permissions"`
}

// IsAdmin reports whether u holds the derived admin privilege: a
// permission granting delete on the universal repository/tag pattern.
func (u User) IsAdmin() bool {
	return authz.IsAdmin(u.Permissions)
}

// CheckPassword reports whether password matches u's stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Store is a JSON-file-backed, in-memory-cached collection of users. All
// methods are safe for concurrent use; mutating methods persist the full
// file atomically before returning.
type Store struct {
	path string

	mu    sync.RWMutex
	users map[string]User
}

// Load reads the user file at path. If the file does not exist yet it
// returns an empty store without creating the file; the file is first
// written by the next mutation.
func Load(path string) (*Store, error) {
	s := &Store{
		path:  path,
		users: make(map[string]User),
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user file: %w", err)
	}

	var doc userFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing user file: %w", err)
	}
	for _, u := range doc.Users {
		s.users[u.Username] = u
	}
	return s, nil
}

// userFile is the on-disk shape of the user store: { "users": [ ... ] }.
type userFile struct {
	Users []User `json:"users"`
}

// Find returns the user with the given username.
func (s *Store) Find(username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

// List returns every user in the store, sorted by username.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sortUsers(out)
	return out
}

// Insert creates a new user with a bcrypt hash of password. It returns
// ErrConflict if username is already taken.
func (s *Store) Insert(username, password string, perms []authz.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if perms == nil {
		perms = []authz.Permission{}
	}
	s.users[username] = User{
		Username:     username,
		PasswordHash: string(hash),
		Permissions:  perms,
	}
	return s.persistLocked()
}

// Remove deletes username from the store. It returns ErrNotFound if the
// user does not exist.
func (s *Store) Remove(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; !ok {
		return ErrNotFound
	}
	delete(s.users, username)
	return s.persistLocked()
}

// Grant appends perm to username's permission set, unless an identical
// permission is already present.
func (s *Store) Grant(username string, perm authz.Permission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	if authz.Contains(u.Permissions, perm) {
		return nil
	}
	u.Permissions = append(u.Permissions, perm)
	s.users[username] = u
	return s.persistLocked()
}

// persistLocked writes the full user set to disk atomically. Callers must
// hold s.mu.
func (s *Store) persistLocked() error {
	list := make([]User, 0, len(s.users))
	for _, u := range s.users {
		list = append(list, u)
	}
	sortUsers(list)

	data, err := json.MarshalIndent(userFile{Users: list}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling user file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating user file directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".users-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp user file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp user file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp user file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp user file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("renaming temp user file: %w", err)
	}
	return nil
}

func sortUsers(list []User) {
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j-1].Username > list[j].Username; j-- {
			list[j-1], list[j] = list[j], list[j-1]
		}
	}
}
