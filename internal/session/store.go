// internal/session/store.go
//
// The session store is the single source of truth for "who is logged in and
// with what module configuration". It is the only cross-screen mutable state
// in the console; screens mutate it exclusively through the operations below
// so the credential and the principal always change together.
//
// Three independently keyed values are persisted under <config-dir>/session/:
// the bearer token, the principal and the module configuration. They are
// written on login, rewritten on module changes and scrubbed together on
// logout. Opening the store rehydrates them before any network call so the
// UI can render logged-in state immediately, subject to invalidation by a
// later 401.

package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nexthr/console/internal/hr"
)

const (
	tokenFile     = "token"
	principalFile = "principal.json"
	modulesFile   = "modules.json"
)

// ErrEmptyCredential is returned when Complete is called without a token.
var ErrEmptyCredential = errors.New("session: credential must not be empty")

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	Principal     *hr.Principal
	Token         string
	Modules       hr.ModuleConfig
	Authenticated bool
	Pending       bool
	Err           string
}

// Store holds the in-memory session and mirrors it to disk. Command
// goroutines read the token while the update loop mutates state, so access
// is guarded.
type Store struct {
	mu sync.RWMutex

	dir       string
	log       zerolog.Logger
	principal *hr.Principal
	token     string
	modules   hr.ModuleConfig
	pending   bool
	errMsg    string
}

// Open creates the session directory if needed and hydrates any persisted
// session. A partially readable session (token without principal) is treated
// as logged out and scrubbed rather than surfaced half-built.
func Open(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: ensure session dir: %w", err)
	}
	s := &Store{dir: dir, log: log}
	s.hydrate()
	return s, nil
}

func (s *Store) hydrate() {
	token, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Msg("session token unreadable, starting logged out")
		}
		return
	}
	trimmed := strings.TrimSpace(string(token))
	if trimmed == "" {
		s.scrub()
		return
	}

	var principal hr.Principal
	if err := readJSON(filepath.Join(s.dir, principalFile), &principal); err != nil {
		s.log.Warn().Err(err).Msg("persisted principal unreadable, scrubbing session")
		s.scrub()
		return
	}

	var modules hr.ModuleConfig
	if err := readJSON(filepath.Join(s.dir, modulesFile), &modules); err != nil {
		// Module config is replaceable on next login; absence is tolerable.
		modules = nil
	}

	s.token = trimmed
	s.principal = &principal
	s.modules = modules
	s.log.Debug().Str("email", principal.Email).Msg("session rehydrated from disk")
}

// Begin marks an authentication attempt as in flight and clears any prior
// error. It never touches an existing credential.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = true
	s.errMsg = ""
}

// Complete installs a fresh session, replacing any previous one wholesale,
// and persists all three keys. The credential must be non-empty.
func (s *Store) Complete(p *hr.Principal, token string, modules hr.ModuleConfig) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyCredential
	}
	if p == nil {
		return errors.New("session: principal must not be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.errMsg = ""
	s.principal = p
	s.token = token
	s.modules = modules.Clone()

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	if err := writeJSON(filepath.Join(s.dir, principalFile), p); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.dir, modulesFile), s.modules); err != nil {
		return err
	}
	s.log.Info().Str("email", p.Email).Str("userType", string(p.UserType)).Msg("session established")
	return nil
}

// Fail records a human-readable authentication failure. Any valid existing
// session stays untouched; this only matters on the way in.
func (s *Store) Fail(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = false
	s.errMsg = reason
}

// End clears the session and erases the durable keys. Safe to call when
// already logged out; the files are scrubbed regardless.
func (s *Store) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = nil
	s.token = ""
	s.modules = nil
	s.pending = false
	s.errMsg = ""
	s.scrub()
	s.log.Info().Msg("session ended")
}

func (s *Store) scrub() {
	for _, name := range []string{tokenFile, principalFile, modulesFile} {
		_ = os.Remove(filepath.Join(s.dir, name))
	}
}

// UpdateModules replaces the module configuration and re-persists only that
// key. Used when an org admin reconfigures modules without re-login.
func (s *Store) UpdateModules(cfg hr.ModuleConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modules = cfg.Clone()
	return writeJSON(filepath.Join(s.dir, modulesFile), s.modules)
}

// Authenticated is true exactly when a non-empty credential is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token implements the gateway's credential source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Principal returns the current principal, nil when logged out.
func (s *Store) Principal() *hr.Principal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.principal
}

// Modules returns a copy of the current module configuration.
func (s *Store) Modules() hr.ModuleConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modules.Clone()
}

// Snapshot returns a consistent view for rendering.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Principal:     s.principal,
		Token:         s.token,
		Modules:       s.modules.Clone(),
		Authenticated: s.token != "",
		Pending:       s.pending,
		Err:           s.errMsg,
	}
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("session: marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("session: persist %s: %w", filepath.Base(path), err)
	}
	return nil
}
