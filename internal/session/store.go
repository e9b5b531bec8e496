// Package session owns the authentication token and role lifecycle.
// No other component reads or writes the persisted session; pages
// receive a Session value and an API client built from it.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rachitverma/careerlens/pkg/domain"
)

// ErrNoSession is returned when no usable session exists. Callers treat
// it as a terminal condition for the page: prompt for login, never retry.
var ErrNoSession = errors.New("no active session")

const sessionFile = "session.json"

// Store persists the session under a state directory
// (default ~/.careerlens).
type Store struct {
	dir string
}

// state is the on-disk session shape. ClientID identifies this install
// across sessions and survives logout.
type state struct {
	Token    string          `json:"token"`
	Role     domain.Role     `json:"role"`
	ClientID string          `json:"client_id,omitempty"`
	Identity domain.Identity `json:"identity,omitempty"`
}

// New creates a store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir resolves the state directory: $CAREERLENS_HOME if set,
// otherwise ~/.careerlens.
func DefaultDir() (string, error) {
	if dir := os.Getenv("CAREERLENS_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".careerlens"), nil
}

// Establish saves a new session with its display identity. Idempotent:
// establishing the same session twice is a no-op rewrite.
func (s *Store) Establish(sess domain.Session, id domain.Identity) error {
	if sess.Token == "" {
		return fmt.Errorf("establish session: empty token")
	}
	prev, _ := s.read() //nolint:errcheck // absent state is fine, start fresh
	st := state{
		Token:    sess.Token,
		Role:     sess.Role,
		ClientID: prev.ClientID,
		Identity: id,
	}
	if st.ClientID == "" {
		st.ClientID = uuid.NewString()
	}
	if st.Role == "" {
		st.Role = domain.RoleUser
	}
	return s.write(st)
}

// Current returns the active session. Precedence: CAREERLENS_TOKEN env
// var (role user unless the file matches), then the stored file. A token
// whose exp claim has passed counts as no session and clears the file —
// an expired token must never reach the network.
func (s *Store) Current() (domain.Session, error) {
	if tok := os.Getenv("CAREERLENS_TOKEN"); tok != "" {
		sess := domain.Session{Token: tok, Role: domain.RoleUser}
		if st, err := s.read(); err == nil && st.Token == tok {
			sess.Role = st.Role
		}
		return sess, nil
	}

	st, err := s.read()
	if err != nil || st.Token == "" {
		return domain.Session{}, ErrNoSession
	}
	if expired(st.Token) {
		s.Clear() //nolint:errcheck // best-effort cleanup on expiry
		return domain.Session{}, ErrNoSession
	}
	return domain.Session{Token: st.Token, Role: st.Role}, nil
}

// Identity returns the stored display identity. Zero value when absent.
func (s *Store) Identity() domain.Identity {
	st, err := s.read()
	if err != nil {
		return domain.Identity{}
	}
	return st.Identity
}

// Clear removes the stored session. Idempotent. The client id is kept so
// the install keeps its identity across logins.
func (s *Store) Clear() error {
	st, err := s.read()
	if err != nil {
		return nil
	}
	st.Token = ""
	st.Role = ""
	st.Identity = domain.Identity{}
	return s.write(st)
}

func (s *Store) path() string {
	return filepath.Join(s.dir, sessionFile)
}

func (s *Store) read() (state, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		return state{}, err
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return state{}, fmt.Errorf("parse session file: %w", err)
	}
	return st, nil
}

func (s *Store) write(st state) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path(), data, 0600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// expired reads the token's exp claim without verifying the signature —
// verification is the server's job, the client only avoids sending a
// token it already knows is dead. Unparseable tokens are not treated as
// expired; the server decides.
func expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
