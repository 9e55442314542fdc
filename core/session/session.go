// Package session owns the operator session: the single piece of
// process-wide mutable state in the console. The Store is the only
// writer; everything else reads copies.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/policy"
)

var (
	// ErrLoginFailed is a recoverable outcome: prior session state is
	// left untouched and the caller surfaces it to the operator.
	ErrLoginFailed = errors.New("login failed: invalid credentials or backend error")

	ErrNotAuthenticated = errors.New("not authenticated")
)

// Session is the client-held record of the authenticated identity.
type Session struct {
	SubjectID   string      `json:"subjectId"`
	Role        policy.Role `json:"role"`
	DisplayName string      `json:"displayName"`
	Credential  string      `json:"credential"`

	// StudentID is the derived secondary id, populated for student logins.
	StudentID string `json:"studentId,omitempty"`
}

func (s Session) Authenticated() bool {
	return s.Credential != "" && s.Role != "" && s.SubjectID != ""
}

// LoginResult is what an Authenticator reports on success.
type LoginResult struct {
	Credential  string
	Role        string
	SubjectID   string
	DisplayName string
	StudentID   string
}

// Authenticator performs the credential exchange with the backend.
// Implemented by the API gateway client.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, secret string) (LoginResult, error)

	// StudentIDForUser resolves the student record id for a user id,
	// for login responses that omit it.
	StudentIDForUser(ctx context.Context, userID string) (string, error)
}

// Store holds the current Session and persists it across restarts.
// All mutation goes through Login/Logout/Restore.
type Store struct {
	mu     sync.RWMutex
	sess   Session
	path   string
	logger core.Logger
}

func NewStore(conf *core.Config, logger core.Logger) *Store {
	return &Store{path: conf.SessionFile, logger: logger}
}

// Current returns a copy of the active session.
func (st *Store) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sess
}

// Credential returns the bearer credential to attach to outgoing requests,
// or "" when unauthenticated. Read at dispatch time, never cached, so a
// login/logout is visible to the very next request.
func (st *Store) Credential() string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sess.Credential
}

// Login exchanges credentials via auth and, on success, replaces the
// session and persists it. On failure the prior state is untouched.
func (st *Store) Login(ctx context.Context, auth Authenticator, identifier, secret string) error {
	res, err := auth.Authenticate(ctx, identifier, secret)
	if err != nil {
		st.logger.Warn("session: login rejected", err)
		return ErrLoginFailed
	}
	if res.Credential == "" || res.Role == "" || res.SubjectID == "" {
		return errors.New("invalid login response: missing key fields")
	}

	role, ok := policy.ParseRole(res.Role)
	if !ok {
		return errors.Errorf("unrecognized role %q", res.Role)
	}

	sess := Session{
		SubjectID:   res.SubjectID,
		Role:        role,
		DisplayName: res.DisplayName,
		Credential:  res.Credential,
		StudentID:   res.StudentID,
	}
	if sess.DisplayName == "" {
		sess.DisplayName = identifier
	}

	// student logins need the student record id for the "own records" screens
	if role == policy.RoleStudent && sess.StudentID == "" {
		sid, err := auth.StudentIDForUser(ctx, sess.SubjectID)
		if err != nil {
			st.logger.Warn("session: student record not found for this user", err)
		} else {
			sess.StudentID = sid
		}
	}

	st.mu.Lock()
	st.sess = sess
	err = st.persist(sess)
	st.mu.Unlock()
	if err != nil {
		st.logger.Error("session: persisting session", err)
	}
	return nil
}

// Logout is a hard reset: memory, persisted file and credential are all
// cleared. No network call is made.
func (st *Store) Logout() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sess = Session{}
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		st.logger.Error("session: removing session file", err)
	}
}

// Restore reconstructs the session from the persisted file at startup.
// An absent, incomplete or expired session leaves the store unauthenticated.
func (st *Store) Restore() {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if !os.IsNotExist(err) {
			st.logger.Warn("session: reading session file", err)
		}
		return
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		st.logger.Warn("session: corrupt session file, ignoring", err)
		return
	}
	if !sess.Authenticated() {
		return
	}
	if _, ok := policy.ParseRole(string(sess.Role)); !ok {
		return
	}
	if exp, ok := credentialExpiry(sess.Credential); ok && time.Now().After(exp) {
		st.logger.Info("session: stored credential expired, starting unauthenticated")
		return
	}

	st.mu.Lock()
	st.sess = sess
	st.mu.Unlock()
}

func (st *Store) persist(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session dir")
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(os.WriteFile(st.path, data, 0o600), "writing session file")
}

// credentialExpiry decodes the bearer token's exp claim without verifying
// the signature; the console has no server key and only uses the claim to
// avoid presenting a session it knows is stale.
func credentialExpiry(credential string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(credential, claims); err != nil {
		return time.Time{}, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(exp), 0), true
}
