// Package session implements the authenticated-session store: who is
// currently shopping, derived from a persisted credential and resolved
// against the users service.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/model"
	"github.com/ecommerce-eks/storefront/internal/storage"
)

// State is the session lifecycle position.
type State int

const (
	StateUninitialized State = iota
	StateInitializing
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// UsersClient is the slice of the users service the store needs.
type UsersClient interface {
	Login(ctx context.Context, email, password string) (model.LoginResult, error)
	Register(ctx context.Context, reg model.Registration) (model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
}

const defaultInitTimeout = 5 * time.Second

// Option tweaks store construction.
type Option func(*Store)

// WithInitTimeout bounds the startup user fetch.
func WithInitTimeout(d time.Duration) Option {
	return func(s *Store) { s.initTimeout = d }
}

// Store owns the current authenticated identity. Login and register surface
// backend failures to the caller unmodified; startup resolution failures
// silently downgrade to anonymous and purge the credential so the failure is
// not retried on every start.
type Store struct {
	mu    sync.Mutex
	state State
	user  model.User

	creds       *Credentials
	users       UsersClient
	log         *zap.Logger
	initTimeout time.Duration
}

// New builds an uninitialized store over the given storage and users client.
func New(st storage.Store, users UsersClient, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		state:       StateUninitialized,
		creds:       NewCredentials(st),
		users:       users,
		log:         log,
		initTimeout: defaultInitTimeout,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Credentials exposes the persisted-credential handle, chiefly so API
// clients can use it as their token source.
func (s *Store) Credentials() *Credentials { return s.creds }

// Initialize rehydrates the session. With no stored credential the store
// lands anonymous without any backend call; with one, the user is fetched
// under the init timeout, and any failure invalidates the credential.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	s.state = StateInitializing
	s.mu.Unlock()

	cred, err := s.creds.Load()
	if err != nil {
		s.setAnonymous()
		return
	}
	s.logTokenExpiry(cred.Token)

	fctx, cancel := context.WithTimeout(ctx, s.initTimeout)
	defer cancel()

	user, err := s.users.Get(fctx, cred.UserID)
	if err != nil {
		// unresolvable credential is treated as invalid
		s.log.Warn("session restore failed, clearing credential", zap.Error(err))
		_ = s.creds.Clear()
		s.setAnonymous()
		return
	}
	s.setAuthenticated(user)
}

// Login authenticates against the users service, persists the credential and
// resolves the full user record. On failure the session is left unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (model.User, error) {
	res, err := s.users.Login(ctx, email, password)
	if err != nil {
		return model.User{}, err
	}
	if err := s.creds.Save(model.Credential{Token: res.Token, UserID: res.UserID}); err != nil {
		return model.User{}, err
	}
	user, err := s.users.Get(ctx, res.UserID)
	if err != nil {
		return model.User{}, fmt.Errorf("fetch user after login: %w", err)
	}
	s.setAuthenticated(user)
	s.log.Info("logged in", zap.Int64("userID", user.ID))
	return user, nil
}

// Register creates the account and then establishes a session with the
// just-registered email and password.
func (s *Store) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	if _, err := s.users.Register(ctx, reg); err != nil {
		return model.User{}, err
	}
	return s.Login(ctx, reg.Email, reg.Password)
}

// Logout erases the credential and drops to anonymous. Local-only: no
// backend call has to succeed for logout to complete.
func (s *Store) Logout() {
	_ = s.creds.Clear()
	s.setAnonymous()
	s.log.Info("logged out")
}

// Current returns the authenticated user, if any.
func (s *Store) Current() (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user, s.state == StateAuthenticated
}

// Authenticated reports whether a user is signed in.
func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// State reports the lifecycle position.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAnonymous
	s.user = model.User{}
}

func (s *Store) setAuthenticated(u model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAuthenticated
	s.user = u
}

// logTokenExpiry peeks at the bearer token's registered claims for
// diagnostics. The token stays opaque otherwise; validity is the server's
// call, so resolution is attempted regardless.
func (s *Store) logTokenExpiry(token string) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return
	}
	if claims.ExpiresAt != nil {
		s.log.Debug("stored token expiry", zap.Time("expiresAt", claims.ExpiresAt.Time))
	}
}
