package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/buitransport/internal/dependencies/clock"
	"github.com/mcoot/buitransport/internal/gateway"
	"github.com/mcoot/buitransport/internal/model"
	"github.com/mcoot/buitransport/internal/storage"
)

// ErrNoCredentialIssued is returned when a successful login response carries no token
var ErrNoCredentialIssued = errors.New("response carried no credential")

// Store is the single source of truth for who is logged in on one client,
// and the only writer of that client's stored credential.
type Store struct {
	creds  storage.Credentials
	api    *gateway.Client
	clock  clock.Clock
	logger *slog.Logger

	mu    sync.RWMutex
	state State
	cred  model.Credential
	// gen counts transitions made by login, logout and expiry. Initialize
	// only applies its result while gen is unchanged since it started.
	gen uint64
}

// New creates a Store in the Unknown state
func New(creds storage.Credentials, api *gateway.Client, clock clock.Clock, logger *slog.Logger) *Store {
	return &Store{
		creds:  creds,
		api:    api,
		clock:  clock,
		logger: logger,
	}
}

// Snapshot returns the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Initialize resolves the stored credential into Authenticated or Anonymous.
// It never fails: any problem with the credential clears it. A login, logout
// or expiry that lands while it runs takes precedence over its result.
func (s *Store) Initialize(ctx context.Context) State {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	cred, err := s.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, model.ErrCredentialNotFound) {
			s.logger.Warn("failed to read credential", slog.String("error", err.Error()))
		}
		return s.settleAnonymous(ctx, gen, nil)
	}
	if cred.IsZero() {
		return s.settleAnonymous(ctx, gen, &cred)
	}

	if exp, ok := tokenExpiry(cred.AccessToken); ok && clock.Expired(s.clock, exp) {
		s.logger.Debug("stored credential expired", slog.Time("expired_at", exp))
		return s.settleAnonymous(ctx, gen, &cred)
	}

	identity, err := s.authenticatedAPI(cred, nil).CurrentUser(ctx)
	if err != nil {
		s.logger.Warn("stored credential rejected", slog.String("error", err.Error()))
		return s.settleAnonymous(ctx, gen, &cred)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		s.logger.Debug("session changed during restore, keeping newer state")
		return s.snapshotLocked()
	}
	s.state = State{Status: Authenticated, Identity: identity}
	s.cred = cred
	s.logger.Debug("session restored", slog.String("user_id", string(identity.ID)))
	return s.snapshotLocked()
}

// settleAnonymous ends an Initialize that found no usable credential. When
// stale is set it is removed from storage, but only if nothing replaced it.
func (s *Store) settleAnonymous(ctx context.Context, gen uint64, stale *model.Credential) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		return s.snapshotLocked()
	}
	if stale != nil {
		s.deleteIfLocked(ctx, *stale)
	}
	s.clearLocked()
	return s.snapshotLocked()
}

// Login exchanges email and password for a credential. On success the credential is
// stored and the state becomes Authenticated together; on failure nothing changes.
func (s *Store) Login(ctx context.Context, email, password string) (*model.AuthResult, error) {
	result, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if !result.HasCredential() {
		return nil, &gateway.Error{Kind: gateway.ServerFailure, Err: ErrNoCredentialIssued}
	}
	if err := s.adopt(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Register creates an account with the same contract as Login. When the API
// issues no credential (the account must be verified first) the result is
// returned and the state is left unchanged.
func (s *Store) Register(ctx context.Context, fields model.RegistrationFields) (*model.AuthResult, error) {
	result, err := s.api.Register(ctx, fields)
	if err != nil {
		return nil, err
	}
	if !result.HasCredential() {
		s.logger.Debug("registration issued no credential", slog.String("email", fields.Email))
		return result, nil
	}
	if err := s.adopt(ctx, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Logout forgets the credential. It is local only and cannot fail.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Delete(ctx); err != nil {
		s.logger.Warn("failed to delete credential", slog.String("error", err.Error()))
	}
	s.gen++
	s.clearLocked()
}

// Client returns an API client for view calls. It carries the credential when
// Authenticated, and any 401 it receives logs the session out.
func (s *Store) Client() *gateway.Client {
	s.mu.RLock()
	cred, status := s.cred, s.state.Status
	s.mu.RUnlock()

	if status != Authenticated {
		return s.api
	}
	return s.authenticatedAPI(cred, func(ctx context.Context) { s.expire(ctx, cred) })
}

func (s *Store) authenticatedAPI(cred model.Credential, onUnauthorized func(context.Context)) *gateway.Client {
	exp, _ := tokenExpiry(cred.AccessToken)
	api := s.api.WithToken(cred.OAuth2Token(exp))
	if onUnauthorized != nil {
		api = api.OnUnauthorized(onUnauthorized)
	}
	return api
}

// expireTimeout bounds the credential delete triggered by a 401
const expireTimeout = 5 * time.Second

// expire handles a 401 for the rejected credential. A credential replaced by a
// later login, here or on another request for the same client, is left alone.
// The failed request's context may already be done, so the delete runs on its
// own deadline.
func (s *Store) expire(ctx context.Context, rejected model.Credential) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred != rejected {
		return
	}

	s.logger.Info("credential rejected, logging out")
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), expireTimeout)
	defer cancel()
	s.deleteIfLocked(ctx, rejected)
	s.gen++
	s.clearLocked()
}

// adopt stores the credential and records the identity as one step
func (s *Store) adopt(ctx context.Context, result *model.AuthResult) error {
	cred := result.Credential()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.creds.Save(ctx, cred); err != nil {
		return err
	}
	identity := *result.User
	s.state = State{Status: Authenticated, Identity: &identity}
	s.cred = cred
	s.gen++
	s.logger.Debug("session authenticated",
		slog.String("user_id", string(identity.ID)),
		slog.String("role", string(identity.Role)),
	)
	return nil
}

func (s *Store) deleteIfLocked(ctx context.Context, cred model.Credential) {
	deleted, err := s.creds.DeleteIf(ctx, cred)
	if err != nil {
		s.logger.Warn("failed to delete credential", slog.String("error", err.Error()))
		return
	}
	if !deleted {
		s.logger.Debug("stored credential already replaced, not deleting")
	}
}

func (s *Store) clearLocked() {
	s.state = State{Status: Anonymous}
	s.cred = model.Credential{}
}

func (s *Store) snapshotLocked() State {
	state := State{Status: s.state.Status}
	if s.state.Identity != nil {
		identity := *s.state.Identity
		state.Identity = &identity
	}
	return state
}
