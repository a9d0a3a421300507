package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"storefront/internal/core/errx"
	"storefront/internal/domain"
	"storefront/internal/logx"
)

var (
	// ErrNotLoggedIn is returned when an operation needs a token and none is set.
	ErrNotLoggedIn = errors.New("not logged in; run `storefront login` first")
	// ErrSessionExpired is returned when the backend rejects the stored token.
	ErrSessionExpired = errors.New("session expired; log in again")
	// ErrMissingCredentials is returned when username or password is blank.
	ErrMissingCredentials = errors.New("username and password are required")
)

// Service manages login state on top of the auth endpoints.
type Service struct {
	api   domain.AuthAPI
	creds domain.CredentialStore
	now   func() time.Time

	mu     sync.RWMutex
	user   *domain.User
	source string
}

// New returns an auth service. creds may be nil, in which case logins are
// not persisted.
func New(api domain.AuthAPI, creds domain.CredentialStore) *Service {
	return &Service{api: api, creds: creds, now: time.Now}
}

// Restore installs a token on the API client. A non-empty envToken wins over
// the credential store; a leading "Bearer " is stripped from either.
func (s *Service) Restore(passphrase, envToken string) (domain.Credentials, bool, error) {
	if tok := stripBearer(envToken); tok != "" {
		s.install(tok, domain.SourceEnv)
		return domain.Credentials{Token: tok, Source: domain.SourceEnv}, true, nil
	}
	if s.creds == nil {
		return domain.Credentials{}, false, nil
	}

	c, ok, err := s.creds.LoadCredentials(passphrase)
	if err != nil || !ok {
		return domain.Credentials{}, false, err
	}
	if c.ExpiresAt != nil && !s.now().Before(*c.ExpiresAt) {
		logx.Debug().Time("expires_at", *c.ExpiresAt).Msg("stored token expired")
		return domain.Credentials{}, false, nil
	}
	c.Token = stripBearer(c.Token)
	s.install(c.Token, domain.SourceFile)
	return c, true, nil
}

// Login exchanges username and password for a token, persists it and caches
// the returned user.
func (s *Service) Login(ctx context.Context, passphrase, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, ErrMissingCredentials
	}

	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		return domain.User{}, err
	}
	if resp.Access == "" {
		return domain.User{}, errors.New("login response carried no access token")
	}
	s.install(resp.Access, domain.SourceFile)

	if s.creds != nil {
		c := domain.Credentials{
			Token:     resp.Access,
			Refresh:   resp.Refresh,
			Username:  username,
			Source:    domain.SourceFile,
			CreatedAt: s.now().UTC(),
		}
		if err := s.creds.SaveCredentials(passphrase, c); err != nil {
			return domain.User{}, fmt.Errorf("save credentials: %w", err)
		}
	}

	user := resp.User
	if user.ID == 0 {
		if user, err = s.api.CurrentUser(ctx); err != nil {
			return domain.User{}, err
		}
	}
	s.setUser(&user)
	return user, nil
}

// Register creates an account. It does not log in.
func (s *Service) Register(ctx context.Context, req domain.RegisterRequest) (domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	if req.Username == "" || req.Password == "" {
		return domain.User{}, ErrMissingCredentials
	}
	return s.api.Register(ctx, req)
}

// Logout tells the backend to drop the token and always clears local state,
// even when the remote call fails.
func (s *Service) Logout(ctx context.Context) error {
	var remoteErr error
	if s.api.Token() != "" {
		remoteErr = s.api.Logout(ctx)
		if remoteErr != nil && errx.IsUnauthorized(remoteErr) {
			remoteErr = nil
		}
	}

	s.api.SetToken("")
	s.mu.Lock()
	s.user, s.source = nil, ""
	s.mu.Unlock()

	if s.creds != nil {
		if err := s.creds.DeleteCredentials(); err != nil {
			return err
		}
	}
	return remoteErr
}

// Current returns the cached user, fetching it on first use.
func (s *Service) Current(ctx context.Context) (domain.User, error) {
	if u, ok := s.User(); ok {
		return u, nil
	}
	if s.api.Token() == "" {
		return domain.User{}, ErrNotLoggedIn
	}

	u, err := s.api.CurrentUser(ctx)
	if err != nil {
		if errx.IsUnauthorized(err) {
			return domain.User{}, fmt.Errorf("%w: %v", ErrSessionExpired, err)
		}
		return domain.User{}, err
	}
	s.setUser(&u)
	return u, nil
}

// User returns the cached user without a network call.
func (s *Service) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// LoggedIn reports whether a token is installed.
func (s *Service) LoggedIn() bool { return s.api.Token() != "" }

// Source reports where the installed token came from.
func (s *Service) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

func (s *Service) install(token, source string) {
	s.api.SetToken(token)
	s.mu.Lock()
	s.user, s.source = nil, source
	s.mu.Unlock()
}

func (s *Service) setUser(u *domain.User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

func stripBearer(tok string) string {
	tok = strings.TrimSpace(tok)
	if len(tok) > 7 && strings.EqualFold(tok[:7], "bearer ") {
		tok = strings.TrimSpace(tok[7:])
	}
	return tok
}
