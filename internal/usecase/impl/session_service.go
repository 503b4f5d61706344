// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gigmarket/internal/domain/entity"
	domainerrors "gigmarket/internal/domain/errors"
	"gigmarket/internal/domain/repository"
	"gigmarket/internal/domain/service"
	"gigmarket/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// watchBuffer bounds each identity-watch channel. A full channel drains its
// oldest entry before the new id is queued, so a slow consumer always ends
// up seeing the latest identity.
const watchBuffer = 8

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	creds    repository.CredentialRepository
	gateway  service.AuthGateway
	validate *validator.Validate
	logger   *slog.Logger

	mu         sync.RWMutex
	user       *entity.UserProfile
	source     usecase.ProfileSource
	generation uint64
	watchers   []chan string

	bootstrapOnce sync.Once
	bootstrapped  atomic.Bool
}

// SessionServiceParams holds dependencies for the session service, injected by Fx.
type SessionServiceParams struct {
	fx.In

	Creds   repository.CredentialRepository
	Gateway service.AuthGateway
	Logger  *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		creds:    params.Creds,
		gateway:  params.Gateway,
		validate: validator.New(),
		logger:   params.Logger,
		source:   usecase.SourceNone,
	}
}

// Bootstrap restores a persisted session. It completes exactly once; the
// bootstrapped flag is set on every exit path.
func (srv *sessionService) Bootstrap(ctx context.Context) error {
	var err error
	srv.bootstrapOnce.Do(func() {
		defer srv.bootstrapped.Store(true)
		err = srv.bootstrap(ctx)
	})

	return err
}

func (srv *sessionService) bootstrap(ctx context.Context) error {
	// 1. Optimistically surface the cached profile so callers can render
	// without waiting on the network.
	cached, err := srv.creds.Profile()
	if err != nil {
		return errors.Wrap(err, "read cached profile")
	}
	if cached != nil {
		srv.mu.Lock()
		srv.user = cached
		srv.source = usecase.SourceCached
		srv.mu.Unlock()
	}

	// 2. No access token means no session; the stale cache, if any, stays
	// visible but tagged as cached.
	access, err := srv.creds.AccessToken()
	if err != nil {
		return errors.Wrap(err, "read access token")
	}
	if access == "" {
		srv.logger.Debug("Bootstrap ended with no persisted token")

		return nil
	}

	refresh, err := srv.creds.RefreshToken()
	if err != nil {
		return errors.Wrap(err, "read refresh token")
	}

	// 3. Skip a doomed "who am I" round-trip when the token is visibly
	// expired and a refresh token exists.
	if refresh != "" && tokenExpired(access) {
		if err := srv.refreshTokens(ctx, refresh); err != nil {
			srv.logger.Info("Bootstrap refresh failed, clearing session", slog.Any("error", err))
			srv.clearLocalSession()

			return nil
		}
	}

	profile, err := srv.gateway.CurrentUser(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNetworkUnavailable) {
			// Offline start: keep the optimistic cache rather than
			// punishing the user for a dead network.
			srv.logger.Warn("Bootstrap could not reach backend, keeping cached profile")

			return nil
		}
		if refresh == "" {
			srv.clearLocalSession()

			return nil
		}
		if err := srv.refreshTokens(ctx, refresh); err != nil {
			srv.logger.Info("Token refresh failed, clearing session", slog.Any("error", err))
			srv.clearLocalSession()

			return nil
		}
		profile, err = srv.gateway.CurrentUser(ctx)
		if err != nil {
			srv.logger.Info("Profile fetch failed after refresh, clearing session", slog.Any("error", err))
			srv.clearLocalSession()

			return nil
		}
	}

	// 4. Authoritative profile wins over the cache.
	if err := srv.creds.SetProfile(profile); err != nil {
		return errors.Wrap(err, "persist confirmed profile")
	}

	srv.mu.Lock()
	srv.user = profile
	srv.source = usecase.SourceConfirmed
	srv.mu.Unlock()
	srv.notify(profile.ID)
	srv.logger.Info("Session restored", slog.String("userId", profile.ID), slog.String("role", profile.Role.String()))

	return nil
}

// Bootstrapped reports whether Bootstrap has completed.
func (srv *sessionService) Bootstrapped() bool {
	return srv.bootstrapped.Load()
}

// Current returns a read-only snapshot of the session identity.
func (srv *sessionService) Current() usecase.Snapshot {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return usecase.Snapshot{User: srv.user.Clone(), Source: srv.source}
}

// Signup registers a new account and adopts its session.
func (srv *sessionService) Signup(ctx context.Context, input usecase.SignupInput) error {
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	session, err := srv.gateway.Signup(ctx, service.SignupInput{
		UserName: input.UserName,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role,
	})
	if err != nil {
		srv.logger.Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "signup")
	}

	return srv.adoptSession(session)
}

// Login exchanges credentials for a session.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) error {
	if err := srv.validate.Struct(input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	session, err := srv.gateway.Login(ctx, input.Email, input.Password)
	if err != nil {
		srv.logger.Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return errors.Wrap(err, "login")
	}

	return srv.adoptSession(session)
}

// adoptSession persists the token pair and profile and publishes the new identity.
func (srv *sessionService) adoptSession(session *service.AuthSession) error {
	if err := srv.creds.SetTokens(session.AccessToken, session.RefreshToken); err != nil {
		return errors.Wrap(err, "persist tokens")
	}
	if err := srv.creds.SetProfile(session.User); err != nil {
		return errors.Wrap(err, "persist profile")
	}

	srv.mu.Lock()
	srv.user = session.User
	srv.source = usecase.SourceConfirmed
	srv.generation++
	srv.mu.Unlock()
	srv.notify(session.User.ID)
	srv.logger.Info("Session established", slog.String("userId", session.User.ID))

	return nil
}

// Logout clears the session. The remote notify is best-effort; the local
// clear is unconditional so a user can always log out while offline.
func (srv *sessionService) Logout(ctx context.Context) error {
	if err := srv.gateway.Logout(ctx); err != nil {
		srv.logger.Warn("Remote logout failed, clearing locally anyway", slog.Any("error", err))
	}

	srv.clearLocalSession()
	srv.logger.Info("Logged out")

	return nil
}

// UpdateProfile sends a partial update and merges the confirmed fields into
// the cached profile. The cache is untouched on failure, and a response that
// lands after the identity changed is discarded.
func (srv *sessionService) UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) error {
	srv.mu.RLock()
	if srv.user == nil {
		srv.mu.RUnlock()

		return domainerrors.ErrUnauthorized.WrapMessage("no active session")
	}
	generation := srv.generation
	srv.mu.RUnlock()

	confirmed, err := srv.gateway.UpdateProfile(ctx, update)
	if err != nil {
		return errors.Wrap(err, "update profile")
	}

	srv.mu.Lock()
	if srv.generation != generation || srv.user == nil {
		srv.mu.Unlock()
		srv.logger.Debug("Discarding stale profile update response")

		return nil
	}
	merged := srv.user.Merge(profileToUpdate(confirmed, update))
	srv.user = merged
	srv.mu.Unlock()

	if err := srv.creds.SetProfile(merged); err != nil {
		return errors.Wrap(err, "persist merged profile")
	}

	return nil
}

// profileToUpdate folds the backend-confirmed values over the requested
// partial, preferring what the backend actually stored.
func profileToUpdate(confirmed *entity.UserProfile, requested *entity.ProfileUpdate) *entity.ProfileUpdate {
	if confirmed == nil {
		return requested
	}
	merged := &entity.ProfileUpdate{}
	if requested.UserName != nil {
		merged.UserName = &confirmed.UserName
	}
	if requested.Bio != nil {
		merged.Bio = &confirmed.Bio
	}
	if requested.Skills != nil {
		skills := confirmed.Skills
		merged.Skills = &skills
	}
	if requested.HourlyRate != nil {
		merged.HourlyRate = &confirmed.HourlyRate
	}
	if requested.Portfolio != nil {
		merged.Portfolio = &confirmed.Portfolio
	}
	if requested.ProfileImage != nil {
		merged.ProfileImage = &confirmed.ProfileImage
	}

	return merged
}

// RefreshUser force-fetches the authoritative profile and replaces the cache.
func (srv *sessionService) RefreshUser(ctx context.Context) error {
	srv.mu.RLock()
	if srv.user == nil {
		srv.mu.RUnlock()

		return domainerrors.ErrUnauthorized.WrapMessage("no active session")
	}
	generation := srv.generation
	srv.mu.RUnlock()

	profile, err := srv.gateway.CurrentUser(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh user")
	}

	srv.mu.Lock()
	if srv.generation != generation {
		srv.mu.Unlock()
		srv.logger.Debug("Discarding stale profile fetch response")

		return nil
	}
	srv.user = profile
	srv.source = usecase.SourceConfirmed
	srv.mu.Unlock()

	return errors.Wrap(srv.creds.SetProfile(profile), "persist refreshed profile")
}

// Watch returns a channel receiving the user id on every identity change.
func (srv *sessionService) Watch() <-chan string {
	ch := make(chan string, watchBuffer)
	srv.mu.Lock()
	srv.watchers = append(srv.watchers, ch)
	srv.mu.Unlock()

	return ch
}

// notify publishes an identity change to all watchers without blocking.
func (srv *sessionService) notify(userID string) {
	srv.mu.RLock()
	watchers := srv.watchers
	srv.mu.RUnlock()

	for _, ch := range watchers {
		select {
		case ch <- userID:
		default:
			// Drop the oldest queued id so the latest always lands.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- userID:
			default:
			}
		}
	}
}

// refreshTokens exchanges the refresh token for a new pair and persists it.
func (srv *sessionService) refreshTokens(ctx context.Context, refreshToken string) error {
	access, refresh, err := srv.gateway.Refresh(ctx, refreshToken)
	if err != nil {
		return errors.Wrap(err, "refresh tokens")
	}

	return errors.Wrap(srv.creds.SetTokens(access, refresh), "persist refreshed tokens")
}

// clearLocalSession removes all persisted credentials and the in-memory
// identity, and publishes the logout.
func (srv *sessionService) clearLocalSession() {
	if err := srv.creds.Clear(); err != nil {
		srv.logger.Error("Failed to clear credential store", slog.Any("error", err))
	}

	srv.mu.Lock()
	srv.user = nil
	srv.source = usecase.SourceNone
	srv.generation++
	srv.mu.Unlock()
	srv.notify("")
}

// tokenExpired inspects the access token's exp claim without verifying the
// signature; the client never holds the signing secret. Unparseable tokens
// report false and take the normal fetch-then-refresh path.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
