// internal/services/auth_service.go
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
	"github.com/javajoker/storefront-backend/internal/utils"
)

// AuthService checks the single admin credential. With a persistent store a
// login creates a session document; otherwise, or when the session write
// fails, the login is carried by a signed token.
type AuthService struct {
	sessions     store.SessionStore
	persistent   bool
	cfg          config.AuthConfig
	clock        utils.Clock
	passwordHash string
}

type LoginRequest struct {
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required"`
}

// LoginResult carries exactly one of SessionID or Token.
type LoginResult struct {
	Username  string
	SessionID string
	Token     string
	ExpiresAt time.Time
}

type SessionCheck struct {
	models.SessionInfo
	// StaleSession is set when a session id was presented but matched no
	// active session.
	StaleSession bool `json:"-"`
}

func NewAuthService(sessions store.SessionStore, persistent bool, cfg config.AuthConfig, clock utils.Clock) (*AuthService, error) {
	if clock == nil {
		clock = utils.SystemClock{}
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AuthService{
		sessions:     sessions,
		persistent:   persistent,
		cfg:          cfg,
		clock:        clock,
		passwordHash: hash,
	}, nil
}

// SessionTTL is how long a login stays valid.
func (s *AuthService) SessionTTL() time.Duration {
	return s.cfg.SessionTTL
}

func (s *AuthService) checkCredentials(req *LoginRequest) bool {
	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.AdminUsername)) == 1
	passOK := utils.CheckPassword(s.passwordHash, req.Password)
	return userOK && passOK
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResult, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, models.ErrUnauthorized
	}
	if !s.checkCredentials(req) {
		logrus.WithField("username", req.Username).Warn("Failed admin login")
		return nil, models.ErrUnauthorized
	}

	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.SessionTTL)

	if s.persistent {
		session := &models.Session{
			SessionID: uuid.NewString(),
			Username:  req.Username,
			CreatedAt: now,
			ExpiresAt: expiresAt,
		}
		err := s.sessions.Create(ctx, session)
		if err == nil {
			logrus.WithField("username", req.Username).Info("Admin session created")
			return &LoginResult{
				Username:  req.Username,
				SessionID: session.SessionID,
				ExpiresAt: expiresAt,
			}, nil
		}
		logrus.WithError(err).Warn("Session store write failed, falling back to signed cookie")
	}

	token, err := utils.GenerateJWT(req.Username, now, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}
	return &LoginResult{
		Username:  req.Username,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Session resolves the login state from the sessionId and auth cookies.
func (s *AuthService) Session(ctx context.Context, sessionID, authToken string) SessionCheck {
	if sessionID != "" && s.persistent {
		session, err := s.sessions.FindActive(ctx, sessionID, s.clock.Now())
		if err == nil {
			return SessionCheck{SessionInfo: models.SessionInfo{
				IsAuthenticated: true,
				Username:        session.Username,
			}}
		}
		if !errors.Is(err, models.ErrSessionNotFound) {
			logrus.WithError(err).Warn("Session lookup failed, checking signed cookie")
		}
	}

	if authToken != "" {
		if claims, err := utils.ValidateJWT(authToken); err == nil {
			return SessionCheck{SessionInfo: models.SessionInfo{
				IsAuthenticated: true,
				Username:        claims.Username,
			}}
		}
	}

	return SessionCheck{StaleSession: sessionID != ""}
}

// Logout removes the session document when one exists.
func (s *AuthService) Logout(ctx context.Context, sessionID string) {
	if sessionID == "" || !s.persistent {
		return
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		logrus.WithError(err).Warn("Failed to delete session")
	}
}

// RunJanitor purges expired sessions every interval until ctx is done.
func (s *AuthService) RunJanitor(ctx context.Context, interval time.Duration) {
	if !s.persistent || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.sessions.PurgeExpired(ctx, s.clock.Now())
			if err != nil {
				logrus.WithError(err).Debug("Session purge failed")
				continue
			}
			if purged > 0 {
				logrus.WithField("purged", purged).Info("Purged expired sessions")
			}
		}
	}
}
