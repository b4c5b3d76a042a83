package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nearzy/internal/core/logger"
	"nearzy/internal/features/auth/domain"
	"nearzy/internal/features/auth/ports"

	"go.uber.org/zap"
)

// ErrSessionEnded is returned for a token whose session signed out or expired.
var ErrSessionEnded = errors.New("session ended, please sign in again")

// AuthResult is a successful sign-in.
type AuthResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// AuthService signs shoppers in and out and verifies access tokens.
type AuthService struct {
	provider ports.IdentityProvider
	users    ports.UserStore
	tokens   *TokenIssuer
	sessions *Sessions
}

// NewAuthService creates a new AuthService. Every new session gets a
// listener that logs its auth-state changes.
func NewAuthService(provider ports.IdentityProvider, users ports.UserStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		provider: provider,
		users:    users,
		tokens:   tokens,
		sessions: NewSessions(watchAuthState),
	}
}

func watchAuthState(s *Session) {
	log := logger.Named("auth").With(zap.String("session_id", s.ID()))
	s.Subscribe(func(u *domain.User) {
		if u == nil {
			log.Info("Signed out")
			return
		}
		log.Info("Auth state changed",
			zap.String("uid", u.ID),
			zap.String("role", string(u.Role)),
		)
	})
}

// Sessions exposes the live session registry.
func (s *AuthService) Sessions() *Sessions {
	return s.sessions
}

// Login signs in with email and password.
func (s *AuthService) Login(ctx context.Context, sessionID, email, password string) (*AuthResult, error) {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	id, err := s.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, sessionID, id)
}

// SignUp creates an email account and signs it in.
func (s *AuthService) SignUp(ctx context.Context, sessionID, email, password string) (*AuthResult, error) {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, domain.ErrPasswordRequired
	}

	id, err := s.provider.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, sessionID, id)
}

// StartPhoneSignIn sends an OTP to a 10-digit number and returns the confirmation handle.
func (s *AuthService) StartPhoneSignIn(ctx context.Context, phone, recaptchaToken string) (string, error) {
	phone, err := domain.NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	return s.provider.SendVerificationCode(ctx, phone, recaptchaToken)
}

// ConfirmPhoneSignIn completes a phone sign-in with the OTP.
func (s *AuthService) ConfirmPhoneSignIn(ctx context.Context, sessionID, handle, code string) (*AuthResult, error) {
	code = strings.TrimSpace(code)
	if err := domain.ValidateOTP(code); err != nil {
		return nil, err
	}

	id, err := s.provider.ConfirmPhone(ctx, handle, code)
	if err != nil {
		return nil, err
	}
	return s.signIn(ctx, sessionID, id)
}

// ResetPassword asks the provider to email a reset link.
func (s *AuthService) ResetPassword(ctx context.Context, email string) error {
	email, err := domain.ValidateEmail(email)
	if err != nil {
		return err
	}
	return s.provider.SendPasswordReset(ctx, email)
}

// Logout signs the session out. Tokens issued for it stop verifying.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.users.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("service: failed to sign out: %w", err)
	}
	s.sessions.Release(sessionID)
	return nil
}

// Verify checks token and returns its live Session, signed in as the token's
// user. A session missing from the registry (idle expiry, restart) is
// restored from the user store.
func (s *AuthService) Verify(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	if session, ok := s.sessions.Get(claims.SessionID); ok {
		user := session.User()
		if user == nil || user.ID != claims.Subject {
			return nil, ErrSessionEnded
		}
		return session, nil
	}

	user, err := s.users.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load session user: %w", err)
	}
	if user == nil || user.ID != claims.Subject {
		return nil, ErrSessionEnded
	}

	session := s.sessions.Acquire(claims.SessionID)
	session.SetUser(user)
	return session, nil
}

func (s *AuthService) signIn(ctx context.Context, sessionID string, id *domain.Identity) (*AuthResult, error) {
	user := domain.NewUser(*id)

	if err := s.users.Save(ctx, sessionID, user); err != nil {
		return nil, fmt.Errorf("service: failed to save session user: %w", err)
	}
	s.sessions.Acquire(sessionID).SetUser(user)

	token, expires, err := s.tokens.Issue(user, sessionID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, AccessToken: token, ExpiresAt: expires}, nil
}
