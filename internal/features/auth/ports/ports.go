package ports

import (
	"context"

	"nearzy/internal/features/auth/domain"
)

// IdentityProvider is the external authentication service.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error)
	SignUp(ctx context.Context, email, password string) (*domain.Identity, error)
	// SendVerificationCode texts a code to phone and returns the confirmation handle.
	SendVerificationCode(ctx context.Context, phone, recaptchaToken string) (string, error)
	// ConfirmPhone completes a phone sign-in with the handle and the texted code.
	ConfirmPhone(ctx context.Context, handle, code string) (*domain.Identity, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// UserStore keeps the signed-in user of each client session.
type UserStore interface {
	Save(ctx context.Context, sessionID string, user *domain.User) error
	// Get returns nil, nil when nobody is signed in.
	Get(ctx context.Context, sessionID string) (*domain.User, error)
	Delete(ctx context.Context, sessionID string) error
}
