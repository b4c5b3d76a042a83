package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"nearzy/internal/core/telemetry"
	"nearzy/internal/features/auth/domain"

	"go.opentelemetry.io/otel/attribute"
)

// IdentityToolkitAdapter talks to the Identity Toolkit REST API.
type IdentityToolkitAdapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewIdentityToolkitAdapter creates an adapter for the given base URL and project API key.
func NewIdentityToolkitAdapter(baseURL, apiKey string, client *http.Client) *IdentityToolkitAdapter {
	return &IdentityToolkitAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  client,
	}
}

type passwordRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type verificationRequest struct {
	PhoneNumber    string `json:"phoneNumber"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

type phoneSignInRequest struct {
	SessionInfo string `json:"sessionInfo"`
	Code        string `json:"code"`
}

type oobRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

// accountResponse covers the fields shared by the sign-in and sign-up responses.
type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phoneNumber"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
}

func (r accountResponse) identity() *domain.Identity {
	return &domain.Identity{
		UID:          r.LocalID,
		Email:        r.Email,
		Phone:        r.PhoneNumber,
		DisplayName:  r.DisplayName,
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
	}
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword signs in an email account.
func (a *IdentityToolkitAdapter) SignInWithPassword(ctx context.Context, email, password string) (*domain.Identity, error) {
	var resp accountResponse
	if err := a.call(ctx, "signInWithPassword", passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp); err != nil {
		return nil, err
	}
	return resp.identity(), nil
}

// SignUp creates an email account and signs it in.
func (a *IdentityToolkitAdapter) SignUp(ctx context.Context, email, password string) (*domain.Identity, error) {
	var resp accountResponse
	if err := a.call(ctx, "signUp", passwordRequest{Email: email, Password: password, ReturnSecureToken: true}, &resp); err != nil {
		return nil, err
	}
	return resp.identity(), nil
}

// SendVerificationCode texts a one-time code to phone.
func (a *IdentityToolkitAdapter) SendVerificationCode(ctx context.Context, phone, recaptchaToken string) (string, error) {
	var resp struct {
		SessionInfo string `json:"sessionInfo"`
	}
	if err := a.call(ctx, "sendVerificationCode", verificationRequest{PhoneNumber: phone, RecaptchaToken: recaptchaToken}, &resp); err != nil {
		return "", err
	}
	return resp.SessionInfo, nil
}

// ConfirmPhone exchanges the handle and code for a signed-in identity.
func (a *IdentityToolkitAdapter) ConfirmPhone(ctx context.Context, handle, code string) (*domain.Identity, error) {
	var resp accountResponse
	if err := a.call(ctx, "signInWithPhoneNumber", phoneSignInRequest{SessionInfo: handle, Code: code}, &resp); err != nil {
		return nil, err
	}
	return resp.identity(), nil
}

// SendPasswordReset emails a password reset link.
func (a *IdentityToolkitAdapter) SendPasswordReset(ctx context.Context, email string) error {
	var resp struct {
		Email string `json:"email"`
	}
	return a.call(ctx, "sendOobCode", oobRequest{RequestType: "PASSWORD_RESET", Email: email}, &resp)
}

// call POSTs body to accounts:<method> and decodes the reply into out.
func (a *IdentityToolkitAdapter) call(ctx context.Context, method string, body, out interface{}) (err error) {
	ctx, span := telemetry.Start(ctx, "identity", method, attribute.String("identity.method", method))
	defer func() { telemetry.End(span, err) }()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", method, err)
	}

	endpoint := a.baseURL + "/accounts:" + method + "?" + url.Values{"key": {a.apiKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&e); decodeErr != nil || e.Error.Message == "" {
			return &domain.IdentityError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return &domain.IdentityError{Status: resp.StatusCode, Message: e.Error.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	return nil
}
