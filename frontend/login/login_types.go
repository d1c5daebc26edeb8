package login

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"
)

const (
	ProviderGoogle  = "google"
	ProviderService = "service"
)

var (
	ErrTokenRequired    = errors.New("missing google credential")
	ErrClientIDRequired = errors.New("google client id is not configured")
	ErrEmailNotVerified = errors.New("google account e-mail is not verified")
)

// Identity is what a verified Google ID token tells us about the user.
type Identity struct {
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
	Subject       string
}

// Verifier validates a Google Identity Services credential.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// GoogleVerifier checks signature, expiry and audience against Google's keys.
// idtoken skips the audience check for an empty audience, so a blank ClientID
// rejects every credential.
type GoogleVerifier struct {
	ClientID string
}

func (v GoogleVerifier) Verify(ctx context.Context, credential string) (Identity, error) {
	clientID := strings.TrimSpace(v.ClientID)
	if clientID == "" {
		return Identity{}, ErrClientIDRequired
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Identity{}, ErrTokenRequired
	}
	payload, err := idtoken.Validate(ctx, credential, clientID)
	if err != nil {
		return Identity{}, fmt.Errorf("validate id token: %w", err)
	}
	id := Identity{
		Subject:       payload.Subject,
		Email:         claimString(payload.Claims, "email"),
		Name:          claimString(payload.Claims, "name"),
		Picture:       claimString(payload.Claims, "picture"),
		EmailVerified: claimBool(payload.Claims, "email_verified"),
	}
	return id, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func claimBool(claims map[string]interface{}, key string) bool {
	switch v := claims[key].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	}
	return false
}

// AccessDeniedMessage is shown when the e-mail domain is not allowed.
func AccessDeniedMessage(domain string) string {
	return "Access Denied: Only " + domain + " emails are authorized."
}

type ScreenData struct {
	GoogleClientID string
	AllowedDomain  string
	ServiceEmail   string
	ServiceEnabled bool
	ErrorMessage   string
}

type WelcomeData struct {
	Name        string
	Email       string
	Picture     string
	RedirectURL string
	DelayMillis int
}
