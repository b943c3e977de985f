package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careerguide/portal/internal/core/domain"
)

// federatedClaims is the subset of an OpenID Connect ID token we read.
type federatedClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// FederatedTokenVerifier validates ID tokens issued by one external provider.
// The key is either a PEM encoded RSA public key (RS256) or a shared secret
// (HS256).
type FederatedTokenVerifier struct {
	provider string
	issuer   string
	audience string
	method   string
	key      any
	leeway   time.Duration
}

func NewFederatedTokenVerifier(provider, issuer, audience, key string) (*FederatedTokenVerifier, error) {
	if issuer == "" || audience == "" || key == "" {
		return nil, errors.New("federated verifier: issuer, audience and key are required")
	}
	v := &FederatedTokenVerifier{
		provider: provider,
		issuer:   issuer,
		audience: audience,
		leeway:   30 * time.Second,
	}
	if strings.Contains(key, "-----BEGIN") {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(key))
		if err != nil {
			return nil, fmt.Errorf("federated verifier: %w", err)
		}
		v.method, v.key = jwt.SigningMethodRS256.Alg(), pub
	} else {
		v.method, v.key = jwt.SigningMethodHS256.Alg(), []byte(key)
	}
	return v, nil
}

// Verify checks signature, issuer, audience and expiry, and requires a
// verified email address.
func (v *FederatedTokenVerifier) Verify(_ context.Context, provider, idToken string) (*domain.FederatedAssertion, error) {
	if provider == "" {
		provider = v.provider
	}
	if provider != v.provider {
		return nil, domain.NewRemoteAuthError(domain.ReasonInvalidToken, fmt.Errorf("no verifier for provider %q", provider))
	}
	if strings.TrimSpace(idToken) == "" {
		return nil, domain.NewRemoteAuthError(domain.ReasonPopupDismissed, nil)
	}

	var claims federatedClaims
	_, err := jwt.ParseWithClaims(idToken, &claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	},
		jwt.WithValidMethods([]string{v.method}),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return nil, domain.NewRemoteAuthError(domain.ReasonInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, domain.NewRemoteAuthError(domain.ReasonInvalidToken, errors.New("token has no subject"))
	}
	if !claims.EmailVerified {
		return nil, domain.NewRemoteAuthError(domain.ReasonInvalidToken, errors.New("email not verified by provider"))
	}

	return &domain.FederatedAssertion{
		Provider:    provider,
		IDToken:     idToken,
		Subject:     claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		PhotoURL:    claims.Picture,
	}, nil
}
