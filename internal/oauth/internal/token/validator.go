package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jamesprial/mcp-gateway/internal/oauth/oautherr"
)

// JWKSClient resolves a decoding key for a kid published at a jwks_uri.
// This local interface avoids importing the parent oauth package.
type JWKSClient interface {
	GetKey(ctx context.Context, jwksURI, kid string) (any, error)
}

// Provider supplies the issuer, audience and JWKS location a token is
// validated against. A provider with an empty Audience opts out of
// audience validation.
type Provider interface {
	JWKSURI() string
	Issuer() string
	Audience() string
}

// TokenClaims represents validated JWT claims from an access token.
type TokenClaims struct {
	Subject   string
	Issuer    string
	Audience  []string
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
	JTI       string
}

// allowedAlgorithms whitelists signing algorithms per OAuth 2.1 security
// best practices. Algorithm confusion attacks are prevented by explicitly
// validating the algorithm named in the token header against this set
// before the key lookup and signature check ever run.
var allowedAlgorithms = map[string]bool{
	"RS256": true,
	"RS384": true,
	"RS512": true,
	"ES256": true,
	"ES384": true,
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Validator validates OAuth 2.1 access tokens using JWT validation against
// a provider-supplied issuer, audience and JWKS source.
type Validator struct {
	jwksClient JWKSClient
	clockSkew  time.Duration
}

// NewValidator creates a new token validator. clockSkew is the leeway
// applied to exp/nbf checks; pass 0 for strict enforcement.
func NewValidator(jwksClient JWKSClient, clockSkew time.Duration) *Validator {
	return &Validator{jwksClient: jwksClient, clockSkew: clockSkew}
}

// ValidateToken validates an access token against provider and returns the
// parsed claims. Errors never leak parser or signature detail to callers;
// the caller is expected to surface a generic message and log err.
func (v *Validator) ValidateToken(ctx context.Context, tokenString string, provider Provider) (*TokenClaims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	unverified, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, oautherr.NewInvalidTokenError("ValidateToken", fmt.Errorf("failed to parse token: %w", err))
	}

	alg, ok := unverified.Header["alg"].(string)
	if !ok || alg == "" {
		return nil, oautherr.NewUnsupportedAlgorithmError("ValidateToken", "none")
	}
	if !allowedAlgorithms[alg] {
		return nil, oautherr.NewUnsupportedAlgorithmError("ValidateToken", alg)
	}

	kid, ok := unverified.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, oautherr.NewInvalidTokenError("ValidateToken", fmt.Errorf("missing kid in token header"))
	}

	key, err := v.jwksClient.GetKey(ctx, provider.JWKSURI(), kid)
	if err != nil {
		return nil, err
	}

	validated, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != alg {
			return nil, oautherr.NewUnsupportedAlgorithmError("ValidateToken", t.Method.Alg())
		}
		return key, nil
	}, jwt.WithLeeway(v.clockSkew), jwt.WithIssuer(provider.Issuer()))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, oautherr.NewTokenExpiredError("ValidateToken", err)
		}
		return nil, oautherr.NewInvalidSignatureError("ValidateToken", err)
	}
	if !validated.Valid {
		return nil, oautherr.NewInvalidTokenError("ValidateToken", fmt.Errorf("token is invalid"))
	}

	mapClaims, ok := validated.Claims.(jwt.MapClaims)
	if !ok {
		return nil, oautherr.NewInvalidTokenError("ValidateToken", fmt.Errorf("invalid claims type"))
	}

	claims, err := extractClaims(mapClaims)
	if err != nil {
		return nil, err
	}

	if provider.Audience() != "" && !containsAudience(claims.Audience, provider.Audience()) {
		return nil, oautherr.NewInvalidAudienceError("ValidateToken", provider.Audience(), claims.Audience)
	}

	return claims, nil
}

func extractClaims(mapClaims jwt.MapClaims) (*TokenClaims, error) {
	claims := &TokenClaims{}

	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, oautherr.NewMissingClaimError("extractClaims", "sub")
	}
	claims.Subject = sub

	iss, err := mapClaims.GetIssuer()
	if err != nil || iss == "" {
		return nil, oautherr.NewMissingClaimError("extractClaims", "iss")
	}
	claims.Issuer = iss

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, oautherr.NewMissingClaimError("extractClaims", "exp")
	}
	claims.ExpiresAt = exp.Time

	iat, err := mapClaims.GetIssuedAt()
	if err != nil || iat == nil {
		return nil, oautherr.NewMissingClaimError("extractClaims", "iat")
	}
	claims.IssuedAt = iat.Time

	if aud, err := mapClaims.GetAudience(); err == nil {
		claims.Audience = aud
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if jti, ok := mapClaims["jti"].(string); ok {
		claims.JTI = jti
	}

	return claims, nil
}

func containsAudience(audiences []string, want string) bool {
	for _, aud := range audiences {
		if aud == want {
			return true
		}
	}
	return false
}
