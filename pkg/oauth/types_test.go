package oauth

import (
	"encoding/json"
	"testing"
)

func TestBearerTokenConstant(t *testing.T) {
	t.Parallel()

	if BearerToken != "Bearer" {
		t.Errorf("BearerToken = %q, want %q", BearerToken, "Bearer")
	}
}

func TestTokenTypeConstants(t *testing.T) {
	t.Parallel()

	if TokenTypeBearer != "Bearer" {
		t.Errorf("TokenTypeBearer = %q, want %q", TokenTypeBearer, "Bearer")
	}
}

func TestGrantTypeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		got      string
		want     string
		constant string
	}{
		{"GrantTypeAuthorizationCode", GrantTypeAuthorizationCode, "authorization_code", "GrantTypeAuthorizationCode"},
		{"GrantTypeRefreshToken", GrantTypeRefreshToken, "refresh_token", "GrantTypeRefreshToken"},
		{"GrantTypeClientCredentials", GrantTypeClientCredentials, "client_credentials", "GrantTypeClientCredentials"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.constant, tt.got, tt.want)
			}
		})
	}
}

func TestResponseTypeConstants(t *testing.T) {
	t.Parallel()

	if ResponseTypeCode != "code" {
		t.Errorf("ResponseTypeCode = %q, want %q", ResponseTypeCode, "code")
	}
}

func TestCodeChallengeMethodConstants(t *testing.T) {
	t.Parallel()

	if CodeChallengeMethodS256 != "S256" {
		t.Error("OAuth 2.1 requires S256 code challenge method")
	}
}

func TestHeaderConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		got      string
		want     string
		constant string
	}{
		{"HeaderAuthorization", HeaderAuthorization, "Authorization", "HeaderAuthorization"},
		{"HeaderWWWAuthenticate", HeaderWWWAuthenticate, "WWW-Authenticate", "HeaderWWWAuthenticate"},
		{"HeaderContentType", HeaderContentType, "Content-Type", "HeaderContentType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.constant, tt.got, tt.want)
			}
		})
	}
}

func TestContentTypeConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		got      string
		want     string
		constant string
	}{
		{"ContentTypeJSON", ContentTypeJSON, "application/json", "ContentTypeJSON"},
		{"ContentTypeFormURLEncoded", ContentTypeFormURLEncoded, "application/x-www-form-urlencoded", "ContentTypeFormURLEncoded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.constant, tt.got, tt.want)
			}
		})
	}
}

func TestUserContextJSONShape(t *testing.T) {
	t.Parallel()

	u := UserContext{ID: "user-1", Email: "user@example.com", Provider: "authkit"}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["id"] != "user-1" || decoded["email"] != "user@example.com" || decoded["provider"] != "authkit" {
		t.Errorf("UserContext JSON = %v", decoded)
	}
}

func TestUserContextOmitsEmptyEmail(t *testing.T) {
	t.Parallel()

	u := UserContext{ID: "user-1", Provider: "authkit"}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, present := decoded["email"]; present {
		t.Errorf("expected email to be omitted, got %v", decoded)
	}
}

func TestDiscoveryMetadataJSONShape(t *testing.T) {
	t.Parallel()

	m := DiscoveryMetadata{
		Issuer:                "https://example.authkit.app",
		AuthorizationEndpoint: "https://example.authkit.app/authorize",
		TokenEndpoint:         "https://example.authkit.app/oauth2/token",
		JWKSURI:               "https://example.authkit.app/oauth2/jwks",
	}
	b, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded["issuer"] != m.Issuer {
		t.Errorf("DiscoveryMetadata JSON issuer = %v", decoded["issuer"])
	}
	for _, optional := range []string{"userinfo_endpoint", "revocation_endpoint", "introspection_endpoint"} {
		if _, present := decoded[optional]; present {
			t.Errorf("expected %s to be omitted, got %v", optional, decoded)
		}
	}
}
