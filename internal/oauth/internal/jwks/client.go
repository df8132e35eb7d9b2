package jwks

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/oauth/oautherr"
)

// JWKSResponse is the document served at a provider's jwks_uri.
type JWKSResponse struct {
	Keys []JWK `json:"keys"`
}

// JWK is a single JSON Web Key as published in a JWKS document.
type JWK struct {
	KeyType   string `json:"kty"`
	Use       string `json:"use,omitempty"`
	KeyID     string `json:"kid"`
	Algorithm string `json:"alg,omitempty"`
	N         string `json:"n,omitempty"`
	E         string `json:"e,omitempty"`
	Curve     string `json:"crv,omitempty"`
	X         string `json:"x,omitempty"`
	Y         string `json:"y,omitempty"`
	K         string `json:"k,omitempty"`
}

// Client fetches JWKS documents from a known jwks_uri, caching the result.
type Client struct {
	httpClient *http.Client
	cache      *Cache
}

// NewClient builds a JWKS client with a cache of its own; caches are not
// shared between Clients.
func NewClient(httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, cache: NewCache()}
}

// GetKey resolves the decoding key for kid by fetching (or reusing the
// cached) JWKS document at jwksURI.
func (c *Client) GetKey(ctx context.Context, jwksURI, kid string) (any, error) {
	keys, err := c.fetchKeys(ctx, jwksURI)
	if err != nil {
		return nil, err
	}

	for _, jwk := range keys {
		if jwk.KeyID != kid {
			continue
		}
		return jwkToPublicKey(&jwk)
	}
	return nil, oautherr.NewKeyNotFoundError("GetKey", kid)
}

// fetchKeys returns the cached key set for jwksURI when fresh, otherwise
// fetches and caches a new one. A fetch failure never poisons the cache:
// the previous entry, if any, is left untouched.
func (c *Client) fetchKeys(ctx context.Context, jwksURI string) ([]JWK, error) {
	if jwksURI == "" || len(jwksURI) > maxURILength {
		return nil, oautherr.NewInvalidMetadataError("fetchKeys", jwksURI, fmt.Errorf("invalid jwks uri"))
	}

	if keys, ok := c.cache.Get(jwksURI); ok {
		return keys, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jwksURI, nil)
	if err != nil {
		return nil, oautherr.NewJWKSFetchError("fetchKeys", jwksURI, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, oautherr.NewJWKSFetchError("fetchKeys", jwksURI, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, oautherr.NewJWKSFetchError("fetchKeys", jwksURI,
			fmt.Errorf("jwks endpoint returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oautherr.NewJWKSFetchError("fetchKeys", jwksURI, err)
	}

	var parsed JWKSResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, oautherr.NewInvalidMetadataError("fetchKeys", jwksURI, err)
	}

	c.cache.Set(jwksURI, parsed.Keys)
	return parsed.Keys, nil
}

func jwkToPublicKey(jwk *JWK) (any, error) {
	switch jwk.KeyType {
	case "RSA":
		return jwkToRSAPublicKey(jwk)
	case "EC":
		return jwkToECDSAPublicKey(jwk)
	case "oct":
		return jwkToHMACSecret(jwk)
	default:
		return nil, fmt.Errorf("unsupported key type: %s", jwk.KeyType)
	}
}

func jwkToRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	if jwk.N == "" || jwk.E == "" {
		return nil, fmt.Errorf("missing RSA key parameters")
	}

	nBytes, err := base64URLDecode(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}
	eBytes, err := base64URLDecode(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)

	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

func jwkToHMACSecret(jwk *JWK) ([]byte, error) {
	if jwk.K == "" {
		return nil, fmt.Errorf("missing HMAC key material")
	}
	return base64URLDecode(jwk.K)
}

func jwkToECDSAPublicKey(jwk *JWK) (*ecdsa.PublicKey, error) {
	if jwk.X == "" || jwk.Y == "" || jwk.Curve == "" {
		return nil, fmt.Errorf("missing EC key parameters")
	}

	xBytes, err := base64URLDecode(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode x coordinate: %w", err)
	}
	yBytes, err := base64URLDecode(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode y coordinate: %w", err)
	}

	x := new(big.Int).SetBytes(xBytes)
	y := new(big.Int).SetBytes(yBytes)

	curve, err := getCurve(jwk.Curve)
	if err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
