// Package proxy forwards authenticated requests to the downstream MCP
// gateway, injecting the verified user's identity into the initialize
// handshake on the way in and out.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jamesprial/mcp-gateway/pkg/oauth"
)

// Result is the response to hand back to the original client.
type Result struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// Proxy forwards a client request body to a fixed downstream MCP gateway
// URL, optionally injecting user context into the initialize handshake.
type Proxy struct {
	client     *http.Client
	gatewayURL string
}

// New builds a proxy targeting gatewayURL.
func New(client *http.Client, gatewayURL string) *Proxy {
	return &Proxy{client: client, gatewayURL: gatewayURL}
}

// Forward sends body to the downstream gateway. When user is non-nil and
// the request is an initialize call, params._authContext is injected
// before forwarding, and serverInfo.authInfo is injected into an
// initialize response before it is returned. An empty body is forwarded
// verbatim; a malformed non-empty body is a gateway error.
func (p *Proxy) Forward(ctx context.Context, method string, body []byte, traceID string, user *oauth.UserContext) (*Result, error) {
	forwardBody := body

	if len(body) > 0 {
		var request map[string]any
		if err := json.Unmarshal(body, &request); err != nil {
			return nil, fmt.Errorf("invalid JSON in request body: %w", err)
		}
		if user != nil && request["method"] == "initialize" {
			injectAuthContext(request, user)
			rewritten, err := json.Marshal(request)
			if err != nil {
				return nil, fmt.Errorf("re-encode request body: %w", err)
			}
			forwardBody = rewritten
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, p.gatewayURL, bytes.NewReader(forwardBody))
	if err != nil {
		return nil, fmt.Errorf("build downstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if traceID != "" {
		req.Header.Set("X-Trace-Id", traceID)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downstream request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read downstream response: %w", err)
	}

	if len(respBody) == 0 {
		return &Result{StatusCode: resp.StatusCode, Body: respBody}, nil
	}

	var response map[string]any
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("invalid JSON response from downstream gateway: %w", err)
	}

	if user != nil {
		injectAuthInfo(response, user)
	}

	rewritten, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("re-encode downstream response: %w", err)
	}

	return &Result{StatusCode: resp.StatusCode, Body: rewritten, ContentType: "application/json"}, nil
}

func injectAuthContext(request map[string]any, user *oauth.UserContext) {
	params, ok := request["params"].(map[string]any)
	if !ok {
		return
	}
	params["_authContext"] = authContextValue(user)
}

func injectAuthInfo(response map[string]any, user *oauth.UserContext) {
	result, ok := response["result"].(map[string]any)
	if !ok {
		return
	}
	serverInfo, ok := result["serverInfo"].(map[string]any)
	if !ok {
		return
	}
	serverInfo["authInfo"] = authContextValue(user)
}

func authContextValue(user *oauth.UserContext) map[string]any {
	return map[string]any{
		"authenticated_user": user.ID,
		"email":              user.Email,
		"provider":           user.Provider,
	}
}
