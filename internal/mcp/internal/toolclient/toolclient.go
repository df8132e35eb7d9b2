// Package toolclient invokes a tool backend and normalizes its response
// into the protocol's content envelope, distinguishing transport failure
// (a gateway-level problem) from a backend reporting tool-level failure
// (a successful call whose result carries isError).
package toolclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jamesprial/mcp-gateway/internal/mcp/internal/toolname"
)

// ToolResponse mirrors the content envelope a tool backend returns.
type ToolResponse struct {
	Content           []Content `json:"content"`
	StructuredContent any       `json:"structuredContent,omitempty"`
	IsError           bool      `json:"isError,omitempty"`
}

// Content is one item of a tool response's content list.
type Content struct {
	Type        string         `json:"type"`
	Text        string         `json:"text,omitempty"`
	Data        string         `json:"data,omitempty"`
	MimeType    string         `json:"mimeType,omitempty"`
	Resource    map[string]any `json:"resource,omitempty"`
	Annotations map[string]any `json:"annotations,omitempty"`
}

// Client calls tool backends over HTTP.
type Client struct {
	client *http.Client
	suffix string
}

// New builds a Client addressing backends under the given discovery suffix.
func New(httpClient *http.Client, suffix string) *Client {
	return &Client{client: httpClient, suffix: suffix}
}

// Call POSTs arguments to the backend resolved from toolName and returns
// the normalized Tool Response. A non-nil error means no usable response
// was obtained: the arguments could not be encoded, the request failed in
// transport, the body could not be read, or a 200 body could not be
// parsed. A non-200 response is reported as a successful *ToolResponse
// with IsError set.
func (c *Client) Call(ctx context.Context, toolName string, arguments map[string]any) (*ToolResponse, error) {
	body := arguments
	if body == nil {
		body = map[string]any{}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal arguments: %w", err)
	}

	url := fmt.Sprintf("http://%s.%s/", toolname.Kebab(toolName), c.suffix)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read backend response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &ToolResponse{
			IsError: true,
			Content: []Content{{
				Type: "text",
				Text: fmt.Sprintf("Tool execution failed (status %d): %s", resp.StatusCode, string(respBody)),
			}},
		}, nil
	}

	var tr ToolResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return nil, fmt.Errorf("parse tool response: %w", err)
	}
	return &tr, nil
}
