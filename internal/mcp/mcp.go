// Package mcp implements the Model Context Protocol gateway: JSON-RPC
// method dispatch, concurrent tool discovery, schema-validated tool
// invocation, and response normalization.
package mcp

import (
	"context"

	"github.com/jamesprial/mcp-gateway/internal/jsonrpc"
)

// Handler processes MCP JSON-RPC requests. A nil response means the
// request was a notification and no body should be written.
type Handler interface {
	HandleRequest(ctx context.Context, req *jsonrpc.Request) *jsonrpc.Response
}

// SupportedProtocolVersionList are the protocol version tags this gateway
// accepts on the initialize handshake, oldest first. The last entry is the
// preferred default used when a client omits protocolVersion.
var SupportedProtocolVersionList = []string{"2024-11-05", "2025-06-18"}

// SupportedProtocolVersions is SupportedProtocolVersionList as a set, for
// membership checks.
var SupportedProtocolVersions = func() map[string]bool {
	m := make(map[string]bool, len(SupportedProtocolVersionList))
	for _, v := range SupportedProtocolVersionList {
		m[v] = true
	}
	return m
}()

// DefaultProtocolVersion is the protocol version assumed when a client
// omits protocolVersion on initialize, and the fallback value for the
// Mcp-Protocol-Version response header when no request or result supplies
// one. Fixed rather than derived from map iteration so identical inputs
// always yield identical outputs.
func DefaultProtocolVersion() string {
	return SupportedProtocolVersionList[len(SupportedProtocolVersionList)-1]
}

// ServerInfo identifies this gateway to connecting clients.
type ServerInfo struct {
	Name    string
	Version string
}
