// Package toolname normalizes tool names for backend URL assembly.
// It has no dependencies on the rest of the mcp package tree so that both
// the discovery and toolclient packages can share it without an import
// cycle through their parent.
package toolname

import "strings"

// Kebab converts a tool name to kebab-case for composing a backend URL.
// Underscores become hyphens; client-facing names are never mutated by
// this function's caller, only the derived URL is.
func Kebab(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
