// Package discovery fans concurrent metadata fetches out to tool backends
// and tolerates partial failure: a backend that errors, times out, or
// returns malformed JSON is dropped from the result set rather than
// failing the whole request.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/jamesprial/mcp-gateway/internal/mcp/internal/toolname"
)

// ToolMetadata mirrors the document a tool backend publishes on GET. It is
// decoded generically here and re-typed by the mcp package's adapter so
// this package stays free of a dependency on the parent.
type ToolMetadata = map[string]any

// Discoverer fetches tool metadata from backends addressed by
// "http://<kebab-name>.<suffix>/".
type Discoverer struct {
	client *http.Client
	suffix string
	log    *slog.Logger
}

// New builds a Discoverer. suffix is the discovery domain suffix (for
// example "spin.internal") appended to each kebab-cased tool name.
func New(client *http.Client, suffix string, log *slog.Logger) *Discoverer {
	if log == nil {
		log = slog.Default()
	}
	return &Discoverer{client: client, suffix: suffix, log: log}
}

// BackendURL returns the base URL a tool's backend is expected to serve.
func (d *Discoverer) BackendURL(toolName string) string {
	return fmt.Sprintf("http://%s.%s/", toolname.Kebab(toolName), d.suffix)
}

// FetchOne retrieves a single tool's metadata document.
func (d *Discoverer) FetchOne(ctx context.Context, name string) (ToolMetadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.BackendURL(name), nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	var meta ToolMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return meta, nil
}

// FetchAll fans concurrent GETs out to every named backend, returning only
// the metadata that was successfully fetched, ordered to match names
// (submission order) regardless of completion order. If ctx is cancelled,
// FetchAll returns nil, discarding every result, completed ones included.
func (d *Discoverer) FetchAll(ctx context.Context, names []string) []ToolMetadata {
	if len(names) == 0 {
		return nil
	}

	type result struct {
		meta ToolMetadata
		err  error
	}

	results := make([]result, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			meta, err := d.FetchOne(ctx, name)
			results[i] = result{meta: meta, err: err}
		}(i, name)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil
	}

	out := make([]ToolMetadata, 0, len(names))
	for i, r := range results {
		if r.err != nil {
			d.log.Warn("tool discovery dropped backend", "tool", names[i], "error", r.err)
			continue
		}
		if r.meta != nil {
			out = append(out, r.meta)
		}
	}
	return out
}
