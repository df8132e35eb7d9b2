package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchAllDropsFailingBackendsSilently(t *testing.T) {
	t.Parallel()

	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"weather","inputSchema":{"type":"object"}}`))
	}))
	defer ok.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	// Backend URLs are composed from the suffix, so route each backend host
	// to its test server.
	client := &http.Client{Transport: rewriteHost{hosts: map[string]string{
		"weather.example.invalid":      ok.Listener.Addr().String(),
		"missing-tool.example.invalid": bad.Listener.Addr().String(),
	}}}
	d := New(client, "example.invalid", nil)
	metaOK, err := d.FetchOne(context.Background(), "weather")
	if err != nil {
		t.Fatalf("FetchOne(ok) error = %v", err)
	}
	if metaOK["name"] != "weather" {
		t.Errorf("name = %v, want weather", metaOK["name"])
	}

	_, err = d.FetchOne(context.Background(), "missing-tool")
	if err == nil {
		t.Fatal("expected error fetching failing backend")
	}

	got := d.FetchAll(context.Background(), []string{"missing-tool", "weather"})
	if len(got) != 1 || got[0]["name"] != "weather" {
		t.Errorf("FetchAll() = %v, want only weather", got)
	}
}

// rewriteHost sends requests for the mapped hosts to the given addresses.
type rewriteHost struct{ hosts map[string]string }

func (rt rewriteHost) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	if addr, ok := rt.hosts[r.URL.Host]; ok {
		r.URL.Host = addr
	}
	return http.DefaultTransport.RoundTrip(r)
}

func TestFetchAllReturnsEmptyForNoNames(t *testing.T) {
	t.Parallel()

	d := New(http.DefaultClient, "example.invalid", nil)
	got := d.FetchAll(context.Background(), nil)
	if got != nil {
		t.Errorf("FetchAll(nil) = %v, want nil", got)
	}
}

func TestBackendURLKebabCasesName(t *testing.T) {
	t.Parallel()

	d := New(http.DefaultClient, "spin.internal", nil)
	got := d.BackendURL("get_weather")
	want := "http://get-weather.spin.internal/"
	if got != want {
		t.Errorf("BackendURL() = %q, want %q", got, want)
	}
}
