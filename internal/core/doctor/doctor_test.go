package doctor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/coderev/internal/core/config"
)

type staticCheck struct {
	name  string
	items []CheckItem
}

func (s staticCheck) Name() string { return s.name }

func (s staticCheck) Run(context.Context) Result {
	return Result{Name: s.name, Items: s.items}
}

func TestRunAllAndSummary(t *testing.T) {
	results := RunAll(context.Background(), []Check{
		staticCheck{name: "a", items: []CheckItem{{Label: "1", Status: StatusPass}, {Label: "2", Status: StatusWarn}}},
		staticCheck{name: "b", items: []CheckItem{{Label: "3", Status: StatusFail}}},
	})

	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)

	passed, warned, failed := Summary(results)
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, warned)
	assert.Equal(t, 1, failed)
}

func TestConfigCheck_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timeout = 30 * time.Second
	path := filepath.Join(t.TempDir(), "missing.yaml")
	ep := cfg.ResolveEndpoint("", func(string) string { return "" })

	result := NewConfigCheck(&cfg, path, ep).Run(context.Background())

	_, _, failed := Summary([]Result{result})
	assert.Equal(t, 0, failed)
	assert.Contains(t, result.Items[0].Detail, "not found, using defaults")
}

func TestConfigCheck_InvalidEndpoint(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Endpoint = "ftp://example.com"
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("endpoint: ftp://example.com\n"), 0o644))
	ep := cfg.ResolveEndpoint("", func(string) string { return "" })

	result := NewConfigCheck(&cfg, path, ep).Run(context.Background())

	var found bool
	for _, item := range result.Items {
		if item.Label == "endpoint" && item.Status == StatusFail {
			found = true
			assert.Contains(t, item.Detail, "http or https")
		}
	}
	assert.True(t, found, "expected a failing endpoint item, got %+v", result.Items)
}

func TestEndpointCheck_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}))
	defer srv.Close()

	ep := config.Endpoint{URL: srv.URL, Source: config.SourceFlag}
	result := NewEndpointCheck(ep, srv.Client()).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Contains(t, result.Items[0].Detail, "from flag")
	assert.Equal(t, StatusPass, result.Items[1].Status)
	assert.Equal(t, "responded 405", result.Items[1].Detail)
}

func TestEndpointCheck_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ep := config.Endpoint{URL: url, Source: config.SourceEnv}
	result := NewEndpointCheck(ep, nil).Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
}

func TestEnvironmentCheck(t *testing.T) {
	origClip, origTerm := clipboardUnsupported, stdoutIsTerminal
	t.Cleanup(func() {
		clipboardUnsupported = origClip
		stdoutIsTerminal = origTerm
	})

	clipboardUnsupported = func() bool { return true }
	stdoutIsTerminal = func() bool { return true }

	result := NewEnvironmentCheck().Run(context.Background())

	require.Len(t, result.Items, 2)
	assert.Equal(t, "terminal", result.Items[0].Label)
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, "clipboard", result.Items[1].Label)
	assert.Equal(t, StatusWarn, result.Items[1].Status)
	assert.Contains(t, result.Items[1].Detail, "no clipboard utility")
}
