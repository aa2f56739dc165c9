// Package testserver runs the full HTTP surface over a real app for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganot/nirapod/internal/app"
	"github.com/ganot/nirapod/internal/config"
	"github.com/ganot/nirapod/internal/mcp"
	"github.com/ganot/nirapod/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Config config.Config
}

// Option adjusts the config before the app starts.
type Option func(*config.Config)

// WithDBPath stores data in the sqlite file at path.
func WithDBPath(path string) Option {
	return func(c *config.Config) { c.DB.Path = path }
}

// WithAlertDelay sets how long an SOS alert stays cancellable.
func WithAlertDelay(d time.Duration) Option {
	return func(c *config.Config) { c.Timing.AlertDelay = d }
}

// WithoutSeed starts with empty panels.
func WithoutSeed() Option {
	return func(c *config.Config) { c.Sample.Seed = false }
}

// New starts the app on a fresh sqlite file and serves REST, JSON-RPC, metrics
// and streamable MCP from one httptest server.
func New(t *testing.T, opts ...Option) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = filepath.Join(t.TempDir(), "nirapod.db")
	cfg.Timing.AlertDelay = time.Hour
	for _, opt := range opts {
		opt(&cfg)
	}

	a, err := app.New(context.Background(), cfg, nil, app.Options{})
	require.NoError(t, err)

	services := Services(a)
	mcpServer := mcp.NewServer(mcp.Config{Services: services, Metrics: a.Metrics})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	server := httptest.NewServer(transport.NewServer(mcp.NewHandler(services), transport.Options{
		Metrics: a.Metrics.Handler(),
		MCP:     mcpHandler,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a, Config: cfg}
}

// Services wires every panel of a into the tool handler.
func Services(a *app.App) mcp.Services {
	return mcp.Services{
		Contacts:      a.Contacts,
		Alerts:        a.Alerts,
		Notifications: a.Notifications,
		Rides:         a.Rides,
		Resources:     a.Resources,
		Guides:        a.Guides,
		Wellness:      a.Wellness,
		Incidents:     a.Incidents,
		Tutorials:     a.Tutorials,
		Profile:       a.Profile,
		Health:        a.Health,
		Activity:      a.Activity,
	}
}

// Connect opens an MCP client session against the server's /mcp endpoint.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "functional-test", Version: "1.0.0"}, nil)
	cs, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}
