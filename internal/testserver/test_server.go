// Package testserver runs a fully wired showcase service on httptest for
// end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/showcase/internal/app"
	"github.com/rpggio/showcase/internal/config"
	"github.com/rpggio/showcase/internal/domain/carousel"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
	Token  string
}

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

// IdleScheduler never fires, so autoplay changes state without advancing.
type IdleScheduler struct{}

func (IdleScheduler) AfterFunc(time.Duration, func()) carousel.Timer { return idleTimer{} }

// New starts a server over a seeded in-memory database. A non-empty token
// guards /mcp.
func New(t *testing.T, token string) *TestServer {
	t.Helper()
	return NewWithConfig(t, token, func(*config.Config) {})
}

// NewWithConfig is New with a hook to adjust the configuration first.
func NewWithConfig(t *testing.T, token string, adjust func(*config.Config)) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = ":memory:"
	cfg.Transport.MCPToken = token
	adjust(&cfg)

	a, err := app.New(context.Background(), cfg, nil, app.Overrides{Scheduler: IdleScheduler{}})
	require.NoError(t, err)

	server := httptest.NewServer(a.Handler())
	t.Cleanup(func() {
		server.Close()
		a.Close()
	})

	return &TestServer{Server: server, App: a, Token: token}
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: ts.Token}},
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)

	session, err := client.Connect(context.Background(), transport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	if b.token != "" {
		r = r.Clone(r.Context())
		r.Header.Set("Authorization", "Bearer "+b.token)
	}
	return http.DefaultTransport.RoundTrip(r)
}
