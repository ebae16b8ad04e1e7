// Package instagram is a typed client for the Instagram REST API. A
// Client is configured once with its application identity and scopes,
// obtains an access token through the OAuth flow or from the caller,
// and exposes one method per API operation. All methods validate the
// required scopes locally before any network traffic.
package instagram

import (
	"context"
	"net/http"
	"sync"
	"time"

	"instakit/pkg/apierror"
	"instakit/pkg/logger"
	"instakit/pkg/oauth"
)

// DefaultHTTPTimeout bounds a single API request when the caller does
// not supply its own http.Client.
const DefaultHTTPTimeout = 30 * time.Second

// Client is an authenticated Instagram API client. It is safe for
// concurrent use; the access token is the only mutable state.
type Client struct {
	cfg        ClientConfiguration
	httpClient *http.Client
	log        logger.Logger

	mu    sync.RWMutex
	token string
}

// NewClient creates a Client from a validated configuration. httpClient
// and log may be nil, in which case a default transport and a no-op
// logger are used.
func NewClient(cfg ClientConfiguration, httpClient *http.Client, log logger.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{cfg: cfg, httpClient: httpClient, log: log}, nil
}

// Configuration returns the client's immutable configuration.
func (c *Client) Configuration() ClientConfiguration {
	return c.cfg
}

// AccessToken returns the current token, or "" when unauthenticated.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetAccessToken installs a token obtained elsewhere, e.g. from a
// stored credential.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// IsAuthenticated reports whether the client holds an access token.
// It says nothing about whether the server still honors it.
func (c *Client) IsAuthenticated() bool {
	return c.AccessToken() != ""
}

// Logout discards the access token. The client keeps its configuration
// and can authenticate again.
func (c *Client) Logout() {
	c.SetAccessToken("")
	c.log.Info("logged out")
}

// AuthorizeURL returns the browser URL that starts the OAuth implicit
// flow for this client.
func (c *Client) AuthorizeURL() string {
	return oauth.AuthorizeURL(c.oauthConfig())
}

// Authenticate runs the OAuth implicit flow on the given surface and
// installs the resulting access token. It blocks until the flow
// reaches a terminal state or ctx is cancelled; cancellation counts as
// the user abandoning the flow.
func (c *Client) Authenticate(ctx context.Context, surface oauth.Surface) error {
	flow, err := oauth.NewFlow(c.oauthConfig())
	if err != nil {
		return err
	}
	c.log.DebugWithFields("starting authentication", map[string]interface{}{
		"client_id": c.cfg.ClientID,
		"scopes":    scopeStrings(c.cfg.Scopes),
	})
	token, err := flow.Run(ctx, surface)
	if err != nil {
		c.log.WithError(err).Warn("authentication failed")
		return err
	}
	c.SetAccessToken(token)
	c.log.Info("authentication succeeded")
	return nil
}

func (c *Client) oauthConfig() oauth.Config {
	return oauth.Config{
		Scheme:      c.cfg.APIScheme,
		Host:        c.cfg.APIHost,
		ClientID:    c.cfg.ClientID,
		RedirectURI: c.cfg.RedirectURI,
		Scopes:      scopeStrings(c.cfg.Scopes),
	}
}

// requireAuth is the local pre-flight check shared by every API method:
// scopes first, then token presence. Both failures happen before any
// network I/O.
func (c *Client) requireAuth(ep endpoint) error {
	if missing := c.cfg.MissingScopes(ep.scopes); len(missing) > 0 {
		return apierror.MissingScopes(scopeStrings(missing))
	}
	if !c.IsAuthenticated() {
		return apierror.AuthenticationRequired(nil)
	}
	return nil
}
