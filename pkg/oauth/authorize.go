// Package oauth implements the browser-based implicit authorization
// flow. The provider never returns the token over an API response;
// it appends it to the redirect URI's fragment, so the flow works by
// presenting the authorize page on some Surface and intercepting
// navigation intents until the redirect appears.
package oauth

import (
	"errors"
	"net/url"
	"strings"
)

// authorizePath is the provider's authorization endpoint.
const authorizePath = "/oauth/authorize/"

// tokenFragment introduces the access token in the redirect URL.
const tokenFragment = "#access_token="

// Config identifies the application to the authorization server.
type Config struct {
	Scheme      string
	Host        string
	ClientID    string
	RedirectURI string
	Scopes      []string
}

func (c Config) validate() error {
	var errs []error
	if c.Scheme == "" {
		errs = append(errs, errors.New("scheme is required"))
	}
	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.ClientID == "" {
		errs = append(errs, errors.New("client ID is required"))
	}
	if c.RedirectURI == "" {
		errs = append(errs, errors.New("redirect URI is required"))
	}
	return errors.Join(errs...)
}

// AuthorizeURL builds the URL that starts the implicit flow. Scopes are
// joined with a literal "+", which the provider requires verbatim, so
// the query string is assembled by hand rather than through
// url.Values.Encode.
func AuthorizeURL(cfg Config) string {
	var b strings.Builder
	b.WriteString(cfg.Scheme)
	b.WriteString("://")
	b.WriteString(cfg.Host)
	b.WriteString(authorizePath)
	b.WriteString("?client_id=")
	b.WriteString(url.QueryEscape(cfg.ClientID))
	b.WriteString("&redirect_uri=")
	b.WriteString(url.QueryEscape(cfg.RedirectURI))
	b.WriteString("&response_type=token")
	if len(cfg.Scopes) > 0 {
		b.WriteString("&scope=")
		for i, scope := range cfg.Scopes {
			if i > 0 {
				b.WriteString("+")
			}
			b.WriteString(url.QueryEscape(scope))
		}
	}
	return b.String()
}

// redirectPrefixes returns the URL prefixes that mark a completed
// authorization. Providers differ on whether they normalize the
// redirect URI with a trailing slash, so both spellings are matched.
func redirectPrefixes(redirectURI string) []string {
	prefixes := []string{redirectURI + tokenFragment}
	if !strings.HasSuffix(redirectURI, "/") {
		prefixes = append(prefixes, redirectURI+"/"+tokenFragment)
	}
	return prefixes
}
