package instagram

import "errors"

const (
	// DefaultAPIScheme and DefaultAPIHost point at the production API.
	DefaultAPIScheme = "https"
	DefaultAPIHost   = "api.instagram.com"
)

// ClientConfiguration is the immutable identity of a client: who it is
// (client ID), where the provider sends the user back (redirect URI),
// which deployment it talks to, and which scopes it was registered
// with. It carries no logic beyond presence validation and is owned
// exclusively by the Client for its lifetime.
type ClientConfiguration struct {
	ClientID    string
	RedirectURI string
	APIScheme   string
	APIHost     string
	Scopes      []Scope
}

// NewConfiguration builds a configuration against the production API.
func NewConfiguration(clientID, redirectURI string, scopes ...Scope) ClientConfiguration {
	return ClientConfiguration{
		ClientID:    clientID,
		RedirectURI: redirectURI,
		APIScheme:   DefaultAPIScheme,
		APIHost:     DefaultAPIHost,
		Scopes:      scopes,
	}
}

// Validate checks that every identity field is present.
func (c ClientConfiguration) Validate() error {
	var errs []error
	if c.ClientID == "" {
		errs = append(errs, errors.New("client ID is required"))
	}
	if c.RedirectURI == "" {
		errs = append(errs, errors.New("redirect URI is required"))
	}
	if c.APIScheme == "" {
		errs = append(errs, errors.New("API scheme is required"))
	}
	if c.APIHost == "" {
		errs = append(errs, errors.New("API host is required"))
	}
	return errors.Join(errs...)
}

// MissingScopes returns the subset of required scopes absent from this
// configuration, in required order.
func (c ClientConfiguration) MissingScopes(required []Scope) []Scope {
	return missingScopes(required, c.Scopes)
}
