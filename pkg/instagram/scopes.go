package instagram

import "fmt"

// Scope is a capability tag gating access to a class of endpoints.
// Scopes are granted at app registration and requested again at
// authorization time; requests declare the scopes they require and are
// rejected locally before any network call when the client
// configuration lacks one.
type Scope string

const (
	ScopeBasic         Scope = "basic"
	ScopePublicContent Scope = "public_content"
	ScopeComments      Scope = "comments"
	ScopeRelationships Scope = "relationships"
	ScopeLikes         Scope = "likes"
	ScopeFollowerList  Scope = "follower_list"
)

// ScopeSeparator joins scopes in the authorize URL's scope parameter.
const ScopeSeparator = "+"

// KnownScopes lists every scope the provider defines.
func KnownScopes() []Scope {
	return []Scope{
		ScopeBasic,
		ScopePublicContent,
		ScopeComments,
		ScopeRelationships,
		ScopeLikes,
		ScopeFollowerList,
	}
}

// ParseScope converts a raw string, e.g. from a config file, into a
// known Scope.
func ParseScope(s string) (Scope, error) {
	for _, known := range KnownScopes() {
		if Scope(s) == known {
			return known, nil
		}
	}
	return "", fmt.Errorf("unknown scope %q", s)
}

// missingScopes returns the subset of required not present in
// configured, preserving the order of required. Comparison is set
// membership.
func missingScopes(required, configured []Scope) []Scope {
	var missing []Scope
	for _, req := range required {
		found := false
		for _, have := range configured {
			if req == have {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req)
		}
	}
	return missing
}

func scopeStrings(scopes []Scope) []string {
	out := make([]string, len(scopes))
	for i, s := range scopes {
		out[i] = string(s)
	}
	return out
}
