package instagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingScopesPreservesRequiredOrder(t *testing.T) {
	required := []Scope{ScopePublicContent, ScopeComments, ScopeLikes}
	configured := []Scope{ScopeComments, ScopeBasic}

	missing := missingScopes(required, configured)
	assert.Equal(t, []Scope{ScopePublicContent, ScopeLikes}, missing)
}

func TestMissingScopesEmptyWhenCovered(t *testing.T) {
	configured := KnownScopes()
	assert.Empty(t, missingScopes([]Scope{ScopeBasic, ScopeFollowerList}, configured))
	assert.Empty(t, missingScopes(nil, nil))
}

func TestMissingScopesIsSetMembership(t *testing.T) {
	// Order of configured scopes is irrelevant.
	a := missingScopes([]Scope{ScopeLikes}, []Scope{ScopeBasic, ScopeLikes})
	b := missingScopes([]Scope{ScopeLikes}, []Scope{ScopeLikes, ScopeBasic})
	assert.Equal(t, a, b)
	assert.Empty(t, a)
}

func TestParseScope(t *testing.T) {
	scope, err := ParseScope("follower_list")
	require.NoError(t, err)
	assert.Equal(t, ScopeFollowerList, scope)

	_, err = ParseScope("world_domination")
	assert.Error(t, err)
}

func TestConfigurationValidate(t *testing.T) {
	cfg := NewConfiguration("id", "https://example.com/cb", ScopeBasic)
	assert.NoError(t, cfg.Validate())

	assert.Error(t, ClientConfiguration{}.Validate())
	assert.Error(t, ClientConfiguration{ClientID: "id", APIScheme: "https", APIHost: "h"}.Validate())
}
