package instagram

import (
	"fmt"
	"net/http"

	"github.com/jtacoma/uritemplates"
)

// endpoint describes one logical API operation: the HTTP method, the
// URI template its path is expanded from, and the scopes it requires.
// The public resource methods are thin bindings of these descriptors to
// the generic request pipeline; all protocol logic lives in do.
type endpoint struct {
	name     string
	method   string
	path     string
	template *uritemplates.UriTemplate
	scopes   []Scope
}

func newEndpoint(name, method, path string, scopes ...Scope) endpoint {
	tmpl, err := uritemplates.Parse(path)
	if err != nil {
		panic(fmt.Sprintf("instagram: bad URI template %q: %v", path, err))
	}
	return endpoint{name: name, method: method, path: path, template: tmpl, scopes: scopes}
}

var (
	epUsersSelf       = newEndpoint("users.self", http.MethodGet, "/v1/users/self")
	epUser            = newEndpoint("users.info", http.MethodGet, "/v1/users/{user_id}", ScopePublicContent)
	epUsersSelfMedia  = newEndpoint("users.self.media", http.MethodGet, "/v1/users/self/media/recent")
	epUserMedia       = newEndpoint("users.media", http.MethodGet, "/v1/users/{user_id}/media/recent", ScopePublicContent)
	epUsersSelfLiked  = newEndpoint("users.self.liked", http.MethodGet, "/v1/users/self/media/liked", ScopePublicContent)
	epUserSearch      = newEndpoint("users.search", http.MethodGet, "/v1/users/search", ScopePublicContent)
	epMedia           = newEndpoint("media.info", http.MethodGet, "/v1/media/{media_id}", ScopePublicContent)
	epMediaShortcode  = newEndpoint("media.shortcode", http.MethodGet, "/v1/media/shortcode/{shortcode}", ScopePublicContent)
	epMediaSearch     = newEndpoint("media.search", http.MethodGet, "/v1/media/search", ScopePublicContent)
	epComments        = newEndpoint("comments.list", http.MethodGet, "/v1/media/{media_id}/comments", ScopePublicContent)
	epCommentPost     = newEndpoint("comments.post", http.MethodPost, "/v1/media/{media_id}/comments", ScopePublicContent, ScopeComments)
	epCommentDelete   = newEndpoint("comments.delete", http.MethodDelete, "/v1/media/{media_id}/comments/{comment_id}", ScopePublicContent, ScopeComments)
	epLikes           = newEndpoint("likes.list", http.MethodGet, "/v1/media/{media_id}/likes", ScopePublicContent)
	epLikePost        = newEndpoint("likes.post", http.MethodPost, "/v1/media/{media_id}/likes", ScopePublicContent, ScopeLikes)
	epLikeDelete      = newEndpoint("likes.delete", http.MethodDelete, "/v1/media/{media_id}/likes", ScopePublicContent, ScopeLikes)
	epTag             = newEndpoint("tags.info", http.MethodGet, "/v1/tags/{tag_name}", ScopePublicContent)
	epTagMedia        = newEndpoint("tags.media", http.MethodGet, "/v1/tags/{tag_name}/media/recent", ScopePublicContent)
	epTagSearch       = newEndpoint("tags.search", http.MethodGet, "/v1/tags/search", ScopePublicContent)
	epLocation        = newEndpoint("locations.info", http.MethodGet, "/v1/locations/{location_id}", ScopePublicContent)
	epLocationMedia   = newEndpoint("locations.media", http.MethodGet, "/v1/locations/{location_id}/media/recent", ScopePublicContent)
	epLocationSearch  = newEndpoint("locations.search", http.MethodGet, "/v1/locations/search", ScopePublicContent)
	epMyFollows       = newEndpoint("relationships.follows", http.MethodGet, "/v1/users/self/follows", ScopeFollowerList)
	epMyFollowers     = newEndpoint("relationships.followers", http.MethodGet, "/v1/users/self/followed-by", ScopeFollowerList)
	epMyRequests      = newEndpoint("relationships.requests", http.MethodGet, "/v1/users/self/requested-by", ScopeFollowerList)
	epRelationship    = newEndpoint("relationships.info", http.MethodGet, "/v1/users/{user_id}/relationship", ScopeFollowerList)
	epRelationshipSet = newEndpoint("relationships.set", http.MethodPost, "/v1/users/{user_id}/relationship", ScopeRelationships)
	epOEmbed          = newEndpoint("oembed", http.MethodGet, "/oembed")
)

// uriVars names path parameters for template expansion.
type uriVars map[string]interface{}

// resolve expands the endpoint's URI template with the given path
// parameters.
func (e endpoint) resolve(vars uriVars) (string, error) {
	if vars == nil {
		vars = uriVars{}
	}
	return e.template.Expand(map[string]interface{}(vars))
}
