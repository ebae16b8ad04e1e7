package instagram

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names the API understands.
const (
	paramClientID     = "client_id"
	paramRedirectURI  = "redirect_uri"
	paramResponseType = "response_type"
	paramScope        = "scope"
	paramAccessToken  = "access_token"
	paramSearchQuery  = "q"
	paramAction       = "action"
	paramLatitude     = "lat"
	paramLongitude    = "lng"
	paramDistance     = "distance"
	paramCommentText  = "text"
	paramURL          = "url"
	paramCount        = "count"
	paramMinID        = "min_id"
	paramMaxID        = "max_id"
)

// RequestOptions is the optional pagination window for list endpoints.
// Zero-valued fields are omitted from the request entirely.
type RequestOptions struct {
	MinID string
	MaxID string
	Count int
}

func (o *RequestOptions) values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	if o.Count > 0 {
		v.Set(paramCount, strconv.Itoa(o.Count))
	}
	if o.MinID != "" {
		v.Set(paramMinID, o.MinID)
	}
	if o.MaxID != "" {
		v.Set(paramMaxID, o.MaxID)
	}
	return v
}

// Params are per-call request parameters keyed by wire name.
type Params map[string]interface{}

// mergeParams combines pagination options and explicit parameters into
// one query set. Explicit parameters win on key collision; array values
// are joined with commas before encoding.
func mergeParams(opts *RequestOptions, params Params) url.Values {
	v := opts.values()
	for key, value := range params {
		v.Set(key, paramString(value))
	}
	return v
}

func paramString(value interface{}) string {
	switch t := value.(type) {
	case string:
		return t
	case []string:
		return strings.Join(t, ",")
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}
