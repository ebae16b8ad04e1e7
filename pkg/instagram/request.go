package instagram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"instakit/pkg/apierror"
)

// do executes one API operation end to end: local scope and token
// checks, URI template expansion, parameter placement, transport, and
// envelope decoding. GET parameters travel in the query string;
// POST and DELETE parameters travel as a form-encoded body. The access
// token is always a query parameter, doubled in the Authorization
// header.
//
// Methods cannot carry type parameters, so the public resource methods
// are bindings of endpoint descriptors and payload types onto this one
// function.
func do[T any](ctx context.Context, c *Client, ep endpoint, vars uriVars, params Params, opts *RequestOptions) (*APIResponse[T], error) {
	if err := c.requireAuth(ep); err != nil {
		return nil, err
	}

	path, err := ep.resolve(vars)
	if err != nil {
		return nil, apierror.InvalidURL(ep.path)
	}

	query := url.Values{paramAccessToken: {c.AccessToken()}}
	var body io.Reader
	reqParams := mergeParams(opts, params)
	switch ep.method {
	case http.MethodGet:
		for key, vals := range reqParams {
			query[key] = vals
		}
	default:
		if encoded := reqParams.Encode(); encoded != "" {
			body = strings.NewReader(encoded)
		}
	}

	u := url.URL{
		Scheme:   c.cfg.APIScheme,
		Host:     c.cfg.APIHost,
		Path:     path,
		RawQuery: query.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, u.String(), body)
	if err != nil {
		return nil, apierror.InvalidURL(ep.path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Token token=%q", c.AccessToken()))
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	c.log.DebugWithFields("api request", map[string]interface{}{
		"endpoint": ep.name,
		"method":   ep.method,
		"path":     path,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", ep.name).Warn("transport failure")
		return nil, apierror.Unknown(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierror.Unknown(err)
	}

	c.log.DebugWithFields("api response", map[string]interface{}{
		"endpoint": ep.name,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if len(bytes.TrimSpace(raw)) == 0 {
		if serverErr := apierror.ServerClass(resp.StatusCode); serverErr != nil {
			return nil, serverErr
		}
		return nil, apierror.InvalidHTTPResponse(resp.StatusCode)
	}

	result, err := decodeEnvelope[T](raw, resp.StatusCode)
	if err != nil {
		c.log.WithError(err).WithField("endpoint", ep.name).Debug("request failed")
		return nil, err
	}
	return result, nil
}
