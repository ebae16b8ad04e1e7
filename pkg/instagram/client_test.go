package instagram

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"instakit/pkg/apierror"
	"instakit/pkg/logger"
	"instakit/pkg/models"
)

// mockRoundTripper allows us to intercept HTTP requests
type mockRoundTripper struct {
	calls   int
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.handler(req)
}

func newResponse(statusCode int, body string) *http.Response {
	return &http.Response{
		StatusCode: statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func newTestClient(t *testing.T, handler func(req *http.Request) (*http.Response, error), scopes ...Scope) (*Client, *mockRoundTripper) {
	t.Helper()
	transport := &mockRoundTripper{handler: handler}
	if handler == nil {
		transport.handler = func(req *http.Request) (*http.Response, error) {
			return newResponse(http.StatusNotFound, ""), nil
		}
	}
	cfg := NewConfiguration("client123", "https://example.com/redirect", scopes...)
	client, err := NewClient(cfg, &http.Client{Transport: transport, Timeout: 30 * time.Second}, logger.NewTestLogger())
	require.NoError(t, err)
	return client, transport
}

const commentsFixture = `{
	"meta": {"code": 200},
	"data": [
		{
			"id": "17864190667127297",
			"created_time": "1490894006",
			"text": "Nice shot!",
			"from": {
				"id": "989545",
				"username": "jverdi",
				"full_name": "Jared Verdi",
				"profile_picture": "https://example.com/jverdi.jpg"
			}
		}
	]
}`

func TestNewClientValidatesConfiguration(t *testing.T) {
	_, err := NewClient(ClientConfiguration{}, nil, nil)
	assert.Error(t, err)

	client, err := NewClient(NewConfiguration("id", "https://example.com/cb"), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.False(t, client.IsAuthenticated())
}

func TestScopeGuardFailsBeforeAnyRequest(t *testing.T) {
	client, transport := newTestClient(t, nil, ScopeBasic)
	client.SetAccessToken("token")

	_, err := client.Comments(context.Background(), "123")
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindMissingScopes, apiErr.Kind)
	assert.Equal(t, []string{"public_content"}, apiErr.Scopes)
	assert.Equal(t, 0, transport.calls, "scope failures must not reach the network")
}

func TestScopeGuardReportsAllMissingScopesInOrder(t *testing.T) {
	client, transport := newTestClient(t, nil, ScopeBasic)
	client.SetAccessToken("token")

	err := client.PostComment(context.Background(), "123", "hello")
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, []string{"public_content", "comments"}, apiErr.Scopes)
	assert.Equal(t, 0, transport.calls)
}

func TestMissingTokenFailsBeforeAnyRequest(t *testing.T) {
	client, transport := newTestClient(t, nil, ScopeBasic)

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, apierror.KindAuthenticationRequired, apierror.KindOf(err))
	assert.Equal(t, 0, transport.calls)
}

func TestScopeCheckRunsBeforeTokenCheck(t *testing.T) {
	client, _ := newTestClient(t, nil, ScopeBasic)

	// No token AND missing scope: the scope failure wins.
	_, err := client.Comments(context.Background(), "123")
	assert.Equal(t, apierror.KindMissingScopes, apierror.KindOf(err))
}

func TestCommentsDecodesFixture(t *testing.T) {
	var captured *http.Request
	client, transport := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		return newResponse(http.StatusOK, commentsFixture), nil
	}, ScopeBasic, ScopePublicContent)
	client.SetAccessToken("secret-token")

	comments, err := client.Comments(context.Background(), "1482048616133874767_989545")
	require.NoError(t, err)
	require.Len(t, comments, 1)

	comment := comments[0]
	assert.Equal(t, "17864190667127297", comment.ID)
	assert.Equal(t, models.Epoch(1490894006).Time, comment.CreationDate.Time)
	assert.Equal(t, "Nice shot!", comment.Text)
	assert.Equal(t, "jverdi", comment.User.Username)

	assert.Equal(t, 1, transport.calls)
	require.NotNil(t, captured)
	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/v1/media/1482048616133874767_989545/comments", captured.URL.Path)
	assert.Equal(t, "secret-token", captured.URL.Query().Get("access_token"))
	assert.Equal(t, `Token token="secret-token"`, captured.Header.Get("Authorization"))
}

func TestPostCommentSendsFormBody(t *testing.T) {
	var captured *http.Request
	var body []byte
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		body, _ = io.ReadAll(req.Body)
		return newResponse(http.StatusOK, `{"meta":{"code":200},"data":null}`), nil
	}, ScopeBasic, ScopePublicContent, ScopeComments)
	client.SetAccessToken("token")

	err := client.PostComment(context.Background(), "123", "great pic")
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "application/x-www-form-urlencoded", captured.Header.Get("Content-Type"))
	assert.Equal(t, "text=great+pic", string(body))
	assert.Equal(t, "token", captured.URL.Query().Get("access_token"))
	assert.Empty(t, captured.URL.Query().Get("text"), "POST parameters belong in the body")
}

func TestFollowSendsAction(t *testing.T) {
	var body []byte
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		body, _ = io.ReadAll(req.Body)
		return newResponse(http.StatusOK, `{"meta":{"code":200},"data":{"outgoing_status":"requested","target_user_is_private":true}}`), nil
	}, ScopeBasic, ScopeRelationships)
	client.SetAccessToken("token")

	rel, err := client.Follow(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, models.OutgoingRequested, rel.Status)
	assert.True(t, rel.TargetUserIsPrivate)
	assert.Equal(t, "action=follow", string(body))
}

func TestOEmbedDecodesRawPayload(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "/oembed", req.URL.Path)
		assert.Equal(t, "https://www.instagram.com/p/BSRS104hNRP", req.URL.Query().Get("url"))
		return newResponse(http.StatusOK, `{
			"media_id": "1482048616133874767_989545",
			"author_id": 989545,
			"author_name": "jverdi",
			"author_url": "https://www.instagram.com/jverdi",
			"width": 658,
			"html": "<blockquote></blockquote>",
			"provider_name": "Instagram",
			"provider_url": "https://www.instagram.com",
			"type": "rich",
			"thumbnail_url": "https://example.com/thumb.jpg",
			"thumbnail_width": 640,
			"thumbnail_height": 640,
			"version": "1.0"
		}`), nil
	}, ScopeBasic)
	client.SetAccessToken("token")

	embed, err := client.OEmbed(context.Background(), "https://www.instagram.com/p/BSRS104hNRP")
	require.NoError(t, err)
	assert.Equal(t, "1482048616133874767_989545", embed.ID)
	assert.Equal(t, 989545, embed.AuthorID)
	assert.Equal(t, "jverdi", embed.AuthorName)
	assert.Equal(t, 658, embed.Width)
	assert.Nil(t, embed.Height)
}

func TestMalformedJSONRetainsOriginalBytes(t *testing.T) {
	const garbage = `{"data": [}`
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return newResponse(http.StatusOK, garbage), nil
	}, ScopeBasic)
	client.SetAccessToken("token")

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindUnparseableJSON, apiErr.Kind)
	assert.Equal(t, []byte(garbage), apiErr.Body)
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantKind apierror.Kind
	}{
		{
			name:     "400 with OAuthPermissionsException",
			status:   400,
			body:     `{"meta":{"code":400,"error_type":"OAuthPermissionsException","error_message":"This request requires scope=comments"}}`,
			wantKind: apierror.KindMissingScopes,
		},
		{
			name:     "400 with APINotAllowedError",
			status:   400,
			body:     `{"meta":{"code":400,"error_type":"APINotAllowedError","error_message":"you cannot view this resource"}}`,
			wantKind: apierror.KindForbidden,
		},
		{
			name:     "400 with APINotFoundError",
			status:   400,
			body:     `{"meta":{"code":400,"error_type":"APINotFoundError","error_message":"invalid media id"}}`,
			wantKind: apierror.KindNotFound,
		},
		{
			name:     "plain 400",
			status:   400,
			body:     `{"meta":{"code":400,"error_type":"APIInvalidParametersError","error_message":"bad params"}}`,
			wantKind: apierror.KindBadRequest,
		},
		{
			name:     "401",
			status:   401,
			body:     `{"meta":{"code":401,"error_type":"OAuthAccessTokenException","error_message":"The access_token provided is invalid."}}`,
			wantKind: apierror.KindAuthenticationRequired,
		},
		{
			name:     "403",
			status:   403,
			body:     `{"meta":{"code":403,"error_type":"OAuthForbiddenException","error_message":"forbidden"}}`,
			wantKind: apierror.KindForbidden,
		},
		{
			name:     "404",
			status:   404,
			body:     `{"meta":{"code":404,"error_type":"APINotFoundError","error_message":"not found"}}`,
			wantKind: apierror.KindNotFound,
		},
		{
			name:     "429",
			status:   429,
			body:     `{"meta":{"code":429,"error_type":"OAuthRateLimitException","error_message":"rate limited"}}`,
			wantKind: apierror.KindTooManyRequests,
		},
		{
			name:     "500",
			status:   500,
			body:     `{"meta":{"code":500}}`,
			wantKind: apierror.KindServerError,
		},
		{
			name:     "502",
			status:   502,
			body:     `{"meta":{"code":502}}`,
			wantKind: apierror.KindBadGateway,
		},
		{
			name:     "503 regardless of body",
			status:   503,
			body:     `{"meta":{"code":503,"error_type":"whatever","error_message":"whatever"}}`,
			wantKind: apierror.KindServiceUnavailable,
		},
		{
			name:     "504",
			status:   504,
			body:     `{"meta":{"code":504}}`,
			wantKind: apierror.KindGatewayTimeout,
		},
		{
			name:     "teapot falls through to generic",
			status:   418,
			body:     `{"meta":{"code":418,"error_type":"Teapot","error_message":"short and stout"}}`,
			wantKind: apierror.KindGeneric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
				return newResponse(tt.status, tt.body), nil
			}, ScopeBasic)
			client.SetAccessToken("token")

			_, err := client.Me(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, apierror.KindOf(err))
		})
	}
}

func TestServerDetectedScopeFailureCarriesNoScopes(t *testing.T) {
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return newResponse(400, `{"meta":{"code":400,"error_type":"OAuthPermissionsException","error_message":"missing scope"}}`), nil
	}, ScopeBasic)
	client.SetAccessToken("token")

	_, err := client.Me(context.Background())
	var apiErr *apierror.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, apierror.KindMissingScopes, apiErr.Kind)
	assert.Empty(t, apiErr.Scopes)
}

func TestEmptyBodyClassification(t *testing.T) {
	for _, status := range []int{500, 502, 503, 504} {
		client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
			return newResponse(status, ""), nil
		}, ScopeBasic)
		client.SetAccessToken("token")

		_, err := client.Me(context.Background())
		var apiErr *apierror.Error
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, status, apiErr.Status)
		assert.NotEqual(t, apierror.KindInvalidHTTPResponse, apiErr.Kind)
	}

	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return newResponse(http.StatusOK, ""), nil
	}, ScopeBasic)
	client.SetAccessToken("token")

	_, err := client.Me(context.Background())
	assert.Equal(t, apierror.KindInvalidHTTPResponse, apierror.KindOf(err))
}

func TestTransportErrorBecomesUnknown(t *testing.T) {
	boom := errors.New("connection refused")
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		return nil, boom
	}, ScopeBasic)
	client.SetAccessToken("token")

	_, err := client.Me(context.Background())
	require.Error(t, err)
	assert.Equal(t, apierror.KindUnknown, apierror.KindOf(err))
	assert.ErrorIs(t, err, boom)
}

func TestRequestOptionsBecomeQueryParameters(t *testing.T) {
	var captured *http.Request
	client, _ := newTestClient(t, func(req *http.Request) (*http.Response, error) {
		captured = req
		return newResponse(http.StatusOK, `{"meta":{"code":200},"data":[]}`), nil
	}, ScopeBasic)
	client.SetAccessToken("token")

	_, err := client.MyRecentMedia(context.Background(), &RequestOptions{Count: 5, MaxID: "999"})
	require.NoError(t, err)

	q := captured.URL.Query()
	assert.Equal(t, "5", q.Get("count"))
	assert.Equal(t, "999", q.Get("max_id"))
	assert.Empty(t, q.Get("min_id"))
}

func TestLogoutClearsToken(t *testing.T) {
	client, _ := newTestClient(t, nil, ScopeBasic)
	client.SetAccessToken("token")
	require.True(t, client.IsAuthenticated())

	client.Logout()
	assert.False(t, client.IsAuthenticated())
	assert.Empty(t, client.AccessToken())
}

func TestAuthorizeURL(t *testing.T) {
	client, _ := newTestClient(t, nil, ScopeBasic, ScopePublicContent)
	url := client.AuthorizeURL()
	assert.Equal(t,
		"https://api.instagram.com/oauth/authorize/?client_id=client123&redirect_uri=https%3A%2F%2Fexample.com%2Fredirect&response_type=token&scope=basic+public_content",
		url)
}
