package apierror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingScopesMessageListsScopes(t *testing.T) {
	err := MissingScopes([]string{"public_content", "comments"})
	assert.Contains(t, err.Error(), "['public_content', 'comments']")

	// Server-detected permission failures carry no scope list.
	assert.NotContains(t, MissingScopes(nil).Error(), "[")
}

func TestFromStatusSynthesizesDetail(t *testing.T) {
	err := FromStatus(404, nil)
	require.NotNil(t, err.Detail)
	assert.Equal(t, "Unknown Error", err.Detail.Type)
	assert.Equal(t, "Unknown Error", err.Detail.Message)
	assert.Equal(t, KindNotFound, err.Kind)
}

func TestFromStatusTable(t *testing.T) {
	cases := map[int]Kind{
		400: KindBadRequest,
		401: KindAuthenticationRequired,
		403: KindForbidden,
		404: KindNotFound,
		429: KindTooManyRequests,
		500: KindServerError,
		502: KindBadGateway,
		503: KindServiceUnavailable,
		504: KindGatewayTimeout,
		418: KindGeneric,
	}
	for status, want := range cases {
		assert.Equal(t, want, FromStatus(status, nil).Kind, "status %d", status)
	}
}

func TestServerClassOnlyCoversServerFailures(t *testing.T) {
	for _, status := range []int{500, 502, 503, 504} {
		require.NotNil(t, ServerClass(status), "status %d", status)
	}
	for _, status := range []int{200, 400, 401, 404, 429} {
		assert.Nil(t, ServerClass(status), "status %d", status)
	}
}

func TestUnknownWraps(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Unknown(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause.Error(), err.Error())
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindUserCancelled, KindOf(UserCancelled()))
	assert.Equal(t, KindUnknown, KindOf(fmt.Errorf("some other error")))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "cancelled", UserCancelled().Error())
	assert.Equal(t, "invalid HTTP response: 204", InvalidHTTPResponse(204).Error())
	assert.Contains(t, InvalidURL("/v1/users/{user_id}").Error(), "/v1/users/{user_id}")
	assert.Contains(t, AuthenticationRequired(nil).Error(), "please login")
	assert.Contains(t, FromStatus(503, nil).Error(), "rate limit")
}

func TestUnparseableJSONKeepsBody(t *testing.T) {
	body := []byte(`{"data": [}`)
	err := UnparseableJSON(body, "unexpected end of JSON input")
	assert.Equal(t, body, err.Body)
	assert.Equal(t, "unexpected end of JSON input", err.Error())
}
