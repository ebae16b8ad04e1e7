// Package apierror defines the closed error taxonomy for Instagram API
// operations. Every failure a client call can produce is one of these
// kinds; callers discriminate with KindOf or errors.As.
package apierror

import (
	"fmt"
	"strings"
)

// Kind identifies the class of an API error.
type Kind string

const (
	KindUserCancelled          Kind = "user_cancelled"
	KindInvalidHTTPResponse    Kind = "invalid_http_response"
	KindInvalidURL             Kind = "invalid_url"
	KindMissingScopes          Kind = "missing_scopes"
	KindUnparseableJSON        Kind = "unparseable_json"
	KindBadRequest             Kind = "bad_request"
	KindAuthenticationRequired Kind = "authentication_required"
	KindForbidden              Kind = "forbidden"
	KindNotFound               Kind = "not_found"
	KindTooManyRequests        Kind = "too_many_requests"
	KindServerError            Kind = "server_error"
	KindBadGateway             Kind = "bad_gateway"
	KindServiceUnavailable     Kind = "service_unavailable"
	KindGatewayTimeout         Kind = "gateway_timeout"
	KindGeneric                Kind = "generic_error"
	KindUnknown                Kind = "unknown_error"
)

// ResponseError is the provider-supplied error detail from a response
// envelope's meta block.
type ResponseError struct {
	Message string `json:"error_message"`
	Type    string `json:"error_type"`
}

// Error is a classified API failure. Only the fields relevant to the
// Kind are populated: Scopes for missing_scopes, Body for
// unparseable_json, Detail when the provider returned one.
type Error struct {
	Kind   Kind
	Detail *ResponseError
	Status int      // HTTP status when one was observed
	Scopes []string // missing scopes known from the local check
	Path   string   // offending path for invalid_url
	Body   []byte   // original response bytes for unparseable_json
	Msg    string   // diagnostic detail for unparseable_json
	Err    error    // wrapped transport error for unknown_error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUserCancelled:
		return "cancelled"
	case KindInvalidHTTPResponse:
		if e.Status != 0 {
			return fmt.Sprintf("invalid HTTP response: %d", e.Status)
		}
		return "invalid response"
	case KindInvalidURL:
		return fmt.Sprintf("invalid URL: %s", e.Path)
	case KindMissingScopes:
		if len(e.Scopes) > 0 {
			return fmt.Sprintf("this API request requires the following scopes that were not configured for your client: ['%s']",
				strings.Join(e.Scopes, "', '"))
		}
		return "this API request requires scopes that were not configured for your client"
	case KindUnparseableJSON:
		if e.Msg != "" {
			return e.Msg
		}
		return "unparseable JSON response"
	case KindAuthenticationRequired:
		if e.Detail != nil {
			return e.detailMessage()
		}
		return "authentication required: please login and try again"
	case KindServerError:
		return "server error: the server is unable to take requests at this time"
	case KindBadGateway:
		return "bad gateway: the server is unable to take requests at this time"
	case KindServiceUnavailable:
		return "service unavailable: you may have hit the rate limit, please try again later"
	case KindGatewayTimeout:
		return "gateway timeout: the server is unable to take requests at this time"
	case KindUnknown:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "unknown error"
	default:
		return e.detailMessage()
	}
}

func (e *Error) detailMessage() string {
	if e.Detail != nil && e.Detail.Message != "" {
		return fmt.Sprintf("%s: %s", e.Detail.Type, e.Detail.Message)
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf reports the Kind of err, or KindUnknown when err is not a
// taxonomy error. A nil err has no kind and returns "".
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// UserCancelled reports a user-initiated cancellation of the OAuth flow.
func UserCancelled() *Error {
	return &Error{Kind: KindUserCancelled}
}

// InvalidHTTPResponse reports a response that exists but is unusable.
func InvalidHTTPResponse(status int) *Error {
	return &Error{Kind: KindInvalidHTTPResponse, Status: status}
}

// InvalidURL reports a request URL that could not be constructed.
func InvalidURL(path string) *Error {
	return &Error{Kind: KindInvalidURL, Path: path}
}

// MissingScopes reports required scopes absent from the client
// configuration. The scope list may be empty when the server detected
// the permission failure: the provider does not echo back which scopes
// were missing, so only the local pre-flight check carries a precise set.
func MissingScopes(scopes []string) *Error {
	return &Error{Kind: KindMissingScopes, Scopes: scopes}
}

// UnparseableJSON reports a response body that could not be decoded.
// The original bytes are retained for diagnosis.
func UnparseableJSON(body []byte, msg string) *Error {
	return &Error{Kind: KindUnparseableJSON, Body: body, Msg: msg}
}

// AuthenticationRequired reports a missing or rejected access token.
// detail is nil when the failure was detected locally before any
// network call.
func AuthenticationRequired(detail *ResponseError) *Error {
	return &Error{Kind: KindAuthenticationRequired, Detail: detail, Status: 401}
}

// Unknown wraps a transport-level failure that produced no usable
// response.
func Unknown(err error) *Error {
	return &Error{Kind: KindUnknown, Err: err}
}

// FromStatus maps an HTTP status code and optional provider detail to a
// classified error. Missing detail is synthesized so the mapping never
// branches on absence. Status 400 discrimination on the provider error
// type is handled by the caller, which sees the full metadata.
func FromStatus(status int, detail *ResponseError) *Error {
	if detail == nil {
		detail = &ResponseError{Message: "Unknown Error", Type: "Unknown Error"}
	}
	e := &Error{Detail: detail, Status: status}
	switch status {
	case 400:
		e.Kind = KindBadRequest
	case 401:
		e.Kind = KindAuthenticationRequired
	case 403:
		e.Kind = KindForbidden
	case 404:
		e.Kind = KindNotFound
	case 429:
		e.Kind = KindTooManyRequests
	case 500:
		e.Kind = KindServerError
	case 502:
		e.Kind = KindBadGateway
	case 503:
		e.Kind = KindServiceUnavailable
	case 504:
		e.Kind = KindGatewayTimeout
	default:
		e.Kind = KindGeneric
	}
	return e
}

// ServerClass maps the pure server-failure status codes to errors.
// It returns nil for any status outside 500/502/503/504 so the caller
// can fall through to other classification.
func ServerClass(status int) *Error {
	switch status {
	case 500:
		return &Error{Kind: KindServerError, Status: status}
	case 502:
		return &Error{Kind: KindBadGateway, Status: status}
	case 503:
		return &Error{Kind: KindServiceUnavailable, Status: status}
	case 504:
		return &Error{Kind: KindGatewayTimeout, Status: status}
	default:
		return nil
	}
}
