package instagram

import (
	"encoding/json"
	"errors"

	"instakit/pkg/apierror"
)

// Metadata is the meta block of a response envelope. On success it
// carries the echoed HTTP code; on failure it additionally carries the
// provider's error type and message.
type Metadata struct {
	Code         *int   `json:"code"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

// HTTPCode returns the echoed status code, or 0 when absent.
func (m *Metadata) HTTPCode() int {
	if m == nil || m.Code == nil {
		return 0
	}
	return *m.Code
}

func (m *Metadata) responseError() *apierror.ResponseError {
	if m == nil || (m.ErrorType == "" && m.ErrorMessage == "") {
		return nil
	}
	return &apierror.ResponseError{Type: m.ErrorType, Message: m.ErrorMessage}
}

// APIResponse is the decoded success envelope: the typed payload plus
// the meta block when the endpoint wraps its responses. Raw-payload
// endpoints (the oEmbed family) produce a nil Meta.
type APIResponse[T any] struct {
	Meta *Metadata
	Data T
}

// decodeEnvelope interprets a response body as one of three shapes, in
// precedence order: a data-wrapped success, a meta-only error envelope,
// or a bare payload. status is the transport-level HTTP status, or 0
// when unknown; it takes precedence over the envelope's echoed code
// when classifying errors. Any parse or shape mismatch yields
// unparseable_json carrying the original bytes.
func decodeEnvelope[T any](body []byte, status int) (*APIResponse[T], error) {
	var probe struct {
		Data json.RawMessage `json:"data"`
		Meta json.RawMessage `json:"meta"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			// Valid JSON that is not an object: the raw payload family.
			return decodeRaw[T](body)
		}
		return nil, apierror.UnparseableJSON(body, err.Error())
	}

	if probe.Data != nil {
		var data T
		if err := json.Unmarshal(probe.Data, &data); err != nil {
			return nil, apierror.UnparseableJSON(body, err.Error())
		}
		resp := &APIResponse[T]{Data: data}
		if probe.Meta != nil {
			var meta Metadata
			if err := json.Unmarshal(probe.Meta, &meta); err == nil {
				resp.Meta = &meta
			}
		}
		return resp, nil
	}

	if probe.Meta != nil {
		var meta Metadata
		if err := json.Unmarshal(probe.Meta, &meta); err == nil {
			return nil, classifyError(status, &meta)
		}
	}

	return decodeRaw[T](body)
}

func decodeRaw[T any](body []byte) (*APIResponse[T], error) {
	var data T
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, apierror.UnparseableJSON(body, err.Error())
	}
	return &APIResponse[T]{Data: data}, nil
}

// Provider error types discriminated under HTTP 400.
const (
	errTypeOAuthPermissions  = "OAuthPermissionsException"
	errTypeAPINotAllowed     = "APINotAllowedError"
	errTypeAPINotFound       = "APINotFoundError"
	errTypeInvalidParameters = "APIInvalidParametersError"
)

// classifyError maps an HTTP status and envelope metadata to the error
// taxonomy. The transport status wins when present; otherwise the
// envelope's echoed code is used, and when neither exists the error is
// generic. 400 responses are further discriminated on the provider's
// error type; note that a server-detected permission failure carries no
// scope list, since the provider does not echo back which scopes were
// missing.
func classifyError(status int, meta *Metadata) *apierror.Error {
	code := status
	if code == 0 {
		code = meta.HTTPCode()
	}
	detail := meta.responseError()

	if code == 400 {
		switch meta.ErrorType {
		case errTypeOAuthPermissions:
			return apierror.MissingScopes(nil)
		case errTypeAPINotAllowed:
			return &apierror.Error{Kind: apierror.KindForbidden, Detail: detail, Status: code}
		case errTypeAPINotFound:
			return &apierror.Error{Kind: apierror.KindNotFound, Detail: detail, Status: code}
		}
	}
	return apierror.FromStatus(code, detail)
}
