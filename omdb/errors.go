package omdb

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies a NetworkError.
type Kind int

const (
	KindUnknown Kind = iota
	KindRaw
	KindUnexpected
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindUnexpected:
		return "unexpected"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// APIError is the error envelope the catalogue sends back, e.g.
// {"Response":"False","Error":"Movie not found!"}.
type APIError struct {
	Response string `json:"Response"`
	Message  string `json:"Error"`
}

func (e APIError) Error() string {
	return e.Message
}

// UnknownAPIError stands in for a 4xx body that is not an APIError.
var UnknownAPIError = APIError{Response: "False", Message: "Unknown error."}

// decodeAPIError decodes data only if both envelope fields are present.
func decodeAPIError(data []byte) (APIError, bool) {
	var raw struct {
		Response *string `json:"Response"`
		Error    *string `json:"Error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || raw.Response == nil || raw.Error == nil {
		return APIError{}, false
	}
	return APIError{Response: *raw.Response, Message: *raw.Error}, true
}

// NetworkError is returned by Client.Fetch for every failed request.
type NetworkError struct {
	Kind Kind
	// StatusCode is 0 when no response was received.
	StatusCode int
	// API is set for KindAPI.
	API *APIError
	// Err is the transport error for KindRaw.
	Err error
}

func (e *NetworkError) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("omdb: api error: %s", e.API.Message)
	case KindRaw:
		return fmt.Sprintf("omdb: request failed: %v", e.Err)
	case KindUnexpected:
		return fmt.Sprintf("omdb: unexpected response (HTTP %d)", e.StatusCode)
	default:
		return "omdb: unknown error"
	}
}

func (e *NetworkError) Unwrap() error {
	if e.Kind == KindAPI {
		return e.API
	}
	return e.Err
}

// AsAPIError returns the catalogue's error envelope carried by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var ne *NetworkError
	if errors.As(err, &ne) && ne.Kind == KindAPI {
		return ne.API, true
	}
	return nil, false
}
