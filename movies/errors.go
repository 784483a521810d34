package movies

import (
	"errors"
	"fmt"

	apperrors "github.com/kbukum/simplemovies/errors"
	"github.com/kbukum/simplemovies/omdb"
)

// ErrorKind classifies a ServiceError.
type ErrorKind int

const (
	KindInvalidQuery ErrorKind = iota + 1
	KindNetwork
	KindDecoding
	KindAPI
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidQuery:
		return "invalid_query"
	case KindNetwork:
		return "network"
	case KindDecoding:
		return "decoding"
	case KindAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ServiceError is returned by Service.SearchMovies.
type ServiceError struct {
	Kind ErrorKind
	// API is set for KindAPI.
	API *omdb.APIError
	Err error
}

func (e *ServiceError) Error() string {
	switch e.Kind {
	case KindAPI:
		return fmt.Sprintf("movies: %s", e.API.Message)
	case KindInvalidQuery:
		return "movies: a title is required"
	default:
		return fmt.Sprintf("movies: %s error: %v", e.Kind, e.Err)
	}
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// KindOf returns the ServiceError kind of err, or 0.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}

// ToAppError maps a search failure onto the API error envelope.
func ToAppError(err error) *apperrors.AppError {
	var se *ServiceError
	if !errors.As(err, &se) {
		return apperrors.From(err)
	}
	switch se.Kind {
	case KindInvalidQuery:
		return apperrors.MissingField("title")
	case KindAPI:
		return apperrors.UpstreamRejected("omdb", se.API.Message)
	case KindDecoding:
		return apperrors.ExternalServiceError("omdb", se)
	default:
		return apperrors.ServiceUnavailable("movie catalogue").WithCause(se)
	}
}
