package errors

import (
	stderrors "errors"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	tests := []struct {
		code      ErrorCode
		retryable bool
	}{
		{ErrCodeNotFound, false},
		{ErrCodeTimeout, true},
		{ErrCodeStorage, true},
		{ErrCodeUpstreamRejected, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			err := New(tc.code, "msg", http.StatusTeapot)
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v, got %v", tc.retryable, err.Retryable)
			}
			if err.HTTPStatus != http.StatusTeapot {
				t.Errorf("expected status to be kept, got %d", err.HTTPStatus)
			}
		})
	}
}

func TestAppError_NotFound(t *testing.T) {
	err := NotFound("favorite", "tt0372784")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["id"] != "tt0372784" {
		t.Errorf("expected id detail, got %v", err.Details["id"])
	}

	if _, ok := NotFound("favorite", "").Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
}

func TestAppError_Unauthorized(t *testing.T) {
	if err := Unauthorized(""); err.Message != "Authentication required." {
		t.Errorf("expected default message, got %q", err.Message)
	}
	if err := Unauthorized("bad credentials"); err.Message != "bad credentials" {
		t.Errorf("expected custom message, got %q", err.Message)
	}
	if TokenExpired().HTTPStatus != http.StatusUnauthorized || InvalidToken().HTTPStatus != http.StatusUnauthorized {
		t.Error("token errors must map to 401")
	}
}

func TestAppError_CauseChain(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := StorageError(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}

	wrapped := NotFound("item", "1").WithCause(cause)
	if wrapped.Unwrap() != cause {
		t.Error("expected cause to be set via WithCause")
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Validation("bad title").WithDetail("field", "title")
	if err.Details["field"] != "title" {
		t.Errorf("expected field detail, got %v", err.Details)
	}
}

func TestFrom(t *testing.T) {
	if From(nil) != nil {
		t.Error("expected nil for nil error")
	}

	appErr := NotFound("movie", "x")
	if From(fmt.Errorf("wrap: %w", appErr)) != appErr {
		t.Error("expected wrapped AppError to be unwrapped")
	}

	plain := stderrors.New("plain")
	got := From(plain)
	if got.Code != ErrCodeInternal || got.Cause != plain {
		t.Errorf("expected Internal wrapping plain error, got %v", got)
	}
}

func TestUpstreamRejected(t *testing.T) {
	err := UpstreamRejected("omdb", "Movie not found!")
	if err.Message != "Movie not found!" {
		t.Errorf("expected upstream message verbatim, got %q", err.Message)
	}
	if err.Retryable {
		t.Error("upstream rejection should not be retryable")
	}
	if !IsCode(err, ErrCodeUpstreamRejected) {
		t.Error("expected IsCode to match")
	}
	if IsCode(stderrors.New("x"), ErrCodeUpstreamRejected) {
		t.Error("plain errors never match a code")
	}
}

func TestToResponse(t *testing.T) {
	resp := ExternalServiceError("omdb", stderrors.New("dial tcp")).ToResponse()
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `"code":"EXTERNAL_SERVICE_ERROR"`) {
		t.Errorf("expected code in body, got %s", body)
	}
	if strings.Contains(body, "dial tcp") {
		t.Errorf("cause must not leak to clients, got %s", body)
	}
	if !strings.Contains(body, `"retryable":true`) {
		t.Errorf("expected retryable flag, got %s", body)
	}
}

func TestAsAppError(t *testing.T) {
	if _, ok := AsAppError(stderrors.New("x")); ok {
		t.Error("plain error is not an AppError")
	}
	if !IsAppError(fmt.Errorf("ctx: %w", Internal(nil))) {
		t.Error("expected wrapped AppError to be detected")
	}
}
