package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_UserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *StandardError
		want string
	}{
		{
			name: "configuration",
			err:  NewConfigurationError("api_key empty"),
			want: "Repliers API key is not configured; set repliers.api_key first.",
		},
		{
			name: "http",
			err:  NewHTTPError(401, `{"message":"bad key"}`),
			want: `HTTP error 401: {"message":"bad key"}`,
		},
		{
			name: "network",
			err:  NewNetworkError(stderrors.New("dial tcp: connection refused")),
			want: "Request failed: dial tcp: connection refused",
		},
		{
			name: "decode",
			err:  NewDecodeError(stderrors.New("invalid character '<'")),
			want: "Failed to parse response JSON: invalid character '<'",
		},
		{
			name: "unexpected",
			err:  NewUnexpectedError(stderrors.New("boom")),
			want: "Unexpected error: boom",
		},
		{
			name: "invalid filters",
			err:  NewInvalidFilterFormatError("unknown filter \"town\""),
			want: "Invalid filters: unknown filter \"town\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.UserMessage())
			assert.False(t, tt.err.Retryable)
		})
	}
}

func TestAsAndIsCode(t *testing.T) {
	assert.Nil(t, As(nil))

	wrapped := fmt.Errorf("search: %w", NewHTTPError(503, "down"))
	assert.True(t, IsCode(wrapped, ErrCodeHTTP))
	assert.False(t, IsCode(wrapped, ErrCodeNetwork))
	assert.Equal(t, 503, As(wrapped).StatusCode)

	plain := stderrors.New("plain")
	stdErr := As(plain)
	assert.Equal(t, ErrCodeUnexpected, stdErr.Code)
	assert.ErrorIs(t, stdErr, plain)
}

func TestConvertToBPMNError(t *testing.T) {
	bpmn := ConvertToBPMNError(NewHTTPError(500, "server error"))

	assert.Equal(t, "LISTING_API_HTTP_ERROR", bpmn.Code)
	assert.Equal(t, "HTTP error 500: server error", bpmn.Message)
	assert.Equal(t, 0, bpmn.Retries)

	vars := bpmn.ToErrorVariables()
	assert.Equal(t, "LISTING_API_HTTP_ERROR", vars["errorCode"])
	assert.Equal(t, "HTTP_ERROR", vars["originalErrorCode"])
	assert.Equal(t, 500, vars["statusCode"])
	require.Contains(t, vars, "timestamp")

	unknown := ConvertToBPMNError(&StandardError{Code: "SOMETHING_ELSE", Details: "x"})
	assert.Equal(t, "SOMETHING_ELSE", unknown.Code)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "CONFIGURATION", GetErrorCategory(ErrCodeConfiguration))
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeHTTP))
	assert.Equal(t, "UPSTREAM", GetErrorCategory(ErrCodeNetwork))
	assert.Equal(t, "RESPONSE", GetErrorCategory(ErrCodeDecode))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidFilterFormat))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeUnexpected))
	assert.False(t, IsRetryableErrorCode(ErrCodeNetwork))
}
