// Package errors provides standardized error handling for listing searches and their BPMN workflow integration.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	ErrCodeHTTP          ErrorCode = "HTTP_ERROR"
	ErrCodeNetwork       ErrorCode = "NETWORK_ERROR"
	ErrCodeDecode        ErrorCode = "DECODE_ERROR"
	ErrCodeUnexpected    ErrorCode = "UNEXPECTED_ERROR"

	ErrCodeInvalidFilterFormat ErrorCode = "INVALID_FILTER_FORMAT"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	StatusCode int                    `json:"statusCode,omitempty"`
	Retryable  bool                   `json:"retryable"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	cause      error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// UserMessage renders the error the way it is reported back to a search caller.
func (e *StandardError) UserMessage() string {
	switch e.Code {
	case ErrCodeConfiguration:
		return e.Message
	case ErrCodeHTTP:
		return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Details)
	case ErrCodeNetwork:
		return fmt.Sprintf("Request failed: %s", e.Details)
	case ErrCodeDecode:
		return fmt.Sprintf("Failed to parse response JSON: %s", e.Details)
	case ErrCodeInvalidFilterFormat:
		return fmt.Sprintf("Invalid filters: %s", e.Details)
	default:
		return fmt.Sprintf("Unexpected error: %s", e.Details)
	}
}

// ==========================
// 2. BPMN Error Integration
// ==========================

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

// ==========================
// 3. Error Constructors
// ==========================

// NewConfigurationError is returned before any network call when the API key is missing.
func NewConfigurationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfiguration,
		Message:   "Repliers API key is not configured; set repliers.api_key first.",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewHTTPError wraps a non-2xx upstream response. Details carry the raw body text.
func NewHTTPError(statusCode int, body string) *StandardError {
	return &StandardError{
		Code:       ErrCodeHTTP,
		Message:    fmt.Sprintf("Listing API returned status %d", statusCode),
		Details:    body,
		StatusCode: statusCode,
		Retryable:  false,
		Timestamp:  time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport failure (DNS, connection refused, timeout).
func NewNetworkError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNetwork,
		Message:   "Listing API request failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewDecodeError wraps a response body that is not valid JSON.
func NewDecodeError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDecode,
		Message:   "Listing API response is not valid JSON",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

func NewUnexpectedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnexpected,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewInvalidFilterFormatError creates a non-retryable filter format error.
func NewInvalidFilterFormatError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidFilterFormat,
		Message:   "Invalid filter format",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// As normalizes any error into a StandardError. Errors of unknown shape become UNEXPECTED_ERROR.
func As(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	return NewUnexpectedError(err)
}

// IsCode reports whether err is a StandardError carrying code.
func IsCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return stderrors.As(err, &stdErr) && stdErr.Code == code
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeConfiguration:       "LISTING_SEARCH_NOT_CONFIGURED",
	ErrCodeHTTP:                "LISTING_API_HTTP_ERROR",
	ErrCodeNetwork:             "LISTING_API_UNREACHABLE",
	ErrCodeDecode:              "LISTING_API_BAD_RESPONSE",
	ErrCodeUnexpected:          "LISTING_SEARCH_FAILED",
	ErrCodeInvalidFilterFormat: "INVALID_FILTER_FORMAT",
}

// GetRetryCount returns the recommended retry count. No listing-search failure is retried.
func GetRetryCount(ErrorCode) int {
	return 0
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	vars := map[string]interface{}{
		"originalErrorCode": string(stdErr.Code),
		"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
	}
	if stdErr.StatusCode != 0 {
		vars["statusCode"] = stdErr.StatusCode
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.UserMessage(),
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "CONFIGURATION"):
		return "CONFIGURATION"
	case strings.Contains(codeStr, "HTTP") || strings.Contains(codeStr, "NETWORK"):
		return "UPSTREAM"
	case strings.Contains(codeStr, "DECODE"):
		return "RESPONSE"
	case strings.Contains(codeStr, "INVALID") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
