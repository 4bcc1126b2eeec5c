// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput          ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidSearchCriteria ErrorCode = "INVALID_SEARCH_CRITERIA"

	ErrCodeBusinessNotFound      ErrorCode = "BUSINESS_NOT_FOUND"
	ErrCodeDirectoryUnavailable  ErrorCode = "DIRECTORY_UNAVAILABLE"
	ErrCodeDirectoryQueryFailed  ErrorCode = "DIRECTORY_QUERY_FAILED"
	ErrCodeDirectoryQueryTimeout ErrorCode = "DIRECTORY_QUERY_TIMEOUT"
	ErrCodeSearchIndexFailed     ErrorCode = "SEARCH_INDEX_FAILED"
	ErrCodeCacheUnavailable      ErrorCode = "CACHE_UNAVAILABLE"

	ErrCodeSessionNotFound    ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeSessionStoreFailed ErrorCode = "SESSION_STORE_FAILED"
	ErrCodeStepIncomplete     ErrorCode = "STEP_INCOMPLETE"
	ErrCodeNavigationBlocked  ErrorCode = "NAVIGATION_BLOCKED"

	ErrCodeInvalidAction ErrorCode = "INVALID_ACTION"

	ErrCodeUploadCancelled ErrorCode = "UPLOAD_CANCELLED"
	ErrCodeUploadTimeout   ErrorCode = "UPLOAD_TIMEOUT"

	ErrCodeShareDeliveryFailed ErrorCode = "SHARE_DELIVERY_FAILED"

	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	ErrCodeTimeout         ErrorCode = "TIMEOUT_ERROR"
	ErrCodeInternal        ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key to the error metadata and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

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

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError reports a job payload that failed schema validation or decoding.
func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid job input", details, false)
}

func NewInvalidSearchCriteriaError(details string) *StandardError {
	return newError(ErrCodeInvalidSearchCriteria, "Invalid search criteria", details, false)
}

func NewBusinessNotFoundError(ref string) *StandardError {
	return newError(ErrCodeBusinessNotFound, "Business not found", fmt.Sprintf("ref: %s", ref), false)
}

// NewDirectoryUnavailableError wraps a connection-level failure of the directory backend.
func NewDirectoryUnavailableError(err error) *StandardError {
	return newError(ErrCodeDirectoryUnavailable, "Business directory unavailable", err.Error(), true)
}

func NewDirectoryQueryFailedError(op string, err error) *StandardError {
	return newError(ErrCodeDirectoryQueryFailed, "Business directory query failed",
		fmt.Sprintf("op: %s, error: %s", op, err.Error()), true)
}

func NewDirectoryQueryTimeoutError(op string) *StandardError {
	return newError(ErrCodeDirectoryQueryTimeout, "Business directory query timeout", fmt.Sprintf("op: %s", op), true)
}

func NewSearchIndexFailedError(err error) *StandardError {
	return newError(ErrCodeSearchIndexFailed, "Search index request failed", err.Error(), true)
}

func NewCacheUnavailableError(err error) *StandardError {
	return newError(ErrCodeCacheUnavailable, "Cache unavailable", err.Error(), true)
}

func NewSessionNotFoundError(sessionID string) *StandardError {
	return newError(ErrCodeSessionNotFound, "Sign-up session not found", fmt.Sprintf("sessionId: %s", sessionID), false)
}

func NewSessionStoreFailedError(err error) *StandardError {
	return newError(ErrCodeSessionStoreFailed, "Sign-up session store failed", err.Error(), true)
}

// NewStepIncompleteError lists the fields or documents still missing for a step.
func NewStepIncompleteError(step int, missing []string) *StandardError {
	return newError(ErrCodeStepIncomplete, fmt.Sprintf("Step %d is incomplete", step),
		strings.Join(missing, ", "), false).WithMetadata("step", step)
}

func NewNavigationBlockedError(details string) *StandardError {
	return newError(ErrCodeNavigationBlocked, "Navigation not permitted", details, false)
}

func NewInvalidActionError(action string) *StandardError {
	return newError(ErrCodeInvalidAction, "Unsupported action", fmt.Sprintf("action: %s", action), false)
}

func NewUploadCancelledError(document string) *StandardError {
	return newError(ErrCodeUploadCancelled, "Document upload cancelled", fmt.Sprintf("document: %s", document), false)
}

func NewUploadTimeoutError(document string) *StandardError {
	return newError(ErrCodeUploadTimeout, "Document upload timed out", fmt.Sprintf("document: %s", document), true)
}

func NewShareDeliveryFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeShareDeliveryFailed, fmt.Sprintf("Referral share via %s failed", channel), err.Error(), true)
}

func NewExternalServiceError(service string, err error) *StandardError {
	return newError(ErrCodeExternalService, fmt.Sprintf("External service '%s' error", service), err.Error(), true)
}

func NewTimeoutError(service string, err error) *StandardError {
	return newError(ErrCodeTimeout, fmt.Sprintf("Service '%s' timeout", service), err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// BPMNErrorMapping maps internal codes to the error codes modelled on BPMN boundary events.
// Codes without an entry are thrown as-is.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInvalidInput:          "INVALID_INPUT",
	ErrCodeInvalidSearchCriteria: "INVALID_SEARCH_CRITERIA",
	ErrCodeBusinessNotFound:      "BUSINESS_NOT_FOUND",
	ErrCodeDirectoryUnavailable:  "DIRECTORY_UNAVAILABLE",
	ErrCodeDirectoryQueryFailed:  "DIRECTORY_UNAVAILABLE",
	ErrCodeDirectoryQueryTimeout: "DIRECTORY_UNAVAILABLE",
	ErrCodeSearchIndexFailed:     "DIRECTORY_UNAVAILABLE",
	ErrCodeCacheUnavailable:      "DIRECTORY_UNAVAILABLE",
	ErrCodeSessionNotFound:       "SESSION_NOT_FOUND",
	ErrCodeSessionStoreFailed:    "SESSION_STORE_FAILED",
	ErrCodeStepIncomplete:        "STEP_INCOMPLETE",
	ErrCodeNavigationBlocked:     "NAVIGATION_BLOCKED",
	ErrCodeInvalidAction:         "INVALID_ACTION",
	ErrCodeUploadCancelled:       "UPLOAD_CANCELLED",
	ErrCodeUploadTimeout:         "UPLOAD_TIMEOUT",
	ErrCodeShareDeliveryFailed:   "SHARE_DELIVERY_FAILED",
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDirectoryUnavailable,
		ErrCodeDirectoryQueryFailed,
		ErrCodeSearchIndexFailed,
		ErrCodeCacheUnavailable,
		ErrCodeSessionStoreFailed,
		ErrCodeShareDeliveryFailed,
		ErrCodeExternalService:
		return 3

	case ErrCodeDirectoryQueryTimeout,
		ErrCodeUploadTimeout,
		ErrCodeTimeout:
		return 2

	default:
		return 0
	}
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
	for k, v := range stdErr.Metadata {
		vars[k] = v
	}

	return &BPMNError{
		Code:           bpmnCode,
		Message:        stdErr.Message,
		Details:        stdErr.Details,
		Retryable:      stdErr.Retryable,
		Retries:        retries,
		ErrorVariables: vars,
	}
}

// AsStandardError unwraps err to a *StandardError, wrapping foreign errors as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == code
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DIRECTORY") || strings.Contains(codeStr, "BUSINESS") ||
		strings.Contains(codeStr, "SEARCH_INDEX") || strings.Contains(codeStr, "CACHE"):
		return "DIRECTORY"
	case strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "STEP") ||
		strings.Contains(codeStr, "NAVIGATION"):
		return "SIGNUP"
	case strings.Contains(codeStr, "UPLOAD"):
		return "DOCUMENTS"
	case strings.Contains(codeStr, "SHARE"):
		return "REFERRAL"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
