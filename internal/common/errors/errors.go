// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
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
	ErrCodeTemplateNotFound  ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeTemplateMalformed ErrorCode = "TEMPLATE_MALFORMED"
	ErrCodeAnchorNotFound    ErrorCode = "ANCHOR_NOT_FOUND"

	ErrCodeMalformedInput          ErrorCode = "MALFORMED_INPUT"
	ErrCodeValueRenderingFailed    ErrorCode = "VALUE_RENDERING_FAILED"
	ErrCodeSerializationFailed     ErrorCode = "SERIALIZATION_FAILED"
	ErrCodeUnsupportedDocumentType ErrorCode = "UNSUPPORTED_DOCUMENT_TYPE"
	ErrCodeValidationFailed        ErrorCode = "VALIDATION_FAILED"

	ErrCodeRecordNotFound           ErrorCode = "RECORD_NOT_FOUND"
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"

	ErrCodeCacheWriteFailed       ErrorCode = "CACHE_WRITE_FAILED"
	ErrCodeIndexWriteFailed       ErrorCode = "INDEX_WRITE_FAILED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
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

// NewTemplateNotFoundError is fatal for the generation request.
func NewTemplateNotFoundError(documentType, path string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "Template not found",
		Details:   fmt.Sprintf("documentType: %s, path: %s", documentType, path),
		Retryable: false,
		Metadata:  map[string]interface{}{"documentType": documentType},
		Timestamp: time.Now().UTC(),
	}
}

// NewTemplateMalformedError reports a template that is not a readable DOCX package.
func NewTemplateMalformedError(documentType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateMalformed,
		Message:   "Template is not a valid DOCX package",
		Details:   fmt.Sprintf("documentType: %s, error: %s", documentType, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewAnchorNotFoundError(anchor string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAnchorNotFound,
		Message:   "Section anchor not found in template",
		Details:   fmt.Sprintf("anchor: %s", anchor),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewMalformedInputError(block, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMalformedInput,
		Message:   "Structured input could not be interpreted",
		Details:   fmt.Sprintf("block: %s, %s", block, details),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewValueRenderingFailedError(field string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeValueRenderingFailed,
		Message:   "Field value could not be rendered",
		Details:   fmt.Sprintf("field: %s, error: %s", field, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSerializationFailedError is fatal for the generation request.
func NewSerializationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSerializationFailed,
		Message:   "Generated document could not be serialized",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnsupportedDocumentTypeError(documentType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnsupportedDocumentType,
		Message:   "Unsupported document type",
		Details:   fmt.Sprintf("documentType: %s", documentType),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Input validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordNotFoundError covers both a missing record and a record owned by someone else.
func NewRecordNotFoundError(recordID, ownerID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordNotFound,
		Message:   "Record not found",
		Details:   fmt.Sprintf("recordId: %s, ownerId: %s", recordID, ownerID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("queryType: %s", queryType),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewCacheWriteFailedError(key string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheWriteFailed,
		Message:   "Cache write failed",
		Details:   fmt.Sprintf("key: %s, error: %s", key, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewIndexWriteFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexWriteFailed,
		Message:   "Search index write failed",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification send error.
func NewNotificationSendFailedError(notificationType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("type: %s, error: %s", notificationType, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewBrokerUnavailableError covers a Zeebe gateway that cannot be reached or
// did not answer in time.
func NewBrokerUnavailableError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBrokerUnavailable,
		Message:   "Workflow broker unavailable",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 4. Error Conversion to BPMN
// ==========================

// BPMNErrorMapping maps internal error codes to the error codes caught by boundary events.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeTemplateNotFound:         "TEMPLATE_NOT_FOUND",
	ErrCodeTemplateMalformed:        "TEMPLATE_NOT_FOUND",
	ErrCodeAnchorNotFound:           "ANCHOR_NOT_FOUND",
	ErrCodeMalformedInput:           "MALFORMED_INPUT",
	ErrCodeValueRenderingFailed:     "VALUE_RENDERING_FAILED",
	ErrCodeSerializationFailed:      "SERIALIZATION_FAILED",
	ErrCodeUnsupportedDocumentType:  "UNSUPPORTED_DOCUMENT_TYPE",
	ErrCodeValidationFailed:         "VALIDATION_FAILED",
	ErrCodeRecordNotFound:           "RECORD_NOT_FOUND",
	ErrCodeDatabaseConnectionFailed: "DATABASE_CONNECTION_FAILED",
	ErrCodeQueryExecutionFailed:     "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:             "QUERY_TIMEOUT",
	ErrCodeCacheWriteFailed:         "CACHE_WRITE_FAILED",
	ErrCodeIndexWriteFailed:         "INDEX_WRITE_FAILED",
	ErrCodeNotificationSendFailed:   "NOTIFICATION_SEND_FAILED",
	ErrCodeBrokerUnavailable:        "BROKER_UNAVAILABLE",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeCacheWriteFailed,
		ErrCodeIndexWriteFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeBrokerUnavailable:
		return 3

	case ErrCodeQueryTimeout:
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

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// ==========================
// 5. Utility Functions
// ==========================

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsFatal reports whether the code aborts a generation request. Everything
// else degrades to a diagnostic on the produced document.
func IsFatal(code ErrorCode) bool {
	switch code {
	case ErrCodeAnchorNotFound, ErrCodeMalformedInput, ErrCodeValueRenderingFailed:
		return false
	default:
		return true
	}
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "TEMPLATE") || strings.Contains(codeStr, "ANCHOR"):
		return "TEMPLATE"
	case strings.Contains(codeStr, "RECORD") || strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "INDEX"):
		return "STORAGE"
	case strings.Contains(codeStr, "BROKER"):
		return "BROKER"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "RENDERING") || strings.Contains(codeStr, "SERIALIZATION"):
		return "RENDERING"
	case strings.Contains(codeStr, "MALFORMED") || strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "UNSUPPORTED"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
