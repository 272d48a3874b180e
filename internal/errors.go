package internal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidID        ErrorCode = "INVALID_ID"
	ErrCodeInvalidDate      ErrorCode = "INVALID_DATE"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidAmount    ErrorCode = "INVALID_AMOUNT"
	ErrCodeDuplicate        ErrorCode = "DUPLICATE"
	ErrCodeBodyTooLarge     ErrorCode = "BODY_TOO_LARGE"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeRoleMismatch       ErrorCode = "ROLE_MISMATCH"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"
	ErrCodeAccessDenied       ErrorCode = "ACCESS_DENIED"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeRoleNotFound       ErrorCode = "ROLE_NOT_FOUND"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"
	ErrCodeRoleInUse          ErrorCode = "ROLE_IN_USE"
	ErrCodeSystemRole         ErrorCode = "SYSTEM_ROLE"
	ErrCodePermissionNotFound ErrorCode = "PERMISSION_NOT_FOUND"

	ErrCodeStudentNotFound  ErrorCode = "STUDENT_NOT_FOUND"
	ErrCodeTeacherNotFound  ErrorCode = "TEACHER_NOT_FOUND"
	ErrCodeClassNotFound    ErrorCode = "CLASS_NOT_FOUND"
	ErrCodeSessionNotFound  ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeHistoryNotFound  ErrorCode = "HISTORY_NOT_FOUND"
	ErrCodeHistoryClosed    ErrorCode = "HISTORY_CLOSED"
	ErrCodeTransferNotFound ErrorCode = "TRANSFER_NOT_FOUND"
	ErrCodeFeeNotFound      ErrorCode = "FEE_NOT_FOUND"
	ErrCodeExamNotFound     ErrorCode = "EXAM_NOT_FOUND"
	ErrCodeBookNotFound     ErrorCode = "BOOK_NOT_FOUND"
	ErrCodeBookUnavailable  ErrorCode = "BOOK_UNAVAILABLE"
	ErrCodeIssueNotFound    ErrorCode = "ISSUE_NOT_FOUND"
	ErrCodeRouteNotFound    ErrorCode = "ROUTE_NOT_FOUND"
	ErrCodeMessageNotFound  ErrorCode = "MESSAGE_NOT_FOUND"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins field messages of a validation error; other errors
// return their message unchanged.
func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	clone := *e
	clone.Details = details
	return &clone
}

// Is matches copies of a sentinel produced by WithCause or WithDetails.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code && e.Message == t.Message
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewConflictError reports a uniqueness violation. Clients see it as a bad
// request, same as the other input errors.
func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

var (
	ErrInvalidCredentials = NewUnauthorizedError("Invalid credentials", ErrCodeInvalidCredentials)
	ErrRoleMismatch       = NewUnauthorizedError("Invalid credentials for selected role", ErrCodeRoleMismatch)
	ErrUserInactive       = NewUnauthorizedError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
	ErrNotAuthenticated   = NewUnauthorizedError("Please authenticate", ErrCodeInvalidToken)
	ErrAccessDenied       = NewForbiddenError("Access denied. Insufficient permissions.", ErrCodeAccessDenied)

	ErrUserNotFound       = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrRoleNotFound       = NewNotFoundError("Role not found", ErrCodeRoleNotFound)
	ErrInvalidRole        = NewValidationError("Invalid role", ErrCodeInvalidRole)
	ErrRoleNotSelfService = NewForbiddenError("Role cannot be assigned through registration", ErrCodeInvalidRole)
	ErrSystemRoleUpdate   = NewForbiddenError("Cannot modify system role without explicit permission", ErrCodeSystemRole)
	ErrSystemRoleDelete   = NewForbiddenError("Cannot delete system role", ErrCodeSystemRole)
	ErrPermissionNotFound = NewNotFoundError("Permission not found", ErrCodePermissionNotFound)

	ErrStudentNotFound     = NewNotFoundError("Student not found", ErrCodeStudentNotFound)
	ErrTeacherNotFound     = NewNotFoundError("Teacher not found", ErrCodeTeacherNotFound)
	ErrClassNotFound       = NewNotFoundError("Class not found", ErrCodeClassNotFound)
	ErrSessionNotFound     = NewNotFoundError("Session not found", ErrCodeSessionNotFound)
	ErrNoCurrentSession    = NewNotFoundError("No current session found", ErrCodeSessionNotFound)
	ErrHistoryNotFound     = NewNotFoundError("Academic history not found", ErrCodeHistoryNotFound)
	ErrHistoryNotActive    = NewValidationError("Academic history is not active for this session", ErrCodeHistoryClosed)
	ErrTransferNotFound    = NewNotFoundError("Transfer request not found", ErrCodeTransferNotFound)
	ErrTransferNotPending  = NewValidationError("Transfer request is not pending", ErrCodeInvalidStatus)
	ErrFeeNotFound         = NewNotFoundError("Fee not found", ErrCodeFeeNotFound)
	ErrExamNotFound        = NewNotFoundError("Exam not found", ErrCodeExamNotFound)
	ErrBookNotFound        = NewNotFoundError("Book not found", ErrCodeBookNotFound)
	ErrBookUnavailable     = NewValidationError("Book not available", ErrCodeBookUnavailable)
	ErrIssueNotFound       = NewNotFoundError("Book issue not found", ErrCodeIssueNotFound)
	ErrBookAlreadyReturned = NewValidationError("Book already returned", ErrCodeInvalidStatus)
	ErrRouteNotFound       = NewNotFoundError("Transport route not found", ErrCodeRouteNotFound)
	ErrMessageNotFound     = NewNotFoundError("Message not found", ErrCodeMessageNotFound)
)

var ErrApprovedTransferNotFound = NewNotFoundError("Approved transfer not found", ErrCodeTransferNotFound)

var ErrBodyTooLarge = &AppError{
	Type:       ErrorTypeValidation,
	Code:       ErrCodeBodyTooLarge,
	Message:    "Request body too large",
	StatusCode: http.StatusRequestEntityTooLarge,
}

// ErrStudentStatusChanged is returned when a promotion or transfer moved the
// student after the caller read it.
var ErrStudentStatusChanged = NewConflictError("Student status changed, reload and retry", ErrCodeInvalidStatus)

// NewRoleInUseError is returned when users still reference a role being deleted.
func NewRoleInUseError(users int64) *AppError {
	return NewValidationError(fmt.Sprintf("Cannot delete role. %d user(s) still have this role.", users), ErrCodeRoleInUse)
}

// IsAppError unwraps err looking for an *AppError.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Response is the error envelope written to clients.
type Response struct {
	Error string `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, Response) {
	status := e.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if status == http.StatusInternalServerError {
		return status, Response{Error: "internal server error"}
	}
	return status, Response{Error: e.GetDetailedMessage()}
}
