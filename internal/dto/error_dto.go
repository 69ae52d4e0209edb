package dto

// Error codes returned in the "error" field of the standard envelope.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeExpiredToken      = "EXPIRED_TOKEN"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicateEntry    = "DUPLICATE_ENTRY"
	CodeInvalidStatus     = "INVALID_STATUS"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeInternal          = "INTERNAL_ERROR"
)

// FieldError names one failing field of a validation error. Validation runs
// before any mutation and reports every failing field at once.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error envelope: {message, error: <CODE>}.
type ErrorResponse struct {
	Message string       `json:"message"`
	Code    string       `json:"error"`
	Errors  []FieldError `json:"errors,omitempty"`
}
