package models

// Response represents a generic API response structure.
type Response struct {
	Success      int         `json:"success"`
	ErrorCode    string      `json:"error_code,omitempty"`
	ErrorDetails string      `json:"error_details,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

// Error codes set on Response.ErrorCode for request-level failures. Database
// failures surface the pq error code name instead.
const (
	ErrCodeValidation   = "validation_error"
	ErrCodeNotFound     = "not_found"
	ErrCodeDuplicate    = "duplicate"
	ErrCodeNotEnrolled  = "not_enrolled"
	ErrCodeForbidden    = "forbidden"
	ErrCodeUnauthorized = "unauthorized"
)
