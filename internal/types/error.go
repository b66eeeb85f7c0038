package types

import "fmt"

// Error type tags surfaced in the error envelope so API clients can branch
// on the failure class without parsing messages.
const (
	ErrTypeAuthInit = "journal.authorization.init"
	ErrTypeAuthUser = "journal.authorization.user"
	ErrTypeRequest  = "journal.request"
	ErrTypeInternal = "journal.internal"
)

// CustomError is an error carrying an HTTP status code and a machine type tag,
// consumed by the global Fiber error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// NewCustomError builds a CustomError, formatting the message like fmt.Sprintf.
func NewCustomError(code int, errType, format string, args ...interface{}) *CustomError {
	return &CustomError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Type:    errType,
	}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
