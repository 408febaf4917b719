package apperror

import "net/http"

// AppError is an error carrying the HTTP status it should surface with.
// None of these are fatal to the process; the session stays alive and
// recoverable by user action.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest covers rejected submissions: invalid intake fields, missing or
// empty answers. The stage does not advance and nothing is persisted.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Conflict covers operations issued against the wrong stage.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// UnprocessableEntity covers blocking state errors such as an empty tech
// stack reaching the assessment stage.
func UnprocessableEntity(message string) *AppError {
	return New(http.StatusUnprocessableEntity, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
