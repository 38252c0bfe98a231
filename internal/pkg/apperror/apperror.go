package apperror

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code       int    // HTTP Status Code (e.g., 400, 404)
	Message    string // User-facing error message
	RetryAfter int    // Backoff hint in seconds; only set for throttling errors
	Err        error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code and message, so copies produced by
// WithRetryAfter still compare equal to their base error under errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithRetryAfter returns a copy of the error carrying a backoff hint in seconds.
// Callers surface it as the Retry-After header and in the response body.
func (e *AppError) WithRetryAfter(seconds int) *AppError {
	cp := *e
	cp.RetryAfter = seconds
	return &cp
}
