package services

import "fmt"

// RequestError reports input the caller can correct. The HTTP layer maps
// it to a 400 and sends Msg verbatim, so the text is written for end
// users.
type RequestError struct {
	Msg string
}

func (e *RequestError) Error() string { return e.Msg }

func requestErrorf(format string, args ...any) error {
	return &RequestError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing named resource. Maps to a 404.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

func notFoundf(format string, args ...any) error {
	return &NotFoundError{Msg: fmt.Sprintf(format, args...)}
}

// AuthError reports a failed authentication attempt. Maps to a 401. The
// message never distinguishes a wrong password from an unknown username.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

// UpstreamError wraps a failure of the external prediction backend so the
// HTTP layer can answer 502 instead of blaming the request.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string { return e.Err.Error() }
func (e *UpstreamError) Unwrap() error { return e.Err }
