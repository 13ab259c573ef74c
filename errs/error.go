package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// Machine-readable error codes understood by every layer of the app.
const (
	// ECONFLICT is returned when a uniqueness constraint would be violated,
	// like registering an already taken handle.
	ECONFLICT = "conflict"
	// ECONSISTENCY is returned when an invariant the store is supposed to
	// guarantee turned out violated, like a tweet referencing a user that
	// no longer exists. It indicates corruption, not a normal not-found.
	ECONSISTENCY = "consistency"
	// EINTERNAL is returned for unexpected failures, including any error
	// coming out of the underlying storage.
	EINTERNAL = "internal"
	// EINVALID is returned for malformed input, like an empty tweet body
	// or a user trying to follow themselves.
	EINVALID = "invalid"
	// ENOTFOUND is returned when a referenced entity is absent.
	ENOTFOUND = "not_found"
	// EUNAUTHORIZED is returned when the caller may not perform the
	// requested action.
	EUNAUTHORIZED = "unauthorized"
)

// Error is an application error, carrying a machine-readable Code and a
// human-readable Message.
type Error struct {
	Code string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("chirper error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an Error with the given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code: code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of any error. A nil error has no code and any
// non-application error is reported as EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of any error. Non-application errors get
// a generic message so internals never leak to a client.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "An internal error has occurred."
}

// codes maps the app's error codes to http status codes, for the transport.
var codes = map[string]int{
	ECONFLICT: http.StatusConflict,
	ECONSISTENCY: http.StatusInternalServerError,
	EINTERNAL: http.StatusInternalServerError,
	EINVALID: http.StatusBadRequest,
	ENOTFOUND: http.StatusNotFound,
	EUNAUTHORIZED: http.StatusUnauthorized,
}

// errorResponse is the json body sent to the client for any failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// ReturnError writes an error to the response as json, with the http status
// its code maps to. Internal and consistency errors are logged, since those
// are the operator's problem rather than the client's.
func ReturnError(w http.ResponseWriter, r *http.Request, err error) {
	code, message := ErrorCode(err), ErrorMessage(err)
	if code == EINTERNAL || code == ECONSISTENCY {
		LogError(r, err)
	}
	status, ok := codes[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&errorResponse{Error: message})
}

// LogError logs an error together with the request it happened on.
func LogError(r *http.Request, err error) {
	log.Printf("[http] error: %s %s: %s", r.Method, r.URL.Path, err)
}
