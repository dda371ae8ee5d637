package listview

import "errors"

// RequestError is a failed call against the backing collection endpoint,
// carrying the server-provided message when the body had one.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// ConflictError is a mutation rejected because of a dependent-record
// constraint. Its message is surfaced to the user verbatim, never replaced
// by the generic fallback.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// UserMessage converts err into the text shown to the user: a conflict
// message verbatim, otherwise the server message if present, otherwise
// the fallback.
func UserMessage(err error, fallback string) string {
	var conflict *ConflictError
	if errors.As(err, &conflict) && conflict.Message != "" {
		return conflict.Message
	}
	var req *RequestError
	if errors.As(err, &req) && req.Message != "" {
		return req.Message
	}
	return fallback
}
