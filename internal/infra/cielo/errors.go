package cielo

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Error is the normalized gateway failure. Every error leaving this package
// is one of these, carrying the HTTP status and the raw vendor payload.
type Error struct {
	StatusCode int
	Code       int
	Message    string
	Body       json.RawMessage
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("cielo: status %d code %d: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("cielo: status %d: %s", e.StatusCode, e.Message)
}

// Retriable reports whether the failure is worth another attempt. Client
// errors mean bad credentials or bad request data; repeating them cannot
// succeed.
func (e *Error) Retriable() bool {
	switch e.StatusCode {
	case 400, 401, 403, 422:
		return false
	}
	return true
}

func newHTTPError(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode, Message: "gateway request failed", Body: body}
	var vendor []vendorError
	if err := json.Unmarshal(body, &vendor); err == nil && len(vendor) > 0 {
		e.Code = vendor[0].Code
		e.Message = vendor[0].Message
	}
	return e
}

// normalizeError folds any failure into a *Error. Already-normalized errors
// pass through logged and unchanged; everything else (timeouts, connection
// resets, decode failures) becomes a status-500 gateway error. The returned
// error is never nil.
func normalizeError(logger *slog.Logger, err error, context string) *Error {
	var gerr *Error
	if errors.As(err, &gerr) {
		logger.Error("gateway error",
			"context", context,
			"status", gerr.StatusCode,
			"code", gerr.Code,
			"message", gerr.Message,
		)
		return gerr
	}
	logger.Error("unexpected gateway failure", "context", context, "error", err)
	return &Error{StatusCode: 500, Message: err.Error()}
}
