package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError reports a missing or malformed request parameter. Always
// surfaced as HTTP 400 before any external call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports that geocoding produced zero matches. Status holds
// the upstream HTTP status when one exists; zero means the provider answered
// 200 with an empty result set.
type NotFoundError struct {
	What   string
	Status int
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

// UpstreamError reports a failed third-party call. Status and Message are
// passed through from the upstream response when available.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream status %d: %s", e.Status, e.Message)
	}
	return e.Message
}

// ToolError reports a failed tool execution inside a chat turn, such as the
// historian's date-boundary check. Surfaces as a generic chat failure.
type ToolError struct {
	Msg string
}

func (e *ToolError) Error() string { return e.Msg }

// HTTPStatus translates an error from the weather or chat pipeline into the
// response status. Unknown errors map to 500.
func HTTPStatus(err error) int {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	var nf *NotFoundError
	if errors.As(err, &nf) {
		if nf.Status > 0 {
			return nf.Status
		}
		return http.StatusInternalServerError
	}
	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.Status > 0 {
			return ue.Status
		}
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// ClientMessage returns the message exposed in the JSON error body. Upstream
// failures without a usable message collapse to a generic one.
func ClientMessage(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		if ue.Message == "" {
			return "Internal Server Error"
		}
		return ue.Message
	}
	return err.Error()
}
