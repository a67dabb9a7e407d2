package cafeapi

import (
	"CafeAnalyzer/pkg/response"
	"net/http"
)

var (
	ErrNetworkUnreachable = response.NewError(http.StatusBadGateway, "analysis server unreachable")
	ErrServerError        = response.NewError(http.StatusBadGateway, "analysis server error")
	ErrMalformedResponse  = response.NewError(http.StatusBadGateway, "malformed analysis response")
	ErrRenderingService   = response.NewError(http.StatusBadGateway, "report rendering failed")
)

// Error is a failed call to the analysis server. Kind is one of the sentinels
// above and matches with errors.Is; Message is what the user should see.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, status int, message string, cause error) *Error {
	if message == "" {
		message = kind.Error()
	}
	return &Error{Kind: kind, Status: status, Message: message, Err: cause}
}
