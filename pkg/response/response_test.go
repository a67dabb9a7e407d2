package response

import (
	"errors"
	"net/http"
	"testing"
)

var errSample = NewError(http.StatusConflict, "busy")

func TestWrapKeepsSentinel(t *testing.T) {
	err := Wrap(errSample, errors.New("second run"))

	if !errors.Is(err, errSample) {
		t.Fatal("wrapped error lost its sentinel")
	}
	if err.Error() != "busy: second run" {
		t.Errorf("Error() = %q", err.Error())
	}
	if Wrap(errSample, nil) != errSample {
		t.Error("Wrap with nil detail should return the sentinel")
	}
}

func TestStatusCode(t *testing.T) {
	if got := StatusCode(Wrap(errSample, errors.New("x")), http.StatusInternalServerError); got != http.StatusConflict {
		t.Errorf("StatusCode() = %d", got)
	}
	if got := StatusCode(errors.New("plain"), http.StatusBadGateway); got != http.StatusBadGateway {
		t.Errorf("fallback = %d", got)
	}
}
