package capture

import (
	"CafeAnalyzer/pkg/response"
	"net/http"
)

var (
	ErrNoMediaSelected    = response.NewError(http.StatusBadRequest, "no media selected")
	ErrUnsupportedMedia   = response.NewError(http.StatusBadRequest, "unsupported media type")
	ErrNotSeekable        = response.NewError(http.StatusBadRequest, "current media is not a video file")
	ErrCameraAccessDenied = response.NewError(http.StatusForbidden, "camera access denied")
	ErrCaptureFailed      = response.NewError(http.StatusInternalServerError, "failed to capture frame")
)
