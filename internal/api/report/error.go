package report

import (
	"CafeAnalyzer/pkg/response"
	"net/http"
)

var (
	ErrUnsupportedFormat = response.NewError(http.StatusBadRequest, "unsupported report format")
)
