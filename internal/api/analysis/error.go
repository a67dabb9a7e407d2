package analysis

import (
	"CafeAnalyzer/pkg/response"
	"net/http"
)

var (
	ErrAnalysisInProgress = response.NewError(http.StatusConflict, "analysis already in progress")
	ErrNoCurrentResult    = response.NewError(http.StatusNotFound, "no analysis has been run yet")
)
