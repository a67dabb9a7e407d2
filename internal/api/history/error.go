package history

import (
	"CafeAnalyzer/pkg/response"
	"net/http"
)

var (
	ErrHistoryNotFound = response.NewError(http.StatusNotFound, "history not found")
	ErrCorruptHistory  = response.NewError(http.StatusInternalServerError, "stored history is corrupt")
	ErrSaveHistory     = response.NewError(http.StatusInternalServerError, "failed to persist history")
)
