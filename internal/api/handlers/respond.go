package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/devconnect/api/internal/api/types"
	appErr "github.com/devconnect/api/pkg/errors"
	"github.com/devconnect/api/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.MessageResponse{Msg: msg})
}

func writeFieldErrors(w http.ResponseWriter, resp types.ErrorsResponse) {
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeServiceError maps an AppError onto the route's wire shape. NotFound
// status varies per route (400 for profile lookups, 404 for sub-entries and
// the github proxy), so the caller picks it. Anything unexpected becomes a
// generic 500 and the details stay in the server log.
func writeServiceError(w http.ResponseWriter, err error, notFoundStatus int) {
	switch {
	case appErr.IsCode(err, appErr.CodeNotFound):
		writeMsg(w, notFoundStatus, appErr.Message(err))
	case appErr.IsCode(err, appErr.CodeConflict), appErr.IsCode(err, appErr.CodeUnauthorized):
		writeFieldErrors(w, types.ErrorsResponse{Errors: []types.FieldError{{Msg: appErr.Message(err)}}})
	default:
		logger.L().Error("request failed", zap.Error(err))
		writeMsg(w, http.StatusInternalServerError, "Server Error")
	}
}
