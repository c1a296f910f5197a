package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"folio/folio/controllers"
	"folio/folio/utils/logging"
	"folio/folio/utils/types"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AnalyticsRoutes is the public ingest surface the widget and pages post to.
// Writes are best-effort on the client; the server still answers honestly.
func AnalyticsRoutes(ctrl *controllers.AnalyticsController) chi.Router {
	r := chi.NewRouter()

	r.Post("/events", func(w http.ResponseWriter, r *http.Request) {
		var req types.EventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := ctrl.RecordEvent(r.Context(), req); err != nil {
			logging.ErrorLogger.Error("record event failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not record event")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	})

	r.Post("/sessions", func(w http.ResponseWriter, r *http.Request) {
		var req types.SessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := ctrl.RecordSession(r.Context(), req); err != nil {
			if errors.Is(err, controllers.ErrInvalidSession) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			logging.ErrorLogger.Error("record session failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not record session")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
	})

	return r
}
