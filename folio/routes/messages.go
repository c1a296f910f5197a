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

func MessageRoutes(ctrl *controllers.ContactController) chi.Router {
	r := chi.NewRouter()

	// POST /api/messages : contact-form submission. The mail watcher picks
	// it up afterwards; email delivery never blocks this response.
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		msg, err := ctrl.Create(r.Context(), req)
		if errors.Is(err, controllers.ErrInvalidContact) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			logging.ErrorLogger.Error("save contact message failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not save message")
			return
		}
		writeJSON(w, http.StatusCreated, msg)
	})

	return r
}
