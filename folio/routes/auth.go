// folio/routes/auth.go
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

func AuthRoutes(ctrl *controllers.AuthController) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		token, err := ctrl.Login(r.Context(), req.Username, req.Password)
		if errors.Is(err, controllers.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		if err != nil {
			logging.ErrorLogger.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "login failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	})
	return r
}
