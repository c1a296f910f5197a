package routes

import (
	"net/http"
	"strconv"
	"time"

	"folio/folio/config"
	"folio/folio/controllers"
	"folio/folio/middlewares"
	"folio/folio/utils/logging"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminRoutes serves the dashboard panels. Everything here sits behind the
// JWT middleware.
func AdminRoutes(analyticsCtrl *controllers.AnalyticsController, contactCtrl *controllers.ContactController, cfg config.Config) chi.Router {
	r := chi.NewRouter()
	r.Use(middlewares.AuthMiddleware(cfg))

	r.Get("/analytics/chat", func(w http.ResponseWriter, r *http.Request) {
		stats, err := analyticsCtrl.ChatStats(r.Context())
		if err != nil {
			logging.ErrorLogger.Error("chat stats failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load chat stats")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	})

	r.Get("/analytics/pages", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		views, err := analyticsCtrl.PageStats(r.Context(), limit)
		if err != nil {
			logging.ErrorLogger.Error("page stats failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load page stats")
			return
		}
		writeJSON(w, http.StatusOK, views)
	})

	r.Post("/analytics/archive", func(w http.ResponseWriter, r *http.Request) {
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		if days <= 0 {
			days = 30
		}
		cutoff := time.Now().AddDate(0, 0, -days)
		key, n, err := analyticsCtrl.Archive(r.Context(), cutoff)
		if err != nil {
			logging.ErrorLogger.Error("archive failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "archive failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"key": key, "archived": n})
	})

	r.Get("/messages", func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		msgs, err := contactCtrl.List(r.Context(), limit)
		if err != nil {
			logging.ErrorLogger.Error("list messages failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "could not load messages")
			return
		}
		writeJSON(w, http.StatusOK, msgs)
	})

	return r
}
