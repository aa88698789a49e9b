package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"rentflow/application"
	"rentflow/dashboard"
)

// handleDashboard serves the admin view: one fetch of the full collection,
// summary stats, the 14-day series, and the (optionally searched) list.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboard.NewView(h.apps, h.catalog)
	if err := view.Load(r.Context()); err != nil {
		h.logger.Error("dashboard load failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats":        view.Stats(),
		"series":       view.TimeSeries(),
		"applications": toApplicationResponses(view.Search(r.URL.Query().Get("search"))),
	})
}

type updateStatusRequest struct {
	Status application.Status `json:"status"`
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}

	applicationID := chi.URLParam(r, "id")
	app, err := h.apps.Decide(r.Context(), applicationID, req.Status)
	if err != nil {
		h.logger.Warn("status update failed",
			zap.String("application_id", applicationID),
			zap.String("status", string(req.Status)),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	h.logger.Info("application decided",
		zap.String("application_id", app.ID),
		zap.String("status", string(app.Status)),
	)
	writeJSON(w, http.StatusOK, toApplicationResponse(app))
}
