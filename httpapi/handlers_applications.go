package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"rentflow/application"
)

type applicationResponse struct {
	ID            string             `json:"id"`
	PropertyID    string             `json:"property_id"`
	PropertyTitle string             `json:"property_title"`
	FullName      string             `json:"full_name"`
	Email         string             `json:"email"`
	Phone         string             `json:"phone"`
	MonthlyIncome int64              `json:"monthly_income"`
	MoveInDate    string             `json:"move_in_date"`
	Notes         string             `json:"notes,omitempty"`
	Status        application.Status `json:"status"`
	StatusDisplay statusDisplay      `json:"status_display"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

type statusDisplay struct {
	Label   string `json:"label"`
	Tone    string `json:"tone"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

func toApplicationResponse(app application.Application) applicationResponse {
	display := app.Status.Display()
	return applicationResponse{
		ID:            app.ID,
		PropertyID:    app.PropertyID,
		PropertyTitle: app.PropertyTitle,
		FullName:      app.FullName,
		Email:         app.Email,
		Phone:         app.Phone,
		MonthlyIncome: app.MonthlyIncome,
		MoveInDate:    app.MoveInDate.Format("2006-01-02"),
		Notes:         app.Notes,
		Status:        app.Status,
		StatusDisplay: statusDisplay{
			Label:   display.Label,
			Tone:    display.Tone,
			Icon:    display.Icon,
			Message: display.Message,
		},
		CreatedAt: app.CreatedAt,
		UpdatedAt: app.UpdatedAt,
	}
}

func toApplicationResponses(apps []application.Application) []applicationResponse {
	out := make([]applicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out
}

type submitRequest struct {
	PropertyID string            `json:"property_id"`
	Draft      application.Draft `json:"draft"`
}

func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}

	app, err := h.apps.Submit(r.Context(), application.SubmitParams{
		PropertyID: req.PropertyID,
		UserID:     userIDFrom(r.Context()),
		Draft:      req.Draft,
	})
	if err != nil {
		h.logger.Warn("application submit failed",
			zap.String("property_id", req.PropertyID),
			zap.String("user_id", userIDFrom(r.Context())),
			zap.Error(err),
		)
		writeError(w, err)
		return
	}

	h.logger.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("property_id", app.PropertyID),
	)
	writeJSON(w, http.StatusCreated, toApplicationResponse(app))
}

func (h *Handler) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.apps.ListByUser(r.Context(), userIDFrom(r.Context()))
	if err != nil {
		h.logger.Error("my applications fetch failed", zap.Error(err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"applications": toApplicationResponses(apps)})
}
