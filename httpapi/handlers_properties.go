package httpapi

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"rentflow/catalog"
)

type propertyResponse struct {
	catalog.Property
	Taken bool `json:"taken"`
}

// handleListProperties returns the filtered catalog. Properties with an
// approved application are flagged so the listing can badge them; a store
// failure only degrades the badge, never the listing itself.
func (h *Handler) handleListProperties(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := catalog.Filters{
		Search:  q.Get("search"),
		City:    q.Get("city"),
		MinRent: intParam(q.Get("min_rent")),
		MaxRent: intParam(q.Get("max_rent")),
		MinBeds: intParam(q.Get("beds")),
	}

	approved, err := h.apps.ApprovedPropertyIDs(r.Context())
	if err != nil {
		h.logger.Warn("approved property lookup failed", zap.Error(err))
		approved = map[string]bool{}
	}

	properties := h.catalog.Filter(filters)
	out := make([]propertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, propertyResponse{Property: p, Taken: approved[p.ID]})
	}

	writeJSON(w, http.StatusOK, map[string]any{"properties": out})
}

func (h *Handler) handleListCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"cities": h.catalog.Cities()})
}

func intParam(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
