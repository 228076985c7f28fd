package handlers

import (
	"context"
	"fieldsales-route-service/internal/api/dto"
	"fieldsales-route-service/internal/domain"
	"log"
	"net/http"
	"strings"
)

type LocationRecorder interface {
	Record(ctx context.Context, userID string, p domain.GeoPoint) error
}

// LocationHandler accepts device location fixes from the mobile client.
type LocationHandler struct {
	Recorder LocationRecorder
}

func (h *LocationHandler) Record(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	if h.Recorder == nil {
		writeError(w, r, http.StatusServiceUnavailable, "location storage is not configured")
		return
	}

	var req dto.LocationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "user_id is required")
		return
	}

	p := domain.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := h.Recorder.Record(r.Context(), userID, p); err != nil {
		log.Printf("record location failed: user_id=%s err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
