package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"truck-route-service/internal/ports"
	"truck-route-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeServiceError maps service errors to HTTP statuses: rejected input is
// the caller's fault (400), an unusable routing backend is a bad gateway
// (502), anything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		writeError(w, r, http.StatusBadRequest, verr.Reason)
		return
	}

	var upstream *ports.UpstreamError
	if errors.As(err, &upstream) {
		writeError(w, r, http.StatusBadGateway, upstream.Reason)
		return
	}

	log.Printf("unhandled service error: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}
