package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"airfoil-lab-service/internal/airfoil"
	"airfoil-lab-service/internal/ports"
	"airfoil-lab-service/internal/services"
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

// decodeBody decodes a single JSON object into dst, rejecting unknown
// fields and trailing content. The 400 response is already written when
// it returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps service-layer errors onto HTTP statuses. Anything
// unrecognized is logged and surfaces as a plain 500 so internals stay
// internal.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var reqErr *services.RequestError
	var nfErr *services.NotFoundError
	var authErr *services.AuthError
	var upErr *services.UpstreamError

	switch {
	case errors.As(err, &reqErr):
		writeError(w, r, http.StatusBadRequest, reqErr.Msg)
	case errors.Is(err, airfoil.ErrInvalidSpec):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, airfoil.ErrDegenerate):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &nfErr):
		writeError(w, r, http.StatusNotFound, nfErr.Msg)
	case errors.Is(err, ports.ErrDuplicate):
		writeError(w, r, http.StatusConflict, "username or email already registered")
	case errors.As(err, &authErr):
		writeError(w, r, http.StatusUnauthorized, authErr.Msg)
	case errors.As(err, &upErr):
		log.Printf("upstream predictor failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusBadGateway, "aerodynamics solver unavailable")
	default:
		log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
