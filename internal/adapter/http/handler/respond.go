package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	listingdomain "github.com/pazarlio/marketplace/internal/listing/domain"
	userdomain "github.com/pazarlio/marketplace/internal/user/domain"
)

type errorResponse struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses:
// validation 400, not-owner 403, not-found 404, everything else 500 with
// the raw message.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var missing *listingdomain.MissingFieldsError
	if errors.As(err, &missing) {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Message: "required fields are missing",
			Fields:  missing.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, listingdomain.ErrInvalidPromotionType),
		errors.Is(err, listingdomain.ErrInvalidListingData),
		errors.Is(err, userdomain.ErrDuplicateEmail),
		errors.Is(err, userdomain.ErrDuplicatePhone),
		errors.Is(err, userdomain.ErrInvalidPassword),
		errors.Is(err, userdomain.ErrInvalidCredentials):
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: err.Error()})
	case errors.Is(err, listingdomain.ErrNotOwner):
		respondJSON(w, http.StatusForbidden, errorResponse{Message: "you are not allowed to perform this action"})
	case errors.Is(err, listingdomain.ErrListingNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Message: err.Error()})
	default:
		logger.Error("request failed", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, errorResponse{Message: err.Error()})
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
