package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/adapter/http/middleware"
	"github.com/pazarlio/marketplace/internal/listing/usecase"
)

type ListingHandler struct {
	listings   *usecase.ListingUsecase
	promotions *usecase.PromotionUsecase
	logger     *zap.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, promotions *usecase.PromotionUsecase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, promotions: promotions, logger: logger}
}

// Featured serves the vitrin slots, at most 12 entries.
func (h *ListingHandler) Featured(w http.ResponseWriter, r *http.Request) {
	listings, err := h.promotions.Featured(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

// Discover serves the mixed paid/free promoted feed with recency backfill,
// at most 20 entries.
func (h *ListingHandler) Discover(w http.ResponseWriter, r *http.Request) {
	listings, err := h.promotions.Discover(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

// Spotlight serves the spotlight slots, at most 5 entries.
func (h *ListingHandler) Spotlight(w http.ResponseWriter, r *http.Request) {
	listings, err := h.promotions.Spotlight(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	listings, err := h.listings.ActiveListings(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *ListingHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	listing, err := h.listings.GetListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	var req createListingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}
	details, err := req.listingDetailsPayload.toDomain()
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	listing, err := h.listings.CreateListing(r.Context(), userID, usecase.CreateListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		PriceType:    req.PriceType,
		Location:     req.Location,
		Images:       req.Images,
		MainCategory: req.MainCategory,
		SubCategory:  req.SubCategory,
		Details:      details,
		Contact:      req.Contact,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	var req updateListingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	in := usecase.UpdateListingInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		PriceType:    req.PriceType,
		Location:     req.Location,
		Images:       req.Images,
		MainCategory: req.MainCategory,
		SubCategory:  req.SubCategory,
		Contact:      req.Contact,
		Status:       req.Status,
	}
	if req.listingDetailsPayload.present() {
		details, err := req.listingDetailsPayload.toDomain()
		if err != nil {
			respondError(w, h.logger, err)
			return
		}
		in.Details = &details
	}

	listing, err := h.listings.UpdateListing(r.Context(), chi.URLParam(r, "id"), userID, in)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	if err := h.listings.DeleteListing(r.Context(), chi.URLParam(r, "id"), userID); err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "listing deleted"})
}

func (h *ListingHandler) Promote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	var req promoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	receipt, err := h.promotions.Promote(r.Context(), chi.URLParam(r, "id"), userID, req.PromotionType, req.Duration)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "promotion purchased",
		"listing":  receipt.Listing,
		"cost":     receipt.Cost,
		"duration": receipt.DurationDays,
	})
}
