package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/adapter/http/middleware"
	userdomain "github.com/pazarlio/marketplace/internal/user/domain"
	"github.com/pazarlio/marketplace/internal/user/usecase"
)

type UserHandler struct {
	users  *usecase.UserUsecase
	logger *zap.Logger
}

func NewUserHandler(users *usecase.UserUsecase, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

func toUserPayload(u *userdomain.User) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	token, user, err := h.users.Register(r.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, authResponse{Token: token, User: toUserPayload(user)})
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	token, user, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: toUserPayload(user)})
}

func (h *UserHandler) LoginByPhone(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	token, user, err := h.users.LoginByPhone(r.Context(), req.Phone, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, authResponse{Token: token, User: toUserPayload(user)})
}

// Me returns the caller's profile without credential material.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// MyListings returns every listing the caller owns, newest first.
func (h *UserHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	listings, err := h.users.Listings(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (h *UserHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	favorites, err := h.users.ToggleFavorite(r.Context(), userID, chi.URLParam(r, "listingId"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"favorites": favorites})
}

func (h *UserHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	listings, err := h.users.Favorites(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}
