package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/adapter/http/middleware"
	"github.com/pazarlio/marketplace/internal/listing/domain"
	"github.com/pazarlio/marketplace/internal/listing/usecase"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}
func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindActive(ctx context.Context, limit int64) ([]*domain.Listing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Listing, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindPromoted(ctx context.Context, types []domain.PromotionType, now time.Time, limit int64) ([]*domain.Listing, error) {
	args := m.Called(ctx, types, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}
func (m *MockListingRepository) FindActiveExcluding(ctx context.Context, excludeIDs []string, limit int64) ([]*domain.Listing, error) {
	args := m.Called(ctx, excludeIDs, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

func newTestHandler(repo *MockListingRepository) *ListingHandler {
	logger := zap.NewNop()
	listings := usecase.NewListingUsecase(repo, nil, nil, logger)
	promotions := usecase.NewPromotionUsecase(repo, nil, nil, logger)
	return NewListingHandler(listings, promotions, logger)
}

func authedRequest(method, target, body, listingID string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)

	ctx := context.WithValue(req.Context(), middleware.UserIDCtxKey, "u1")
	if listingID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", listingID)
		ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	}
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreate_MissingPriceReturns400WithFieldList(t *testing.T) {
	h := newTestHandler(new(MockListingRepository))

	body := `{"title":"Bike","description":"Good bike","location":"Ankara","mainCategory":"used","subCategory":"bikes"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/listings", body, ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"price"}, decodeError(t, rec).Fields)
}

func TestCreate_Returns201WithAutoPromotion(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)
	h := newTestHandler(repo)

	body := `{"title":"Bike","description":"Good bike","price":1500,"location":"Ankara","mainCategory":"used","subCategory":"bikes"}`
	rec := httptest.NewRecorder()
	h.Create(rec, authedRequest(http.MethodPost, "/listings", body, ""))

	require.Equal(t, http.StatusCreated, rec.Code)
	var listing domain.Listing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, domain.PromotionKesfetFree, listing.PromotionType)
	assert.True(t, listing.Featured)
	require.NotNil(t, listing.FeaturedUntil)
}

func TestUpdate_NonOwnerGets403(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "l1").
		Return(&domain.Listing{ID: "l1", UserID: "someone-else"}, nil)
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest(http.MethodPatch, "/listings/l1", `{"title":"new"}`, "l1"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdate_MissingListingGets404NotForbidden(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, domain.ErrListingNotFound)
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.Update(rec, authedRequest(http.MethodPatch, "/listings/ghost", `{"title":"new"}`, "ghost"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPromote_InvalidTypeGets400(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "l1").
		Return(&domain.Listing{ID: "l1", UserID: "u1"}, nil)
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.Promote(rec, authedRequest(http.MethodPost, "/listings/l1/promote", `{"promotionType":"kesfet_free"}`, "l1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromote_ReturnsCostAndDuration(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "l1").
		Return(&domain.Listing{ID: "l1", UserID: "u1", Status: domain.StatusActive}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	h := newTestHandler(repo)

	rec := httptest.NewRecorder()
	h.Promote(rec, authedRequest(http.MethodPost, "/listings/l1/promote", `{"promotionType":"vitrin","duration":7}`, "l1"))

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Cost     int `json:"cost"`
		Duration int `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 25, body.Cost)
	assert.Equal(t, 7, body.Duration)
}

func TestGetByID_MissingListingGets404(t *testing.T) {
	repo := new(MockListingRepository)
	repo.On("FindByID", mock.Anything, "ghost").Return(nil, domain.ErrListingNotFound)
	h := newTestHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/listings/ghost", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "ghost")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rec := httptest.NewRecorder()
	h.GetByID(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
