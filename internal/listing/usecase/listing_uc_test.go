package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pazarlio/marketplace/internal/listing/domain"
)

func newListingUC(repo *MockListingRepository) *ListingUsecase {
	uc := NewListingUsecase(repo, nil, nil, zap.NewNop())
	uc.now = func() time.Time { return testNow }
	return uc
}

func validCreateInput() CreateListingInput {
	return CreateListingInput{
		Title:        "2015 Honda Civic",
		Description:  "Clean, single owner",
		Price:        350000,
		Location:     "Istanbul",
		MainCategory: "vehicles",
		SubCategory:  "cars",
		Details: domain.ListingDetails{
			Vehicle: &domain.VehicleDetails{Brand: "Honda", Model: "Civic", Year: 2015},
		},
	}
}

func TestCreateListing_AutoPromotesForOneDay(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)

	listing, err := uc.CreateListing(context.Background(), "u1", validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusActive, listing.Status)
	assert.Equal(t, domain.PromotionKesfetFree, listing.PromotionType)
	assert.True(t, listing.Featured)
	require.NotNil(t, listing.FeaturedUntil)
	assert.Equal(t, testNow.Add(24*time.Hour), *listing.FeaturedUntil)
	assert.Equal(t, "u1", listing.UserID)
	assert.True(t, listing.PromotedAt(testNow))
	assert.False(t, listing.PromotedAt(testNow.Add(25*time.Hour)))
}

func TestCreateListing_ReportsMissingFields(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	in := validCreateInput()
	in.Price = 0
	in.Location = ""

	_, err := uc.CreateListing(context.Background(), "u1", in)

	var missing *domain.MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"price", "location"}, missing.Fields)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateListing_MergesOnlyProvidedFields(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	listing := &domain.Listing{
		ID:     "l1",
		UserID: "u1",
		Title:  "old title",
		Price:  100,
		Status: domain.StatusActive,
	}
	repo.On("FindByID", mock.Anything, "l1").Return(listing, nil)
	repo.On("Update", mock.Anything, listing).Return(nil)

	newPrice := 250.0
	updated, err := uc.UpdateListing(context.Background(), "l1", "u1", UpdateListingInput{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, 250.0, updated.Price)
	assert.Equal(t, "old title", updated.Title)
	assert.Equal(t, testNow, updated.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestUpdateListing_DeniedForNonOwner(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	repo.On("FindByID", mock.Anything, "l1").
		Return(&domain.Listing{ID: "l1", UserID: "owner"}, nil)

	_, err := uc.UpdateListing(context.Background(), "l1", "intruder", UpdateListingInput{})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateListing_MissingListingWinsOverOwnership(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	repo.On("FindByID", mock.Anything, "ghost").Return(nil, domain.ErrListingNotFound)

	_, err := uc.UpdateListing(context.Background(), "ghost", "anyone", UpdateListingInput{})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestDeleteListing_OwnerOnly(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	listing := &domain.Listing{ID: "l1", UserID: "u1"}
	repo.On("FindByID", mock.Anything, "l1").Return(listing, nil)
	repo.On("Delete", mock.Anything, "l1").Return(nil)

	assert.NoError(t, uc.DeleteListing(context.Background(), "l1", "u1"))
	repo.AssertExpectations(t)
}

func TestDeleteListing_DeniedForNonOwner(t *testing.T) {
	repo := new(MockListingRepository)
	uc := newListingUC(repo)

	repo.On("FindByID", mock.Anything, "l1").
		Return(&domain.Listing{ID: "l1", UserID: "owner"}, nil)

	err := uc.DeleteListing(context.Background(), "l1", "intruder")
	assert.ErrorIs(t, err, domain.ErrNotOwner)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
