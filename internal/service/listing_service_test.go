package service

import (
	"testing"

	"flatmate/internal/apperr"
	"flatmate/internal/model"
	"flatmate/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeListings struct {
	byID   map[uint]*model.Listing
	nextID uint

	// Search captures the page window it was asked for and serves a
	// canned result set.
	searchOffset int
	searchLimit  int
	searchItems  []*model.Listing
	searchTotal  int64
}

func newFakeListings() *fakeListings {
	return &fakeListings{byID: make(map[uint]*model.Listing), nextID: 1}
}

func (s *fakeListings) Create(listing *model.Listing) error {
	listing.ID = s.nextID
	s.nextID++
	s.byID[listing.ID] = listing
	return nil
}

func (s *fakeListings) GetByID(id uint) (*model.Listing, error) {
	l, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

func (s *fakeListings) ListByOwner(ownerID uint) ([]*model.Listing, error) {
	var out []*model.Listing
	for _, l := range s.byID {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeListings) Close(id uint) error {
	l, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.IsAvailable = false
	return nil
}

func (s *fakeListings) Search(filter model.ListingFilter, offset, limit int) ([]*model.Listing, int64, error) {
	s.searchOffset = offset
	s.searchLimit = limit
	return s.searchItems, s.searchTotal, nil
}

func TestCreateListingDefaults(t *testing.T) {
	store := newFakeListings()
	svc := NewListingService(store)

	listing, err := svc.Create(7, ListingInput{
		Title:       "  Room in Hauz Khas  ",
		Description: "South-facing, balcony",
		Price:       12000,
	})
	require.NoError(t, err)

	assert.Equal(t, "Room in Hauz Khas", listing.Title)
	assert.Equal(t, model.CategoryFlat, listing.Category)
	assert.Equal(t, model.SharingSingle, listing.SharingType)
	assert.Equal(t, model.Unfurnished, listing.FurnishedStatus)
	assert.Equal(t, model.GenderAny, listing.GenderPref)
	assert.True(t, listing.IsAvailable)
	assert.NotNil(t, listing.Images, "images serialize as an empty array, not null")
	assert.Nil(t, listing.Location, "no location row without an address")
}

func TestCreateListingWithLocation(t *testing.T) {
	svc := NewListingService(newFakeListings())

	listing, err := svc.Create(7, ListingInput{
		Title:          "PG near IIT gate",
		Description:    "mess included",
		Price:          8500,
		Category:       model.CategoryPG,
		Latitude:       28.5449,
		Longitude:      77.1926,
		DisplayAddress: "Jia Sarai, New Delhi",
	})
	require.NoError(t, err)

	require.NotNil(t, listing.Location)
	assert.Equal(t, "Jia Sarai, New Delhi", listing.Location.DisplayAddress)
	assert.Equal(t, 28.5449, listing.Location.Latitude)
}

func TestCreateListingValidation(t *testing.T) {
	svc := NewListingService(newFakeListings())

	_, err := svc.Create(0, ListingInput{Title: "x", Description: "y", Price: 1})
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	_, err = svc.Create(7, ListingInput{Title: "   ", Description: "y", Price: 1})
	assert.Equal(t, "INVALID_INPUT", apperr.From(err).Code)

	_, err = svc.Create(7, ListingInput{Title: "x", Description: "y", Price: 0})
	assert.Equal(t, "INVALID_INPUT", apperr.From(err).Code)
}

func TestCloseListing(t *testing.T) {
	store := newFakeListings()
	svc := NewListingService(store)

	listing, err := svc.Create(7, ListingInput{Title: "x", Description: "y", Price: 100})
	require.NoError(t, err)

	// only the owner may close
	err = svc.Close(8, listing.ID)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	assert.True(t, store.byID[listing.ID].IsAvailable)

	err = svc.Close(7, listing.ID)
	require.NoError(t, err)
	assert.False(t, store.byID[listing.ID].IsAvailable)

	err = svc.Close(7, 999)
	assert.ErrorIs(t, err, apperr.ErrListingNotFound)
}

func TestSearchPaging(t *testing.T) {
	store := newFakeListings()
	svc := NewListingService(store)
	store.searchTotal = 17 // 3 pages of 8

	result, err := svc.Search(model.ListingFilter{}, 2)
	require.NoError(t, err)

	assert.Equal(t, FeedPageSize, store.searchLimit)
	assert.Equal(t, FeedPageSize, store.searchOffset, "page 2 skips exactly one page")
	assert.Equal(t, int64(17), result.TotalCount)
	assert.Equal(t, 3, result.TotalPages)
	assert.Equal(t, 2, result.Page)
}

func TestSearchClampsPage(t *testing.T) {
	store := newFakeListings()
	svc := NewListingService(store)

	result, err := svc.Search(model.ListingFilter{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 0, store.searchOffset)

	result, err = svc.Search(model.ListingFilter{}, -3)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
}

func TestSearchEmptyFeed(t *testing.T) {
	store := newFakeListings()
	svc := NewListingService(store)

	result, err := svc.Search(model.ListingFilter{Category: model.CategoryHostel}, 1)
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, int64(0), result.TotalCount)
	assert.Equal(t, 0, result.TotalPages)
}
