package service

import (
	"errors"
	"strings"

	"flatmate/internal/apperr"
	"flatmate/internal/model"
	"flatmate/internal/repository"
)

// FeedPageSize is the fixed page size of the listing feed.
const FeedPageSize = 8

type listingStore interface {
	Create(listing *model.Listing) error
	GetByID(id uint) (*model.Listing, error)
	ListByOwner(ownerID uint) ([]*model.Listing, error)
	Close(id uint) error
	Search(filter model.ListingFilter, offset, limit int) ([]*model.Listing, int64, error)
}

// ListingInput is the owner-supplied creation payload.
type ListingInput struct {
	Title           string
	Description     string
	Price           int
	Deposit         int
	Category        string
	SharingType     string
	FurnishedStatus string
	GenderPref      string
	Images          []string
	CollegeID       *uint

	Latitude       float64
	Longitude      float64
	DisplayAddress string

	TagAC             bool
	TagCooler         bool
	TagNoBrokerage    bool
	TagWifi           bool
	TagCook           bool
	TagMaid           bool
	TagGeyser         bool
	TagMetroNear      bool
	TagNoRestrictions bool
}

// SearchResult is one page of the feed plus consistent totals.
type SearchResult struct {
	Items      []*model.Listing
	TotalCount int64
	TotalPages int
	Page       int
}

// ListingService owns listing CRUD and the filtered feed query.
type ListingService struct {
	listings listingStore
}

func NewListingService(listings listingStore) *ListingService {
	return &ListingService{listings: listings}
}

// Create validates and persists a new listing with its location.
func (s *ListingService) Create(ownerID uint, input ListingInput) (*model.Listing, error) {
	if ownerID == 0 {
		return nil, apperr.ErrUnauthorized
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if input.Title == "" || input.Description == "" {
		return nil, apperr.Invalid("title and description are required")
	}
	if input.Price <= 0 {
		return nil, apperr.Invalid("price must be positive")
	}

	listing := &model.Listing{
		OwnerID:         ownerID,
		Title:           input.Title,
		Description:     input.Description,
		Price:           input.Price,
		Deposit:         input.Deposit,
		Category:        defaultString(input.Category, model.CategoryFlat),
		SharingType:     defaultString(input.SharingType, model.SharingSingle),
		FurnishedStatus: defaultString(input.FurnishedStatus, model.Unfurnished),
		GenderPref:      defaultString(input.GenderPref, model.GenderAny),
		Images:          input.Images,
		CollegeID:       input.CollegeID,
		IsAvailable:     true,

		TagAC:             input.TagAC,
		TagCooler:         input.TagCooler,
		TagNoBrokerage:    input.TagNoBrokerage,
		TagWifi:           input.TagWifi,
		TagCook:           input.TagCook,
		TagMaid:           input.TagMaid,
		TagGeyser:         input.TagGeyser,
		TagMetroNear:      input.TagMetroNear,
		TagNoRestrictions: input.TagNoRestrictions,
	}
	if input.DisplayAddress != "" {
		listing.Location = &model.Location{
			Latitude:       input.Latitude,
			Longitude:      input.Longitude,
			DisplayAddress: input.DisplayAddress,
		}
	}
	if listing.Images == nil {
		listing.Images = []string{}
	}

	if err := s.listings.Create(listing); err != nil {
		return nil, apperr.Internal(err)
	}
	return listing, nil
}

// Get returns one listing with its location, college and owner summary.
func (s *ListingService) Get(id uint) (*model.Listing, error) {
	listing, err := s.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrListingNotFound
		}
		return nil, apperr.Internal(err)
	}
	return listing, nil
}

// Mine lists the owner's listings, filled ones included.
func (s *ListingService) Mine(ownerID uint) ([]*model.Listing, error) {
	if ownerID == 0 {
		return nil, apperr.ErrUnauthorized
	}
	listings, err := s.listings.ListByOwner(ownerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return listings, nil
}

// Close marks a listing filled. Soft delete only: the row stays, the
// availability flag never comes back.
func (s *ListingService) Close(ownerID, id uint) error {
	if ownerID == 0 {
		return apperr.ErrUnauthorized
	}

	listing, err := s.listings.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.ErrListingNotFound
		}
		return apperr.Internal(err)
	}
	if listing.OwnerID != ownerID {
		return apperr.ErrForbidden
	}

	if err := s.listings.Close(id); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Search runs the feed query for one page. The repository fetches the
// count and the page against the same snapshot, so totals stay consistent
// with the returned slice under concurrent writes.
func (s *ListingService) Search(filter model.ListingFilter, page int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * FeedPageSize

	items, total, err := s.listings.Search(filter, offset, FeedPageSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	totalPages := int((total + FeedPageSize - 1) / FeedPageSize)
	return &SearchResult{
		Items:      items,
		TotalCount: total,
		TotalPages: totalPages,
		Page:       page,
	}, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
