package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flatmate/config"
	"flatmate/internal/model"
	"flatmate/internal/repository"
	"flatmate/internal/service"
	"flatmate/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memListings struct {
	byID   map[uint]*model.Listing
	nextID uint

	lastFilter model.ListingFilter
	lastOffset int
	lastLimit  int
}

func (s *memListings) Create(listing *model.Listing) error {
	listing.ID = s.nextID
	s.nextID++
	s.byID[listing.ID] = listing
	return nil
}

func (s *memListings) GetByID(id uint) (*model.Listing, error) {
	l, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return l, nil
}

func (s *memListings) ListByOwner(ownerID uint) ([]*model.Listing, error) {
	var out []*model.Listing
	for _, l := range s.byID {
		if l.OwnerID == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memListings) Close(id uint) error {
	l, ok := s.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.IsAvailable = false
	return nil
}

func (s *memListings) Search(filter model.ListingFilter, offset, limit int) ([]*model.Listing, int64, error) {
	s.lastFilter = filter
	s.lastOffset = offset
	s.lastLimit = limit
	return nil, 0, nil
}

func newListingRouter() (*gin.Engine, *memListings, *jwt.JWTService) {
	gin.SetMode(gin.TestMode)

	store := &memListings{byID: make(map[uint]*model.Listing), nextID: 1}
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:     "handler-test-secret",
		ExpireTime: time.Hour,
		Issuer:     "flatmate",
	})
	h := NewListingHandler(service.NewListingService(store))

	router := gin.New()
	router.GET("/api/v1/listings", h.Feed)
	router.GET("/api/v1/listings/:id", h.Get)
	auth := router.Group("/api/v1", jwtService.AuthMiddleware())
	{
		auth.POST("/listings", h.Create)
		auth.GET("/listings/my", h.Mine)
		auth.DELETE("/listings/:id", h.Close)
	}
	return router, store, jwtService
}

func TestFeedFilterMapping(t *testing.T) {
	router, store, _ := newListingRouter()

	url := "/api/v1/listings?query=hauz&college=IIT&category=PG&sharing=DOUBLE" +
		"&furnished=FURNISHED&gender=FEMALE&minPrice=5000&maxPrice=12000" +
		"&wifi=true&ac=true&noBroker=true&metroNear=true&page=3"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, w.Code)

	f := store.lastFilter
	assert.Equal(t, "hauz", f.Query)
	assert.Equal(t, "IIT", f.College)
	assert.Equal(t, "PG", f.Category)
	assert.Equal(t, "DOUBLE", f.Sharing)
	assert.Equal(t, "FURNISHED", f.Furnished)
	assert.Equal(t, "FEMALE", f.Gender)
	assert.Equal(t, 5000, f.MinPrice)
	assert.Equal(t, 12000, f.MaxPrice)
	assert.True(t, f.Wifi)
	assert.True(t, f.AC)
	assert.True(t, f.NoBrokerage)
	assert.True(t, f.MetroNear)
	assert.False(t, f.Cooler)
	assert.False(t, f.Cook)

	// page 3 skips two pages of 8
	assert.Equal(t, 16, store.lastOffset)
	assert.Equal(t, service.FeedPageSize, store.lastLimit)
}

func TestFeedTagOnlyBindsOnTrue(t *testing.T) {
	router, store, _ := newListingRouter()

	// "false", "1" and empty all mean "do not constrain"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/v1/listings?wifi=false&ac=1&cook=", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.False(t, store.lastFilter.Wifi)
	assert.False(t, store.lastFilter.AC)
	assert.False(t, store.lastFilter.Cook)
}

func TestFeedDefaultsPageOne(t *testing.T) {
	router, store, _ := newListingRouter()

	for _, q := range []string{"", "?page=0", "?page=-2", "?page=abc"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/listings"+q, nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, store.lastOffset, "query %q", q)
	}
}

func TestGetListingNotFound(t *testing.T) {
	router, _, _ := newListingRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/listings/999", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/listings/not-a-number", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateListingRequiresAuth(t *testing.T) {
	router, store, jwtService := newListingRouter()

	body := `{"title":"PG near gate","description":"mess included","price":8500,"category":"PG"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.byID)

	token, err := jwtService.GenerateToken("7", nil)
	require.NoError(t, err)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/listings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.byID, 1)
	assert.Equal(t, uint(7), store.byID[1].OwnerID)
}

func TestCloseListingOverHTTP(t *testing.T) {
	router, store, jwtService := newListingRouter()
	store.byID[1] = &model.Listing{ID: 1, OwnerID: 7, IsAvailable: true}
	store.nextID = 2

	ownerToken, err := jwtService.GenerateToken("7", nil)
	require.NoError(t, err)
	strangerToken, err := jwtService.GenerateToken("8", nil)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/listings/1", nil)
	req.Header.Set("Authorization", "Bearer "+strangerToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, store.byID[1].IsAvailable)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/listings/1", nil)
	req.Header.Set("Authorization", "Bearer "+ownerToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, store.byID[1].IsAvailable)
}
