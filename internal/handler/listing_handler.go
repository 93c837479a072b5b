package handler

import (
	"strconv"

	"flatmate/internal/model"
	"flatmate/internal/service"
	"flatmate/pkg/jwt"
	"flatmate/pkg/response"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	service *service.ListingService
}

func NewListingHandler(s *service.ListingService) *ListingHandler {
	return &ListingHandler{service: s}
}

// Feed serves the filtered paginated listing feed.
func (h *ListingHandler) Feed(c *gin.Context) {
	filter := model.ListingFilter{
		Query:     c.Query("query"),
		College:   c.Query("college"),
		Category:  c.Query("category"),
		Sharing:   c.Query("sharing"),
		Furnished: c.Query("furnished"),
		Gender:    c.Query("gender"),
		MinPrice:  queryInt(c, "minPrice"),
		MaxPrice:  queryInt(c, "maxPrice"),

		AC:             c.Query("ac") == "true",
		Cooler:         c.Query("cooler") == "true",
		NoBrokerage:    c.Query("noBroker") == "true",
		Wifi:           c.Query("wifi") == "true",
		Cook:           c.Query("cook") == "true",
		Maid:           c.Query("maid") == "true",
		Geyser:         c.Query("geyser") == "true",
		MetroNear:      c.Query("metroNear") == "true",
		NoRestrictions: c.Query("noRules") == "true",
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.service.Search(filter, page)
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]*response.ListingInfo, 0, len(result.Items))
	for _, l := range result.Items {
		items = append(items, response.FilterListingInfo(l))
	}

	response.Success(c, response.FeedResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		TotalPages: result.TotalPages,
		Page:       result.Page,
	})
}

// Create posts a new listing for the acting user.
func (h *ListingHandler) Create(c *gin.Context) {
	type req struct {
		Title           string   `json:"title" binding:"required"`
		Description     string   `json:"description" binding:"required"`
		Price           int      `json:"price" binding:"required"`
		Deposit         int      `json:"deposit"`
		Category        string   `json:"category"`
		SharingType     string   `json:"sharing_type"`
		FurnishedStatus string   `json:"furnished_status"`
		GenderPref      string   `json:"gender_preference"`
		Images          []string `json:"images"`
		CollegeID       *uint    `json:"college_id"`
		Latitude        float64  `json:"latitude"`
		Longitude       float64  `json:"longitude"`
		Address         string   `json:"address"`

		TagAC             bool `json:"tag_ac"`
		TagCooler         bool `json:"tag_cooler"`
		TagNoBrokerage    bool `json:"tag_no_brokerage"`
		TagWifi           bool `json:"tag_wifi"`
		TagCook           bool `json:"tag_cook"`
		TagMaid           bool `json:"tag_maid"`
		TagGeyser         bool `json:"tag_geyser"`
		TagMetroNear      bool `json:"tag_metro_near"`
		TagNoRestrictions bool `json:"tag_no_restrictions"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	listing, err := h.service.Create(jwt.GetUserID(c), service.ListingInput{
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		Deposit:         r.Deposit,
		Category:        r.Category,
		SharingType:     r.SharingType,
		FurnishedStatus: r.FurnishedStatus,
		GenderPref:      r.GenderPref,
		Images:          r.Images,
		CollegeID:       r.CollegeID,
		Latitude:        r.Latitude,
		Longitude:       r.Longitude,
		DisplayAddress:  r.Address,

		TagAC:             r.TagAC,
		TagCooler:         r.TagCooler,
		TagNoBrokerage:    r.TagNoBrokerage,
		TagWifi:           r.TagWifi,
		TagCook:           r.TagCook,
		TagMaid:           r.TagMaid,
		TagGeyser:         r.TagGeyser,
		TagMetroNear:      r.TagMetroNear,
		TagNoRestrictions: r.TagNoRestrictions,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, response.FilterListingInfo(listing))
}

// Get serves one listing's detail view.
func (h *ListingHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid listing id")
		return
	}

	listing, err := h.service.Get(uint(id))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, response.FilterListingInfo(listing))
}

// Mine lists the acting user's own listings.
func (h *ListingHandler) Mine(c *gin.Context) {
	listings, err := h.service.Mine(jwt.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]*response.ListingInfo, 0, len(listings))
	for _, l := range listings {
		items = append(items, response.FilterListingInfo(l))
	}
	response.Success(c, items)
}

// Close marks a listing filled (soft delete).
func (h *ListingHandler) Close(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid listing id")
		return
	}

	if err := h.service.Close(jwt.GetUserID(c), uint(id)); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "listing marked as filled", nil)
}

func queryInt(c *gin.Context, key string) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}
