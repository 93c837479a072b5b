package response

import (
	"net/http"
	"time"

	"flatmate/internal/apperr"
	"flatmate/internal/model"

	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"` // 0 on success, HTTP status on error
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"` // error code for the UI to branch on
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// SuccessWithMessage writes a 200 envelope with a custom message.
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope with the given HTTP status.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code:    status,
		Message: message,
	})
}

// FromError maps a service error onto the wire. Unknown errors become a
// generic 500; taxonomy errors carry their own status and code.
func FromError(c *gin.Context, err error) {
	ae := apperr.From(err)
	c.JSON(ae.Status, Response{
		Code:    ae.Status,
		Message: ae.Message,
		Error:   ae.Code,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// UserInfo is the public projection of a user. Phone is intentionally
// absent: contact details travel only through the connection contact path.
type UserInfo struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	College    string `json:"college,omitempty"`
	Image      string `json:"image,omitempty"`
	Role       string `json:"role"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"created_at"`
}

// FilterUserInfo strips sensitive fields from a user record.
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		College:    user.College,
		Image:      user.Image,
		Role:       user.Role,
		IsVerified: user.IsVerified(),
		CreatedAt:  user.CreatedAt.Format(time.RFC3339),
	}
}

// LoginResponse carries the user plus access token.
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// OwnerInfo is the owner summary embedded in listing payloads.
type OwnerInfo struct {
	Name       string `json:"name"`
	Image      string `json:"image,omitempty"`
	College    string `json:"college,omitempty"`
	IsVerified bool   `json:"is_verified"`
}

// LocationInfo is the listing's geolocation.
type LocationInfo struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	DisplayAddress string  `json:"display_address"`
}

// ListingInfo is the feed/detail projection of a listing.
type ListingInfo struct {
	ID              uint            `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Price           int             `json:"price"`
	Deposit         int             `json:"deposit"`
	Category        string          `json:"category"`
	SharingType     string          `json:"sharing_type"`
	FurnishedStatus string          `json:"furnished_status"`
	GenderPref      string          `json:"gender_preference"`
	Images          []string        `json:"images"`
	Tags            map[string]bool `json:"tags"`
	IsAvailable     bool            `json:"is_available"`
	CollegeName     string          `json:"college_name,omitempty"`
	Location        *LocationInfo   `json:"location,omitempty"`
	Owner           *OwnerInfo      `json:"owner,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// FilterListingInfo projects a listing for the wire. Owner contact fields
// never appear here.
func FilterListingInfo(l *model.Listing) *ListingInfo {
	if l == nil {
		return nil
	}

	info := &ListingInfo{
		ID:              l.ID,
		Title:           l.Title,
		Description:     l.Description,
		Price:           l.Price,
		Deposit:         l.Deposit,
		Category:        l.Category,
		SharingType:     l.SharingType,
		FurnishedStatus: l.FurnishedStatus,
		GenderPref:      l.GenderPref,
		Images:          l.Images,
		Tags: map[string]bool{
			"ac":             l.TagAC,
			"cooler":         l.TagCooler,
			"noBrokerage":    l.TagNoBrokerage,
			"wifi":           l.TagWifi,
			"cook":           l.TagCook,
			"maid":           l.TagMaid,
			"geyser":         l.TagGeyser,
			"metroNear":      l.TagMetroNear,
			"noRestrictions": l.TagNoRestrictions,
		},
		IsAvailable: l.IsAvailable,
		CreatedAt:   l.CreatedAt.Format(time.RFC3339),
	}
	if l.College != nil {
		info.CollegeName = l.College.Name
	}
	if l.Location != nil {
		info.Location = &LocationInfo{
			Latitude:       l.Location.Latitude,
			Longitude:      l.Location.Longitude,
			DisplayAddress: l.Location.DisplayAddress,
		}
	}
	if l.Owner != nil {
		info.Owner = &OwnerInfo{
			Name:       l.Owner.Name,
			Image:      l.Owner.Image,
			College:    l.Owner.College,
			IsVerified: l.Owner.IsVerified(),
		}
	}
	return info
}

// FeedResponse is one page of the listing feed.
type FeedResponse struct {
	Items      []*ListingInfo `json:"items"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
	Page       int            `json:"page"`
}

// ContactInfo is the gated contact disclosure payload.
type ContactInfo struct {
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// RespondResponse is the receiver's decision result. ContactInfo is only
// present when the decision was ACCEPTED.
type RespondResponse struct {
	ID          uint         `json:"id"`
	Status      string       `json:"status"`
	ContactInfo *ContactInfo `json:"contact_info,omitempty"`
}

// RequestSenderInfo is the minimal sender summary on incoming requests.
type RequestSenderInfo struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Image   string `json:"image,omitempty"`
	College string `json:"college,omitempty"`
}

// RequestListingInfo is the minimal listing summary on incoming requests.
type RequestListingInfo struct {
	ID     uint     `json:"id"`
	Title  string   `json:"title"`
	Images []string `json:"images"`
}

// IncomingRequestInfo is one entry of the receiver's inbox. It carries
// summaries only, never phone or email.
type IncomingRequestInfo struct {
	ID        uint                `json:"id"`
	Status    string              `json:"status"`
	CreatedAt string              `json:"created_at"`
	Sender    *RequestSenderInfo  `json:"sender,omitempty"`
	Listing   *RequestListingInfo `json:"listing,omitempty"`
}

// FilterIncomingRequest projects an incoming connection request.
func FilterIncomingRequest(r *model.ConnectionRequest) *IncomingRequestInfo {
	if r == nil {
		return nil
	}

	info := &IncomingRequestInfo{
		ID:        r.ID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt.Format(time.RFC3339),
	}
	if r.Sender != nil {
		info.Sender = &RequestSenderInfo{
			ID:      r.Sender.ID,
			Name:    r.Sender.Name,
			Image:   r.Sender.Image,
			College: r.Sender.College,
		}
	}
	if r.Listing != nil {
		info.Listing = &RequestListingInfo{
			ID:     r.Listing.ID,
			Title:  r.Listing.Title,
			Images: r.Listing.Images,
		}
	}
	return info
}

// CollegeInfo is a directory entry.
type CollegeInfo struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}
