package handler

import (
	"strconv"

	"flatmate/internal/service"
	"flatmate/pkg/jwt"
	"flatmate/pkg/response"

	"github.com/gin-gonic/gin"
)

type ConnectionHandler struct {
	service *service.ConnectionService
}

func NewConnectionHandler(s *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: s}
}

// Create sends a connection request for a listing. The response never
// carries contact fields.
func (h *ConnectionHandler) Create(c *gin.Context) {
	type req struct {
		ListingID uint `json:"listing_id" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	request, err := h.service.Create(jwt.GetUserID(c), r.ListingID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":         request.ID,
		"listing_id": request.ListingID,
		"status":     request.Status,
	})
}

// Respond lets the receiver accept or reject a pending request. Accepting
// is the only path that discloses the sender's contact details.
func (h *ConnectionHandler) Respond(c *gin.Context) {
	type req struct {
		RequestID uint   `json:"request_id" binding:"required"`
		Status    string `json:"status" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	decision, err := h.service.Respond(jwt.GetUserID(c), r.RequestID, r.Status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	resp := response.RespondResponse{
		ID:     decision.Request.ID,
		Status: decision.Request.Status,
	}
	if decision.Contact != nil {
		resp.ContactInfo = &response.ContactInfo{
			Phone: decision.Contact.Phone,
			Email: decision.Contact.Email,
		}
	}
	response.Success(c, resp)
}

// Incoming lists the acting user's received requests, newest first.
func (h *ConnectionHandler) Incoming(c *gin.Context) {
	requests, err := h.service.Incoming(jwt.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]*response.IncomingRequestInfo, 0, len(requests))
	for _, r := range requests {
		items = append(items, response.FilterIncomingRequest(r))
	}
	response.Success(c, items)
}

// PendingCount serves the inbox badge.
func (h *ConnectionHandler) PendingCount(c *gin.Context) {
	count, err := h.service.PendingCount(jwt.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"pending_count": count})
}

// Contact discloses the counterpart's phone and email for a listing,
// gated on an ACCEPTED connection.
func (h *ConnectionHandler) Contact(c *gin.Context) {
	listingID, err := strconv.ParseUint(c.Param("listing_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid listing id")
		return
	}

	contact, err := h.service.Contact(jwt.GetUserID(c), uint(listingID))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, response.ContactInfo{
		Phone: contact.Phone,
		Email: contact.Email,
	})
}
