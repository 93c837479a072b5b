package handler

import (
	"flatmate/internal/service"
	"flatmate/pkg/response"

	"github.com/gin-gonic/gin"
)

type CollegeHandler struct {
	service *service.CollegeService
}

func NewCollegeHandler(s *service.CollegeService) *CollegeHandler {
	return &CollegeHandler{service: s}
}

// List serves the public college directory.
func (h *CollegeHandler) List(c *gin.Context) {
	colleges, err := h.service.List()
	if err != nil {
		response.FromError(c, err)
		return
	}

	items := make([]response.CollegeInfo, 0, len(colleges))
	for _, college := range colleges {
		items = append(items, response.CollegeInfo{
			ID:   college.ID,
			Name: college.Name,
			City: college.City,
		})
	}
	response.Success(c, items)
}
