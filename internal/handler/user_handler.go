package handler

import (
	"flatmate/internal/service"
	"flatmate/pkg/jwt"
	"flatmate/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *service.UserService
}

func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// Register creates an account and kicks off email verification.
func (h *UserHandler) Register(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		FullName string `json:"full_name" binding:"required"`
		College  string `json:"college"`
		Phone    string `json:"phone"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.service.Register(r.Email, r.Password, r.FullName, r.College, r.Phone)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, response.FilterUserInfo(user))
}

// Login exchanges credentials for an access token.
func (h *UserHandler) Login(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, token, err := h.service.Login(r.Email, r.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: token,
	})
}

// VerifyEmail redeems the emailed token.
func (h *UserHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	email := c.Query("email")
	if token == "" || email == "" {
		response.BadRequest(c, "missing token or email")
		return
	}

	if err := h.service.VerifyEmail(email, token); err != nil {
		response.FromError(c, err)
		return
	}

	response.SuccessWithMessage(c, "email verified successfully", nil)
}

// GetProfile returns the acting user's own record.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.service.Profile(jwt.GetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, response.FilterUserInfo(user))
}
