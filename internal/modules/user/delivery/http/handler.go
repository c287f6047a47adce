package handler

import (
	"anoa.com/magangportal/internal/modules/user/dto"
	user "anoa.com/magangportal/internal/modules/user/service"
	"anoa.com/magangportal/pkg/response"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service user.AuthService
}

func NewAuthHandler(service user.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	res, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	res, err := h.service.Me(c.Request.Context(), userID.String())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, res)
}
