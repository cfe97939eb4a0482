package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/fagame/backend/internal/requestdata"
	"github.com/fagame/backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	user, err := uh.userService.GetProfile(c.Request.Context(), rd.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	RespondOK(c, user)
}
