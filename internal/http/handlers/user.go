package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodlog-backend/internal/http/response"
	"github.com/yungbote/moodlog-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /me
func (uh *UserHandler) GetMe(c *gin.Context) {
	me, err := uh.userService.GetMe(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// PATCH /me
// body: { "first_name": "...", "last_name": "...", "avatar_color": "#RRGGBB" }
func (uh *UserHandler) UpdateMe(c *gin.Context) {
	var req services.UserPatch
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	me, err := uh.userService.UpdateMe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"me": me})
}

// GET /me/avatar
func (uh *UserHandler) GetAvatar(c *gin.Context) {
	png, err := uh.userService.RenderAvatar(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "image/png", png)
}
