package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodlog-backend/internal/http/response"
	"github.com/yungbote/moodlog-backend/internal/platform/apierr"
	"github.com/yungbote/moodlog-backend/internal/services"
)

type ActivityHandler struct {
	activityService services.ActivityService
}

func NewActivityHandler(activityService services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// GET /activities?date=YYYY-MM-DD&type=physical
func (h *ActivityHandler) List(c *gin.Context) {
	date, err := dateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	out, err := h.activityService.GetActivitiesByDate(c.Request.Context(), date, c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activities": toActivityViews(out)})
}

// GET /activities/today?type=
func (h *ActivityHandler) Today(c *gin.Context) {
	out, err := h.activityService.GetTodayActivities(c.Request.Context(), c.Query("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activities": toActivityViews(out)})
}

// GET /activities/:id
func (h *ActivityHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.activityService.GetActivity(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activity": toActivityView(a)})
}

// POST /activities/:id/complete
func (h *ActivityHandler) Complete(c *gin.Context) { h.setCompleted(c, true) }

// POST /activities/:id/incomplete
func (h *ActivityHandler) Incomplete(c *gin.Context) { h.setCompleted(c, false) }

// PATCH /activities/:id
// body: { "is_completed": true }
func (h *ActivityHandler) Update(c *gin.Context) {
	var req struct {
		IsCompleted *bool `json:"is_completed"`
	}
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	if req.IsCompleted == nil {
		response.Error(c, apierr.New(http.StatusBadRequest, "validation", errMissingIsCompleted))
		return
	}
	h.setCompleted(c, *req.IsCompleted)
}

func (h *ActivityHandler) setCompleted(c *gin.Context, completed bool) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	a, err := h.activityService.SetCompleted(c.Request.Context(), id, completed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"activity": toActivityView(a)})
}

// DELETE /activities/:id
func (h *ActivityHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.activityService.DeleteActivity(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
