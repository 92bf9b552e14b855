package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodlog-backend/internal/http/response"
	"github.com/yungbote/moodlog-backend/internal/services"
)

type EmotionHandler struct {
	emotionService services.EmotionService
}

func NewEmotionHandler(emotionService services.EmotionService) *EmotionHandler {
	return &EmotionHandler{emotionService: emotionService}
}

// GET /emotions
func (h *EmotionHandler) List(c *gin.Context) {
	all, err := h.emotionService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotions": all})
}

// GET /emotions/root
func (h *EmotionHandler) Roots(c *gin.Context) {
	roots, err := h.emotionService.GetRoots(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotions": roots})
}

// GET /emotions/taxonomy
func (h *EmotionHandler) Taxonomy(c *gin.Context) {
	tree, err := h.emotionService.GetTaxonomy(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotions": tree})
}

// GET /emotions/dropdown
func (h *EmotionHandler) Dropdown(c *gin.Context) {
	opts, err := h.emotionService.GetDropdown(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotions": opts})
}

// GET /emotions/:id
func (h *EmotionHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.emotionService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotion": e})
}

// GET /emotions/key/:key
func (h *EmotionHandler) GetByKey(c *gin.Context) {
	e, err := h.emotionService.GetByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotion": e})
}

// GET /emotions/parent/:parentKey
func (h *EmotionHandler) Children(c *gin.Context) {
	children, err := h.emotionService.GetByParentKey(c.Request.Context(), c.Param("parentKey"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotions": children})
}

// POST /emotions
// body: { "key": "...", "label": "...", "parent_key": "..." }
func (h *EmotionHandler) Create(c *gin.Context) {
	var req services.EmotionInput
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.emotionService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"emotion": e})
}

// PATCH /emotions/:id
// body: { "label": "...", "parent_key": "" } (empty parent_key makes it a root)
func (h *EmotionHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.EmotionPatch
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	e, err := h.emotionService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"emotion": e})
}

// DELETE /emotions/:id
func (h *EmotionHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.emotionService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
