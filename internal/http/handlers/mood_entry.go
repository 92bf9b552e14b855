package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/moodlog-backend/internal/http/response"
	"github.com/yungbote/moodlog-backend/internal/services"
)

type MoodEntryHandler struct {
	moodEntryService services.MoodEntryService
}

func NewMoodEntryHandler(moodEntryService services.MoodEntryService) *MoodEntryHandler {
	return &MoodEntryHandler{moodEntryService: moodEntryService}
}

// POST /mood-entries
func (h *MoodEntryHandler) Create(c *gin.Context) {
	var req services.MoodEntryInput
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.moodEntryService.CreateMoodEntry(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"mood_entry": toMoodEntryView(entry)})
}

// GET /mood-entries?date=YYYY-MM-DD
func (h *MoodEntryHandler) ListByDate(c *gin.Context) {
	date, err := dateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.moodEntryService.GetMoodEntriesByDate(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mood_entries": toMoodEntryViews(entries)})
}

// GET /mood-entries/today
func (h *MoodEntryHandler) Today(c *gin.Context) {
	entry, err := h.moodEntryService.GetTodayMoodEntry(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mood_entry": toMoodEntryView(entry)})
}

// GET /mood-entries/history?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *MoodEntryHandler) History(c *gin.Context) {
	start, err := dateQuery(c, "start")
	if err != nil {
		response.Error(c, err)
		return
	}
	end, err := dateQuery(c, "end")
	if err != nil {
		response.Error(c, err)
		return
	}
	entries, err := h.moodEntryService.GetMoodHistory(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mood_entries": toMoodEntryViews(entries)})
}

// GET /mood-entries/summary?date=YYYY-MM-DD
func (h *MoodEntryHandler) Summary(c *gin.Context) {
	date, err := dateQuery(c, "date")
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.moodEntryService.GetDailySummary(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"summary": summary})
}

// GET /mood-entries/:id
func (h *MoodEntryHandler) Get(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.moodEntryService.GetMoodEntry(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mood_entry": toMoodEntryView(entry)})
}

// PUT /mood-entries/:id
func (h *MoodEntryHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req services.MoodEntryPatch
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.moodEntryService.UpdateMoodEntry(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.RespondOK(c, gin.H{"mood_entry": toMoodEntryView(entry)})
}

// DELETE /mood-entries/:id
func (h *MoodEntryHandler) Delete(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.moodEntryService.DeleteMoodEntry(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
