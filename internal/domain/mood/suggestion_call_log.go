package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OutcomeAI       = "ai"
	OutcomeMixed    = "mixed"
	OutcomeFallback = "fallback"
)

// SuggestionCallLog records one suggestion-generation attempt for a mood entry.
type SuggestionCallLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index" json:"user_id"`
	MoodEntryID uuid.UUID      `gorm:"type:uuid;index" json:"mood_entry_id"`
	Model       string         `gorm:"column:model" json:"model"`
	Prompt      string         `gorm:"column:prompt;type:text" json:"prompt"`
	Response    string         `gorm:"column:response;type:text" json:"response"`
	Success     bool           `gorm:"column:success;not null" json:"success"`
	Outcome     string         `gorm:"column:outcome;size:20" json:"outcome"`
	ErrorKind   string         `gorm:"column:error_kind;size:40" json:"error_kind,omitempty"`
	Error       string         `gorm:"column:error;type:text" json:"error,omitempty"`
	LatencyMS   int64          `gorm:"column:latency_ms" json:"latency_ms"`
	Usage       datatypes.JSON `gorm:"column:usage;type:jsonb" json:"usage,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (SuggestionCallLog) TableName() string { return "suggestion_call_log" }

func (l *SuggestionCallLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
