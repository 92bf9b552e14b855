package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types the prompt advertises. Unknown types from the model are kept as-is.
const (
	ActivityMindfulness = "mindfulness"
	ActivityPhysical    = "physical"
	ActivityCreative    = "creative"
	ActivitySocial      = "social"
	ActivitySelfCare    = "self_care"
	ActivityBreathing   = "breathing"
	ActivityGratitude   = "gratitude"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"

	StatusCompleted = "completed"
	StatusPending   = "pending"
)

type SuggestedActivity struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MoodEntryID uuid.UUID `gorm:"type:uuid;not null;index" json:"mood_entry_id"`

	Description              string `gorm:"column:activity_description;type:text;not null" json:"activity_description"`
	ActivityType             string `gorm:"column:activity_type;size:100;index" json:"activity_type"`
	EstimatedDurationMinutes int    `gorm:"column:estimated_duration_minutes" json:"estimated_duration_minutes"`
	DifficultyLevel          int    `gorm:"column:difficulty_level" json:"difficulty_level"`
	PriorityLevel            int    `gorm:"column:priority_level" json:"priority_level"`
	// Position is the index within the entry's batch; parsed suggestions precede fallbacks.
	Position int `gorm:"column:position;not null;default:0" json:"position"`

	IsCompleted bool       `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	Source  string         `gorm:"column:source;size:20;not null" json:"source"`
	Payload datatypes.JSON `gorm:"column:payload;type:jsonb" json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (SuggestedActivity) TableName() string { return "suggested_activity" }

func (a *SuggestedActivity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *SuggestedActivity) Status() string {
	if a.IsCompleted {
		return StatusCompleted
	}
	return StatusPending
}

func (a *SuggestedActivity) MarkCompleted(at time.Time) {
	a.IsCompleted = true
	a.CompletedAt = &at
}

func (a *SuggestedActivity) MarkIncomplete() {
	a.IsCompleted = false
	a.CompletedAt = nil
}
