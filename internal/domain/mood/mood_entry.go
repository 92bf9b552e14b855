package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinEnergyLevel = 1
	MaxEnergyLevel = 5

	ComfortAlone   = "alone"
	ComfortInGroup = "in_group"
)

type MoodEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_mood_entry_user_created,priority:1" json:"user_id"`

	Location           *string `gorm:"column:location;size:255" json:"location,omitempty"`
	ComfortEnvironment *string `gorm:"column:comfort_environment;size:50" json:"comfort_environment,omitempty"`
	Description        *string `gorm:"column:description;type:text" json:"description,omitempty"`
	EnergyLevel        *int    `gorm:"column:energy_level" json:"energy_level,omitempty"`
	Passion            *string `gorm:"column:passion;size:100" json:"passion,omitempty"`

	Emotions            []*Emotion           `gorm:"many2many:mood_entry_emotion;" json:"emotions"`
	SuggestedActivities []*SuggestedActivity `gorm:"foreignKey:MoodEntryID" json:"suggested_activities"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_mood_entry_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (MoodEntry) TableName() string { return "mood_entry" }

func (m *MoodEntry) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsFromDay reports whether the entry was created on the same calendar date
// as now, evaluated in loc.
func (m *MoodEntry) IsFromDay(now time.Time, loc *time.Location) bool {
	return SameDay(m.CreatedAt, now, loc)
}

// EmotionLabels returns labels in association order.
func (m *MoodEntry) EmotionLabels() []string {
	out := make([]string, 0, len(m.Emotions))
	for _, e := range m.Emotions {
		if e != nil {
			out = append(out, e.Label)
		}
	}
	return out
}

func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns [start of day, start of next day) for t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}
