package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Emotion is one node of the emotion taxonomy. The tree is stored by key:
// ParentKey references another emotion's Key, Children is filled from
// key-indexed lookups and never persisted.
type Emotion struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"column:emotion_key;uniqueIndex;not null;size:100" json:"key"`
	Label     string    `gorm:"column:label;not null;size:255" json:"label"`
	ParentKey *string   `gorm:"column:parent_key;index;size:100" json:"parent_key,omitempty"`

	Children []*Emotion `gorm:"-" json:"children,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Emotion) TableName() string { return "emotion" }

func (e *Emotion) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Emotion) IsRoot() bool {
	return e.ParentKey == nil || *e.ParentKey == ""
}

// BuildForest links a flat emotion list into root trees using ParentKey.
// Nodes whose parent is missing from the list are treated as roots.
// Input order is preserved among siblings.
func BuildForest(flat []*Emotion) []*Emotion {
	byKey := make(map[string]*Emotion, len(flat))
	for _, e := range flat {
		if e == nil {
			continue
		}
		e.Children = nil
		byKey[e.Key] = e
	}
	roots := make([]*Emotion, 0, len(flat))
	for _, e := range flat {
		if e == nil {
			continue
		}
		if !e.IsRoot() {
			if parent, ok := byKey[*e.ParentKey]; ok && parent != e {
				parent.Children = append(parent.Children, e)
				continue
			}
		}
		roots = append(roots, e)
	}
	return roots
}
