package suggestion

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/mood"
)

const (
	TargetCount = 3

	DefaultDescription = "Beneficial activity for your current mood"
	DefaultType        = mood.ActivitySelfCare
	DefaultDuration    = 10
	DefaultDifficulty  = 2
	DefaultPriority    = 3

	minLevel = 1
	maxLevel = 5
)

// NormalizeOne maps a descriptor onto an activity, substituting defaults for
// absent or unusable fields. Difficulty and priority are clamped to [1,5];
// duration is taken as given.
func NormalizeOne(entryID uuid.UUID, d Descriptor) *types.SuggestedActivity {
	desc, ok := d["description"].AsString()
	if !ok {
		desc = DefaultDescription
	}
	kind, ok := d["type"].AsString()
	if !ok {
		kind = DefaultType
	}
	a := &types.SuggestedActivity{
		MoodEntryID:              entryID,
		Description:              desc,
		ActivityType:             kind,
		EstimatedDurationMinutes: intOr(d["duration"], DefaultDuration),
		DifficultyLevel:          clamp(intOr(d["difficulty"], DefaultDifficulty), minLevel, maxLevel),
		PriorityLevel:            clamp(intOr(d["priority"], DefaultPriority), minLevel, maxLevel),
		IsCompleted:              false,
		Source:                   types.ActivitySourceAI,
	}
	if raw, err := json.Marshal(map[string]Value(d)); err == nil {
		a.Payload = datatypes.JSON(raw)
	}
	return a
}

// Normalize always yields exactly TargetCount activities: the first three
// descriptors in order, topped up from the fallback catalog when short.
func Normalize(entryID uuid.UUID, descriptors []Descriptor) []*types.SuggestedActivity {
	if len(descriptors) > TargetCount {
		descriptors = descriptors[:TargetCount]
	}
	out := make([]*types.SuggestedActivity, 0, TargetCount)
	for _, d := range descriptors {
		out = append(out, NormalizeOne(entryID, d))
	}
	if missing := TargetCount - len(out); missing > 0 {
		out = append(out, Fallback(entryID, missing)...)
	}
	return out
}

func intOr(v Value, def int) int {
	if i, ok := v.AsInt(); ok {
		return i
	}
	return def
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
