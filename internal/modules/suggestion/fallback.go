package suggestion

import (
	"github.com/google/uuid"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/mood"
)

type fallbackItem struct {
	description string
	kind        string
	duration    int
	difficulty  int
	priority    int
}

var fallbackCatalog = []fallbackItem{
	{
		description: "Take 5 deep breaths, focusing on inhaling calm energy and exhaling tension. This can help center your mind and reduce stress.",
		kind:        mood.ActivityBreathing,
		duration:    5, difficulty: 1, priority: 1,
	},
	{
		description: "Write down three things you're grateful for today, no matter how small. This practice can shift your perspective positively.",
		kind:        mood.ActivityGratitude,
		duration:    10, difficulty: 2, priority: 2,
	},
	{
		description: "Take a 10-minute walk or do gentle stretching. Physical movement can boost your energy and improve your mood naturally.",
		kind:        mood.ActivityPhysical,
		duration:    10, difficulty: 2, priority: 3,
	},
	{
		description: "Listen to your favorite calming music or nature sounds for 15 minutes while relaxing in a comfortable position.",
		kind:        mood.ActivitySelfCare,
		duration:    15, difficulty: 1, priority: 4,
	},
}

// MaxFallbacks is the size of the static catalog.
var MaxFallbacks = len(fallbackCatalog)

// Fallback returns the first n catalog activities for entryID, in catalog order.
// n is clamped to [0, MaxFallbacks].
func Fallback(entryID uuid.UUID, n int) []*types.SuggestedActivity {
	if n <= 0 {
		return []*types.SuggestedActivity{}
	}
	if n > len(fallbackCatalog) {
		n = len(fallbackCatalog)
	}
	out := make([]*types.SuggestedActivity, 0, n)
	for _, f := range fallbackCatalog[:n] {
		out = append(out, &types.SuggestedActivity{
			MoodEntryID:              entryID,
			Description:              f.description,
			ActivityType:             f.kind,
			EstimatedDurationMinutes: f.duration,
			DifficultyLevel:          f.difficulty,
			PriorityLevel:            f.priority,
			IsCompleted:              false,
			Source:                   types.ActivitySourceFallback,
		})
	}
	return out
}
