package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodlog-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Username:  "u_" + uuid.NewString()[:8],
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedEmotion(tb testing.TB, ctx context.Context, tx *gorm.DB, key, label string, parentKey *string) *types.Emotion {
	tb.Helper()
	e := &types.Emotion{
		ID:        uuid.New(),
		Key:       key,
		Label:     label,
		ParentKey: parentKey,
	}
	if err := tx.WithContext(ctx).Create(e).Error; err != nil {
		tb.Fatalf("seed emotion: %v", err)
	}
	return e
}

// SeedMoodEntry inserts an entry created at createdAt (zero means now).
func SeedMoodEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, energy int, createdAt time.Time, emotions ...*types.Emotion) *types.MoodEntry {
	tb.Helper()
	e := &types.MoodEntry{
		ID:          uuid.New(),
		UserID:      userID,
		EnergyLevel: &energy,
		Emotions:    emotions,
		CreatedAt:   createdAt.UTC(),
	}
	if err := tx.WithContext(ctx).Omit("Emotions.*").Create(e).Error; err != nil {
		tb.Fatalf("seed mood entry: %v", err)
	}
	return e
}

func SeedActivity(tb testing.TB, ctx context.Context, tx *gorm.DB, entryID uuid.UUID, activityType string, completed bool, createdAt time.Time) *types.SuggestedActivity {
	tb.Helper()
	a := &types.SuggestedActivity{
		ID:                       uuid.New(),
		MoodEntryID:              entryID,
		Description:              "do something kind",
		ActivityType:             activityType,
		EstimatedDurationMinutes: 10,
		DifficultyLevel:          2,
		PriorityLevel:            3,
		Source:                   types.ActivitySourceFallback,
		CreatedAt:                createdAt.UTC(),
	}
	if completed {
		a.MarkCompleted(createdAt.UTC())
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}
