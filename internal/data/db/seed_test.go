package db_test

import (
	"context"
	"testing"

	"github.com/yungbote/moodlog-backend/internal/data/db"
	"github.com/yungbote/moodlog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodlog-backend/internal/domain"
)

func TestParseEmotionSeedDefault(t *testing.T) {
	roots, err := db.ParseEmotionSeed(db.DefaultEmotionSeed())
	if err != nil {
		t.Fatalf("ParseEmotionSeed: %v", err)
	}
	if len(roots) == 0 || len(roots[0].Children) == 0 {
		t.Fatalf("ParseEmotionSeed: expected nested roots, got %+v", roots)
	}
}

func TestParseEmotionSeedRejectsDuplicates(t *testing.T) {
	data := []byte(`
- key: calm
  label: Calm
  children:
    - { key: calm, label: Calm again }
`)
	if _, err := db.ParseEmotionSeed(data); err == nil {
		t.Fatalf("ParseEmotionSeed: expected duplicate key error")
	}
	if _, err := db.ParseEmotionSeed([]byte(`- { key: "", label: Blank }`)); err == nil {
		t.Fatalf("ParseEmotionSeed: expected missing key error")
	}
}

func TestSeedEmotionsIsIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	roots := []db.EmotionSeed{
		{Key: "calm", Label: "Calm", Children: []db.EmotionSeed{{Key: "relaxed", Label: "Relaxed"}}},
	}

	created, err := db.SeedEmotions(ctx, gdb, roots)
	if err != nil || created != 2 {
		t.Fatalf("SeedEmotions: created=%d err=%v", created, err)
	}
	created, err = db.SeedEmotions(ctx, gdb, roots)
	if err != nil || created != 0 {
		t.Fatalf("SeedEmotions (again): created=%d err=%v", created, err)
	}

	var child types.Emotion
	if err := gdb.Where("emotion_key = ?", "relaxed").First(&child).Error; err != nil {
		t.Fatalf("load child: %v", err)
	}
	if child.ParentKey == nil || *child.ParentKey != "calm" {
		t.Fatalf("SeedEmotions: child parent = %v", child.ParentKey)
	}
}
