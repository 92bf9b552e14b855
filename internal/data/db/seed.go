package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	types "github.com/yungbote/moodlog-backend/internal/domain"
)

//go:embed seed/emotions.yaml
var defaultEmotionSeed []byte

// EmotionSeed is one node of the YAML taxonomy file.
type EmotionSeed struct {
	Key      string        `yaml:"key"`
	Label    string        `yaml:"label"`
	Children []EmotionSeed `yaml:"children"`
}

func DefaultEmotionSeed() []byte { return defaultEmotionSeed }

func ParseEmotionSeed(data []byte) ([]EmotionSeed, error) {
	var roots []EmotionSeed
	if err := yaml.Unmarshal(data, &roots); err != nil {
		return nil, fmt.Errorf("parse emotion seed: %w", err)
	}
	seen := map[string]bool{}
	var walk func(nodes []EmotionSeed) error
	walk = func(nodes []EmotionSeed) error {
		for _, n := range nodes {
			k := strings.TrimSpace(n.Key)
			if k == "" || strings.TrimSpace(n.Label) == "" {
				return errors.New("emotion seed: key and label are required")
			}
			if seen[k] {
				return fmt.Errorf("emotion seed: duplicate key %q", k)
			}
			seen[k] = true
			if err := walk(n.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(roots); err != nil {
		return nil, err
	}
	return roots, nil
}

// SeedEmotions inserts any seed node whose key is not already stored, parents
// before children. Existing rows are left untouched. Returns the insert count.
func SeedEmotions(ctx context.Context, db *gorm.DB, roots []EmotionSeed) (int, error) {
	created := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var walk func(nodes []EmotionSeed, parent *string) error
		walk = func(nodes []EmotionSeed, parent *string) error {
			for _, n := range nodes {
				key := strings.TrimSpace(n.Key)
				var count int64
				if err := tx.Model(&types.Emotion{}).Where("emotion_key = ?", key).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					row := &types.Emotion{Key: key, Label: strings.TrimSpace(n.Label), ParentKey: parent}
					if err := tx.Create(row).Error; err != nil {
						return fmt.Errorf("seed emotion %q: %w", key, err)
					}
					created++
				}
				k := key
				if err := walk(n.Children, &k); err != nil {
					return err
				}
			}
			return nil
		}
		return walk(roots, nil)
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
