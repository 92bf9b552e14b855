package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type MoodEntryRepo interface {
	// Create inserts the entry and its emotion join rows. Emotions must already exist.
	Create(dbc dbctx.Context, entry *types.MoodEntry) (*types.MoodEntry, error)
	GetByIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.MoodEntry, error)
	// GetForUser returns nil, nil when the entry is missing or owned by someone else.
	GetForUser(dbc dbctx.Context, userID, entryID uuid.UUID) (*types.MoodEntry, error)
	ListByUserInRange(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.MoodEntry, error)
	UpdateFields(dbc dbctx.Context, entryID uuid.UUID, updates map[string]any) error
	ReplaceEmotions(dbc dbctx.Context, entry *types.MoodEntry, emotions []*types.Emotion) error
	// DeleteCascade removes the entry, its activities and its emotion join rows.
	DeleteCascade(dbc dbctx.Context, entryID uuid.UUID) error
}

type moodEntryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoodEntryRepo(db *gorm.DB, baseLog *logger.Logger) MoodEntryRepo {
	repoLog := baseLog.With("repo", "MoodEntryRepo")
	return &moodEntryRepo{db: db, log: repoLog}
}

func withRelations(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Emotions", func(db *gorm.DB) *gorm.DB {
			return db.Order(emotionOrder)
		}).
		Preload("SuggestedActivities", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, created_at ASC")
		})
}

func (r *moodEntryRepo) Create(dbc dbctx.Context, entry *types.MoodEntry) (*types.MoodEntry, error) {
	if entry == nil {
		return nil, nil
	}
	if err := dbc.Pick(r.db).
		Omit("Emotions.*", "SuggestedActivities").
		Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *moodEntryRepo) GetByIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if len(entryIDs) == 0 {
		return results, nil
	}
	if err := withRelations(dbc.Pick(r.db)).
		Where("id IN ?", entryIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodEntryRepo) GetForUser(dbc dbctx.Context, userID, entryID uuid.UUID) (*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := withRelations(dbc.Pick(r.db)).
		Where("id = ? AND user_id = ?", entryID, userID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

// ListByUserInRange returns entries with created_at in [start, end), oldest first.
func (r *moodEntryRepo) ListByUserInRange(dbc dbctx.Context, userID uuid.UUID, start, end time.Time) ([]*types.MoodEntry, error) {
	var results []*types.MoodEntry
	if err := withRelations(dbc.Pick(r.db)).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start.UTC(), end.UTC()).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *moodEntryRepo) UpdateFields(dbc dbctx.Context, entryID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.Pick(r.db).
		Model(&types.MoodEntry{}).
		Where("id = ?", entryID).
		Updates(updates).Error
}

func (r *moodEntryRepo) ReplaceEmotions(dbc dbctx.Context, entry *types.MoodEntry, emotions []*types.Emotion) error {
	return dbc.Pick(r.db).
		Model(entry).
		Association("Emotions").
		Replace(emotions)
}

func (r *moodEntryRepo) DeleteCascade(dbc dbctx.Context, entryID uuid.UUID) error {
	return dbc.Pick(r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("mood_entry_id = ?", entryID).Delete(&types.SuggestedActivity{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM mood_entry_emotion WHERE mood_entry_id = ?", entryID).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", entryID).Delete(&types.MoodEntry{}).Error
	})
}
