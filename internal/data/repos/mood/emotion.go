package mood

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type EmotionRepo interface {
	Create(dbc dbctx.Context, emotions []*types.Emotion) ([]*types.Emotion, error)
	GetAll(dbc dbctx.Context) ([]*types.Emotion, error)
	GetByIDs(dbc dbctx.Context, emotionIDs []uuid.UUID) ([]*types.Emotion, error)
	GetByID(dbc dbctx.Context, emotionID uuid.UUID) (*types.Emotion, error)
	GetByKeys(dbc dbctx.Context, keys []string) ([]*types.Emotion, error)
	GetByKey(dbc dbctx.Context, key string) (*types.Emotion, error)
	GetRoots(dbc dbctx.Context) ([]*types.Emotion, error)
	GetByParentKeys(dbc dbctx.Context, parentKeys []string) ([]*types.Emotion, error)
	CountByParentKey(dbc dbctx.Context, parentKey string) (int64, error)
	UpdateFields(dbc dbctx.Context, emotionID uuid.UUID, updates map[string]any) error
	FullDeleteByIDs(dbc dbctx.Context, emotionIDs []uuid.UUID) error
}

type emotionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmotionRepo(db *gorm.DB, baseLog *logger.Logger) EmotionRepo {
	repoLog := baseLog.With("repo", "EmotionRepo")
	return &emotionRepo{db: db, log: repoLog}
}

const emotionOrder = "label ASC, emotion_key ASC"

func (r *emotionRepo) Create(dbc dbctx.Context, emotions []*types.Emotion) ([]*types.Emotion, error) {
	if len(emotions) == 0 {
		return []*types.Emotion{}, nil
	}
	if err := dbc.Pick(r.db).Create(&emotions).Error; err != nil {
		return nil, err
	}
	return emotions, nil
}

func (r *emotionRepo) GetAll(dbc dbctx.Context) ([]*types.Emotion, error) {
	var results []*types.Emotion
	if err := dbc.Pick(r.db).Order(emotionOrder).Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *emotionRepo) GetByIDs(dbc dbctx.Context, emotionIDs []uuid.UUID) ([]*types.Emotion, error) {
	var results []*types.Emotion
	if len(emotionIDs) == 0 {
		return results, nil
	}
	if err := dbc.Pick(r.db).
		Where("id IN ?", emotionIDs).
		Order(emotionOrder).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *emotionRepo) GetByID(dbc dbctx.Context, emotionID uuid.UUID) (*types.Emotion, error) {
	rows, err := r.GetByIDs(dbc, []uuid.UUID{emotionID})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *emotionRepo) GetByKeys(dbc dbctx.Context, keys []string) ([]*types.Emotion, error) {
	var results []*types.Emotion
	if len(keys) == 0 {
		return results, nil
	}
	if err := dbc.Pick(r.db).
		Where("emotion_key IN ?", keys).
		Order(emotionOrder).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *emotionRepo) GetByKey(dbc dbctx.Context, key string) (*types.Emotion, error) {
	rows, err := r.GetByKeys(dbc, []string{key})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *emotionRepo) GetRoots(dbc dbctx.Context) ([]*types.Emotion, error) {
	var results []*types.Emotion
	if err := dbc.Pick(r.db).
		Where("parent_key IS NULL OR parent_key = ''").
		Order(emotionOrder).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *emotionRepo) GetByParentKeys(dbc dbctx.Context, parentKeys []string) ([]*types.Emotion, error) {
	var results []*types.Emotion
	if len(parentKeys) == 0 {
		return results, nil
	}
	if err := dbc.Pick(r.db).
		Where("parent_key IN ?", parentKeys).
		Order(emotionOrder).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *emotionRepo) CountByParentKey(dbc dbctx.Context, parentKey string) (int64, error) {
	var count int64
	if err := dbc.Pick(r.db).
		Model(&types.Emotion{}).
		Where("parent_key = ?", parentKey).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *emotionRepo) UpdateFields(dbc dbctx.Context, emotionID uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.Pick(r.db).
		Model(&types.Emotion{}).
		Where("id = ?", emotionID).
		Updates(updates).Error
}

// FullDeleteByIDs also removes join rows that reference the emotions.
func (r *emotionRepo) FullDeleteByIDs(dbc dbctx.Context, emotionIDs []uuid.UUID) error {
	if len(emotionIDs) == 0 {
		return nil
	}
	return dbc.Pick(r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM mood_entry_emotion WHERE emotion_id IN ?", emotionIDs).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", emotionIDs).Delete(&types.Emotion{}).Error
	})
}
