package mood

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type SuggestedActivityRepo interface {
	Create(dbc dbctx.Context, activities []*types.SuggestedActivity) ([]*types.SuggestedActivity, error)
	GetByIDs(dbc dbctx.Context, activityIDs []uuid.UUID) ([]*types.SuggestedActivity, error)
	GetByMoodEntryIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.SuggestedActivity, error)
	// GetForUser returns nil, nil when the activity is missing or its entry belongs to someone else.
	GetForUser(dbc dbctx.Context, userID, activityID uuid.UUID) (*types.SuggestedActivity, error)
	// ListByUserInRange filters on activity created_at in [start, end). An empty activityType matches all.
	ListByUserInRange(dbc dbctx.Context, userID uuid.UUID, start, end time.Time, activityType string) ([]*types.SuggestedActivity, error)
	SetCompletion(dbc dbctx.Context, activityID uuid.UUID, completed bool, at *time.Time) error
	FullDeleteByIDs(dbc dbctx.Context, activityIDs []uuid.UUID) error
}

type suggestedActivityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuggestedActivityRepo(db *gorm.DB, baseLog *logger.Logger) SuggestedActivityRepo {
	repoLog := baseLog.With("repo", "SuggestedActivityRepo")
	return &suggestedActivityRepo{db: db, log: repoLog}
}

func (r *suggestedActivityRepo) Create(dbc dbctx.Context, activities []*types.SuggestedActivity) ([]*types.SuggestedActivity, error) {
	if len(activities) == 0 {
		return []*types.SuggestedActivity{}, nil
	}
	if err := dbc.Pick(r.db).Create(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *suggestedActivityRepo) GetByIDs(dbc dbctx.Context, activityIDs []uuid.UUID) ([]*types.SuggestedActivity, error) {
	var results []*types.SuggestedActivity
	if len(activityIDs) == 0 {
		return results, nil
	}
	if err := dbc.Pick(r.db).
		Where("id IN ?", activityIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *suggestedActivityRepo) GetByMoodEntryIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.SuggestedActivity, error) {
	var results []*types.SuggestedActivity
	if len(entryIDs) == 0 {
		return results, nil
	}
	if err := dbc.Pick(r.db).
		Where("mood_entry_id IN ?", entryIDs).
		Order("created_at ASC, mood_entry_id ASC, position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *suggestedActivityRepo) ownedBy(tx *gorm.DB, userID uuid.UUID) *gorm.DB {
	return tx.
		Joins("JOIN mood_entry ON mood_entry.id = suggested_activity.mood_entry_id").
		Where("mood_entry.user_id = ?", userID)
}

func (r *suggestedActivityRepo) GetForUser(dbc dbctx.Context, userID, activityID uuid.UUID) (*types.SuggestedActivity, error) {
	var results []*types.SuggestedActivity
	if err := r.ownedBy(dbc.Pick(r.db), userID).
		Where("suggested_activity.id = ?", activityID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *suggestedActivityRepo) ListByUserInRange(dbc dbctx.Context, userID uuid.UUID, start, end time.Time, activityType string) ([]*types.SuggestedActivity, error) {
	q := r.ownedBy(dbc.Pick(r.db), userID).
		Where("suggested_activity.created_at >= ? AND suggested_activity.created_at < ?", start.UTC(), end.UTC())
	if t := strings.TrimSpace(activityType); t != "" {
		q = q.Where("suggested_activity.activity_type = ?", t)
	}
	var results []*types.SuggestedActivity
	if err := q.
		Order("mood_entry.created_at ASC, suggested_activity.mood_entry_id ASC, suggested_activity.position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *suggestedActivityRepo) SetCompletion(dbc dbctx.Context, activityID uuid.UUID, completed bool, at *time.Time) error {
	return dbc.Pick(r.db).
		Model(&types.SuggestedActivity{}).
		Where("id = ?", activityID).
		Updates(map[string]any{
			"is_completed": completed,
			"completed_at": at,
		}).Error
}

func (r *suggestedActivityRepo) FullDeleteByIDs(dbc dbctx.Context, activityIDs []uuid.UUID) error {
	if len(activityIDs) == 0 {
		return nil
	}
	return dbc.Pick(r.db).
		Where("id IN ?", activityIDs).
		Delete(&types.SuggestedActivity{}).Error
}
