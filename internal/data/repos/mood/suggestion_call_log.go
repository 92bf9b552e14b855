package mood

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type SuggestionCallLogRepo interface {
	Create(dbc dbctx.Context, row *types.SuggestionCallLog) error
	GetByMoodEntryIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.SuggestionCallLog, error)
}

type suggestionCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSuggestionCallLogRepo(db *gorm.DB, baseLog *logger.Logger) SuggestionCallLogRepo {
	return &suggestionCallLogRepo{db: db, log: baseLog.With("repo", "SuggestionCallLogRepo")}
}

func (r *suggestionCallLogRepo) Create(dbc dbctx.Context, row *types.SuggestionCallLog) error {
	if row == nil {
		return nil
	}
	return dbc.Pick(r.db).Create(row).Error
}

func (r *suggestionCallLogRepo) GetByMoodEntryIDs(dbc dbctx.Context, entryIDs []uuid.UUID) ([]*types.SuggestionCallLog, error) {
	var results []*types.SuggestionCallLog
	if len(entryIDs) == 0 {
		return results, nil
	}
	if err := dbc.Pick(r.db).
		Where("mood_entry_id IN ?", entryIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
