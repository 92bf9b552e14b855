package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

type ActivityService interface {
	GetActivitiesByDate(ctx context.Context, date time.Time, activityType string) ([]*types.SuggestedActivity, error)
	GetTodayActivities(ctx context.Context, activityType string) ([]*types.SuggestedActivity, error)
	GetActivity(ctx context.Context, id uuid.UUID) (*types.SuggestedActivity, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*types.SuggestedActivity, error)
	DeleteActivity(ctx context.Context, id uuid.UUID) error
}

type activityService struct {
	log          *logger.Logger
	tx           dataagg.TxRunner
	activityRepo repos.SuggestedActivityRepo
	entryRepo    repos.MoodEntryRepo
	loc          *time.Location
	now          Clock
}

func NewActivityService(
	log *logger.Logger,
	tx dataagg.TxRunner,
	activityRepo repos.SuggestedActivityRepo,
	entryRepo repos.MoodEntryRepo,
	loc *time.Location,
	now Clock,
) ActivityService {
	if now == nil {
		now = time.Now
	}
	return &activityService{
		log:          log.With("service", "ActivityService"),
		tx:           tx,
		activityRepo: activityRepo,
		entryRepo:    entryRepo,
		loc:          orUTC(loc),
		now:          now,
	}
}

func (as *activityService) GetActivitiesByDate(ctx context.Context, date time.Time, activityType string) ([]*types.SuggestedActivity, error) {
	const op = "activity.by_date"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = today(as.now(), as.loc)
	}
	start, end := civilDay(date, as.loc)
	out, err := as.activityRepo.ListByUserInRange(dbctx.Context{Ctx: ctx}, userID, start, end, activityType)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return out, nil
}

func (as *activityService) GetTodayActivities(ctx context.Context, activityType string) ([]*types.SuggestedActivity, error) {
	return as.GetActivitiesByDate(ctx, today(as.now(), as.loc), activityType)
}

func (as *activityService) GetActivity(ctx context.Context, id uuid.UUID) (*types.SuggestedActivity, error) {
	const op = "activity.get"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	return as.loadOwned(dbctx.Context{Ctx: ctx}, op, userID, id)
}

func (as *activityService) loadOwned(dbc dbctx.Context, op string, userID, id uuid.UUID) (*types.SuggestedActivity, error) {
	a, err := as.activityRepo.GetForUser(dbc, userID, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if a == nil {
		return nil, aggregates.NotFound(op, "activity not found")
	}
	return a, nil
}

// SetCompleted toggles completion. completed_at is stamped on completion and
// cleared otherwise.
func (as *activityService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) (*types.SuggestedActivity, error) {
	const op = "activity.complete"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	var out *types.SuggestedActivity
	err = as.tx.InTx(ctx, func(dbc dbctx.Context) error {
		a, err := as.loadOwned(dbc, op, userID, id)
		if err != nil {
			return err
		}
		if completed {
			a.MarkCompleted(as.now().UTC())
		} else {
			a.MarkIncomplete()
		}
		if err := as.activityRepo.SetCompletion(dbc, a.ID, a.IsCompleted, a.CompletedAt); err != nil {
			return dataagg.MapError(op, err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteActivity removes a pending activity on the day its mood entry was recorded.
func (as *activityService) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	const op = "activity.delete"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return err
	}
	return as.tx.InTx(ctx, func(dbc dbctx.Context) error {
		a, err := as.loadOwned(dbc, op, userID, id)
		if err != nil {
			return err
		}
		if a.IsCompleted {
			return aggregates.Conflict(op, "completed activities cannot be deleted")
		}
		entries, err := as.entryRepo.GetByIDs(dbc, []uuid.UUID{a.MoodEntryID})
		if err != nil {
			return dataagg.MapError(op, err)
		}
		createdAt := a.CreatedAt
		if len(entries) > 0 && entries[0] != nil {
			createdAt = entries[0].CreatedAt
		}
		if !sameDay(createdAt, as.now(), as.loc) {
			return aggregates.Conflict(op, "activities can only be deleted on the day they were suggested")
		}
		return dataagg.MapError(op, as.activityRepo.FullDeleteByIDs(dbc, []uuid.UUID{a.ID}))
	})
}
