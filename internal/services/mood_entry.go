package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/domain/mood"
	"github.com/yungbote/moodlog-backend/internal/modules/suggestion"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

const (
	maxLocationLength    = 255
	maxDescriptionLength = 5000
	maxPassionLength     = 100
	maxHistoryDays       = 366
)

type MoodEntryInput struct {
	Location           *string     `json:"location"`
	ComfortEnvironment *string     `json:"comfort_environment"`
	Description        *string     `json:"description"`
	EnergyLevel        *int        `json:"energy_level"`
	Passion            *string     `json:"passion"`
	EmotionIDs         []uuid.UUID `json:"emotion_ids"`
}

// MoodEntryPatch updates today's entry. Nil fields are left alone; a non-nil
// EmotionIDs replaces the whole emotion set.
type MoodEntryPatch struct {
	Location           *string      `json:"location"`
	ComfortEnvironment *string      `json:"comfort_environment"`
	Description        *string      `json:"description"`
	EnergyLevel        *int         `json:"energy_level"`
	Passion            *string      `json:"passion"`
	EmotionIDs         *[]uuid.UUID `json:"emotion_ids"`
}

type DailySummary struct {
	Date                   string   `json:"date"`
	EnergyLevel            *int     `json:"energy_level"`
	Emotions               []string `json:"emotions"`
	ActivityCount          int      `json:"activity_count"`
	CompletedActivityCount int      `json:"completed_activity_count"`
}

type MoodEntryService interface {
	CreateMoodEntry(ctx context.Context, in MoodEntryInput) (*types.MoodEntry, error)
	GetMoodEntry(ctx context.Context, id uuid.UUID) (*types.MoodEntry, error)
	GetMoodEntriesByDate(ctx context.Context, date time.Time) ([]*types.MoodEntry, error)
	GetTodayMoodEntry(ctx context.Context) (*types.MoodEntry, error)
	GetMoodHistory(ctx context.Context, start, end time.Time) ([]*types.MoodEntry, error)
	GetDailySummary(ctx context.Context, date time.Time) (*DailySummary, error)
	UpdateMoodEntry(ctx context.Context, id uuid.UUID, patch MoodEntryPatch) (*types.MoodEntry, error)
	DeleteMoodEntry(ctx context.Context, id uuid.UUID) error
}

type moodEntryService struct {
	log          *logger.Logger
	tx           dataagg.TxRunner
	entryRepo    repos.MoodEntryRepo
	emotionRepo  repos.EmotionRepo
	activityRepo repos.SuggestedActivityRepo
	callLogRepo  repos.SuggestionCallLogRepo
	generator    suggestion.Generator
	loc          *time.Location
	now          Clock
}

func NewMoodEntryService(
	log *logger.Logger,
	tx dataagg.TxRunner,
	entryRepo repos.MoodEntryRepo,
	emotionRepo repos.EmotionRepo,
	activityRepo repos.SuggestedActivityRepo,
	callLogRepo repos.SuggestionCallLogRepo,
	generator suggestion.Generator,
	loc *time.Location,
	now Clock,
) MoodEntryService {
	if now == nil {
		now = time.Now
	}
	return &moodEntryService{
		log:          log.With("service", "MoodEntryService"),
		tx:           tx,
		entryRepo:    entryRepo,
		emotionRepo:  emotionRepo,
		activityRepo: activityRepo,
		callLogRepo:  callLogRepo,
		generator:    generator,
		loc:          orUTC(loc),
		now:          now,
	}
}

// CreateMoodEntry stores the entry, then attaches exactly three suggested
// activities. Suggestion failures never fail the request; they degrade to
// the fallback set.
func (ms *moodEntryService) CreateMoodEntry(ctx context.Context, in MoodEntryInput) (*types.MoodEntry, error) {
	const op = "mood_entry.create"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	if in.EnergyLevel == nil {
		return nil, aggregates.Validation(op, "energy level is required")
	}
	if in.EmotionIDs == nil {
		return nil, aggregates.Validation(op, "emotion_ids is required")
	}
	entry := &types.MoodEntry{
		ID:                 uuid.New(),
		UserID:             userID,
		Location:           trimmedPtr(in.Location),
		ComfortEnvironment: trimmedPtr(in.ComfortEnvironment),
		Description:        trimmedPtr(in.Description),
		EnergyLevel:        in.EnergyLevel,
		Passion:            trimmedPtr(in.Passion),
		CreatedAt:          ms.now().UTC(),
	}
	if err := validateEntryFields(op, entry); err != nil {
		return nil, err
	}

	err = ms.tx.InTx(ctx, func(dbc dbctx.Context) error {
		emotions, err := ms.resolveEmotions(dbc, in.EmotionIDs)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		entry.Emotions = emotions
		if _, err := ms.entryRepo.Create(dbc, entry); err != nil {
			return dataagg.MapError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := ms.generator.Generate(ctx, entry)
	entry.SuggestedActivities = ms.saveActivities(ctx, entry, res.Activities)
	ms.recordCall(ctx, entry, res)

	reloaded, err := ms.entryRepo.GetForUser(dbctx.Context{Ctx: ctx}, userID, entry.ID)
	if err != nil || reloaded == nil {
		ms.log.Warn("Reload after create failed, returning in-memory entry", "mood_entry_id", entry.ID, "error", err)
		return entry, nil
	}
	return reloaded, nil
}

// saveActivities writes each row on its own; a failed row is logged and left
// out of the result.
func (ms *moodEntryService) saveActivities(ctx context.Context, entry *types.MoodEntry, activities []*types.SuggestedActivity) []*types.SuggestedActivity {
	saved := make([]*types.SuggestedActivity, 0, len(activities))
	createdAt := ms.now().UTC()
	for i, a := range activities {
		if a == nil {
			continue
		}
		a.MoodEntryID = entry.ID
		a.Position = i
		a.CreatedAt = createdAt
		if _, err := ms.activityRepo.Create(dbctx.Context{Ctx: ctx}, []*types.SuggestedActivity{a}); err != nil {
			ms.log.Error("Failed to save suggested activity",
				"mood_entry_id", entry.ID,
				"activity_type", a.ActivityType,
				"error", err,
			)
			continue
		}
		saved = append(saved, a)
	}
	return saved
}

func (ms *moodEntryService) recordCall(ctx context.Context, entry *types.MoodEntry, res suggestion.Result) {
	if ms.callLogRepo == nil {
		return
	}
	row := &types.SuggestionCallLog{
		UserID:      entry.UserID,
		MoodEntryID: entry.ID,
		Model:       ms.generator.Model(),
		Prompt:      res.Prompt,
		Response:    suggestion.TruncateResponse(res.RawResponse),
		Success:     res.Err == nil,
		Outcome:     res.Outcome,
		ErrorKind:   res.ErrorKind,
		LatencyMS:   res.Latency.Milliseconds(),
		CreatedAt:   ms.now().UTC(),
	}
	if res.Err != nil {
		row.Error = res.Err.Error()
	}
	if len(res.Usage) > 0 {
		row.Usage = datatypes.JSON(res.Usage)
	}
	if err := ms.callLogRepo.Create(dbctx.Context{Ctx: ctx}, row); err != nil {
		ms.log.Warn("Failed to record suggestion call", "mood_entry_id", entry.ID, "error", err)
	}
}

// resolveEmotions loads the given ids in request order, skipping unknown ids
// and duplicates.
func (ms *moodEntryService) resolveEmotions(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Emotion, error) {
	found, err := ms.emotionRepo.GetByIDs(dbc, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.Emotion, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}
	out := make([]*types.Emotion, 0, len(ids))
	seen := map[uuid.UUID]bool{}
	for _, id := range ids {
		e, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, e)
	}
	return out, nil
}

func (ms *moodEntryService) GetMoodEntry(ctx context.Context, id uuid.UUID) (*types.MoodEntry, error) {
	const op = "mood_entry.get"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	return ms.loadOwned(dbctx.Context{Ctx: ctx}, op, userID, id)
}

func (ms *moodEntryService) loadOwned(dbc dbctx.Context, op string, userID, id uuid.UUID) (*types.MoodEntry, error) {
	entry, err := ms.entryRepo.GetForUser(dbc, userID, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if entry == nil {
		return nil, aggregates.NotFound(op, "mood entry not found")
	}
	return entry, nil
}

func (ms *moodEntryService) GetMoodEntriesByDate(ctx context.Context, date time.Time) ([]*types.MoodEntry, error) {
	const op = "mood_entry.by_date"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	if date.IsZero() {
		date = today(ms.now(), ms.loc)
	}
	start, end := civilDay(date, ms.loc)
	entries, err := ms.entryRepo.ListByUserInRange(dbctx.Context{Ctx: ctx}, userID, start, end)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return entries, nil
}

// GetTodayMoodEntry returns the latest entry created today.
func (ms *moodEntryService) GetTodayMoodEntry(ctx context.Context) (*types.MoodEntry, error) {
	const op = "mood_entry.today"
	entries, err := ms.GetMoodEntriesByDate(ctx, today(ms.now(), ms.loc))
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, aggregates.NotFound(op, "no mood entry recorded today")
	}
	return entries[len(entries)-1], nil
}

// GetMoodHistory lists entries from start's day through end's day inclusive.
func (ms *moodEntryService) GetMoodHistory(ctx context.Context, start, end time.Time) ([]*types.MoodEntry, error) {
	const op = "mood_entry.history"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	if start.IsZero() || end.IsZero() {
		return nil, aggregates.Validation(op, "start and end dates are required")
	}
	from, _ := civilDay(start, ms.loc)
	_, to := civilDay(end, ms.loc)
	if !from.Before(to) {
		return nil, aggregates.Validation(op, "start date must not be after end date")
	}
	if to.Sub(from) > maxHistoryDays*24*time.Hour+time.Hour {
		return nil, aggregates.Validation(op, fmt.Sprintf("history range is limited to %d days", maxHistoryDays))
	}
	entries, err := ms.entryRepo.ListByUserInRange(dbctx.Context{Ctx: ctx}, userID, from, to)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	return entries, nil
}

// GetDailySummary describes the latest entry of the day.
func (ms *moodEntryService) GetDailySummary(ctx context.Context, date time.Time) (*DailySummary, error) {
	const op = "mood_entry.summary"
	if date.IsZero() {
		date = today(ms.now(), ms.loc)
	}
	entries, err := ms.GetMoodEntriesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, aggregates.NotFound(op, "no mood entries for "+date.Format(DateLayout))
	}
	latest := entries[len(entries)-1]
	summary := &DailySummary{
		Date:          date.Format(DateLayout),
		EnergyLevel:   latest.EnergyLevel,
		Emotions:      latest.EmotionLabels(),
		ActivityCount: len(latest.SuggestedActivities),
	}
	for _, a := range latest.SuggestedActivities {
		if a.IsCompleted {
			summary.CompletedActivityCount++
		}
	}
	return summary, nil
}

func (ms *moodEntryService) UpdateMoodEntry(ctx context.Context, id uuid.UUID, patch MoodEntryPatch) (*types.MoodEntry, error) {
	const op = "mood_entry.update"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	if patch.EmotionIDs != nil && len(*patch.EmotionIDs) == 0 {
		return nil, aggregates.Validation(op, "at least one emotion must be selected")
	}

	var out *types.MoodEntry
	err = ms.tx.InTx(ctx, func(dbc dbctx.Context) error {
		entry, err := ms.loadOwned(dbc, op, userID, id)
		if err != nil {
			return err
		}
		if !entry.IsFromDay(ms.now(), ms.loc) {
			return aggregates.Conflict(op, "only today's mood entry can be modified")
		}

		updates := map[string]any{}
		if patch.Location != nil {
			entry.Location = trimmedPtr(patch.Location)
			updates["location"] = entry.Location
		}
		if patch.ComfortEnvironment != nil {
			entry.ComfortEnvironment = trimmedPtr(patch.ComfortEnvironment)
			updates["comfort_environment"] = entry.ComfortEnvironment
		}
		if patch.Description != nil {
			entry.Description = trimmedPtr(patch.Description)
			updates["description"] = entry.Description
		}
		if patch.Passion != nil {
			entry.Passion = trimmedPtr(patch.Passion)
			updates["passion"] = entry.Passion
		}
		if patch.EnergyLevel != nil {
			entry.EnergyLevel = patch.EnergyLevel
			updates["energy_level"] = *patch.EnergyLevel
		}
		if err := validateEntryFields(op, entry); err != nil {
			return err
		}
		if err := ms.entryRepo.UpdateFields(dbc, entry.ID, updates); err != nil {
			return dataagg.MapError(op, err)
		}
		if patch.EmotionIDs != nil {
			emotions, err := ms.resolveEmotions(dbc, *patch.EmotionIDs)
			if err != nil {
				return dataagg.MapError(op, err)
			}
			if err := ms.entryRepo.ReplaceEmotions(dbc, entry, emotions); err != nil {
				return dataagg.MapError(op, err)
			}
		}
		out, err = ms.loadOwned(dbc, op, userID, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (ms *moodEntryService) DeleteMoodEntry(ctx context.Context, id uuid.UUID) error {
	const op = "mood_entry.delete"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return err
	}
	return ms.tx.InTx(ctx, func(dbc dbctx.Context) error {
		entry, err := ms.loadOwned(dbc, op, userID, id)
		if err != nil {
			return err
		}
		if !entry.IsFromDay(ms.now(), ms.loc) {
			return aggregates.Conflict(op, "only today's mood entry can be deleted")
		}
		return dataagg.MapError(op, ms.entryRepo.DeleteCascade(dbc, entry.ID))
	})
}

func validateEntryFields(op string, e *types.MoodEntry) error {
	if e.EnergyLevel != nil && (*e.EnergyLevel < mood.MinEnergyLevel || *e.EnergyLevel > mood.MaxEnergyLevel) {
		return aggregates.Validation(op, "energy level must be between 1 and 5")
	}
	if e.ComfortEnvironment != nil && *e.ComfortEnvironment != types.ComfortAlone && *e.ComfortEnvironment != types.ComfortInGroup {
		return aggregates.Validation(op, "comfort environment must be 'alone' or 'in_group'")
	}
	switch {
	case tooLong(e.Location, maxLocationLength):
		return aggregates.Validation(op, "location cannot exceed 255 characters")
	case tooLong(e.Description, maxDescriptionLength):
		return aggregates.Validation(op, "description cannot exceed 5000 characters")
	case tooLong(e.Passion, maxPassionLength):
		return aggregates.Validation(op, "passion cannot exceed 100 characters")
	}
	return nil
}
