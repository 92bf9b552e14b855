package handlers

import (
	types "github.com/yungbote/moodlog-backend/internal/domain"
)

type activityView struct {
	*types.SuggestedActivity
	Status string `json:"status"`
}

type moodEntryView struct {
	*types.MoodEntry
	SuggestedActivities []activityView `json:"suggested_activities"`
}

func toActivityView(a *types.SuggestedActivity) activityView {
	return activityView{SuggestedActivity: a, Status: a.Status()}
}

func toActivityViews(in []*types.SuggestedActivity) []activityView {
	out := make([]activityView, 0, len(in))
	for _, a := range in {
		if a != nil {
			out = append(out, toActivityView(a))
		}
	}
	return out
}

func toMoodEntryView(e *types.MoodEntry) moodEntryView {
	return moodEntryView{MoodEntry: e, SuggestedActivities: toActivityViews(e.SuggestedActivities)}
}

func toMoodEntryViews(in []*types.MoodEntry) []moodEntryView {
	out := make([]moodEntryView, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, toMoodEntryView(e))
		}
	}
	return out
}
