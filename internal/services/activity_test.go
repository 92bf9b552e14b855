package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/moodlog-backend/internal/data/repos/testutil"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
)

func newActivitySvc(t *testing.T, env *testEnv, now time.Time) ActivityService {
	t.Helper()
	return NewActivityService(testutil.Logger(t), env.tx, env.acts, env.entries, time.UTC, clockAt(now))
}

func TestActivityService_Completion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "act@example.com")
	entry := testutil.SeedMoodEntry(t, ctx, env.db, user.ID, 3, fixedNow.Add(-time.Hour))
	a := testutil.SeedActivity(t, ctx, env.db, entry.ID, "breathing", false, fixedNow.Add(-time.Hour))
	svc := newActivitySvc(t, env, fixedNow)
	uctx := asUser(user.ID)

	done, err := svc.SetCompleted(uctx, a.ID, true)
	if err != nil || !done.IsCompleted || done.CompletedAt == nil || !done.CompletedAt.Equal(fixedNow) {
		t.Fatalf("SetCompleted(true): err=%v got=%+v", err, done)
	}
	got, err := svc.GetActivity(uctx, a.ID)
	if err != nil || !got.IsCompleted || got.Status() != "completed" {
		t.Fatalf("GetActivity: err=%v got=%+v", err, got)
	}

	undone, err := svc.SetCompleted(uctx, a.ID, false)
	if err != nil || undone.IsCompleted || undone.CompletedAt != nil {
		t.Fatalf("SetCompleted(false): err=%v got=%+v", err, undone)
	}

	stranger := testutil.SeedUser(t, ctx, env.db, "stranger@example.com")
	_, err = svc.SetCompleted(asUser(stranger.ID), a.ID, true)
	wantCode(t, "SetCompleted (not owner)", err, aggregates.CodeNotFound)
	_, err = svc.GetActivity(uctx, uuid.New())
	wantCode(t, "GetActivity (missing)", err, aggregates.CodeNotFound)
}

func TestActivityService_DeleteRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "del@example.com")
	svc := newActivitySvc(t, env, fixedNow)
	uctx := asUser(user.ID)

	today := testutil.SeedMoodEntry(t, ctx, env.db, user.ID, 3, fixedNow.Add(-2*time.Hour))
	completed := testutil.SeedActivity(t, ctx, env.db, today.ID, "gratitude", true, fixedNow.Add(-2*time.Hour))
	pending := testutil.SeedActivity(t, ctx, env.db, today.ID, "physical", false, fixedNow.Add(-2*time.Hour))

	yesterday := testutil.SeedMoodEntry(t, ctx, env.db, user.ID, 3, fixedNow.AddDate(0, 0, -1))
	stale := testutil.SeedActivity(t, ctx, env.db, yesterday.ID, "physical", false, fixedNow.AddDate(0, 0, -1))

	wantCode(t, "DeleteActivity (completed)", svc.DeleteActivity(uctx, completed.ID), aggregates.CodeConflict)
	wantCode(t, "DeleteActivity (prior day)", svc.DeleteActivity(uctx, stale.ID), aggregates.CodeConflict)

	if err := svc.DeleteActivity(uctx, pending.ID); err != nil {
		t.Fatalf("DeleteActivity (pending today): %v", err)
	}
	_, err := svc.GetActivity(uctx, pending.ID)
	wantCode(t, "GetActivity (deleted)", err, aggregates.CodeNotFound)
}

func TestActivityService_ListByDateAndType(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, ctx, env.db, "list@example.com")
	svc := newActivitySvc(t, env, fixedNow)
	uctx := asUser(user.ID)

	entry := testutil.SeedMoodEntry(t, ctx, env.db, user.ID, 3, fixedNow.Add(-time.Hour))
	testutil.SeedActivity(t, ctx, env.db, entry.ID, "breathing", false, fixedNow.Add(-time.Hour))
	testutil.SeedActivity(t, ctx, env.db, entry.ID, "physical", false, fixedNow.Add(-time.Hour))
	old := testutil.SeedMoodEntry(t, ctx, env.db, user.ID, 3, fixedNow.AddDate(0, 0, -2))
	testutil.SeedActivity(t, ctx, env.db, old.ID, "physical", false, fixedNow.AddDate(0, 0, -2))

	all, err := svc.GetTodayActivities(uctx, "")
	if err != nil || len(all) != 2 {
		t.Fatalf("GetTodayActivities: err=%v len=%d", err, len(all))
	}
	phys, err := svc.GetTodayActivities(uctx, "physical")
	if err != nil || len(phys) != 1 {
		t.Fatalf("GetTodayActivities (type): err=%v len=%d", err, len(phys))
	}
	past, err := svc.GetActivitiesByDate(uctx, fixedNow.AddDate(0, 0, -2), "")
	if err != nil || len(past) != 1 {
		t.Fatalf("GetActivitiesByDate: err=%v len=%d", err, len(past))
	}
}
