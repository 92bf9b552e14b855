package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/moodlog-backend/internal/data/repos/testutil"
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Email:     "userrepo@example.com",
			Username:  "userrepo",
			Password:  "pw",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: expected 1 user with id, got %+v", created)
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.Email != "userrepo@example.com" {
		t.Fatalf("GetByID: err=%v got=%+v", err, got)
	}
	if missing, err := repo.GetByID(dbc, uuid.New()); err != nil || missing != nil {
		t.Fatalf("GetByID (missing): err=%v got=%+v", err, missing)
	}

	gotByEmails, err := repo.GetByEmails(dbc, []string{created[0].Email})
	if err != nil || len(gotByEmails) != 1 {
		t.Fatalf("GetByEmails: err=%v len=%d", err, len(gotByEmails))
	}

	for _, login := range []string{"userrepo", "userrepo@example.com"} {
		u, err := repo.GetByLogin(dbc, login)
		if err != nil || u == nil || u.ID != created[0].ID {
			t.Fatalf("GetByLogin(%q): err=%v got=%+v", login, err, u)
		}
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}
	exists, err = repo.UsernameExists(dbc, "nobody")
	if err != nil || exists {
		t.Fatalf("UsernameExists (missing): err=%v exists=%v", err, exists)
	}

	if err := repo.UpdateFields(dbc, created[0].ID, map[string]any{"first_name": "Z"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if err := repo.UpdateAvatarColor(dbc, created[0].ID, "#112233"); err != nil {
		t.Fatalf("UpdateAvatarColor: %v", err)
	}
	got, _ = repo.GetByID(dbc, created[0].ID)
	if got.FirstName != "Z" || got.AvatarColor != "#112233" {
		t.Fatalf("after updates: %+v", got)
	}
}
