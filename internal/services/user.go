package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/platform/avatar"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

const maxNameLength = 100

// UserPatch carries the profile fields a user may change. Nil means unchanged.
type UserPatch struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	AvatarColor *string `json:"avatar_color"`
}

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateMe(ctx context.Context, patch UserPatch) (*types.User, error)
	RenderAvatar(ctx context.Context) ([]byte, error)
}

type userService struct {
	log      *logger.Logger
	tx       dataagg.TxRunner
	userRepo repos.UserRepo
	avatars  *avatar.Renderer
}

func NewUserService(log *logger.Logger, tx dataagg.TxRunner, userRepo repos.UserRepo, avatars *avatar.Renderer) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{log: serviceLog, tx: tx, userRepo: userRepo, avatars: avatars}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	const op = "user.get"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}
	return us.load(dbctx.Context{Ctx: ctx}, op, userID)
}

func (us *userService) load(dbc dbctx.Context, op string, userID uuid.UUID) (*types.User, error) {
	u, err := us.userRepo.GetByID(dbc, userID)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if u == nil {
		return nil, aggregates.NotFound(op, "user does not exist")
	}
	return u, nil
}

func (us *userService) UpdateMe(ctx context.Context, patch UserPatch) (*types.User, error) {
	const op = "user.update"
	userID, err := requireUserID(ctx, op)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if patch.FirstName != nil {
		v := strings.TrimSpace(*patch.FirstName)
		if len(v) > maxNameLength {
			return nil, aggregates.Validation(op, "first name is too long")
		}
		updates["first_name"] = v
	}
	if patch.LastName != nil {
		v := strings.TrimSpace(*patch.LastName)
		if len(v) > maxNameLength {
			return nil, aggregates.Validation(op, "last name is too long")
		}
		updates["last_name"] = v
	}
	if patch.AvatarColor != nil {
		c := avatar.NormalizeHex(*patch.AvatarColor)
		if c == "" {
			return nil, aggregates.Validation(op, "avatar color must be a hex color like #4F46E5")
		}
		updates["avatar_color"] = c
	}

	var out *types.User
	err = us.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if _, err := us.load(dbc, op, userID); err != nil {
			return err
		}
		if err := us.userRepo.UpdateFields(dbc, userID, updates); err != nil {
			return dataagg.MapError(op, err)
		}
		u, err := us.load(dbc, op, userID)
		out = u
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RenderAvatar draws the caller's initials avatar as PNG.
func (us *userService) RenderAvatar(ctx context.Context) ([]byte, error) {
	const op = "user.avatar"
	u, err := us.GetMe(ctx)
	if err != nil {
		return nil, err
	}
	if us.avatars == nil {
		return nil, aggregates.NewError(aggregates.CodeInternal, op, "avatar renderer not configured", nil)
	}
	color := avatar.NormalizeHex(u.AvatarColor)
	if color == "" {
		color = us.avatars.ColorFor("", u.ID.String())
	}
	png, err := us.avatars.Render(u.FirstName, u.LastName, color)
	if err != nil {
		return nil, aggregates.Wrap(aggregates.CodeInternal, op, err)
	}
	return png, nil
}
