package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/platform/avatar"
	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

const minPasswordLength = 8

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, login, password string) (string, string, error)
	RefreshUser(ctx context.Context, refreshToken string) (string, string, error)
	LogoutUser(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type authService struct {
	log           *logger.Logger
	tx            dataagg.TxRunner
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	avatars       *avatar.Renderer
	jwtSecretKey  []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           Clock
}

func NewAuthService(
	log *logger.Logger,
	tx dataagg.TxRunner,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	avatars *avatar.Renderer,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:           serviceLog,
		tx:            tx,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		avatars:       avatars,
		jwtSecretKey:  []byte(jwtSecretKey),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

func (as *authService) GetAccessTTL() time.Duration { return as.accessTTL }

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	const op = "auth.register"
	if user == nil {
		return aggregates.Validation(op, "user is required")
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)

	if _, err := mail.ParseAddress(user.Email); err != nil || user.Email == "" {
		return aggregates.Validation(op, "a valid email is required")
	}
	if user.Username == "" {
		user.Username = strings.SplitN(user.Email, "@", 2)[0]
	}
	if len(user.Password) < minPasswordLength {
		return aggregates.Validation(op, fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.Password = string(hash)

	return as.tx.InTx(ctx, func(dbc dbctx.Context) error {
		if exists, err := as.userRepo.EmailExists(dbc, user.Email); err != nil {
			return dataagg.MapError(op, err)
		} else if exists {
			return aggregates.Conflict(op, "email already registered")
		}
		if exists, err := as.userRepo.UsernameExists(dbc, user.Username); err != nil {
			return dataagg.MapError(op, err)
		} else if exists {
			return aggregates.Conflict(op, "username already taken")
		}
		user.ID = uuid.New()
		if as.avatars != nil {
			user.AvatarColor = as.avatars.ColorFor(user.AvatarColor, user.ID.String())
		}
		if _, err := as.userRepo.Create(dbc, []*types.User{user}); err != nil {
			return dataagg.MapError(op, err)
		}
		as.log.Info("User registered", "user_id", user.ID)
		return nil
	})
}

func (as *authService) LoginUser(ctx context.Context, login, password string) (string, string, error) {
	const op = "auth.login"
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", "", aggregates.Validation(op, "login and password are required")
	}

	var accessToken, refreshToken string
	err := as.tx.InTx(ctx, func(dbc dbctx.Context) error {
		user, err := as.userRepo.GetByLogin(dbc, login)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if user == nil {
			return aggregates.Unauthorized(op, "invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return aggregates.Unauthorized(op, "invalid credentials")
		}
		accessToken, refreshToken, err = as.issueTokens(dbc, user.ID)
		return err
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

func (as *authService) RefreshUser(ctx context.Context, refreshToken string) (string, string, error) {
	const op = "auth.refresh"
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		if rd := ctxutil.GetRequestData(ctx); rd != nil {
			refreshToken = rd.RefreshToken
		}
	}
	if refreshToken == "" {
		return "", "", aggregates.Validation(op, "refresh token is required")
	}

	var accessToken, newRefresh string
	err := as.tx.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := as.userTokenRepo.GetByRefreshTokens(dbc, []string{refreshToken})
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if len(found) == 0 || found[0] == nil {
			return aggregates.Unauthorized(op, "unknown refresh token")
		}
		existing := found[0]
		if rd := ctxutil.GetRequestData(ctx); rd != nil && rd.UserID != uuid.Nil && rd.UserID != existing.UserID {
			return aggregates.Unauthorized(op, "refresh token belongs to another user")
		}
		if existing.ExpiresAt.Before(as.now()) {
			if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
				return dataagg.MapError(op, err)
			}
			return aggregates.Unauthorized(op, "refresh token expired")
		}
		accessToken, newRefresh, err = as.issueTokens(dbc, existing.UserID)
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, []uuid.UUID{existing.ID}); err != nil {
			as.log.Warn("Failed to remove old refresh token", "error", err)
			return dataagg.MapError(op, err)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return accessToken, newRefresh, nil
}

func (as *authService) LogoutUser(ctx context.Context) error {
	const op = "auth.logout"
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.TokenString == "" {
		return aggregates.Unauthorized(op, "not authenticated")
	}
	return as.tx.InTx(ctx, func(dbc dbctx.Context) error {
		found, err := as.userTokenRepo.GetByAccessTokens(dbc, []string{rd.TokenString})
		if err != nil {
			return dataagg.MapError(op, err)
		}
		ids := make([]uuid.UUID, 0, len(found))
		for _, t := range found {
			if t != nil {
				ids = append(ids, t.ID)
			}
		}
		if err := as.userTokenRepo.FullDeleteByIDs(dbc, ids); err != nil {
			return dataagg.MapError(op, err)
		}
		return nil
	})
}

// SetContextFromToken validates an access token and attaches the caller's
// identity. Tokens whose session row is gone (logout, refresh) are rejected.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	const op = "auth.token"
	userID, err := as.parseAccessToken(tokenString)
	if err != nil {
		return ctx, aggregates.Wrap(aggregates.CodeUnauthorized, op, err)
	}
	found, err := as.userTokenRepo.GetByAccessTokens(dbctx.Context{Ctx: ctx}, []string{tokenString})
	if err != nil {
		return ctx, dataagg.MapError(op, err)
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return ctx, aggregates.Unauthorized(op, "session not found")
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{
		TokenString:  tokenString,
		RefreshToken: found[0].RefreshToken,
		UserID:       userID,
	}), nil
}

func (as *authService) issueTokens(dbc dbctx.Context, userID uuid.UUID) (string, string, error) {
	accessToken, err := as.generateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("generate access token: %w", err)
	}
	refreshToken := uuid.New().String()
	row := &types.UserToken{
		ID:           uuid.New(),
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    as.now().Add(as.refreshTTL).UTC(),
	}
	if _, err := as.userTokenRepo.Create(dbc, []*types.UserToken{row}); err != nil {
		as.log.Warn("Create user token failed", "error", err)
		return "", "", dataagg.MapError("auth.token", err)
	}
	return accessToken, refreshToken, nil
}

func (as *authService) generateAccessToken(userID uuid.UUID) (string, error) {
	now := as.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(as.jwtSecretKey)
}

func (as *authService) parseAccessToken(tokenString string) (uuid.UUID, error) {
	if strings.TrimSpace(tokenString) == "" {
		return uuid.Nil, errors.New("missing token")
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return as.jwtSecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(as.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject: %w", err)
	}
	return id, nil
}
