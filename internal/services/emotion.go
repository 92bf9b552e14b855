package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	dataagg "github.com/yungbote/moodlog-backend/internal/data/aggregates"
	"github.com/yungbote/moodlog-backend/internal/data/repos"
	types "github.com/yungbote/moodlog-backend/internal/domain"
	"github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/domain/mood"
	"github.com/yungbote/moodlog-backend/internal/platform/cache"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
	"github.com/yungbote/moodlog-backend/internal/platform/logger"
)

const (
	emotionsCacheKey = "emotions:all"
	maxEmotionLabel  = 255
	maxEmotionKey    = 100
)

var emotionKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

type EmotionInput struct {
	Key       string  `json:"key"`
	Label     string  `json:"label"`
	ParentKey *string `json:"parent_key"`
}

// EmotionPatch relabels or moves an emotion. An empty ParentKey makes it a root.
type EmotionPatch struct {
	Label     *string `json:"label"`
	ParentKey *string `json:"parent_key"`
}

type DropdownOption struct {
	ID        uuid.UUID `json:"id"`
	Key       string    `json:"key"`
	Label     string    `json:"label"`
	ParentKey *string   `json:"parent_key,omitempty"`
}

type EmotionService interface {
	GetAll(ctx context.Context) ([]*types.Emotion, error)
	GetRoots(ctx context.Context) ([]*types.Emotion, error)
	GetTaxonomy(ctx context.Context) ([]*types.Emotion, error)
	GetDropdown(ctx context.Context) ([]DropdownOption, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.Emotion, error)
	GetByKey(ctx context.Context, key string) (*types.Emotion, error)
	GetByParentKey(ctx context.Context, parentKey string) ([]*types.Emotion, error)
	Create(ctx context.Context, in EmotionInput) (*types.Emotion, error)
	Update(ctx context.Context, id uuid.UUID, patch EmotionPatch) (*types.Emotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type emotionService struct {
	log         *logger.Logger
	tx          dataagg.TxRunner
	emotionRepo repos.EmotionRepo
	loader      *cache.Loader
}

func NewEmotionService(log *logger.Logger, tx dataagg.TxRunner, emotionRepo repos.EmotionRepo, c cache.Cache, ttl time.Duration) EmotionService {
	serviceLog := log.With("service", "EmotionService")
	return &emotionService{
		log:         serviceLog,
		tx:          tx,
		emotionRepo: emotionRepo,
		loader:      cache.NewLoader(c, ttl, serviceLog),
	}
}

func (es *emotionService) GetAll(ctx context.Context) ([]*types.Emotion, error) {
	var out []*types.Emotion
	err := es.loader.Load(ctx, emotionsCacheKey, &out, func(ctx context.Context) (any, error) {
		all, err := es.emotionRepo.GetAll(dbctx.Context{Ctx: ctx})
		if err != nil {
			return nil, dataagg.MapError("emotion.list", err)
		}
		return all, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (es *emotionService) GetRoots(ctx context.Context) ([]*types.Emotion, error) {
	roots, err := es.emotionRepo.GetRoots(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, dataagg.MapError("emotion.roots", err)
	}
	return roots, nil
}

// GetTaxonomy returns the root emotions with Children filled recursively.
func (es *emotionService) GetTaxonomy(ctx context.Context) ([]*types.Emotion, error) {
	all, err := es.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return mood.BuildForest(all), nil
}

func (es *emotionService) GetDropdown(ctx context.Context) ([]DropdownOption, error) {
	all, err := es.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]DropdownOption, 0, len(all))
	for _, e := range all {
		out = append(out, DropdownOption{ID: e.ID, Key: e.Key, Label: e.Label, ParentKey: e.ParentKey})
	}
	return out, nil
}

func (es *emotionService) GetByID(ctx context.Context, id uuid.UUID) (*types.Emotion, error) {
	const op = "emotion.get"
	e, err := es.emotionRepo.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if e == nil {
		return nil, aggregates.NotFound(op, "emotion not found")
	}
	return e, nil
}

func (es *emotionService) GetByKey(ctx context.Context, key string) (*types.Emotion, error) {
	const op = "emotion.get_by_key"
	e, err := es.emotionRepo.GetByKey(dbctx.Context{Ctx: ctx}, strings.TrimSpace(key))
	if err != nil {
		return nil, dataagg.MapError(op, err)
	}
	if e == nil {
		return nil, aggregates.NotFound(op, "emotion not found: "+key)
	}
	return e, nil
}

func (es *emotionService) GetByParentKey(ctx context.Context, parentKey string) ([]*types.Emotion, error) {
	children, err := es.emotionRepo.GetByParentKeys(dbctx.Context{Ctx: ctx}, []string{strings.TrimSpace(parentKey)})
	if err != nil {
		return nil, dataagg.MapError("emotion.children", err)
	}
	return children, nil
}

func (es *emotionService) Create(ctx context.Context, in EmotionInput) (*types.Emotion, error) {
	const op = "emotion.create"
	key := strings.TrimSpace(in.Key)
	label := strings.TrimSpace(in.Label)
	parentKey := trimmedPtr(in.ParentKey)

	if err := validateEmotionKey(op, key); err != nil {
		return nil, err
	}
	if label == "" || len(label) > maxEmotionLabel {
		return nil, aggregates.Validation(op, "label is required and must be at most 255 characters")
	}
	if parentKey != nil && *parentKey == key {
		return nil, aggregates.Validation(op, "an emotion cannot be its own parent")
	}

	created := &types.Emotion{Key: key, Label: label, ParentKey: parentKey}
	err := es.tx.InTx(ctx, func(dbc dbctx.Context) error {
		existing, err := es.emotionRepo.GetByKey(dbc, key)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if existing != nil {
			return aggregates.Conflict(op, "emotion with key '"+key+"' already exists")
		}
		if parentKey != nil {
			parent, err := es.emotionRepo.GetByKey(dbc, *parentKey)
			if err != nil {
				return dataagg.MapError(op, err)
			}
			if parent == nil {
				return aggregates.NotFound(op, "parent emotion not found: "+*parentKey)
			}
		}
		if _, err := es.emotionRepo.Create(dbc, []*types.Emotion{created}); err != nil {
			return dataagg.MapError(op, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	es.invalidate(ctx)
	return created, nil
}

func (es *emotionService) Update(ctx context.Context, id uuid.UUID, patch EmotionPatch) (*types.Emotion, error) {
	const op = "emotion.update"
	var out *types.Emotion
	err := es.tx.InTx(ctx, func(dbc dbctx.Context) error {
		e, err := es.emotionRepo.GetByID(dbc, id)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if e == nil {
			return aggregates.NotFound(op, "emotion not found")
		}

		updates := map[string]any{}
		if patch.Label != nil {
			label := strings.TrimSpace(*patch.Label)
			if label == "" || len(label) > maxEmotionLabel {
				return aggregates.Validation(op, "label is required and must be at most 255 characters")
			}
			updates["label"] = label
		}
		if patch.ParentKey != nil {
			parentKey := trimmedPtr(patch.ParentKey)
			if parentKey != nil {
				if err := es.checkReparent(dbc, op, e.Key, *parentKey); err != nil {
					return err
				}
			}
			updates["parent_key"] = parentKey
		}
		if err := es.emotionRepo.UpdateFields(dbc, id, updates); err != nil {
			return dataagg.MapError(op, err)
		}
		out, err = es.emotionRepo.GetByID(dbc, id)
		return dataagg.MapError(op, err)
	})
	if err != nil {
		return nil, err
	}
	es.invalidate(ctx)
	return out, nil
}

// checkReparent walks up from the proposed parent; meeting key means the move
// would make the emotion its own ancestor.
func (es *emotionService) checkReparent(dbc dbctx.Context, op, key, parentKey string) error {
	seen := map[string]bool{}
	cur := parentKey
	for {
		if cur == key {
			return aggregates.Validation(op, "reparenting would create a cycle")
		}
		if seen[cur] {
			return aggregates.Validation(op, "emotion taxonomy already contains a cycle at "+cur)
		}
		seen[cur] = true

		node, err := es.emotionRepo.GetByKey(dbc, cur)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if node == nil {
			if cur == parentKey {
				return aggregates.NotFound(op, "parent emotion not found: "+parentKey)
			}
			return nil
		}
		if node.IsRoot() {
			return nil
		}
		cur = *node.ParentKey
	}
}

func (es *emotionService) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "emotion.delete"
	err := es.tx.InTx(ctx, func(dbc dbctx.Context) error {
		e, err := es.emotionRepo.GetByID(dbc, id)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if e == nil {
			return aggregates.NotFound(op, "emotion not found")
		}
		n, err := es.emotionRepo.CountByParentKey(dbc, e.Key)
		if err != nil {
			return dataagg.MapError(op, err)
		}
		if n > 0 {
			return aggregates.Conflict(op, "emotion has child emotions")
		}
		return dataagg.MapError(op, es.emotionRepo.FullDeleteByIDs(dbc, []uuid.UUID{id}))
	})
	if err != nil {
		return err
	}
	es.invalidate(ctx)
	return nil
}

func (es *emotionService) invalidate(ctx context.Context) {
	es.loader.Invalidate(ctx, emotionsCacheKey)
}

func validateEmotionKey(op, key string) error {
	if key == "" || len(key) > maxEmotionKey {
		return aggregates.Validation(op, "key is required and must be at most 100 characters")
	}
	if !emotionKeyPattern.MatchString(key) {
		return aggregates.Validation(op, "key may only contain lowercase letters, digits, '_' and '-'")
	}
	return nil
}
