package aggregates

import (
	"context"

	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/moodlog-backend/internal/domain/aggregates"
	"github.com/yungbote/moodlog-backend/internal/observability"
	"github.com/yungbote/moodlog-backend/internal/platform/ctxutil"
	"github.com/yungbote/moodlog-backend/internal/platform/dbctx"
)

// TxRunner runs fn inside one database transaction. fn returning an error
// rolls the whole unit back; the error is returned unchanged.
type TxRunner interface {
	InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewGormTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(dbc dbctx.Context) error) error {
	if fn == nil {
		return nil
	}
	if r == nil || r.db == nil {
		return domainagg.NewError(domainagg.CodeInternal, "db.tx", "no database configured", nil)
	}

	ctx, span := observability.Tracer().Start(ctxutil.Default(ctx), "db.tx")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(dbctx.Context{Ctx: ctx, Tx: tx})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "rolled back")
	}
	return err
}
