package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context bundles a request context with an optional GORM transaction.
// A nil Tx means "use the repo's base connection".
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

// Pick returns dbc.Tx when set, otherwise base, bound to dbc.Ctx.
func (dbc Context) Pick(base *gorm.DB) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = base
	}
	if dbc.Ctx == nil {
		return t.WithContext(context.Background())
	}
	return t.WithContext(dbc.Ctx)
}
