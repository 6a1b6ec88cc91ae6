package xcontext

import (
	"context"

	"gorm.io/gorm"
)

// txBox holds the open transaction. It is a pointer so committing through a
// derived context also clears the transaction seen by the original one.
type txBox struct {
	tx *gorm.DB
}

// WithDBTransaction begins a transaction and replaces the value returned by
// DB() until the transaction is committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, &txBox{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the current transaction if any. It is a
// no-op on a context without an open transaction.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if box, ok := ctx.Value(txKey{}).(*txBox); ok && box.tx != nil {
		box.tx.Commit()
		box.tx = nil
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the current transaction if any. Calling
// it after WithCommitDBTransaction is a no-op, so it can be deferred as a
// guard against early returns.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if box, ok := ctx.Value(txKey{}).(*txBox); ok && box.tx != nil {
		box.tx.Rollback()
		box.tx = nil
	}

	return ctx
}
