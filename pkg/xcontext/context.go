package xcontext

import (
	"context"
	"time"

	"github.com/questx-lab/rewardengine/config"
	"github.com/questx-lab/rewardengine/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey struct{}
	loggerKey  struct{}
	dbKey      struct{}
	dbTxKey    struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		return config.Default()
	}

	return cfg
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger("info", "text")
	}

	if userID := RequestUserID(ctx); userID != "" {
		return l.With("user_id", userID)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the running transaction if there is one, otherwise the root
// gorm.DB bound to ctx.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*dbTx); ok && !tx.done {
		return tx.db
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("xcontext: no database in context")
	}

	return db.WithContext(ctx)
}

type dbTx struct {
	db     *gorm.DB
	nested bool
	done   bool
}

// WithDBTransaction begins a transaction and makes DB(ctx) return it. If ctx
// already carries a running transaction, the returned context joins it and
// leaves commit and rollback to the outermost owner.
func WithDBTransaction(ctx context.Context) context.Context {
	if parent, ok := ctx.Value(dbTxKey{}).(*dbTx); ok && !parent.done {
		return context.WithValue(ctx, dbTxKey{}, &dbTx{db: parent.db, nested: true})
	}

	return context.WithValue(ctx, dbTxKey{}, &dbTx{db: DB(ctx).Begin()})
}

// CommitDBTransaction commits the transaction started by WithDBTransaction.
func CommitDBTransaction(ctx context.Context) error {
	tx, ok := ctx.Value(dbTxKey{}).(*dbTx)
	if !ok || tx.done || tx.nested {
		return nil
	}

	tx.done = true
	if tx.db.Error != nil {
		tx.db.Rollback()
		return tx.db.Error
	}

	return tx.db.Commit().Error
}

// RollbackDBTransaction is a no-op after a successful commit, so it can be
// deferred right after WithDBTransaction.
func RollbackDBTransaction(ctx context.Context) {
	tx, ok := ctx.Value(dbTxKey{}).(*dbTx)
	if !ok || tx.done || tx.nested {
		return
	}

	tx.done = true
	tx.db.Rollback()
}

// WithTxDeadline detaches ctx from the caller's cancellation and bounds it by
// the configured transaction timeout. Once a transaction has begun, it either
// commits or rolls back on its own schedule.
func WithTxDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := Configs(ctx).Database.TxTimeout.Duration
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// WithQueryDeadline bounds a read by the configured query timeout.
func WithQueryDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := Configs(ctx).Database.QueryTimeout.Duration
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	return context.WithTimeout(ctx, timeout)
}
