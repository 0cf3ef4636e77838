package testutil

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewardengine/config"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/pkg/logger"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// LedgerNode must be shared by every ledger repository of a test process. Two
// nodes with the same id generate the same ids within a millisecond.
var LedgerNode = newLedgerNode()

func newLedgerNode() *snowflake.Node {
	node, err := snowflake.NewNode(MockConfigs().ApiServer.NodeID)
	if err != nil {
		panic(err)
	}

	return node
}

func MockConfigs() config.Configs {
	cfg := config.Default()
	cfg.ApiServer.DefaultLimit = 10
	cfg.Auth.AccessToken = config.TokenConfigs{
		Name:       "access_token",
		Secret:     "secret",
		Expiration: config.Duration{Duration: time.Minute},
	}
	cfg.Log.Level = "error"
	cfg.Database.TxTimeout = config.Duration{Duration: 10 * time.Second}

	return cfg
}

// MockContext returns a context holding an empty in-memory sqlite database.
// Every call creates a new database.
func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		panic(err)
	}

	// Every connection of ":memory:" opens a different database.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := MockConfigs()

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(cfg.Log.Level, cfg.Log.Format))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = MockContext()
	}

	return xcontext.WithRequestUserID(ctx, userID)
}

func MockContextWithAdmin(ctx context.Context, userID string) context.Context {
	ctx = MockContextWithUserID(ctx, userID)
	return xcontext.WithRequestUserRole(ctx, "admin")
}
