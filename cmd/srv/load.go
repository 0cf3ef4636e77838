package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/questx-lab/rewardengine/config"
	"github.com/questx-lab/rewardengine/internal/domain"
	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/domain/cron"
	"github.com/questx-lab/rewardengine/internal/entity"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/kafka"
	"github.com/questx-lab/rewardengine/pkg/logger"
	"github.com/questx-lab/rewardengine/pkg/pubsub"
	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"github.com/questx-lab/rewardengine/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func (s *srv) loadConfig(cctx *cli.Context) error {
	cfg, err := config.Load(cctx.String("config"))
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	s.configs = &cfg
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	return nil
}

func (s *srv) loadLogger() {
	s.logger = logger.NewLogger(s.configs.Log.Level, s.configs.Log.Format)
	s.ctx = xcontext.WithLogger(s.ctx, s.logger)
}

func (s *srv) loadDatabase() error {
	var dialector gorm.Dialector
	switch s.configs.Database.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       s.configs.Database.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(s.configs.Database.File)
	default:
		return fmt.Errorf("unsupported database driver %s", s.configs.Database.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return err
	}

	if s.configs.Database.Driver == "sqlite" {
		// sqlite allows only one writer at a time.
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	s.db = db
	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	if s.configs.Database.Driver == "sqlite" {
		return entity.MigrateTable(s.ctx)
	}

	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return repository.DoSqlMigration(sqlDB, s.logger)
}

func (s *srv) loadRedisClient() error {
	if !s.configs.Redis.Enable {
		return nil
	}

	client, err := xredis.NewClient(s.ctx, s.configs.Redis.Addr)
	if err != nil {
		return fmt.Errorf("cannot connect to redis: %w", err)
	}

	s.redisClient = client
	return nil
}

func (s *srv) loadPublisher() error {
	if !s.configs.Kafka.Enable {
		s.publisher = pubsub.NopPublisher{}
		return nil
	}

	publisher, err := kafka.NewPublisher(s.configs.Kafka.ClientID, strings.Split(s.configs.Kafka.Addr, ","))
	if err != nil {
		return fmt.Errorf("cannot create kafka publisher: %w", err)
	}

	s.publisher = publisher
	s.stopPublish = publisher.Stop
	return nil
}

func (s *srv) loadRepos() error {
	node, err := snowflake.NewNode(s.configs.ApiServer.NodeID)
	if err != nil {
		return fmt.Errorf("cannot create snowflake node %d: %w", s.configs.ApiServer.NodeID, err)
	}

	s.accountRepo = repository.NewAccountRepository()
	s.ledgerRepo = repository.NewLedgerRepository(node)
	s.prizeRepo = repository.NewPrizeRepository()
	s.drawHistoryRepo = repository.NewDrawHistoryRepository()
	return nil
}

func (s *srv) loadAbuseGuard() error {
	s.cronManager = cron.NewCronJobManager()

	if s.redisClient != nil {
		s.abuseCounter = abuse.NewRedisCounter(s.redisClient)
	} else {
		memoryCounter := abuse.NewMemoryCounter()
		s.abuseCounter = memoryCounter

		if s.configs.Abuse.SweepSchedule != "" {
			err := s.cronManager.Register(s.ctx, s.configs.Abuse.SweepSchedule, cron.NewAbuseSweepJob(memoryCounter))
			if err != nil {
				return err
			}
		}
	}

	s.abuseGuard = abuse.NewGuard(s.abuseCounter, s.accountRepo, s.configs.Abuse)
	return nil
}

func (s *srv) loadDomains() {
	s.ledgerDomain = domain.NewLedgerDomain(s.accountRepo, s.ledgerRepo)
	s.ticketDomain = domain.NewTicketDomain(s.accountRepo, s.ledgerRepo, s.abuseGuard)
	s.dailyClaimDomain = domain.NewDailyClaimDomain(s.accountRepo, s.ledgerRepo, s.abuseGuard)
	s.drawDomain = domain.NewDrawDomain(s.accountRepo, s.ledgerRepo, s.prizeRepo, s.drawHistoryRepo,
		s.ticketDomain, s.abuseGuard, s.publisher)
	s.claimDomain = domain.NewClaimDomain(s.accountRepo, s.prizeRepo, s.drawHistoryRepo,
		s.abuseGuard, s.publisher)
	s.prizeDomain = domain.NewPrizeDomain(s.prizeRepo)
	s.accountDomain = domain.NewAccountDomain(s.accountRepo)
	s.abuseDomain = domain.NewAbuseDomain(s.accountRepo, s.abuseGuard)
}

func (s *srv) stop(ctx context.Context) {
	if s.cronManager != nil {
		s.cronManager.Stop(ctx)
	}

	if s.stopPublish != nil {
		if err := s.stopPublish(ctx); err != nil {
			s.logger.Errorf("Cannot stop publisher: %v", err)
		}
	}
}
