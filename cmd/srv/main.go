package main

import (
	"context"
	"net/http"
	"os"

	"github.com/questx-lab/rewardengine/config"
	"github.com/questx-lab/rewardengine/internal/domain"
	"github.com/questx-lab/rewardengine/internal/domain/abuse"
	"github.com/questx-lab/rewardengine/internal/domain/cron"
	"github.com/questx-lab/rewardengine/internal/repository"
	"github.com/questx-lab/rewardengine/pkg/logger"
	"github.com/questx-lab/rewardengine/pkg/pubsub"
	"github.com/questx-lab/rewardengine/pkg/router"
	"github.com/questx-lab/rewardengine/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	configs *config.Configs
	logger  logger.Logger
	db      *gorm.DB

	redisClient xredis.Client
	publisher   pubsub.Publisher
	stopPublish func(context.Context) error

	abuseCounter abuse.Counter
	abuseGuard   abuse.Guard
	cronManager  *cron.CronJobManager

	accountRepo     repository.AccountRepository
	ledgerRepo      repository.LedgerRepository
	prizeRepo       repository.PrizeRepository
	drawHistoryRepo repository.DrawHistoryRepository

	ledgerDomain     domain.LedgerDomain
	ticketDomain     domain.TicketDomain
	dailyClaimDomain domain.DailyClaimDomain
	drawDomain       domain.DrawDomain
	claimDomain      domain.ClaimDomain
	prizeDomain      domain.PrizeDomain
	accountDomain    domain.AccountDomain
	abuseDomain      domain.AbuseDomain

	router *router.Router
	server *http.Server
}

func main() {
	server := &srv{ctx: context.Background()}
	server.loadApp()

	if err := server.app.Run(os.Args); err != nil {
		if server.logger != nil {
			server.logger.Errorf("Cannot run the app: %v", err)
		}
		os.Exit(1)
	}
}
