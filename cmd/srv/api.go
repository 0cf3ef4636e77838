package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/questx-lab/rewardengine/internal/common"
	"github.com/questx-lab/rewardengine/internal/middleware"
	"github.com/questx-lab/rewardengine/internal/model"
	"github.com/questx-lab/rewardengine/pkg/authenticator"
	"github.com/questx-lab/rewardengine/pkg/prometheus"
	"github.com/questx-lab/rewardengine/pkg/router"
	"github.com/urfave/cli/v2"
)

const shutdownTimeout = 10 * time.Second

func (s *srv) startApi(cctx *cli.Context) error {
	if err := s.loadConfig(cctx); err != nil {
		return err
	}
	s.loadLogger()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if s.configs.Database.Driver == "sqlite" {
		if err := s.migrateDB(); err != nil {
			return err
		}
	}

	if err := s.loadRedisClient(); err != nil {
		return err
	}

	if err := s.loadPublisher(); err != nil {
		return err
	}

	if err := s.loadRepos(); err != nil {
		return err
	}

	if err := s.loadAbuseGuard(); err != nil {
		return err
	}

	s.loadDomains()

	if err := s.loadRouter(); err != nil {
		return err
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.configs.ApiServer.Host, s.configs.ApiServer.Port),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.cronManager.Start(s.ctx)

	ctx, stop := signal.NotifyContext(s.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting server on port: %s", s.configs.ApiServer.Port)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			s.stop(s.ctx)
			return err
		}
	case <-ctx.Done():
	}

	s.logger.Infof("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(s.ctx, shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Errorf("Cannot shutdown server gracefully: %v", err)
	}
	s.stop(shutdownCtx)

	s.logger.Infof("Server stopped")
	return nil
}

func (s *srv) loadRouter() error {
	metricsHandler, err := prometheus.NewHandler(common.RegisterMetrics)
	if err != nil {
		return err
	}

	s.router = router.New(s.db, *s.configs, s.logger)
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())
	s.router.Handle("/metrics", metricsHandler)

	tokenEngine := authenticator.NewTokenEngine[model.AccessToken](s.configs.Auth.AccessToken)
	authVerifier := middleware.NewAuthVerifier(tokenEngine)

	// These following APIs need an authenticated user.
	userRouter := s.router.Branch()
	userRouter.Before(authVerifier.Middleware())
	{
		// Wallet API
		router.GET(userRouter, "/getBalance", s.ledgerDomain.GetBalance)
		router.GET(userRouter, "/getLedger", s.ledgerDomain.GetLedger)
		router.POST(userRouter, "/buyTickets", s.ticketDomain.BuyTickets)

		// Daily claim API
		router.POST(userRouter, "/claimDaily", s.dailyClaimDomain.ClaimDaily)
		router.GET(userRouter, "/getDailyStatus", s.dailyClaimDomain.GetDailyStatus)

		// Draw API
		router.POST(userRouter, "/draw", s.drawDomain.Draw)
		router.GET(userRouter, "/getDrawHistory", s.drawDomain.GetDrawHistory)
		router.GET(userRouter, "/getCatalog", s.drawDomain.GetCatalog)
		router.POST(userRouter, "/requestClaim", s.claimDomain.RequestClaim)

		// Abuse API
		router.POST(userRouter, "/checkAction", s.abuseDomain.CheckAction)
	}

	// These following APIs are only for admins.
	adminRouter := s.router.Branch()
	adminRouter.Before(authVerifier.Middleware())
	adminRouter.Before(middleware.NewOnlyAdmin(common.NewAdminCapability(common.AdminRoles...)).Middleware())
	{
		// Prize API
		router.POST(adminRouter, "/admin/createPrize", s.prizeDomain.CreatePrize)
		router.POST(adminRouter, "/admin/updatePrize", s.prizeDomain.UpdatePrize)
		router.POST(adminRouter, "/admin/deletePrize", s.prizeDomain.DeletePrize)
		router.GET(adminRouter, "/admin/getPrizes", s.prizeDomain.GetPrizes)

		// Wallet API
		router.POST(adminRouter, "/admin/adjustBalance", s.ledgerDomain.AdjustBalance)
		router.POST(adminRouter, "/admin/reward", s.ledgerDomain.Reward)
		router.GET(adminRouter, "/admin/verifyConservation", s.ledgerDomain.VerifyConservation)

		// Claim API
		router.POST(adminRouter, "/admin/reviewClaim", s.claimDomain.ReviewClaim)
		router.GET(adminRouter, "/admin/getPendingClaims", s.claimDomain.GetPendingClaims)

		// Account API
		router.POST(adminRouter, "/admin/ban", s.accountDomain.Ban)
		router.POST(adminRouter, "/admin/unban", s.accountDomain.Unban)
		router.GET(adminRouter, "/admin/getAccount", s.accountDomain.GetAccount)
	}

	return nil
}
