package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/GlebRadaev/affiliate-ledger/internal/app"
)

//	@title			Affiliate Ledger API
//	@version		1.0
//	@description	Promo code attribution, tiered commissions and affiliate payouts.

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

// @host		localhost:8080
// @BasePath	/
func main() {
	if err := run(); err != nil {
		// zap may not be initialised yet when startup fails early
		log.Error().Err(err).Msg("affiliate ledger stopped")
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledger := app.New()
	if err := ledger.Start(ctx); err != nil {
		stop()
		_ = ledger.Wait(ctx, stop)
		return err
	}
	if err := ledger.Wait(ctx, stop); err != nil {
		return err
	}
	zap.L().Info("affiliate ledger stopped cleanly")
	return nil
}
