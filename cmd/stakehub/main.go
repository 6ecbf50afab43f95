package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/stakehub-io/stakehub-client/cmd/stakehub/cli"
	"github.com/stakehub-io/stakehub-client/internal/clients/ledgerclient"
	"github.com/stakehub-io/stakehub-client/internal/clients/walletclient"
	"github.com/stakehub-io/stakehub-client/internal/config"
	"github.com/stakehub-io/stakehub-client/internal/observability/metrics"
	"github.com/stakehub-io/stakehub-client/internal/server"
	"github.com/stakehub-io/stakehub-client/internal/services"
	"github.com/stakehub-io/stakehub-client/internal/utils/poller"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx := context.Background()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		panic(err)
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		panic(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	ledgerClient := ledgerclient.NewLedgerClientWithMetrics(
		ledgerclient.New(&cfg.Ledger),
	)
	walletClient := walletclient.NewKeypairWallet(&cfg.Wallet)

	service := services.NewService(cfg, ledgerClient, walletClient)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	if cfg.Poller.Enabled() {
		refreshPoller := poller.NewPoller(cfg.Poller.RefreshPollingInterval, service.BackgroundRefresh)
		go refreshPoller.Start(ctx)
	}

	if err := server.New(&cfg.Server, service).Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("stakehub client server exited")
	}
}
