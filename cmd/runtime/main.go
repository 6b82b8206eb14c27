package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/vault-engine/internal/common"
	"github.com/hxuan190/vault-engine/internal/config"
	"github.com/hxuan190/vault-engine/internal/http"
	"github.com/hxuan190/vault-engine/internal/vault"
)

// @title Vault Engine API
// @version 1.0-beta
// @description Deterministic fixed-point accounting engine for cross-venue vaults.
// @description
// @description ## - Features
// @description - **Exact Arithmetic**: All amounts are unsigned fixed-point integers, floor rounding only
// @description - **Snapshot Pricing**: Estimates and settlements price against the same oracle snapshot
// @description - **Share Accounting**: ERC20-style share ledger with price-per-share NAV tracking
// @description - **Tiered Fees**: Flat deposit fees plus threshold-tiered withdraw fees
// @description - **Drift Rebalancing**: Deadband-filtered rebalance orders under a per-epoch outbound cap
// @description
// @description ## - Units
// @description - Native amounts use the asset's wei decimals (HYPE: 18, so 1 HYPE = 1e18)
// @description - USD notionals are 1e18 scaled, oracle prices 1e8 scaled
// @description - Shares use the vault's share decimals (default 8)
// @description - Fees are basis points out of 10000
// @description
// @description ## - API Status
// @description - **Version**: 1.0-beta
// @description - **Rate Limit**: 10 requests/second (burst: 20)
// @host localhost:8080
// @BasePath /
// @schemes http
// @tag.name vaults
// @tag.description Vault lifecycle, share operations, and NAV queries
// @tag.name estimate
// @tag.description Quote deposits and withdrawals without settling
// @tag.name admin
// @tag.description Vault administration and market data feeds

func main() {
	common.InitRuntime()

	// load env
	err := godotenv.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load env")
		return
	}

	// di container config
	conf := container.NewConf(
		&config.GeneralConfig{},
		&config.VaultConfig{},
	)

	// di container
	dic, err := container.New(
		conf,

		&vault.Service{},
		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	// Run() blocks until SIGINT/SIGTERM
	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
