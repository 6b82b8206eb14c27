package config

import (
	"errors"
	"fmt"

	"github.com/andrew-solarstorm/go-packages/common"
	"github.com/holiman/uint256"
)

// VaultConfig carries the administratively settable parameters of the engine.
// The core treats these as inputs; nothing here is hardcoded downstream.
type VaultConfig struct {
	// DBPath is the BoltDB file for vault/token/epoch persistence.
	// Default: "./data/vault-engine.db"
	DBPath string

	// ShareDecimals is the fixed-point base of vault shares.
	ShareDecimals uint8

	// MinNotionalUsd1e8 is the minimum USD notional per operation,
	// 1e8-denominated (venue convention). Rescaled to 1e18 exactly once,
	// inside the accountant.
	MinNotionalUsd1e8 *uint256.Int

	// MaxOracleDeviationBps bounds normalized price vs BBO mid.
	MaxOracleDeviationBps uint16

	// MaxSlippageBps bounds execution price vs BBO.
	MaxSlippageBps uint16

	// DeadbandBps is the minimum per-asset drift (bps of NAV) worth
	// rebalancing.
	DeadbandBps uint16

	// EpochLengthSec and MaxOutboundPerEpochUsd1e18 configure the outbound
	// rate limiter.
	EpochLengthSec             uint64
	MaxOutboundPerEpochUsd1e18 *uint256.Int

	// Default fee schedule for newly created vaults.
	DefaultDepositFeeBps  uint16
	DefaultWithdrawFeeBps uint16
	AutoDeployBps         uint16

	// OracleMaxAgeSec: reads older than this are rejected as stale.
	OracleMaxAgeSec int64
}

func (c *VaultConfig) Key() string {
	return VAULT_CONFIG_KEY
}

func (c *VaultConfig) Load() error {
	c.DBPath = common.GetEnvOrDefault("VAULT_DB_PATH", "./data/vault-engine.db")
	c.ShareDecimals = uint8(common.GetEnvOrDefaultInt("VAULT_SHARE_DECIMALS", 8))

	minNotional, err := parseU256(common.GetEnvOrDefault("VAULT_MIN_NOTIONAL_USD_1E8", "1000000000")) // $10
	if err != nil {
		return fmt.Errorf("VAULT_MIN_NOTIONAL_USD_1E8: %w", err)
	}
	c.MinNotionalUsd1e8 = minNotional

	maxOutbound, err := parseU256(common.GetEnvOrDefault("VAULT_MAX_OUTBOUND_PER_EPOCH_USD_1E18", "100000000000000000000000")) // $100k
	if err != nil {
		return fmt.Errorf("VAULT_MAX_OUTBOUND_PER_EPOCH_USD_1E18: %w", err)
	}
	c.MaxOutboundPerEpochUsd1e18 = maxOutbound

	c.MaxOracleDeviationBps = uint16(common.GetEnvOrDefaultInt("VAULT_MAX_ORACLE_DEVIATION_BPS", 100))
	c.MaxSlippageBps = uint16(common.GetEnvOrDefaultInt("VAULT_MAX_SLIPPAGE_BPS", 50))
	c.DeadbandBps = uint16(common.GetEnvOrDefaultInt("VAULT_DEADBAND_BPS", 25))
	c.EpochLengthSec = uint64(common.GetEnvOrDefaultInt("VAULT_EPOCH_LENGTH_SEC", 3600))
	c.DefaultDepositFeeBps = uint16(common.GetEnvOrDefaultInt("VAULT_DEFAULT_DEPOSIT_FEE_BPS", 10))
	c.DefaultWithdrawFeeBps = uint16(common.GetEnvOrDefaultInt("VAULT_DEFAULT_WITHDRAW_FEE_BPS", 10))
	c.AutoDeployBps = uint16(common.GetEnvOrDefaultInt("VAULT_AUTO_DEPLOY_BPS", 0))
	c.OracleMaxAgeSec = int64(common.GetEnvOrDefaultInt("VAULT_ORACLE_MAX_AGE_SEC", 60))
	return c.Validate()
}

func (c *VaultConfig) Validate() error {
	if c.DBPath == "" {
		return errors.New("invalid vault config: empty db path")
	}
	for _, bps := range []uint16{c.MaxOracleDeviationBps, c.MaxSlippageBps, c.DeadbandBps,
		c.DefaultDepositFeeBps, c.DefaultWithdrawFeeBps, c.AutoDeployBps} {
		if bps > 10000 {
			return fmt.Errorf("invalid vault config: bps value %d out of range", bps)
		}
	}
	if c.EpochLengthSec == 0 {
		return errors.New("invalid vault config: zero epoch length")
	}
	return nil
}

func parseU256(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, err
	}
	return v, nil
}
