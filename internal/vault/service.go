package vault

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/holiman/uint256"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/vault-engine/internal/adapters/persistence"
	"github.com/hxuan190/vault-engine/internal/adapters/venue"
	"github.com/hxuan190/vault-engine/internal/config"
	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/metrics"
	"github.com/hxuan190/vault-engine/internal/services"
	"github.com/hxuan190/vault-engine/internal/services/fees"
	"github.com/hxuan190/vault-engine/internal/services/ledger"
	"github.com/hxuan190/vault-engine/internal/services/notional"
	"github.com/hxuan190/vault-engine/internal/services/oracle"
	"github.com/hxuan190/vault-engine/internal/services/rebalance"
)

const VAULT_SERVICE = "vault-service"

var (
	ErrVaultNotFound = errors.New("vault not found")
	ErrVaultExists   = errors.New("vault already exists")
)

// Vault bundles the per-vault state the engine accounts over.
type Vault struct {
	ID        string
	BaseAsset string
	Fees      domain.FeeSchedule
	Targets   domain.PortfolioTarget
	Ledger    *ledger.Ledger
	Epoch     domain.EpochState
}

// Service is the accounting engine. Every settlement operation is
// all-or-nothing: any failed predicate rejects the whole operation before the
// single ledger mutation happens. Estimate operations run the exact same
// arithmetic with no mutation, so for an identical snapshot an estimate and
// its settlement agree bit-for-bit.
type Service struct {
	container.BaseDIInstance
	logger *services.ServiceLogger

	mu     sync.RWMutex
	vaults map[string]*Vault

	conf       *config.VaultConfig
	normalizer *oracle.Normalizer
	accountant *notional.Accountant
	planner    *rebalance.Planner
	storage    *persistence.Storage

	memVenue  *venue.MemoryVenue
	oracle    venue.OracleReader
	treasury  venue.Treasury
	positions venue.PositionReader
	sink      venue.OrderSink
}

func (s *Service) ID() string {
	return VAULT_SERVICE
}

func (s *Service) Configure(c container.IContainer) error {
	s.logger = services.NewServiceLogger(s)
	s.conf = c.GetConfig(config.VAULT_CONFIG_KEY).(*config.VaultConfig)
	if s.conf == nil {
		return errors.New("invalid vault config")
	}

	s.vaults = make(map[string]*Vault)
	s.normalizer = oracle.NewNormalizer(make(domain.TokenRegistry), s.conf.OracleMaxAgeSec)
	s.accountant = notional.NewAccountant(s.conf.MinNotionalUsd1e8, s.conf.MaxOracleDeviationBps, s.conf.MaxSlippageBps)
	s.planner = rebalance.NewPlanner(s.conf.DeadbandBps)

	// Push-fed in-process venue; production adapters replace this behind the
	// same interfaces.
	s.memVenue = venue.NewMemoryVenue()
	s.oracle = s.memVenue
	s.treasury = s.memVenue
	s.positions = s.memVenue
	s.sink = s.memVenue

	storage, err := persistence.NewStorage(s.conf.DBPath)
	if err != nil {
		return err
	}
	s.storage = storage
	return nil
}

func (s *Service) Start() error {
	tokens, err := s.storage.LoadAllTokenInfos()
	if err != nil {
		return err
	}
	for _, info := range tokens {
		s.normalizer.SetToken(info)
	}

	stored, err := s.storage.LoadAllVaults()
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sv := range stored {
		schedule, err := persistence.StoredToFees(sv)
		if err != nil {
			return fmt.Errorf("vault %s: %w", sv.ID, err)
		}
		v := &Vault{
			ID:        sv.ID,
			BaseAsset: sv.BaseAsset,
			Fees:      schedule,
			Targets:   sv.Targets,
			Ledger:    ledger.New(sv.ShareDecimals),
			Epoch:     s.freshEpoch(),
		}
		if sv.Paused {
			v.Ledger.Pause()
		}
		if epoch, ok, err := s.storage.LoadEpochState(sv.ID); err != nil {
			return fmt.Errorf("vault %s: %w", sv.ID, err)
		} else if ok {
			v.Epoch = epoch
		}
		s.vaults[sv.ID] = v
	}
	metrics.VaultCount.Set(float64(len(s.vaults)))
	s.logger.Info().Int("vaults", len(s.vaults)).Int("tokens", len(tokens)).Msg("state restored")
	return nil
}

func (s *Service) Stop() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

// Venue exposes the push-fed collaborator for the admin feed surface.
func (s *Service) Venue() *venue.MemoryVenue {
	return s.memVenue
}

func (s *Service) freshEpoch() domain.EpochState {
	return domain.EpochState{
		EpochLengthSec:      s.conf.EpochLengthSec,
		LastEpochStart:      uint64(time.Now().Unix()),
		SentThisEpoch:       new(uint256.Int),
		MaxOutboundPerEpoch: new(uint256.Int).Set(s.conf.MaxOutboundPerEpochUsd1e18),
	}
}

func (s *Service) get(vaultID string) (*Vault, error) {
	v, ok := s.vaults[vaultID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrVaultNotFound, vaultID)
	}
	return v, nil
}

func track(op string) func(err error) {
	start := time.Now()
	return func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.Operations.WithLabelValues(op, status).Inc()
		metrics.OperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}

// CreateVault registers a new vault with the default fee schedule. The
// configuration surface is capability-gated at the HTTP layer; the core only
// receives pre-validated input.
func (s *Service) CreateVault(ctx context.Context, id, baseAsset string) (err error) {
	done := track("create_vault")
	defer func() { done(err) }()
	if id == "" || baseAsset == "" {
		err = errors.New("empty vault id or base asset")
		return err
	}
	if _, tokenErr := s.normalizer.Token(baseAsset); tokenErr != nil {
		// Metadata may live venue-side before an operator registers it here.
		info, venueErr := s.oracle.GetTokenInfo(ctx, baseAsset)
		if venueErr != nil {
			err = tokenErr
			return err
		}
		if err = s.SetTokenInfo(info); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.vaults[id]; ok {
		err = fmt.Errorf("%w: %s", ErrVaultExists, id)
		return err
	}
	v := &Vault{
		ID:        id,
		BaseAsset: baseAsset,
		Fees: domain.FeeSchedule{
			DepositFeeBps:  s.conf.DefaultDepositFeeBps,
			WithdrawFeeBps: s.conf.DefaultWithdrawFeeBps,
			AutoDeployBps:  s.conf.AutoDeployBps,
		},
		Targets: domain.PortfolioTarget{baseAsset: 10000},
		Ledger:  ledger.New(s.conf.ShareDecimals),
		Epoch:   s.freshEpoch(),
	}
	if err = s.persistVault(v); err != nil {
		return err
	}
	s.vaults[id] = v
	metrics.VaultCount.Set(float64(len(s.vaults)))
	s.logger.Info().Str("vault", id).Str("baseAsset", baseAsset).Msg("vault created")
	return nil
}

func (s *Service) persistVault(v *Vault) error {
	return s.storage.SaveVault(persistence.VaultToStored(
		v.ID, v.BaseAsset, v.Ledger.ShareDecimals(), v.Fees, v.Targets, v.Ledger.Paused()))
}

// EstimateDeposit prices a deposit without mutating anything. The returned
// estimate carries every intermediate so callers can display the breakdown.
func (s *Service) EstimateDeposit(ctx context.Context, vaultID string, amountWei *uint256.Int) (est *domain.DepositEstimate, err error) {
	done := track("estimate_deposit")
	defer func() { done(err) }()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	est, err = s.depositEstimate(ctx, v)
	if err != nil {
		return nil, err
	}
	return s.fillDepositAmounts(est, v, amountWei)
}

func (s *Service) depositEstimate(ctx context.Context, v *Vault) (*domain.DepositEstimate, error) {
	snap, err := s.takeSnapshot(ctx, v)
	if err != nil {
		return nil, err
	}
	return &domain.DepositEstimate{
		VaultID:  v.ID,
		Asset:    v.BaseAsset,
		Price1e8: snap.price.Normalized1e8,
		Pps1e18:  snap.pps1e18,
	}, nil
}

func (s *Service) fillDepositAmounts(est *domain.DepositEstimate, v *Vault, amountWei *uint256.Int) (*domain.DepositEstimate, error) {
	if amountWei == nil || amountWei.IsZero() {
		return nil, ledger.ErrZeroAmount
	}
	info, err := s.normalizer.Token(v.BaseAsset)
	if err != nil {
		return nil, err
	}
	usd, err := notional.ToUsdNotional(amountWei, est.Price1e8, info.WeiDecimals)
	if err != nil {
		return nil, err
	}
	if err := s.accountant.CheckMinNotional(usd); err != nil {
		return nil, err
	}
	gross, err := ledger.SharesForDeposit(usd, est.Pps1e18, v.Ledger.TotalSupply(), v.Ledger.ShareDecimals())
	if err != nil {
		return nil, err
	}
	// Fee comes out of the computed shares, not the principal: the full
	// principal enters the vault, the depositor just receives net shares.
	net, fee, err := fees.ApplyFee(gross, v.Fees.DepositFeeBps)
	if err != nil {
		return nil, err
	}
	est.AmountWei = new(uint256.Int).Set(amountWei)
	est.UsdNotional1e18 = usd
	est.GrossShares = gross
	est.FeeShares = fee
	est.NetShares = net
	est.FeeBps = v.Fees.DepositFeeBps
	return est, nil
}

// Deposit settles a deposit: same arithmetic as EstimateDeposit, then a
// single mint of the net shares.
func (s *Service) Deposit(ctx context.Context, vaultID, owner string, amountWei *uint256.Int) (est *domain.DepositEstimate, err error) {
	done := track("deposit")
	defer func() { done(err) }()
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	if v.Ledger.Paused() {
		err = ledger.ErrPaused
		return nil, err
	}
	inner, err := s.depositEstimate(ctx, v)
	if err != nil {
		return nil, err
	}
	est, err = s.fillDepositAmounts(inner, v, amountWei)
	if err != nil {
		return nil, err
	}
	if err = v.Ledger.Mint(owner, est.NetShares); err != nil {
		return nil, err
	}
	s.autoDeploy(ctx, v, est)
	s.publishSupply(v)
	s.logger.Info().
		Str("vault", v.ID).
		Str("owner", owner).
		Str("usd1e18", est.UsdNotional1e18.Dec()).
		Str("netShares", est.NetShares.Dec()).
		Msg("deposit settled")
	return est, nil
}

// autoDeploy forwards the configured slice of a deposit to the venue as a
// buy order. Emission is fire-and-forget; a submit error is logged, never
// unwound, because the deposit itself has already settled.
func (s *Service) autoDeploy(ctx context.Context, v *Vault, est *domain.DepositEstimate) {
	if v.Fees.AutoDeployBps == 0 {
		return
	}
	_, deployUsd, err := fees.ApplyFee(est.UsdNotional1e18, v.Fees.AutoDeployBps)
	if err != nil {
		s.logger.Error().Err(err).Str("vault", v.ID).Msg("auto-deploy sizing failed")
		return
	}
	if deployUsd.IsZero() {
		return
	}
	info, err := s.normalizer.Token(v.BaseAsset)
	if err != nil {
		return
	}
	size, err := notional.ToOrderSize(deployUsd, est.Price1e8, info.SzDecimals)
	if err != nil || size.IsZero() {
		return
	}
	order := domain.RebalanceOrder{
		Asset:           v.BaseAsset,
		Side:            domain.SideBuy,
		UsdNotional1e18: deployUsd,
		SizeSz:          size,
	}
	if err := s.sink.Submit(ctx, v.ID, []domain.RebalanceOrder{order}); err != nil {
		s.logger.Error().Err(err).Str("vault", v.ID).Msg("auto-deploy submit failed")
	}
}

// EstimateWithdraw prices a share redemption without mutating anything.
func (s *Service) EstimateWithdraw(ctx context.Context, vaultID, owner string, shares *uint256.Int) (est *domain.WithdrawEstimate, err error) {
	done := track("estimate_withdraw")
	defer func() { done(err) }()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	est, err = s.withdrawEstimate(ctx, v, owner, shares)
	return est, err
}

func (s *Service) withdrawEstimate(ctx context.Context, v *Vault, owner string, shares *uint256.Int) (*domain.WithdrawEstimate, error) {
	if shares == nil || shares.IsZero() {
		return nil, ledger.ErrZeroAmount
	}
	if owner == "" {
		return nil, ledger.ErrZeroAddress
	}
	if v.Ledger.BalanceOf(owner).Lt(shares) {
		return nil, fmt.Errorf("%w: %s", ledger.ErrInsufficientBalance, owner)
	}
	snap, err := s.takeSnapshot(ctx, v)
	if err != nil {
		return nil, err
	}
	grossUsd, err := ledger.UsdForShares(shares, snap.pps1e18, v.Ledger.ShareDecimals())
	if err != nil {
		return nil, err
	}
	grossNative, err := notional.FromUsdNotional(grossUsd, snap.price.Normalized1e8, snap.token.WeiDecimals)
	if err != nil {
		return nil, err
	}
	bps := fees.WithdrawFeeBpsForAmount(v.Fees, grossNative)
	netNative, feeNative, err := fees.ApplyFee(grossNative, bps)
	if err != nil {
		return nil, err
	}
	return &domain.WithdrawEstimate{
		VaultID:      v.ID,
		Asset:        v.BaseAsset,
		Shares:       new(uint256.Int).Set(shares),
		Price1e8:     snap.price.Normalized1e8,
		Pps1e18:      snap.pps1e18,
		GrossUsd1e18: grossUsd,
		GrossNative:  grossNative,
		FeeNative:    feeNative,
		NetNative:    netNative,
		FeeBps:       bps,
		PayableNow:   !snap.localNative.Lt(netNative),
	}, nil
}

// Withdraw settles a redemption: shares burn atomically with the proceeds
// calculation (both under the settlement lock), so a re-entrant caller can
// never redeem the same shares twice.
func (s *Service) Withdraw(ctx context.Context, vaultID, owner string, shares *uint256.Int) (est *domain.WithdrawEstimate, err error) {
	done := track("withdraw")
	defer func() { done(err) }()
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	if v.Ledger.Paused() {
		err = ledger.ErrPaused
		return nil, err
	}
	est, err = s.withdrawEstimate(ctx, v, owner, shares)
	if err != nil {
		return nil, err
	}
	if err = v.Ledger.Burn(owner, shares); err != nil {
		return nil, err
	}
	s.publishSupply(v)
	s.logger.Info().
		Str("vault", v.ID).
		Str("owner", owner).
		Str("shares", shares.Dec()).
		Str("netNative", est.NetNative.Dec()).
		Bool("payableNow", est.PayableNow).
		Msg("withdraw settled")
	return est, nil
}

// PricePerShare recomputes PPS from a fresh snapshot; it is never cached.
func (s *Service) PricePerShare(ctx context.Context, vaultID string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	snap, err := s.takeSnapshot(ctx, v)
	if err != nil {
		return nil, err
	}
	return snap.pps1e18, nil
}

// Nav recomputes the NAV snapshot on demand.
func (s *Service) Nav(ctx context.Context, vaultID string) (domain.NavSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return domain.NavSnapshot{}, err
	}
	snap, err := s.takeSnapshot(ctx, v)
	if err != nil {
		return domain.NavSnapshot{}, err
	}
	return snap.nav, nil
}

// Rebalance runs one externally triggered cycle against the vault's targets.
// The epoch state is only advanced and persisted after the venue accepted the
// order batch.
func (s *Service) Rebalance(ctx context.Context, vaultID string) (plan *rebalance.Plan, err error) {
	done := track("rebalance")
	defer func() { done(err) }()
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	if v.Ledger.Paused() {
		err = ledger.ErrPaused
		return nil, err
	}

	current, err := s.positions.Positions(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	now := uint64(time.Now().Unix())
	plan, err = s.planner.Compute(current, v.Targets, v.Epoch, now)
	if err != nil {
		return nil, err
	}

	// Size each order in venue units from the same read batch that priced
	// the deltas.
	for i := range plan.Orders {
		o := &plan.Orders[i]
		info, err := s.normalizer.Token(o.Asset)
		if err != nil {
			return nil, err
		}
		read, err := s.oracle.GetRawPrice(ctx, o.Asset)
		if err != nil {
			return nil, err
		}
		price, err := s.normalizer.Normalize(read, int64(now))
		if err != nil {
			return nil, err
		}
		size, err := notional.ToOrderSize(o.UsdNotional1e18, price.Normalized1e8, info.SzDecimals)
		if err != nil {
			return nil, err
		}
		o.SizeSz = size
	}

	if len(plan.Orders) > 0 {
		if err = s.sink.Submit(ctx, v.ID, plan.Orders); err != nil {
			return nil, err
		}
	}

	v.Epoch = plan.State
	if err = s.storage.SaveEpochState(v.ID, v.Epoch); err != nil {
		return nil, err
	}

	metrics.RebalanceOrders.Add(float64(len(plan.Orders)))
	if plan.Clamped {
		metrics.RebalanceClamped.Inc()
	}
	if plan.EpochReset {
		metrics.EpochResets.Inc()
	}
	s.logger.Info().
		Str("vault", v.ID).
		Int("orders", len(plan.Orders)).
		Bool("clamped", plan.Clamped).
		Bool("epochReset", plan.EpochReset).
		Msg("rebalance cycle complete")
	return plan, nil
}

// Transfer, Approve and TransferFrom expose the fungible share ledger.

func (s *Service) Transfer(vaultID, from, to string, amount *uint256.Int) (err error) {
	done := track("transfer")
	defer func() { done(err) }()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return err
	}
	err = v.Ledger.Transfer(from, to, amount)
	return err
}

func (s *Service) Approve(vaultID, owner, spender string, amount *uint256.Int) (err error) {
	done := track("approve")
	defer func() { done(err) }()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return err
	}
	err = v.Ledger.Approve(owner, spender, amount)
	return err
}

func (s *Service) TransferFrom(vaultID, spender, from, to string, amount *uint256.Int) (err error) {
	done := track("transfer_from")
	defer func() { done(err) }()
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return err
	}
	err = v.Ledger.TransferFrom(spender, from, to, amount)
	return err
}

func (s *Service) BalanceOf(vaultID, owner string) (*uint256.Int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	return v.Ledger.BalanceOf(owner), nil
}

// Administrative setters. Authorization lives at the HTTP admin surface; the
// core only validates shape.

func (s *Service) SetFeeSchedule(vaultID string, schedule domain.FeeSchedule) error {
	if err := fees.ValidateSchedule(schedule); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(vaultID)
	if err != nil {
		return err
	}
	old := v.Fees
	v.Fees = schedule
	if err := s.persistVault(v); err != nil {
		v.Fees = old
		return err
	}
	s.logger.Info().Str("vault", vaultID).Msg("fee schedule updated")
	return nil
}

func (s *Service) SetTargets(vaultID string, targets domain.PortfolioTarget) error {
	if !targets.Validate() {
		return rebalance.ErrInvalidTargets
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(vaultID)
	if err != nil {
		return err
	}
	old := v.Targets
	v.Targets = targets
	if err := s.persistVault(v); err != nil {
		v.Targets = old
		return err
	}
	s.logger.Info().Str("vault", vaultID).Msg("portfolio targets updated")
	return nil
}

func (s *Service) SetTokenInfo(info domain.TokenInfo) error {
	if info.Symbol == "" {
		return errors.New("empty token symbol")
	}
	if err := s.storage.SaveTokenInfo(info); err != nil {
		return err
	}
	s.normalizer.SetToken(info)
	s.memVenue.PushTokenInfo(info)
	s.logger.Info().
		Str("token", info.Symbol).
		Uint8("szDecimals", info.SzDecimals).
		Uint8("weiDecimals", info.WeiDecimals).
		Msg("token info set")
	return nil
}

// SetRiskParams replaces the engine-wide notional and deviation bounds at
// runtime. Env config remains the restart baseline.
func (s *Service) SetRiskParams(minNotionalUsd1e8 *uint256.Int, maxOracleDeviationBps, maxSlippageBps uint16) error {
	if maxOracleDeviationBps > 10000 || maxSlippageBps > 10000 {
		return fees.ErrInvalidFeeBps
	}
	if minNotionalUsd1e8 == nil {
		return errors.New("nil min notional")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountant.SetLimits(minNotionalUsd1e8, maxOracleDeviationBps, maxSlippageBps)
	s.logger.Info().
		Str("minNotionalUsd1e8", minNotionalUsd1e8.Dec()).
		Uint16("maxOracleDeviationBps", maxOracleDeviationBps).
		Uint16("maxSlippageBps", maxSlippageBps).
		Msg("risk parameters updated")
	return nil
}

func (s *Service) SetPaused(vaultID string, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, err := s.get(vaultID)
	if err != nil {
		return err
	}
	if paused {
		v.Ledger.Pause()
	} else {
		v.Ledger.Unpause()
	}
	if err := s.persistVault(v); err != nil {
		return err
	}
	s.logger.Info().Str("vault", vaultID).Bool("paused", paused).Msg("pause flag updated")
	return nil
}

// VaultInfo is the read model for the HTTP surface.
type VaultInfo struct {
	ID             string `json:"id"`
	BaseAsset      string `json:"baseAsset"`
	ShareDecimals  uint8  `json:"shareDecimals"`
	Paused         bool   `json:"paused"`
	DepositFeeBps  uint16 `json:"depositFeeBps"`
	WithdrawFeeBps uint16 `json:"withdrawFeeBps"`
	TotalSupply    string `json:"totalSupply"`
}

func (s *Service) GetVault(vaultID string) (*VaultInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, err := s.get(vaultID)
	if err != nil {
		return nil, err
	}
	return vaultInfo(v), nil
}

func (s *Service) ListVaults() []*VaultInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*VaultInfo, 0, len(s.vaults))
	for _, v := range s.vaults {
		out = append(out, vaultInfo(v))
	}
	return out
}

func vaultInfo(v *Vault) *VaultInfo {
	return &VaultInfo{
		ID:             v.ID,
		BaseAsset:      v.BaseAsset,
		ShareDecimals:  v.Ledger.ShareDecimals(),
		Paused:         v.Ledger.Paused(),
		DepositFeeBps:  v.Fees.DepositFeeBps,
		WithdrawFeeBps: v.Fees.WithdrawFeeBps,
		TotalSupply:    v.Ledger.TotalSupply().Dec(),
	}
}

func (s *Service) publishSupply(v *Vault) {
	supply := v.Ledger.TotalSupply()
	f, _ := new(big.Float).SetInt(supply.ToBig()).Float64()
	metrics.ShareSupply.WithLabelValues(v.ID).Set(f)
}
