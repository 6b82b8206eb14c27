package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	boltdb "github.com/andrew-solarstorm/bolt-db"
	"github.com/bytedance/sonic"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/vault-engine/internal/domain"
)

const (
	VaultsBucket = "vaults"
	TokensBucket = "tokens"
	EpochsBucket = "epochs"

	DefaultDBPath = "./data/vault-engine.db"
)

// StoredVault is the durable configuration of one vault. Ledger balances are
// not stored here: the host chain is authoritative for those and the engine
// re-mirrors them on demand.
type StoredVault struct {
	ID             string            `json:"id"`
	BaseAsset      string            `json:"baseAsset"`
	ShareDecimals  uint8             `json:"shareDecimals"`
	DepositFeeBps  uint16            `json:"depositFeeBps"`
	WithdrawFeeBps uint16            `json:"withdrawFeeBps"`
	AutoDeployBps  uint16            `json:"autoDeployBps"`
	WithdrawTiers  []StoredFeeTier   `json:"withdrawTiers,omitempty"`
	Targets        map[string]uint16 `json:"targets,omitempty"`
	Paused         bool              `json:"paused"`
}

type StoredFeeTier struct {
	Threshold string `json:"threshold"` // uint256 as decimal string
	FeeBps    uint16 `json:"feeBps"`
}

type StoredEpochState struct {
	EpochLengthSec      uint64 `json:"epochLengthSec"`
	LastEpochStart      uint64 `json:"lastEpochStart"`
	SentThisEpoch       string `json:"sentThisEpoch"`       // uint256 as decimal string
	MaxOutboundPerEpoch string `json:"maxOutboundPerEpoch"` // uint256 as decimal string
}

type Storage struct {
	db     *boltdb.BoltDatabase
	dbPath string
}

func NewStorage(dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = DefaultDBPath
	}
	os.MkdirAll(filepath.Dir(dbPath), 0755)

	db := boltdb.NewBoltDatabase(dbPath)
	if db == nil {
		return nil, fmt.Errorf("failed to open database at %s", dbPath)
	}

	log.Info().Str("path", dbPath).Msg("[vaultStorage] opened database")

	return &Storage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) SaveVault(v *StoredVault) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal vault: %w", err)
	}
	return s.db.Set(VaultsBucket, []byte(v.ID), data)
}

func (s *Storage) LoadAllVaults() ([]*StoredVault, error) {
	data, err := s.db.List(VaultsBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list vaults: %w", err)
	}

	vaults := make([]*StoredVault, 0, len(data))
	for id, value := range data {
		var stored StoredVault
		if err := sonic.Unmarshal(value, &stored); err != nil {
			log.Warn().Str("vault", id).Err(err).Msg("[vaultStorage] failed to unmarshal vault, skipping")
			continue
		}
		vaults = append(vaults, &stored)
	}

	log.Info().Int("loaded", len(vaults)).Msg("[vaultStorage] vault loading completed")
	return vaults, nil
}

func (s *Storage) SaveTokenInfo(info domain.TokenInfo) error {
	data, err := sonic.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal token info: %w", err)
	}
	return s.db.Set(TokensBucket, []byte(info.Symbol), data)
}

func (s *Storage) LoadAllTokenInfos() (domain.TokenRegistry, error) {
	data, err := s.db.List(TokensBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to list token infos: %w", err)
	}

	registry := make(domain.TokenRegistry, len(data))
	for symbol, value := range data {
		var info domain.TokenInfo
		if err := sonic.Unmarshal(value, &info); err != nil {
			log.Warn().Str("token", symbol).Err(err).Msg("[vaultStorage] failed to unmarshal token info, skipping")
			continue
		}
		registry[info.Symbol] = info
	}
	return registry, nil
}

func (s *Storage) SaveEpochState(vaultID string, state domain.EpochState) error {
	stored := StoredEpochState{
		EpochLengthSec:      state.EpochLengthSec,
		LastEpochStart:      state.LastEpochStart,
		SentThisEpoch:       state.SentThisEpoch.Dec(),
		MaxOutboundPerEpoch: state.MaxOutboundPerEpoch.Dec(),
	}
	data, err := sonic.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to marshal epoch state: %w", err)
	}
	return s.db.Set(EpochsBucket, []byte(vaultID), data)
}

func (s *Storage) LoadEpochState(vaultID string) (domain.EpochState, bool, error) {
	data, err := s.db.List(EpochsBucket)
	if err != nil {
		return domain.EpochState{}, false, fmt.Errorf("failed to list epoch states: %w", err)
	}
	value, ok := data[vaultID]
	if !ok {
		return domain.EpochState{}, false, nil
	}

	var stored StoredEpochState
	if err := sonic.Unmarshal(value, &stored); err != nil {
		return domain.EpochState{}, false, fmt.Errorf("failed to unmarshal epoch state: %w", err)
	}
	sent, err := uint256.FromDecimal(stored.SentThisEpoch)
	if err != nil {
		return domain.EpochState{}, false, fmt.Errorf("corrupt sentThisEpoch %q: %w", stored.SentThisEpoch, err)
	}
	max, err := uint256.FromDecimal(stored.MaxOutboundPerEpoch)
	if err != nil {
		return domain.EpochState{}, false, fmt.Errorf("corrupt maxOutboundPerEpoch %q: %w", stored.MaxOutboundPerEpoch, err)
	}
	return domain.EpochState{
		EpochLengthSec:      stored.EpochLengthSec,
		LastEpochStart:      stored.LastEpochStart,
		SentThisEpoch:       sent,
		MaxOutboundPerEpoch: max,
	}, true, nil
}

// VaultToStored converts in-memory vault config to its stored form.
func VaultToStored(id, baseAsset string, shareDecimals uint8, fees domain.FeeSchedule, targets domain.PortfolioTarget, paused bool) *StoredVault {
	tiers := make([]StoredFeeTier, 0, len(fees.WithdrawTiers))
	for _, t := range fees.WithdrawTiers {
		tiers = append(tiers, StoredFeeTier{Threshold: t.Threshold.Dec(), FeeBps: t.FeeBps})
	}
	return &StoredVault{
		ID:             id,
		BaseAsset:      baseAsset,
		ShareDecimals:  shareDecimals,
		DepositFeeBps:  fees.DepositFeeBps,
		WithdrawFeeBps: fees.WithdrawFeeBps,
		AutoDeployBps:  fees.AutoDeployBps,
		WithdrawTiers:  tiers,
		Targets:        targets,
		Paused:         paused,
	}
}

// StoredToFees rebuilds the fee schedule from a stored vault record.
func StoredToFees(v *StoredVault) (domain.FeeSchedule, error) {
	tiers := make([]domain.FeeTier, 0, len(v.WithdrawTiers))
	for _, t := range v.WithdrawTiers {
		threshold, err := uint256.FromDecimal(t.Threshold)
		if err != nil {
			return domain.FeeSchedule{}, fmt.Errorf("corrupt tier threshold %q: %w", t.Threshold, err)
		}
		tiers = append(tiers, domain.FeeTier{Threshold: threshold, FeeBps: t.FeeBps})
	}
	return domain.FeeSchedule{
		DepositFeeBps:  v.DepositFeeBps,
		WithdrawFeeBps: v.WithdrawFeeBps,
		AutoDeployBps:  v.AutoDeployBps,
		WithdrawTiers:  tiers,
	}, nil
}
