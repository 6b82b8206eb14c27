package http

import (
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/http/httputil"
	"github.com/hxuan190/vault-engine/internal/vault"
)

type AdminHandler struct {
	vaultSvc *vault.Service
}

func NewAdminHandler(vaultSvc *vault.Service) *AdminHandler {
	return &AdminHandler{vaultSvc: vaultSvc}
}

// Root is empty so admin routes land directly under the admin group.
func (h *AdminHandler) Root() string {
	return ""
}

func (h *AdminHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	admin.POST("/vaults", h.createVault)
	admin.POST("/vaults/:id/fees", h.setFees)
	admin.POST("/vaults/:id/targets", h.setTargets)
	admin.POST("/vaults/:id/pause", h.setPaused)
	admin.POST("/vaults/:id/rebalance", h.rebalance)
	admin.POST("/risk-params", h.setRiskParams)
	admin.POST("/tokens", h.setTokenInfo)
	admin.POST("/feed/price", h.pushPrice)
	admin.POST("/feed/bbo", h.pushBBO)
	admin.POST("/feed/balance", h.pushBalance)
	admin.POST("/feed/position", h.pushPosition)
}

type CreateVaultRequest struct {
	ID        string `json:"id" binding:"required" example:"hype-main"`
	BaseAsset string `json:"baseAsset" binding:"required" example:"HYPE"`
}

type feeTierBody struct {
	Threshold string `json:"threshold" binding:"required"`
	FeeBps    uint16 `json:"feeBps"`
}

type SetFeesRequest struct {
	DepositFeeBps  uint16        `json:"depositFeeBps"`
	WithdrawFeeBps uint16        `json:"withdrawFeeBps"`
	AutoDeployBps  uint16        `json:"autoDeployBps"`
	WithdrawTiers  []feeTierBody `json:"withdrawTiers"`
}

type SetTargetsRequest struct {
	// Basis points per asset, must sum to 10000.
	Targets map[string]uint16 `json:"targets" binding:"required"`
}

type SetPausedRequest struct {
	Paused bool `json:"paused"`
}

type SetRiskParamsRequest struct {
	MinNotionalUsd1e8     string `json:"minNotionalUsd1e8" binding:"required" example:"1000000000"`
	MaxOracleDeviationBps uint16 `json:"maxOracleDeviationBps"`
	MaxSlippageBps        uint16 `json:"maxSlippageBps"`
}

type TokenInfoRequest struct {
	Symbol      string `json:"symbol" binding:"required" example:"HYPE"`
	SzDecimals  uint8  `json:"szDecimals"`
	WeiDecimals uint8  `json:"weiDecimals"`
}

type PushPriceRequest struct {
	Asset     string `json:"asset" binding:"required"`
	Raw       uint64 `json:"raw" binding:"required"`
	Timestamp int64  `json:"timestamp"`
}

type PushBBORequest struct {
	Asset string `json:"asset" binding:"required"`
	Bid   uint64 `json:"bid" binding:"required"`
	Ask   uint64 `json:"ask" binding:"required"`
}

type PushBalanceRequest struct {
	Asset   string `json:"asset" binding:"required"`
	Balance string `json:"balance" binding:"required"`
}

type PushPositionRequest struct {
	Vault   string `json:"vault" binding:"required"`
	Asset   string `json:"asset" binding:"required"`
	Usd1e18 string `json:"usd1e18" binding:"required"`
}

// @Summary Create a vault
// @Tags admin
// @Accept json
// @Produce json
// @Param request body CreateVaultRequest true "Vault"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/admin/vaults [post]
func (h *AdminHandler) createVault(c *gin.Context) {
	var req CreateVaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.vaultSvc.CreateVault(c.Request.Context(), req.ID, req.BaseAsset); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"id": req.ID})
}

// @Summary Set a vault's fee schedule
// @Description Tiers must be sorted by ascending threshold. Fee bps apply to
// @Description the gross amount with floor rounding.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body SetFeesRequest true "Fee schedule"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/admin/vaults/{id}/fees [post]
func (h *AdminHandler) setFees(c *gin.Context) {
	var req SetFeesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	schedule := domain.FeeSchedule{
		DepositFeeBps:  req.DepositFeeBps,
		WithdrawFeeBps: req.WithdrawFeeBps,
		AutoDeployBps:  req.AutoDeployBps,
	}
	for _, t := range req.WithdrawTiers {
		threshold, err := uint256.FromDecimal(t.Threshold)
		if err != nil {
			httputil.BadRequest(c, "invalid tier threshold: "+err.Error())
			return
		}
		schedule.WithdrawTiers = append(schedule.WithdrawTiers, domain.FeeTier{
			Threshold: threshold,
			FeeBps:    t.FeeBps,
		})
	}
	if err := h.vaultSvc.SetFeeSchedule(c.Param("id"), schedule); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"updated": true})
}

// @Summary Set a vault's portfolio targets
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body SetTargetsRequest true "Targets"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/admin/vaults/{id}/targets [post]
func (h *AdminHandler) setTargets(c *gin.Context) {
	var req SetTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.vaultSvc.SetTargets(c.Param("id"), domain.PortfolioTarget(req.Targets)); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"updated": true})
}

// @Summary Pause or unpause a vault
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body SetPausedRequest true "Paused flag"
// @Success 200 {object} httputil.Response
// @Router /api/v1/admin/vaults/{id}/pause [post]
func (h *AdminHandler) setPaused(c *gin.Context) {
	var req SetPausedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if err := h.vaultSvc.SetPaused(c.Param("id"), req.Paused); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"paused": req.Paused})
}

// @Summary Trigger a rebalance cycle
// @Description Computes drift against targets, applies the deadband and the
// @Description per-epoch outbound cap, and submits the resulting orders.
// @Tags admin
// @Produce json
// @Param id path string true "Vault id"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/admin/vaults/{id}/rebalance [post]
func (h *AdminHandler) rebalance(c *gin.Context) {
	plan, err := h.vaultSvc.Rebalance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{
		"orders":     plan.Orders,
		"clamped":    plan.Clamped,
		"epochReset": plan.EpochReset,
	})
}

// @Summary Set engine-wide risk parameters
// @Description Replaces the minimum notional and deviation bounds at runtime.
// @Description Environment config remains the restart baseline.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body SetRiskParamsRequest true "Risk parameters"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/admin/risk-params [post]
func (h *AdminHandler) setRiskParams(c *gin.Context) {
	var req SetRiskParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	minNotional, err := uint256.FromDecimal(req.MinNotionalUsd1e8)
	if err != nil {
		httputil.BadRequest(c, "invalid minNotionalUsd1e8: "+err.Error())
		return
	}
	if err := h.vaultSvc.SetRiskParams(minNotional, req.MaxOracleDeviationBps, req.MaxSlippageBps); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"updated": true})
}

// @Summary Register or update token metadata
// @Tags admin
// @Accept json
// @Produce json
// @Param request body TokenInfoRequest true "Token info"
// @Success 200 {object} httputil.Response
// @Router /api/v1/admin/tokens [post]
func (h *AdminHandler) setTokenInfo(c *gin.Context) {
	var req TokenInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	info := domain.TokenInfo{
		Symbol:      req.Symbol,
		SzDecimals:  req.SzDecimals,
		WeiDecimals: req.WeiDecimals,
	}
	if err := h.vaultSvc.SetTokenInfo(info); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, info)
}

// @Summary Push a raw oracle price
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PushPriceRequest true "Price"
// @Success 200 {object} httputil.Response
// @Router /api/v1/admin/feed/price [post]
func (h *AdminHandler) pushPrice(c *gin.Context) {
	var req PushPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	h.vaultSvc.Venue().PushPrice(req.Asset, req.Raw, req.Timestamp)
	httputil.Success(c, gin.H{"asset": req.Asset})
}

// @Summary Push a best bid/offer pair
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PushBBORequest true "BBO"
// @Success 200 {object} httputil.Response
// @Router /api/v1/admin/feed/bbo [post]
func (h *AdminHandler) pushBBO(c *gin.Context) {
	var req PushBBORequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	h.vaultSvc.Venue().PushBBO(req.Asset, req.Bid, req.Ask)
	httputil.Success(c, gin.H{"asset": req.Asset})
}

// @Summary Push a local treasury balance
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PushBalanceRequest true "Balance"
// @Success 200 {object} httputil.Response
// @Router /api/v1/admin/feed/balance [post]
func (h *AdminHandler) pushBalance(c *gin.Context) {
	var req PushBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	balance, err := uint256.FromDecimal(req.Balance)
	if err != nil {
		httputil.BadRequest(c, "invalid balance: "+err.Error())
		return
	}
	h.vaultSvc.Venue().PushBalance(req.Asset, balance)
	httputil.Success(c, gin.H{"asset": req.Asset})
}

// @Summary Push an external position valuation
// @Tags admin
// @Accept json
// @Produce json
// @Param request body PushPositionRequest true "Position"
// @Success 200 {object} httputil.Response
// @Router /api/v1/admin/feed/position [post]
func (h *AdminHandler) pushPosition(c *gin.Context) {
	var req PushPositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	usd, err := uint256.FromDecimal(req.Usd1e18)
	if err != nil {
		httputil.BadRequest(c, "invalid usd1e18: "+err.Error())
		return
	}
	h.vaultSvc.Venue().PushPosition(req.Vault, req.Asset, usd)
	httputil.Success(c, gin.H{"vault": req.Vault, "asset": req.Asset})
}
