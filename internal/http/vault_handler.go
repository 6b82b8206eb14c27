package http

import (
	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/http/httputil"
	"github.com/hxuan190/vault-engine/internal/vault"
)

type VaultHandler struct {
	vaultSvc *vault.Service
}

func NewVaultHandler(vaultSvc *vault.Service) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc}
}

func (h *VaultHandler) Root() string {
	return "/vaults"
}

func (h *VaultHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.listVaults)
	pub.GET("/:id", h.getVault)
	pub.GET("/:id/pps", h.pricePerShare)
	pub.GET("/:id/nav", h.nav)
	pub.GET("/:id/balance/:owner", h.balanceOf)

	private.POST("/:id/deposit", h.deposit)
	private.POST("/:id/withdraw", h.withdraw)
	private.POST("/:id/transfer", h.transfer)
	private.POST("/:id/approve", h.approve)
	private.POST("/:id/transfer-from", h.transferFrom)
}

type DepositRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Amount string `json:"amount" binding:"required" example:"500000000000000000"`
}

type WithdrawRequest struct {
	Owner  string `json:"owner" binding:"required"`
	Shares string `json:"shares" binding:"required"`
}

type TransferRequest struct {
	From   string `json:"from" binding:"required"`
	To     string `json:"to" binding:"required"`
	Amount string `json:"amount" binding:"required"`
}

type ApproveRequest struct {
	Owner   string `json:"owner" binding:"required"`
	Spender string `json:"spender" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

type TransferFromRequest struct {
	Spender string `json:"spender" binding:"required"`
	From    string `json:"from" binding:"required"`
	To      string `json:"to" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// @Summary List vaults
// @Tags vaults
// @Produce json
// @Success 200 {object} httputil.Response{data=[]vault.VaultInfo}
// @Router /api/v1/vaults [get]
func (h *VaultHandler) listVaults(c *gin.Context) {
	httputil.Success(c, h.vaultSvc.ListVaults())
}

// @Summary Get a vault
// @Tags vaults
// @Produce json
// @Param id path string true "Vault id"
// @Success 200 {object} httputil.Response{data=vault.VaultInfo}
// @Failure 404 {object} httputil.Response
// @Router /api/v1/vaults/{id} [get]
func (h *VaultHandler) getVault(c *gin.Context) {
	info, err := h.vaultSvc.GetVault(c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, info)
}

// @Summary Current price per share
// @Description Returns the 1e18-scaled price per share from a fresh snapshot.
// @Tags vaults
// @Produce json
// @Param id path string true "Vault id"
// @Success 200 {object} httputil.Response
// @Router /api/v1/vaults/{id}/pps [get]
func (h *VaultHandler) pricePerShare(c *gin.Context) {
	pps, err := h.vaultSvc.PricePerShare(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"pps_1e18": pps.Dec()})
}

// @Summary Current net asset value
// @Tags vaults
// @Produce json
// @Param id path string true "Vault id"
// @Success 200 {object} httputil.Response
// @Router /api/v1/vaults/{id}/nav [get]
func (h *VaultHandler) nav(c *gin.Context) {
	nav, err := h.vaultSvc.Nav(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{
		"external_equity_usd_1e18": nav.ExternalEquityUsd1e18.Dec(),
		"local_cash_usd_1e18":      nav.LocalCashUsd1e18.Dec(),
		"total_usd_1e18":           nav.TotalUsd1e18().Dec(),
	})
}

// @Summary Share balance of an owner
// @Tags vaults
// @Produce json
// @Param id path string true "Vault id"
// @Param owner path string true "Owner address"
// @Success 200 {object} httputil.Response
// @Router /api/v1/vaults/{id}/balance/{owner} [get]
func (h *VaultHandler) balanceOf(c *gin.Context) {
	bal, err := h.vaultSvc.BalanceOf(c.Param("id"), c.Param("owner"))
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"balance": bal.Dec()})
}

// @Summary Deposit into a vault
// @Description Settles a deposit atomically. The response carries the exact
// @Description amounts minted, matching what the estimate endpoint quoted for
// @Description the same snapshot.
// @Tags vaults
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body DepositRequest true "Deposit"
// @Success 200 {object} httputil.Response{data=domain.DepositEstimate}
// @Failure 422 {object} httputil.Response
// @Router /api/v1/vaults/{id}/deposit [post]
func (h *VaultHandler) deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		httputil.BadRequest(c, "invalid amount: "+err.Error())
		return
	}
	est, err := h.vaultSvc.Deposit(c.Request.Context(), c.Param("id"), req.Owner, amount)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, est)
}

// @Summary Withdraw from a vault
// @Tags vaults
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body WithdrawRequest true "Withdraw"
// @Success 200 {object} httputil.Response{data=domain.WithdrawEstimate}
// @Failure 422 {object} httputil.Response
// @Router /api/v1/vaults/{id}/withdraw [post]
func (h *VaultHandler) withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	shares, err := uint256.FromDecimal(req.Shares)
	if err != nil {
		httputil.BadRequest(c, "invalid shares: "+err.Error())
		return
	}
	est, err := h.vaultSvc.Withdraw(c.Request.Context(), c.Param("id"), req.Owner, shares)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, est)
}

// @Summary Transfer shares
// @Tags vaults
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body TransferRequest true "Transfer"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/vaults/{id}/transfer [post]
func (h *VaultHandler) transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		httputil.BadRequest(c, "invalid amount: "+err.Error())
		return
	}
	if err := h.vaultSvc.Transfer(c.Param("id"), req.From, req.To, amount); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"transferred": amount.Dec()})
}

// @Summary Approve a spender
// @Description Rejects non-zero to non-zero allowance changes. Reset to zero
// @Description first, then set the new allowance.
// @Tags vaults
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body ApproveRequest true "Approve"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/vaults/{id}/approve [post]
func (h *VaultHandler) approve(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		httputil.BadRequest(c, "invalid amount: "+err.Error())
		return
	}
	if err := h.vaultSvc.Approve(c.Param("id"), req.Owner, req.Spender, amount); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"approved": amount.Dec()})
}

// @Summary Transfer shares on behalf of an owner
// @Tags vaults
// @Accept json
// @Produce json
// @Param id path string true "Vault id"
// @Param request body TransferFromRequest true "TransferFrom"
// @Success 200 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/vaults/{id}/transfer-from [post]
func (h *VaultHandler) transferFrom(c *gin.Context) {
	var req TransferFromRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		httputil.BadRequest(c, "invalid amount: "+err.Error())
		return
	}
	if err := h.vaultSvc.TransferFrom(c.Param("id"), req.Spender, req.From, req.To, amount); err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, gin.H{"transferred": amount.Dec()})
}
