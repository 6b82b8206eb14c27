package http

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/common"
	"github.com/hxuan190/vault-engine/internal/http/httputil"
	"github.com/hxuan190/vault-engine/internal/vault"
)

type EstimateHandler struct {
	vaultSvc *vault.Service
}

func NewEstimateHandler(vaultSvc *vault.Service) *EstimateHandler {
	return &EstimateHandler{vaultSvc: vaultSvc}
}

func (h *EstimateHandler) Root() string {
	return "/estimate"
}

func (h *EstimateHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("/deposit", h.estimateDeposit)
	pub.GET("/withdraw", h.estimateWithdraw)
}

// DepositEstimateRequest asks what a deposit would mint right now.
type DepositEstimateRequest struct {
	// Vault identifier
	Vault string `form:"vault" binding:"required" example:"hype-main"`

	// Deposit amount in the base asset's wei decimals
	// For HYPE with 18 decimals: "500000000000000000" = 0.5 HYPE
	Amount string `form:"amount" binding:"required" example:"500000000000000000"`
}

// WithdrawEstimateRequest asks what burning shares would pay out right now.
type WithdrawEstimateRequest struct {
	Vault  string `form:"vault" binding:"required" example:"hype-main"`
	Owner  string `form:"owner" binding:"required" example:"0xabc..."`
	Shares string `form:"shares" binding:"required" example:"25000000000"`
}

// @Summary Estimate a deposit
// @Description Prices a deposit against the current snapshot using the exact
// @Description settlement arithmetic. Identical inputs settle to identical shares.
// @Tags estimate
// @Produce json
// @Param vault query string true "Vault id"
// @Param amount query string true "Amount in base-asset wei units"
// @Success 200 {object} httputil.Response{data=domain.DepositEstimate}
// @Failure 400 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/estimate/deposit [get]
func (h *EstimateHandler) estimateDeposit(c *gin.Context) {
	var req DepositEstimateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		httputil.BadRequest(c, "invalid amount: "+err.Error())
		return
	}
	est, err := h.vaultSvc.EstimateDeposit(c.Request.Context(), req.Vault, amount)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, est)
}

// @Summary Estimate a withdrawal
// @Tags estimate
// @Produce json
// @Param vault query string true "Vault id"
// @Param owner query string true "Share owner"
// @Param shares query string true "Shares to redeem (share decimals)"
// @Success 200 {object} httputil.Response{data=domain.WithdrawEstimate}
// @Failure 400 {object} httputil.Response
// @Failure 422 {object} httputil.Response
// @Router /api/v1/estimate/withdraw [get]
func (h *EstimateHandler) estimateWithdraw(c *gin.Context) {
	var req WithdrawEstimateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	shares, err := uint256.FromDecimal(req.Shares)
	if err != nil {
		httputil.BadRequest(c, "invalid shares: "+err.Error())
		return
	}
	est, err := h.vaultSvc.EstimateWithdraw(c.Request.Context(), req.Vault, req.Owner, shares)
	if err != nil {
		respondCoreError(c, err)
		return
	}
	httputil.Success(c, est)
}

// respondCoreError translates core errors into the API envelope.
func respondCoreError(c *gin.Context, err error) {
	if errors.Is(err, vault.ErrVaultNotFound) {
		httputil.NotFound(c, err.Error())
		return
	}
	he := common.FromCoreError(err)
	httputil.Error(c, he.StatusCode, he.Code, he.Message)
}
