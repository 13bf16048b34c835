package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type addWalletRequest struct {
	Address string `json:"address" binding:"required"`
	Label   string `json:"label"`
}

// AddWallet godoc
// @Summary      Watch a wallet
// @Description  Registers a Solana wallet for swap polling and win-rate tracking
// @Tags         wallets
// @Accept       json
// @Produce      json
// @Param        wallet  body  addWalletRequest  true  "Wallet address and optional label"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /api/wallets [post]
func (h *Handler) AddWallet(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.add-wallet")
	defer span.End()

	var req addWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(attribute.String("wallet", req.Address))

	if err := h.wallets.AddWallet(ctx, req.Address, req.Label); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "watching", "address": req.Address})
}

// RemoveWallet godoc
// @Summary      Stop watching a wallet
// @Description  Removes a wallet and its accumulated trade history
// @Tags         wallets
// @Produce      json
// @Param        address  path  string  true  "Wallet address"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/wallets/{address} [delete]
func (h *Handler) RemoveWallet(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.remove-wallet")
	defer span.End()

	address := c.Param("address")
	if err := h.wallets.RemoveWallet(ctx, address); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed", "address": address})
}

// ListWallets godoc
// @Summary      List watched wallets
// @Description  Returns the watchlist with per-wallet distinct token counts
// @Tags         wallets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/wallets [get]
func (h *Handler) ListWallets(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-wallets")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"wallets": h.wallets.ListWallets()})
}

// WinRate godoc
// @Summary      Win-rate report
// @Description  Evaluates every watched wallet against the survival threshold and returns per-wallet and global win rates
// @Tags         wallets
// @Produce      json
// @Success      200  {object}  domain.WinRateReport
// @Router       /api/winrate [get]
func (h *Handler) WinRate(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.win-rate")
	defer span.End()

	c.JSON(http.StatusOK, h.wallets.WinRate(time.Now().UTC()))
}
