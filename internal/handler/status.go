package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Status godoc
// @Summary      Current liquidity snapshot
// @Description  Returns the latest committed snapshot from the failover poller without triggering a new poll
// @Tags         liquidity
// @Produce      json
// @Success      200  {object}  domain.LiquiditySnapshot
// @Router       /api/status [get]
func (h *Handler) Status(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.status")
	defer span.End()

	c.JSON(http.StatusOK, h.liquidity.Snapshot())
}

// Addresses godoc
// @Summary      Tracked address overview
// @Description  Returns the dedup ledger size and a bounded sample of tracked addresses
// @Tags         liquidity
// @Produce      json
// @Param        sample  query  int  false  "Sample size (default 10, max 100)"  default(10)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/addresses [get]
func (h *Handler) Addresses(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.addresses")
	defer span.End()

	sample := 10
	if s := c.Query("sample"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			sample = n
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  h.liquidity.AddressCount(),
		"sample": h.liquidity.AddressSample(sample),
	})
}

// TriggerPoll godoc
// @Summary      Trigger poll cycles manually
// @Description  Starts one liquidity cycle and one wallet cycle; a cycle already in flight is skipped
// @Tags         liquidity
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/poll [post]
func (h *Handler) TriggerPoll(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trigger-poll")
	defer span.End()

	liquidityStarted := h.liquidityPoll != nil && h.liquidityPoll.RunOnce(ctx)
	walletStarted := h.walletPoll != nil && h.walletPoll.RunOnce(ctx)

	c.JSON(http.StatusOK, gin.H{
		"liquidity_poll_ran": liquidityStarted,
		"wallet_poll_ran":    walletStarted,
	})
}
