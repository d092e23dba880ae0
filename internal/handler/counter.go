package handler

import (
	"net/http"
	"strconv"

	"stallpos/internal/dto"
	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
)

type CounterHandler struct{ svc *service.CounterService }

func NewCounterHandler(svc *service.CounterService) *CounterHandler {
	return &CounterHandler{svc: svc}
}

// SendToCounter assembles SKUs and stocks them at the stall counter.
func (h *CounterHandler) SendToCounter(c *gin.Context) {
	var req dto.SendToCounterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SendToCounter(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ReceiveTransfer is the retired two-step acknowledgement. Always 410.
func (h *CounterHandler) ReceiveTransfer(c *gin.Context) {
	respondError(c, h.svc.ReceiveTransfer(c.Request.Context(), c.Param("id")))
}

// ListTransfers returns the most recent transfer ledger rows.
func (h *CounterHandler) ListTransfers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	items, err := h.svc.ListTransfers(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
