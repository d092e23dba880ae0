package handler

import (
	"net/http"

	"stallpos/internal/apierror"
	"stallpos/internal/dto"
	"stallpos/internal/repository"
	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc *service.SaleService }

func NewSalesHandler(svc *service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// RecordTransaction records a multi-item checkout. All-or-nothing: any
// unsellable line fails the whole cart.
func (h *SalesHandler) RecordTransaction(c *gin.Context) {
	var req dto.RecordTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordTransaction(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordSingleSale is the legacy one-item call shape.
func (h *SalesHandler) RecordSingleSale(c *gin.Context) {
	var req dto.SingleSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordSingleSale(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTransactions returns a paginated, filtered list of transactions.
func (h *SalesHandler) ListTransactions(c *gin.Context) {
	var filter repository.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to list transactions"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetTransaction returns one transaction with its lines.
func (h *SalesHandler) GetTransaction(c *gin.Context) {
	resp, err := h.svc.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
