package handler

import (
	"net/http"

	"stallpos/internal/dto"
	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
)

// StockHandler is the admin surface for the three inventory tiers.
type StockHandler struct{ svc *service.InventoryService }

func NewStockHandler(svc *service.InventoryService) *StockHandler { return &StockHandler{svc: svc} }

// ─── Raw ingredients ─────────────────────────────────────────────────────────

func (h *StockHandler) CreateRawIngredient(c *gin.Context) {
	var req dto.CreateRawIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateRawIngredient(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockHandler) GetRawIngredient(c *gin.Context) {
	resp, err := h.svc.GetRawIngredient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListRawIngredients(c *gin.Context) {
	resp, err := h.svc.ListRawIngredients(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *StockHandler) UpdateRawIngredient(c *gin.Context) {
	var req dto.UpdateRawIngredientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateRawIngredient(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) DeleteRawIngredient(c *gin.Context) {
	if err := h.svc.DeleteRawIngredient(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StockHandler) ReplenishRawIngredient(c *gin.Context) {
	var req dto.ReplenishRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReplenishRawIngredient(c.Request.Context(), c.Param("id"), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Purchased goods ─────────────────────────────────────────────────────────

func (h *StockHandler) CreatePurchasedGood(c *gin.Context) {
	var req dto.CreatePurchasedGoodRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreatePurchasedGood(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockHandler) ListPurchasedGoods(c *gin.Context) {
	resp, err := h.svc.ListPurchasedGoods(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *StockHandler) DeletePurchasedGood(c *gin.Context) {
	if err := h.svc.DeletePurchasedGood(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StockHandler) RestockPurchasedGood(c *gin.Context) {
	var req dto.ReplenishRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RestockPurchasedGood(c.Request.Context(), c.Param("id"), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ─── Semi-processed items ────────────────────────────────────────────────────

func (h *StockHandler) CreateSemiProcessedItem(c *gin.Context) {
	var req dto.CreateSemiProcessedItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSemiProcessedItem(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *StockHandler) GetSemiProcessedItem(c *gin.Context) {
	resp, err := h.svc.GetSemiProcessedItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) ListSemiProcessedItems(c *gin.Context) {
	resp, err := h.svc.ListSemiProcessedItems(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *StockHandler) DeleteSemiProcessedItem(c *gin.Context) {
	if err := h.svc.DeleteSemiProcessedItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
