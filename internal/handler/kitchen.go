package handler

import (
	"net/http"
	"strconv"

	"stallpos/internal/apierror"
	"stallpos/internal/dto"
	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type KitchenHandler struct {
	kitchen      *service.KitchenService
	availability *service.AvailabilityService
}

func NewKitchenHandler(kitchen *service.KitchenService, availability *service.AvailabilityService) *KitchenHandler {
	return &KitchenHandler{kitchen: kitchen, availability: availability}
}

// CookBatch executes a kitchen batch-cook of a semi-processed recipe.
func (h *KitchenHandler) CookBatch(c *gin.Context) {
	var req dto.CookBatchRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.kitchen.CookBatch(c.Request.Context(), req, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// CheckAvailability answers whether a recipe can be cooked or a SKU assembled
// at the requested quantity. Read-only.
func (h *KitchenHandler) CheckAvailability(c *gin.Context) {
	var q dto.AvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if (q.RecipeID == "") == (q.SkuID == "") {
		c.JSON(http.StatusBadRequest, apierror.New("exactly one of recipe_id or sku_id is required"))
		return
	}

	var resp *dto.AvailabilityResponse
	var err error
	if q.RecipeID != "" {
		multiplier := decimal.NewFromInt(1)
		if q.Quantity != "" {
			multiplier, err = decimal.NewFromString(q.Quantity)
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("invalid quantity"))
				return
			}
		}
		resp, err = h.availability.CheckRecipe(c.Request.Context(), q.RecipeID, multiplier)
	} else {
		quantity := 1
		if q.Quantity != "" {
			quantity, err = strconv.Atoi(q.Quantity)
			if err != nil {
				c.JSON(http.StatusBadRequest, apierror.New("invalid quantity"))
				return
			}
		}
		resp, err = h.availability.CheckSku(c.Request.Context(), q.SkuID, quantity)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SweepExpired removes all expired semi-processed batches.
func (h *KitchenHandler) SweepExpired(c *gin.Context) {
	resp, err := h.kitchen.SweepExpired(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
