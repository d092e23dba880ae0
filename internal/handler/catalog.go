package handler

import (
	"net/http"

	"stallpos/internal/dto"
	"stallpos/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler manages SKUs and recipes.
type CatalogHandler struct{ svc *service.CatalogService }

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ─── SKUs ────────────────────────────────────────────────────────────────────

func (h *CatalogHandler) CreateSku(c *gin.Context) {
	var req dto.CreateSkuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSku(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) GetSku(c *gin.Context) {
	resp, err := h.svc.GetSku(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) ListSkus(c *gin.Context) {
	resp, err := h.svc.ListSkus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CatalogHandler) UpdateSku(c *gin.Context) {
	var req dto.UpdateSkuRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateSku(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteSku(c *gin.Context) {
	if err := h.svc.DeleteSku(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ─── Recipes ─────────────────────────────────────────────────────────────────

func (h *CatalogHandler) CreateSemiRecipe(c *gin.Context) {
	var req dto.CreateSemiRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSemiRecipe(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) GetSemiRecipe(c *gin.Context) {
	resp, err := h.svc.GetSemiRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) ListSemiRecipes(c *gin.Context) {
	resp, err := h.svc.ListSemiRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CatalogHandler) DeleteSemiRecipe(c *gin.Context) {
	if err := h.svc.DeleteSemiRecipe(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) CreateSkuRecipe(c *gin.Context) {
	var req dto.CreateSkuRecipeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateSkuRecipe(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSkuRecipe looks a recipe up by its SKU, not the recipe row id.
func (h *CatalogHandler) GetSkuRecipe(c *gin.Context) {
	resp, err := h.svc.GetSkuRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) DeleteSkuRecipe(c *gin.Context) {
	if err := h.svc.DeleteSkuRecipe(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
