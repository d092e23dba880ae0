package service

import (
	"context"

	"stallpos/internal/dto"
	"stallpos/internal/repository"
)

// AlertService surfaces low-stock conditions. Read-only: it never mutates
// stock and never dedupes across calls, so clients poll it freely.
type AlertService struct {
	skus      repository.SkuRepository
	raw       repository.RawIngredientRepository
	purchased repository.PurchasedGoodRepository
}

func NewAlertService(
	skus repository.SkuRepository,
	raw repository.RawIngredientRepository,
	purchased repository.PurchasedGoodRepository,
) *AlertService {
	return &AlertService{skus: skus, raw: raw, purchased: purchased}
}

// GetAlerts returns SKUs at or below their low-stock threshold and
// raw ingredients / purchased goods at or below their reorder level.
// Non-replenishable ingredients are flagged critical.
func (s *AlertService) GetAlerts(ctx context.Context) (*dto.AlertsResponse, error) {
	resp := &dto.AlertsResponse{Skus: []dto.SkuAlert{}, Ingredients: []dto.IngredientAlert{}}

	skus, err := s.skus.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	for _, sku := range skus {
		resp.Skus = append(resp.Skus, dto.SkuAlert{
			SkuID:             sku.ID.String(),
			Name:              sku.Name,
			CurrentStallStock: sku.CurrentStallStock,
			LowStockThreshold: sku.LowStockThreshold,
		})
	}

	raws, err := s.raw.ListBelowReorder(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range raws {
		severity := "warning"
		if !r.CanReplenish {
			severity = "critical"
		}
		resp.Ingredients = append(resp.Ingredients, dto.IngredientAlert{
			IngredientID: r.ID.String(),
			Name:         r.Name,
			CurrentStock: r.CurrentStock,
			ReorderLevel: r.ReorderLevel,
			Severity:     severity,
		})
	}

	goods, err := s.purchased.ListBelowReorder(ctx)
	if err != nil {
		return nil, err
	}
	for _, g := range goods {
		resp.Ingredients = append(resp.Ingredients, dto.IngredientAlert{
			IngredientID: g.ID.String(),
			Name:         g.Name,
			CurrentStock: g.CurrentStock.Add(g.CounterStock),
			ReorderLevel: g.ReorderLevel,
			Severity:     "warning",
		})
	}

	return resp, nil
}
