package service

import (
	"context"
	"fmt"
	"time"

	"stallpos/internal/dto"
	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
)

// InventoryService is the admin surface for the raw / semi-processed /
// purchased tiers: CRUD plus supplier replenishment. Stock consumption never
// goes through here; that is the engine's job.
type InventoryService struct {
	raw       repository.RawIngredientRepository
	semi      repository.SemiProcessedRepository
	purchased repository.PurchasedGoodRepository
	audit     AuditSink
}

func NewInventoryService(
	raw repository.RawIngredientRepository,
	semi repository.SemiProcessedRepository,
	purchased repository.PurchasedGoodRepository,
	audit AuditSink,
) *InventoryService {
	return &InventoryService{raw: raw, semi: semi, purchased: purchased, audit: audit}
}

// ─── Raw ingredients ─────────────────────────────────────────────────────────

func (s *InventoryService) CreateRawIngredient(ctx context.Context, req dto.CreateRawIngredientRequest) (*dto.RawIngredientResponse, error) {
	ing := &model.RawIngredient{
		ID:           uuid.New(),
		Name:         req.Name,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		ReorderLevel: req.ReorderLevel,
		CanReplenish: true,
	}
	if req.CanReplenish != nil {
		ing.CanReplenish = *req.CanReplenish
	}
	if err := s.raw.Create(ctx, ing); err != nil {
		return nil, err
	}
	resp := rawToDTO(ing)
	return &resp, nil
}

func (s *InventoryService) GetRawIngredient(ctx context.Context, id string) (*dto.RawIngredientResponse, error) {
	ingID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "ingredient", Ref: id}
	}
	ing, err := s.raw.FindByID(ctx, ingID)
	if err != nil {
		return nil, &NotFoundError{Kind: "ingredient", Ref: id}
	}
	resp := rawToDTO(ing)
	return &resp, nil
}

func (s *InventoryService) ListRawIngredients(ctx context.Context) ([]dto.RawIngredientResponse, error) {
	ings, err := s.raw.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RawIngredientResponse, 0, len(ings))
	for i := range ings {
		out = append(out, rawToDTO(&ings[i]))
	}
	return out, nil
}

func (s *InventoryService) UpdateRawIngredient(ctx context.Context, id string, req dto.UpdateRawIngredientRequest) (*dto.RawIngredientResponse, error) {
	ingID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "ingredient", Ref: id}
	}
	ing, err := s.raw.FindByID(ctx, ingID)
	if err != nil {
		return nil, &NotFoundError{Kind: "ingredient", Ref: id}
	}
	if req.Unit != nil {
		ing.Unit = *req.Unit
	}
	if req.ReorderLevel != nil {
		ing.ReorderLevel = *req.ReorderLevel
	}
	if req.CanReplenish != nil {
		ing.CanReplenish = *req.CanReplenish
	}
	if err := s.raw.Update(ctx, ing); err != nil {
		return nil, err
	}
	resp := rawToDTO(ing)
	return &resp, nil
}

func (s *InventoryService) DeleteRawIngredient(ctx context.Context, id string) error {
	ingID, err := uuid.Parse(id)
	if err != nil {
		return &NotFoundError{Kind: "ingredient", Ref: id}
	}
	return s.raw.Delete(ctx, ingID)
}

// ReplenishRawIngredient adds supplier stock. Rejected for non-replenishable
// ingredients and non-positive quantities.
func (s *InventoryService) ReplenishRawIngredient(ctx context.Context, id string, req dto.ReplenishRequest, actor string) (*dto.RawIngredientResponse, error) {
	ingID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "ingredient", Ref: id}
	}
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("replenish quantity must be positive, got %s", req.Quantity)
	}
	ing, err := s.raw.FindByID(ctx, ingID)
	if err != nil {
		return nil, &NotFoundError{Kind: "ingredient", Ref: id}
	}
	if !ing.CanReplenish {
		return nil, fmt.Errorf("%s cannot be replenished mid-event", ing.Name)
	}
	if err := s.raw.AddStock(ctx, ingID, req.Quantity); err != nil {
		return nil, err
	}
	ing.CurrentStock = ing.CurrentStock.Add(req.Quantity)

	s.audit.Record(ctx, "replenish", "inventory",
		fmt.Sprintf("replenished %s %s of %s", req.Quantity, ing.Unit, ing.Name),
		map[string]any{"ingredient_id": id, "quantity": req.Quantity.String()},
		actor)

	resp := rawToDTO(ing)
	return &resp, nil
}

// ─── Purchased goods ─────────────────────────────────────────────────────────

func (s *InventoryService) CreatePurchasedGood(ctx context.Context, req dto.CreatePurchasedGoodRequest) (*dto.PurchasedGoodResponse, error) {
	g := &model.PurchasedGood{
		ID:           uuid.New(),
		Name:         req.Name,
		Category:     req.Category,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
		CounterStock: req.CounterStock,
		ReorderLevel: req.ReorderLevel,
		PrepNotes:    req.PrepNotes,
	}
	if err := s.purchased.Create(ctx, g); err != nil {
		return nil, err
	}
	resp := purchasedToDTO(g)
	return &resp, nil
}

func (s *InventoryService) ListPurchasedGoods(ctx context.Context) ([]dto.PurchasedGoodResponse, error) {
	goods, err := s.purchased.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchasedGoodResponse, 0, len(goods))
	for i := range goods {
		out = append(out, purchasedToDTO(&goods[i]))
	}
	return out, nil
}

func (s *InventoryService) DeletePurchasedGood(ctx context.Context, id string) error {
	gID, err := uuid.Parse(id)
	if err != nil {
		return &NotFoundError{Kind: "item", Ref: id}
	}
	return s.purchased.Delete(ctx, gID)
}

// RestockPurchasedGood adds supplier stock to the warehouse pool.
func (s *InventoryService) RestockPurchasedGood(ctx context.Context, id string, req dto.ReplenishRequest, actor string) (*dto.PurchasedGoodResponse, error) {
	gID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "item", Ref: id}
	}
	if !req.Quantity.IsPositive() {
		return nil, fmt.Errorf("restock quantity must be positive, got %s", req.Quantity)
	}
	if err := s.purchased.AddStock(ctx, gID, req.Quantity); err != nil {
		return nil, &NotFoundError{Kind: "item", Ref: id}
	}
	g, err := s.purchased.FindByID(ctx, gID)
	if err != nil {
		return nil, &NotFoundError{Kind: "item", Ref: id}
	}

	s.audit.Record(ctx, "restock", "inventory",
		fmt.Sprintf("restocked %s %s of %s", req.Quantity, g.Unit, g.Name),
		map[string]any{"item_id": id, "quantity": req.Quantity.String()},
		actor)

	resp := purchasedToDTO(g)
	return &resp, nil
}

// ─── Semi-processed items ────────────────────────────────────────────────────

// CreateSemiProcessedItem registers a pre-made item directly. A "fixed" item
// gets one long-lived batch carrying its opening stock so the batch invariant
// (current_stock == sum of batches) holds from the start.
func (s *InventoryService) CreateSemiProcessedItem(ctx context.Context, req dto.CreateSemiProcessedItemRequest) (*dto.SemiProcessedItemResponse, error) {
	now := time.Now().UTC()
	item := &model.SemiProcessedItem{
		ID:           uuid.New(),
		Name:         req.Name,
		Type:         req.Type,
		Unit:         req.Unit,
		CurrentStock: req.CurrentStock,
	}
	if req.CurrentStock.IsPositive() {
		item.Batches = []model.SemiBatch{{
			ID:        uuid.New(),
			ItemID:    item.ID,
			BatchID:   newBatchID(now),
			Quantity:  req.CurrentStock,
			CreatedAt: now,
			// Opening stock of a pre-made item holds for a week by default.
			ExpiresAt: now.Add(7 * 24 * time.Hour),
		}}
	}
	if err := s.semi.Create(ctx, item); err != nil {
		return nil, err
	}
	resp := semiToDTO(item)
	return &resp, nil
}

func (s *InventoryService) GetSemiProcessedItem(ctx context.Context, id string) (*dto.SemiProcessedItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "item", Ref: id}
	}
	item, err := s.semi.FindByID(ctx, itemID)
	if err != nil {
		return nil, &NotFoundError{Kind: "item", Ref: id}
	}
	resp := semiToDTO(item)
	return &resp, nil
}

func (s *InventoryService) ListSemiProcessedItems(ctx context.Context) ([]dto.SemiProcessedItemResponse, error) {
	items, err := s.semi.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SemiProcessedItemResponse, 0, len(items))
	for i := range items {
		out = append(out, semiToDTO(&items[i]))
	}
	return out, nil
}

func (s *InventoryService) DeleteSemiProcessedItem(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return &NotFoundError{Kind: "item", Ref: id}
	}
	return s.semi.Delete(ctx, itemID)
}

// ─── Mapping ─────────────────────────────────────────────────────────────────

func rawToDTO(ing *model.RawIngredient) dto.RawIngredientResponse {
	return dto.RawIngredientResponse{
		ID:           ing.ID.String(),
		Name:         ing.Name,
		Unit:         ing.Unit,
		CurrentStock: ing.CurrentStock,
		ReorderLevel: ing.ReorderLevel,
		CanReplenish: ing.CanReplenish,
	}
}

func purchasedToDTO(g *model.PurchasedGood) dto.PurchasedGoodResponse {
	return dto.PurchasedGoodResponse{
		ID:             g.ID.String(),
		Name:           g.Name,
		Category:       g.Category,
		Unit:           g.Unit,
		CurrentStock:   g.CurrentStock,
		CounterStock:   g.CounterStock,
		TotalAvailable: g.CurrentStock.Add(g.CounterStock),
		ReorderLevel:   g.ReorderLevel,
	}
}

func semiToDTO(item *model.SemiProcessedItem) dto.SemiProcessedItemResponse {
	batches := make([]dto.SemiBatchDTO, 0, len(item.Batches))
	for _, b := range item.Batches {
		batches = append(batches, dto.SemiBatchDTO{
			BatchID:   b.BatchID,
			Quantity:  b.Quantity,
			CreatedAt: b.CreatedAt.Format(time.RFC3339),
			ExpiresAt: b.ExpiresAt.Format(time.RFC3339),
		})
	}
	return dto.SemiProcessedItemResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Type:         item.Type,
		Unit:         item.Unit,
		CurrentStock: item.CurrentStock,
		Batches:      batches,
	}
}
