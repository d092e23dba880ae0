package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stallpos/internal/dto"
	"stallpos/internal/model"
	"stallpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleService records checkout transactions at the stall counter. A sale is
// all-or-nothing: every line is resolved and validated against stall stock
// before any deduction, and the whole checkout runs in one transaction.
type SaleService struct {
	skus  repository.SkuRepository
	txns  repository.TransactionRepository
	audit AuditSink
}

func NewSaleService(skus repository.SkuRepository, txns repository.TransactionRepository, audit AuditSink) *SaleService {
	return &SaleService{skus: skus, txns: txns, audit: audit}
}

// RecordTransaction records a multi-item checkout. Totals are recomputed from
// the lines at write time and unit prices are captured from the live SKU, so
// later price changes never alter history.
func (s *SaleService) RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, actor string) (*dto.TransactionResponse, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyTransaction
	}
	for _, item := range req.Items {
		// Guarded here, not just at the HTTP layer: a delta of -qty on stall
		// stock would otherwise turn a negative quantity into a restock.
		if item.Quantity < 1 {
			return nil, fmt.Errorf("item quantity must be at least 1, got %d", item.Quantity)
		}
	}

	recordID := uuid.New()
	transactionID := recordID.String()
	if req.TransactionID != nil && *req.TransactionID != "" {
		transactionID = *req.TransactionID
	}
	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	transactionType := "cart"
	if len(req.Items) == 1 {
		transactionType = "single_item"
	}

	var record *model.Transaction
	err := runTx(ctx, s.txns.DB(), func(tx *gorm.DB) error {
		type line struct {
			sku *model.SkuItem
			qty int
		}

		// Resolve and validate every line before touching any stock.
		lines := make([]line, 0, len(req.Items))
		for _, item := range req.Items {
			skuID, parseErr := uuid.Parse(item.SkuID)
			if parseErr != nil {
				return &NotFoundError{Kind: "sku", Ref: item.SkuID}
			}
			sku, findErr := s.skus.FindByIDTx(tx, skuID)
			if findErr != nil {
				return &NotFoundError{Kind: "sku", Ref: item.SkuID}
			}
			if sku.CurrentStallStock < item.Quantity {
				return &InsufficientStockError{
					Name:      sku.Name,
					Required:  decimal.NewFromInt(int64(item.Quantity)),
					Available: decimal.NewFromInt(int64(sku.CurrentStallStock)),
					Expired:   decimal.Zero,
				}
			}
			lines = append(lines, line{sku: sku, qty: item.Quantity})
		}

		total := decimal.Zero
		itemCount := 0
		items := make([]model.TransactionItem, 0, len(lines))
		for _, l := range lines {
			if err := s.skus.AddStallStockTx(tx, l.sku.ID, -l.qty); err != nil {
				if errors.Is(err, repository.ErrStaleStock) {
					return &InsufficientStockError{
						Name:      l.sku.Name,
						Required:  decimal.NewFromInt(int64(l.qty)),
						Available: decimal.NewFromInt(int64(l.sku.CurrentStallStock)),
						Expired:   decimal.Zero,
					}
				}
				return err
			}
			itemTotal := l.sku.Price.Mul(decimal.NewFromInt(int64(l.qty)))
			total = total.Add(itemTotal)
			itemCount += l.qty
			items = append(items, model.TransactionItem{
				ID:             uuid.New(),
				TransactionRef: recordID,
				SkuID:          l.sku.ID,
				SkuName:        l.sku.Name,
				Quantity:       l.qty,
				UnitPrice:      l.sku.Price,
				ItemTotal:      itemTotal,
			})
		}

		record = &model.Transaction{
			ID:              recordID,
			TransactionID:   transactionID,
			TotalAmount:     total,
			ItemCount:       itemCount,
			TransactionType: transactionType,
			PaymentMethod:   paymentMethod,
			CustomerName:    req.CustomerName,
			Actor:           actor,
			CreatedAt:       time.Now().UTC(),
			Items:           items,
		}
		return s.txns.CreateTx(tx, record)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, "record_sale", "sales",
		fmt.Sprintf("recorded %s sale of %d items for %s", transactionType, record.ItemCount, record.TotalAmount),
		map[string]any{"transaction_id": transactionID, "total": record.TotalAmount.String()},
		actor)

	resp := transactionToDTO(record)
	return &resp, nil
}

// RecordSingleSale is the legacy one-item shape, translated into a one-line
// transaction.
func (s *SaleService) RecordSingleSale(ctx context.Context, req dto.SingleSaleRequest, actor string) (*dto.TransactionResponse, error) {
	return s.RecordTransaction(ctx, dto.RecordTransactionRequest{
		Items:         []dto.SaleItemRequest{{SkuID: req.SkuID, Quantity: req.Quantity}},
		PaymentMethod: req.PaymentMethod,
		CustomerName:  req.CustomerName,
	}, actor)
}

func (s *SaleService) ListTransactions(ctx context.Context, filter repository.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	txns, total, err := s.txns.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		data = append(data, transactionToDTO(&txns[i]))
	}
	return &dto.TransactionListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *SaleService) GetTransaction(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	txnID, err := uuid.Parse(id)
	if err != nil {
		return nil, &NotFoundError{Kind: "transaction", Ref: id}
	}
	record, err := s.txns.FindByID(ctx, txnID)
	if err != nil {
		return nil, &NotFoundError{Kind: "transaction", Ref: id}
	}
	resp := transactionToDTO(record)
	return &resp, nil
}

func transactionToDTO(t *model.Transaction) dto.TransactionResponse {
	items := make([]dto.SaleItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.SaleItemResponse{
			SkuID:     it.SkuID.String(),
			SkuName:   it.SkuName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			ItemTotal: it.ItemTotal,
		})
	}
	return dto.TransactionResponse{
		ID:              t.ID.String(),
		TransactionID:   t.TransactionID,
		Items:           items,
		TotalAmount:     t.TotalAmount,
		ItemCount:       t.ItemCount,
		TransactionType: t.TransactionType,
		PaymentMethod:   t.PaymentMethod,
		CreatedAt:       t.CreatedAt.Format(time.RFC3339),
	}
}
