package stock

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/warehouse-ops/constant"
	"github.com/muhammadheryan/warehouse-ops/model"
	txrepo "github.com/muhammadheryan/warehouse-ops/repository/tx"
	variantrepo "github.com/muhammadheryan/warehouse-ops/repository/variant"
	"github.com/muhammadheryan/warehouse-ops/thirdparty/rabbitmq"
	"github.com/muhammadheryan/warehouse-ops/utils/errors"
	"github.com/muhammadheryan/warehouse-ops/utils/logger"
	"go.uber.org/zap"
)

type StockApp interface {
	RecordMovement(ctx context.Context, actorID uint64, req *model.StockMovementRequest) (*model.StockMovement, error)
	BatchReceive(ctx context.Context, actorID uint64, req *model.BatchReceiveRequest) (*model.BatchReceiveSummary, error)
	ListMovements(ctx context.Context, filter *model.MovementFilter) (*model.MovementListResponse, error)
}

type stockAppImpl struct {
	txRepo      txrepo.TxRepository
	variantRepo variantrepo.VariantRepository
	publisher   *rabbitmq.Publisher
}

func NewStockApp(txRepo txrepo.TxRepository, variantRepo variantrepo.VariantRepository, publisher *rabbitmq.Publisher) StockApp {
	return &stockAppImpl{txRepo: txRepo, variantRepo: variantRepo, publisher: publisher}
}

func (s *stockAppImpl) RecordMovement(ctx context.Context, actorID uint64, req *model.StockMovementRequest) (*model.StockMovement, error) {
	if !constant.ValidMovementType(req.Type) || req.Quantity <= 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RecordMovement] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	variant, err := s.variantRepo.LockByIDTx(ctx, tx, req.ProductVariantID)
	if err != nil {
		logger.Error("[RecordMovement] lock variant", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if variant == nil {
		return nil, errors.SetCustomError(constant.ErrVariantNotFound)
	}

	movement, err := s.applyMovementTx(ctx, tx, actorID, variant, req)
	if err != nil {
		logger.Error("[RecordMovement] apply movement", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RecordMovement] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.notifyLowStock(variant, movement.NewQuantity)

	return movement, nil
}

// applyMovementTx mutates the locked variant's quantity and appends the ledger
// row. new_quantity is derived here and nowhere else: inward adds, outward
// subtracts (no clamping, callers pre-check sufficiency where it matters),
// adjustment sets the absolute value.
func (s *stockAppImpl) applyMovementTx(ctx context.Context, tx *sqlx.Tx, actorID uint64, variant *model.ProductVariant, req *model.StockMovementRequest) (*model.StockMovement, error) {
	previous := variant.StockQuantity
	var newQuantity int64

	switch req.Type {
	case constant.MovementInward:
		newQuantity = previous + req.Quantity
		if err := s.variantRepo.ApplyStockDeltaTx(ctx, tx, variant.ID, req.Quantity); err != nil {
			return nil, err
		}
	case constant.MovementOutward:
		newQuantity = previous - req.Quantity
		if err := s.variantRepo.ApplyStockDeltaTx(ctx, tx, variant.ID, -req.Quantity); err != nil {
			return nil, err
		}
	case constant.MovementAdjustment:
		newQuantity = req.Quantity
		if err := s.variantRepo.SetStockQuantityTx(ctx, tx, variant.ID, req.Quantity); err != nil {
			return nil, err
		}
	}

	movement := &model.StockMovement{
		ProductVariantID: variant.ID,
		Type:             req.Type,
		Quantity:         req.Quantity,
		PreviousQuantity: previous,
		NewQuantity:      newQuantity,
		Reason:           req.Reason,
		CreatedBy:        actorID,
		CreatedAt:        time.Now(),
	}
	if req.SupplierID != 0 {
		movement.SupplierID = &req.SupplierID
	}
	if req.InvoiceNumber != "" {
		movement.InvoiceNumber = &req.InvoiceNumber
	}
	movement.InvoiceDate = req.InvoiceDate
	if req.CostPrice > 0 {
		movement.CostPrice = &req.CostPrice
	}

	id, err := s.variantRepo.InsertMovementTx(ctx, tx, movement)
	if err != nil {
		return nil, err
	}
	movement.ID = id

	return movement, nil
}

func (s *stockAppImpl) BatchReceive(ctx context.Context, actorID uint64, req *model.BatchReceiveRequest) (*model.BatchReceiveSummary, error) {
	summary := &model.BatchReceiveSummary{
		Movements: make([]model.StockMovement, 0, len(req.Lines)),
	}

	// One transaction per line: a bad line is skipped, not fatal to the batch.
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			logger.Warn("[BatchReceive] skipping non-positive quantity", zap.Uint64("variant_id", line.ProductVariantID), zap.Int64("quantity", line.Quantity))
			continue
		}

		movement, err := s.receiveLine(ctx, actorID, req, &line)
		if err != nil {
			if custom, ok := err.(errors.CustomError); ok && custom.Type() == constant.ErrVariantNotFound {
				logger.Warn("[BatchReceive] skipping unknown variant", zap.Uint64("variant_id", line.ProductVariantID))
				continue
			}
			logger.Error("[BatchReceive] receive line", zap.Uint64("variant_id", line.ProductVariantID), zap.String("error", err.Error()))
			continue
		}

		summary.TotalMovements++
		summary.TotalUnits += line.Quantity
		if line.CostPrice > 0 {
			summary.TotalValue += line.CostPrice * float64(line.Quantity)
		}
		summary.Movements = append(summary.Movements, *movement)
	}

	return summary, nil
}

func (s *stockAppImpl) receiveLine(ctx context.Context, actorID uint64, req *model.BatchReceiveRequest, line *model.BatchReceiveLine) (*model.StockMovement, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	variant, err := s.variantRepo.LockByIDTx(ctx, tx, line.ProductVariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, errors.SetCustomError(constant.ErrVariantNotFound)
	}

	movement, err := s.applyMovementTx(ctx, tx, actorID, variant, &model.StockMovementRequest{
		ProductVariantID: line.ProductVariantID,
		Type:             constant.MovementInward,
		Quantity:         line.Quantity,
		SupplierID:       req.SupplierID,
		InvoiceNumber:    req.InvoiceNumber,
		InvoiceDate:      req.InvoiceDate,
		CostPrice:        line.CostPrice,
		Reason:           "Batch receive from supplier",
	})
	if err != nil {
		return nil, err
	}

	if line.CostPrice > 0 {
		if err := s.variantRepo.UpdateCostPriceTx(ctx, tx, variant.ID, line.CostPrice); err != nil {
			return nil, err
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		return nil, err
	}
	committed = true

	return movement, nil
}

func (s *stockAppImpl) ListMovements(ctx context.Context, filter *model.MovementFilter) (*model.MovementListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	items, total, err := s.variantRepo.ListMovements(ctx, filter)
	if err != nil {
		logger.Error("[ListMovements] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.MovementListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *stockAppImpl) notifyLowStock(variant *model.ProductVariant, newQuantity int64) {
	if s.publisher == nil {
		return
	}
	if variant.LowStockThreshold <= 0 || newQuantity > variant.LowStockThreshold {
		return
	}
	msg := rabbitmq.LowStockEvent{
		ProductVariantID: variant.ID,
		SKU:              variant.SKU,
		StockQuantity:    newQuantity,
		Threshold:        variant.LowStockThreshold,
		OccurredAt:       time.Now(),
	}
	if err := s.publisher.PublishLowStock(msg); err != nil {
		logger.Error("[notifyLowStock] publish", zap.String("error", err.Error()))
	}
}
