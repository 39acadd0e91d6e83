package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadheryan/warehouse-ops/constant"
	"github.com/muhammadheryan/warehouse-ops/model"
	deliveryrepo "github.com/muhammadheryan/warehouse-ops/repository/delivery"
	orderrepo "github.com/muhammadheryan/warehouse-ops/repository/order"
	txrepo "github.com/muhammadheryan/warehouse-ops/repository/tx"
	"github.com/muhammadheryan/warehouse-ops/utils/errors"
	"github.com/muhammadheryan/warehouse-ops/utils/logger"
	"go.uber.org/zap"
)

type DeliveryApp interface {
	GetDelivery(ctx context.Context, deliveryID uint64) (*model.DeliveryResponse, error)
	CollectPayment(ctx context.Context, actorID uint64, deliveryID uint64, req *model.CollectPaymentRequest) (*model.InternalDelivery, error)
	UpdateStatus(ctx context.Context, actorID uint64, deliveryID uint64, req *model.DeliveryStatusRequest) (*model.InternalDelivery, error)
}

type deliveryAppImpl struct {
	txRepo       txrepo.TxRepository
	deliveryRepo deliveryrepo.DeliveryRepository
	orderRepo    orderrepo.OrderRepository
}

func NewDeliveryApp(txRepo txrepo.TxRepository, deliveryRepo deliveryrepo.DeliveryRepository, orderRepo orderrepo.OrderRepository) DeliveryApp {
	return &deliveryAppImpl{txRepo: txRepo, deliveryRepo: deliveryRepo, orderRepo: orderRepo}
}

func (s *deliveryAppImpl) GetDelivery(ctx context.Context, deliveryID uint64) (*model.DeliveryResponse, error) {
	delivery, err := s.deliveryRepo.GetByID(ctx, deliveryID)
	if err != nil {
		logger.Error("[GetDelivery] get delivery", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if delivery == nil {
		return nil, errors.SetCustomError(constant.ErrDeliveryNotFound)
	}

	events, err := s.deliveryRepo.ListEvents(ctx, deliveryID)
	if err != nil {
		logger.Error("[GetDelivery] list events", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.DeliveryResponse{Delivery: delivery, Events: events}, nil
}

// CollectPayment records a COD collection and flips the order to paid. The
// collected amount is not reconciled against the order total; partial and
// over-collection are accepted and only logged.
func (s *deliveryAppImpl) CollectPayment(ctx context.Context, actorID uint64, deliveryID uint64, req *model.CollectPaymentRequest) (*model.InternalDelivery, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CollectPayment] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	delivery, err := s.deliveryRepo.LockByIDTx(ctx, tx, deliveryID)
	if err != nil {
		logger.Error("[CollectPayment] lock delivery", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if delivery == nil {
		return nil, errors.SetCustomError(constant.ErrDeliveryNotFound)
	}

	order, err := s.orderRepo.LockByIDTx(ctx, tx, delivery.OrderID)
	if err != nil {
		logger.Error("[CollectPayment] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	collectedAt := time.Now()
	if err := s.deliveryRepo.UpdateCollectionTx(ctx, tx, deliveryID, req.AmountCollected, req.PaymentMode, collectedAt); err != nil {
		logger.Error("[CollectPayment] update collection", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.deliveryRepo.InsertEventTx(ctx, tx, &model.DeliveryEvent{
		DeliveryID: deliveryID,
		Status:     constant.DeliveryStatusPaymentCollected,
		Notes:      fmt.Sprintf("Collected %.2f via %s", req.AmountCollected, req.PaymentMode),
		CreatedBy:  actorID,
	}); err != nil {
		logger.Error("[CollectPayment] insert event", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.UpdatePaymentStatusTx(ctx, tx, order.ID, constant.PaymentStatusPaid); err != nil {
		logger.Error("[CollectPayment] update payment status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CollectPayment] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if req.AmountCollected != order.TotalAmount {
		logger.Warn("[CollectPayment] collected amount differs from order total",
			zap.String("order_number", order.OrderNumber),
			zap.Float64("collected", req.AmountCollected),
			zap.Float64("total", order.TotalAmount))
	}

	delivery.Status = constant.DeliveryStatusPaymentCollected
	delivery.AmountCollected = &req.AmountCollected
	delivery.PaymentMode = &req.PaymentMode
	delivery.PaymentCollectedAt = &collectedAt
	return delivery, nil
}

func (s *deliveryAppImpl) UpdateStatus(ctx context.Context, actorID uint64, deliveryID uint64, req *model.DeliveryStatusRequest) (*model.InternalDelivery, error) {
	if !constant.ValidDeliveryStatus(req.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[UpdateStatus] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	delivery, err := s.deliveryRepo.LockByIDTx(ctx, tx, deliveryID)
	if err != nil {
		logger.Error("[UpdateStatus] lock delivery", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if delivery == nil {
		return nil, errors.SetCustomError(constant.ErrDeliveryNotFound)
	}

	if err := s.deliveryRepo.UpdateStatusTx(ctx, tx, deliveryID, req.Status); err != nil {
		logger.Error("[UpdateStatus] update status", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.deliveryRepo.InsertEventTx(ctx, tx, &model.DeliveryEvent{
		DeliveryID: deliveryID,
		Status:     req.Status,
		Notes:      req.Notes,
		CreatedBy:  actorID,
	}); err != nil {
		logger.Error("[UpdateStatus] insert event", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	// delivered and rto legs are reflected onto the order so the back-office
	// sees one consistent status.
	if orderStatus, ok := orderStatusFor(req.Status); ok {
		order, err := s.orderRepo.LockByIDTx(ctx, tx, delivery.OrderID)
		if err != nil {
			logger.Error("[UpdateStatus] lock order", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if order != nil && constant.CanTransition(order.Status, orderStatus) {
			if err := s.orderRepo.UpdateStatusTx(ctx, tx, order.ID, orderStatus); err != nil {
				logger.Error("[UpdateStatus] update order status", zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
			if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.OrderStatusHistory{
				OrderID:   order.ID,
				Status:    orderStatus,
				Comment:   fmt.Sprintf("Internal delivery %s", req.Status),
				ChangedBy: actorID,
			}); err != nil {
				logger.Error("[UpdateStatus] insert order history", zap.String("error", err.Error()))
				return nil, errors.SetCustomError(constant.ErrInternal)
			}
		}
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[UpdateStatus] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	delivery.Status = req.Status
	return delivery, nil
}

func orderStatusFor(status constant.DeliveryStatus) (constant.OrderStatus, bool) {
	switch status {
	case constant.DeliveryStatusDelivered:
		return constant.OrderStatusDelivered, true
	case constant.DeliveryStatusRTO:
		return constant.OrderStatusRTO, true
	}
	return "", false
}
