package order

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/muhammadheryan/warehouse-ops/cmd/config"
	"github.com/muhammadheryan/warehouse-ops/constant"
	"github.com/muhammadheryan/warehouse-ops/model"
	deliveryrepo "github.com/muhammadheryan/warehouse-ops/repository/delivery"
	orderrepo "github.com/muhammadheryan/warehouse-ops/repository/order"
	txrepo "github.com/muhammadheryan/warehouse-ops/repository/tx"
	variantrepo "github.com/muhammadheryan/warehouse-ops/repository/variant"
	"github.com/muhammadheryan/warehouse-ops/thirdparty/rabbitmq"
	"github.com/muhammadheryan/warehouse-ops/utils/errors"
	"github.com/muhammadheryan/warehouse-ops/utils/logger"
	"go.uber.org/zap"
)

type OrderApp interface {
	CreateOrder(ctx context.Context, actorID uint64, req *model.CreateOrderRequest) (*model.OrderResponse, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.OrderResponse, error)
	ListOrders(ctx context.Context, filter *model.OrderFilter) (*model.OrderListResponse, error)
	SetStatus(ctx context.Context, actorID uint64, orderID uint64, req *model.StatusUpdateRequest) (*model.OrderEntity, error)
	Dispatch(ctx context.Context, actorID uint64, orderID uint64, req *model.DispatchRequest) (*model.OrderEntity, error)
	DispatchReplacement(ctx context.Context, actorID uint64, orderID uint64, req *model.DispatchRequest) (*model.OrderEntity, error)
	BulkUpdateStatuses(ctx context.Context, actorID uint64, req *model.BulkStatusRequest) (*model.BulkStatusResult, error)
}

type orderAppImpl struct {
	config       *config.Config
	txRepo       txrepo.TxRepository
	orderRepo    orderrepo.OrderRepository
	variantRepo  variantrepo.VariantRepository
	deliveryRepo deliveryrepo.DeliveryRepository
	publisher    *rabbitmq.Publisher
}

func NewOrderApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository, variantRepo variantrepo.VariantRepository, deliveryRepo deliveryrepo.DeliveryRepository, publisher *rabbitmq.Publisher) OrderApp {
	return &orderAppImpl{
		config:       config,
		txRepo:       txRepo,
		orderRepo:    orderRepo,
		variantRepo:  variantRepo,
		deliveryRepo: deliveryRepo,
		publisher:    publisher,
	}
}

func (s *orderAppImpl) CreateOrder(ctx context.Context, actorID uint64, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateOrder] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	now := time.Now()
	seq, err := s.orderRepo.NextOrderSeqTx(ctx, tx, now.Year())
	if err != nil {
		logger.Error("[CreateOrder] next order seq", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	var total float64
	for _, it := range req.Items {
		total += it.Price * float64(it.Quantity)
	}

	entity := &model.OrderEntity{
		OrderNumber:     fmt.Sprintf("%s-%d-%05d", s.config.Order.NumberPrefix, now.Year(), seq),
		Status:          constant.OrderStatusPending,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   constant.PaymentStatusPending,
		TotalAmount:     total,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now,
	}
	// prepaid orders arrive already paid through the storefront
	if req.PaymentMethod == constant.PaymentMethodPrepaid {
		entity.PaymentStatus = constant.PaymentStatusPaid
	}

	orderID, err := s.orderRepo.InsertOrderTx(ctx, tx, entity)
	if err != nil {
		logger.Error("[CreateOrder] insert order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	entity.ID = orderID

	if err := s.orderRepo.InsertOrderItemsTx(ctx, tx, orderID, req.Items); err != nil {
		logger.Error("[CreateOrder] insert items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.OrderStatusHistory{
		OrderID:   orderID,
		Status:    constant.OrderStatusPending,
		Comment:   "Order created",
		ChangedBy: actorID,
	}); err != nil {
		logger.Error("[CreateOrder] insert history", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateOrder] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishStatusChanged(entity, "Order created", actorID)

	return &model.OrderResponse{Order: entity}, nil
}

func (s *orderAppImpl) GetOrder(ctx context.Context, orderID uint64) (*model.OrderResponse, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	items, err := s.orderRepo.GetItems(ctx, orderID)
	if err != nil {
		logger.Error("[GetOrder] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.OrderResponse{Order: order, Items: items}, nil
}

func (s *orderAppImpl) ListOrders(ctx context.Context, filter *model.OrderFilter) (*model.OrderListResponse, error) {
	if filter.Status != "" && !constant.ValidOrderStatus(filter.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	items, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		logger.Error("[ListOrders] list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	return &model.OrderListResponse{
		Items:      items,
		TotalCount: total,
		Page:       filter.Page,
		PerPage:    filter.PerPage,
	}, nil
}

func (s *orderAppImpl) SetStatus(ctx context.Context, actorID uint64, orderID uint64, req *model.StatusUpdateRequest) (*model.OrderEntity, error) {
	if !constant.ValidOrderStatus(req.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[SetStatus] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.LockByIDTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[SetStatus] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	if err := s.setStatusTx(ctx, tx, order, req.Status, req.Comment, actorID); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[SetStatus] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishStatusChanged(order, req.Comment, actorID)

	return order, nil
}

// setStatusTx validates the transition against the status graph, writes the
// new status and appends exactly one history row. It mutates order in place
// so callers return the updated entity. The caller owns the transaction.
func (s *orderAppImpl) setStatusTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity, status constant.OrderStatus, comment string, actorID uint64) error {
	if !constant.CanTransition(order.Status, status) {
		return errors.SetCustomErrorWithDetails(constant.ErrInvalidTransition,
			[]string{fmt.Sprintf("cannot move order %s from %s to %s", order.OrderNumber, order.Status, status)})
	}

	if err := s.orderRepo.UpdateStatusTx(ctx, tx, order.ID, status); err != nil {
		logger.Error("[setStatusTx] update status", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.orderRepo.InsertStatusHistoryTx(ctx, tx, &model.OrderStatusHistory{
		OrderID:   order.ID,
		Status:    status,
		Comment:   comment,
		ChangedBy: actorID,
	}); err != nil {
		logger.Error("[setStatusTx] insert history", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	order.Status = status
	now := time.Now()
	order.UpdatedAt = &now
	return nil
}

func (s *orderAppImpl) Dispatch(ctx context.Context, actorID uint64, orderID uint64, req *model.DispatchRequest) (*model.OrderEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[Dispatch] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.LockByIDTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[Dispatch] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	// First dispatch never touches the stock ledger; upstream reservation is
	// assumed. Only replacement dispatch consumes stock.
	if err := s.dispatchTx(ctx, tx, order, req, fmt.Sprintf("Order dispatched via %s", req.CourierType), actorID); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[Dispatch] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishStatusChanged(order, "dispatched", actorID)

	return order, nil
}

// dispatchTx applies the shared tail of both dispatch flavors: courier fields
// plus dispatch date, the status transition, and the in-house delivery record.
func (s *orderAppImpl) dispatchTx(ctx context.Context, tx *sqlx.Tx, order *model.OrderEntity, req *model.DispatchRequest, comment string, actorID uint64) error {
	dispatchDate := time.Now()
	if err := s.orderRepo.UpdateCourierTx(ctx, tx, order.ID, req, dispatchDate); err != nil {
		logger.Error("[dispatchTx] update courier", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := s.setStatusTx(ctx, tx, order, constant.OrderStatusDispatched, comment, actorID); err != nil {
		return err
	}

	order.CourierPartnerID = &req.CourierPartnerID
	courierType := req.CourierType
	order.CourierType = &courierType
	if req.AWBNumber != "" {
		awb := req.AWBNumber
		order.AWBNumber = &awb
	}
	order.DispatchDate = &dispatchDate

	if req.CourierType == constant.CourierTypeInHouse && req.AssignedTo != 0 {
		assigned := req.AssignedTo
		order.AssignedTo = &assigned

		deliveryID, err := s.deliveryRepo.InsertTx(ctx, tx, &model.InternalDelivery{
			OrderID:    order.ID,
			AssignedTo: req.AssignedTo,
			Status:     constant.DeliveryStatusAssigned,
		})
		if err != nil {
			logger.Error("[dispatchTx] insert delivery", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
		if err := s.deliveryRepo.InsertEventTx(ctx, tx, &model.DeliveryEvent{
			DeliveryID: deliveryID,
			Status:     constant.DeliveryStatusAssigned,
			Notes:      fmt.Sprintf("Assigned for order %s", order.OrderNumber),
			CreatedBy:  actorID,
		}); err != nil {
			logger.Error("[dispatchTx] insert delivery event", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	return nil
}

func (s *orderAppImpl) DispatchReplacement(ctx context.Context, actorID uint64, orderID uint64, req *model.DispatchRequest) (*model.OrderEntity, error) {
	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[DispatchReplacement] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.LockByIDTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[DispatchReplacement] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}
	if order.Status != constant.OrderStatusDelivered {
		return nil, errors.SetCustomError(constant.ErrOrderNotDelivered)
	}

	items, err := s.orderRepo.GetItemsTx(ctx, tx, orderID)
	if err != nil {
		logger.Error("[DispatchReplacement] get items", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(items) == 0 {
		return nil, errors.SetCustomError(constant.ErrOrderHasNoItems)
	}

	// Validation pass before any mutation: demand is summed per SKU (the same
	// variant may appear on several lines), each distinct variant row is
	// locked once so the checked quantities hold until commit, and both
	// failure classes are collected in full so the caller gets the complete
	// list in one round trip; missing variants take precedence.
	demand := make(map[string]int64, len(items))
	skus := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := demand[item.SKU]; !ok {
			skus = append(skus, item.SKU)
		}
		demand[item.SKU] += item.Quantity
	}

	variants := make(map[string]*model.ProductVariant, len(skus))
	var missing, short []string
	for _, sku := range skus {
		variant, err := s.variantRepo.LockBySKUTx(ctx, tx, sku)
		if err != nil {
			logger.Error("[DispatchReplacement] lock variant", zap.String("sku", sku), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if variant == nil {
			missing = append(missing, fmt.Sprintf("SKU %s not found", sku))
			continue
		}
		variants[sku] = variant
		if variant.StockQuantity < demand[sku] {
			short = append(short, fmt.Sprintf("SKU %s: need %d, have %d", sku, demand[sku], variant.StockQuantity))
		}
	}
	if len(missing) > 0 {
		return nil, errors.SetCustomErrorWithDetails(constant.ErrMissingVariant, missing)
	}
	if len(short) > 0 {
		return nil, errors.SetCustomErrorWithDetails(constant.ErrInsufficientStock, short)
	}

	// Mutation pass: deductions, status change and courier update all commit
	// or roll back together. The cached quantity is advanced after each line
	// so repeated SKUs chain previous/new correctly in the ledger.
	for _, item := range items {
		variant := variants[item.SKU]
		if err := s.variantRepo.ApplyStockDeltaTx(ctx, tx, variant.ID, -item.Quantity); err != nil {
			logger.Error("[DispatchReplacement] deduct stock", zap.String("sku", item.SKU), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		itemOrderID := orderID
		if _, err := s.variantRepo.InsertMovementTx(ctx, tx, &model.StockMovement{
			ProductVariantID: variant.ID,
			Type:             constant.MovementOutward,
			Quantity:         item.Quantity,
			PreviousQuantity: variant.StockQuantity,
			NewQuantity:      variant.StockQuantity - item.Quantity,
			Reason:           fmt.Sprintf("Replacement for order %s", order.OrderNumber),
			OrderID:          &itemOrderID,
			CreatedBy:        actorID,
			CreatedAt:        time.Now(),
		}); err != nil {
			logger.Error("[DispatchReplacement] insert movement", zap.String("sku", item.SKU), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		variant.StockQuantity -= item.Quantity
	}

	if err := s.dispatchTx(ctx, tx, order, req, fmt.Sprintf("Replacement dispatched via %s", req.CourierType), actorID); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[DispatchReplacement] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishStatusChanged(order, "replacement dispatched", actorID)

	return order, nil
}

func (s *orderAppImpl) BulkUpdateStatuses(ctx context.Context, actorID uint64, req *model.BulkStatusRequest) (*model.BulkStatusResult, error) {
	result := &model.BulkStatusResult{
		Errors:        make([]model.BulkStatusError, 0),
		UpdatedOrders: make([]model.OrderEntity, 0, len(req.Updates)),
	}

	// Each row runs in its own transaction: one bad row never aborts or rolls
	// back the others.
	for _, update := range req.Updates {
		order, err := s.applyBulkUpdate(ctx, actorID, &update)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, model.BulkStatusError{
				OrderNumber: update.OrderNumber,
				Message:     err.Error(),
			})
			continue
		}
		result.Successful++
		result.UpdatedOrders = append(result.UpdatedOrders, *order)
	}

	return result, nil
}

func (s *orderAppImpl) applyBulkUpdate(ctx context.Context, actorID uint64, update *model.BulkStatusUpdate) (*model.OrderEntity, error) {
	if !constant.ValidOrderStatus(update.Status) {
		return nil, errors.SetCustomError(constant.ErrInvalidRequest)
	}

	existing, err := s.orderRepo.GetByNumber(ctx, update.OrderNumber)
	if err != nil {
		logger.Error("[applyBulkUpdate] get order", zap.String("order_number", update.OrderNumber), zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if existing == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	tx, err := s.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[applyBulkUpdate] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = s.txRepo.RollbackTx(tx)
		}
	}()

	order, err := s.orderRepo.LockByIDTx(ctx, tx, existing.ID)
	if err != nil {
		logger.Error("[applyBulkUpdate] lock order", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if order == nil {
		return nil, errors.SetCustomError(constant.ErrOrderNotFound)
	}

	if update.AWBNumber != "" && (order.AWBNumber == nil || *order.AWBNumber != update.AWBNumber) {
		if err := s.orderRepo.UpdateAWBTx(ctx, tx, order.ID, update.AWBNumber); err != nil {
			logger.Error("[applyBulkUpdate] update awb", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		awb := update.AWBNumber
		order.AWBNumber = &awb
	}

	if err := s.setStatusTx(ctx, tx, order, update.Status, update.Comment, actorID); err != nil {
		return nil, err
	}

	if err := s.txRepo.CommitTx(tx); err != nil {
		logger.Error("[applyBulkUpdate] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	s.publishStatusChanged(order, update.Comment, actorID)

	return order, nil
}

func (s *orderAppImpl) publishStatusChanged(order *model.OrderEntity, comment string, actorID uint64) {
	if s.publisher == nil {
		return
	}
	msg := rabbitmq.OrderStatusEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		Comment:     comment,
		ChangedBy:   actorID,
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.PublishOrderStatusChanged(msg); err != nil {
		logger.Error("[publishStatusChanged] publish", zap.String("error", err.Error()))
	}
}
