package order_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	apporder "github.com/muhammadheryan/warehouse-ops/application/order"
	"github.com/muhammadheryan/warehouse-ops/cmd/config"
	"github.com/muhammadheryan/warehouse-ops/constant"
	deliverymocks "github.com/muhammadheryan/warehouse-ops/mocks/repository/delivery"
	ordermocks "github.com/muhammadheryan/warehouse-ops/mocks/repository/order"
	txmocks "github.com/muhammadheryan/warehouse-ops/mocks/repository/tx"
	variantmocks "github.com/muhammadheryan/warehouse-ops/mocks/repository/variant"
	"github.com/muhammadheryan/warehouse-ops/model"
	cerr "github.com/muhammadheryan/warehouse-ops/utils/errors"
	"github.com/stretchr/testify/mock"
)

// Note: order.go checks if publisher is nil before publishing, so tests pass
// a nil publisher without panicking.

func TestOrderApp_CreateOrder(t *testing.T) {
	type fields struct {
		config       *config.Config
		txRepo       *txmocks.TxRepository
		orderRepo    *ordermocks.OrderRepository
		variantRepo  *variantmocks.VariantRepository
		deliveryRepo *deliverymocks.DeliveryRepository
	}
	type args struct {
		ctx     context.Context
		actorID uint64
		req     *model.CreateOrderRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: create cod order with single item",
			fields: fields{
				config: &config.Config{
					Order: config.OrderConfig{NumberPrefix: "ORD"},
				},
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 1,
				req: &model.CreateOrderRequest{
					PaymentMethod:   constant.PaymentMethodCOD,
					CustomerName:    "Asha",
					CustomerPhone:   "9876543210",
					ShippingAddress: "12 MG Road",
					Items: []model.OrderItemRequest{
						{SKU: "TS-RED-M", Quantity: 2, Price: 499},
					},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("NextOrderSeqTx", mock.Anything, tx, mock.AnythingOfType("int")).Return(int64(1), nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(o *model.OrderEntity) bool {
					return strings.HasPrefix(o.OrderNumber, "ORD-") &&
						strings.HasSuffix(o.OrderNumber, "-00001") &&
						o.Status == constant.OrderStatusPending &&
						o.PaymentStatus == constant.PaymentStatusPending &&
						o.TotalAmount == 998
				})).Return(uint64(1), nil).Once()

				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(1), []model.OrderItemRequest{
					{SKU: "TS-RED-M", Quantity: 2, Price: 499},
				}).Return(nil).Once()

				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.OrderStatusHistory) bool {
					return h.OrderID == 1 && h.Status == constant.OrderStatusPending && h.ChangedBy == 1
				})).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: prepaid order starts paid",
			fields: fields{
				config: &config.Config{
					Order: config.OrderConfig{NumberPrefix: "ORD"},
				},
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 1,
				req: &model.CreateOrderRequest{
					PaymentMethod:   constant.PaymentMethodPrepaid,
					CustomerName:    "Asha",
					CustomerPhone:   "9876543210",
					ShippingAddress: "12 MG Road",
					Items: []model.OrderItemRequest{
						{SKU: "TS-BLU-L", Quantity: 1, Price: 599},
					},
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("NextOrderSeqTx", mock.Anything, tx, mock.AnythingOfType("int")).Return(int64(2), nil).Once()

				f.orderRepo.On("InsertOrderTx", mock.Anything, tx, mock.MatchedBy(func(o *model.OrderEntity) bool {
					return o.PaymentStatus == constant.PaymentStatusPaid
				})).Return(uint64(2), nil).Once()

				f.orderRepo.On("InsertOrderItemsTx", mock.Anything, tx, uint64(2), mock.Anything).Return(nil).Once()
				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: empty items",
			fields: fields{
				config:       &config.Config{},
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 1,
				req: &model.CreateOrderRequest{
					PaymentMethod: constant.PaymentMethodCOD,
					Items:         []model.OrderItemRequest{},
				},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: BeginTx returns error",
			fields: fields{
				config:       &config.Config{},
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 1,
				req: &model.CreateOrderRequest{
					PaymentMethod: constant.PaymentMethodCOD,
					Items: []model.OrderItemRequest{
						{SKU: "TS-RED-M", Quantity: 1, Price: 499},
					},
				},
			},
			mockCall: func(f fields) {
				f.txRepo.On("BeginTx", mock.Anything).Return(nil, errors.New("tx error")).Once()
			},
			wantErr: true,
			errCode: constant.ErrInternal,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(tt.fields.config, tt.fields.txRepo, tt.fields.orderRepo, tt.fields.variantRepo, tt.fields.deliveryRepo, nil)

			got, err := app.CreateOrder(tt.args.ctx, tt.args.actorID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateOrder() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Order == nil {
				t.Fatal("CreateOrder() returned nil order")
			}
			if got.Order.Status != constant.OrderStatusPending {
				t.Fatalf("CreateOrder() status = %s, want %s", got.Order.Status, constant.OrderStatusPending)
			}
		})
	}
}

func TestOrderApp_SetStatus(t *testing.T) {
	type fields struct {
		txRepo       *txmocks.TxRepository
		orderRepo    *ordermocks.OrderRepository
		variantRepo  *variantmocks.VariantRepository
		deliveryRepo *deliverymocks.DeliveryRepository
	}
	type args struct {
		ctx     context.Context
		actorID uint64
		orderID uint64
		req     *model.StatusUpdateRequest
	}
	tests := []struct {
		name       string
		fields     fields
		args       args
		mockCall   func(f fields)
		wantStatus constant.OrderStatus
		wantErr    bool
		errCode    constant.ErrorType
	}{
		{
			name: "success: pending to dispatched",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 3,
				orderID: 1,
				req:     &model.StatusUpdateRequest{Status: constant.OrderStatusDispatched, Comment: "handover to courier"},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusPending,
				}, nil).Once()

				f.orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDispatched).Return(nil).Once()

				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.OrderStatusHistory) bool {
					return h.OrderID == 1 && h.Status == constant.OrderStatusDispatched && h.Comment == "handover to courier" && h.ChangedBy == 3
				})).Return(nil).Once()
			},
			wantStatus: constant.OrderStatusDispatched,
			wantErr:    false,
		},
		{
			name: "success: same status writes another history row",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 3,
				orderID: 1,
				req:     &model.StatusUpdateRequest{Status: constant.OrderStatusDispatched, Comment: "courier scan repeated"},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusDispatched,
				}, nil).Once()

				f.orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDispatched).Return(nil).Once()

				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.OrderStatusHistory) bool {
					return h.Status == constant.OrderStatusDispatched && h.Comment == "courier scan repeated"
				})).Return(nil).Once()
			},
			wantStatus: constant.OrderStatusDispatched,
			wantErr:    false,
		},
		{
			name: "error: invalid transition pending to delivered",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 3,
				orderID: 1,
				req:     &model.StatusUpdateRequest{Status: constant.OrderStatusDelivered},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusPending,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidTransition,
		},
		{
			name: "error: unknown status value",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 3,
				orderID: 1,
				req:     &model.StatusUpdateRequest{Status: "shipped"},
			},
			mockCall: nil,
			wantErr:  true,
			errCode:  constant.ErrInvalidRequest,
		},
		{
			name: "error: order not found",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 3,
				orderID: 999,
				req:     &model.StatusUpdateRequest{Status: constant.OrderStatusCancelled},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(999)).Return(nil, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(&config.Config{}, tt.fields.txRepo, tt.fields.orderRepo, tt.fields.variantRepo, tt.fields.deliveryRepo, nil)

			got, err := app.SetStatus(tt.args.ctx, tt.args.actorID, tt.args.orderID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetStatus() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Status != tt.wantStatus {
				t.Fatalf("SetStatus() status = %s, want %s", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestOrderApp_Dispatch(t *testing.T) {
	type fields struct {
		txRepo       *txmocks.TxRepository
		orderRepo    *ordermocks.OrderRepository
		variantRepo  *variantmocks.VariantRepository
		deliveryRepo *deliverymocks.DeliveryRepository
	}
	type args struct {
		ctx     context.Context
		actorID uint64
		orderID uint64
		req     *model.DispatchRequest
	}
	tests := []struct {
		name     string
		fields   fields
		args     args
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: third party dispatch leaves stock untouched",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req: &model.DispatchRequest{
					CourierPartnerID: 4,
					CourierType:      constant.CourierTypeThirdParty,
					AWBNumber:        "AWB-100",
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusPending,
				}, nil).Once()

				f.orderRepo.On("UpdateCourierTx", mock.Anything, tx, uint64(1), mock.AnythingOfType("*model.DispatchRequest"), mock.AnythingOfType("time.Time")).Return(nil).Once()
				f.orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDispatched).Return(nil).Once()
				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.OrderStatusHistory) bool {
					return h.Status == constant.OrderStatusDispatched
				})).Return(nil).Once()
				// no variantRepo expectations: first dispatch must not move stock
			},
			wantErr: false,
		},
		{
			name: "success: in-house dispatch creates delivery record",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req: &model.DispatchRequest{
					CourierPartnerID: 9,
					CourierType:      constant.CourierTypeInHouse,
					AssignedTo:       7,
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusPending,
				}, nil).Once()

				f.orderRepo.On("UpdateCourierTx", mock.Anything, tx, uint64(1), mock.AnythingOfType("*model.DispatchRequest"), mock.AnythingOfType("time.Time")).Return(nil).Once()
				f.orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDispatched).Return(nil).Once()
				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()

				f.deliveryRepo.On("InsertTx", mock.Anything, tx, mock.MatchedBy(func(d *model.InternalDelivery) bool {
					return d.OrderID == 1 && d.AssignedTo == 7 && d.Status == constant.DeliveryStatusAssigned
				})).Return(uint64(5), nil).Once()

				f.deliveryRepo.On("InsertEventTx", mock.Anything, tx, mock.MatchedBy(func(e *model.DeliveryEvent) bool {
					return e.DeliveryID == 5 && e.Status == constant.DeliveryStatusAssigned
				})).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: dispatch from delivered is rejected by the graph",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req: &model.DispatchRequest{
					CourierPartnerID: 4,
					CourierType:      constant.CourierTypeThirdParty,
				},
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusCancelled,
				}, nil).Once()

				f.orderRepo.On("UpdateCourierTx", mock.Anything, tx, uint64(1), mock.AnythingOfType("*model.DispatchRequest"), mock.AnythingOfType("time.Time")).Return(nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(&config.Config{}, tt.fields.txRepo, tt.fields.orderRepo, tt.fields.variantRepo, tt.fields.deliveryRepo, nil)

			got, err := app.Dispatch(tt.args.ctx, tt.args.actorID, tt.args.orderID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dispatch() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				return
			}

			if got.Status != constant.OrderStatusDispatched {
				t.Fatalf("Dispatch() status = %s, want %s", got.Status, constant.OrderStatusDispatched)
			}
			if got.DispatchDate == nil {
				t.Fatal("Dispatch() dispatch date should be set")
			}
		})
	}
}

func TestOrderApp_DispatchReplacement(t *testing.T) {
	type fields struct {
		txRepo       *txmocks.TxRepository
		orderRepo    *ordermocks.OrderRepository
		variantRepo  *variantmocks.VariantRepository
		deliveryRepo *deliverymocks.DeliveryRepository
	}
	type args struct {
		ctx     context.Context
		actorID uint64
		orderID uint64
		req     *model.DispatchRequest
	}

	deliveredOrder := func() *model.OrderEntity {
		return &model.OrderEntity{
			ID:          1,
			OrderNumber: "ORD-2026-00001",
			Status:      constant.OrderStatusDelivered,
		}
	}
	dispatchReq := &model.DispatchRequest{
		CourierPartnerID: 4,
		CourierType:      constant.CourierTypeThirdParty,
		AWBNumber:        "AWB-200",
	}

	tests := []struct {
		name        string
		fields      fields
		args        args
		mockCall    func(f fields)
		wantErr     bool
		errCode     constant.ErrorType
		wantDetails int
	}{
		{
			name: "success: deducts every item and dispatches atomically",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(deliveredOrder(), nil).Once()

				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{OrderID: 1, SKU: "TS-RED-M", Quantity: 2, Price: 499},
				}, nil).Once()

				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "TS-RED-M").Return(&model.ProductVariant{
					ID:            7,
					SKU:           "TS-RED-M",
					StockQuantity: 5,
				}, nil).Once()

				f.variantRepo.On("ApplyStockDeltaTx", mock.Anything, tx, uint64(7), int64(-2)).Return(nil).Once()

				f.variantRepo.On("InsertMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.ProductVariantID == 7 &&
						m.Type == constant.MovementOutward &&
						m.Quantity == 2 &&
						m.PreviousQuantity == 5 &&
						m.NewQuantity == 3 &&
						m.OrderID != nil && *m.OrderID == 1
				})).Return(uint64(11), nil).Once()

				f.orderRepo.On("UpdateCourierTx", mock.Anything, tx, uint64(1), dispatchReq, mock.AnythingOfType("time.Time")).Return(nil).Once()
				f.orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDispatched).Return(nil).Once()
				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.OrderStatusHistory) bool {
					return h.Status == constant.OrderStatusDispatched && strings.Contains(h.Comment, "Replacement")
				})).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "success: repeated sku chains ledger quantities",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(deliveredOrder(), nil).Once()

				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{OrderID: 1, SKU: "TS-RED-M", Quantity: 2, Price: 499},
					{OrderID: 1, SKU: "TS-RED-M", Quantity: 1, Price: 499},
				}, nil).Once()

				// the variant row is locked once for both lines
				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "TS-RED-M").Return(&model.ProductVariant{
					ID:            7,
					SKU:           "TS-RED-M",
					StockQuantity: 5,
				}, nil).Once()

				f.variantRepo.On("ApplyStockDeltaTx", mock.Anything, tx, uint64(7), int64(-2)).Return(nil).Once()
				f.variantRepo.On("ApplyStockDeltaTx", mock.Anything, tx, uint64(7), int64(-1)).Return(nil).Once()

				// ledger rows must chain: 5 -> 3, then 3 -> 2
				f.variantRepo.On("InsertMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.Quantity == 2 && m.PreviousQuantity == 5 && m.NewQuantity == 3
				})).Return(uint64(21), nil).Once()
				f.variantRepo.On("InsertMovementTx", mock.Anything, tx, mock.MatchedBy(func(m *model.StockMovement) bool {
					return m.Quantity == 1 && m.PreviousQuantity == 3 && m.NewQuantity == 2
				})).Return(uint64(22), nil).Once()

				f.orderRepo.On("UpdateCourierTx", mock.Anything, tx, uint64(1), dispatchReq, mock.AnythingOfType("time.Time")).Return(nil).Once()
				f.orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDispatched).Return(nil).Once()
				f.orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
			},
			wantErr: false,
		},
		{
			name: "error: combined demand across repeated sku exceeds stock",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(deliveredOrder(), nil).Once()

				// each line fits on its own but the summed demand (6) exceeds
				// stock (5); validation must reject before any mutation
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{OrderID: 1, SKU: "TS-RED-M", Quantity: 3, Price: 499},
					{OrderID: 1, SKU: "TS-RED-M", Quantity: 3, Price: 499},
				}, nil).Once()

				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "TS-RED-M").Return(&model.ProductVariant{
					ID:            7,
					SKU:           "TS-RED-M",
					StockQuantity: 5,
				}, nil).Once()
			},
			wantErr:     true,
			errCode:     constant.ErrInsufficientStock,
			wantDetails: 1,
		},
		{
			name: "error: order not delivered",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
					ID:          1,
					OrderNumber: "ORD-2026-00001",
					Status:      constant.OrderStatusDispatched,
				}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderNotDelivered,
		},
		{
			name: "error: order has no items",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(deliveredOrder(), nil).Once()
				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderHasNoItems,
		},
		{
			name: "error: insufficient stock rolls back without mutation",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(deliveredOrder(), nil).Once()

				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{OrderID: 1, SKU: "TS-RED-M", Quantity: 2, Price: 499},
					{OrderID: 1, SKU: "TS-BLU-L", Quantity: 3, Price: 599},
				}, nil).Once()

				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "TS-RED-M").Return(&model.ProductVariant{
					ID: 7, SKU: "TS-RED-M", StockQuantity: 1,
				}, nil).Once()
				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "TS-BLU-L").Return(&model.ProductVariant{
					ID: 8, SKU: "TS-BLU-L", StockQuantity: 0,
				}, nil).Once()
				// no ApplyStockDeltaTx or status updates: validation fails first
			},
			wantErr:     true,
			errCode:     constant.ErrInsufficientStock,
			wantDetails: 2,
		},
		{
			name: "error: missing variant reported before insufficient stock",
			fields: fields{
				txRepo:       txmocks.NewTxRepository(t),
				orderRepo:    ordermocks.NewOrderRepository(t),
				variantRepo:  variantmocks.NewVariantRepository(t),
				deliveryRepo: deliverymocks.NewDeliveryRepository(t),
			},
			args: args{
				ctx:     context.Background(),
				actorID: 2,
				orderID: 1,
				req:     dispatchReq,
			},
			mockCall: func(f fields) {
				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()

				f.orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(deliveredOrder(), nil).Once()

				f.orderRepo.On("GetItemsTx", mock.Anything, tx, uint64(1)).Return([]model.OrderItem{
					{OrderID: 1, SKU: "GONE-SKU", Quantity: 1, Price: 499},
					{OrderID: 1, SKU: "TS-BLU-L", Quantity: 3, Price: 599},
				}, nil).Once()

				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "GONE-SKU").Return(nil, nil).Once()
				f.variantRepo.On("LockBySKUTx", mock.Anything, tx, "TS-BLU-L").Return(&model.ProductVariant{
					ID: 8, SKU: "TS-BLU-L", StockQuantity: 0,
				}, nil).Once()
			},
			wantErr:     true,
			errCode:     constant.ErrMissingVariant,
			wantDetails: 1,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if tt.mockCall != nil {
				tt.mockCall(tt.fields)
			}
			app := apporder.NewOrderApp(&config.Config{}, tt.fields.txRepo, tt.fields.orderRepo, tt.fields.variantRepo, tt.fields.deliveryRepo, nil)

			got, err := app.DispatchReplacement(tt.args.ctx, tt.args.actorID, tt.args.orderID, tt.args.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DispatchReplacement() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				var ce cerr.CustomError
				if !errors.As(err, &ce) {
					t.Fatalf("error type = %T, want CustomError", err)
				}
				if ce.ErrorCode() != constant.ErrorTypeCode[tt.errCode] {
					t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[tt.errCode])
				}
				if len(ce.Details()) != tt.wantDetails {
					t.Fatalf("details = %v, want %d entries", ce.Details(), tt.wantDetails)
				}
				return
			}

			if got.Status != constant.OrderStatusDispatched {
				t.Fatalf("DispatchReplacement() status = %s, want %s", got.Status, constant.OrderStatusDispatched)
			}
		})
	}
}

func TestOrderApp_BulkUpdateStatuses(t *testing.T) {
	txRepo := txmocks.NewTxRepository(t)
	orderRepo := ordermocks.NewOrderRepository(t)
	variantRepo := variantmocks.NewVariantRepository(t)
	deliveryRepo := deliverymocks.NewDeliveryRepository(t)

	tx := &sqlx.Tx{}
	txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Twice()
	txRepo.On("CommitTx", tx).Return(nil).Once()
	txRepo.On("RollbackTx", tx).Return(nil).Once()

	// row 1: valid transition plus a new AWB
	orderRepo.On("GetByNumber", mock.Anything, "ORD-2026-00001").Return(&model.OrderEntity{
		ID:          1,
		OrderNumber: "ORD-2026-00001",
		Status:      constant.OrderStatusDispatched,
	}, nil).Once()
	orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(1)).Return(&model.OrderEntity{
		ID:          1,
		OrderNumber: "ORD-2026-00001",
		Status:      constant.OrderStatusDispatched,
	}, nil).Once()
	orderRepo.On("UpdateAWBTx", mock.Anything, tx, uint64(1), "AWB-301").Return(nil).Once()
	orderRepo.On("UpdateStatusTx", mock.Anything, tx, uint64(1), constant.OrderStatusDelivered).Return(nil).Once()
	orderRepo.On("InsertStatusHistoryTx", mock.Anything, tx, mock.MatchedBy(func(h *model.OrderStatusHistory) bool {
		return h.OrderID == 1 && h.Status == constant.OrderStatusDelivered
	})).Return(nil).Once()

	// row 2: unknown order number
	orderRepo.On("GetByNumber", mock.Anything, "ORD-2026-99999").Return(nil, nil).Once()

	// row 3: refunded is terminal, transition must fail and roll back
	orderRepo.On("GetByNumber", mock.Anything, "ORD-2026-00003").Return(&model.OrderEntity{
		ID:          3,
		OrderNumber: "ORD-2026-00003",
		Status:      constant.OrderStatusRefunded,
	}, nil).Once()
	orderRepo.On("LockByIDTx", mock.Anything, tx, uint64(3)).Return(&model.OrderEntity{
		ID:          3,
		OrderNumber: "ORD-2026-00003",
		Status:      constant.OrderStatusRefunded,
	}, nil).Once()

	app := apporder.NewOrderApp(&config.Config{}, txRepo, orderRepo, variantRepo, deliveryRepo, nil)

	result, err := app.BulkUpdateStatuses(context.Background(), 2, &model.BulkStatusRequest{
		Updates: []model.BulkStatusUpdate{
			{OrderNumber: "ORD-2026-00001", AWBNumber: "AWB-301", Status: constant.OrderStatusDelivered},
			{OrderNumber: "ORD-2026-99999", Status: constant.OrderStatusDelivered},
			{OrderNumber: "ORD-2026-00003", Status: constant.OrderStatusDelivered},
		},
	})
	if err != nil {
		t.Fatalf("BulkUpdateStatuses() error = %v", err)
	}

	if result.Successful != 1 {
		t.Fatalf("successful = %d, want 1", result.Successful)
	}
	if result.Failed != 2 {
		t.Fatalf("failed = %d, want 2", result.Failed)
	}
	if len(result.Errors) != 2 {
		t.Fatalf("errors = %d, want 2", len(result.Errors))
	}
	if result.Errors[0].OrderNumber != "ORD-2026-99999" {
		t.Fatalf("first error order = %s, want ORD-2026-99999", result.Errors[0].OrderNumber)
	}
	if result.Errors[1].OrderNumber != "ORD-2026-00003" {
		t.Fatalf("second error order = %s, want ORD-2026-00003", result.Errors[1].OrderNumber)
	}
	if len(result.UpdatedOrders) != 1 || result.UpdatedOrders[0].Status != constant.OrderStatusDelivered {
		t.Fatalf("updated orders = %+v, want one delivered order", result.UpdatedOrders)
	}
	if result.UpdatedOrders[0].AWBNumber == nil || *result.UpdatedOrders[0].AWBNumber != "AWB-301" {
		t.Fatal("updated order should carry the new AWB number")
	}
}
