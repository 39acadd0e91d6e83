package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	deliveryapp "github.com/muhammadheryan/warehouse-ops/application/delivery"
	orderapp "github.com/muhammadheryan/warehouse-ops/application/order"
	stockapp "github.com/muhammadheryan/warehouse-ops/application/stock"
	userapp "github.com/muhammadheryan/warehouse-ops/application/user"
	"github.com/muhammadheryan/warehouse-ops/constant"
	"github.com/muhammadheryan/warehouse-ops/model"
	utilsContext "github.com/muhammadheryan/warehouse-ops/utils/context"
	"github.com/muhammadheryan/warehouse-ops/utils/errors"
	validatorx "github.com/muhammadheryan/warehouse-ops/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	UserApp     userapp.UserApp
	OrderApp    orderapp.OrderApp
	StockApp    stockapp.StockApp
	DeliveryApp deliveryapp.DeliveryApp
}

func NewTransport(userApp userapp.UserApp, orderApp orderapp.OrderApp, stockApp stockapp.StockApp, deliveryApp deliveryapp.DeliveryApp, internalAPIKey string) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:     userApp,
		OrderApp:    orderApp,
		StockApp:    stockApp,
		DeliveryApp: deliveryApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)

	// Orders
	router.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/bulk-status", rh.BulkUpdateStatuses).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}/status", rh.SetOrderStatus).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}/dispatch", rh.DispatchOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders/{id}/replacement", rh.DispatchReplacement).Methods(http.MethodPost)

	// Stock ledger
	router.HandleFunc("/stock-movements", rh.CreateStockMovement).Methods(http.MethodPost)
	router.HandleFunc("/stock-movements", rh.ListStockMovements).Methods(http.MethodGet)
	router.HandleFunc("/stock-movements/batch-receive", rh.BatchReceive).Methods(http.MethodPost)

	// Internal deliveries
	router.HandleFunc("/deliveries/{id}", rh.GetDelivery).Methods(http.MethodGet)
	router.HandleFunc("/deliveries/{id}/collect-payment", rh.CollectPayment).Methods(http.MethodPost)
	router.HandleFunc("/deliveries/{id}/status", rh.UpdateDeliveryStatus).Methods(http.MethodPost)

	// Internal API for the courier-updates consumer
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/orders/bulk-status", rh.InternalBulkUpdateStatuses).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(userApp))

	return router
}

// Login handler
// @Summary Staff login
// @Description Login with email and password and receive a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateOrder handler
// @Summary Create order
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.CreateOrderRequest true "Create Order Request"
// @Success 200 {object} model.OrderResponse
// @Router /orders [post]
func (s *RestHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.OrderApp.CreateOrder(ctx, actorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := &model.OrderFilter{
		Status:  constant.OrderStatus(r.URL.Query().Get("status")),
		Page:    queryInt(r, "page", 1),
		PerPage: queryInt(r, "per_page", 20),
	}

	res, err := s.OrderApp.ListOrders(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := pathID(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.GetOrder(ctx, orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SetOrderStatus handler
// @Summary Update order status
// @Description Apply a validated status transition and append a history row
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.StatusUpdateRequest true "Status Update Request"
// @Success 200 {object} model.OrderEntity
// @Router /orders/{id}/status [post]
func (s *RestHandler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orderID, ok := pathID(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.StatusUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.OrderApp.SetStatus(ctx, actorID, orderID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) DispatchOrder(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, false)
}

// DispatchReplacement handler
// @Summary Dispatch a replacement shipment
// @Description Deducts stock for every order item and re-dispatches a delivered order
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param request body model.DispatchRequest true "Dispatch Request"
// @Success 200 {object} model.OrderEntity
// @Failure 400 {object} errors.CustomError
// @Router /orders/{id}/replacement [post]
func (s *RestHandler) DispatchReplacement(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, r, true)
}

func (s *RestHandler) dispatch(w http.ResponseWriter, r *http.Request, replacement bool) {
	ctx := r.Context()

	orderID, ok := pathID(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	var (
		res *model.OrderEntity
		err error
	)
	if replacement {
		res, err = s.OrderApp.DispatchReplacement(ctx, actorID, orderID, &req)
	} else {
		res, err = s.OrderApp.Dispatch(ctx, actorID, orderID, &req)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// BulkUpdateStatuses handler
// @Summary Bulk order status update
// @Description Apply many independent status transitions; failures are isolated per row
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body model.BulkStatusRequest true "Bulk Status Request"
// @Success 200 {object} model.BulkStatusResult
// @Router /orders/bulk-status [post]
func (s *RestHandler) BulkUpdateStatuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.OrderApp.BulkUpdateStatuses(ctx, actorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// InternalBulkUpdateStatuses accepts courier tracking batches relayed by the
// rabbitmq consumer; the actor is the system account.
func (s *RestHandler) InternalBulkUpdateStatuses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.BulkStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if len(req.Updates) == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.BulkUpdateStatuses(ctx, 0, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreateStockMovement handler
// @Summary Record a stock movement
// @Description Apply an inward/outward/adjustment movement and append a ledger row
// @Tags Stock
// @Accept json
// @Produce json
// @Param request body model.StockMovementRequest true "Stock Movement Request"
// @Success 200 {object} model.StockMovement
// @Router /stock-movements [post]
func (s *RestHandler) CreateStockMovement(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.StockMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.StockApp.RecordMovement(ctx, actorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) ListStockMovements(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	variantID, _ := strconv.ParseUint(r.URL.Query().Get("product_variant_id"), 10, 64)
	filter := &model.MovementFilter{
		ProductVariantID: variantID,
		Page:             queryInt(r, "page", 1),
		PerPage:          queryInt(r, "per_page", 20),
	}

	res, err := s.StockApp.ListMovements(ctx, filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) BatchReceive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.BatchReceiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.StockApp.BatchReceive(ctx, actorID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) GetDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deliveryID, ok := pathID(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.DeliveryApp.GetDelivery(ctx, deliveryID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CollectPayment handler
// @Summary Record a COD collection
// @Tags Deliveries
// @Accept json
// @Produce json
// @Param id path int true "Delivery ID"
// @Param request body model.CollectPaymentRequest true "Collect Payment Request"
// @Success 200 {object} model.InternalDelivery
// @Router /deliveries/{id}/collect-payment [post]
func (s *RestHandler) CollectPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deliveryID, ok := pathID(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.CollectPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.DeliveryApp.CollectPayment(ctx, actorID, deliveryID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func (s *RestHandler) UpdateDeliveryStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	deliveryID, ok := pathID(r)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	var req model.DeliveryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	actorID, _ := utilsContext.GetUserID(ctx)
	res, err := s.DeliveryApp.UpdateStatus(ctx, actorID, deliveryID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func pathID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
