package http

import (
	"context"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	UpdateOrderStatusHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) (*order.Order, error)
	}
	AssignDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.AssignDeliveryCommand) (*delivery.Delivery, error)
	}
	ReassignDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.ReassignDeliveryCommand) (*delivery.Delivery, error)
	}
	ReportDeliveryPositionHandler interface {
		Handle(ctx context.Context, cmd commands.ReportDeliveryPositionCommand) (*delivery.Delivery, error)
	}
	GetOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetOrdersQuery) ([]queries.OrderView, error)
	}
	GetReadyOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetReadyOrdersQuery) ([]queries.OrderView, error)
	}
	GetOrderTrackingHandler interface {
		Handle(ctx context.Context, query queries.GetOrderTrackingQuery) (queries.TrackingView, error)
	}
	GetDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.GetDeliveriesQuery) ([]queries.DeliveryView, error)
	}
	GetAvailableCouriersHandler interface {
		Handle(ctx context.Context, query queries.GetAvailableCouriersQuery) ([]queries.CourierView, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder            CreateOrderHandler
	UpdateOrderStatus      UpdateOrderStatusHandler
	AssignDelivery         AssignDeliveryHandler
	ReassignDelivery       ReassignDeliveryHandler
	ReportDeliveryPosition ReportDeliveryPositionHandler
	GetOrders              GetOrdersHandler
	GetReadyOrders         GetReadyOrdersHandler
	GetOrderTracking       GetOrderTrackingHandler
	GetDeliveries          GetDeliveriesHandler
	GetAvailableCouriers   GetAvailableCouriersHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases. Every operation
// runs as the principal resolved by JWTAuth.
type Server struct {
	handlers Handlers
	metrics  *Metrics
}

// NewServer creates a new HTTP server with the required command and query handlers.
// metrics may be nil.
func NewServer(handlers Handlers, metrics *Metrics) *Server {
	return &Server{handlers: handlers, metrics: metrics}
}

var _ ServerInterface = (*Server)(nil)

func toKernelUUID(id uuid.UUID) kernel.UUID {
	k, _ := kernel.UUIDFromString(id.String())
	return k
}

func bindBody(ctx echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(ctx, dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

// CreateOrder handles POST /api/v1/orders - places an order for the calling customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body NewOrder
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.CreateOrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		requested := commands.CreateOrderItem{MenuItemID: toKernelUUID(item.ItemId), Quantity: item.Quantity}
		if item.Preferences != nil {
			requested.Preferences = *item.Preferences
		}
		items = append(items, requested)
	}

	cmd, err := commands.NewCreateOrderCommand(principal, toKernelUUID(body.RestaurantId), body.OrderType, items)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	s.metrics.OrderCreated()

	return ctx.JSON(http.StatusCreated, orderFromDomain(o))
}

// GetOrders handles GET /api/v1/orders - orders visible to the caller.
func (s *Server) GetOrders(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrdersQuery(principal)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.handlers.GetOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromViews(orders))
}

// GetReadyOrders handles GET /api/v1/orders/ready - delivery orders awaiting a courier.
func (s *Server) GetReadyOrders(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetReadyOrdersQuery(principal)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.handlers.GetReadyOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ordersFromViews(orders))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context, orderId uuid.UUID) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body StatusChange
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	override := body.Override != nil && *body.Override
	cmd, err := commands.NewUpdateOrderStatusCommand(principal, toKernelUUID(orderId), body.Status, override)
	if err != nil {
		return writeError(ctx, err)
	}

	o, err := s.handlers.UpdateOrderStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	s.metrics.OrderStatusChanged(o.Status().String())

	return ctx.JSON(http.StatusOK, orderFromDomain(o))
}

// GetOrderTracking handles GET /api/v1/orders/{orderId}/tracking.
func (s *Server) GetOrderTracking(ctx echo.Context, orderId uuid.UUID) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderTrackingQuery(principal, toKernelUUID(orderId))
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.handlers.GetOrderTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackingFromView(view))
}

// AssignDelivery handles POST /api/v1/deliveries - binds a courier to a ready order.
func (s *Server) AssignDelivery(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body NewDelivery
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAssignDeliveryCommand(principal, toKernelUUID(body.OrderId), toKernelUUID(body.DeliveryPersonId))
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.handlers.AssignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	s.metrics.CourierAssigned("assign")

	return ctx.JSON(http.StatusCreated, deliveryFromDomain(d))
}

// GetDeliveries handles GET /api/v1/deliveries.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetDeliveriesQuery(principal)
	if err != nil {
		return writeError(ctx, err)
	}

	deliveries, err := s.handlers.GetDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]DeliveryDetails, len(deliveries))
	for i, d := range deliveries {
		response[i] = deliveryDetailsFromView(d)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReassignDelivery handles PUT /api/v1/deliveries/{deliveryId}/courier.
func (s *Server) ReassignDelivery(ctx echo.Context, deliveryId uuid.UUID) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body CourierChange
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReassignDeliveryCommand(principal, toKernelUUID(deliveryId), toKernelUUID(body.DeliveryPersonId))
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.handlers.ReassignDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	s.metrics.CourierAssigned("reassign")

	return ctx.JSON(http.StatusOK, deliveryFromDomain(d))
}

// ReportDeliveryPosition handles POST /api/v1/deliveries/{deliveryId}/position.
func (s *Server) ReportDeliveryPosition(ctx echo.Context, deliveryId uuid.UUID) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	var body PositionReport
	if err = bindBody(ctx, &body); err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewReportDeliveryPositionCommand(principal, toKernelUUID(deliveryId), body.Status,
		body.Latitude, body.Longitude, body.RecordedAt)
	if err != nil {
		return writeError(ctx, err)
	}

	d, err := s.handlers.ReportDeliveryPosition.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	s.metrics.PositionReported(d.Status().String())

	return ctx.JSON(http.StatusOK, deliveryFromDomain(d))
}

// GetAvailableCouriers handles GET /api/v1/couriers/available.
func (s *Server) GetAvailableCouriers(ctx echo.Context) error {
	principal, err := principalFrom(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetAvailableCouriersQuery(principal)
	if err != nil {
		return writeError(ctx, err)
	}

	couriers, err := s.handlers.GetAvailableCouriers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]Courier, len(couriers))
	for i, courier := range couriers {
		response[i] = Courier{
			Id:    courier.ID.Bytes(),
			Name:  courier.Name,
			Email: courier.Email,
			Phone: courier.Phone,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}
