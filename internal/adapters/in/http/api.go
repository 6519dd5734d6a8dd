package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Wire types of openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type NewOrderItem struct {
	ItemId      uuid.UUID `json:"item_id"`
	Quantity    int       `json:"quantity"`
	Preferences *string   `json:"preferences,omitempty"`
}

type NewOrder struct {
	RestaurantId uuid.UUID      `json:"restaurant_id"`
	OrderType    string         `json:"order_type"`
	Items        []NewOrderItem `json:"items"`
}

type OrderItem struct {
	ItemId      uuid.UUID `json:"item_id"`
	Name        string    `json:"name,omitempty"`
	Quantity    int       `json:"quantity"`
	Preferences string    `json:"preferences"`
	UnitPrice   string    `json:"unit_price"`
}

type Order struct {
	Id             uuid.UUID   `json:"id"`
	CustomerId     uuid.UUID   `json:"customer_id"`
	RestaurantId   uuid.UUID   `json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name,omitempty"`
	TotalPrice     string      `json:"total_price"`
	Status         string      `json:"status"`
	OrderType      string      `json:"order_type"`
	OrderTime      time.Time   `json:"order_time"`
	Items          []OrderItem `json:"items"`
}

type StatusChange struct {
	Status   string `json:"status"`
	Override *bool  `json:"override,omitempty"`
}

type NewDelivery struct {
	OrderId          uuid.UUID `json:"order_id"`
	DeliveryPersonId uuid.UUID `json:"delivery_person_id"`
}

type CourierChange struct {
	DeliveryPersonId uuid.UUID `json:"delivery_person_id"`
}

type PositionReport struct {
	Status     string     `json:"status"`
	Latitude   *float64   `json:"latitude,omitempty"`
	Longitude  *float64   `json:"longitude,omitempty"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

type Delivery struct {
	Id               uuid.UUID `json:"id"`
	OrderId          uuid.UUID `json:"order_id"`
	DeliveryPersonId uuid.UUID `json:"delivery_person_id"`
	Status           string    `json:"status"`
	Latitude         *float64  `json:"latitude,omitempty"`
	Longitude        *float64  `json:"longitude,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type DeliveryDetails struct {
	Delivery
	CourierName    string      `json:"courier_name"`
	CourierPhone   string      `json:"courier_phone"`
	OrderStatus    string      `json:"order_status"`
	TotalPrice     string      `json:"total_price"`
	RestaurantId   uuid.UUID   `json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name"`
	CustomerId     uuid.UUID   `json:"customer_id"`
	CustomerName   string      `json:"customer_name"`
	CustomerPhone  string      `json:"customer_phone"`
	Items          []OrderItem `json:"items"`
}

type Courier struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email,omitempty"`
	Phone string    `json:"phone,omitempty"`
}

type Tracking struct {
	OrderId      uuid.UUID `json:"order_id"`
	OrderStatus  string    `json:"order_status"`
	OrderType    string    `json:"order_type"`
	RestaurantId uuid.UUID `json:"restaurant_id"`
	Delivery     *Delivery `json:"delivery,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders)
	GetOrders(ctx echo.Context) error
	// (GET /api/v1/orders/ready)
	GetReadyOrders(ctx echo.Context) error
	// (PATCH /api/v1/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderId uuid.UUID) error
	// (GET /api/v1/orders/{orderId}/tracking)
	GetOrderTracking(ctx echo.Context, orderId uuid.UUID) error
	// (POST /api/v1/deliveries)
	AssignDelivery(ctx echo.Context) error
	// (GET /api/v1/deliveries)
	GetDeliveries(ctx echo.Context) error
	// (PUT /api/v1/deliveries/{deliveryId}/courier)
	ReassignDelivery(ctx echo.Context, deliveryId uuid.UUID) error
	// (POST /api/v1/deliveries/{deliveryId}/position)
	ReportDeliveryPosition(ctx echo.Context, deliveryId uuid.UUID) error
	// (GET /api/v1/couriers/available)
	GetAvailableCouriers(ctx echo.Context) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindUUIDPathParam(ctx echo.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.UUID{}, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrders(ctx echo.Context) error {
	return w.Handler.GetOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetReadyOrders(ctx echo.Context) error {
	return w.Handler.GetReadyOrders(ctx)
}

func (w *ServerInterfaceWrapper) UpdateOrderStatus(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.UpdateOrderStatus(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetOrderTracking(ctx echo.Context) error {
	orderId, err := bindUUIDPathParam(ctx, "orderId")
	if err != nil {
		return err
	}
	return w.Handler.GetOrderTracking(ctx, orderId)
}

func (w *ServerInterfaceWrapper) AssignDelivery(ctx echo.Context) error {
	return w.Handler.AssignDelivery(ctx)
}

func (w *ServerInterfaceWrapper) GetDeliveries(ctx echo.Context) error {
	return w.Handler.GetDeliveries(ctx)
}

func (w *ServerInterfaceWrapper) ReassignDelivery(ctx echo.Context) error {
	deliveryId, err := bindUUIDPathParam(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.ReassignDelivery(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) ReportDeliveryPosition(ctx echo.Context) error {
	deliveryId, err := bindUUIDPathParam(ctx, "deliveryId")
	if err != nil {
		return err
	}
	return w.Handler.ReportDeliveryPosition(ctx, deliveryId)
}

func (w *ServerInterfaceWrapper) GetAvailableCouriers(ctx echo.Context) error {
	return w.Handler.GetAvailableCouriers(ctx)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts every operation under baseURL. Paths are relative to the
// /api/v1 prefix of openapi.yaml.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders", w.GetOrders)
	router.GET(baseURL+"/orders/ready", w.GetReadyOrders)
	router.PATCH(baseURL+"/orders/:orderId/status", w.UpdateOrderStatus)
	router.GET(baseURL+"/orders/:orderId/tracking", w.GetOrderTracking)
	router.POST(baseURL+"/deliveries", w.AssignDelivery)
	router.GET(baseURL+"/deliveries", w.GetDeliveries)
	router.PUT(baseURL+"/deliveries/:deliveryId/courier", w.ReassignDelivery)
	router.POST(baseURL+"/deliveries/:deliveryId/position", w.ReportDeliveryPosition)
	router.GET(baseURL+"/couriers/available", w.GetAvailableCouriers)
}
