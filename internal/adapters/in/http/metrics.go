package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors.
type Metrics struct {
	ordersCreated      prometheus.Counter
	orderStatusChanges *prometheus.CounterVec
	assignments        *prometheus.CounterVec
	positionReports    *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ordersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "food_delivery_orders_created_total",
			Help: "The total number of placed orders",
		}),
		orderStatusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "food_delivery_order_status_changes_total",
			Help: "Order status changes applied by operators, by target status",
		}, []string{"status"}),
		assignments: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "food_delivery_courier_assignments_total",
			Help: "Courier assignments, by kind (assign or reassign)",
		}, []string{"kind"}),
		positionReports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "food_delivery_position_reports_total",
			Help: "Accepted courier reports, by delivery status",
		}, []string{"status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "food_delivery_http_request_duration_seconds",
			Help:    "Time spent serving API requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"}),
	}
}

func (m *Metrics) OrderCreated() {
	if m != nil {
		m.ordersCreated.Inc()
	}
}

func (m *Metrics) OrderStatusChanged(status string) {
	if m != nil {
		m.orderStatusChanges.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) CourierAssigned(kind string) {
	if m != nil {
		m.assignments.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) PositionReported(status string) {
	if m != nil {
		m.positionReports.WithLabelValues(status).Inc()
	}
}

// Middleware observes request durations labelled by route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				}
			}

			m.requestDuration.
				WithLabelValues(c.Request().Method, c.Path(), strconv.Itoa(status)).
				Observe(time.Since(start).Seconds())

			return err
		}
	}
}
