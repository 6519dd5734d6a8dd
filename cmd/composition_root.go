package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/adapters/out/messaging/kafka"
	"fooddelivery/internal/adapters/out/messaging/rabbitmq"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/postgres/deliveryrepo"
	"fooddelivery/internal/adapters/out/rediscache"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	logger     *slog.Logger
	publisher  ports.EventPublisher
	cache      ports.PositionCache
	uowFactory *postgres.GormUnitOfWorkFactory
	registry   *prometheus.Registry
	metrics    *httpin.Metrics
	closers    []func() error
}

// NewCompositionRoot wires the adapters selected by cfg. Brokers and the cache are
// optional: an empty address leaves that adapter out.
func NewCompositionRoot(ctx context.Context, cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	c := &CompositionRoot{
		cfg:      cfg,
		gormDB:   gormDB,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}
	c.metrics = httpin.NewMetrics(c.registry)

	var publishers messaging.FanOut
	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		producer, err := kafka.NewOrderEventsProducer(brokers, cfg.KafkaOrderChangedTopic)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		publishers = append(publishers, producer)
		c.closers = append(c.closers, producer.Close)
		logger.Info("Kafka order events enabled", "topic", cfg.KafkaOrderChangedTopic)
	}
	if cfg.RabbitMQURL != "" {
		publisher, err := rabbitmq.Dial(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return nil, errors.Join(err, c.Close())
		}
		publishers = append(publishers, publisher)
		c.closers = append(c.closers, publisher.Close)
		logger.Info("RabbitMQ notifications enabled", "exchange", cfg.RabbitMQExchange)
	}
	if len(publishers) > 0 {
		c.publisher = publishers
	} else {
		c.publisher = messaging.Discard{}
	}

	if cfg.RedisAddr != "" {
		client, err := rediscache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("connect redis: %w", err), c.Close())
		}
		c.cache = rediscache.NewPositionCache(client, cfg.TrackingPositionTTL)
		c.closers = append(c.closers, client.Close)
		logger.Info("Redis position cache enabled", "addr", cfg.RedisAddr)
	}

	c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.publisher, logger)
	return c, nil
}

// Close releases broker and cache connections in reverse order.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) trackingUoWFactory() commands.TrackingUoWFactory {
	return FuncTrackingUoWFactory(func() commands.TrackingUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateReassignDeliveryCommandHandler() commands.ReassignDeliveryCommandHandler {
	return commands.NewReassignDeliveryCommandHandler(c.fullUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateReportDeliveryPositionCommandHandler() commands.ReportDeliveryPositionCommandHandler {
	return commands.NewReportDeliveryPositionCommandHandler(c.trackingUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReadyOrdersQueryHandler() queries.GetReadyOrdersQueryHandler {
	return queries.NewGetReadyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.gormDB, c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableCouriersQueryHandler() queries.GetAvailableCouriersQueryHandler {
	return queries.NewGetAvailableCouriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:            c.CreateCreateOrderCommandHandler(),
		UpdateOrderStatus:      c.CreateUpdateOrderStatusCommandHandler(),
		AssignDelivery:         c.CreateAssignDeliveryCommandHandler(),
		ReassignDelivery:       c.CreateReassignDeliveryCommandHandler(),
		ReportDeliveryPosition: c.CreateReportDeliveryPositionCommandHandler(),
		GetOrders:              c.CreateGetOrdersQueryHandler(),
		GetReadyOrders:         c.CreateGetReadyOrdersQueryHandler(),
		GetOrderTracking:       c.CreateGetOrderTrackingQueryHandler(),
		GetDeliveries:          c.CreateGetDeliveriesQueryHandler(),
		GetAvailableCouriers:   c.CreateGetAvailableCouriersQueryHandler(),
	}, c.metrics)
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	return httpin.NewRouter(c.CreateHTTPServer(), httpin.RouterConfig{
		JWTSecret: c.cfg.JWTSecret,
		Logger:    c.logger,
		Metrics:   c.metrics,
		Gatherer:  c.registry,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	staleJob := jobs.NewStaleDeliveryJob(
		deliveryrepo.NewGormDeliveryRepository(c.gormDB, nil),
		c.cfg.StaleDeliveryAfter,
		"",
		c.logger,
	)
	return jobs.NewJobManager(staleJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTrackingUoWFactory func() commands.TrackingUoW

func (f FuncTrackingUoWFactory) Create() commands.TrackingUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
