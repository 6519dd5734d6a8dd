package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

// ReassignDeliveryCommandHandler replaces the courier of an existing delivery.
// The delivery row is locked for the duration of the transaction so a reassignment
// and a courier report never interleave. The cached tracking position is refreshed
// after commit so trackers see the reset status.
type ReassignDeliveryCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.DeliveryDispatcher
	cache      ports.PositionCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewReassignDeliveryCommandHandler(
	uowFactory UoWFactory,
	cache ports.PositionCache,
	logger *slog.Logger,
) ReassignDeliveryCommandHandler {
	return ReassignDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: services.NewDeliveryDispatcher(),
		cache:      cache,
		logger:     componentLogger(logger, "reassign_delivery"),
		now:        time.Now,
	}
}

// Handle checks, in order: delivery exists (NotFound), caller owns the restaurant of the
// linked order (PermissionDenied), courier exists (NotFound) and is an active courier
// (InvalidInput), delivery is not delivered (InvalidState). The linked order's status is
// not re-validated.
func (h ReassignDeliveryCommandHandler) Handle(ctx context.Context, cmd ReassignDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	d, err := deliveryRepo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, err
	}

	o, err := uow.OrderRepository().Get(ctx, d.OrderID())
	if err != nil {
		return nil, err
	}

	r, err := uow.RestaurantRepository().Get(ctx, o.RestaurantID())
	if err != nil {
		return nil, err
	}

	if err = h.dispatcher.AuthorizeReassignment(cmd.Principal(), r); err != nil {
		return nil, err
	}

	courier, err := uow.UserRepository().Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if err = h.dispatcher.Reassign(d, courier, h.now().UTC()); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	cacheDeliveryPosition(ctx, h.cache, h.logger, d)

	return d, nil
}
