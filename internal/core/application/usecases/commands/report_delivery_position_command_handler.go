package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"
)

// ReportDeliveryPositionCommandHandler applies courier reports.
// A report with status delivered also completes the linked order in the same
// transaction. After commit the position is written to the cache; cache failures
// are logged and never fail the report.
type ReportDeliveryPositionCommandHandler struct {
	uowFactory TrackingUoWFactory
	cache      ports.PositionCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewReportDeliveryPositionCommandHandler(
	uowFactory TrackingUoWFactory,
	cache ports.PositionCache,
	logger *slog.Logger,
) ReportDeliveryPositionCommandHandler {
	return ReportDeliveryPositionCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     componentLogger(logger, "report_delivery_position"),
		now:        time.Now,
	}
}

// Handle returns the updated delivery. The report is timed by the server clock; the
// optional device timestamp only orders reports of the same courier.
//
// Returns:
//   - ValueIsInvalidError for a device timestamp too far ahead of the server clock
//   - PermissionDeniedError unless the caller is the courier assigned to the delivery
//   - ObjectNotFoundError for an unknown delivery
//   - InvalidStateError for a delivered delivery, on_route back to pending, a stale
//     non-delivered report or an order that cannot be completed
func (h ReportDeliveryPositionCommandHandler) Handle(
	ctx context.Context,
	cmd ReportDeliveryPositionCommand,
) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := cmd.Principal().RequireRole("report delivery position", user.Courier); err != nil {
		return nil, err
	}

	receivedAt := h.now().UTC()

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

	if !d.IsAssignedTo(cmd.Principal().UserID) {
		return nil, errs.NewPermissionDeniedErrorWithCause("report delivery position",
			fmt.Errorf("delivery %s is assigned to another courier", d.ID()))
	}

	if err = d.ReportPosition(cmd.Status(), cmd.Location(), cmd.RecordedAt(), receivedAt); err != nil {
		return nil, err
	}

	if err = deliveryRepo.Update(ctx, d); err != nil {
		return nil, err
	}

	if d.Status() == delivery.Delivered {
		if err = h.completeOrder(ctx, uow.OrderRepository(), d); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	cacheDeliveryPosition(ctx, h.cache, h.logger, d)

	return d, nil
}

func (h ReportDeliveryPositionCommandHandler) completeOrder(
	ctx context.Context,
	orders ports.OrderRepository,
	d *delivery.Delivery,
) error {
	o, err := orders.Get(ctx, d.OrderID())
	if err != nil {
		return err
	}

	if o.Status() == order.Delivered {
		return nil
	}

	previous := o.Status()
	if err = o.CompleteDelivery(); err != nil {
		return err
	}

	return orders.UpdateStatus(ctx, o, previous)
}
