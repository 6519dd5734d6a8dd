package commands

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/ports"
)

// cacheDeliveryPosition writes the committed state of d to the position cache.
// Failures are logged only; the database stays authoritative.
func cacheDeliveryPosition(ctx context.Context, cache ports.PositionCache, logger *slog.Logger, d *delivery.Delivery) {
	if cache == nil {
		return
	}

	position := ports.CachedPosition{
		DeliveryID: d.ID(),
		OrderID:    d.OrderID(),
		Status:     d.Status().String(),
		UpdatedAt:  d.UpdatedAt(),
	}
	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		position.Latitude, position.Longitude = &lat, &lon
	}

	if err := cache.Put(ctx, position); err != nil {
		logger.WarnContext(ctx, "failed to cache delivery position",
			"delivery_id", d.ID().String(), "error", err)
	}
}

func componentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
