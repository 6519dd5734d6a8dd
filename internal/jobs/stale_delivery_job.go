package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"

	"github.com/robfig/cron/v3"
)

const DefaultStaleDeliverySchedule = "@every 1m"

// StaleDeliveryFinder lists on_route deliveries without a report since updatedBefore.
type StaleDeliveryFinder interface {
	ListStaleOnRoute(ctx context.Context, updatedBefore time.Time) ([]*delivery.Delivery, error)
}

// StaleDeliveryJob warns about deliveries in on_route whose courier stopped reporting.
// It only alerts; delivery state is never changed.
type StaleDeliveryJob struct {
	finder   StaleDeliveryFinder
	after    time.Duration
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	now      func() time.Time
}

// NewStaleDeliveryJob creates a job that flags deliveries silent for longer than after.
// An empty schedule means DefaultStaleDeliverySchedule.
func NewStaleDeliveryJob(finder StaleDeliveryFinder, after time.Duration, schedule string, logger *slog.Logger) *StaleDeliveryJob {
	if schedule == "" {
		schedule = DefaultStaleDeliverySchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StaleDeliveryJob{
		finder:   finder,
		after:    after,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_delivery_job"),
		now:      time.Now,
	}
}

// Check runs one scan and returns the number of stale deliveries found.
func (j *StaleDeliveryJob) Check(ctx context.Context) (int, error) {
	cutoff := j.now().Add(-j.after)

	stale, err := j.finder.ListStaleOnRoute(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("list stale deliveries: %w", err)
	}

	for _, d := range stale {
		j.logger.WarnContext(ctx, "Delivery has no recent position report",
			"delivery_id", d.ID().String(),
			"order_id", d.OrderID().String(),
			"courier_id", d.CourierID().String(),
			"last_report", d.UpdatedAt().UTC(),
			"silent_for", j.now().Sub(d.UpdatedAt()).Round(time.Second).String(),
		)
	}

	return len(stale), nil
}

// Start schedules the scan.
func (j *StaleDeliveryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Check(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Stale delivery job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale delivery job started",
		"schedule", j.schedule, "after", j.after.String())
	return nil
}

// Stop stops the scheduler and waits for a running scan to finish.
func (j *StaleDeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale delivery job stopped")
}
