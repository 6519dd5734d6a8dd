package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fooddelivery/cmd"
	"fooddelivery/internal/tracking"

	"github.com/labstack/gommon/log"
)

// track follows one order from the customer side: it polls the tracking endpoint,
// recomputes distance and ETA locally and logs every snapshot.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	configs, err := cmd.LoadTrackerConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller, err := tracking.NewPoller(configs.PollerConfig(logger))
	if err != nil {
		log.Fatalf("Failed to create poller: %v", err)
	}

	onSnapshot := tracking.LogSnapshot(logger)
	if snap, pollErr := poller.Poll(ctx); pollErr != nil {
		logger.WarnContext(ctx, "Initial tracking poll failed", "error", pollErr)
	} else {
		onSnapshot(snap)
	}

	if err = poller.Start(ctx, onSnapshot); err != nil {
		log.Fatalf("Failed to start poller: %v", err)
	}
	logger.Info("Tracking started", "order_id", configs.OrderID.String(), "schedule", configs.Schedule)

	<-ctx.Done()
	poller.Stop()
	logger.Info("Tracking stopped")
}
