package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/tracking"

	"github.com/joho/godotenv"
)

// TrackerConfig configures the customer-side tracking runner for one order.
type TrackerConfig struct {
	BaseURL     string
	Token       string
	OrderID     kernel.UUID
	Destination *kernel.Location
	SpeedKmh    float64
	Schedule    string
}

// LoadTrackerConfig reads TRACK_* variables, loading .env first when present.
// TRACK_DEST_LAT and TRACK_DEST_LON are optional but must be set together.
func LoadTrackerConfig() (TrackerConfig, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return TrackerConfig{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := TrackerConfig{
		BaseURL:  getEnv("TRACK_BASE_URL", "http://localhost:"+defaultHTTPPort),
		Token:    os.Getenv("TRACK_TOKEN"),
		Schedule: getEnv("TRACK_SCHEDULE", tracking.DefaultSchedule),
	}

	var problems []error
	orderID, err := kernel.ParseUUID("TRACK_ORDER_ID", os.Getenv("TRACK_ORDER_ID"))
	if err != nil {
		problems = append(problems, err)
	}
	cfg.OrderID = orderID

	if cfg.Token == "" {
		problems = append(problems, errors.New("TRACK_TOKEN is required"))
	}

	if v := os.Getenv("TRACK_SPEED_KMH"); v != "" {
		if cfg.SpeedKmh, err = strconv.ParseFloat(v, 64); err != nil {
			problems = append(problems, fmt.Errorf("TRACK_SPEED_KMH: %w", err))
		}
	}

	lat, lon := os.Getenv("TRACK_DEST_LAT"), os.Getenv("TRACK_DEST_LON")
	switch {
	case lat == "" && lon == "":
	case lat == "" || lon == "":
		problems = append(problems, errors.New("TRACK_DEST_LAT and TRACK_DEST_LON must be set together"))
	default:
		dest, destErr := parseDestination(lat, lon)
		if destErr != nil {
			problems = append(problems, destErr)
		}
		cfg.Destination = dest
	}

	if err = errors.Join(problems...); err != nil {
		return TrackerConfig{}, err
	}
	return cfg, nil
}

// PollerConfig converts the runner configuration into a tracking.Config.
func (c TrackerConfig) PollerConfig(logger *slog.Logger) tracking.Config {
	return tracking.Config{
		BaseURL:     c.BaseURL,
		Token:       c.Token,
		OrderID:     c.OrderID,
		Destination: c.Destination,
		SpeedKmh:    c.SpeedKmh,
		Schedule:    c.Schedule,
		Logger:      logger,
	}
}

func parseDestination(lat, lon string) (*kernel.Location, error) {
	latitude, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return nil, fmt.Errorf("TRACK_DEST_LAT: %w", err)
	}
	longitude, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return nil, fmt.Errorf("TRACK_DEST_LON: %w", err)
	}
	loc, err := kernel.NewLocation(latitude, longitude)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}
