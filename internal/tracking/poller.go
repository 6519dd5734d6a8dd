package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

const DefaultSchedule = "@every 8s"

var ErrOrderIDIsRequired = errors.New("order id is required")

// Config describes one tracked order.
type Config struct {
	BaseURL string
	Token   string
	OrderID kernel.UUID
	// Destination is the drop-off point. Without it no distance or ETA is computed.
	Destination *kernel.Location
	// SpeedKmh <= 0 uses services.DefaultCourierSpeedKmh.
	SpeedKmh float64
	// Schedule is a robfig/cron expression; DefaultSchedule when empty.
	Schedule   string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Snapshot is the client-side view recomputed on every poll.
type Snapshot struct {
	OrderID        string
	OrderStatus    string
	OrderType      string
	DeliveryStatus string
	Position       *kernel.Location
	UpdatedAt      time.Time

	DistanceKm       *float64
	Estimate         *services.ArrivalEstimate
	RemainingSeconds int
	Progress         Progress
	FetchedAt        time.Time
}

type trackingResponse struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
	OrderType   string `json:"order_type"`
	Delivery    *struct {
		Status    string    `json:"status"`
		Latitude  *float64  `json:"latitude"`
		Longitude *float64  `json:"longitude"`
		UpdatedAt time.Time `json:"updated_at"`
	} `json:"delivery"`
}

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Poller polls the tracking endpoint of one order and hands every Snapshot to a
// callback. The countdown restarts only when the courier's report changes.
type Poller struct {
	cfg       Config
	endpoint  string
	client    *http.Client
	logger    *slog.Logger
	countdown *Countdown
	now       func() time.Time

	mu            sync.Mutex
	lastUpdatedAt time.Time
	estimate      *services.ArrivalEstimate
	progress      Progress

	cron *cron.Cron
}

func NewPoller(cfg Config) (*Poller, error) {
	if err := cfg.OrderID.Validate(); err != nil {
		return nil, errors.Join(ErrOrderIDIsRequired, err)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultSchedule
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		cfg:       cfg,
		endpoint:  base.JoinPath("api", "v1", "orders", cfg.OrderID.String(), "tracking").String(),
		client:    client,
		logger:    logger.With("component", "tracking_poller", "order_id", cfg.OrderID.String()),
		countdown: NewCountdown(time.Now),
		now:       time.Now,
		cron:      cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
	}, nil
}

// Poll fetches the tracking view once and computes the snapshot.
func (p *Poller) Poll(ctx context.Context) (Snapshot, error) {
	resp, err := p.fetch(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	snap := Snapshot{
		OrderID:     resp.OrderID,
		OrderStatus: resp.OrderStatus,
		OrderType:   resp.OrderType,
		FetchedAt:   p.now(),
	}

	if d := resp.Delivery; d != nil {
		snap.DeliveryStatus = d.Status
		snap.UpdatedAt = d.UpdatedAt
		if d.Latitude != nil && d.Longitude != nil {
			loc, locErr := kernel.NewLocation(*d.Latitude, *d.Longitude)
			if locErr != nil {
				return Snapshot{}, fmt.Errorf("tracking position: %w", locErr)
			}
			snap.Position = &loc
		}
	}
	snap.Progress = ProgressAfter(p.progress, snap.OrderStatus, snap.DeliveryStatus)
	p.progress = snap.Progress

	if snap.Position != nil && p.cfg.Destination != nil && snap.DeliveryStatus == "on_route" {
		distance, distErr := snap.Position.DistanceKm(*p.cfg.Destination)
		if distErr != nil {
			return Snapshot{}, distErr
		}
		snap.DistanceKm = &distance

		if !snap.UpdatedAt.Equal(p.lastUpdatedAt) {
			estimate := services.EstimateArrival(distance, p.cfg.SpeedKmh)
			p.estimate = &estimate
			p.lastUpdatedAt = snap.UpdatedAt
			p.countdown.Reset(estimate.Countdown)
		}
		if p.estimate != nil {
			estimate := *p.estimate
			snap.Estimate = &estimate
		}
		snap.RemainingSeconds = p.countdown.RemainingSeconds()
	}

	return snap, nil
}

func (p *Poller) fetch(ctx context.Context) (trackingResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return trackingResponse{}, err
	}
	req.Header.Set("Accept", "application/json")
	if p.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.cfg.Token)
	}

	res, err := p.client.Do(req)
	if err != nil {
		return trackingResponse{}, fmt.Errorf("get tracking: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return trackingResponse{}, fmt.Errorf("read tracking: %w", err)
	}

	if res.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return trackingResponse{}, fmt.Errorf("get tracking: %d %s: %s", res.StatusCode, apiErr.Kind, apiErr.Message)
		}
		return trackingResponse{}, fmt.Errorf("get tracking: unexpected status %d", res.StatusCode)
	}

	var out trackingResponse
	if err = json.Unmarshal(body, &out); err != nil {
		return trackingResponse{}, fmt.Errorf("decode tracking: %w", err)
	}
	return out, nil
}

// Start polls on the configured schedule until Stop. onSnapshot runs on the cron
// goroutine; overlapping ticks are skipped.
func (p *Poller) Start(ctx context.Context, onSnapshot func(Snapshot)) error {
	_, err := p.cron.AddFunc(p.cfg.Schedule, func() {
		snap, err := p.Poll(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				p.logger.WarnContext(ctx, "Tracking poll failed", "error", err)
			}
			return
		}
		if onSnapshot != nil {
			onSnapshot(snap)
		}
	})
	if err != nil {
		return err
	}

	p.cron.Start()
	return nil
}

// Stop stops polling and waits for a running poll to return.
func (p *Poller) Stop() {
	<-p.cron.Stop().Done()
}

// LogSnapshot returns a snapshot callback that logs one line per poll.
func LogSnapshot(logger *slog.Logger) func(Snapshot) {
	if logger == nil {
		logger = slog.Default()
	}
	return func(snap Snapshot) {
		attrs := []any{
			"order_id", snap.OrderID,
			"order_status", snap.OrderStatus,
			"step", snap.Progress.Current.String(),
		}
		if snap.Progress.Halted {
			attrs = append(attrs, "halted", snap.Progress.Reason)
		}
		if snap.DeliveryStatus != "" {
			attrs = append(attrs, "delivery_status", snap.DeliveryStatus)
		}
		if snap.DistanceKm != nil {
			attrs = append(attrs, "distance_km", *snap.DistanceKm, "remaining_seconds", snap.RemainingSeconds)
		}
		logger.Info("Tracking snapshot", attrs...)
	}
}
