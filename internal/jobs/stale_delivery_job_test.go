package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStaleDeliveryFinder struct{ mock.Mock }

func (m *MockStaleDeliveryFinder) ListStaleOnRoute(ctx context.Context, updatedBefore time.Time) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, updatedBefore)
	deliveries, _ := args.Get(0).([]*delivery.Delivery)
	return deliveries, args.Error(1)
}

func onRouteDelivery(t *testing.T, reportedAt time.Time) *delivery.Delivery {
	t.Helper()
	loc, err := kernel.NewLocation(52.52, 13.405)
	require.NoError(t, err)
	d, err := delivery.RestoreDelivery(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		delivery.OnRoute, &loc, reportedAt, &reportedAt)
	require.NoError(t, err)
	return d
}

func TestStaleDeliveryJob_Check(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stale := onRouteDelivery(t, now.Add(-25*time.Minute))

	finder := &MockStaleDeliveryFinder{}
	finder.On("ListStaleOnRoute", mock.Anything, now.Add(-10*time.Minute)).
		Return([]*delivery.Delivery{stale}, nil).Once()

	var logs bytes.Buffer
	job := NewStaleDeliveryJob(finder, 10*time.Minute, "", slog.New(slog.NewJSONHandler(&logs, nil)))
	job.now = func() time.Time { return now }

	count, err := job.Check(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), stale.ID().String())
	assert.Contains(t, logs.String(), `"silent_for":"25m0s"`)
	assert.Contains(t, logs.String(), `"component":"stale_delivery_job"`)
	finder.AssertExpectations(t)
}

func TestStaleDeliveryJob_CheckNothingStale(t *testing.T) {
	finder := &MockStaleDeliveryFinder{}
	finder.On("ListStaleOnRoute", mock.Anything, mock.Anything).Return([]*delivery.Delivery{}, nil).Once()

	var logs bytes.Buffer
	job := NewStaleDeliveryJob(finder, time.Minute, "", slog.New(slog.NewJSONHandler(&logs, nil)))

	count, err := job.Check(context.Background())

	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NotContains(t, logs.String(), "WARN")
}

func TestStaleDeliveryJob_CheckFails(t *testing.T) {
	finder := &MockStaleDeliveryFinder{}
	finder.On("ListStaleOnRoute", mock.Anything, mock.Anything).Return(nil, errors.New("db down")).Once()

	job := NewStaleDeliveryJob(finder, time.Minute, "", nil)

	_, err := job.Check(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestStaleDeliveryJob_InvalidSchedule(t *testing.T) {
	job := NewStaleDeliveryJob(&MockStaleDeliveryFinder{}, time.Minute, "every now and then", nil)

	assert.Error(t, job.Start())
}

func TestStaleDeliveryJob_StartStop(t *testing.T) {
	job := NewStaleDeliveryJob(&MockStaleDeliveryFinder{}, time.Minute, "@every 1h", nil)

	require.NoError(t, job.Start())
	job.Stop()
}
