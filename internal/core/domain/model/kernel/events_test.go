package kernel_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	name string
	id   kernel.UUID
}

func (e testEvent) EventName() string        { return e.name }
func (e testEvent) AggregateID() kernel.UUID { return e.id }
func (e testEvent) OccurredAt() time.Time    { return time.Time{} }

func TestEventRecorder(t *testing.T) {
	var r kernel.EventRecorder
	assert.Empty(t, r.DomainEvents())

	id := kernel.NewUUID()
	r.RaiseDomainEvent(testEvent{name: "first", id: id})
	r.RaiseDomainEvent(testEvent{name: "second", id: id})

	events := r.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].EventName())
	assert.Equal(t, "second", events[1].EventName())

	events[0] = nil
	assert.NotNil(t, r.DomainEvents()[0])

	r.ClearDomainEvents()
	assert.Empty(t, r.DomainEvents())
}
