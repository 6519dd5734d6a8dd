package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressFor(t *testing.T) {
	tests := []struct {
		order    string
		delivery string
		want     Step
		halted   bool
	}{
		{order: "pending", want: StepPlaced},
		{order: "confirmed", want: StepConfirmed},
		{order: "preparing", want: StepPreparing},
		{order: "ready", want: StepReady},
		{order: "delivering", delivery: "pending", want: StepReady},
		{order: "delivering", delivery: "on_route", want: StepOnTheWay},
		{order: "delivering", delivery: "delivered", want: StepDelivered},
		{order: "delivered", want: StepDelivered},
		{order: "delivered", delivery: "delivered", want: StepDelivered},
		{order: "cancelled", want: StepPlaced, halted: true},
		{order: "rejected", want: StepPlaced, halted: true},
	}

	for _, tt := range tests {
		t.Run(tt.order+"/"+tt.delivery, func(t *testing.T) {
			p := ProgressFor(tt.order, tt.delivery)
			assert.Equal(t, tt.want, p.Current)
			assert.Equal(t, tt.halted, p.Halted)
		})
	}
}

func TestProgressAfter(t *testing.T) {
	t.Run("cancelled while preparing stays at preparing", func(t *testing.T) {
		previous := ProgressFor("preparing", "")
		p := ProgressAfter(previous, "cancelled", "")

		assert.Equal(t, StepPreparing, p.Current)
		assert.True(t, p.Halted)
		assert.Equal(t, "cancelled", p.Reason)
		assert.True(t, p.Completed(StepConfirmed))
		assert.False(t, p.Completed(StepReady))
	})

	t.Run("rejected without history is halted at placed", func(t *testing.T) {
		p := ProgressAfter(Progress{}, "rejected", "")
		assert.Equal(t, StepPlaced, p.Current)
		assert.True(t, p.Halted)
	})

	t.Run("halted previous does not hold back a live order", func(t *testing.T) {
		previous := Progress{Current: StepReady, Halted: true, Reason: "cancelled"}
		p := ProgressAfter(previous, "confirmed", "")
		assert.Equal(t, StepConfirmed, p.Current)
		assert.False(t, p.Halted)
	})
}

func TestProgress_Completed(t *testing.T) {
	p := ProgressFor("delivering", "on_route")

	for _, step := range Steps() {
		assert.Equal(t, step != StepDelivered, p.Completed(step), step.String())
	}
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "on the way", StepOnTheWay.String())
	assert.Equal(t, "unknown", Step(42).String())
	assert.Len(t, Steps(), 6)
}
