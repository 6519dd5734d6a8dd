package tracking

// Step is a stage of the progress indicator shown to the customer.
type Step int

const (
	StepPlaced Step = iota
	StepConfirmed
	StepPreparing
	StepReady
	StepOnTheWay
	StepDelivered
)

var stepLabels = []string{"placed", "confirmed", "preparing", "ready", "on the way", "delivered"}

func (s Step) String() string {
	if s < StepPlaced || int(s) >= len(stepLabels) {
		return "unknown"
	}
	return stepLabels[s]
}

// Steps lists the indicator stages in display order.
func Steps() []Step {
	return []Step{StepPlaced, StepConfirmed, StepPreparing, StepReady, StepOnTheWay, StepDelivered}
}

// Progress is the indicator state. Halted marks cancelled and rejected orders.
type Progress struct {
	Current Step
	Halted  bool
	Reason  string
}

// Completed reports whether step is at or before the current stage.
func (p Progress) Completed(step Step) bool {
	return step <= p.Current
}

// ProgressFor derives the indicator from the order status and the delivery status,
// which is empty while no courier is assigned. A cancelled or rejected order does not
// say which stage it had reached, so on its own it is halted at StepPlaced; use
// ProgressAfter to keep the stage seen before the halt.
func ProgressFor(orderStatus, deliveryStatus string) Progress {
	switch orderStatus {
	case "cancelled", "rejected":
		return Progress{Current: StepPlaced, Halted: true, Reason: orderStatus}
	case "confirmed":
		return Progress{Current: StepConfirmed}
	case "preparing":
		return Progress{Current: StepPreparing}
	case "ready":
		return Progress{Current: StepReady}
	case "delivering":
		switch deliveryStatus {
		case "on_route":
			return Progress{Current: StepOnTheWay}
		case "delivered":
			return Progress{Current: StepDelivered}
		default:
			return Progress{Current: StepReady}
		}
	case "delivered":
		return Progress{Current: StepDelivered}
	default:
		return Progress{Current: StepPlaced}
	}
}

// ProgressAfter is ProgressFor for a client that already showed previous. A halted
// order stays at the stage previous had reached.
func ProgressAfter(previous Progress, orderStatus, deliveryStatus string) Progress {
	next := ProgressFor(orderStatus, deliveryStatus)
	if next.Halted && previous.Current > next.Current {
		next.Current = previous.Current
	}
	return next
}
