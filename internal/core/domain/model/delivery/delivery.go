package delivery

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// MaxReportClockSkew is how far a courier device clock may run ahead of the server.
const MaxReportClockSkew = 2 * time.Minute

// Delivery links one order to the courier currently responsible for it and keeps
// the courier's last reported position.
//
// Invariants:
//   - there is at most one Delivery per order; reassignment reuses the same record
//   - a delivered Delivery is final: it can be neither reassigned nor reported on
//   - updatedAt is server time and never moves backwards
//   - lastReportAt is the device time of the last accepted report of the current
//     courier; reports older than it are stale
type Delivery struct {
	kernel.EventRecorder

	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	status    Status
	location  *kernel.Location
	updatedAt time.Time

	lastReportAt *time.Time

	isConstructed bool
}

// NewDelivery binds a courier to an order. The delivery starts in Pending status
// without a known position.
func NewDelivery(id kernel.UUID, orderID kernel.UUID, courierID kernel.UUID, now time.Time) (*Delivery, error) {
	d := &Delivery{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setUpdatedAt(now),
	); err != nil {
		return nil, err
	}

	d.RaiseDomainEvent(AssignedEvent{
		DeliveryID: d.id,
		OrderID:    d.orderID,
		CourierID:  d.courierID,
		At:         d.updatedAt,
	})

	return d, nil
}

// RestoreDelivery rebuilds a delivery from persistence. lastReportAt is nil until the
// current courier has reported.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	courierID kernel.UUID,
	status Status,
	location *kernel.Location,
	updatedAt time.Time,
	lastReportAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{isConstructed: true}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setCourierID(courierID),
		d.setStatus(status),
		d.setLocation(location),
		d.setUpdatedAt(updatedAt),
	); err != nil {
		return nil, err
	}

	if lastReportAt != nil {
		t := lastReportAt.UTC()
		d.lastReportAt = &t
	}

	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

func (d *Delivery) ID() kernel.UUID {
	return d.id
}

func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

func (d *Delivery) CourierID() kernel.UUID {
	return d.courierID
}

func (d *Delivery) Status() Status {
	return d.status
}

// Location returns the last reported position, or nil if none was reported yet.
func (d *Delivery) Location() *kernel.Location {
	if d.location == nil {
		return nil
	}
	loc := *d.location
	return &loc
}

func (d *Delivery) UpdatedAt() time.Time {
	return d.updatedAt
}

// LastReportAt returns the device time of the last accepted report, or nil.
func (d *Delivery) LastReportAt() *time.Time {
	if d.lastReportAt == nil {
		return nil
	}
	t := *d.lastReportAt
	return &t
}

// IsAssignedTo reports whether courierID is the courier currently bound to the delivery.
func (d *Delivery) IsAssignedTo(courierID kernel.UUID) bool {
	return d.courierID.IsEqual(courierID)
}

// Reassign replaces the courier and resets the status to Pending on the same record.
// The last known position is kept; report ordering starts over with the new courier's
// device. A delivered Delivery cannot be reassigned.
func (d *Delivery) Reassign(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_person_id", err)
	}

	if d.status == Delivered {
		return errs.NewInvalidStateErrorWithCause("delivery status", d.status.String(),
			fmt.Errorf("delivered deliveries cannot be reassigned"))
	}

	previous := d.courierID
	d.courierID = courierID
	d.status = Pending
	d.lastReportAt = nil
	if now.After(d.updatedAt) {
		d.updatedAt = now
	}

	d.RaiseDomainEvent(ReassignedEvent{
		DeliveryID:        d.id,
		OrderID:           d.orderID,
		PreviousCourierID: previous,
		CourierID:         courierID,
		At:                d.updatedAt,
	})

	return nil
}

// ReportPosition applies a courier report received by the server at receivedAt.
// recordedAt is the device time of the report; zero means receivedAt. location may be
// nil when the courier only reports a status.
//
// A report older than the last accepted one is stale. A stale delivered report still
// completes the delivery but its position is dropped; any other stale report is rejected
// so retries never overwrite newer positions. updatedAt always follows the server clock.
//
// Returns:
//   - ValueIsInvalidError if status is not a valid delivery status or recordedAt is
//     more than MaxReportClockSkew ahead of receivedAt
//   - InvalidStateError if the delivery is already delivered, the report would move
//     on_route back to pending, or the report is stale
func (d *Delivery) ReportPosition(status Status, location *kernel.Location, recordedAt, receivedAt time.Time) error {
	if err := d.status.ValidateReport(status); err != nil {
		return err
	}

	if receivedAt.IsZero() {
		return errs.NewValueIsRequiredError("received_at")
	}
	if recordedAt.IsZero() {
		recordedAt = receivedAt
	}

	if recordedAt.After(receivedAt.Add(MaxReportClockSkew)) {
		return errs.NewValueIsInvalidErrorWithCause("recorded_at",
			fmt.Errorf("%s is ahead of server time %s",
				recordedAt.UTC().Format(time.RFC3339Nano), receivedAt.UTC().Format(time.RFC3339Nano)))
	}

	stale := d.lastReportAt != nil && recordedAt.Before(*d.lastReportAt)
	if stale && status != Delivered {
		return errs.NewInvalidStateErrorWithCause("delivery report", "stale",
			fmt.Errorf("recorded at %s, last report at %s",
				recordedAt.UTC().Format(time.RFC3339Nano), d.lastReportAt.UTC().Format(time.RFC3339Nano)))
	}

	applied := location != nil && !stale
	if applied {
		if err := d.setLocation(location); err != nil {
			return err
		}
	}
	if !stale {
		t := recordedAt.UTC()
		d.lastReportAt = &t
	}

	d.status = status
	if receivedAt.After(d.updatedAt) {
		d.updatedAt = receivedAt
	}

	event := PositionReportedEvent{
		DeliveryID: d.id,
		OrderID:    d.orderID,
		CourierID:  d.courierID,
		Status:     status.String(),
		RecordedAt: recordedAt.UTC(),
		At:         d.updatedAt,
	}
	if applied {
		lat, lon := location.Latitude(), location.Longitude()
		event.Latitude, event.Longitude = &lat, &lon
	}
	d.RaiseDomainEvent(event)

	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("order_id", err)
	}
	d.orderID = id
	return nil
}

func (d *Delivery) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("delivery_person_id", err)
	}
	d.courierID = id
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setLocation(location *kernel.Location) error {
	if location == nil {
		d.location = nil
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	loc := *location
	d.location = &loc
	return nil
}

func (d *Delivery) setUpdatedAt(t time.Time) error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("updated_at")
	}
	d.updatedAt = t
	return nil
}
