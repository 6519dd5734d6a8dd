package commands

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var (
	ErrReportDeliveryPositionCommandIsNotConstructed = errors.New(
		"ReportDeliveryPositionCommand must be created via NewReportDeliveryPositionCommand constructor",
	)
	ErrCoordinatesMustBePaired = errs.NewValueIsInvalidErrorWithCause("location",
		errors.New("latitude and longitude must be supplied together"))
)

// ReportDeliveryPositionCommand is a courier report: a delivery status and optionally
// the courier's current coordinates.
type ReportDeliveryPositionCommand struct { //nolint:recvcheck //using for validation
	principal  user.Principal
	deliveryID kernel.UUID
	status     delivery.Status
	location   *kernel.Location
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewReportDeliveryPositionCommand parses a courier report. latitude and longitude are
// either both nil or both set. A nil recordedAt means the report is stamped with now.
func NewReportDeliveryPositionCommand(
	principal user.Principal,
	deliveryID kernel.UUID,
	status string,
	latitude, longitude *float64,
	recordedAt *time.Time,
) (ReportDeliveryPositionCommand, error) {
	cmd := ReportDeliveryPositionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		principal.Validate(),
		requireID("delivery_id", deliveryID),
		cmd.setStatus(status),
		cmd.setLocation(latitude, longitude),
		cmd.setRecordedAt(recordedAt),
	); err != nil {
		return ReportDeliveryPositionCommand{}, err
	}
	cmd.principal, cmd.deliveryID = principal, deliveryID

	return cmd, nil
}

func (c ReportDeliveryPositionCommand) Validate() error {
	return c.guard.Validate(ErrReportDeliveryPositionCommandIsNotConstructed)
}

func (c ReportDeliveryPositionCommand) Principal() user.Principal { return c.principal }
func (c ReportDeliveryPositionCommand) DeliveryID() kernel.UUID   { return c.deliveryID }
func (c ReportDeliveryPositionCommand) Status() delivery.Status   { return c.status }

// Location returns the reported position or nil for a status-only report.
func (c ReportDeliveryPositionCommand) Location() *kernel.Location {
	if c.location == nil {
		return nil
	}
	loc := *c.location
	return &loc
}

// RecordedAt returns the client timestamp, or the zero time when the handler should stamp it.
func (c ReportDeliveryPositionCommand) RecordedAt() time.Time { return c.recordedAt }

func (c *ReportDeliveryPositionCommand) setStatus(status string) error {
	s, err := delivery.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}

func (c *ReportDeliveryPositionCommand) setLocation(latitude, longitude *float64) error {
	if latitude == nil && longitude == nil {
		return nil
	}
	if latitude == nil || longitude == nil {
		return ErrCoordinatesMustBePaired
	}

	loc, err := kernel.NewLocation(*latitude, *longitude)
	if err != nil {
		return err
	}
	c.location = &loc
	return nil
}

func (c *ReportDeliveryPositionCommand) setRecordedAt(recordedAt *time.Time) error {
	if recordedAt == nil {
		return nil
	}
	if recordedAt.IsZero() {
		return errs.NewValueIsInvalidErrorWithCause("recorded_at", fmt.Errorf("zero timestamp"))
	}
	c.recordedAt = recordedAt.UTC()
	return nil
}
