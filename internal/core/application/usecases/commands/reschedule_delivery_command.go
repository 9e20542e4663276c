package commands

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrRescheduleDeliveryCommandIsNotConstructed = errors.New(
	"RescheduleDeliveryCommand must be created via NewRescheduleDeliveryCommand constructor",
)

// RescheduleDeliveryCommand represents a customer moving their delivery to
// a new date, optionally with a preferred time window.
type RescheduleDeliveryCommand struct { //nolint:recvcheck //using for validation
	actorID    kernel.UUID
	deliveryID kernel.UUID
	newDate    time.Time
	newWindow  string

	guard guard.ConstructorGuard
}

// NewRescheduleDeliveryCommand creates a command to reschedule a delivery.
// Date plausibility (not in the past) is enforced by the delivery
// aggregate against the handling instant.
func NewRescheduleDeliveryCommand(actorID, deliveryID kernel.UUID, newDate time.Time, newWindow string) (RescheduleDeliveryCommand, error) {
	cmd := RescheduleDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		deliveryID.Validate(),
	); err != nil {
		return RescheduleDeliveryCommand{}, err
	}
	if newDate.IsZero() {
		return RescheduleDeliveryCommand{}, errs.NewValueIsRequiredError("new date")
	}

	cmd.actorID = actorID
	cmd.deliveryID = deliveryID
	cmd.newDate = newDate
	cmd.newWindow = newWindow
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RescheduleDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRescheduleDeliveryCommandIsNotConstructed)
}

// ActorID returns the rescheduling customer's account identifier.
func (c RescheduleDeliveryCommand) ActorID() kernel.UUID {
	return c.actorID
}

// DeliveryID returns the target delivery's identifier.
func (c RescheduleDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// NewDate returns the requested delivery date.
func (c RescheduleDeliveryCommand) NewDate() time.Time {
	return c.newDate
}

// NewWindow returns the requested delivery window, possibly empty.
func (c RescheduleDeliveryCommand) NewWindow() string {
	return c.newWindow
}
