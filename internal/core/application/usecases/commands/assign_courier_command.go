package commands

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand represents a manager assigning or reassigning a
// courier to a delivery, optionally moving the schedule at the same time.
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	actorID         kernel.UUID
	deliveryID      kernel.UUID
	courierID       kernel.UUID
	scheduledDate   *time.Time
	scheduledWindow string

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign a courier.
// A nil scheduledDate and empty scheduledWindow keep the current schedule.
func NewAssignCourierCommand(actorID, deliveryID, courierID kernel.UUID, scheduledDate *time.Time, scheduledWindow string) (AssignCourierCommand, error) {
	cmd := AssignCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		deliveryID.Validate(),
		courierID.Validate(),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	cmd.actorID = actorID
	cmd.deliveryID = deliveryID
	cmd.courierID = courierID
	cmd.scheduledDate = scheduledDate
	cmd.scheduledWindow = scheduledWindow
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

// ActorID returns the acting manager's account identifier.
func (c AssignCourierCommand) ActorID() kernel.UUID {
	return c.actorID
}

// DeliveryID returns the target delivery's identifier.
func (c AssignCourierCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// CourierID returns the courier account to assign.
func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// ScheduledDate returns the new delivery date, or nil to keep the current one.
func (c AssignCourierCommand) ScheduledDate() *time.Time {
	return c.scheduledDate
}

// ScheduledWindow returns the new delivery window, or empty to keep the current one.
func (c AssignCourierCommand) ScheduledWindow() string {
	return c.scheduledWindow
}
