package commands

import (
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrSendCourierPingCommandIsNotConstructed = errors.New(
	"SendCourierPingCommand must be created via NewSendCourierPingCommand constructor",
)

// SendCourierPingCommand represents a courier sending an informational
// ping to the customer while on route: approaching, leaving, arriving
// soon, arrived or delivered. Pings never change delivery state and leave
// no audit event.
type SendCourierPingCommand struct { //nolint:recvcheck //using for validation
	actorID          kernel.UUID
	deliveryID       kernel.UUID
	kind             delivery.NotificationKind
	estimatedMinutes int

	guard guard.ConstructorGuard
}

// NewSendCourierPingCommand creates a command for an informational ping.
// estimatedMinutes only applies to approaching pings; non-positive values
// fall back to the default.
func NewSendCourierPingCommand(actorID, deliveryID kernel.UUID, kind delivery.NotificationKind, estimatedMinutes int) (SendCourierPingCommand, error) {
	cmd := SendCourierPingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		deliveryID.Validate(),
	); err != nil {
		return SendCourierPingCommand{}, err
	}
	if !kind.IsProgressPing() {
		return SendCourierPingCommand{}, errs.NewValueIsInvalidErrorWithCause(
			"notification kind is invalid",
			fmt.Errorf("%s is not a progress ping", kind.String()),
		)
	}

	cmd.actorID = actorID
	cmd.deliveryID = deliveryID
	cmd.kind = kind
	cmd.estimatedMinutes = estimatedMinutes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SendCourierPingCommand) Validate() error {
	return c.guard.Validate(ErrSendCourierPingCommandIsNotConstructed)
}

// ActorID returns the pinging courier's account identifier.
func (c SendCourierPingCommand) ActorID() kernel.UUID {
	return c.actorID
}

// DeliveryID returns the target delivery's identifier.
func (c SendCourierPingCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Kind returns the ping classification.
func (c SendCourierPingCommand) Kind() delivery.NotificationKind {
	return c.kind
}

// EstimatedMinutes returns the courier's arrival estimate for approaching pings.
func (c SendCourierPingCommand) EstimatedMinutes() int {
	return c.estimatedMinutes
}
