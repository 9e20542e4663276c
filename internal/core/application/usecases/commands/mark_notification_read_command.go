package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/guard"
)

var ErrMarkNotificationReadCommandIsNotConstructed = errors.New(
	"MarkNotificationReadCommand must be created via NewMarkNotificationReadCommand constructor",
)

// MarkNotificationReadCommand represents a recipient marking one of their
// notifications as seen.
type MarkNotificationReadCommand struct { //nolint:recvcheck //using for validation
	actorID        kernel.UUID
	notificationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationReadCommand creates a command to mark a notification read.
func NewMarkNotificationReadCommand(actorID, notificationID kernel.UUID) (MarkNotificationReadCommand, error) {
	cmd := MarkNotificationReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		notificationID.Validate(),
	); err != nil {
		return MarkNotificationReadCommand{}, err
	}

	cmd.actorID = actorID
	cmd.notificationID = notificationID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationReadCommandIsNotConstructed)
}

// ActorID returns the acting account's identifier.
func (c MarkNotificationReadCommand) ActorID() kernel.UUID {
	return c.actorID
}

// NotificationID returns the target notification's identifier.
func (c MarkNotificationReadCommand) NotificationID() kernel.UUID {
	return c.notificationID
}
