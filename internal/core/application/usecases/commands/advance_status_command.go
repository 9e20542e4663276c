package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrAdvanceStatusCommandIsNotConstructed = errors.New(
	"AdvanceStatusCommand must be created via NewAdvanceStatusCommand constructor",
)

// AdvanceStatusCommand represents a courier reporting progress on their
// delivery: en route, delivered, failed or rescheduled. Reporting a
// failure requires a classified reason code; everything else carries an
// optional note and proof photo.
type AdvanceStatusCommand struct { //nolint:recvcheck //using for validation
	actorID        kernel.UUID
	deliveryID     kernel.UUID
	target         delivery.Status
	note           string
	photo          string
	failureCode    delivery.FailureCode
	failureDetails string

	guard guard.ConstructorGuard
}

// NewAdvanceStatusCommand creates a command for a courier status report.
// failureCode and failureDetails are only meaningful when target is
// failed; a failed target without a valid code is rejected here so the
// mistake surfaces before any transaction starts.
func NewAdvanceStatusCommand(
	actorID, deliveryID kernel.UUID,
	target delivery.Status,
	note, photo string,
	failureCode delivery.FailureCode,
	failureDetails string,
) (AdvanceStatusCommand, error) {
	cmd := AdvanceStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		deliveryID.Validate(),
		target.Validate(),
	); err != nil {
		return AdvanceStatusCommand{}, err
	}

	if target == delivery.StatusFailed {
		if failureCode == delivery.FailureCodeUnknown {
			return AdvanceStatusCommand{}, errs.NewValueIsRequiredError("failure code")
		}
		if err := failureCode.Validate(); err != nil {
			return AdvanceStatusCommand{}, err
		}
	}

	cmd.actorID = actorID
	cmd.deliveryID = deliveryID
	cmd.target = target
	cmd.note = note
	cmd.photo = photo
	cmd.failureCode = failureCode
	cmd.failureDetails = failureDetails
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceStatusCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
}

// ActorID returns the reporting courier's account identifier.
func (c AdvanceStatusCommand) ActorID() kernel.UUID {
	return c.actorID
}

// DeliveryID returns the target delivery's identifier.
func (c AdvanceStatusCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Target returns the reported status.
func (c AdvanceStatusCommand) Target() delivery.Status {
	return c.target
}

// Note returns the optional courier note.
func (c AdvanceStatusCommand) Note() string {
	return c.note
}

// Photo returns the optional proof photo reference.
func (c AdvanceStatusCommand) Photo() string {
	return c.photo
}

// FailureCode returns the failure classification for failed targets.
func (c AdvanceStatusCommand) FailureCode() delivery.FailureCode {
	return c.failureCode
}

// FailureDetails returns the free-text failure description.
func (c AdvanceStatusCommand) FailureDetails() string {
	return c.failureDetails
}
