package commands

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrAddCommentCommandIsNotConstructed = errors.New(
	"AddCommentCommand must be created via NewAddCommentCommand constructor",
)

// AddCommentCommand represents a participant posting to a delivery's
// discussion thread. The thread is unbounded and open on final
// deliveries; comments never change delivery state.
type AddCommentCommand struct { //nolint:recvcheck //using for validation
	actorID    kernel.UUID
	deliveryID kernel.UUID
	message    string
	photo      string

	guard guard.ConstructorGuard
}

// NewAddCommentCommand creates a command to post a delivery comment.
func NewAddCommentCommand(actorID, deliveryID kernel.UUID, message, photo string) (AddCommentCommand, error) {
	cmd := AddCommentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actorID.Validate(),
		deliveryID.Validate(),
	); err != nil {
		return AddCommentCommand{}, err
	}
	if message == "" {
		return AddCommentCommand{}, errs.NewValueIsRequiredError("message")
	}

	cmd.actorID = actorID
	cmd.deliveryID = deliveryID
	cmd.message = message
	cmd.photo = photo
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCommentCommand) Validate() error {
	return c.guard.Validate(ErrAddCommentCommandIsNotConstructed)
}

// ActorID returns the posting account's identifier.
func (c AddCommentCommand) ActorID() kernel.UUID {
	return c.actorID
}

// DeliveryID returns the target delivery's identifier.
func (c AddCommentCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Message returns the comment text.
func (c AddCommentCommand) Message() string {
	return c.message
}

// Photo returns the attached photo reference, possibly empty.
func (c AddCommentCommand) Photo() string {
	return c.photo
}
