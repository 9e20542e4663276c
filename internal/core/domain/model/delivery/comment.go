package delivery

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var (
	// ErrMessageIsRequired is returned when attempting to add a comment without a message.
	ErrMessageIsRequired = errs.NewValueIsRequiredError("message")
	// ErrCommentIsNotConstructed is returned when using an improperly initialized Comment.
	ErrCommentIsNotConstructed = errors.New("Comment must be created via NewComment constructor")
)

// Comment is one entry of a delivery's discussion thread. The author's
// role is snapshotted at posting time so the thread renders correctly
// even after the account's role changes.
type Comment struct {
	id         kernel.UUID
	authorID   *kernel.UUID
	authorRole account.Role
	message    string
	photo      string
	createdAt  time.Time
	guard      guard.ConstructorGuard
}

// NewComment creates a validated comment with the author's role captured
// at posting time.
func NewComment(id kernel.UUID, authorID *kernel.UUID, authorRole account.Role, message, photo string, createdAt time.Time) (*Comment, error) {
	c := &Comment{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setMessage(message),
	); err != nil {
		return nil, err
	}

	c.authorID = authorID
	c.authorRole = authorRole
	c.photo = photo
	c.createdAt = createdAt
	return c, nil
}

// RestoreComment reconstructs a comment from persistent storage.
func RestoreComment(id kernel.UUID, authorID *kernel.UUID, authorRole account.Role, message, photo string, createdAt time.Time) (*Comment, error) {
	return NewComment(id, authorID, authorRole, message, photo, createdAt)
}

// Validate checks if the Comment was properly constructed.
func (c *Comment) Validate() error {
	if c == nil {
		return ErrCommentIsNotConstructed
	}
	return c.guard.Validate(ErrCommentIsNotConstructed)
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() kernel.UUID {
	return c.id
}

// AuthorID returns the posting account, if known.
func (c *Comment) AuthorID() *kernel.UUID {
	return c.authorID
}

// AuthorRole returns the author's role as it was at posting time.
func (c *Comment) AuthorRole() account.Role {
	return c.authorRole
}

// Message returns the comment text.
func (c *Comment) Message() string {
	return c.message
}

// Photo returns the attached photo reference, if any.
func (c *Comment) Photo() string {
	return c.photo
}

// CreatedAt returns when the comment was posted.
func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Comment) setMessage(message string) error {
	if message == "" {
		return ErrMessageIsRequired
	}
	c.message = message
	return nil
}
