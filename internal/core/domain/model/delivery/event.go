package delivery

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/guard"
)

// ErrEventIsNotConstructed is returned when using an improperly initialized Event.
var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

// Event is one append-only audit row recording a status transition:
// who moved the delivery, from which status to which, with an optional
// note and proof photo. Events are never updated or deleted.
type Event struct {
	id           kernel.UUID
	actorID      *kernel.UUID
	statusBefore Status
	statusAfter  Status
	note         string
	photo        string
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewEvent creates a validated audit row.
// actorID may be nil for system-initiated transitions.
func NewEvent(id kernel.UUID, actorID *kernel.UUID, statusBefore, statusAfter Status, note, photo string, createdAt time.Time) (*Event, error) {
	e := &Event{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setID(id),
		e.setStatuses(statusBefore, statusAfter),
	); err != nil {
		return nil, err
	}

	e.actorID = actorID
	e.note = note
	e.photo = photo
	e.createdAt = createdAt
	return e, nil
}

// RestoreEvent reconstructs an audit row from persistent storage.
func RestoreEvent(id kernel.UUID, actorID *kernel.UUID, statusBefore, statusAfter Status, note, photo string, createdAt time.Time) (*Event, error) {
	return NewEvent(id, actorID, statusBefore, statusAfter, note, photo, createdAt)
}

// Validate checks if the Event was properly constructed.
func (e *Event) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// ID returns the audit row's unique identifier.
func (e *Event) ID() kernel.UUID {
	return e.id
}

// ActorID returns the account that caused the transition, if any.
func (e *Event) ActorID() *kernel.UUID {
	return e.actorID
}

// StatusBefore returns the status the delivery held before the transition.
func (e *Event) StatusBefore() Status {
	return e.statusBefore
}

// StatusAfter returns the status the delivery holds after the transition.
func (e *Event) StatusAfter() Status {
	return e.statusAfter
}

// Note returns the free-text note attached to the transition.
func (e *Event) Note() string {
	return e.note
}

// Photo returns the proof photo reference, if any.
func (e *Event) Photo() string {
	return e.photo
}

// CreatedAt returns when the transition was recorded.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

func (e *Event) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Event) setStatuses(before, after Status) error {
	// before may legitimately be Pending for the very first transition,
	// but both sides must name real statuses.
	if err := before.Validate(); err != nil {
		return err
	}
	if err := after.Validate(); err != nil {
		return err
	}
	e.statusBefore = before
	e.statusAfter = after
	return nil
}
