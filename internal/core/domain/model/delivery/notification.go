package delivery

import (
	"errors"
	"fmt"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

// ErrNotificationIsNotConstructed is returned when using an improperly initialized Notification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// NotificationKind classifies a delivery notification.
//
// The first five kinds are informational courier pings sent to the
// customer while the courier is on route. The lifecycle kinds record
// state changes for the customer, and the coordinator kinds are the
// broadcast copies sent to managers.
type NotificationKind int

const (
	// KindUnknown represents an invalid or undefined kind.
	KindUnknown NotificationKind = iota

	// KindApproaching tells the customer the courier is nearby.
	KindApproaching

	// KindLeaving tells the customer the courier has departed with the package.
	KindLeaving

	// KindArrivingSoon tells the customer arrival is imminent.
	KindArrivingSoon

	// KindArrived tells the customer the courier is at the address.
	KindArrived

	// KindDelivered tells the customer the package was handed over.
	KindDelivered

	// KindRescheduled tells the courier the customer moved the delivery.
	KindRescheduled

	// KindFailed tells the customer a delivery attempt failed.
	KindFailed

	// KindCoordinatorStatusChanged is the manager copy of a status change.
	KindCoordinatorStatusChanged

	// KindCoordinatorRiderAssigned is the manager copy of a courier assignment.
	KindCoordinatorRiderAssigned

	// KindCoordinatorScheduleChanged is the manager copy of a schedule change.
	KindCoordinatorScheduleChanged

	// KindCoordinatorRescheduled is the manager copy of a customer reschedule.
	KindCoordinatorRescheduled

	// KindCoordinatorDeliveryFailed is the manager copy of a failed attempt.
	KindCoordinatorDeliveryFailed
)

func getNotificationKindStrings() map[NotificationKind]string {
	return map[NotificationKind]string{
		KindUnknown:                    "unknown",
		KindApproaching:                "approaching",
		KindLeaving:                    "leaving",
		KindArrivingSoon:               "arriving_soon",
		KindArrived:                    "arrived",
		KindDelivered:                  "delivered",
		KindRescheduled:                "rescheduled",
		KindFailed:                     "failed",
		KindCoordinatorStatusChanged:   "coordinator_status_changed",
		KindCoordinatorRiderAssigned:   "coordinator_rider_assigned",
		KindCoordinatorScheduleChanged: "coordinator_schedule_changed",
		KindCoordinatorRescheduled:     "coordinator_rescheduled",
		KindCoordinatorDeliveryFailed:  "coordinator_delivery_failed",
	}
}

func getValidNotificationKindStrings() map[NotificationKind]string {
	//nolint:exhaustive // KindUnknown is intentionally excluded as it's invalid
	return map[NotificationKind]string{
		KindApproaching:                "approaching",
		KindLeaving:                    "leaving",
		KindArrivingSoon:               "arriving_soon",
		KindArrived:                    "arrived",
		KindDelivered:                  "delivered",
		KindRescheduled:                "rescheduled",
		KindFailed:                     "failed",
		KindCoordinatorStatusChanged:   "coordinator_status_changed",
		KindCoordinatorRiderAssigned:   "coordinator_rider_assigned",
		KindCoordinatorScheduleChanged: "coordinator_schedule_changed",
		KindCoordinatorRescheduled:     "coordinator_rescheduled",
		KindCoordinatorDeliveryFailed:  "coordinator_delivery_failed",
	}
}

// Validate checks if the NotificationKind value is valid.
func (k NotificationKind) Validate() error {
	if _, ok := getValidNotificationKindStrings()[k]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("notification kind is invalid", fmt.Errorf("%d is not a valid notification kind", k))
	}
	return nil
}

// String returns the wire name of the notification kind.
func (k NotificationKind) String() string {
	if str, ok := getNotificationKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// NotificationKindFromString parses a wire notification kind name.
// Unrecognized names map to KindUnknown.
func NotificationKindFromString(name string) NotificationKind {
	for kind, str := range getValidNotificationKindStrings() {
		if str == name {
			return kind
		}
	}
	return KindUnknown
}

// IsProgressPing reports whether the kind is one of the informational
// pings couriers may send while on an active route.
func (k NotificationKind) IsProgressPing() bool {
	switch k {
	case KindApproaching, KindLeaving, KindArrivingSoon, KindArrived, KindDelivered:
		return true
	default:
		return false
	}
}

// Notification is a persisted in-app message addressed to one account
// about one delivery. Unread by default; read state only ever moves from
// unread to read.
type Notification struct {
	id          kernel.UUID
	deliveryID  kernel.UUID
	recipientID kernel.UUID
	kind        NotificationKind
	message     string
	read        bool
	sentAt      time.Time
	guard       guard.ConstructorGuard
}

// NewNotification creates a validated unread notification.
func NewNotification(id, deliveryID, recipientID kernel.UUID, kind NotificationKind, message string, sentAt time.Time) (*Notification, error) {
	n := &Notification{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setDeliveryID(deliveryID),
		n.setRecipientID(recipientID),
		n.setKind(kind),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	n.sentAt = sentAt
	return n, nil
}

// RestoreNotification reconstructs a notification from persistent storage.
func RestoreNotification(id, deliveryID, recipientID kernel.UUID, kind NotificationKind, message string, read bool, sentAt time.Time) (*Notification, error) {
	n, err := NewNotification(id, deliveryID, recipientID, kind, message, sentAt)
	if err != nil {
		return nil, err
	}
	n.read = read
	return n, nil
}

// Validate checks if the Notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// DeliveryID returns the delivery the notification is about.
func (n *Notification) DeliveryID() kernel.UUID {
	return n.deliveryID
}

// RecipientID returns the addressed account.
func (n *Notification) RecipientID() kernel.UUID {
	return n.recipientID
}

// Kind returns the notification classification.
func (n *Notification) Kind() NotificationKind {
	return n.kind
}

// Message returns the rendered notification text.
func (n *Notification) Message() string {
	return n.message
}

// IsRead reports whether the recipient has seen the notification.
func (n *Notification) IsRead() bool {
	return n.read
}

// SentAt returns when the notification was created.
func (n *Notification) SentAt() time.Time {
	return n.sentAt
}

// MarkRead marks the notification as seen. Marking an already read
// notification is a no-op.
func (n *Notification) MarkRead() {
	n.read = true
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.deliveryID = id
	return nil
}

func (n *Notification) setRecipientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.recipientID = id
	return nil
}

func (n *Notification) setKind(kind NotificationKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	n.kind = kind
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return ErrMessageIsRequired
	}
	n.message = message
	return nil
}
