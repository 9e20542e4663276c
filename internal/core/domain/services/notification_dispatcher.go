package services

import (
	"errors"
	"fmt"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"
)

// defaultApproachingMinutes is the ETA interpolated into approaching pings
// when the courier does not provide one.
const defaultApproachingMinutes = 30

// NotificationDispatcher is a domain service that composes the
// notifications each lifecycle operation owes its audiences. It only
// builds notification aggregates; persisting them is the caller's job,
// inside the same transaction as the triggering mutation.
//
// Audiences:
//   - the order's owning customer, skipped when the order has no owner
//   - the assigned courier, for customer reschedules
//   - every coordinator (manager-role accounts and superusers)
type NotificationDispatcher struct{}

// NewNotificationDispatcher creates a new NotificationDispatcher instance.
func NewNotificationDispatcher() NotificationDispatcher {
	return NotificationDispatcher{}
}

// ComposeProgressPing builds the customer notification for an
// informational courier ping.
//
// Pings are gated: the delivery must be on an active route and the order
// must have an owning customer, otherwise an error is returned. The
// approaching kind interpolates estimatedMinutes, defaulting when the
// courier passes a non-positive value.
func (nd NotificationDispatcher) ComposeProgressPing(
	del *delivery.Delivery,
	ord *order.Order,
	courier *account.Account,
	kind delivery.NotificationKind,
	estimatedMinutes int,
	now time.Time,
) (*delivery.Notification, error) {
	if err := del.Validate(); err != nil {
		return nil, err
	}
	if err := ord.Validate(); err != nil {
		return nil, err
	}
	if !kind.IsProgressPing() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"notification kind is invalid",
			fmt.Errorf("%s is not a progress ping", kind.String()),
		)
	}
	if !del.CanNotifyProgress() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not an active route status", del.Status().String()),
		)
	}
	if ord.CustomerID() == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"order",
			errors.New("order has no owning customer account"),
		)
	}

	if estimatedMinutes <= 0 {
		estimatedMinutes = defaultApproachingMinutes
	}

	var message string
	switch kind {
	case delivery.KindApproaching:
		message = fmt.Sprintf("%s is approaching with your order #%s, estimated arrival in %d minutes.",
			courier.Username(), shortID(ord.ID()), estimatedMinutes)
	case delivery.KindLeaving:
		message = fmt.Sprintf("%s has left with your order #%s and is on the way.",
			courier.Username(), shortID(ord.ID()))
	case delivery.KindArrivingSoon:
		message = fmt.Sprintf("%s is arriving soon with your order #%s.",
			courier.Username(), shortID(ord.ID()))
	case delivery.KindArrived:
		message = fmt.Sprintf("%s has arrived with your order #%s.",
			courier.Username(), shortID(ord.ID()))
	case delivery.KindDelivered:
		message = fmt.Sprintf("Your order #%s has been delivered by %s.",
			shortID(ord.ID()), courier.Username())
	}

	return delivery.NewNotification(kernel.NewUUID(), del.ID(), *ord.CustomerID(), kind, message, now)
}

// ComposeFailureNotices builds the notifications owed after a failed
// delivery attempt: a customer alert and a coordinator broadcast.
//
// The failure alert deliberately bypasses the active-route gate; a failed
// attempt is exactly the moment the customer must hear about. The customer
// copy is skipped when the order has no owner.
func (nd NotificationDispatcher) ComposeFailureNotices(
	del *delivery.Delivery,
	ord *order.Order,
	reason *delivery.FailureReason,
	coordinators []*account.Account,
	now time.Time,
) ([]*delivery.Notification, error) {
	if err := reason.Validate(); err != nil {
		return nil, err
	}

	var out []*delivery.Notification

	if ord.CustomerID() != nil {
		message := fmt.Sprintf("Delivery attempt %d for your order #%s failed: %s. You can reschedule the delivery.",
			reason.AttemptNumber(), shortID(ord.ID()), failureText(reason))
		n, err := delivery.NewNotification(kernel.NewUUID(), del.ID(), *ord.CustomerID(), delivery.KindFailed, message, now)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	broadcast := fmt.Sprintf("Delivery attempt %d for order #%s failed: %s.",
		reason.AttemptNumber(), shortID(ord.ID()), failureText(reason))
	notices, err := nd.broadcast(del, coordinators, delivery.KindCoordinatorDeliveryFailed, broadcast, now)
	if err != nil {
		return nil, err
	}
	return append(out, notices...), nil
}

// ComposeAssignmentNotices builds the coordinator broadcasts owed after a
// manager assigns a courier: a rider-assigned notice, plus a
// schedule-changed notice when the assignment moved the schedule.
func (nd NotificationDispatcher) ComposeAssignmentNotices(
	del *delivery.Delivery,
	ord *order.Order,
	courier *account.Account,
	scheduleChanged bool,
	coordinators []*account.Account,
	now time.Time,
) ([]*delivery.Notification, error) {
	message := fmt.Sprintf("Courier %s was assigned to the delivery for order #%s.",
		courier.Username(), shortID(ord.ID()))
	out, err := nd.broadcast(del, coordinators, delivery.KindCoordinatorRiderAssigned, message, now)
	if err != nil {
		return nil, err
	}

	if scheduleChanged {
		message = fmt.Sprintf("The delivery for order #%s was scheduled for %s.",
			shortID(ord.ID()), scheduleText(del.ScheduledDate(), del.ScheduledWindow()))
		notices, err := nd.broadcast(del, coordinators, delivery.KindCoordinatorScheduleChanged, message, now)
		if err != nil {
			return nil, err
		}
		out = append(out, notices...)
	}
	return out, nil
}

// ComposeStatusNotices builds the coordinator broadcast owed after a
// courier-reported status change other than failure.
func (nd NotificationDispatcher) ComposeStatusNotices(
	del *delivery.Delivery,
	ord *order.Order,
	coordinators []*account.Account,
	now time.Time,
) ([]*delivery.Notification, error) {
	message := fmt.Sprintf("The delivery for order #%s changed status to %s.",
		shortID(ord.ID()), del.Status().String())
	return nd.broadcast(del, coordinators, delivery.KindCoordinatorStatusChanged, message, now)
}

// ComposeRescheduleNotices builds the notifications owed after a customer
// reschedule: a notice for the assigned courier, if any, and a coordinator
// broadcast carrying the old and new schedule.
func (nd NotificationDispatcher) ComposeRescheduleNotices(
	del *delivery.Delivery,
	ord *order.Order,
	courierID *kernel.UUID,
	oldDate *time.Time,
	oldWindow string,
	coordinators []*account.Account,
	now time.Time,
) ([]*delivery.Notification, error) {
	var out []*delivery.Notification

	newSchedule := scheduleText(del.ScheduledDate(), del.ScheduledWindow())

	if courierID != nil {
		message := fmt.Sprintf("The delivery for order #%s was rescheduled to %s.",
			shortID(ord.ID()), newSchedule)
		n, err := delivery.NewNotification(kernel.NewUUID(), del.ID(), *courierID, delivery.KindRescheduled, message, now)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}

	message := fmt.Sprintf("The customer rescheduled the delivery for order #%s from %s to %s.",
		shortID(ord.ID()), scheduleText(oldDate, oldWindow), newSchedule)
	notices, err := nd.broadcast(del, coordinators, delivery.KindCoordinatorRescheduled, message, now)
	if err != nil {
		return nil, err
	}
	return append(out, notices...), nil
}

// broadcast builds one notification per coordinator. Non-coordinator
// accounts in the slice are skipped rather than rejected, so callers can
// pass repository results as-is.
func (nd NotificationDispatcher) broadcast(
	del *delivery.Delivery,
	coordinators []*account.Account,
	kind delivery.NotificationKind,
	message string,
	now time.Time,
) ([]*delivery.Notification, error) {
	var out []*delivery.Notification
	for _, coordinator := range coordinators {
		if err := coordinator.Validate(); err != nil {
			return nil, err
		}
		if !coordinator.IsCoordinator() {
			continue
		}
		n, err := delivery.NewNotification(kernel.NewUUID(), del.ID(), coordinator.ID(), kind, message, now)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

// shortID renders the first UUID block for human-facing messages.
func shortID(id kernel.UUID) string {
	s := id.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}

func failureText(reason *delivery.FailureReason) string {
	if reason.Details() != "" {
		return reason.Details()
	}
	return reason.Code().String()
}

func scheduleText(date *time.Time, window string) string {
	if date == nil {
		return "unscheduled"
	}
	if window == "" {
		return date.Format("2006-01-02")
	}
	return date.Format("2006-01-02") + " " + window
}
