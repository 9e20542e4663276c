package delivery

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with defined transitions to ensure
// deliveries follow the correct fulfillment workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> EnRoute ──┬──> Delivered
//	               ^  ^                ├──> Failed ──┐
//	               │  │                └──> Rescheduled
//	 (reassignment)┘  │                        │
//	                  └────────────────────────┘
//	        (Failed -> Rescheduled via customer reschedule only)
//
// Delivered is terminal with no further transitions. Failed is terminal
// except for the customer reschedule escape.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status before a courier is assigned.
	StatusPending

	// StatusAssigned indicates a courier has been assigned.
	StatusAssigned

	// StatusEnRoute indicates the courier is actively delivering.
	StatusEnRoute

	// StatusDelivered indicates successful delivery. Terminal.
	StatusDelivered

	// StatusFailed indicates a failed delivery attempt. Terminal except
	// for the customer reschedule escape.
	StatusFailed

	// StatusRescheduled indicates the customer moved the delivery to a
	// new date after creation or a failed attempt.
	StatusRescheduled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "unknown",
		StatusPending:     "pending",
		StatusAssigned:    "assigned",
		StatusEnRoute:     "en_route",
		StatusDelivered:   "delivered",
		StatusFailed:      "failed",
		StatusRescheduled: "rescheduled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:     "pending",
		StatusAssigned:    "assigned",
		StatusEnRoute:     "en_route",
		StatusDelivered:   "delivered",
		StatusFailed:      "failed",
		StatusRescheduled: "rescheduled",
	}
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// StatusFromString parses a wire status name.
// Unrecognized names map to StatusUnknown.
func StatusFromString(name string) Status {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status
		}
	}
	return StatusUnknown
}

// IsFinal reports whether the status admits no further courier progress.
// Delivered is final absolutely; Failed is final for everyone except the
// customer reschedule escape.
func (s Status) IsFinal() bool {
	return s == StatusDelivered || s == StatusFailed
}

// ValidateAssign checks if the status allows courier assignment without
// performing the transition.
//
// Assignment is allowed from every status except Delivered, so managers
// can reassign active deliveries and recover failed ones.
func (s Status) ValidateAssign() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == StatusDelivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}
	return nil
}

// Assign transitions the status to Assigned.
//
// Returns:
//   - (StatusAssigned, nil) on valid transition
//   - (0, error) if the delivery has already been delivered
//
// This method is used by Delivery.AssignCourier() to enforce state transitions.
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}
	return StatusAssigned, nil
}

// ValidateAdvance checks if a courier may move the status to target
// without performing the transition.
//
// Couriers report EnRoute, Delivered, Failed or Rescheduled. No progress
// is allowed once the status is final.
func (s Status) ValidateAdvance(target Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsFinal() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is a final status", s.String()),
		)
	}

	switch target {
	case StatusEnRoute, StatusDelivered, StatusFailed, StatusRescheduled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status for a courier to report", target.String()),
		)
	}
}

// Advance transitions the status to the courier-reported target.
//
// Returns:
//   - (target, nil) on valid transition
//   - (0, error) if the current status is final or target is not reportable
func (s Status) Advance(target Status) (Status, error) {
	if err := s.ValidateAdvance(target); err != nil {
		return 0, err
	}
	return target, nil
}

// ValidateReschedule checks if a customer may reschedule from the current
// status without performing the transition.
//
// Rescheduling is allowed from Pending, Assigned, Rescheduled and Failed.
// The Failed case is the only escape out of a final status.
func (s Status) ValidateReschedule() error {
	switch s {
	case StatusPending, StatusAssigned, StatusRescheduled, StatusFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to reschedule", s.String()),
		)
	}
}

// Reschedule transitions the status to Rescheduled.
//
// Returns:
//   - (StatusRescheduled, nil) on valid transition
//   - (0, error) if the current status does not allow rescheduling
func (s Status) Reschedule() (Status, error) {
	if err := s.ValidateReschedule(); err != nil {
		return 0, err
	}
	return StatusRescheduled, nil
}

// AllowsProgressPing reports whether informational courier pings may be
// sent in this status. Pings are only meaningful while the courier is on
// an active route.
func (s Status) AllowsProgressPing() bool {
	return s == StatusEnRoute || s == StatusRescheduled
}
