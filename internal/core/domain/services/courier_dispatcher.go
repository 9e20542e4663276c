package services

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
)

// ErrCourierNotFound is returned when no courier is available for automatic
// assignment. This occurs when no candidate loads are provided, e.g. when
// the system has no courier accounts at all.
var ErrCourierNotFound = errors.New("courier not found")

// CourierLoad pairs a courier account with its number of open deliveries
// (every status except delivered). Loads are computed by the read side and
// fed to the dispatcher.
type CourierLoad struct {
	CourierID kernel.UUID
	Active    int
}

// CourierDispatcher is a domain service that picks the courier for
// automatic assignment after payment confirmation.
//
// Business rules:
//   - The courier with the fewest open deliveries wins
//   - Ties break by courier id, ascending, so assignment is deterministic
//   - Assignment is recorded as a system action with no acting account
type CourierDispatcher struct{}

// NewCourierDispatcher creates a new CourierDispatcher instance.
func NewCourierDispatcher() CourierDispatcher {
	return CourierDispatcher{}
}

// Dispatch selects the least-loaded courier and assigns it to the delivery.
//
// Returns:
//   - the selected courier id on success
//   - ErrCourierNotFound when no candidates were provided
//   - validation or transition errors from the delivery aggregate
func (d CourierDispatcher) Dispatch(del *delivery.Delivery, loads []CourierLoad, now time.Time) (kernel.UUID, error) {
	if err := del.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	courierID, err := d.selectCourier(loads)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err := del.AutoAssignCourier(courierID, now); err != nil {
		return kernel.UUID{}, err
	}

	return courierID, nil
}

// selectCourier finds the least-loaded candidate, breaking ties by courier
// id ascending.
func (d CourierDispatcher) selectCourier(loads []CourierLoad) (kernel.UUID, error) {
	var (
		best  *CourierLoad
		found bool
	)

	for i := range loads {
		candidate := &loads[i]
		if !found {
			best, found = candidate, true
			continue
		}
		if candidate.Active < best.Active {
			best = candidate
			continue
		}
		if candidate.Active == best.Active && candidate.CourierID.String() < best.CourierID.String() {
			best = candidate
		}
	}

	if !found {
		return kernel.UUID{}, ErrCourierNotFound
	}
	return best.CourierID, nil
}
