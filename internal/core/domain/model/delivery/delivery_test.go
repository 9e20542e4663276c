package delivery_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), "manager", "", account.RoleManager, false)
	require.NoError(t, err)
	return acc
}

func newCourier(t *testing.T) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), "courier", "", account.RoleCourier, false)
	require.NoError(t, err)
	return acc
}

func newCustomer(t *testing.T) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), "customer", "", account.RoleCustomer, false)
	require.NoError(t, err)
	return acc
}

func newPendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return d
}

// assignedDelivery returns a delivery assigned to the given courier by a manager.
func assignedDelivery(t *testing.T, courier *account.Account) *delivery.Delivery {
	t.Helper()
	d := newPendingDelivery(t)
	require.NoError(t, d.AssignCourier(newManager(t), courier.ID(), nil, "", time.Now()))
	return d
}

func TestNewDelivery(t *testing.T) {
	id, orderID := kernel.NewUUID(), kernel.NewUUID()
	now := time.Now()

	d, err := delivery.NewDelivery(id, orderID, now)

	require.NoError(t, err)
	assert.True(t, d.ID().IsEqual(id))
	assert.True(t, d.OrderID().IsEqual(orderID))
	assert.Equal(t, delivery.StatusPending, d.Status())
	assert.Nil(t, d.CourierID())
	assert.Empty(t, d.PendingEvents())
	require.NoError(t, d.Validate())
}

func TestDelivery_AssignCourier(t *testing.T) {
	t.Run("assigns courier and forces assigned status", func(t *testing.T) {
		d := newPendingDelivery(t)
		courier := newCourier(t)
		now := time.Now()

		err := d.AssignCourier(newManager(t), courier.ID(), nil, "", now)

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		require.NotNil(t, d.CourierID())
		assert.True(t, d.CourierID().IsEqual(courier.ID()))

		events := d.PendingEvents()
		require.Len(t, events, 1)
		assert.Equal(t, delivery.StatusPending, events[0].StatusBefore())
		assert.Equal(t, delivery.StatusAssigned, events[0].StatusAfter())
	})

	t.Run("updates schedule when provided", func(t *testing.T) {
		d := newPendingDelivery(t)
		date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

		err := d.AssignCourier(newManager(t), newCourier(t).ID(), &date, "14:00-16:00", time.Now())

		require.NoError(t, err)
		require.NotNil(t, d.ScheduledDate())
		assert.Equal(t, date, *d.ScheduledDate())
		assert.Equal(t, "14:00-16:00", d.ScheduledWindow())
	})

	t.Run("keeps schedule when omitted", func(t *testing.T) {
		d := newPendingDelivery(t)
		date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		require.NoError(t, d.AssignCourier(newManager(t), newCourier(t).ID(), &date, "10:00-12:00", time.Now()))

		err := d.AssignCourier(newManager(t), newCourier(t).ID(), nil, "", time.Now())

		require.NoError(t, err)
		assert.Equal(t, date, *d.ScheduledDate())
		assert.Equal(t, "10:00-12:00", d.ScheduledWindow())
	})

	t.Run("only managers may assign", func(t *testing.T) {
		d := newPendingDelivery(t)

		err := d.AssignCourier(newCourier(t), newCourier(t).ID(), nil, "", time.Now())

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
		assert.Equal(t, delivery.StatusPending, d.Status())
	})

	t.Run("superuser acts as manager", func(t *testing.T) {
		d := newPendingDelivery(t)
		root, err := account.NewAccount(kernel.NewUUID(), "root", "", account.RoleCustomer, true)
		require.NoError(t, err)

		require.NoError(t, d.AssignCourier(root, newCourier(t).ID(), nil, "", time.Now()))
	})

	t.Run("rejected after delivery", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		require.NoError(t, d.Advance(courier, delivery.StatusDelivered, "", "", time.Now()))

		err := d.AssignCourier(newManager(t), newCourier(t).ID(), nil, "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("allowed after failure to retry", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		_, err := d.Fail(courier, delivery.FailureCodeRecipientAbsent, "", "", "", time.Now())
		require.NoError(t, err)

		require.NoError(t, d.AssignCourier(newManager(t), newCourier(t).ID(), nil, "", time.Now()))
		assert.Equal(t, delivery.StatusAssigned, d.Status())
	})
}

func TestDelivery_AutoAssignCourier(t *testing.T) {
	d := newPendingDelivery(t)
	courier := newCourier(t)

	err := d.AutoAssignCourier(courier.ID(), time.Now())

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusAssigned, d.Status())

	events := d.PendingEvents()
	require.Len(t, events, 1)
	assert.Nil(t, events[0].ActorID(), "system assignment has no acting account")
}

func TestDelivery_Advance(t *testing.T) {
	t.Run("assigned courier reports progress", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)

		err := d.Advance(courier, delivery.StatusEnRoute, "left depot", "photo.jpg", time.Now())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusEnRoute, d.Status())
		assert.Equal(t, "left depot", d.Notes())
		assert.Equal(t, "photo.jpg", d.Photo())

		events := d.PendingEvents()
		require.Len(t, events, 2)
		assert.Equal(t, delivery.StatusAssigned, events[1].StatusBefore())
		assert.Equal(t, delivery.StatusEnRoute, events[1].StatusAfter())
		assert.Equal(t, "left depot", events[1].Note())
	})

	t.Run("failed target requires a reason code", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)

		err := d.Advance(courier, delivery.StatusFailed, "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
	})

	t.Run("only the assigned courier may advance", func(t *testing.T) {
		d := assignedDelivery(t, newCourier(t))

		err := d.Advance(newCourier(t), delivery.StatusEnRoute, "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("managers may not advance", func(t *testing.T) {
		d := assignedDelivery(t, newCourier(t))

		err := d.Advance(newManager(t), delivery.StatusEnRoute, "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})

	t.Run("rejected once delivered", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		require.NoError(t, d.Advance(courier, delivery.StatusDelivered, "", "", time.Now()))

		err := d.Advance(courier, delivery.StatusEnRoute, "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDelivery_Fail(t *testing.T) {
	t.Run("appends ledger row with monotonic attempt numbers", func(t *testing.T) {
		courier := newCourier(t)
		customer := newCustomer(t)
		d := assignedDelivery(t, courier)

		first, err := d.Fail(courier, delivery.FailureCodeRecipientAbsent, "nobody home", "", "", time.Now())
		require.NoError(t, err)
		assert.Equal(t, 1, first.AttemptNumber())
		assert.Equal(t, delivery.StatusFailed, d.Status())
		assert.Equal(t, "nobody home", d.FailureNote())

		// Customer reschedules, manager reassigns, second attempt fails.
		tomorrow := time.Now().Add(24 * time.Hour)
		require.NoError(t, d.Reschedule(customer, tomorrow, "", time.Now()))
		require.NoError(t, d.AssignCourier(newManager(t), courier.ID(), nil, "", time.Now()))

		second, err := d.Fail(courier, delivery.FailureCodeAccessDenied, "", "", "", time.Now())
		require.NoError(t, err)
		assert.Equal(t, 2, second.AttemptNumber(), "attempt numbers never reset")
		assert.Equal(t, "access_denied", d.FailureNote(), "code stands in when details are empty")
		assert.Equal(t, 2, d.FailureCount())
		assert.Len(t, d.PendingFailures(), 2)
	})

	t.Run("rejects invalid code", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)

		_, err := d.Fail(courier, delivery.FailureCodeUnknown, "", "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		assert.Zero(t, d.FailureCount())
	})

	t.Run("only the assigned courier may report failure", func(t *testing.T) {
		d := assignedDelivery(t, newCourier(t))

		_, err := d.Fail(newCourier(t), delivery.FailureCodeOther, "x", "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestDelivery_Reschedule(t *testing.T) {
	t.Run("moves schedule and forces rescheduled status", func(t *testing.T) {
		d := newPendingDelivery(t)
		customer := newCustomer(t)
		newDate := time.Now().Add(48 * time.Hour)

		err := d.Reschedule(customer, newDate, "09:00-11:00", time.Now())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusRescheduled, d.Status())
		assert.Equal(t, "09:00-11:00", d.ScheduledWindow())

		events := d.PendingEvents()
		require.Len(t, events, 1)
		assert.Contains(t, events[0].Note(), "rescheduled from unscheduled")
	})

	t.Run("rejects past dates", func(t *testing.T) {
		d := newPendingDelivery(t)

		err := d.Reschedule(newCustomer(t), time.Now().Add(-48*time.Hour), "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, delivery.StatusPending, d.Status())
	})

	t.Run("today is allowed", func(t *testing.T) {
		d := newPendingDelivery(t)

		require.NoError(t, d.Reschedule(newCustomer(t), time.Now(), "", time.Now()))
	})

	t.Run("escapes failed status", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		_, err := d.Fail(courier, delivery.FailureCodeRefused, "", "", "", time.Now())
		require.NoError(t, err)

		err = d.Reschedule(newCustomer(t), time.Now().Add(24*time.Hour), "", time.Now())

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusRescheduled, d.Status())
	})

	t.Run("never escapes delivered", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		require.NoError(t, d.Advance(courier, delivery.StatusDelivered, "", "", time.Now()))

		err := d.Reschedule(newCustomer(t), time.Now().Add(24*time.Hour), "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejected while en route", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		require.NoError(t, d.Advance(courier, delivery.StatusEnRoute, "", "", time.Now()))

		err := d.Reschedule(newCustomer(t), time.Now().Add(24*time.Hour), "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("only customers may reschedule", func(t *testing.T) {
		d := newPendingDelivery(t)

		err := d.Reschedule(newCourier(t), time.Now().Add(24*time.Hour), "", time.Now())

		require.ErrorIs(t, err, errs.ErrNotAuthorized)
	})
}

func TestDelivery_AddComment(t *testing.T) {
	t.Run("snapshots author role", func(t *testing.T) {
		d := newPendingDelivery(t)
		courier := newCourier(t)

		comment, err := d.AddComment(courier, "gate code is 4711", "", time.Now())

		require.NoError(t, err)
		assert.Equal(t, account.RoleCourier, comment.AuthorRole())
		assert.Equal(t, "gate code is 4711", comment.Message())
		assert.Len(t, d.PendingComments(), 1)
		assert.Equal(t, delivery.StatusPending, d.Status(), "comments never change status")
	})

	t.Run("rejects empty message", func(t *testing.T) {
		d := newPendingDelivery(t)

		_, err := d.AddComment(newCustomer(t), "", "", time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("allowed on final deliveries", func(t *testing.T) {
		courier := newCourier(t)
		d := assignedDelivery(t, courier)
		require.NoError(t, d.Advance(courier, delivery.StatusDelivered, "", "", time.Now()))

		_, err := d.AddComment(newCustomer(t), "thanks!", "", time.Now())

		require.NoError(t, err)
	})
}

func TestDelivery_EstimatedArrival(t *testing.T) {
	orderCreated := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	restore := func(t *testing.T, date *time.Time, window string) *delivery.Delivery {
		t.Helper()
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			delivery.StatusPending, date, window,
			"", "", "", 0, 1,
			orderCreated, orderCreated,
		)
		require.NoError(t, err)
		return d
	}

	t.Run("scheduled date with parseable window", func(t *testing.T) {
		date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
		d := restore(t, &date, "14:00-16:00")

		got := d.EstimatedArrival(orderCreated)

		assert.Equal(t, time.Date(2026, 8, 10, 14, 0, 0, 0, time.UTC), got)
	})

	t.Run("unparseable window falls back to noon", func(t *testing.T) {
		date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
		d := restore(t, &date, "sometime after lunch")

		got := d.EstimatedArrival(orderCreated)

		assert.Equal(t, time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC), got)
	})

	t.Run("missing window falls back to noon", func(t *testing.T) {
		date := time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)
		d := restore(t, &date, "")

		got := d.EstimatedArrival(orderCreated)

		assert.Equal(t, time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC), got)
	})

	t.Run("no schedule means order creation plus a day", func(t *testing.T) {
		d := restore(t, nil, "")

		got := d.EstimatedArrival(orderCreated)

		assert.Equal(t, orderCreated.Add(24*time.Hour), got)
	})
}

func TestDelivery_CanNotifyProgress(t *testing.T) {
	courier := newCourier(t)
	d := assignedDelivery(t, courier)

	assert.False(t, d.CanNotifyProgress(), "no pings before the route starts")

	require.NoError(t, d.Advance(courier, delivery.StatusEnRoute, "", "", time.Now()))
	assert.True(t, d.CanNotifyProgress())

	require.NoError(t, d.Advance(courier, delivery.StatusDelivered, "", "", time.Now()))
	assert.False(t, d.CanNotifyProgress())
}

// TestDelivery_FullLifecycle walks a delivery through assignment, a failed
// attempt, a customer reschedule, reassignment and final delivery, checking
// the audit trail after each step.
func TestDelivery_FullLifecycle(t *testing.T) {
	courier := newCourier(t)
	customer := newCustomer(t)
	manager := newManager(t)
	d := newPendingDelivery(t)

	require.NoError(t, d.AssignCourier(manager, courier.ID(), nil, "", time.Now()))
	require.NoError(t, d.Advance(courier, delivery.StatusEnRoute, "", "", time.Now()))

	failure, err := d.Fail(courier, delivery.FailureCodeAddressNotFound, "street does not exist", "", "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, failure.AttemptNumber())

	require.NoError(t, d.Reschedule(customer, time.Now().Add(24*time.Hour), "10:00-12:00", time.Now()))
	require.NoError(t, d.AssignCourier(manager, courier.ID(), nil, "", time.Now()))
	require.NoError(t, d.Advance(courier, delivery.StatusEnRoute, "", "", time.Now()))
	require.NoError(t, d.Advance(courier, delivery.StatusDelivered, "handed over", "proof.jpg", time.Now()))

	assert.Equal(t, delivery.StatusDelivered, d.Status())
	assert.True(t, d.IsFinal())

	events := d.PendingEvents()
	require.Len(t, events, 7, "one audit event per transition")

	wantTransitions := [][2]delivery.Status{
		{delivery.StatusPending, delivery.StatusAssigned},
		{delivery.StatusAssigned, delivery.StatusEnRoute},
		{delivery.StatusEnRoute, delivery.StatusFailed},
		{delivery.StatusFailed, delivery.StatusRescheduled},
		{delivery.StatusRescheduled, delivery.StatusAssigned},
		{delivery.StatusAssigned, delivery.StatusEnRoute},
		{delivery.StatusEnRoute, delivery.StatusDelivered},
	}
	for i, want := range wantTransitions {
		assert.Equal(t, want[0], events[i].StatusBefore(), "event %d before", i)
		assert.Equal(t, want[1], events[i].StatusAfter(), "event %d after", i)
	}
}
