package services_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(t *testing.T, name string, role account.Role) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), name, "", role, false)
	require.NoError(t, err)
	return acc
}

func newOrderFor(t *testing.T, customerID *kernel.UUID) *order.Order {
	t.Helper()
	contact, err := order.NewContact("Alice Doe", "alice@example.com", "1 Main St", "", "")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), "Widget", decimal.RequireFromString("10.00"), 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, contact, []*order.LineItem{item}, time.Now())
	require.NoError(t, err)
	return o
}

func enRouteDelivery(t *testing.T, courier *account.Account) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	require.NoError(t, d.AutoAssignCourier(courier.ID(), time.Now()))
	require.NoError(t, d.Advance(courier, delivery.StatusEnRoute, "", "", time.Now()))
	return d
}

func TestNotificationDispatcher_ComposeProgressPing(t *testing.T) {
	dispatcher := services.NewNotificationDispatcher()
	courier := newAccount(t, "carol", account.RoleCourier)

	t.Run("composes customer ping on active route", func(t *testing.T) {
		customerID := kernel.NewUUID()
		ord := newOrderFor(t, &customerID)
		d := enRouteDelivery(t, courier)

		n, err := dispatcher.ComposeProgressPing(d, ord, courier, delivery.KindArrived, 0, time.Now())

		require.NoError(t, err)
		assert.True(t, n.RecipientID().IsEqual(customerID))
		assert.True(t, n.DeliveryID().IsEqual(d.ID()))
		assert.Equal(t, delivery.KindArrived, n.Kind())
		assert.Contains(t, n.Message(), "carol has arrived")
		assert.False(t, n.IsRead())
	})

	t.Run("approaching defaults estimated minutes", func(t *testing.T) {
		customerID := kernel.NewUUID()
		ord := newOrderFor(t, &customerID)
		d := enRouteDelivery(t, courier)

		n, err := dispatcher.ComposeProgressPing(d, ord, courier, delivery.KindApproaching, 0, time.Now())

		require.NoError(t, err)
		assert.Contains(t, n.Message(), "30 minutes")
	})

	t.Run("approaching uses provided minutes", func(t *testing.T) {
		customerID := kernel.NewUUID()
		ord := newOrderFor(t, &customerID)
		d := enRouteDelivery(t, courier)

		n, err := dispatcher.ComposeProgressPing(d, ord, courier, delivery.KindApproaching, 10, time.Now())

		require.NoError(t, err)
		assert.Contains(t, n.Message(), "10 minutes")
	})

	t.Run("rejected off the active route", func(t *testing.T) {
		customerID := kernel.NewUUID()
		ord := newOrderFor(t, &customerID)
		d, err := delivery.NewDelivery(kernel.NewUUID(), ord.ID(), time.Now())
		require.NoError(t, err)

		_, err = dispatcher.ComposeProgressPing(d, ord, courier, delivery.KindArrived, 0, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejected without owning customer", func(t *testing.T) {
		ord := newOrderFor(t, nil)
		d := enRouteDelivery(t, courier)

		_, err := dispatcher.ComposeProgressPing(d, ord, courier, delivery.KindArrived, 0, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects lifecycle kinds", func(t *testing.T) {
		customerID := kernel.NewUUID()
		ord := newOrderFor(t, &customerID)
		d := enRouteDelivery(t, courier)

		_, err := dispatcher.ComposeProgressPing(d, ord, courier, delivery.KindFailed, 0, time.Now())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNotificationDispatcher_ComposeFailureNotices(t *testing.T) {
	dispatcher := services.NewNotificationDispatcher()
	courier := newAccount(t, "carol", account.RoleCourier)
	coordinators := []*account.Account{
		newAccount(t, "mary", account.RoleManager),
		newAccount(t, "mike", account.RoleManager),
	}

	failedDelivery := func(t *testing.T) (*delivery.Delivery, *delivery.FailureReason) {
		t.Helper()
		d := enRouteDelivery(t, courier)
		reason, err := d.Fail(courier, delivery.FailureCodeRecipientAbsent, "nobody home", "", "", time.Now())
		require.NoError(t, err)
		return d, reason
	}

	t.Run("notifies customer and coordinators", func(t *testing.T) {
		customerID := kernel.NewUUID()
		ord := newOrderFor(t, &customerID)
		d, reason := failedDelivery(t)

		notices, err := dispatcher.ComposeFailureNotices(d, ord, reason, coordinators, time.Now())

		require.NoError(t, err)
		require.Len(t, notices, 3)
		assert.Equal(t, delivery.KindFailed, notices[0].Kind())
		assert.True(t, notices[0].RecipientID().IsEqual(customerID))
		assert.Contains(t, notices[0].Message(), "attempt 1")
		assert.Contains(t, notices[0].Message(), "nobody home")
		assert.Equal(t, delivery.KindCoordinatorDeliveryFailed, notices[1].Kind())
		assert.Equal(t, delivery.KindCoordinatorDeliveryFailed, notices[2].Kind())
	})

	t.Run("skips customer copy without owner", func(t *testing.T) {
		ord := newOrderFor(t, nil)
		d, reason := failedDelivery(t)

		notices, err := dispatcher.ComposeFailureNotices(d, ord, reason, coordinators, time.Now())

		require.NoError(t, err)
		require.Len(t, notices, 2)
		for _, n := range notices {
			assert.Equal(t, delivery.KindCoordinatorDeliveryFailed, n.Kind())
		}
	})

	t.Run("non-coordinators in the audience are skipped", func(t *testing.T) {
		ord := newOrderFor(t, nil)
		d, reason := failedDelivery(t)
		audience := append([]*account.Account{newAccount(t, "random", account.RoleCustomer)}, coordinators...)

		notices, err := dispatcher.ComposeFailureNotices(d, ord, reason, audience, time.Now())

		require.NoError(t, err)
		assert.Len(t, notices, 2)
	})
}

func TestNotificationDispatcher_ComposeAssignmentNotices(t *testing.T) {
	dispatcher := services.NewNotificationDispatcher()
	courier := newAccount(t, "carol", account.RoleCourier)
	coordinators := []*account.Account{newAccount(t, "mary", account.RoleManager)}
	ord := newOrderFor(t, nil)

	t.Run("rider assigned only", func(t *testing.T) {
		d := enRouteDelivery(t, courier)

		notices, err := dispatcher.ComposeAssignmentNotices(d, ord, courier, false, coordinators, time.Now())

		require.NoError(t, err)
		require.Len(t, notices, 1)
		assert.Equal(t, delivery.KindCoordinatorRiderAssigned, notices[0].Kind())
		assert.Contains(t, notices[0].Message(), "carol")
	})

	t.Run("adds schedule notice when schedule moved", func(t *testing.T) {
		d, err := delivery.NewDelivery(kernel.NewUUID(), ord.ID(), time.Now())
		require.NoError(t, err)
		date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		manager := newAccount(t, "mary", account.RoleManager)
		require.NoError(t, d.AssignCourier(manager, courier.ID(), &date, "14:00-16:00", time.Now()))

		notices, err := dispatcher.ComposeAssignmentNotices(d, ord, courier, true, coordinators, time.Now())

		require.NoError(t, err)
		require.Len(t, notices, 2)
		assert.Equal(t, delivery.KindCoordinatorScheduleChanged, notices[1].Kind())
		assert.Contains(t, notices[1].Message(), "2026-09-15 14:00-16:00")
	})
}

func TestNotificationDispatcher_ComposeRescheduleNotices(t *testing.T) {
	dispatcher := services.NewNotificationDispatcher()
	coordinators := []*account.Account{newAccount(t, "mary", account.RoleManager)}
	ord := newOrderFor(t, nil)

	d, err := delivery.NewDelivery(kernel.NewUUID(), ord.ID(), time.Now())
	require.NoError(t, err)
	customer := newAccount(t, "alice", account.RoleCustomer)
	newDate := time.Now().Add(48 * time.Hour)
	require.NoError(t, d.Reschedule(customer, newDate, "09:00-11:00", time.Now()))

	t.Run("with assigned courier", func(t *testing.T) {
		courierID := kernel.NewUUID()

		notices, err := dispatcher.ComposeRescheduleNotices(d, ord, &courierID, nil, "", coordinators, time.Now())

		require.NoError(t, err)
		require.Len(t, notices, 2)
		assert.Equal(t, delivery.KindRescheduled, notices[0].Kind())
		assert.True(t, notices[0].RecipientID().IsEqual(courierID))
		assert.Equal(t, delivery.KindCoordinatorRescheduled, notices[1].Kind())
		assert.Contains(t, notices[1].Message(), "from unscheduled to")
	})

	t.Run("without assigned courier", func(t *testing.T) {
		notices, err := dispatcher.ComposeRescheduleNotices(d, ord, nil, nil, "", coordinators, time.Now())

		require.NoError(t, err)
		require.Len(t, notices, 1)
		assert.Equal(t, delivery.KindCoordinatorRescheduled, notices[0].Kind())
	})
}

func TestNotificationDispatcher_ComposeStatusNotices(t *testing.T) {
	dispatcher := services.NewNotificationDispatcher()
	courier := newAccount(t, "carol", account.RoleCourier)
	ord := newOrderFor(t, nil)
	d := enRouteDelivery(t, courier)

	notices, err := dispatcher.ComposeStatusNotices(d, ord, []*account.Account{
		newAccount(t, "mary", account.RoleManager),
	}, time.Now())

	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, delivery.KindCoordinatorStatusChanged, notices[0].Kind())
	assert.Contains(t, notices[0].Message(), "en_route")
}
