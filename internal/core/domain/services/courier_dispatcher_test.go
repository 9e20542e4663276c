package services_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingDelivery(t *testing.T) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return d
}

func TestCourierDispatcher_Dispatch(t *testing.T) {
	dispatcher := services.NewCourierDispatcher()

	t.Run("picks the least loaded courier", func(t *testing.T) {
		d := newPendingDelivery(t)
		busy, idle := kernel.NewUUID(), kernel.NewUUID()

		got, err := dispatcher.Dispatch(d, []services.CourierLoad{
			{CourierID: busy, Active: 3},
			{CourierID: idle, Active: 1},
		}, time.Now())

		require.NoError(t, err)
		assert.True(t, got.IsEqual(idle))
		assert.Equal(t, delivery.StatusAssigned, d.Status())
		require.NotNil(t, d.CourierID())
		assert.True(t, d.CourierID().IsEqual(idle))
	})

	t.Run("breaks ties by courier id ascending", func(t *testing.T) {
		a, err := kernel.UUIDFromString("11111111-1111-1111-1111-111111111111")
		require.NoError(t, err)
		b, err := kernel.UUIDFromString("22222222-2222-2222-2222-222222222222")
		require.NoError(t, err)

		got, err := dispatcher.Dispatch(newPendingDelivery(t), []services.CourierLoad{
			{CourierID: b, Active: 2},
			{CourierID: a, Active: 2},
		}, time.Now())

		require.NoError(t, err)
		assert.True(t, got.IsEqual(a))
	})

	t.Run("fails without candidates", func(t *testing.T) {
		_, err := dispatcher.Dispatch(newPendingDelivery(t), nil, time.Now())

		require.ErrorIs(t, err, services.ErrCourierNotFound)
	})

	t.Run("fails on delivered deliveries", func(t *testing.T) {
		d, err := delivery.RestoreDelivery(
			kernel.NewUUID(), kernel.NewUUID(), nil,
			delivery.StatusDelivered, nil, "", "", "", "", 0, 1,
			time.Now(), time.Now(),
		)
		require.NoError(t, err)

		_, err = dispatcher.Dispatch(d, []services.CourierLoad{{CourierID: kernel.NewUUID()}}, time.Now())

		require.Error(t, err)
	})
}
