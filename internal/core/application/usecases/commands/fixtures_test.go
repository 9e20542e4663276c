package commands_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func makeAccount(t *testing.T, name string, role account.Role) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(kernel.NewUUID(), name, "", role, false)
	require.NoError(t, err)
	return acc
}

func makeOrder(t *testing.T, customerID *kernel.UUID) *order.Order {
	t.Helper()
	contact, err := order.NewContact("Alice Doe", "alice@example.com", "1 Main St", "", "")
	require.NoError(t, err)
	item, err := order.NewLineItem(kernel.NewUUID(), kernel.NewUUID(), "Widget", decimal.RequireFromString("10.00"), 1)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, contact, []*order.LineItem{item}, time.Now())
	require.NoError(t, err)
	return o
}

func makePendingDelivery(t *testing.T, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()
	d, err := delivery.NewDelivery(kernel.NewUUID(), orderID, time.Now())
	require.NoError(t, err)
	return d
}

func makeAssignedDelivery(t *testing.T, orderID kernel.UUID, courier *account.Account) *delivery.Delivery {
	t.Helper()
	d := makePendingDelivery(t, orderID)
	require.NoError(t, d.AutoAssignCourier(courier.ID(), time.Now()))
	return d
}
