package commands_test

import (
	"testing"
	"time"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRescheduleDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := makeAccount(t, "alice", account.RoleCustomer)
	manager := makeAccount(t, "mary", account.RoleManager)
	courier := makeAccount(t, "carol", account.RoleCourier)
	customerID := customer.ID()
	ord := makeOrder(t, &customerID)
	del := makeAssignedDelivery(t, ord.ID(), courier)

	newDate := time.Now().Add(72 * time.Hour)
	cmd, err := commands.NewRescheduleDeliveryCommand(customer.ID(), del.ID(), newDate, "10:00-12:00")
	require.NoError(t, err)

	accountRepo := new(MockAccountRepository)
	accountRepo.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	accountRepo.On("GetAllCoordinators", ctx).Return([]*account.Account{manager}, nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", ctx, del.ID()).Return(del, nil).Once()
	deliveryRepo.On("Update", ctx, del).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	notificationRepo := new(MockNotificationRepository)
	notificationRepo.On("Add", ctx, mock.MatchedBy(func(ns []*delivery.Notification) bool {
		return len(ns) == 2 &&
			ns[0].Kind() == delivery.KindRescheduled &&
			ns[0].RecipientID().IsEqual(courier.ID()) &&
			ns[1].Kind() == delivery.KindCoordinatorRescheduled
	})).Return(nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accountRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("NotificationRepository").Return(notificationRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRescheduleDeliveryCommandHandler(factory)
	got, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, delivery.StatusRescheduled, got.Status())
	assert.Equal(t, "10:00-12:00", got.ScheduledWindow())
	notificationRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRescheduleDeliveryCommandHandler_Handle_NotTheOwner(t *testing.T) {
	ctx := t.Context()
	stranger := makeAccount(t, "eve", account.RoleCustomer)
	ownerID := kernel.NewUUID()
	ord := makeOrder(t, &ownerID)
	del := makePendingDelivery(t, ord.ID())

	cmd, err := commands.NewRescheduleDeliveryCommand(stranger.ID(), del.ID(), time.Now().Add(24*time.Hour), "")
	require.NoError(t, err)

	accountRepo := new(MockAccountRepository)
	accountRepo.On("Get", ctx, stranger.ID()).Return(stranger, nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", ctx, del.ID()).Return(del, nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accountRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRescheduleDeliveryCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Equal(t, delivery.StatusPending, del.Status())
	deliveryRepo.AssertNotCalled(t, "Update", ctx, del)
}
