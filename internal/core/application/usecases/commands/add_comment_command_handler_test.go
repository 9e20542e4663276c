package commands_test

import (
	"testing"

	"deliveryhub/internal/core/application/usecases/commands"
	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCommentCommandHandler_Handle_AssignedCourier(t *testing.T) {
	ctx := t.Context()
	courier := makeAccount(t, "carol", account.RoleCourier)
	ord := makeOrder(t, nil)
	del := makeAssignedDelivery(t, ord.ID(), courier)

	cmd, err := commands.NewAddCommentCommand(courier.ID(), del.ID(), "gate code is 4711", "")
	require.NoError(t, err)

	accountRepo := new(MockAccountRepository)
	accountRepo.On("Get", ctx, courier.ID()).Return(courier, nil).Once()

	deliveryRepo := new(MockDeliveryRepository)
	deliveryRepo.On("Get", ctx, del.ID()).Return(del, nil).Once()
	deliveryRepo.On("Update", ctx, del).Return(nil).Once()

	orderRepo := new(MockOrderRepository)
	orderRepo.On("Get", ctx, ord.ID()).Return(ord, nil).Once()

	uow := new(MockDeliveryUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AccountRepository").Return(accountRepo)
	uow.On("DeliveryRepository").Return(deliveryRepo)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockDeliveryUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddCommentCommandHandler(factory)
	comment, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, account.RoleCourier, comment.AuthorRole())
	assert.Equal(t, "gate code is 4711", comment.Message())
	deliveryRepo.AssertExpectations(t)
}

func TestAddCommentCommandHandler_Handle_StrangerRejected(t *testing.T) {
	ctx := t.Context()
	assigned := makeAccount(t, "carol", account.RoleCourier)
	stranger := makeAccount(t, "dave", account.RoleCourier)
	ord := makeOrder(t, nil)
	del := makeAssignedDelivery(t, ord.ID(), assigned)

	cmd, err := commands.NewAddCommentCommand(stranger.ID(), del.ID(), "hello", "")
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

	h := commands.NewAddCommentCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	assert.Empty(t, del.PendingComments())
}
