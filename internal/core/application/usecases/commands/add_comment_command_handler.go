package commands

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/pkg/errs"
)

// AddCommentCommandHandler posts comments to delivery threads.
// Access follows delivery visibility: customers comment on their own
// deliveries, couriers on their assigned ones, managers on any.
type AddCommentCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAddCommentCommandHandler creates a handler for delivery comments.
func NewAddCommentCommandHandler(uowFactory DeliveryUoWFactory) AddCommentCommandHandler {
	return AddCommentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle posts the comment and returns it.
func (h AddCommentCommandHandler) Handle(ctx context.Context, command AddCommentCommand) (*delivery.Comment, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.AccountRepository().Get(ctx, command.ActorID())
	if err != nil {
		return nil, err
	}

	deliveryRepo := uow.DeliveryRepository()
	del, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	orderAggregate, err := uow.OrderRepository().Get(ctx, del.OrderID())
	if err != nil {
		return nil, err
	}

	if err := validateDeliveryAccess(actor, del, orderAggregate, "comment on delivery"); err != nil {
		return nil, err
	}

	comment, err := del.AddComment(actor, command.Message(), command.Photo(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := deliveryRepo.Update(ctx, del); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return comment, nil
}

// validateDeliveryAccess enforces delivery visibility: the owning
// customer, the assigned courier and any coordinator may interact with a
// delivery; everyone else may not.
func validateDeliveryAccess(actor *account.Account, del *delivery.Delivery, orderAggregate *order.Order, operation string) error {
	switch actor.EffectiveRole() {
	case account.RoleManager:
		return nil
	case account.RoleCustomer:
		if orderAggregate.CustomerID() != nil && orderAggregate.CustomerID().IsEqual(actor.ID()) {
			return nil
		}
	case account.RoleCourier:
		if del.CourierID() != nil && del.CourierID().IsEqual(actor.ID()) {
			return nil
		}
	}
	return errs.NewNotAuthorizedError(operation, actor.EffectiveRole().String())
}
