package commands

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
)

// SendCourierPingCommandHandler sends informational pings to customers.
// Only the assigned courier may ping, only while the delivery is on an
// active route, and only when the order has an owning customer.
type SendCourierPingCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewSendCourierPingCommandHandler creates a handler for courier pings.
func NewSendCourierPingCommandHandler(uowFactory DeliveryUoWFactory) SendCourierPingCommandHandler {
	return SendCourierPingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle sends the ping and returns the created notification.
func (h SendCourierPingCommandHandler) Handle(ctx context.Context, command SendCourierPingCommand) (*delivery.Notification, error) {
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

	del, err := uow.DeliveryRepository().Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	if actor.EffectiveRole() != account.RoleCourier || del.CourierID() == nil || !del.CourierID().IsEqual(actor.ID()) {
		return nil, errs.NewNotAuthorizedError("send courier ping", actor.EffectiveRole().String())
	}

	orderAggregate, err := uow.OrderRepository().Get(ctx, del.OrderID())
	if err != nil {
		return nil, err
	}

	notification, err := services.NewNotificationDispatcher().
		ComposeProgressPing(del, orderAggregate, actor, command.Kind(), command.EstimatedMinutes(), time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := uow.NotificationRepository().Add(ctx, notification); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return notification, nil
}
