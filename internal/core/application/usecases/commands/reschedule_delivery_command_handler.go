package commands

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
)

// RescheduleDeliveryCommandHandler processes customer reschedules. Only
// the order's owning customer may reschedule; the assigned courier and
// the coordinators are told about the move with before and after values.
type RescheduleDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewRescheduleDeliveryCommandHandler creates a handler for customer reschedules.
func NewRescheduleDeliveryCommandHandler(uowFactory DeliveryUoWFactory) RescheduleDeliveryCommandHandler {
	return RescheduleDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the reschedule and returns the updated delivery.
func (h RescheduleDeliveryCommandHandler) Handle(ctx context.Context, command RescheduleDeliveryCommand) (*delivery.Delivery, error) {
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

	now := time.Now().UTC()
	accountRepo := uow.AccountRepository()

	actor, err := accountRepo.Get(ctx, command.ActorID())
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

	if orderAggregate.CustomerID() == nil || !orderAggregate.CustomerID().IsEqual(actor.ID()) {
		return nil, errs.NewNotAuthorizedError("reschedule delivery", actor.EffectiveRole().String())
	}

	oldDate := del.ScheduledDate()
	oldWindow := del.ScheduledWindow()

	if err := del.Reschedule(actor, command.NewDate(), command.NewWindow(), now); err != nil {
		return nil, err
	}

	if err := deliveryRepo.Update(ctx, del); err != nil {
		return nil, err
	}

	coordinators, err := accountRepo.GetAllCoordinators(ctx)
	if err != nil {
		return nil, err
	}

	notices, err := services.NewNotificationDispatcher().
		ComposeRescheduleNotices(del, orderAggregate, del.CourierID(), oldDate, oldWindow, coordinators, now)
	if err != nil {
		return nil, err
	}

	if err := uow.NotificationRepository().Add(ctx, notices...); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return del, nil
}
