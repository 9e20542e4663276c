package commands

import (
	"context"
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler processes payment confirmations.
// Marks the order paid, provisions the delivery when missing, and assigns
// the courier with the fewest open deliveries. All of it commits in one
// transaction so a confirmed payment never leaves a half-provisioned
// delivery behind.
type ConfirmPaymentCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(uowFactory DeliveryUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment confirmation and returns the delivery
// fulfilling the order, existing or newly provisioned.
func (h ConfirmPaymentCommandHandler) Handle(ctx context.Context, command ConfirmPaymentCommand) (*delivery.Delivery, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if !aggregate.Paid() {
		aggregate.MarkPaid(now)
		if err := orderRepo.Update(ctx, aggregate); err != nil {
			return nil, err
		}
	}

	deliveryRepo := uow.DeliveryRepository()
	del, err := deliveryRepo.GetByOrderID(ctx, aggregate.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		del, err = provisionDelivery(ctx, uow, aggregate.ID(), now)
		if err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return del, nil
}

// provisionDelivery creates a pending delivery for the order and assigns
// the least-loaded courier, notifying coordinators of the assignment.
// When no courier accounts exist the delivery stays pending; the
// provisioning job retries later.
func provisionDelivery(ctx context.Context, uow DeliveryUoW, orderID kernel.UUID, now time.Time) (*delivery.Delivery, error) {
	del, err := delivery.NewDelivery(kernel.NewUUID(), orderID, now)
	if err != nil {
		return nil, err
	}

	accountRepo := uow.AccountRepository()
	loads, err := accountRepo.GetCourierLoads(ctx)
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if len(loads) > 0 {
		id, err := services.NewCourierDispatcher().Dispatch(del, loads, now)
		if err != nil {
			return nil, err
		}
		courierID = &id
	}

	if err := uow.DeliveryRepository().Add(ctx, del); err != nil {
		return nil, err
	}

	if courierID == nil {
		return del, nil
	}

	courier, err := accountRepo.Get(ctx, *courierID)
	if err != nil {
		return nil, err
	}

	coordinators, err := accountRepo.GetAllCoordinators(ctx)
	if err != nil {
		return nil, err
	}

	orderAggregate, err := uow.OrderRepository().Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	notices, err := services.NewNotificationDispatcher().
		ComposeAssignmentNotices(del, orderAggregate, courier, false, coordinators, now)
	if err != nil {
		return nil, err
	}

	if err := uow.NotificationRepository().Add(ctx, notices...); err != nil {
		return nil, err
	}

	return del, nil
}
