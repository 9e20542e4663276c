package commands

import (
	"context"
	"fmt"
	"time"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"
)

// AssignCourierCommandHandler orchestrates manager-driven courier
// assignment: mutates the delivery, verifies the target account really is
// a courier, and broadcasts the assignment (and any schedule change) to
// coordinators, all in one transaction.
type AssignCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
func NewAssignCourierCommandHandler(uowFactory DeliveryUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment and returns the updated delivery.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) (*delivery.Delivery, error) {
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

	courier, err := accountRepo.Get(ctx, command.CourierID())
	if err != nil {
		return nil, err
	}
	if courier.EffectiveRole() != account.RoleCourier {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"courier",
			fmt.Errorf("account %s is not a courier", courier.ID()),
		)
	}

	deliveryRepo := uow.DeliveryRepository()
	del, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return nil, err
	}

	oldDate := del.ScheduledDate()
	oldWindow := del.ScheduledWindow()

	if err := del.AssignCourier(actor, courier.ID(), command.ScheduledDate(), command.ScheduledWindow(), now); err != nil {
		return nil, err
	}

	if err := deliveryRepo.Update(ctx, del); err != nil {
		return nil, err
	}

	orderAggregate, err := uow.OrderRepository().Get(ctx, del.OrderID())
	if err != nil {
		return nil, err
	}

	coordinators, err := accountRepo.GetAllCoordinators(ctx)
	if err != nil {
		return nil, err
	}

	scheduleChanged := scheduleMoved(oldDate, oldWindow, del.ScheduledDate(), del.ScheduledWindow())
	notices, err := services.NewNotificationDispatcher().
		ComposeAssignmentNotices(del, orderAggregate, courier, scheduleChanged, coordinators, now)
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

func scheduleMoved(oldDate *time.Time, oldWindow string, newDate *time.Time, newWindow string) bool {
	if oldWindow != newWindow {
		return true
	}
	switch {
	case oldDate == nil && newDate == nil:
		return false
	case oldDate == nil || newDate == nil:
		return true
	default:
		return !oldDate.Equal(*newDate)
	}
}
