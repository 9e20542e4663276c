package commands

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/services"
)

// AdvanceStatusCommandHandler processes courier status reports. Failed
// reports append to the failure ledger and alert the customer directly;
// reports that move the status end with a coordinator broadcast.
// Mutation, audit event and notifications commit together.
type AdvanceStatusCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewAdvanceStatusCommandHandler creates a handler for courier status reports.
func NewAdvanceStatusCommandHandler(uowFactory DeliveryUoWFactory) AdvanceStatusCommandHandler {
	return AdvanceStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the status report and returns the updated delivery.
func (h AdvanceStatusCommandHandler) Handle(ctx context.Context, command AdvanceStatusCommand) (*delivery.Delivery, error) {
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

	statusBefore := del.Status()

	var failure *delivery.FailureReason
	if command.Target() == delivery.StatusFailed {
		failure, err = del.Fail(actor, command.FailureCode(), command.FailureDetails(), command.Note(), command.Photo(), now)
	} else {
		err = del.Advance(actor, command.Target(), command.Note(), command.Photo(), now)
	}
	if err != nil {
		return nil, err
	}

	if err := deliveryRepo.Update(ctx, del); err != nil {
		return nil, err
	}

	// A repeated report of the current status only refreshes notes and
	// photo; coordinators are alerted when the status actually moved.
	if failure != nil || del.Status() != statusBefore {
		orderAggregate, err := uow.OrderRepository().Get(ctx, del.OrderID())
		if err != nil {
			return nil, err
		}

		coordinators, err := accountRepo.GetAllCoordinators(ctx)
		if err != nil {
			return nil, err
		}

		dispatcher := services.NewNotificationDispatcher()
		var notices []*delivery.Notification
		if failure != nil {
			notices, err = dispatcher.ComposeFailureNotices(del, orderAggregate, failure, coordinators, now)
		} else {
			notices, err = dispatcher.ComposeStatusNotices(del, orderAggregate, coordinators, now)
		}
		if err != nil {
			return nil, err
		}

		if err := uow.NotificationRepository().Add(ctx, notices...); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return del, nil
}
