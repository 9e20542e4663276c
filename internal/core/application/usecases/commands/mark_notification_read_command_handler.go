package commands

import (
	"context"

	"deliveryhub/internal/pkg/errs"
)

// MarkNotificationReadCommandHandler marks notifications as seen.
// Only the addressed recipient may mark a notification; marking an
// already read one is a no-op.
type MarkNotificationReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationReadCommandHandler creates a handler for read receipts.
func NewMarkNotificationReadCommandHandler(uowFactory NotificationUoWFactory) MarkNotificationReadCommandHandler {
	return MarkNotificationReadCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle marks the notification read.
func (h MarkNotificationReadCommandHandler) Handle(ctx context.Context, command MarkNotificationReadCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := uow.AccountRepository().Get(ctx, command.ActorID())
	if err != nil {
		return err
	}

	notificationRepo := uow.NotificationRepository()
	notification, err := notificationRepo.Get(ctx, command.NotificationID())
	if err != nil {
		return err
	}

	if !notification.RecipientID().IsEqual(actor.ID()) {
		return errs.NewNotAuthorizedError("mark notification read", actor.EffectiveRole().String())
	}

	if !notification.IsRead() {
		notification.MarkRead()
		if err := notificationRepo.Update(ctx, notification); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
