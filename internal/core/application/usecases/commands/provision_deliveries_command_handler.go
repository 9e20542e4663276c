package commands

import (
	"context"
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
)

// ProvisionDeliveriesCommandHandler sweeps paid orders without deliveries
// and provisions one for each, with automatic courier assignment. Each
// order is processed in its own transaction so one broken order does not
// block the rest of the sweep.
type ProvisionDeliveriesCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewProvisionDeliveriesCommandHandler creates a handler for the provisioning sweep.
func NewProvisionDeliveriesCommandHandler(uowFactory DeliveryUoWFactory) ProvisionDeliveriesCommandHandler {
	return ProvisionDeliveriesCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle provisions deliveries for all paid orders that lack one.
// Returns how many deliveries were provisioned and the first error
// encountered, if any.
func (h ProvisionDeliveriesCommandHandler) Handle(ctx context.Context, command ProvisionDeliveriesCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	orderIDs, err := h.collectUnprovisioned(ctx)
	if err != nil {
		return 0, err
	}

	provisioned := 0
	for _, orderID := range orderIDs {
		if err := h.provisionOne(ctx, orderID); err != nil {
			return provisioned, err
		}
		provisioned++
	}
	return provisioned, nil
}

func (h ProvisionDeliveriesCommandHandler) collectUnprovisioned(ctx context.Context) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.OrderRepository().GetAllPaidWithoutDelivery(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(orders))
	for _, aggregate := range orders {
		ids = append(ids, aggregate.ID())
	}
	return ids, nil
}

// provisionOne provisions the delivery for a single order in its own
// transaction. An order provisioned concurrently since the sweep started
// is skipped silently.
func (h ProvisionDeliveriesCommandHandler) provisionOne(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.DeliveryRepository().GetByOrderID(ctx, orderID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if _, err := provisionDelivery(ctx, uow, orderID, time.Now().UTC()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
