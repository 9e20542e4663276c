package commands

import (
	"context"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/order"
	"deliveryhub/internal/core/ports"
	"deliveryhub/internal/pkg/errs"
)

// CheckoutCommandHandler creates orders from checkout requests.
// Resolves catalog products at handling time and captures their names and
// prices into immutable line items, so later catalog changes never touch
// placed orders.
type CheckoutCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.CatalogService
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
func NewCheckoutCommandHandler(uowFactory OrderUoWFactory, catalog ports.CatalogService) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the checkout command and returns the created order.
func (h CheckoutCommandHandler) Handle(ctx context.Context, command CheckoutCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	lines := command.Lines()
	ids := make([]kernel.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := h.catalog.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[kernel.UUID]ports.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]*order.LineItem, 0, len(lines))
	for _, line := range lines {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("product", line.ProductID)
		}
		item, err := order.NewLineItem(kernel.NewUUID(), product.ID, product.Name, product.Price, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	contact, err := order.NewContact(command.FullName(), command.Email(), command.Address(), command.City(), command.PostalCode())
	if err != nil {
		return nil, err
	}

	aggregate, err := order.NewOrder(command.OrderID(), command.CustomerID(), contact, items, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return aggregate, nil
}
