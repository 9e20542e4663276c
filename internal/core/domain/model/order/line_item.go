package order

import (
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrProductNameIsRequired is returned when a line item carries no product name snapshot.
	ErrProductNameIsRequired = errs.NewValueIsRequiredError("product name")
	// ErrLineItemIsNotConstructed is returned when using an improperly initialized LineItem.
	ErrLineItemIsNotConstructed = errors.New("LineItem must be created via NewLineItem constructor")
)

// LineItem is one purchased position of an order. The unit price and product
// name are snapshots captured at purchase time: later catalog changes never
// touch them. Line items are immutable once created.
type LineItem struct {
	// id is the unique identifier for the line item
	id kernel.UUID

	// productID references the catalog product this position was built from
	productID kernel.UUID

	// productName is the product name captured at purchase time
	productName string

	// unitPrice is the per-unit price captured at purchase time, 2 decimals
	unitPrice decimal.Decimal

	// quantity is the number of units purchased (at least 1)
	quantity int

	// guard ensures the line item was created via NewLineItem
	guard guard.ConstructorGuard
}

// NewLineItem creates a validated line item with price and name captured
// at purchase time.
//
// The unit price is rounded to 2 decimal places on capture and must not be
// negative. Quantity must be at least 1.
func NewLineItem(id, productID kernel.UUID, productName string, unitPrice decimal.Decimal, quantity int) (*LineItem, error) {
	item := &LineItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setProductName(productName),
		item.setUnitPrice(unitPrice),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreLineItem reconstructs a line item from persistent storage.
func RestoreLineItem(id, productID kernel.UUID, productName string, unitPrice decimal.Decimal, quantity int) (*LineItem, error) {
	return NewLineItem(id, productID, productName, unitPrice, quantity)
}

// Validate checks if the LineItem was properly constructed.
func (li *LineItem) Validate() error {
	if li == nil {
		return ErrLineItemIsNotConstructed
	}
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID returns the line item's unique identifier.
func (li *LineItem) ID() kernel.UUID {
	return li.id
}

// ProductID returns the catalog product reference.
func (li *LineItem) ProductID() kernel.UUID {
	return li.productID
}

// ProductName returns the product name snapshot.
func (li *LineItem) ProductName() string {
	return li.productName
}

// UnitPrice returns the captured per-unit price.
func (li *LineItem) UnitPrice() decimal.Decimal {
	return li.unitPrice
}

// Quantity returns the number of units purchased.
func (li *LineItem) Quantity() int {
	return li.quantity
}

// Subtotal returns unit price times quantity.
func (li *LineItem) Subtotal() decimal.Decimal {
	return li.unitPrice.Mul(decimal.NewFromInt(int64(li.quantity)))
}

func (li *LineItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.id = id
	return nil
}

func (li *LineItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	li.productID = id
	return nil
}

func (li *LineItem) setProductName(name string) error {
	if name == "" {
		return ErrProductNameIsRequired
	}
	li.productName = name
	return nil
}

func (li *LineItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", errors.New(price.String()+" is negative"))
	}
	li.unitPrice = price.Round(2)
	return nil
}

func (li *LineItem) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	li.quantity = quantity
	return nil
}
