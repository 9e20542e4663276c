package order

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrLineItemsAreRequired is returned when attempting to create an order without items.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("line items")
)

// Order represents a purchase: an immutable-once-created snapshot of what was
// bought, for how much, and where it ships. The only mutation an order ever
// sees after creation is the paid flag flipping to true.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have at least one line item
//   - Total amount equals the sum of line-item subtotals at creation time
//     and is never recomputed afterward, regardless of catalog changes
//   - The customer reference is optional: account deletion does not cascade
//     into orders
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID is the owning account (nil when the account was deleted)
	customerID *kernel.UUID

	// contact holds the shipping and contact snapshot
	contact Contact

	// paid marks whether the payment collaborator confirmed the order
	paid bool

	// totalAmount is the fixed total, 2 decimals, set once at creation
	totalAmount decimal.Decimal

	// items are the immutable purchased positions
	items []*LineItem

	createdAt time.Time
	updatedAt time.Time

	// guard ensures the order was created via a constructor
	guard guard.ConstructorGuard
}

// NewOrder creates a new Order. The total amount is computed here, once,
// as the sum of line-item subtotals; it is never recomputed afterward.
//
// Parameters:
//   - id: Unique identifier for the order
//   - customerID: Owning account, or nil
//   - contact: Validated shipping/contact snapshot
//   - items: Purchased positions with captured prices (at least one)
//   - now: Creation instant
func NewOrder(id kernel.UUID, customerID *kernel.UUID, contact Contact, items []*LineItem, now time.Time) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setContact(contact),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	o.totalAmount = total.Round(2)
	o.createdAt = now
	o.updatedAt = now
	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage.
// The persisted total amount is taken as-is and deliberately not
// re-derived from the items: the total is a fact about the purchase,
// not a projection of current data.
func RestoreOrder(
	id kernel.UUID,
	customerID *kernel.UUID,
	contact Contact,
	paid bool,
	totalAmount decimal.Decimal,
	items []*LineItem,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setContact(contact),
		o.setItems(items),
	); err != nil {
		return nil, err
	}

	o.paid = paid
	o.totalAmount = totalAmount
	o.createdAt = createdAt
	o.updatedAt = updatedAt
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the owning account's ID, or nil when the order
// has no surviving owner.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// Contact returns the shipping and contact snapshot.
func (o *Order) Contact() Contact {
	return o.contact
}

// Paid reports whether payment was confirmed for the order.
func (o *Order) Paid() bool {
	return o.paid
}

// TotalAmount returns the fixed order total.
func (o *Order) TotalAmount() decimal.Decimal {
	return o.totalAmount
}

// Items returns the purchased positions.
// The returned slice is a copy to prevent external modification.
func (o *Order) Items() []*LineItem {
	out := make([]*LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// CreatedAt returns the creation instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last mutation instant.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// MarkPaid records the payment collaborator's confirmation.
// Marking an already-paid order again is a no-op.
func (o *Order) MarkPaid(now time.Time) {
	if o.paid {
		return
	}
	o.paid = true
	o.updatedAt = now
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCustomerID validates and sets the optional owning account.
func (o *Order) setCustomerID(customerID *kernel.UUID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	o.customerID = customerID
	return nil
}

// setContact validates and sets the contact snapshot.
func (o *Order) setContact(contact Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	o.contact = contact
	return nil
}

// setItems validates and sets the purchased positions.
func (o *Order) setItems(items []*LineItem) error {
	if len(items) == 0 {
		return ErrLineItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = make([]*LineItem, len(items))
	copy(o.items, items)
	return nil
}
