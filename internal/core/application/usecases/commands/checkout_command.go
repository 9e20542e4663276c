package commands

import (
	"errors"
	"fmt"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/guard"
)

var (
	ErrCheckoutCommandIsNotConstructed = errors.New(
		"CheckoutCommand must be created via NewCheckoutCommand constructor",
	)
	ErrCheckoutLinesAreRequired = errors.New("at least one checkout line is required")
)

// CheckoutLine is one requested position of a checkout: which catalog
// product and how many units. Prices and names are resolved from the
// catalog at handling time and captured into the order.
type CheckoutLine struct {
	ProductID kernel.UUID
	Quantity  int
}

// CheckoutCommand represents a request to create an order from a set of
// catalog products and a shipping contact. The order total is fixed when
// the command is handled and never changes afterward.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID *kernel.UUID
	fullName   string
	email      string
	address    string
	city       string
	postalCode string
	lines      []CheckoutLine

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a command to place an order.
// customerID may be nil for guest checkouts; contact fields are validated
// by the order aggregate when the command is handled.
func NewCheckoutCommand(
	orderID kernel.UUID,
	customerID *kernel.UUID,
	fullName, email, address, city, postalCode string,
	lines []CheckoutLine,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setLines(lines),
	); err != nil {
		return CheckoutCommand{}, err
	}

	cmd.fullName = fullName
	cmd.email = email
	cmd.address = address
	cmd.city = city
	cmd.postalCode = postalCode
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will carry.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the owning account, or nil for guest checkouts.
func (c CheckoutCommand) CustomerID() *kernel.UUID {
	return c.customerID
}

// FullName returns the recipient name.
func (c CheckoutCommand) FullName() string { return c.fullName }

// Email returns the contact email address.
func (c CheckoutCommand) Email() string { return c.email }

// Address returns the street address.
func (c CheckoutCommand) Address() string { return c.address }

// City returns the city.
func (c CheckoutCommand) City() string { return c.city }

// PostalCode returns the postal code.
func (c CheckoutCommand) PostalCode() string { return c.postalCode }

// Lines returns the requested checkout positions.
func (c CheckoutCommand) Lines() []CheckoutLine {
	return append([]CheckoutLine(nil), c.lines...)
}

func (c *CheckoutCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CheckoutCommand) setCustomerID(customerID *kernel.UUID) error {
	if customerID != nil {
		if err := customerID.Validate(); err != nil {
			return err
		}
	}
	c.customerID = customerID
	return nil
}

func (c *CheckoutCommand) setLines(lines []CheckoutLine) error {
	if len(lines) == 0 {
		return ErrCheckoutLinesAreRequired
	}
	for _, line := range lines {
		if err := line.ProductID.Validate(); err != nil {
			return err
		}
		if line.Quantity < 1 {
			return fmt.Errorf("quantity %d for product %s is not greater than 0", line.Quantity, line.ProductID)
		}
	}
	c.lines = append([]CheckoutLine(nil), lines...)
	return nil
}
