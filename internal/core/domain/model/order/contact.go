package order

import (
	"errors"

	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var (
	// ErrFullNameIsRequired is returned when the contact carries no recipient name.
	ErrFullNameIsRequired = errs.NewValueIsRequiredError("full name")
	// ErrEmailIsRequired is returned when the contact carries no email address.
	ErrEmailIsRequired = errs.NewValueIsRequiredError("email")
	// ErrAddressIsRequired is returned when the contact carries no street address.
	ErrAddressIsRequired = errs.NewValueIsRequiredError("address")
	// ErrContactIsNotConstructed is returned when using an improperly initialized Contact.
	ErrContactIsNotConstructed = errors.New("Contact must be created via NewContact constructor")
)

// Contact is the shipping and contact snapshot captured at checkout.
// Like everything else on an order it never changes afterward, even if the
// customer later edits their profile.
type Contact struct {
	fullName   string
	email      string
	address    string
	city       string
	postalCode string
	guard      guard.ConstructorGuard
}

// NewContact creates a validated contact snapshot.
// Full name, email and address are required; city and postal code may be
// empty for pickup-point style addresses.
func NewContact(fullName, email, address, city, postalCode string) (Contact, error) {
	c := Contact{
		fullName:   fullName,
		email:      email,
		address:    address,
		city:       city,
		postalCode: postalCode,
		guard:      guard.NewConstructorGuard(),
	}

	if fullName == "" {
		return Contact{}, ErrFullNameIsRequired
	}
	if email == "" {
		return Contact{}, ErrEmailIsRequired
	}
	if address == "" {
		return Contact{}, ErrAddressIsRequired
	}

	return c, nil
}

// Validate checks if the Contact was properly constructed.
func (c Contact) Validate() error {
	return c.guard.Validate(ErrContactIsNotConstructed)
}

// FullName returns the recipient name.
func (c Contact) FullName() string {
	return c.fullName
}

// Email returns the contact email address.
func (c Contact) Email() string {
	return c.email
}

// Address returns the street address.
func (c Contact) Address() string {
	return c.address
}

// City returns the city.
func (c Contact) City() string {
	return c.city
}

// PostalCode returns the postal code.
func (c Contact) PostalCode() string {
	return c.postalCode
}
