package account

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var (
	// ErrUsernameIsRequired is returned when attempting to create an account without a username.
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrAccountIsNotConstructed is returned when using an improperly initialized Account.
	ErrAccountIsNotConstructed = errors.New("Account must be created via NewAccount constructor")
)

// Account represents an identity known to the delivery subsystem.
// It is a lookup-only aggregate: signup, login and session management live
// outside this service, which consumes accounts solely to resolve roles and
// address notifications.
//
// Account follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a non-empty username
//   - Carries exactly one role; superusers act as managers everywhere
type Account struct {
	// id is the unique identifier for the account
	id kernel.UUID

	// username is the display name interpolated into notification messages
	username string

	// email is the contact address captured for the account
	email string

	// role is the single role attached to the account
	role Role

	// superuser marks fleet-wide administrators
	superuser bool

	// guard ensures the account was created via NewAccount
	guard guard.ConstructorGuard
}

// NewAccount creates a new Account instance with validation.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - username: Display name (must be non-empty)
//   - email: Contact address (may be empty)
//   - role: Assigned role (must be a valid Role)
//   - superuser: Whether the account is a fleet-wide administrator
//
// Returns the created account, or a validation error if any parameter
// is invalid.
func NewAccount(id kernel.UUID, username, email string, role Role, superuser bool) (*Account, error) {
	acc := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setUsername(username),
		acc.setRole(role),
	); err != nil {
		return nil, err
	}

	acc.email = email
	acc.superuser = superuser
	return acc, nil
}

// RestoreAccount reconstructs an Account from persistent storage.
// Unlike NewAccount it tolerates RoleNone, since accounts whose role was
// cleared still exist and must load for audit references.
func RestoreAccount(id kernel.UUID, username, email string, role Role, superuser bool) (*Account, error) {
	acc := &Account{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acc.setID(id),
		acc.setUsername(username),
	); err != nil {
		return nil, err
	}

	acc.email = email
	acc.role = role
	acc.superuser = superuser
	return acc, nil
}

// Validate checks if the Account was properly constructed.
func (a *Account) Validate() error {
	if a == nil {
		return ErrAccountIsNotConstructed
	}
	return a.guard.Validate(ErrAccountIsNotConstructed)
}

// IsEqual compares two accounts by their unique identifiers.
func (a *Account) IsEqual(other *Account) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the account's unique identifier.
func (a *Account) ID() kernel.UUID {
	return a.id
}

// Username returns the account's display name.
func (a *Account) Username() string {
	return a.username
}

// Email returns the account's contact address.
func (a *Account) Email() string {
	return a.email
}

// Role returns the role as persisted, without the superuser override.
func (a *Account) Role() Role {
	return a.role
}

// IsSuperuser reports whether the account is a fleet-wide administrator.
func (a *Account) IsSuperuser() bool {
	return a.superuser
}

// EffectiveRole returns the role used for authorization decisions.
// Superusers are treated as managers everywhere, regardless of the role
// stored on the account.
func (a *Account) EffectiveRole() Role {
	if a.superuser {
		return RoleManager
	}
	return a.role
}

// IsCoordinator reports whether the account receives coordinator broadcasts.
// Coordinators are managers and superusers.
func (a *Account) IsCoordinator() bool {
	return a.EffectiveRole() == RoleManager
}

// setID validates and sets the account's unique identifier.
func (a *Account) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

// setUsername validates and sets the account's username.
func (a *Account) setUsername(username string) error {
	if username == "" {
		return ErrUsernameIsRequired
	}
	a.username = username
	return nil
}

// setRole validates and sets the account's role.
func (a *Account) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
