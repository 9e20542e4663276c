package account

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
)

// Role represents the single role attached to an account. Every permission
// check in the application dispatches on this closed enumeration, so adding
// a role forces a review of each authorization site.
//
// Role is a value object that validates its range and provides string
// representations for persistence and display.
type Role int

const (
	// RoleNone represents an account without any role attached.
	// This value (0) also helps catch uninitialized Role values.
	RoleNone Role = iota

	// RoleCustomer places orders and may reschedule their deliveries.
	RoleCustomer

	// RoleCourier carries out deliveries and reports their progress.
	RoleCourier

	// RoleManager coordinates the fleet: assigns couriers and receives
	// every coordinator broadcast. Superusers resolve to this role.
	RoleManager
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleNone:     "none",
		RoleCustomer: "customer",
		RoleCourier:  "courier",
		RoleManager:  "manager",
	}
}

// getValidRoleStrings returns a map of only assignable Role values.
func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleNone is intentionally excluded as unassignable
	return map[Role]string{
		RoleCustomer: "customer",
		RoleCourier:  "courier",
		RoleManager:  "manager",
	}
}

// Validate checks if the Role value is one of the assignable roles.
//
// Valid roles are: RoleCustomer, RoleCourier, RoleManager.
// RoleNone (0) and any other values are invalid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the persisted token for the role.
// Returns "none" for invalid role values.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "none"
}

// RoleFromString parses a persisted role token back into a Role.
// Unknown tokens map to RoleNone without error so that accounts whose
// role was cleared still load; callers decide what RoleNone permits.
func RoleFromString(s string) Role {
	for role, str := range getRoleStrings() {
		if str == s {
			return role
		}
	}
	return RoleNone
}
