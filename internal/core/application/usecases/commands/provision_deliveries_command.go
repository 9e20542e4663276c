package commands

import (
	"errors"

	"deliveryhub/internal/pkg/guard"
)

var ErrProvisionDeliveriesCommandIsNotConstructed = errors.New(
	"ProvisionDeliveriesCommand must be created via NewProvisionDeliveriesCommand constructor",
)

// ProvisionDeliveriesCommand triggers delivery provisioning for every paid
// order that has no delivery yet. It is the safety net behind the payment
// confirmation endpoint, run periodically by the provisioning job.
type ProvisionDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewProvisionDeliveriesCommand creates a new provisioning command.
// This is a parameterless command that sweeps all unprovisioned paid orders.
func NewProvisionDeliveriesCommand() ProvisionDeliveriesCommand {
	return ProvisionDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProvisionDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrProvisionDeliveriesCommandIsNotConstructed)
}
