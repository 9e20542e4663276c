package ports

import (
	"context"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
)

// AccountRepository defines the read contract for accounts. Accounts are
// managed by the auth collaborator; this service only resolves them.
type AccountRepository interface {
	// Get retrieves an account by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)

	// GetAllCoordinators retrieves every manager-role account and every
	// superuser, the audience for coordinator broadcasts.
	GetAllCoordinators(ctx context.Context) ([]*account.Account, error)

	// GetCourierLoads retrieves every courier account paired with its
	// number of open deliveries (every status except delivered).
	GetCourierLoads(ctx context.Context) ([]services.CourierLoad, error)
}
