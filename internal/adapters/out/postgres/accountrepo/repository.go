package accountrepo

import (
	"context"
	"errors"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/services"
	"deliveryhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAccountRepository implements AccountRepository using GORM.
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GORM account repository.
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// Get retrieves an account by ID.
func (r *GormAccountRepository) Get(ctx context.Context, id kernel.UUID) (*account.Account, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AccountDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("account", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllCoordinators retrieves every manager-role account and every
// superuser, ordered by username for stable broadcast ordering.
func (r *GormAccountRepository) GetAllCoordinators(ctx context.Context) ([]*account.Account, error) {
	var dtos []AccountDTO
	err := r.db.WithContext(ctx).
		Where("role = ? OR superuser = ?", account.RoleManager.String(), true).
		Order("username").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]*account.Account, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	return accounts, nil
}

// GetCourierLoads retrieves every courier account paired with its number
// of open deliveries. Couriers without any deliveries appear with a zero
// load, which keeps them eligible for auto-assignment.
func (r *GormAccountRepository) GetCourierLoads(ctx context.Context) ([]services.CourierLoad, error) {
	loads := make([]services.CourierLoad, 0)

	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			COUNT(d.id)
		FROM accounts a
		LEFT JOIN deliveries d
			ON d.courier_id = a.id
			AND d.status <> ?
		WHERE a.role = ? AND a.superuser = ?
		GROUP BY a.id
	`, delivery.StatusDelivered.String(), account.RoleCourier.String(), false).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var active int

		if err = rows.Scan(&id, &active); err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		loads = append(loads, services.CourierLoad{
			CourierID: courierID,
			Active:    active,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return loads, nil
}
