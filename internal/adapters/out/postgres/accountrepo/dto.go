// Package accountrepo resolves accounts from the shared database. Account
// rows are owned by the auth collaborator; this service only reads them.
package accountrepo

import (
	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure of account rows.
type AccountDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username  string
	Email     string
	Role      string `gorm:"index"`
	Superuser bool
}

func (AccountDTO) TableName() string {
	return "accounts"
}

func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role := account.RoleFromString(dto.Role)

	return account.RestoreAccount(id, dto.Username, dto.Email, role, dto.Superuser)
}
