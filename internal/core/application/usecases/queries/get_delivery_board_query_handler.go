package queries

import (
	"context"
	"database/sql"
	"errors"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetDeliveryBoardQueryHandler aggregates delivery counts straight from the
// database. Uses direct SQL queries for optimal read performance in the
// CQRS pattern.
type GetDeliveryBoardQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryBoardQueryHandler(db *gorm.DB) GetDeliveryBoardQueryHandler {
	return GetDeliveryBoardQueryHandler{db: db}
}

func (h GetDeliveryBoardQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryBoardQuery,
) (GetDeliveryBoardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryBoardQueryResponse{}, err
	}

	role, err := fetchEffectiveRole(ctx, h.db, query.ActorID())
	if err != nil {
		return GetDeliveryBoardQueryResponse{}, err
	}
	if role != account.RoleManager {
		return GetDeliveryBoardQueryResponse{}, errs.NewNotAuthorizedError(
			"view delivery board", role.String())
	}

	response := GetDeliveryBoardQueryResponse{
		ByStatus: make(map[string]int),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM deliveries
		GROUP BY status
	`).Rows()
	if err != nil {
		return GetDeliveryBoardQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int

		if err = rows.Scan(&status, &count); err != nil {
			return GetDeliveryBoardQueryResponse{}, err
		}

		response.ByStatus[status] = count
		response.TotalDeliveries += count

		switch status {
		case delivery.StatusDelivered.String():
			response.Delivered = count
		case delivery.StatusFailed.String():
			response.Failed = count
		default:
			response.Open += count
		}
	}

	if err = rows.Err(); err != nil {
		return GetDeliveryBoardQueryResponse{}, err
	}

	return response, nil
}

// fetchEffectiveRole resolves the caller's role for query-side access checks.
// Superusers act as managers, mirroring account.Account.EffectiveRole.
func fetchEffectiveRole(ctx context.Context, db *gorm.DB, actorID kernel.UUID) (account.Role, error) {
	var roleName string
	var superuser bool

	row := db.WithContext(ctx).Raw(`
		SELECT
			role,
			superuser
		FROM accounts
		WHERE id = ?
	`, actorID.String()).Row()

	if err := row.Scan(&roleName, &superuser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return account.RoleNone, errs.NewObjectNotFoundError("account", actorID)
		}
		return account.RoleNone, err
	}

	role := account.RoleFromString(roleName)
	if superuser {
		return account.RoleManager, nil
	}
	return role, nil
}
