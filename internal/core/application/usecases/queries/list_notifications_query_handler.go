package queries

import (
	"context"

	"deliveryhub/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListNotificationsQueryHandler reads the notification feed for a single
// recipient. The feed is scoped to the caller, so no extra authorization
// lookup is needed.
type ListNotificationsQueryHandler struct {
	db *gorm.DB
}

func NewListNotificationsQueryHandler(db *gorm.DB) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{db: db}
}

func (h ListNotificationsQueryHandler) Handle(
	ctx context.Context,
	query ListNotificationsQuery,
) ([]ListNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	notifications := make([]ListNotificationsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			kind,
			message,
			read,
			sent_at
		FROM notifications
		WHERE recipient_id = ?
		ORDER BY sent_at DESC
		LIMIT ?
	`, query.RecipientID().String(), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var notification ListNotificationsQueryResponse
		var id uuid.UUID
		var deliveryID uuid.UUID

		err = rows.Scan(
			&id,
			&deliveryID,
			&notification.Kind,
			&notification.Message,
			&notification.Read,
			&notification.SentAt,
		)
		if err != nil {
			return nil, err
		}

		if notification.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if notification.DeliveryID, err = kernel.UUIDFromBytes(deliveryID[:]); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
