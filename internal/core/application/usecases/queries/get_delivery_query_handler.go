package queries

import (
	"context"
	"database/sql"
	"errors"

	"deliveryhub/internal/core/domain/model/account"
	"deliveryhub/internal/core/domain/model/delivery"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryQueryHandler assembles the delivery detail read model from
// direct SQL over the delivery, order and child tables.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	response, customerID, orderCreatedAt, err := h.fetchDelivery(ctx, query.DeliveryID())
	if err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if err = h.authorize(ctx, query.ActorID(), response, customerID); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if err = h.estimateArrival(&response, orderCreatedAt); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	if response.Events, err = h.fetchEvents(ctx, query.DeliveryID()); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.Comments, err = h.fetchComments(ctx, query.DeliveryID()); err != nil {
		return GetDeliveryQueryResponse{}, err
	}
	if response.Failures, err = h.fetchFailures(ctx, query.DeliveryID()); err != nil {
		return GetDeliveryQueryResponse{}, err
	}

	return response, nil
}

func (h GetDeliveryQueryHandler) fetchDelivery(
	ctx context.Context,
	deliveryID kernel.UUID,
) (GetDeliveryQueryResponse, *kernel.UUID, sql.NullTime, error) {
	var response GetDeliveryQueryResponse
	var id uuid.UUID
	var orderID uuid.UUID
	var courierID uuid.NullUUID
	var customerID uuid.NullUUID
	var scheduledDate sql.NullTime
	var orderCreatedAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.order_id,
			d.courier_id,
			d.status,
			d.scheduled_date,
			d.scheduled_window,
			d.notes,
			d.photo,
			d.failure_note,
			d.failure_count,
			d.version,
			d.created_at,
			d.updated_at,
			o.customer_id,
			o.created_at
		FROM deliveries d
		JOIN orders o ON o.id = d.order_id
		WHERE d.id = ?
	`, deliveryID.String()).Row()

	err := row.Scan(
		&id,
		&orderID,
		&courierID,
		&response.Status,
		&scheduledDate,
		&response.ScheduledWindow,
		&response.Notes,
		&response.Photo,
		&response.FailureNote,
		&response.FailureCount,
		&response.Version,
		&response.CreatedAt,
		&response.UpdatedAt,
		&customerID,
		&orderCreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return response, nil, orderCreatedAt, errs.NewObjectNotFoundError("delivery", deliveryID)
		}
		return response, nil, orderCreatedAt, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return response, nil, orderCreatedAt, err
	}
	if response.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return response, nil, orderCreatedAt, err
	}
	if response.CourierID, err = optionalUUID(courierID); err != nil {
		return response, nil, orderCreatedAt, err
	}
	if scheduledDate.Valid {
		date := scheduledDate.Time
		response.ScheduledDate = &date
	}

	owner, err := optionalUUID(customerID)
	if err != nil {
		return response, nil, orderCreatedAt, err
	}

	return response, owner, orderCreatedAt, nil
}

func (h GetDeliveryQueryHandler) authorize(
	ctx context.Context,
	actorID kernel.UUID,
	response GetDeliveryQueryResponse,
	customerID *kernel.UUID,
) error {
	role, err := fetchEffectiveRole(ctx, h.db, actorID)
	if err != nil {
		return err
	}

	switch role {
	case account.RoleManager:
		return nil
	case account.RoleCustomer:
		if customerID != nil && customerID.IsEqual(actorID) {
			return nil
		}
	case account.RoleCourier:
		if response.CourierID != nil && response.CourierID.IsEqual(actorID) {
			return nil
		}
	}

	return errs.NewNotAuthorizedError("view delivery", role.String())
}

// estimateArrival rehydrates the aggregate so the arrival estimate stays
// a single piece of domain logic instead of being duplicated in SQL.
func (h GetDeliveryQueryHandler) estimateArrival(
	response *GetDeliveryQueryResponse,
	orderCreatedAt sql.NullTime,
) error {
	status := delivery.StatusFromString(response.Status)
	if err := status.Validate(); err != nil {
		return err
	}

	del, err := delivery.RestoreDelivery(
		response.ID,
		response.OrderID,
		response.CourierID,
		status,
		response.ScheduledDate,
		response.ScheduledWindow,
		response.Notes,
		response.Photo,
		response.FailureNote,
		response.FailureCount,
		response.Version,
		response.CreatedAt,
		response.UpdatedAt,
	)
	if err != nil {
		return err
	}

	response.EstimatedArrival = del.EstimatedArrival(orderCreatedAt.Time)
	return nil
}

func (h GetDeliveryQueryHandler) fetchEvents(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]DeliveryEventResponse, error) {
	events := make([]DeliveryEventResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			actor_id,
			status_before,
			status_after,
			note,
			photo,
			created_at
		FROM delivery_events
		WHERE delivery_id = ?
		ORDER BY created_at DESC
	`, deliveryID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event DeliveryEventResponse
		var id uuid.UUID
		var actorID uuid.NullUUID

		err = rows.Scan(
			&id,
			&actorID,
			&event.StatusBefore,
			&event.StatusAfter,
			&event.Note,
			&event.Photo,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if event.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if event.ActorID, err = optionalUUID(actorID); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

func (h GetDeliveryQueryHandler) fetchComments(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]DeliveryCommentResponse, error) {
	comments := make([]DeliveryCommentResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			author_id,
			author_role,
			message,
			photo,
			created_at
		FROM delivery_comments
		WHERE delivery_id = ?
		ORDER BY created_at DESC
	`, deliveryID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var comment DeliveryCommentResponse
		var id uuid.UUID
		var authorID uuid.NullUUID

		err = rows.Scan(
			&id,
			&authorID,
			&comment.AuthorRole,
			&comment.Message,
			&comment.Photo,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if comment.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if comment.AuthorID, err = optionalUUID(authorID); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

func (h GetDeliveryQueryHandler) fetchFailures(
	ctx context.Context,
	deliveryID kernel.UUID,
) ([]DeliveryFailureResponse, error) {
	failures := make([]DeliveryFailureResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code,
			details,
			reported_by_id,
			attempt_number,
			created_at
		FROM delivery_failures
		WHERE delivery_id = ?
		ORDER BY created_at DESC
	`, deliveryID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var failure DeliveryFailureResponse
		var id uuid.UUID
		var reportedBy uuid.NullUUID

		err = rows.Scan(
			&id,
			&failure.Code,
			&failure.Details,
			&reportedBy,
			&failure.AttemptNumber,
			&failure.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if failure.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if failure.ReportedByID, err = optionalUUID(reportedBy); err != nil {
			return nil, err
		}
		failures = append(failures, failure)
	}

	return failures, rows.Err()
}

func optionalUUID(value uuid.NullUUID) (*kernel.UUID, error) {
	if !value.Valid {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(value.UUID[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
