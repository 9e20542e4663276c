package queries

import (
	"errors"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

const defaultNotificationsLimit = 50

// ListNotificationsQuery retrieves the caller's notification feed,
// newest first. A non-positive limit falls back to the default page size.
type ListNotificationsQuery struct {
	recipientID kernel.UUID
	limit       int

	guard guard.ConstructorGuard
}

func NewListNotificationsQuery(recipientID kernel.UUID, limit int) (ListNotificationsQuery, error) {
	if err := recipientID.Validate(); err != nil {
		return ListNotificationsQuery{}, errs.NewValueIsRequiredError("recipientID")
	}
	if limit <= 0 {
		limit = defaultNotificationsLimit
	}

	return ListNotificationsQuery{
		recipientID: recipientID,
		limit:       limit,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

func (q ListNotificationsQuery) RecipientID() kernel.UUID {
	return q.recipientID
}

func (q ListNotificationsQuery) Limit() int {
	return q.limit
}

// ListNotificationsQueryResponse is one feed entry.
type ListNotificationsQueryResponse struct {
	ID         kernel.UUID
	DeliveryID kernel.UUID
	Kind       string
	Message    string
	Read       bool
	SentAt     time.Time
}
