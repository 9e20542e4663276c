// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var ErrGetDeliveryBoardQueryIsNotConstructed = errors.New(
	"GetDeliveryBoardQuery must be created via NewGetDeliveryBoardQuery constructor",
)

// GetDeliveryBoardQuery retrieves aggregate delivery metrics for the
// coordinator board. Only managers and superusers may run it.
type GetDeliveryBoardQuery struct {
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDeliveryBoardQuery(actorID kernel.UUID) (GetDeliveryBoardQuery, error) {
	if err := actorID.Validate(); err != nil {
		return GetDeliveryBoardQuery{}, errs.NewValueIsRequiredError("actorID")
	}

	return GetDeliveryBoardQuery{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryBoardQueryIsNotConstructed)
}

func (q GetDeliveryBoardQuery) ActorID() kernel.UUID {
	return q.actorID
}

// GetDeliveryBoardQueryResponse is the coordinator board read model.
// Open counts every delivery that is neither delivered nor failed.
type GetDeliveryBoardQueryResponse struct {
	TotalDeliveries int
	Delivered       int
	Failed          int
	Open            int
	ByStatus        map[string]int
}
