package queries_test

import (
	"testing"

	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryBoardQuery_Valid(t *testing.T) {
	actorID := kernel.NewUUID()

	query, err := queries.NewGetDeliveryBoardQuery(actorID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ActorID().IsEqual(actorID))
}

func TestNewGetDeliveryBoardQuery_MissingActor(t *testing.T) {
	_, err := queries.NewGetDeliveryBoardQuery(kernel.UUID{})

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetDeliveryBoardQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDeliveryBoardQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveryBoardQueryIsNotConstructed)
}
