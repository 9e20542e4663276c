package queries_test

import (
	"testing"

	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDeliveryQuery_Valid(t *testing.T) {
	actorID := kernel.NewUUID()
	deliveryID := kernel.NewUUID()

	query, err := queries.NewGetDeliveryQuery(actorID, deliveryID)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ActorID().IsEqual(actorID))
	assert.True(t, query.DeliveryID().IsEqual(deliveryID))
}

func TestNewGetDeliveryQuery_MissingIDs(t *testing.T) {
	_, err := queries.NewGetDeliveryQuery(kernel.UUID{}, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetDeliveryQuery(kernel.NewUUID(), kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestGetDeliveryQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDeliveryQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDeliveryQueryIsNotConstructed)
}
