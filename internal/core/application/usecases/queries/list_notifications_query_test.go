package queries_test

import (
	"testing"

	"deliveryhub/internal/core/application/usecases/queries"
	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListNotificationsQuery_Valid(t *testing.T) {
	recipientID := kernel.NewUUID()

	query, err := queries.NewListNotificationsQuery(recipientID, 20)

	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.RecipientID().IsEqual(recipientID))
	assert.Equal(t, 20, query.Limit())
}

func TestNewListNotificationsQuery_NonPositiveLimitUsesDefault(t *testing.T) {
	query, err := queries.NewListNotificationsQuery(kernel.NewUUID(), 0)

	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit())

	query, err = queries.NewListNotificationsQuery(kernel.NewUUID(), -5)

	require.NoError(t, err)
	assert.Equal(t, 50, query.Limit())
}

func TestNewListNotificationsQuery_MissingRecipient(t *testing.T) {
	_, err := queries.NewListNotificationsQuery(kernel.UUID{}, 10)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestListNotificationsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListNotificationsQuery{}

	err := query.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListNotificationsQueryIsNotConstructed)
}
