package ports

import (
	"context"
	"testing"

	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunAssociationRepositoryContract verifies that an adapter complies with AssociationRepository.
// The repository must start empty.
func RunAssociationRepositoryContract(t *testing.T, repo AssociationRepository) {
	t.Helper()
	ctx := context.Background()

	var created []domain.ExistingAssociation

	t.Run("Create and List", func(t *testing.T) {
		err := repo.CreateAssociations(ctx, []domain.CreateAssociation{
			{ItemID: 1, Discount: decimal.NewNullDecimal(decimal.NewFromInt(8))},
			{ItemID: 2, Rebate: decimal.NewNullDecimal(decimal.RequireFromString("1.5"))},
		})
		require.NoError(t, err, "CreateAssociations should not return error")

		created, err = repo.ListAssociations(ctx)
		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, 1, created[0].ItemID)
		assert.Equal(t, 2, created[1].ItemID)
		assert.NotEqual(t, created[0].ID, created[1].ID, "ids must be unique")
		assert.True(t, created[0].Discount.Valid)
		assert.False(t, created[0].Rebate.Valid)
	})

	t.Run("Update", func(t *testing.T) {
		require.NotEmpty(t, created)
		err := repo.UpdateAssociations(ctx, []domain.UpdateAssociation{
			{ID: created[0].ID, ItemID: 1, Rebate: decimal.NewNullDecimal(decimal.NewFromInt(3))},
		})
		require.NoError(t, err)

		list, err := repo.ListAssociations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.False(t, list[0].Discount.Valid, "update replaces both fields")
		assert.True(t, list[0].Rebate.Decimal.Equal(decimal.NewFromInt(3)))
	})

	t.Run("Update Non-Existent", func(t *testing.T) {
		err := repo.UpdateAssociations(ctx, []domain.UpdateAssociation{{ID: -1, ItemID: 1}})
		assert.ErrorIs(t, err, domain.ErrAssociationNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NotEmpty(t, created)
		err := repo.DeleteAssociations(ctx, []domain.DeleteAssociation{{ID: created[0].ID}})
		require.NoError(t, err)

		list, err := repo.ListAssociations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created[1].ID, list[0].ID)
	})

	t.Run("Delete Non-Existent", func(t *testing.T) {
		err := repo.DeleteAssociations(ctx, []domain.DeleteAssociation{{ID: -1}})
		assert.ErrorIs(t, err, domain.ErrAssociationNotFound)
	})
}
