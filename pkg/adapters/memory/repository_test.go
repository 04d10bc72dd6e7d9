package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/pricetree/pkg/adapters/memory"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Contract(t *testing.T) {
	ports.RunAssociationRepositoryContract(t, memory.NewRepository())
}

func TestRepository_SeedAndIDs(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(domain.ExistingAssociation{ID: 42, ItemID: 7})

	require.NoError(t, repo.CreateAssociations(ctx, []domain.CreateAssociation{{ItemID: 8}}))

	list, err := repo.ListAssociations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 42, list[0].ID)
	assert.Equal(t, 43, list[1].ID, "new ids continue after the seed")
}

func TestRepository_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(
		domain.ExistingAssociation{ID: 1, ItemID: 1},
		domain.ExistingAssociation{ID: 2, ItemID: 2},
	)

	err := repo.DeleteAssociations(ctx, []domain.DeleteAssociation{{ID: 1}, {ID: 99}})
	assert.ErrorIs(t, err, domain.ErrAssociationNotFound)

	list, err := repo.ListAssociations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
