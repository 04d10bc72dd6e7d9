package ports

import (
	"context"

	"github.com/aretw0/pricetree/pkg/domain"
)

// AssociationReader supplies the associations persisted for a contract.
type AssociationReader interface {
	// ListAssociations returns the persisted associations in a stable order.
	ListAssociations(ctx context.Context) ([]domain.ExistingAssociation, error)
}

// AssociationWriter consumes the batches of a computed change set.
// Batches arrive in create, update, delete order and are never empty.
type AssociationWriter interface {
	CreateAssociations(ctx context.Context, batch []domain.CreateAssociation) error

	// UpdateAssociations returns domain.ErrAssociationNotFound if an id is not persisted.
	UpdateAssociations(ctx context.Context, batch []domain.UpdateAssociation) error

	// DeleteAssociations returns domain.ErrAssociationNotFound if an id is not persisted.
	DeleteAssociations(ctx context.Context, batch []domain.DeleteAssociation) error
}

// AssociationRepository is the full persistence collaborator.
type AssociationRepository interface {
	AssociationReader
	AssociationWriter
}
