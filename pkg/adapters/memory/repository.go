package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/pricetree/pkg/domain"
)

// Repository implements ports.AssociationRepository in memory.
// Safe for concurrent use. Each batch is applied all-or-nothing.
type Repository struct {
	data   map[int]domain.ExistingAssociation
	nextID int
	mu     sync.RWMutex
}

// NewRepository creates a repository seeded with already persisted associations.
func NewRepository(seed ...domain.ExistingAssociation) *Repository {
	r := &Repository{
		data:   make(map[int]domain.ExistingAssociation, len(seed)),
		nextID: 1,
	}
	_ = r.Seed(context.Background(), seed...)
	return r
}

// ListAssociations returns the associations ordered by id.
func (r *Repository) ListAssociations(ctx context.Context) ([]domain.ExistingAssociation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.ExistingAssociation, 0, len(r.data))
	for _, a := range r.data {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateAssociations assigns ids in batch order.
func (r *Repository) CreateAssociations(ctx context.Context, batch []domain.CreateAssociation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range batch {
		r.data[r.nextID] = domain.ExistingAssociation{
			ID:       r.nextID,
			ItemID:   c.ItemID,
			Discount: c.Discount,
			Rebate:   c.Rebate,
		}
		r.nextID++
	}
	return nil
}

// UpdateAssociations replaces the pricing of persisted associations.
func (r *Repository) UpdateAssociations(ctx context.Context, batch []domain.UpdateAssociation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range batch {
		if _, ok := r.data[u.ID]; !ok {
			return fmt.Errorf("%w: %d", domain.ErrAssociationNotFound, u.ID)
		}
	}
	for _, u := range batch {
		r.data[u.ID] = domain.ExistingAssociation{
			ID:       u.ID,
			ItemID:   u.ItemID,
			Discount: u.Discount,
			Rebate:   u.Rebate,
		}
	}
	return nil
}

// DeleteAssociations removes persisted associations.
func (r *Repository) DeleteAssociations(ctx context.Context, batch []domain.DeleteAssociation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range batch {
		if _, ok := r.data[d.ID]; !ok {
			return fmt.Errorf("%w: %d", domain.ErrAssociationNotFound, d.ID)
		}
	}
	for _, d := range batch {
		delete(r.data, d.ID)
	}
	return nil
}

// Seed stores already persisted associations with their own ids.
func (r *Repository) Seed(ctx context.Context, assocs ...domain.ExistingAssociation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range assocs {
		r.data[a.ID] = a
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return nil
}
