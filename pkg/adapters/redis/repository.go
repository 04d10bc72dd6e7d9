// Package redis persists a contract's associations in Redis.
//
// Keys, under a configurable prefix:
//
//	<prefix>assoc:<id>  hash {item_id, discount, rebate}; empty discount/rebate means null
//	<prefix>index       sorted set of ids, scored by id
//	<prefix>seq         id counter
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aretw0/pricetree/pkg/domain"
	backend "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// Repository implements ports.AssociationRepository for one contract.
type Repository struct {
	client *backend.Client
	prefix string
}

// Option configures the Repository.
type Option func(*Repository)

// WithPrefix sets the key prefix, typically one per contract (default "pricetree:").
func WithPrefix(prefix string) Option {
	return func(r *Repository) {
		r.prefix = prefix
	}
}

// NewFromClient creates a repository using an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Repository {
	r := &Repository{
		client: client,
		prefix: "pricetree:",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) key(id int) string {
	return r.prefix + "assoc:" + strconv.Itoa(id)
}

func (r *Repository) indexKey() string { return r.prefix + "index" }
func (r *Repository) seqKey() string   { return r.prefix + "seq" }

// ListAssociations returns the associations ordered by id.
func (r *Repository) ListAssociations(ctx context.Context) ([]domain.ExistingAssociation, error) {
	ids, err := r.client.ZRange(ctx, r.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	if len(ids) == 0 {
		return []domain.ExistingAssociation{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*backend.MapStringStringCmd, len(ids))
	for i, member := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.prefix+"assoc:"+member)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to read associations: %w", err)
	}

	out := make([]domain.ExistingAssociation, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue // index entry without a record
		}
		a, err := decode(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// Seed writes already persisted associations with their own ids and moves the id counter
// past them.
func (r *Repository) Seed(ctx context.Context, assocs ...domain.ExistingAssociation) error {
	if len(assocs) == 0 {
		return nil
	}
	maxID := 0
	_, err := r.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		for _, a := range assocs {
			r.write(ctx, pipe, a)
			if a.ID > maxID {
				maxID = a.ID
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to seed associations: %w", err)
	}

	current, err := r.client.Get(ctx, r.seqKey()).Int()
	if err != nil && !errors.Is(err, backend.Nil) {
		return fmt.Errorf("failed to read id counter: %w", err)
	}
	if maxID > current {
		return r.client.Set(ctx, r.seqKey(), maxID, 0).Err()
	}
	return nil
}

// CreateAssociations reserves a contiguous id range and writes the batch in one transaction.
func (r *Repository) CreateAssociations(ctx context.Context, batch []domain.CreateAssociation) error {
	if len(batch) == 0 {
		return nil
	}
	last, err := r.client.IncrBy(ctx, r.seqKey(), int64(len(batch))).Result()
	if err != nil {
		return fmt.Errorf("failed to reserve ids: %w", err)
	}
	first := int(last) - len(batch) + 1

	_, err = r.client.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
		for i, c := range batch {
			r.write(ctx, pipe, domain.ExistingAssociation{
				ID:       first + i,
				ItemID:   c.ItemID,
				Discount: c.Discount,
				Rebate:   c.Rebate,
			})
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create associations: %w", err)
	}
	return nil
}

// UpdateAssociations replaces the pricing of persisted associations. The batch is rejected as
// a whole if any id is unknown.
func (r *Repository) UpdateAssociations(ctx context.Context, batch []domain.UpdateAssociation) error {
	ids := make([]int, len(batch))
	for i, u := range batch {
		ids[i] = u.ID
	}
	return r.guarded(ctx, ids, func(pipe backend.Pipeliner) {
		for _, u := range batch {
			r.write(ctx, pipe, domain.ExistingAssociation{
				ID:       u.ID,
				ItemID:   u.ItemID,
				Discount: u.Discount,
				Rebate:   u.Rebate,
			})
		}
	})
}

// DeleteAssociations removes persisted associations. The batch is rejected as a whole if any
// id is unknown.
func (r *Repository) DeleteAssociations(ctx context.Context, batch []domain.DeleteAssociation) error {
	ids := make([]int, len(batch))
	for i, d := range batch {
		ids[i] = d.ID
	}
	return r.guarded(ctx, ids, func(pipe backend.Pipeliner) {
		for _, id := range ids {
			pipe.Del(ctx, r.key(id))
			pipe.ZRem(ctx, r.indexKey(), strconv.Itoa(id))
		}
	})
}

// guarded runs fn in a transaction after checking, under WATCH, that every id is indexed.
func (r *Repository) guarded(ctx context.Context, ids []int, fn func(backend.Pipeliner)) error {
	if len(ids) == 0 {
		return nil
	}
	err := r.client.Watch(ctx, func(tx *backend.Tx) error {
		for _, id := range ids {
			if _, err := tx.ZScore(ctx, r.indexKey(), strconv.Itoa(id)).Result(); err != nil {
				if errors.Is(err, backend.Nil) {
					return fmt.Errorf("%w: %d", domain.ErrAssociationNotFound, id)
				}
				return err
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe backend.Pipeliner) error {
			fn(pipe)
			return nil
		})
		return err
	}, r.indexKey())
	if err != nil && !errors.Is(err, domain.ErrAssociationNotFound) {
		return fmt.Errorf("failed to write associations: %w", err)
	}
	return err
}

func (r *Repository) write(ctx context.Context, pipe backend.Pipeliner, a domain.ExistingAssociation) {
	pipe.HSet(ctx, r.key(a.ID),
		"item_id", a.ItemID,
		"discount", encodeDecimal(a.Discount),
		"rebate", encodeDecimal(a.Rebate),
	)
	pipe.ZAdd(ctx, r.indexKey(), backend.Z{Score: float64(a.ID), Member: strconv.Itoa(a.ID)})
}

func decode(member string, fields map[string]string) (domain.ExistingAssociation, error) {
	var a domain.ExistingAssociation
	var err error
	if a.ID, err = strconv.Atoi(member); err != nil {
		return a, fmt.Errorf("corrupt association id %q: %w", member, err)
	}
	if a.ItemID, err = strconv.Atoi(fields["item_id"]); err != nil {
		return a, fmt.Errorf("corrupt association %d: item_id: %w", a.ID, err)
	}
	if a.Discount, err = decodeDecimal(fields["discount"]); err != nil {
		return a, fmt.Errorf("corrupt association %d: discount: %w", a.ID, err)
	}
	if a.Rebate, err = decodeDecimal(fields["rebate"]); err != nil {
		return a, fmt.Errorf("corrupt association %d: rebate: %w", a.ID, err)
	}
	return a, nil
}

func encodeDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func decodeDecimal(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
