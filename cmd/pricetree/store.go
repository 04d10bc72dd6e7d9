package main

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/pricetree/pkg/adapters/memory"
	"github.com/aretw0/pricetree/pkg/adapters/redis"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// seededStore is a commit target that can be primed with the scenario's associations.
type seededStore interface {
	ports.AssociationRepository
	Seed(ctx context.Context, assocs ...domain.ExistingAssociation) error
}

// commitTarget is the store plan --commit writes to, with the lock guarding it.
type commitTarget struct {
	store  seededStore
	locker ports.DistributedLocker
	close  func() error
}

// openTarget returns the Redis store named by --redis, or nil to use an in-memory store.
func openTarget(cmd *cobra.Command, contract string) (*commitTarget, error) {
	addr, _ := cmd.Flags().GetString("redis")
	if addr == "" {
		return nil, nil
	}

	client := backend.NewClient(&backend.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	prefix := "pricetree:" + contract + ":"
	return &commitTarget{
		store:  redis.NewFromClient(client, redis.WithPrefix(prefix)),
		locker: redis.NewLocker(client, prefix),
		close:  client.Close,
	}, nil
}

func memoryTarget() *commitTarget {
	return &commitTarget{store: memory.NewRepository(), close: func() error { return nil }}
}

// persisted returns what the store holds, seeding an empty store first.
func persisted(ctx context.Context, store seededStore, seed []domain.ExistingAssociation) ([]domain.ExistingAssociation, error) {
	stored, err := store.ListAssociations(ctx)
	if err != nil {
		return nil, err
	}
	if len(stored) > 0 {
		return stored, nil
	}
	if err := store.Seed(ctx, seed...); err != nil {
		return nil, err
	}
	return store.ListAssociations(ctx)
}
