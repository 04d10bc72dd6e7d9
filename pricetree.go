package pricetree

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/pricetree/internal/logging"
	"github.com/aretw0/pricetree/internal/validation"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/ports"
	"github.com/aretw0/pricetree/pkg/tree"
)

// Editor holds the current pricing snapshot of one contract and replaces it wholesale on
// every accepted edit. It is the boundary where user-entered pricing strings are validated.
type Editor struct {
	mu        sync.RWMutex
	snapshot  *tree.Snapshot
	validator *validation.Validator
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
	locker    ports.DistributedLocker
	lockTTL   time.Duration
	Name      string
}

// Option defines a functional option for configuring the Editor.
type Option func(*Editor)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Editor) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the editor.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		e.logger = logger
	}
}

// WithName labels the editor (typically the contract) in log lines.
func WithName(name string) Option {
	return func(e *Editor) {
		e.Name = name
	}
}

// WithCommitLock serialises commits of editors sharing a contract name across processes.
// The lock is held for at most ttl.
func WithCommitLock(locker ports.DistributedLocker, ttl time.Duration) Option {
	return func(e *Editor) {
		e.locker = locker
		e.lockTTL = ttl
	}
}

// New creates an Editor. Nothing can be edited until Load is called.
func New(opts ...Option) *Editor {
	e := &Editor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.NewNop()
	}
	if e.Name != "" {
		e.logger = e.logger.With("contract", e.Name)
	}
	e.validator = validation.New()
	return e
}

// Load rebuilds the tree from a new upstream input and reports whether it did.
//
// The rebuild happens only when the input fingerprint differs from the current one. Any
// uncommitted edits are discarded: there is no merge across rebuilds, last write wins.
func (e *Editor) Load(in domain.Input) bool {
	fingerprint := tree.Fingerprint(in)

	e.mu.Lock()
	prev := e.snapshot
	if prev != nil && prev.Fingerprint() == fingerprint {
		e.mu.Unlock()
		return false
	}
	next := tree.Build(in)
	e.snapshot = next
	e.mu.Unlock()

	event := &domain.RebuildEvent{
		Fingerprint: fingerprint,
		Segments:    len(next.Segments()),
		Items:       next.ItemCount(),
	}
	if prev != nil {
		event.DiscardedEdits = prev.Version()
	}
	e.logger.Info("snapshot rebuilt",
		"segments", event.Segments,
		"items", event.Items,
		"discarded_edits", event.DiscardedEdits,
	)
	if e.hooks.OnRebuild != nil {
		e.hooks.OnRebuild(event)
	}
	return true
}

// Snapshot returns the current immutable snapshot, or nil before the first Load.
func (e *Editor) Snapshot() *tree.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshot
}

// SetSegmentPricing applies a bulk edit at segment level.
func (e *Editor) SetSegmentPricing(segmentID int, discount, rebate string) error {
	p := domain.Pricing{Discount: discount, Rebate: rebate}
	event := &domain.EditEvent{Kind: domain.EditSegmentPricing, SegmentID: segmentID, Pricing: p}
	return e.applyPricing(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.SetSegmentPricing(segmentID, p)
	})
}

// SetCategoryPricing applies a bulk edit at category level.
func (e *Editor) SetCategoryPricing(segmentID, categoryID int, discount, rebate string) error {
	p := domain.Pricing{Discount: discount, Rebate: rebate}
	event := &domain.EditEvent{Kind: domain.EditCategoryPricing, SegmentID: segmentID, CategoryID: categoryID, Pricing: p}
	return e.applyPricing(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.SetCategoryPricing(segmentID, categoryID, p)
	})
}

// SetItemPricing sets an item's own pricing, making it immune to bulk edits.
func (e *Editor) SetItemPricing(segmentID, categoryID, itemID int, discount, rebate string) error {
	p := domain.Pricing{Discount: discount, Rebate: rebate}
	event := &domain.EditEvent{Kind: domain.EditItemPricing, SegmentID: segmentID, CategoryID: categoryID, ItemID: itemID, Pricing: p}
	return e.applyPricing(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.SetItemPricing(segmentID, categoryID, itemID, p)
	})
}

// ToggleItem flips one item's selection.
func (e *Editor) ToggleItem(segmentID, categoryID, itemID int) error {
	event := &domain.EditEvent{Kind: domain.EditToggleItem, SegmentID: segmentID, CategoryID: categoryID, ItemID: itemID}
	return e.apply(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.ToggleItem(segmentID, categoryID, itemID)
	})
}

// ToggleCategory selects all items of a category, or deselects them if all are selected.
func (e *Editor) ToggleCategory(segmentID, categoryID int) error {
	event := &domain.EditEvent{Kind: domain.EditToggleCategory, SegmentID: segmentID, CategoryID: categoryID}
	return e.apply(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.ToggleCategory(segmentID, categoryID)
	})
}

// ToggleSegment selects all items of a segment, or deselects them if all are selected.
func (e *Editor) ToggleSegment(segmentID int) error {
	event := &domain.EditEvent{Kind: domain.EditToggleSegment, SegmentID: segmentID}
	return e.apply(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.ToggleSegment(segmentID)
	})
}

// SetItemFilter stores a category's item search text.
func (e *Editor) SetItemFilter(segmentID, categoryID int, filter string) error {
	event := &domain.EditEvent{Kind: domain.EditItemFilter, SegmentID: segmentID, CategoryID: categoryID}
	return e.apply(event, func(s *tree.Snapshot) (*tree.Snapshot, error) {
		return s.SetItemFilter(segmentID, categoryID, filter)
	})
}

// Changes computes the create/update/delete batches for the current snapshot.
func (e *Editor) Changes() (domain.ChangeSet, error) {
	snap := e.Snapshot()
	if snap == nil {
		return domain.ChangeSet{}, domain.ErrNotLoaded
	}
	changes, err := snap.Changes()
	if err != nil {
		return domain.ChangeSet{}, fmt.Errorf("compute changes: %w", err)
	}
	if e.hooks.OnChanges != nil {
		e.hooks.OnChanges(&domain.ChangesEvent{Version: snap.Version(), Changes: changes})
	}
	return changes, nil
}

// Commit computes the change set and hands its non-empty batches to the writer in create,
// update, delete order. The snapshot is not modified; callers reload the persisted state
// afterwards, which discards the committed edits.
func (e *Editor) Commit(ctx context.Context, w ports.AssociationWriter) (domain.ChangeSet, error) {
	changes, err := e.Changes()
	if err != nil {
		return domain.ChangeSet{}, err
	}

	if e.locker != nil {
		unlock, err := e.locker.Lock(ctx, "commit:"+e.Name, e.lockTTL)
		if err != nil {
			return changes, fmt.Errorf("commit lock: %w", err)
		}
		defer func() {
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				e.logger.Warn("failed to release commit lock", "error", err)
			}
		}()
	}

	err = writeChanges(ctx, w, changes)
	if e.hooks.OnCommit != nil {
		e.hooks.OnCommit(&domain.ChangesEvent{Version: e.Snapshot().Version(), Changes: changes}, err)
	}
	if err != nil {
		e.logger.Error("commit failed", "error", err)
		return changes, err
	}
	e.logger.Info("changes committed",
		"creates", len(changes.Creates),
		"updates", len(changes.Updates),
		"deletes", len(changes.Deletes),
	)
	return changes, nil
}

func writeChanges(ctx context.Context, w ports.AssociationWriter, changes domain.ChangeSet) error {
	if len(changes.Creates) > 0 {
		if err := w.CreateAssociations(ctx, changes.Creates); err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
	}
	if len(changes.Updates) > 0 {
		if err := w.UpdateAssociations(ctx, changes.Updates); err != nil {
			return fmt.Errorf("update batch: %w", err)
		}
	}
	if len(changes.Deletes) > 0 {
		if err := w.DeleteAssociations(ctx, changes.Deletes); err != nil {
			return fmt.Errorf("delete batch: %w", err)
		}
	}
	return nil
}

func (e *Editor) applyPricing(event *domain.EditEvent, edit func(*tree.Snapshot) (*tree.Snapshot, error)) error {
	if err := e.validator.Pricing(event.Pricing); err != nil {
		return e.reject(event, err)
	}
	return e.apply(event, edit)
}

// apply runs a pure edit against the current snapshot and swaps in the result.
// On failure the current snapshot stays in place.
func (e *Editor) apply(event *domain.EditEvent, edit func(*tree.Snapshot) (*tree.Snapshot, error)) error {
	e.mu.Lock()
	if e.snapshot == nil {
		e.mu.Unlock()
		return e.reject(event, domain.ErrNotLoaded)
	}
	next, err := edit(e.snapshot)
	if err != nil {
		e.mu.Unlock()
		return e.reject(event, err)
	}
	e.snapshot = next
	e.mu.Unlock()

	event.Version = next.Version()
	e.logger.Debug("edit applied",
		"kind", event.Kind,
		"segment_id", event.SegmentID,
		"category_id", event.CategoryID,
		"item_id", event.ItemID,
		"version", event.Version,
	)
	if e.hooks.OnEdit != nil {
		e.hooks.OnEdit(event)
	}
	return nil
}

func (e *Editor) reject(event *domain.EditEvent, err error) error {
	event.Err = err
	if snap := e.Snapshot(); snap != nil {
		event.Version = snap.Version()
	}
	e.logger.Warn("edit rejected", "kind", event.Kind, "error", err)
	if e.hooks.OnReject != nil {
		e.hooks.OnReject(event)
	}
	return fmt.Errorf("%s: %w", event.Kind, err)
}
