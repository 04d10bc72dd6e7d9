package domain

// EditKind names the edit operation that produced a snapshot.
type EditKind string

const (
	EditSegmentPricing  EditKind = "segment_pricing"
	EditCategoryPricing EditKind = "category_pricing"
	EditItemPricing     EditKind = "item_pricing"
	EditToggleItem      EditKind = "toggle_item"
	EditToggleCategory  EditKind = "toggle_category"
	EditToggleSegment   EditKind = "toggle_segment"
	EditItemFilter      EditKind = "item_filter"
)

// EditEvent describes an edit that was applied or rejected.
type EditEvent struct {
	Kind       EditKind `json:"kind"`
	SegmentID  int      `json:"segment_id"`
	CategoryID int      `json:"category_id,omitempty"`
	ItemID     int      `json:"item_id,omitempty"`
	Pricing    Pricing  `json:"pricing"`
	Version    uint64   `json:"version"`
	Err        error    `json:"-"`
}

// RebuildEvent is emitted when a new upstream input replaces the snapshot.
type RebuildEvent struct {
	Fingerprint    uint64 `json:"fingerprint"`
	DiscardedEdits uint64 `json:"discarded_edits"`
	Segments       int    `json:"segments"`
	Items          int    `json:"items"`
}

// ChangesEvent is emitted after a diff was computed.
type ChangesEvent struct {
	Version uint64    `json:"version"`
	Changes ChangeSet `json:"changes"`
}

// LifecycleHooks defines callbacks for editor observability.
// Hooks run synchronously on the caller's goroutine after the snapshot swap.
type LifecycleHooks struct {
	OnEdit    func(*EditEvent)
	OnReject  func(*EditEvent)
	OnRebuild func(*RebuildEvent)
	OnChanges func(*ChangesEvent)
	OnCommit  func(*ChangesEvent, error)
}
