package tree

import (
	"fmt"

	"github.com/aretw0/pricetree/pkg/domain"
)

// SegmentNode is a read-only view of a segment.
type SegmentNode struct {
	ID      int
	Name    string
	Pricing domain.Pricing
}

// CategoryNode is a read-only view of a category.
type CategoryNode struct {
	ID        int
	SegmentID int
	Name      string
	Pricing   domain.Pricing
	// Filter is the free-text item search. View-only, never persisted.
	Filter string
}

// ItemNode is a read-only view of an item.
type ItemNode struct {
	ID         int
	CategoryID int
	Name       string
	Selected   bool
	Pricing    domain.Pricing
	Dirty      bool
	Inherited  bool

	linkID int
	linked bool
}

// ExistingLinkID returns the id of the association persisted for the item at build time.
func (n ItemNode) ExistingLinkID() (int, bool) {
	return n.linkID, n.linked
}

type segmentEntry struct {
	node       SegmentNode
	order      []int
	categories map[int]*categoryEntry
}

type categoryEntry struct {
	node  CategoryNode
	order []int
	items map[int]*ItemNode
}

// Snapshot is an immutable version of the edit tree.
// Order slices are shared between versions and never written after Build.
type Snapshot struct {
	order       []int
	segments    map[int]*segmentEntry
	version     uint64
	fingerprint uint64
}

// Version counts the edits applied since the snapshot was built.
func (s *Snapshot) Version() uint64 {
	return s.version
}

// Fingerprint identifies the input the snapshot was built from.
func (s *Snapshot) Fingerprint() uint64 {
	return s.fingerprint
}

// Segments returns the segments in build order.
func (s *Snapshot) Segments() []SegmentNode {
	out := make([]SegmentNode, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.segments[id].node)
	}
	return out
}

// Segment returns a single segment.
func (s *Snapshot) Segment(segmentID int) (SegmentNode, error) {
	seg, err := s.segment(segmentID)
	if err != nil {
		return SegmentNode{}, err
	}
	return seg.node, nil
}

// Categories returns the categories of a segment in build order.
func (s *Snapshot) Categories(segmentID int) ([]CategoryNode, error) {
	seg, err := s.segment(segmentID)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryNode, 0, len(seg.order))
	for _, id := range seg.order {
		out = append(out, seg.categories[id].node)
	}
	return out, nil
}

// Category returns a single category.
func (s *Snapshot) Category(segmentID, categoryID int) (CategoryNode, error) {
	_, cat, err := s.category(segmentID, categoryID)
	if err != nil {
		return CategoryNode{}, err
	}
	return cat.node, nil
}

// Items returns the items of a category in build order.
func (s *Snapshot) Items(segmentID, categoryID int) ([]ItemNode, error) {
	_, cat, err := s.category(segmentID, categoryID)
	if err != nil {
		return nil, err
	}
	out := make([]ItemNode, 0, len(cat.order))
	for _, id := range cat.order {
		out = append(out, *cat.items[id])
	}
	return out, nil
}

// Item returns a single item.
func (s *Snapshot) Item(segmentID, categoryID, itemID int) (ItemNode, error) {
	_, _, item, err := s.item(segmentID, categoryID, itemID)
	if err != nil {
		return ItemNode{}, err
	}
	return *item, nil
}

// Walk visits every item in segment, category, item order.
func (s *Snapshot) Walk(fn func(seg SegmentNode, cat CategoryNode, item ItemNode)) {
	for _, segID := range s.order {
		seg := s.segments[segID]
		for _, catID := range seg.order {
			cat := seg.categories[catID]
			for _, itemID := range cat.order {
				fn(seg.node, cat.node, *cat.items[itemID])
			}
		}
	}
}

// ItemCount returns the number of items in the tree.
func (s *Snapshot) ItemCount() int {
	n := 0
	for _, seg := range s.segments {
		for _, cat := range seg.categories {
			n += len(cat.items)
		}
	}
	return n
}

func (s *Snapshot) segment(segmentID int) (*segmentEntry, error) {
	seg, ok := s.segments[segmentID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrSegmentNotFound, segmentID)
	}
	return seg, nil
}

func (s *Snapshot) category(segmentID, categoryID int) (*segmentEntry, *categoryEntry, error) {
	seg, err := s.segment(segmentID)
	if err != nil {
		return nil, nil, err
	}
	cat, ok := seg.categories[categoryID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %d in segment %d", domain.ErrCategoryNotFound, categoryID, segmentID)
	}
	return seg, cat, nil
}

func (s *Snapshot) item(segmentID, categoryID, itemID int) (*segmentEntry, *categoryEntry, *ItemNode, error) {
	seg, cat, err := s.category(segmentID, categoryID)
	if err != nil {
		return nil, nil, nil, err
	}
	item, ok := cat.items[itemID]
	if !ok {
		return nil, nil, nil, fmt.Errorf("%w: %d in category %d", domain.ErrItemNotFound, itemID, categoryID)
	}
	return seg, cat, item, nil
}

// next returns a shallow copy with the version bumped. The segment map is copied so the
// caller may replace entries; the entries themselves are still shared.
func (s *Snapshot) next() *Snapshot {
	segments := make(map[int]*segmentEntry, len(s.segments))
	for id, seg := range s.segments {
		segments[id] = seg
	}
	return &Snapshot{
		order:       s.order,
		segments:    segments,
		version:     s.version + 1,
		fingerprint: s.fingerprint,
	}
}

func (e *segmentEntry) clone() *segmentEntry {
	categories := make(map[int]*categoryEntry, len(e.categories))
	for id, cat := range e.categories {
		categories[id] = cat
	}
	return &segmentEntry{node: e.node, order: e.order, categories: categories}
}

func (e *categoryEntry) clone() *categoryEntry {
	items := make(map[int]*ItemNode, len(e.items))
	for id, item := range e.items {
		items[id] = item
	}
	return &categoryEntry{node: e.node, order: e.order, items: items}
}

// withSegment returns a successor snapshot with a writable copy of one segment.
func (s *Snapshot) withSegment(segmentID int) (*Snapshot, *segmentEntry) {
	out := s.next()
	seg := out.segments[segmentID].clone()
	out.segments[segmentID] = seg
	return out, seg
}

// withCategory returns a successor snapshot with writable copies along the path to one category.
func (s *Snapshot) withCategory(segmentID, categoryID int) (*Snapshot, *segmentEntry, *categoryEntry) {
	out, seg := s.withSegment(segmentID)
	cat := seg.categories[categoryID].clone()
	seg.categories[categoryID] = cat
	return out, seg, cat
}
