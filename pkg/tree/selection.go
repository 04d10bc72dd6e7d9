package tree

import (
	"strconv"
	"strings"

	"github.com/aretw0/pricetree/pkg/domain"
)

// collapse maps a group's tri-state to the selection flag a toggle applies to every member.
// None and Mixed both select all, so a toggle is not an involution from a mixed start.
var collapse = map[domain.SelectionState]bool{
	domain.SelectionNone:  true,
	domain.SelectionMixed: true,
	domain.SelectionAll:   false,
}

// reduce folds selection flags into a tri-state. An empty group is None.
func reduce(state domain.SelectionState, first bool, selected bool) domain.SelectionState {
	switch {
	case first && selected:
		return domain.SelectionAll
	case first:
		return domain.SelectionNone
	case state == domain.SelectionAll && !selected, state == domain.SelectionNone && selected:
		return domain.SelectionMixed
	}
	return state
}

func categorySelection(cat *categoryEntry) domain.SelectionState {
	state := domain.SelectionNone
	for i, itemID := range cat.order {
		state = reduce(state, i == 0, cat.items[itemID].Selected)
		if state == domain.SelectionMixed {
			break
		}
	}
	return state
}

func segmentSelection(seg *segmentEntry) domain.SelectionState {
	state := domain.SelectionNone
	first := true
	for _, catID := range seg.order {
		cat := seg.categories[catID]
		for _, itemID := range cat.order {
			state = reduce(state, first, cat.items[itemID].Selected)
			first = false
			if state == domain.SelectionMixed {
				return state
			}
		}
	}
	return state
}

// CategorySelection reports the tri-state of a category's items.
func (s *Snapshot) CategorySelection(segmentID, categoryID int) (domain.SelectionState, error) {
	_, cat, err := s.category(segmentID, categoryID)
	if err != nil {
		return domain.SelectionNone, err
	}
	return categorySelection(cat), nil
}

// SegmentSelection reports the tri-state over every item of a segment, across categories.
func (s *Snapshot) SegmentSelection(segmentID int) (domain.SelectionState, error) {
	seg, err := s.segment(segmentID)
	if err != nil {
		return domain.SelectionNone, err
	}
	return segmentSelection(seg), nil
}

// ToggleItem flips one item's selection. Pricing is never touched.
func (s *Snapshot) ToggleItem(segmentID, categoryID, itemID int) (*Snapshot, error) {
	if _, _, _, err := s.item(segmentID, categoryID, itemID); err != nil {
		return s, err
	}

	out, _, cat := s.withCategory(segmentID, categoryID)
	item := *cat.items[itemID]
	item.Selected = !item.Selected
	cat.items[itemID] = &item
	return out, nil
}

// ToggleCategory selects every item of the category unless all are already selected,
// in which case it deselects them all.
func (s *Snapshot) ToggleCategory(segmentID, categoryID int) (*Snapshot, error) {
	_, cat, err := s.category(segmentID, categoryID)
	if err != nil {
		return s, err
	}
	target := collapse[categorySelection(cat)]

	out, _, writable := s.withCategory(segmentID, categoryID)
	selectAll(writable, target)
	return out, nil
}

// ToggleSegment applies the same collapse as ToggleCategory over all items of the segment,
// ignoring category boundaries.
func (s *Snapshot) ToggleSegment(segmentID int) (*Snapshot, error) {
	seg, err := s.segment(segmentID)
	if err != nil {
		return s, err
	}
	target := collapse[segmentSelection(seg)]

	out, writable := s.withSegment(segmentID)
	for _, catID := range writable.order {
		if !needsSelect(writable.categories[catID], target) {
			continue
		}
		cat := writable.categories[catID].clone()
		selectAll(cat, target)
		writable.categories[catID] = cat
	}
	return out, nil
}

func needsSelect(cat *categoryEntry, target bool) bool {
	for _, item := range cat.items {
		if item.Selected != target {
			return true
		}
	}
	return false
}

// selectAll sets every item of a writable category, reallocating only items that change.
func selectAll(cat *categoryEntry, target bool) {
	for _, itemID := range cat.order {
		prev := cat.items[itemID]
		if prev.Selected == target {
			continue
		}
		item := *prev
		item.Selected = target
		cat.items[itemID] = &item
	}
}

// SetItemFilter stores the category's free-text item search. It affects VisibleItems only.
func (s *Snapshot) SetItemFilter(segmentID, categoryID int, filter string) (*Snapshot, error) {
	if _, _, err := s.category(segmentID, categoryID); err != nil {
		return s, err
	}
	out, _, cat := s.withCategory(segmentID, categoryID)
	cat.node.Filter = filter
	return out, nil
}

// VisibleItems returns the items of a category matching its filter by name or id,
// case-insensitively. An empty filter matches everything.
func (s *Snapshot) VisibleItems(segmentID, categoryID int) ([]ItemNode, error) {
	_, cat, err := s.category(segmentID, categoryID)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(cat.node.Filter))
	out := make([]ItemNode, 0, len(cat.order))
	for _, itemID := range cat.order {
		item := cat.items[itemID]
		if needle == "" ||
			strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strconv.Itoa(item.ID), needle) {
			out = append(out, *item)
		}
	}
	return out, nil
}
