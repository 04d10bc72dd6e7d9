package tree

import "github.com/aretw0/pricetree/pkg/domain"

// SetSegmentPricing writes the segment's own pricing and pushes it down to every category and
// every non-dirty item beneath it, marking those items as inherited. Dirty items are untouched.
func (s *Snapshot) SetSegmentPricing(segmentID int, p domain.Pricing) (*Snapshot, error) {
	if _, err := s.segment(segmentID); err != nil {
		return s, err
	}

	out, seg := s.withSegment(segmentID)
	seg.node.Pricing = p
	for _, catID := range seg.order {
		cat := seg.categories[catID].clone()
		cat.node.Pricing = p
		inherit(cat, p)
		seg.categories[catID] = cat
	}
	return out, nil
}

// SetCategoryPricing writes the category's pricing, retracts the segment's pricing and pushes
// the value down to the non-dirty items of that category only.
func (s *Snapshot) SetCategoryPricing(segmentID, categoryID int, p domain.Pricing) (*Snapshot, error) {
	if _, _, err := s.category(segmentID, categoryID); err != nil {
		return s, err
	}

	out, seg, cat := s.withCategory(segmentID, categoryID)
	seg.node.Pricing = domain.Pricing{}
	cat.node.Pricing = p
	inherit(cat, p)
	return out, nil
}

// SetItemPricing writes the item's own pricing and marks it dirty. Both ancestor levels are
// cleared so the item is the single authority for its price.
func (s *Snapshot) SetItemPricing(segmentID, categoryID, itemID int, p domain.Pricing) (*Snapshot, error) {
	if _, _, _, err := s.item(segmentID, categoryID, itemID); err != nil {
		return s, err
	}

	out, seg, cat := s.withCategory(segmentID, categoryID)
	seg.node.Pricing = domain.Pricing{}
	cat.node.Pricing = domain.Pricing{}

	item := *cat.items[itemID]
	item.Pricing = p
	item.Dirty = true
	item.Inherited = false
	cat.items[itemID] = &item
	return out, nil
}

// inherit overwrites every non-dirty item of a writable category.
func inherit(cat *categoryEntry, p domain.Pricing) {
	for _, itemID := range cat.order {
		prev := cat.items[itemID]
		if prev.Dirty {
			continue
		}
		item := *prev
		item.Pricing = p
		item.Inherited = true
		cat.items[itemID] = &item
	}
}

// Owner resolves which level of the hierarchy currently owns an item's price.
//
// A dirty item owns its price. Otherwise a segment holding pricing is the latest bulk
// authority (a category edit would have retracted it), then the category. An item still
// carrying values after its ancestors were retracted owns them; anything else is unpriced.
func (s *Snapshot) Owner(segmentID, categoryID, itemID int) (domain.Level, error) {
	seg, cat, item, err := s.item(segmentID, categoryID, itemID)
	if err != nil {
		return domain.LevelNone, err
	}
	switch {
	case item.Dirty:
		return domain.LevelItem, nil
	case !seg.node.Pricing.IsEmpty():
		return domain.LevelSegment, nil
	case !cat.node.Pricing.IsEmpty():
		return domain.LevelCategory, nil
	case !item.Pricing.IsEmpty():
		return domain.LevelItem, nil
	}
	return domain.LevelNone, nil
}
