package tree

import (
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/shopspring/decimal"
)

// Build constructs the initial snapshot from flat entity lists and the persisted associations.
//
// Categories referencing an unknown segment and items referencing an unknown category are
// skipped. Duplicate ids keep their first occurrence. When several associations exist for one
// item only the first is used; duplicates are a caller error and otherwise unsupported.
func Build(in domain.Input) *Snapshot {
	links := make(map[int]domain.ExistingAssociation, len(in.Associations))
	for _, assoc := range in.Associations {
		if _, seen := links[assoc.ItemID]; !seen {
			links[assoc.ItemID] = assoc
		}
	}

	snap := &Snapshot{
		segments:    make(map[int]*segmentEntry, len(in.Segments)),
		fingerprint: Fingerprint(in),
	}
	for _, s := range in.Segments {
		if _, dup := snap.segments[s.ID]; dup {
			continue
		}
		snap.order = append(snap.order, s.ID)
		snap.segments[s.ID] = &segmentEntry{
			node:       SegmentNode{ID: s.ID, Name: s.Name},
			categories: make(map[int]*categoryEntry),
		}
	}

	categories := make(map[int]*categoryEntry, len(in.Categories))
	for _, c := range in.Categories {
		seg, ok := snap.segments[c.ParentSegmentID]
		if !ok {
			continue
		}
		if _, dup := categories[c.ID]; dup {
			continue
		}
		cat := &categoryEntry{
			node:  CategoryNode{ID: c.ID, SegmentID: c.ParentSegmentID, Name: c.Name},
			items: make(map[int]*ItemNode),
		}
		categories[c.ID] = cat
		seg.order = append(seg.order, c.ID)
		seg.categories[c.ID] = cat
	}

	seenItems := make(map[int]bool, len(in.Items))
	for _, it := range in.Items {
		cat, ok := categories[it.ParentCategoryID]
		if !ok || seenItems[it.ID] {
			continue
		}
		seenItems[it.ID] = true

		node := &ItemNode{ID: it.ID, CategoryID: it.ParentCategoryID, Name: it.Name}
		if assoc, ok := links[it.ID]; ok {
			node.Selected = true
			node.linkID = assoc.ID
			node.linked = true
			node.Pricing = domain.Pricing{
				Discount: formatDecimal(assoc.Discount),
				Rebate:   formatDecimal(assoc.Rebate),
			}
		}
		cat.order = append(cat.order, it.ID)
		cat.items[it.ID] = node
	}

	return snap
}

func formatDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
