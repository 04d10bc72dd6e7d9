// Package report turns snapshots and change sets into printable documents.
package report

import (
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/aretw0/pricetree/pkg/tree"
	"github.com/shopspring/decimal"
)

// Operation is the flattened, serialisable view of one association change.
type Operation struct {
	Op       string  `json:"op" yaml:"op"`
	ID       *int    `json:"id,omitempty" yaml:"id,omitempty"`
	ItemID   *int    `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	Discount *string `json:"discount,omitempty" yaml:"discount,omitempty"`
	Rebate   *string `json:"rebate,omitempty" yaml:"rebate,omitempty"`
}

// Plan is the document printed by the plan command.
type Plan struct {
	Scenario   string      `json:"scenario,omitempty" yaml:"scenario,omitempty"`
	Version    uint64      `json:"version" yaml:"version"`
	Operations []Operation `json:"operations" yaml:"operations"`
}

// NewPlan flattens a change set into creates, updates then deletes.
func NewPlan(name string, version uint64, cs domain.ChangeSet) Plan {
	ops := make([]Operation, 0, cs.Len())
	for _, c := range cs.Creates {
		ops = append(ops, Operation{Op: "create", ItemID: ptr(c.ItemID), Discount: text(c.Discount), Rebate: text(c.Rebate)})
	}
	for _, u := range cs.Updates {
		ops = append(ops, Operation{Op: "update", ID: ptr(u.ID), ItemID: ptr(u.ItemID), Discount: text(u.Discount), Rebate: text(u.Rebate)})
	}
	for _, d := range cs.Deletes {
		ops = append(ops, Operation{Op: "delete", ID: ptr(d.ID)})
	}
	return Plan{Scenario: name, Version: version, Operations: ops}
}

// ItemView is one item row of the tree document.
type ItemView struct {
	ID        int            `json:"id" yaml:"id"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Selected  bool           `json:"selected" yaml:"selected"`
	Dirty     bool           `json:"dirty" yaml:"dirty"`
	Inherited bool           `json:"inherited" yaml:"inherited"`
	Owner     domain.Level   `json:"owner" yaml:"owner"`
	LinkID    *int           `json:"link_id,omitempty" yaml:"link_id,omitempty"`
	Pricing   domain.Pricing `json:"pricing" yaml:"pricing"`
}

// CategoryView groups the items of one category.
type CategoryView struct {
	ID        int            `json:"id" yaml:"id"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	Selection string         `json:"selection" yaml:"selection"`
	Filter    string         `json:"filter,omitempty" yaml:"filter,omitempty"`
	Pricing   domain.Pricing `json:"pricing" yaml:"pricing"`
	Items     []ItemView     `json:"items" yaml:"items"`
}

// SegmentView groups the categories of one segment.
type SegmentView struct {
	ID         int            `json:"id" yaml:"id"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Selection  string         `json:"selection" yaml:"selection"`
	Pricing    domain.Pricing `json:"pricing" yaml:"pricing"`
	Categories []CategoryView `json:"categories" yaml:"categories"`
}

// Tree is the document printed by the tree command.
type Tree struct {
	Version  uint64        `json:"version" yaml:"version"`
	Segments []SegmentView `json:"segments" yaml:"segments"`
}

// NewTree projects a snapshot into its document form. Filtered items are omitted.
func NewTree(s *tree.Snapshot) Tree {
	out := Tree{Version: s.Version(), Segments: []SegmentView{}}
	for _, seg := range s.Segments() {
		segSel, _ := s.SegmentSelection(seg.ID)
		sv := SegmentView{ID: seg.ID, Name: seg.Name, Selection: segSel.String(), Pricing: seg.Pricing, Categories: []CategoryView{}}

		cats, _ := s.Categories(seg.ID)
		for _, cat := range cats {
			catSel, _ := s.CategorySelection(seg.ID, cat.ID)
			cv := CategoryView{ID: cat.ID, Name: cat.Name, Selection: catSel.String(), Filter: cat.Filter, Pricing: cat.Pricing, Items: []ItemView{}}

			items, _ := s.VisibleItems(seg.ID, cat.ID)
			for _, item := range items {
				owner, _ := s.Owner(seg.ID, cat.ID, item.ID)
				iv := ItemView{
					ID:        item.ID,
					Name:      item.Name,
					Selected:  item.Selected,
					Dirty:     item.Dirty,
					Inherited: item.Inherited,
					Owner:     owner,
					Pricing:   item.Pricing,
				}
				if id, ok := item.ExistingLinkID(); ok {
					iv.LinkID = ptr(id)
				}
				cv.Items = append(cv.Items, iv)
			}
			sv.Categories = append(sv.Categories, cv)
		}
		out.Segments = append(out.Segments, sv)
	}
	return out
}

func ptr(v int) *int { return &v }

func text(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}
