/*
Package pricetree is a hierarchical pricing override engine for contract price editing.

It manages bulk editing of discount and rebate values across a three-level tree
(vendor segment, item category, item). It resolves which level owns a price, propagates bulk
edits downward without clobbering manual overrides, tracks selection independently of pricing,
and computes a minimal create/update/delete diff against the item associations already persisted.

# Concept

The engine is a set of pure transitions: snapshot x edit -> snapshot. The Editor holds the
current snapshot, validates user-entered pricing strings, and swaps in the new snapshot only
when an edit succeeds. Persistence is a separate phase: the change set is computed first and
then handed to a ports.AssociationWriter supplied by the host.

# Key Rules

  - Single authority: setting a category clears its segment, setting an item clears both.
  - Dirty immunity: bulk edits never overwrite an item whose pricing was set directly.
  - Last write wins: loading a new upstream input discards every uncommitted edit.

# Usage

	ed := pricetree.New(pricetree.WithLogger(logger))
	ed.Load(domain.Input{Segments: segments, Categories: categories, Items: items, Associations: links})

	if err := ed.SetSegmentPricing(1, "20", "10"); err != nil {
		return err
	}
	if err := ed.SetItemPricing(1, 10, 100, "5", "0"); err != nil {
		return err
	}

	changes, err := ed.Commit(ctx, repo)
*/
package pricetree
