package tree

import (
	"fmt"

	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/shopspring/decimal"
)

// Changes classifies every item into the create, update or delete batch, in segment,
// category, item order:
//
//	selected, not linked         -> create
//	selected, linked, dirty      -> update
//	not selected, linked         -> delete
//	anything else                -> no-op
//
// A malformed pricing string is an input error that should have been rejected when the
// value was entered; it fails the whole computation.
func (s *Snapshot) Changes() (domain.ChangeSet, error) {
	var (
		changes domain.ChangeSet
		err     error
	)
	s.Walk(func(_ SegmentNode, _ CategoryNode, item ItemNode) {
		if err != nil {
			return
		}
		linkID, linked := item.ExistingLinkID()
		switch {
		case item.Selected && !linked:
			var discount, rebate decimal.NullDecimal
			if discount, rebate, err = parsePricing(item); err == nil {
				changes.Creates = append(changes.Creates, domain.CreateAssociation{
					ItemID:   item.ID,
					Discount: discount,
					Rebate:   rebate,
				})
			}
		case item.Selected && item.Dirty:
			var discount, rebate decimal.NullDecimal
			if discount, rebate, err = parsePricing(item); err == nil {
				changes.Updates = append(changes.Updates, domain.UpdateAssociation{
					ID:       linkID,
					ItemID:   item.ID,
					Discount: discount,
					Rebate:   rebate,
				})
			}
		case !item.Selected && linked:
			changes.Deletes = append(changes.Deletes, domain.DeleteAssociation{ID: linkID})
		}
	})
	if err != nil {
		return domain.ChangeSet{}, err
	}
	return changes, nil
}

func parsePricing(item ItemNode) (decimal.NullDecimal, decimal.NullDecimal, error) {
	discount, err := ParseDecimal(item.Pricing.Discount)
	if err != nil {
		return discount, discount, fmt.Errorf("item %d discount: %w", item.ID, err)
	}
	rebate, err := ParseDecimal(item.Pricing.Rebate)
	if err != nil {
		return discount, rebate, fmt.Errorf("item %d rebate: %w", item.ID, err)
	}
	return discount, rebate, nil
}

// ParseDecimal converts a pricing string: empty is null, anything else must be a decimal.
func ParseDecimal(v string) (decimal.NullDecimal, error) {
	if v == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: %q", domain.ErrInvalidPricing, v)
	}
	return decimal.NewNullDecimal(d), nil
}
