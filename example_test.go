package pricetree_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/pricetree"
	"github.com/aretw0/pricetree/pkg/adapters/memory"
	"github.com/aretw0/pricetree/pkg/domain"
)

// ExampleEditor demonstrates a bulk segment edit with a manual item override,
// committed against the in-memory repository.
func ExampleEditor() {
	ctx := context.Background()
	repo := memory.NewRepository()

	ed := pricetree.New(pricetree.WithName("contract-7"))
	ed.Load(domain.Input{
		Segments:   []domain.Segment{{ID: 1, Name: "Hardware"}},
		Categories: []domain.Category{{ID: 10, ParentSegmentID: 1, Name: "Fasteners"}},
		Items: []domain.Item{
			{ID: 100, ParentCategoryID: 10, Name: "Bolt"},
			{ID: 101, ParentCategoryID: 10, Name: "Nut"},
		},
	})

	// 1. Bulk edit the whole segment, then pin one item.
	if err := ed.SetSegmentPricing(1, "20", "10"); err != nil {
		log.Fatal(err)
	}
	if err := ed.SetItemPricing(1, 10, 100, "5", ""); err != nil {
		log.Fatal(err)
	}

	// 2. Include every item of the category in the contract.
	if err := ed.ToggleCategory(1, 10); err != nil {
		log.Fatal(err)
	}

	// 3. Persist.
	changes, err := ed.Commit(ctx, repo)
	if err != nil {
		log.Fatal(err)
	}

	for _, c := range changes.Creates {
		fmt.Printf("create item=%d discount=%s rebate_set=%t\n", c.ItemID, c.Discount.Decimal, c.Rebate.Valid)
	}
	// Output:
	// create item=100 discount=5 rebate_set=false
	// create item=101 discount=20 rebate_set=true
}
