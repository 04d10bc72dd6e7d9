package domain

import "github.com/shopspring/decimal"

// CreateAssociation asks the persistence layer to link a new item to the contract.
type CreateAssociation struct {
	ItemID   int                 `json:"item_id" yaml:"item_id"`
	Discount decimal.NullDecimal `json:"discount" yaml:"discount"`
	Rebate   decimal.NullDecimal `json:"rebate" yaml:"rebate"`
}

// UpdateAssociation rewrites the pricing of an already persisted association.
type UpdateAssociation struct {
	ID       int                 `json:"id" yaml:"id"`
	ItemID   int                 `json:"item_id" yaml:"item_id"`
	Discount decimal.NullDecimal `json:"discount" yaml:"discount"`
	Rebate   decimal.NullDecimal `json:"rebate" yaml:"rebate"`
}

// DeleteAssociation removes a persisted association.
type DeleteAssociation struct {
	ID int `json:"id" yaml:"id"`
}

// ChangeSet holds the three operation batches in tree traversal order.
type ChangeSet struct {
	Creates []CreateAssociation `json:"creates"`
	Updates []UpdateAssociation `json:"updates"`
	Deletes []DeleteAssociation `json:"deletes"`
}

// IsEmpty checks if the change set contains any actionable operation.
func (c ChangeSet) IsEmpty() bool {
	return len(c.Creates) == 0 && len(c.Updates) == 0 && len(c.Deletes) == 0
}

// Len returns the total number of operations.
func (c ChangeSet) Len() int {
	return len(c.Creates) + len(c.Updates) + len(c.Deletes)
}
