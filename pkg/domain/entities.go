package domain

import "github.com/shopspring/decimal"

// Segment is the broadest level of the pricing hierarchy (a vendor segment).
type Segment struct {
	ID   int    `json:"id" yaml:"id" mapstructure:"id"`
	Name string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
}

// Category groups items and belongs to exactly one segment.
type Category struct {
	ID              int    `json:"id" yaml:"id" mapstructure:"id"`
	ParentSegmentID int    `json:"parent_segment_id" yaml:"parent_segment_id" mapstructure:"parent_segment_id"`
	Name            string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
}

// Item is the leaf level; associations are persisted per item.
type Item struct {
	ID               int    `json:"id" yaml:"id" mapstructure:"id"`
	ParentCategoryID int    `json:"parent_category_id" yaml:"parent_category_id" mapstructure:"parent_category_id"`
	Name             string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
}

// ExistingAssociation is an item override that was already persisted for the contract.
type ExistingAssociation struct {
	ID       int                 `json:"id"`
	ItemID   int                 `json:"item_id"`
	Discount decimal.NullDecimal `json:"discount"`
	Rebate   decimal.NullDecimal `json:"rebate"`
}

// Input is the upstream entity snapshot a tree is built from.
type Input struct {
	// Version is an optional caller-supplied token identifying the snapshot.
	// When empty, staleness is detected from the content of the lists instead.
	Version      string
	Segments     []Segment
	Categories   []Category
	Items        []Item
	Associations []ExistingAssociation
}
