package domain

// Pricing is a discount/rebate pair as entered by the user.
// An empty string means "no override at this level", not zero.
type Pricing struct {
	Discount string `json:"discount_percentage" yaml:"discount_percentage"`
	Rebate   string `json:"rebate_percentage" yaml:"rebate_percentage"`
}

// IsEmpty reports whether neither field carries a value.
func (p Pricing) IsEmpty() bool {
	return p.Discount == "" && p.Rebate == ""
}

// Level identifies a tier of the hierarchy.
type Level string

const (
	LevelNone     Level = "none"
	LevelSegment  Level = "segment"
	LevelCategory Level = "category"
	LevelItem     Level = "item"
)

// SelectionState is the tri-state reduction of a group of item selection flags.
type SelectionState int

const (
	SelectionNone SelectionState = iota
	SelectionMixed
	SelectionAll
)

func (s SelectionState) String() string {
	switch s {
	case SelectionNone:
		return "none"
	case SelectionMixed:
		return "mixed"
	case SelectionAll:
		return "all"
	}
	return "unknown"
}
