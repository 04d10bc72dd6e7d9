// Package scenario loads a contract's entities, persisted associations and an edit script
// from a YAML file, for previewing changes from the command line.
package scenario

import (
	"fmt"
	"os"

	"github.com/aretw0/pricetree"
	"github.com/aretw0/pricetree/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// File represents the structure of a scenario file.
type File struct {
	Name         string            `yaml:"name"`
	Version      string            `yaml:"version"`
	Segments     []domain.Segment  `yaml:"segments"`
	Categories   []domain.Category `yaml:"categories"`
	Items        []domain.Item     `yaml:"items"`
	Associations []Association     `yaml:"associations"`
	Edits        []map[string]any  `yaml:"edits"`
}

// Association is a persisted association as written in YAML, with plain numbers.
type Association struct {
	ID       int      `yaml:"id"`
	ItemID   int      `yaml:"item_id"`
	Discount *float64 `yaml:"discount"`
	Rebate   *float64 `yaml:"rebate"`
}

// Edit is one step of the edit script.
type Edit struct {
	Op       domain.EditKind `mapstructure:"op"`
	Segment  int             `mapstructure:"segment"`
	Category int             `mapstructure:"category"`
	Item     int             `mapstructure:"item"`
	Discount string          `mapstructure:"discount"`
	Rebate   string          `mapstructure:"rebate"`
	Filter   string          `mapstructure:"filter"`
}

// Scenario is a decoded scenario file.
type Scenario struct {
	Name  string
	Input domain.Input
	Edits []Edit
}

// Load reads and decodes a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scenario: %w", err)
	}

	sc := &Scenario{
		Name: f.Name,
		Input: domain.Input{
			Version:    f.Version,
			Segments:   f.Segments,
			Categories: f.Categories,
			Items:      f.Items,
		},
	}
	for _, a := range f.Associations {
		sc.Input.Associations = append(sc.Input.Associations, domain.ExistingAssociation{
			ID:       a.ID,
			ItemID:   a.ItemID,
			Discount: nullDecimal(a.Discount),
			Rebate:   nullDecimal(a.Rebate),
		})
	}

	for i, raw := range f.Edits {
		edit, err := decodeEdit(raw)
		if err != nil {
			return nil, fmt.Errorf("edit %d: %w", i+1, err)
		}
		sc.Edits = append(sc.Edits, edit)
	}
	return sc, nil
}

func decodeEdit(raw map[string]any) (Edit, error) {
	var edit Edit
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &edit,
	})
	if err != nil {
		return edit, err
	}
	if err := dec.Decode(raw); err != nil {
		return edit, fmt.Errorf("failed to decode edit: %w", err)
	}
	if edit.Op == "" {
		return edit, fmt.Errorf("edit missing op")
	}
	return edit, nil
}

func nullDecimal(f *float64) decimal.NullDecimal {
	if f == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*f))
}

// Apply runs the edit script against the editor in order and stops at the first failure.
func Apply(ed *pricetree.Editor, edits []Edit) error {
	for i, e := range edits {
		var err error
		switch e.Op {
		case domain.EditSegmentPricing:
			err = ed.SetSegmentPricing(e.Segment, e.Discount, e.Rebate)
		case domain.EditCategoryPricing:
			err = ed.SetCategoryPricing(e.Segment, e.Category, e.Discount, e.Rebate)
		case domain.EditItemPricing:
			err = ed.SetItemPricing(e.Segment, e.Category, e.Item, e.Discount, e.Rebate)
		case domain.EditToggleItem:
			err = ed.ToggleItem(e.Segment, e.Category, e.Item)
		case domain.EditToggleCategory:
			err = ed.ToggleCategory(e.Segment, e.Category)
		case domain.EditToggleSegment:
			err = ed.ToggleSegment(e.Segment)
		case domain.EditItemFilter:
			err = ed.SetItemFilter(e.Segment, e.Category, e.Filter)
		default:
			err = fmt.Errorf("unknown op %q", e.Op)
		}
		if err != nil {
			return fmt.Errorf("edit %d: %w", i+1, err)
		}
	}
	return nil
}
