package model

// FinancialCategory classifies a budget line item
type FinancialCategory string

const (
	CategorySalary    FinancialCategory = "salary"
	CategoryIndirect  FinancialCategory = "indirect"
	CategoryTravel    FinancialCategory = "travel"
	CategorySupplies  FinancialCategory = "supplies"
	CategoryFringe    FinancialCategory = "fringe"
	CategoryEquipment FinancialCategory = "equipment"
	CategoryOther     FinancialCategory = "other"
)

// Categories lists every financial category in catalog order
func Categories() []FinancialCategory {
	return []FinancialCategory{
		CategorySalary, CategoryIndirect, CategoryTravel, CategorySupplies,
		CategoryFringe, CategoryEquipment, CategoryOther,
	}
}

// FinancialField is the representative monetary mention for one category.
// When a category matches more than once, the highest value wins.
type FinancialField struct {
	Category FinancialCategory `json:"category"`
	Value    float64           `json:"value"`   // Currency-agnostic magnitude, never negative
	Context  string            `json:"context"` // 50-character window on each side of the match
}
