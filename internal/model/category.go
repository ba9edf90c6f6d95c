package model

// Category classifies the kind of work an estimate line item covers.
type Category string

const (
	CategoryLaborInternal Category = "labor_internal"
	CategoryManagement    Category = "management"
	CategorySubcontractor Category = "subcontractor"
	CategoryMaterials     Category = "materials"
	CategoryEquipment     Category = "equipment"
	CategoryPermits       Category = "permits"
	CategoryOther         Category = "other"
)

// IsInternal reports whether work in this category is performed in-house,
// so no external vendor pricing is expected.
func (c Category) IsInternal() bool {
	return c == CategoryLaborInternal || c == CategoryManagement
}

// Known reports whether c is one of the predefined categories.
func (c Category) Known() bool {
	switch c {
	case CategoryLaborInternal, CategoryManagement, CategorySubcontractor,
		CategoryMaterials, CategoryEquipment, CategoryPermits, CategoryOther:
		return true
	}
	return false
}
