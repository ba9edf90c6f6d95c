package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategoryIsInternal(t *testing.T) {
	tests := []struct {
		cat  Category
		want bool
	}{
		{CategoryLaborInternal, true},
		{CategoryManagement, true},
		{CategorySubcontractor, false},
		{CategoryMaterials, false},
		{CategoryEquipment, false},
		{Category("landscaping"), false},
		{Category(""), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.cat.IsInternal(), "IsInternal(%q)", tt.cat)
	}
}

func TestCategoryKnown(t *testing.T) {
	assert.True(t, CategoryPermits.Known())
	assert.False(t, Category("landscaping").Known())
}

func TestBaseline(t *testing.T) {
	c := LineItemControlData{EstimateLineItem: EstimateLineItem{EstimatedCost: decimal.NewFromInt(500)}}
	assert.True(t, c.Baseline().Equal(decimal.NewFromInt(500)), "unquoted item uses estimated cost")

	c.QuotedCost = decimal.NewFromInt(650)
	assert.True(t, c.Baseline().Equal(decimal.NewFromInt(650)), "quoted item uses quoted cost")
}

func TestQuoteAccepted(t *testing.T) {
	assert.True(t, Quote{Status: QuoteAccepted}.Accepted())
	assert.False(t, Quote{Status: QuotePending}.Accepted())
	assert.False(t, Quote{Status: QuoteRejected}.Accepted())
}

func TestExpenseAllocated(t *testing.T) {
	assert.True(t, Expense{LineItemID: "li-1"}.Allocated())
	assert.False(t, Expense{}.Allocated())
}
