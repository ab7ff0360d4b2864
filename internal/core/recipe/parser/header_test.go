package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNumberedHeader(t *testing.T) {
	for _, line := range []string{"1. Mix", "2) Bake", "12.", "Step 3 combine", "step 10"} {
		assert.True(t, isNumberedHeader(line), line)
	}
	for _, line := range []string{"1.5 cups flour", "10 eggs", "Stepping stones"} {
		assert.False(t, isNumberedHeader(line), line)
	}
}

func TestIsColonHeader(t *testing.T) {
	assert.True(t, isColonHeader("For the sauce:"))
	assert.False(t, isColonHeader("For the sauce"))
	assert.False(t, isColonHeader(strings.Repeat("long ", 12)+"section:"))
}

func TestStartsWithCookingVerb(t *testing.T) {
	assert.True(t, startsWithCookingVerb("Bake until golden"))
	assert.True(t, startsWithCookingVerb("Whisk, then rest"))
	assert.False(t, startsWithCookingVerb("Serve immediately"))
	assert.False(t, startsWithCookingVerb(""))
}

func TestIsStepHeader(t *testing.T) {
	assert.True(t, IsStepHeader("1. Preheat oven to 350F"))
	assert.True(t, IsStepHeader("Topping:"))
	assert.True(t, IsStepHeader("slice the loaf"))
	assert.False(t, IsStepHeader("2 cups flour"))
	assert.False(t, IsStepHeader("The batter will be lumpy"))
}

func TestStepTitle(t *testing.T) {
	tests := []struct {
		line   string
		number int
		want   string
	}{
		{"1. Preheat oven", 1, "Preheat oven"},
		{"2) Mix", 2, "Mix"},
		{"Step 3: Bake", 3, "Bake"},
		{"Step 4", 4, "Step 4"},
		{"Sauce:", 5, "Sauce"},
		{"7.", 7, "Step 7"},
		{"Stir well", 2, "Stir well"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stepTitle(tt.line, tt.number), tt.line)
	}
}
