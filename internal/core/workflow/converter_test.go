package workflow

import (
	"testing"
	"time"

	"batch-maker/internal/core/recipe/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.UnixMilli(1700000000123) }

func TestConvert(t *testing.T) {
	recipe := &parser.ParsedRecipe{
		Title: "Banana  Bread",
		Steps: []parser.ParsedStep{
			{
				Number:       1,
				Title:        "Preheat",
				Instructions: "Heat the oven",
				Temperature:  "350°F",
			},
			{
				Number:       2,
				Title:        "Mix",
				Instructions: "Mix well",
				TimerMinutes: 5,
				Ingredients: []parser.ParsedIngredient{
					{Name: "flour", Amount: "2", Unit: "cups", FullText: "2 cups flour"},
					{Name: "eggs", Amount: "3", FullText: "3 eggs"},
				},
			},
		},
	}

	wf := NewConverter(fixedNow).Convert(recipe)

	assert.Equal(t, "banana_bread_1700000000123", wf.ID)
	assert.Equal(t, "Banana  Bread", wf.Name)
	require.Len(t, wf.Steps, 2)

	assert.Equal(t, "banana_bread_1700000000123_step_1", wf.Steps[0].ID)
	assert.Equal(t, "Preheat", wf.Steps[0].Title)
	assert.Equal(t, "Heat the oven\n\nTarget Temperature: 350°F", wf.Steps[0].Description)
	assert.Zero(t, wf.Steps[0].TimerMinutes)
	assert.False(t, wf.Steps[0].Completed)

	assert.Equal(t, "banana_bread_1700000000123_step_2", wf.Steps[1].ID)
	assert.Equal(t, "Mix well\n\n📋 Checklist:\n☐ 2 cups flour\n☐ 3 eggs", wf.Steps[1].Description)
	assert.Equal(t, 5, wf.Steps[1].TimerMinutes)
}

func TestDescribeWithoutInstructions(t *testing.T) {
	step := parser.ParsedStep{
		Title:       "Gather",
		Ingredients: []parser.ParsedIngredient{{Name: "salt", FullText: "pinch of salt"}},
	}
	assert.Equal(t, "📋 Checklist:\n☐ pinch of salt", Describe(step))
	assert.Equal(t, "", Describe(parser.ParsedStep{}))
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "grandma's_apple_pie", Slug("  Grandma's Apple\tPie "))
	assert.Equal(t, "", Slug(""))
}

func TestConvertEmptyRecipe(t *testing.T) {
	wf := NewConverter(fixedNow).Convert(&parser.ParsedRecipe{Title: "Nothing"})
	assert.Equal(t, "nothing_1700000000123", wf.ID)
	assert.NotNil(t, wf.Steps)
	assert.Empty(t, wf.Steps)
}
