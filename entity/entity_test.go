package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	category, err := ParseCategory("beef")
	require.NoError(t, err)
	assert.Equal(t, CategoryBeef, category)

	category, err = ParseCategory(" Vegetarian ")
	require.NoError(t, err)
	assert.Equal(t, CategoryVegetarian, category)

	_, err = ParseCategory("dessert")
	assert.Error(t, err)
}

func TestPageRequestNormalized(t *testing.T) {
	page := PageRequest{Number: -3, Size: 0}.Normalized()
	assert.Equal(t, DefaultPageNumber, page.Number)
	assert.Equal(t, DefaultPageSize, page.Size)

	page = PageRequest{Number: 2, Size: 10}.Normalized()
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 10, page.Size)
}

func TestNewRecipePage(t *testing.T) {
	content := []Recipe{{Name: "A"}, {Name: "B"}}

	page := NewRecipePage(content, PageRequest{Number: 1, Size: 5}, 7)
	assert.False(t, page.Empty)
	assert.False(t, page.First)
	assert.True(t, page.Last)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 5, page.Size)
	assert.Equal(t, int64(7), page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)
}

func TestNewRecipePageEmpty(t *testing.T) {
	page := NewRecipePage(nil, PageRequest{Number: 0, Size: 100}, 0)
	assert.True(t, page.Empty)
	assert.NotNil(t, page.Content)
	assert.True(t, page.First)
	assert.True(t, page.Last)
	assert.Zero(t, page.TotalPages)
}

func TestErrorKinds(t *testing.T) {
	err := NotFound("Recipe with id: %s, not found", "abc")
	assert.True(t, IsKind(err, KindNotFound))
	assert.Equal(t, "Recipe with id: abc, not found", err.Error())

	wrapped := fmt.Errorf("lookup failed: %w", Conflict("already exists"))
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.Equal(t, KindConflict, KindOf(wrapped))

	assert.Equal(t, KindUnclassified, KindOf(errors.New("boom")))
	assert.False(t, IsKind(nil, KindNotFound))

	validation := Validation("Invalid request sent", []string{"name: required"})
	assert.True(t, IsKind(validation, KindValidation))
	assert.Equal(t, []string{"name: required"}, validation.Fields)
}
