package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields_OmitsUnchangedFields(t *testing.T) {
	specs := []Spec{
		{Name: "title", Kind: KindText},
		{Name: "year", Kind: KindScalar},
	}

	changes := Fields(
		map[string]any{"title": "A", "year": 1940},
		map[string]any{"title": "A", "year": 1941},
		specs,
	)

	require.Len(t, changes, 1)
	assert.Equal(t, "year", changes[0].Field)
	assert.Equal(t, "1940", changes[0].From)
	assert.Equal(t, "1941", changes[0].To)
	assert.Empty(t, changes[0].Words)
}

func TestFields_SpecOrderFixesChangeOrder(t *testing.T) {
	specs := []Spec{
		{Name: "first", Kind: KindScalar},
		{Name: "second", Kind: KindScalar},
		{Name: "third", Kind: KindScalar},
	}

	changes := Fields(
		map[string]any{"third": 1, "first": 1, "second": 1},
		map[string]any{"third": 2, "first": 2, "second": 2},
		specs,
	)

	require.Len(t, changes, 3)
	assert.Equal(t, "first", changes[0].Field)
	assert.Equal(t, "second", changes[1].Field)
	assert.Equal(t, "third", changes[2].Field)
}

func TestFields_TextCarriesWordDiff(t *testing.T) {
	specs := []Spec{{Name: "description", Kind: KindText}}

	changes := Fields(
		map[string]any{"description": "the cat sat"},
		map[string]any{"description": "the dog sat"},
		specs,
	)

	require.Len(t, changes, 1)
	assert.NotEmpty(t, changes[0].Words)
}

func TestFields_FormatterAppliesToComparisonAndDisplay(t *testing.T) {
	monthName := func(v any) string {
		names := map[int]string{3: "March", 4: "April"}
		m, _ := v.(int)
		return names[m]
	}
	specs := []Spec{{Name: "month", Kind: KindScalar, Format: monthName}}

	changes := Fields(
		map[string]any{"month": 3},
		map[string]any{"month": 4},
		specs,
	)

	require.Len(t, changes, 1)
	assert.Equal(t, "March", changes[0].From)
	assert.Equal(t, "April", changes[0].To)
}

func TestFields_ListComparison(t *testing.T) {
	specs := []Spec{{Name: "tags", Kind: KindList}}

	same := Fields(
		map[string]any{"tags": []string{"war", "europe"}},
		map[string]any{"tags": []string{"war", "europe"}},
		specs,
	)
	assert.Empty(t, same)

	changed := Fields(
		map[string]any{"tags": []string{"war"}},
		map[string]any{"tags": []string{"war", "europe"}},
		specs,
	)
	require.Len(t, changed, 1)
	assert.Equal(t, "war", changed[0].From)
	assert.Equal(t, "war, europe", changed[0].To)
}

func TestFields_NilCoercion(t *testing.T) {
	specs := []Spec{
		{Name: "note", Kind: KindText},
		{Name: "tags", Kind: KindList},
	}

	// Nil against empty is no change.
	assert.Empty(t, Fields(
		map[string]any{"note": nil, "tags": nil},
		map[string]any{"note": "", "tags": []string{}},
		specs,
	))

	// A value appearing where there was nil is a change from empty.
	changes := Fields(
		map[string]any{},
		map[string]any{"note": "added later"},
		specs,
	)
	require.Len(t, changes, 1)
	assert.Equal(t, "", changes[0].From)
	assert.Equal(t, "added later", changes[0].To)
}

func TestCoerceString(t *testing.T) {
	assert.Equal(t, "", coerceString(nil))
	assert.Equal(t, "x", coerceString("x"))
	assert.Equal(t, "7", coerceString(7))
	assert.Equal(t, "-509", coerceString(int64(-509)))
	assert.Equal(t, "1.5", coerceString(1.5))
	assert.Equal(t, "true", coerceString(true))
}

func TestCoerceList(t *testing.T) {
	assert.Nil(t, coerceList(nil))
	assert.Equal(t, []string{"a", "b"}, coerceList([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "1"}, coerceList([]any{"a", 1}))
	assert.Equal(t, []string{"solo"}, coerceList("solo"))
}
