package barcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCollection() *FieldCollection {
	return NewFieldCollection(
		NewField[string]("21", 0, 20, GS1String),
		NewFixedField[*GTIN]("01", 14, ProductCodeCodec[*GTIN]{New: NewGTIN}),
		NewField[string]("10", 0, 20, GS1String),
	)
}

func TestFieldCollection_Order(t *testing.T) {
	c := newTestCollection()

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"21", "01", "10"}, c.Identifiers())

	var sorted []string
	for _, f := range c.Sorted() {
		sorted = append(sorted, f.Identifier())
	}
	assert.Equal(t, []string{"01", "10", "21"}, sorted)

	var all []string
	for _, f := range c.All() {
		all = append(all, f.Identifier())
	}
	assert.Equal(t, c.Identifiers(), all)
}

func TestFieldCollection_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewFieldCollection(
			NewField[string]("10", 0, 20, GS1String),
			NewField[string]("10", 0, 20, GS1String),
		)
	})
}

func TestFieldCollection_SetAndLookup(t *testing.T) {
	c := newTestCollection()

	require.NoError(t, c.Set("10", "LOT"))
	assert.Equal(t, "LOT", c.Value("10"))
	assert.Nil(t, c.Value("21"))
	assert.Nil(t, c.Value("99"))

	err := c.Set("99", "x")
	assert.ErrorIs(t, err, ErrUnknownField)

	require.NoError(t, c.Parse("01", "05412345678908"))
	gtin, ok := Get[*GTIN](c, "01")
	require.True(t, ok)
	assert.Equal(t, "05412345678908", gtin.Code())

	_, ok = Lookup[string](c, "01")
	assert.False(t, ok, "wrong value type")

	c.Clear()
	assert.Nil(t, c.Value("10"))
	assert.True(t, c.Contains("10"))
	assert.False(t, c.Contains("99"))
}
