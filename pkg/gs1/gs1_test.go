package gs1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

const gs = "\x1D"

func TestParse(t *testing.T) {
	b, err := Parse("0105412345678908" + "17251231" + "10LOT42" + gs + "21SER1")
	require.NoError(t, err)
	require.NotNil(t, b)

	pc, err := b.ProductCode()
	require.NoError(t, err)
	assert.Equal(t, "05412345678908", pc.Code())
	assert.Equal(t, barcode.ProductCodeGTIN, pc.Type())

	batch, err := b.BatchNumber()
	require.NoError(t, err)
	assert.Equal(t, "LOT42", batch)

	serial, err := b.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "SER1", serial)

	exp, err := b.ExpirationDate()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", exp.String())

	prod, err := b.ProductionDate()
	require.NoError(t, err)
	assert.Nil(t, prod)

	assert.Equal(t, barcode.TypeGS1, b.Type())
	assert.Nil(t, b.SymbologyIdentifier())
}

func TestParse_SymbologyAndLeadingSeparator(t *testing.T) {
	b, err := Parse("]d2" + gs + "0105412345678908" + "10ABC")
	require.NoError(t, err)
	require.NotNil(t, b.SymbologyIdentifier())
	assert.Equal(t, "d2", b.SymbologyIdentifier().Value())

	_, isGS1 := b.SymbologyIdentifier().(*barcode.GS1SymbologyIdentifier)
	assert.True(t, isGS1)

	batch, _ := b.BatchNumber()
	assert.Equal(t, "ABC", batch)
}

func TestParse_Blank(t *testing.T) {
	for _, s := range []string{"", "   "} {
		b, err := Parse(s)
		assert.NoError(t, err)
		assert.Nil(t, b)
	}
}

func TestParse_DayZero(t *testing.T) {
	b, err := Parse("17991200")
	require.NoError(t, err)
	exp, err := b.ExpirationDate()
	require.NoError(t, err)
	assert.Equal(t, "2099-12-31", exp.String())
	assert.Equal(t, "991200", exp.Code())

	out, err := Build(b)
	require.NoError(t, err)
	assert.Equal(t, "17991200", out)
}

func TestParse_TypedElements(t *testing.T) {
	b, err := Parse("3103000150" + "3012" + gs + "00012345678901234567" + "422276")
	require.NoError(t, err)

	assert.Equal(t, barcode.Decimal{Units: 150, Places: 3}, b.Value("310"))
	assert.Equal(t, 12, b.Value("30"))
	assert.Equal(t, "012345678901234567", b.Value("00"))
	assert.Equal(t, "276", b.Value("422"))
}

func TestParse_VariableFieldStopsAtMax(t *testing.T) {
	b, err := Parse("10ABCDEFGHIJKLMNOPQRST" + "17251231")
	require.NoError(t, err)
	batch, _ := b.BatchNumber()
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRST", batch)
	exp, _ := b.ExpirationDate()
	assert.Equal(t, "251231", exp.Code())
}

func TestParse_DuplicateOverwrites(t *testing.T) {
	b, err := Parse("10AAA" + gs + "10BBB")
	require.NoError(t, err)
	batch, _ := b.BatchNumber()
	assert.Equal(t, "BBB", batch)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"fixed field too short", "0105412345678908" + "1725123", "Invalid value Length 5. Expected 6 Bytes."},
		{"unknown two digit prefix", "04123", "invalid character detected in AI '04'"},
		{"non digit in AI", "0105412345678908" + "1A", "invalid character detected in AI '1A'"},
		{"unknown three digit prefix", "2301", "invalid character detected in AI '230'"},
		{"unknown four digit identifier", "7000123", "unknown application identifier '7000'"},
		{"truncated identifier", "0105412345678908" + "7", "invalid character detected in AI '7'"},
		{"wrong check digit", "0105412345678907", "Expected '8'"},
		{"separator inside fixed field", "01054123" + gs + "45678908", "Separator"},
		{"invalid date", "17251301", "Month 13 out of range"},
		{"only separator", gs, "no element strings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.Contains(t, err.Error(), "Failed to parse GS1 Barcode :\n")
			assert.Contains(t, err.Error(), tt.message)

			var pe *barcode.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, barcode.TypeGS1, pe.Format)
		})
	}
}

func TestTryParse(t *testing.T) {
	b, ok := TryParse("0105412345678908")
	assert.True(t, ok)
	assert.NotNil(t, b)

	b, ok = TryParse("04")
	assert.False(t, ok)
	assert.Nil(t, b)

	_, feedback, ok := TryParseFeedback("04")
	assert.False(t, ok)
	assert.Contains(t, feedback, "invalid character detected in AI '04'")
}

func TestBuild(t *testing.T) {
	b, err := Parse("21SER1" + gs + "0105412345678908" + "10LOT42" + gs + "17251231")
	require.NoError(t, err)

	out, err := Build(b)
	require.NoError(t, err)
	assert.Equal(t, "0105412345678908"+"10LOT42"+gs+"17251231"+"21SER1", out)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, b.Value("01"), again.Value("01"))
	assert.Equal(t, b.Value("10"), again.Value("10"))
	assert.Equal(t, b.Value("21"), again.Value("21"))
}

func TestBuild_Programmatic(t *testing.T) {
	b := New()
	gtin, err := barcode.NewGTIN("04150123456782")
	require.NoError(t, err)
	require.NoError(t, b.SetProductCode(gtin))
	require.NoError(t, b.SetBatchNumber("A1"))
	d := barcode.MustParseDateTime("20260630", barcode.FormatPPNDate)
	require.NoError(t, b.SetProductionDate(&d))
	require.NoError(t, b.Set("310", barcode.Decimal{Units: 1250, Places: 2}))

	out, err := Build(b)
	require.NoError(t, err)
	assert.Equal(t, "0104150123456782"+"10A1"+gs+"11260630"+"3102001250", out)

	err = b.SetRaw("17", "2512")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid value Length 4. Expected 6 Bytes.")

	assert.ErrorIs(t, b.Set("01", "not a gtin"), barcode.ErrTypeMismatch)
	assert.ErrorIs(t, b.Set("0000", "x"), barcode.ErrUnknownField)
}

func TestBuild_Nil(t *testing.T) {
	out, err := Build(nil)
	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestElements(t *testing.T) {
	b, err := Parse("0105412345678908" + "10LOT")
	require.NoError(t, err)
	els, err := b.Elements()
	require.NoError(t, err)
	require.Len(t, els, 2)
	assert.Equal(t, Element{AI: "01", Title: "GTIN", Raw: "05412345678908", Fixed: true}, els[0])
	assert.Equal(t, Element{AI: "10", Title: "BATCH/LOT", Raw: "LOT", Fixed: false}, els[1])
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	assert.NotEmpty(t, defs)

	d, ok := Lookup("17")
	require.True(t, ok)
	assert.True(t, d.Fixed())
	assert.Equal(t, "date", d.Type)

	d, ok = Lookup("10")
	require.True(t, ok)
	assert.False(t, d.Fixed())
	assert.Equal(t, 1, d.Min)
	assert.Equal(t, 20, d.Max)
	assert.Equal(t, "string", d.Type)

	_, ok = Lookup("04")
	assert.False(t, ok)
}

func TestLoadTable_Rejects(t *testing.T) {
	tests := map[string]string{
		"prefix":    "applicationIdentifiers:\n  - {ai: \"10\", max: 20}\n  - {ai: \"100\", max: 20}\n",
		"duplicate": "applicationIdentifiers:\n  - {ai: \"10\", max: 20}\n  - {ai: \"10\", max: 20}\n",
		"no length": "applicationIdentifiers:\n  - {ai: \"10\"}\n",
		"too long":  "applicationIdentifiers:\n  - {ai: \"10000\", max: 2}\n",
		"not yaml":  "applicationIdentifiers: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadTable([]byte(doc))
			assert.Error(t, err)
		})
	}
}
