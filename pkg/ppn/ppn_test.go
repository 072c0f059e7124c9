package ppn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

const (
	gs = "\x1D"
	rs = "\x1E"
	eo = "\x04"
)

func envelope(body string) string { return "[)>" + rs + "06" + gs + body + rs + eo }

func TestParse(t *testing.T) {
	b, err := Parse(envelope("9N111234567842" + gs + "1T12345ABCD" + gs + "D150117" + gs + "S12345ABCDEF98765"))
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, barcode.TypePPN, b.Type())

	pc, err := b.ProductCode()
	require.NoError(t, err)
	require.NotNil(t, pc)
	assert.Equal(t, barcode.ProductCodePPN, pc.Type())
	assert.Equal(t, "111234567842", pc.Code())

	batch, err := b.BatchNumber()
	require.NoError(t, err)
	assert.Equal(t, "12345ABCD", batch)

	serial, err := b.SerialNumber()
	require.NoError(t, err)
	assert.Equal(t, "12345ABCDEF98765", serial)

	exp, err := b.ExpirationDate()
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, "2015-01-17", exp.String())

	prod, err := b.ProductionDate()
	require.NoError(t, err)
	assert.Nil(t, prod)
}

func TestParse_GTINAndQuantities(t *testing.T) {
	b, err := Parse(envelope("8P04150123456782" + gs + "16D20240115" + gs + "Q12" + gs + "27Q3"))
	require.NoError(t, err)

	pc, err := b.ProductCode()
	require.NoError(t, err)
	assert.Equal(t, barcode.ProductCodeGTIN, pc.Type())
	assert.Equal(t, "04150123456782", pc.Code())

	prod, err := b.ProductionDate()
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", prod.String())

	q, ok := b.Quantity()
	assert.True(t, ok)
	assert.Equal(t, 12, q)
	assert.Equal(t, 3, b.Fields().Value(FieldAdditionalQty))
}

func TestParse_DayZero(t *testing.T) {
	b, err := Parse(envelope("9N111234567842" + gs + "D200200"))
	require.NoError(t, err)
	exp, _ := b.ExpirationDate()
	assert.Equal(t, "2020-02-29", exp.String())
}

func TestParse_SymbologyIdentifier(t *testing.T) {
	b, err := Parse("]d1" + envelope("9N111234567842"))
	require.NoError(t, err)
	require.NotNil(t, b.SymbologyIdentifier())
	assert.Equal(t, "]d1", b.SymbologyIdentifier().Prefix())
}

func TestParse_Blank(t *testing.T) {
	b, err := Parse("")
	assert.NoError(t, err)
	assert.Nil(t, b)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"ppn and gtin", envelope("9N111234567842" + gs + "8P04150123456782"), "Barcode can not contain both a PPN and GTIN."},
		{"gtin and ppn", envelope("8P04150123456782" + gs + "9N111234567842"), "Barcode can not contain both a PPN and GTIN."},
		{"missing prefix", "9N111234567842" + rs + eo, "Format Prefix"},
		{"missing trailer", "[)>" + rs + "06" + gs + "9N111234567842", "Format Trailer"},
		{"empty payload", envelope(""), "no data identifiers"},
		{"unknown identifier", envelope("XYZ1"), "unknown data identifier 'XYZ'"},
		{"invalid identifier character", envelope("9n111234567842"), "invalid character detected in data identifier '9n'"},
		{"wrong ppn checksum", envelope("9N111234567843"), "Expected '42'"},
		{"short date", envelope("9N111234567842" + gs + "D15011"), "Invalid value Length 5. Expected 6 Bytes."},
		{"end of transmission inside", envelope("9N111234567842" + eo + "1TLOT"), "unexpected separator 0x04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.input)
			require.Error(t, err)
			assert.Nil(t, b)
			assert.Contains(t, err.Error(), "Failed to parse PPN Barcode :\n")
			assert.Contains(t, err.Error(), tt.message)

			_, ok := TryParse(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestParse_RecordSeparator(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"between fields", envelope("9N111234567842" + rs + "1T12345ABCD")},
		{"second record", envelope("9N111234567842" + rs + "06" + gs + "1T12345ABCD")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Parse(tt.input)
			require.NoError(t, err)
			require.NotNil(t, b)

			pc, err := b.ProductCode()
			require.NoError(t, err)
			assert.Equal(t, "111234567842", pc.Code())
			batch, err := b.BatchNumber()
			require.NoError(t, err)
			assert.Equal(t, "12345ABCD", batch)
		})
	}
}

func TestBuild(t *testing.T) {
	b := New()
	pc, err := barcode.NewPPN("111234567842")
	require.NoError(t, err)
	require.NoError(t, b.SetProductCode(pc))
	require.NoError(t, b.SetBatchNumber("12345ABCD"))
	exp := barcode.MustParseDateTime("150117", barcode.FormatYYMMDD)
	require.NoError(t, b.SetExpirationDate(&exp))
	require.NoError(t, b.SetSerialNumber("12345ABCDEF98765"))

	got, err := Build(b)
	require.NoError(t, err)
	assert.Equal(t, envelope("9N111234567842"+gs+"1T12345ABCD"+gs+"D150117"+gs+"S12345ABCDEF98765"), got)

	p, err := Parse(got)
	require.NoError(t, err)
	batch, _ := p.BatchNumber()
	assert.Equal(t, "12345ABCD", batch)
}

func TestSetProductCode_ReplacesOtherIdentifier(t *testing.T) {
	b := New()
	ppnCode, err := barcode.NewPPN("111234567842")
	require.NoError(t, err)
	gtin, err := barcode.NewGTIN("04150123456782")
	require.NoError(t, err)

	require.NoError(t, b.SetProductCode(ppnCode))
	require.NoError(t, b.SetProductCode(gtin))
	assert.Nil(t, b.Fields().Value(FieldPPN))

	got, err := Build(b)
	require.NoError(t, err)
	assert.Equal(t, envelope("8P04150123456782"), got)

	require.NoError(t, b.SetProductCode(nil))
	pc, err := b.ProductCode()
	require.NoError(t, err)
	assert.Nil(t, pc)

	msi, err := barcode.NewMSI("12344")
	require.NoError(t, err)
	assert.ErrorIs(t, b.SetProductCode(msi), barcode.ErrTypeMismatch)
}

func TestSetProductCode_NilClearsBoth(t *testing.T) {
	b := New()
	require.NoError(t, b.Fields().Parse(FieldPPN, "111234567842"))
	require.NoError(t, b.Fields().Parse(FieldGTIN, "04150123456782"))

	require.NoError(t, b.SetProductCode(nil))
	assert.Nil(t, b.Fields().Value(FieldPPN))
	assert.Nil(t, b.Fields().Value(FieldGTIN))
	pc, err := b.ProductCode()
	require.NoError(t, err)
	assert.Nil(t, pc)
}

func TestBuild_Errors(t *testing.T) {
	got, err := Build(nil)
	assert.NoError(t, err)
	assert.Empty(t, got)

	_, err = Build(New())
	assert.Error(t, err)

	b := New()
	require.NoError(t, b.Fields().Parse(FieldPPN, "111234567842"))
	require.NoError(t, b.Fields().Parse(FieldGTIN, "04150123456782"))
	_, err = Build(b)
	assert.ErrorIs(t, err, ErrPPNAndGTIN)
}
