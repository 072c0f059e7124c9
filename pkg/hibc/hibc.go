package hibc

import (
	"regexp"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Field identifiers.
const (
	FieldLabeler        = "LIC"
	FieldProductCode    = "PCN"
	FieldUnitOfMeasure  = "UOM"
	FieldQuantity       = "Q"
	FieldBatchNumber    = "B"
	FieldSerialNumber   = "S"
	FieldExpirationDate = "14D"
	FieldProductionDate = "16D"
)

var labelerCodec = barcode.StringCodec{Pattern: regexp.MustCompile(`^[A-Z][0-9A-Z]{3}$`), Name: "Labeler Identification Code"}

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField:    FieldProductCode,
	barcode.BatchNumberField:    FieldBatchNumber,
	barcode.SerialNumberField:   FieldSerialNumber,
	barcode.ExpirationDateField: FieldExpirationDate,
	barcode.ProductionDateField: FieldProductionDate,
}

// Barcode is a HIBC LIC barcode.
type Barcode struct {
	barcode.Base
	twoDimensional bool
}

// New returns an empty HIBC barcode using linear framing.
func New() *Barcode {
	fields := barcode.NewFieldCollection(
		barcode.NewFixedField[string](FieldLabeler, 4, labelerCodec),
		barcode.NewField[*barcode.HIBC](FieldProductCode, 1, 18, barcode.ProductCodeCodec[*barcode.HIBC]{New: barcode.NewHIBC}),
		barcode.NewFixedField[int](FieldUnitOfMeasure, 1, barcode.IntCodec{Width: 1}),
		barcode.NewField[int](FieldQuantity, 1, 5, barcode.IntCodec{}),
		barcode.NewField[string](FieldBatchNumber, 1, 18, barcode.AlphanumericString),
		barcode.NewField[string](FieldSerialNumber, 1, 18, barcode.AlphanumericString),
		barcode.NewFixedField[barcode.DateTime](FieldExpirationDate, 8, barcode.DateCodec{Format: barcode.FormatYYYYMMDD}),
		barcode.NewFixedField[barcode.DateTime](FieldProductionDate, 8, barcode.DateCodec{Format: barcode.FormatYYYYMMDD}),
	)
	return &Barcode{Base: barcode.NewBase(barcode.TypeHIBC, fields, semantics)}
}

// TwoDimensional reports whether the barcode uses "/" separated segments
// with a single trailing check character.
func (b *Barcode) TwoDimensional() bool { return b.twoDimensional }

// SetTwoDimensional selects the framing used by Build.
func (b *Barcode) SetTwoDimensional(v bool) { b.twoDimensional = v }

// LabelerIdentificationCode returns the four character labeler code.
func (b *Barcode) LabelerIdentificationCode() string {
	v, _ := barcode.Get[string](b.Fields(), FieldLabeler)
	return v
}

// SetLabelerIdentificationCode assigns the labeler code.
func (b *Barcode) SetLabelerIdentificationCode(lic string) error {
	return b.Fields().Set(FieldLabeler, lic)
}

// UnitOfMeasure returns the packaging level digit.
func (b *Barcode) UnitOfMeasure() (int, bool) {
	return barcode.Get[int](b.Fields(), FieldUnitOfMeasure)
}

// SetUnitOfMeasure assigns the packaging level digit (0-9).
func (b *Barcode) SetUnitOfMeasure(uom int) error {
	return b.Fields().Set(FieldUnitOfMeasure, uom)
}

// Quantity returns the quantity and whether it is set.
func (b *Barcode) Quantity() (int, bool) {
	return barcode.Get[int](b.Fields(), FieldQuantity)
}

// SetQuantity assigns the quantity (at most 99999).
func (b *Barcode) SetQuantity(q int) error {
	return b.Fields().Set(FieldQuantity, q)
}
