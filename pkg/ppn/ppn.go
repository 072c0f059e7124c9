package ppn

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Data identifiers.
const (
	FieldPPN            = "9N"
	FieldGTIN           = "8P"
	FieldBatchNumber    = "1T"
	FieldExpirationDate = "D"
	FieldProductionDate = "16D"
	FieldSerialNumber   = "S"
	FieldQuantity       = "Q"
	FieldAdditionalQty  = "27Q"
)

// ErrPPNAndGTIN is returned when both product code identifiers are present.
var ErrPPNAndGTIN = errors.New("Barcode can not contain both a PPN and GTIN.")

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField:    FieldPPN,
	barcode.BatchNumberField:    FieldBatchNumber,
	barcode.SerialNumberField:   FieldSerialNumber,
	barcode.ExpirationDateField: FieldExpirationDate,
	barcode.ProductionDateField: FieldProductionDate,
}

// Barcode is a PPN barcode. Its product code is either a PPN ("9N") or a
// GTIN ("8P"), never both.
type Barcode struct {
	barcode.Base
}

func newFields() *barcode.FieldCollection {
	return barcode.NewFieldCollection(
		barcode.NewField[*barcode.PPN](FieldPPN, 3, 22, barcode.ProductCodeCodec[*barcode.PPN]{New: barcode.NewPPN}),
		barcode.NewFixedField[*barcode.GTIN](FieldGTIN, 14, barcode.ProductCodeCodec[*barcode.GTIN]{New: barcode.NewGTIN}),
		barcode.NewField[string](FieldBatchNumber, 1, 20, barcode.PrintableString),
		barcode.NewFixedField[barcode.DateTime](FieldExpirationDate, 6, barcode.DateCodec{Format: barcode.FormatYYMMDD}),
		barcode.NewFixedField[barcode.DateTime](FieldProductionDate, 8, barcode.DateCodec{Format: barcode.FormatPPNDate}),
		barcode.NewField[string](FieldSerialNumber, 1, 20, barcode.PrintableString),
		barcode.NewField[int](FieldQuantity, 1, 8, barcode.IntCodec{}),
		barcode.NewField[int](FieldAdditionalQty, 1, 8, barcode.IntCodec{}),
	)
}

// New returns an empty PPN barcode.
func New() *Barcode {
	return &Barcode{Base: barcode.NewBase(barcode.TypePPN, newFields(), semantics)}
}

// ProductCode returns the PPN when set, otherwise the GTIN.
func (b *Barcode) ProductCode() (barcode.ProductCode, error) {
	if p, ok := barcode.Get[*barcode.PPN](b.Fields(), FieldPPN); ok && p != nil {
		return p, nil
	}
	if g, ok := barcode.Get[*barcode.GTIN](b.Fields(), FieldGTIN); ok && g != nil {
		return g, nil
	}
	return nil, nil
}

// SetProductCode stores a *barcode.PPN in "9N" or a *barcode.GTIN in "8P"
// and clears the other identifier. nil clears both.
func (b *Barcode) SetProductCode(pc barcode.ProductCode) error {
	f := b.Fields()
	switch v := pc.(type) {
	case nil:
		return errors.Join(f.Set(FieldPPN, nil), f.Set(FieldGTIN, nil))
	case *barcode.PPN:
		if err := f.Set(FieldPPN, v); err != nil {
			return err
		}
		return f.Set(FieldGTIN, nil)
	case *barcode.GTIN:
		if err := f.Set(FieldGTIN, v); err != nil {
			return err
		}
		return f.Set(FieldPPN, nil)
	default:
		return fmt.Errorf("%w: PPN barcodes carry a PPN or GTIN, got %s", barcode.ErrTypeMismatch, pc.Type())
	}
}

// Quantity returns the "Q" quantity and whether it is set.
func (b *Barcode) Quantity() (int, bool) {
	return barcode.Get[int](b.Fields(), FieldQuantity)
}

// SetQuantity assigns the "Q" quantity.
func (b *Barcode) SetQuantity(q int) error {
	return b.Fields().Set(FieldQuantity, q)
}

func (b *Barcode) checkProductCodes() error {
	if b.Fields().Value(FieldPPN) != nil && b.Fields().Value(FieldGTIN) != nil {
		return ErrPPNAndGTIN
	}
	return nil
}
