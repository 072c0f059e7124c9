package ean

import (
	"fmt"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Field identifiers.
const (
	FieldProductCode   = "PC"
	FieldNumberSystem  = "NS"
	FieldCompanyPrefix = "CP"
	FieldProductNumber = "PR"
)

// Kind is the symbol family a payload was read as.
type Kind int

const (
	KindUnknown Kind = iota
	KindEAN8
	KindEAN13
	KindUPCA
)

func (k Kind) String() string {
	switch k {
	case KindEAN8:
		return "EAN-8"
	case KindEAN13:
		return "EAN-13"
	case KindUPCA:
		return "UPC-A"
	default:
		return "Unknown"
	}
}

// Scheme is the UPC-A number system usage.
type Scheme int

const (
	SchemeNone Scheme = iota
	SchemeReserved
	SchemeManufacturerAndProduct
	SchemeCoupons
	SchemeReservedCoupons
	SchemeNationalDrugCode
)

func (s Scheme) String() string {
	switch s {
	case SchemeReserved:
		return "Reserved"
	case SchemeManufacturerAndProduct:
		return "ManufacturerAndProduct"
	case SchemeCoupons:
		return "Coupons"
	case SchemeReservedCoupons:
		return "ReservedCoupons"
	case SchemeNationalDrugCode:
		return "NationalDrugCode"
	default:
		return "None"
	}
}

// SchemeFor returns the scheme of a UPC-A number system digit.
func SchemeFor(numberSystem byte) Scheme {
	switch numberSystem {
	case '0', '1', '6', '7', '8':
		return SchemeManufacturerAndProduct
	case '2', '4':
		return SchemeReserved
	case '3':
		return SchemeNationalDrugCode
	case '5':
		return SchemeCoupons
	case '9':
		return SchemeReservedCoupons
	default:
		return SchemeNone
	}
}

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField: FieldProductCode,
}

// Barcode is an EAN-8, EAN-13 or UPC-A barcode. UPC-A codes are stored as
// their 13 digit EAN equivalent.
type Barcode struct {
	barcode.Base
	kind Kind
}

// New returns an empty EAN barcode. The kind follows the product code unless
// SetKind selects UPC-A.
func New() *Barcode {
	fields := barcode.NewFieldCollection(
		barcode.NewField[*barcode.EAN](FieldProductCode, 8, 13, barcode.ProductCodeCodec[*barcode.EAN]{New: barcode.NewEAN}),
		barcode.NewFixedField[string](FieldNumberSystem, 1, barcode.NumericString),
		barcode.NewFixedField[string](FieldCompanyPrefix, 5, barcode.NumericString),
		barcode.NewField[string](FieldProductNumber, 5, 10, barcode.NumericString),
	)
	return &Barcode{Base: barcode.NewBase(barcode.TypeEAN, fields, semantics)}
}

// Kind returns the symbol family. Without an explicit kind it is derived from
// the product code length.
func (b *Barcode) Kind() Kind {
	if b.kind != KindUnknown {
		return b.kind
	}
	pc, ok := barcode.Get[*barcode.EAN](b.Fields(), FieldProductCode)
	if !ok || pc == nil {
		return KindUnknown
	}
	switch len(pc.Code()) {
	case 8:
		return KindEAN8
	case 13:
		return KindEAN13
	}
	return KindUnknown
}

// SetKind selects the symbol family used by Build.
func (b *Barcode) SetKind(k Kind) { b.kind = k }

// NumberSystem returns the UPC-A number system digit.
func (b *Barcode) NumberSystem() string {
	v, _ := barcode.Get[string](b.Fields(), FieldNumberSystem)
	return v
}

// Scheme returns the UPC-A number system usage, SchemeNone for EAN codes.
func (b *Barcode) Scheme() Scheme {
	ns := b.NumberSystem()
	if b.Kind() != KindUPCA || ns == "" {
		return SchemeNone
	}
	return SchemeFor(ns[0])
}

// CompanyPrefix returns the UPC-A company prefix when the scheme has one.
func (b *Barcode) CompanyPrefix() string {
	v, _ := barcode.Get[string](b.Fields(), FieldCompanyPrefix)
	return v
}

// ProductNumber returns the UPC-A product number when the scheme has one.
func (b *Barcode) ProductNumber() string {
	v, _ := barcode.Get[string](b.Fields(), FieldProductNumber)
	return v
}

// setUPCA fills the number system fields from the 12 digit code.
func (b *Barcode) setUPCA(upc string) error {
	f := b.Fields()
	if err := f.Parse(FieldNumberSystem, upc[:1]); err != nil {
		return err
	}
	switch SchemeFor(upc[0]) {
	case SchemeManufacturerAndProduct, SchemeCoupons:
		if err := f.Parse(FieldCompanyPrefix, upc[1:6]); err != nil {
			return err
		}
		return f.Parse(FieldProductNumber, upc[6:11])
	case SchemeNationalDrugCode:
		return f.Parse(FieldProductNumber, upc[1:11])
	}
	return nil
}

func (b *Barcode) productCode() (*barcode.EAN, error) {
	pc, ok := barcode.Get[*barcode.EAN](b.Fields(), FieldProductCode)
	if !ok || pc == nil {
		return nil, fmt.Errorf("%s barcode has no product code", barcode.TypeEAN)
	}
	return pc, nil
}
