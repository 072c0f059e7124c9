// Package msi parses and builds MSI (Modified Plessey) payloads: three to
// ten digits ending in a mod-10 check digit.
package msi

import (
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// FieldProductCode is the only MSI field.
const FieldProductCode = "PC"

// maxLength keeps longer digit streams for GS1 and HIBC.
const maxLength = 10

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField: FieldProductCode,
}

// Barcode is an MSI barcode.
type Barcode struct {
	barcode.Base
}

// New returns an empty MSI barcode.
func New() *Barcode {
	fields := barcode.NewFieldCollection(
		barcode.NewField[*barcode.MSI](FieldProductCode, 3, maxLength, barcode.ProductCodeCodec[*barcode.MSI]{New: barcode.NewMSI}),
	)
	return &Barcode{Base: barcode.NewBase(barcode.TypeMSI, fields, semantics)}
}

// Parse reads an MSI payload. Blank input returns nil without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeMSI, err)
	}
	return b, nil
}

// TryParse is like Parse but reports failure as false.
func TryParse(s string) (*Barcode, bool) {
	b, _, ok := barcode.TryParse(Parse, s)
	return b, ok
}

// TryParseFeedback is like TryParse and also returns the failure message.
func TryParseFeedback(s string) (*Barcode, string, bool) {
	return barcode.TryParse(Parse, s)
}

func parse(s string) (*Barcode, error) {
	prefix, code := barcode.StripSymbology(s)
	if len(code) > maxLength {
		return nil, barcode.NewValidateError(code, "Invalid MSI length %d for '%s'. Expected at most %d digits.", len(code), code, maxLength)
	}
	b := New()
	if prefix != "" {
		if id, err := barcode.NewAimSymbologyIdentifier(prefix); err == nil {
			b.SetSymbologyIdentifier(id)
		}
	}
	if err := b.Fields().Parse(FieldProductCode, code); err != nil {
		return nil, err
	}
	return b, nil
}

// Build returns the MSI code.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	f, _ := b.Fields().Get(FieldProductCode)
	return f.Build()
}
