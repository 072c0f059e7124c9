// Package code128 parses and builds plain Code 128 payloads read with an AIM
// symbology identifier. Payloads identified as "]C1" carry GS1 data and are
// left to the GS1-128 parser.
package code128

import (
	"errors"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// FieldProductCode is the only Code 128 field.
const FieldProductCode = "PC"

const defaultIdentifier = "]C0"

var (
	errMissingPrefix = errors.New("Barcode does not start with a Code128 Symbology Identifier.")
	errGS1Prefix     = errors.New("Symbology Identifier ']C1' marks a GS1-128 barcode.")
)

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField: FieldProductCode,
}

// Barcode is a Code 128 barcode.
type Barcode struct {
	barcode.Base
	identifier *barcode.Code128SymbologyIdentifier
}

// New returns an empty Code 128 barcode for the identifier id ("]C0" when
// empty).
func New(id string) (*Barcode, error) {
	if id == "" {
		id = defaultIdentifier
	}
	sid, err := barcode.NewCode128SymbologyIdentifier(id)
	if err != nil {
		return nil, err
	}
	if sid.Modifier() == '1' {
		return nil, errGS1Prefix
	}
	fields := barcode.NewFieldCollection(
		barcode.NewField[*barcode.Code128](FieldProductCode, 1, 80, barcode.ProductCodeCodec[*barcode.Code128]{New: barcode.NewCode128}),
	)
	b := &Barcode{Base: barcode.NewBase(barcode.TypeCode128, fields, semantics), identifier: sid}
	b.SetSymbologyIdentifier(sid)
	return b, nil
}

// Identifier returns the Code 128 symbology identifier.
func (b *Barcode) Identifier() *barcode.Code128SymbologyIdentifier { return b.identifier }

// Parse reads a Code 128 payload. Blank input returns nil without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeCode128, err)
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
	if prefix == "" || prefix[1] != 'C' {
		return nil, errMissingPrefix
	}
	b, err := New(prefix)
	if err != nil {
		return nil, err
	}
	if err := b.Fields().Parse(FieldProductCode, code); err != nil {
		return nil, err
	}
	return b, nil
}

// Build writes the symbology identifier followed by the product code.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	f, _ := b.Fields().Get(FieldProductCode)
	code, err := f.Build()
	if err != nil || code == "" {
		return "", err
	}
	return b.identifier.Prefix() + code, nil
}
