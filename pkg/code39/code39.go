// Package code39 parses and builds Code 39 payloads read with an AIM
// symbology identifier.
//
// The identifier's modifier tells whether the reader transmitted the mod-43
// check character (A1, A5) and whether full ASCII conversion was applied
// (A4, A5, A7). A transmitted check character is validated and removed
// before the product code is stored, and appended again by Build.
package code39

import (
	"errors"

	"github.com/MeKo-Tech/scancode/internal/checksum"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// FieldProductCode is the only Code 39 field.
const FieldProductCode = "PC"

const defaultIdentifier = "]A0"

var errMissingPrefix = errors.New("Barcode does not start with a Code39 Symbology Identifier.")

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField: FieldProductCode,
}

// Barcode is a Code 39 barcode.
type Barcode struct {
	barcode.Base
	identifier *barcode.Code39SymbologyIdentifier
}

func newCode39(fullASCII bool) func(string) (*barcode.Code39, error) {
	return func(code string) (*barcode.Code39, error) { return barcode.NewCode39(code, fullASCII) }
}

// New returns an empty Code 39 barcode for the identifier id ("]A0" when
// empty).
func New(id string) (*Barcode, error) {
	if id == "" {
		id = defaultIdentifier
	}
	sid, err := barcode.NewCode39SymbologyIdentifier(id)
	if err != nil {
		return nil, err
	}
	fields := barcode.NewFieldCollection(
		barcode.NewField[*barcode.Code39](FieldProductCode, 1, 48, barcode.ProductCodeCodec[*barcode.Code39]{New: newCode39(sid.FullASCII())}),
	)
	b := &Barcode{Base: barcode.NewBase(barcode.TypeCode39, fields, semantics), identifier: sid}
	b.SetSymbologyIdentifier(sid)
	return b, nil
}

// Identifier returns the Code 39 symbology identifier.
func (b *Barcode) Identifier() *barcode.Code39SymbologyIdentifier { return b.identifier }

// Parse reads a Code 39 payload. Blank input returns nil without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeCode39, err)
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
	if prefix == "" || prefix[1] != 'A' {
		return nil, errMissingPrefix
	}
	b, err := New(prefix)
	if err != nil {
		return nil, err
	}
	if b.identifier.CheckCharacterTransmitted() {
		if err := checksum.Code39(code, b.identifier.FullASCII()); err != nil {
			var mm *checksum.MismatchError
			if errors.As(err, &mm) {
				return nil, &barcode.ValidateError{Value: code, Found: mm.Found, Expected: mm.Expected, Message: mm.Error(), Err: err}
			}
			return nil, barcode.NewValidateError(code, "Invalid Code39 '%s'. %v", code, err)
		}
		code = code[:len(code)-1]
	}
	if err := b.Fields().Parse(FieldProductCode, code); err != nil {
		return nil, err
	}
	return b, nil
}

// Build writes the symbology identifier, the product code and, for A1 and
// A5, the check character.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	f, _ := b.Fields().Get(FieldProductCode)
	code, err := f.Build()
	if err != nil || code == "" {
		return "", err
	}
	if b.identifier.CheckCharacterTransmitted() {
		c, err := checksum.Code39Char(code, b.identifier.FullASCII())
		if err != nil {
			return "", err
		}
		code += string(c)
	}
	return b.identifier.Prefix() + code, nil
}
