package ean

import (
	"strings"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

func symbologyFor(prefix string) barcode.SymbologyIdentifier {
	if id, err := barcode.NewEanSymbologyIdentifier(prefix); err == nil {
		return id
	}
	if id, err := barcode.NewAimSymbologyIdentifier(prefix); err == nil {
		return id
	}
	return nil
}

// Parse reads an EAN-8, EAN-13 or UPC-A payload. Blank input returns nil
// without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeEAN, err)
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

func isDigits(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}

func parse(s string) (*Barcode, error) {
	prefix, code := barcode.StripSymbology(s)
	if !isDigits(code) || code == "" {
		return nil, barcode.NewValidateError(code, "Invalid EAN '%s'. Only digits are allowed.", code)
	}

	b := New()
	if prefix != "" {
		b.SetSymbologyIdentifier(symbologyFor(prefix))
	}

	if len(code) == 13 && code[0] == '0' && !strings.HasPrefix(code, "02") {
		code = code[1:]
	}
	switch len(code) {
	case 8:
		b.kind = KindEAN8
		if err := b.Fields().Parse(FieldProductCode, code); err != nil {
			return nil, err
		}
		return b, nil
	case 12:
		b.kind = KindUPCA
		if err := b.Fields().Parse(FieldProductCode, "0"+code); err != nil {
			return nil, err
		}
		if err := b.setUPCA(code); err != nil {
			return nil, err
		}
		return b, nil
	case 13:
		b.kind = KindEAN13
		if err := b.Fields().Parse(FieldProductCode, code); err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, barcode.NewValidateError(code, "Invalid EAN length %d for '%s'. Expected 8, 12 or 13 digits.", len(code), code)
	}
}

// Build writes the product code in the form of the barcode's kind: eight
// digits for EAN-8, twelve for UPC-A and thirteen for EAN-13.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	pc, err := b.productCode()
	if err != nil {
		return "", err
	}
	code := pc.Code()
	kind := b.Kind()
	switch {
	case kind == KindEAN8 && len(code) == 8:
		return code, nil
	case kind == KindEAN13 && len(code) == 13:
		return code, nil
	case kind == KindUPCA && len(code) == 13 && code[0] == '0':
		return code[1:], nil
	}
	return "", barcode.NewValidateError(code, "Can not build %s barcode from product code '%s' with length %d.", kind, code, len(code))
}
