// Package aim resolves the AIM symbology identifier prefix ("]xy") of a
// scanned payload into the formats that can carry it.
package aim

import (
	"strings"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
	"github.com/MeKo-Tech/scancode/pkg/registry"
)

// resolver maps a modifier of one code letter to candidate formats and the
// identifier value. ok is false for modifiers that are not handled.
type resolver func(modifier byte, prefix string) (types []barcode.Type, id barcode.SymbologyIdentifier, ok bool)

var (
	allFormats    = []barcode.Type(nil)
	ppnOrHIBC     = []barcode.Type{barcode.TypePPN, barcode.TypeHIBC}
	gs1Only       = []barcode.Type{barcode.TypeGS1}
	gs1128Only    = []barcode.Type{barcode.TypeGS1128}
	code39Only    = []barcode.Type{barcode.TypeCode39}
	code128Only   = []barcode.Type{barcode.TypeCode128}
	hibcOrCode128 = []barcode.Type{barcode.TypeHIBC, barcode.TypeCode128}
	eanOnly       = []barcode.Type{barcode.TypeEAN}
	msiOnly       = []barcode.Type{barcode.TypeMSI}
)

func generic(prefix string) barcode.SymbologyIdentifier {
	id, err := barcode.NewAimSymbologyIdentifier(prefix)
	if err != nil {
		return nil
	}
	return id
}

func gs1(prefix string) barcode.SymbologyIdentifier {
	id, err := barcode.NewGS1SymbologyIdentifier(prefix)
	if err != nil {
		return nil
	}
	return id
}

var table = map[byte]resolver{
	'A': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		id, err := barcode.NewCode39SymbologyIdentifier(p)
		if err != nil {
			return nil, nil, false
		}
		return code39Only, id, true
	},
	'C': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		switch m {
		case '0':
			id, _ := barcode.NewCode128SymbologyIdentifier(p)
			return hibcOrCode128, id, true
		case '1':
			return gs1128Only, gs1(p), true
		case '2', '4':
			id, _ := barcode.NewCode128SymbologyIdentifier(p)
			return code128Only, id, true
		}
		return nil, nil, false
	},
	'd': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		switch m {
		case '1':
			return ppnOrHIBC, generic(p), true
		case '2':
			return gs1Only, gs1(p), true
		}
		return nil, nil, false
	},
	'E': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		id, err := barcode.NewEanSymbologyIdentifier(p)
		if err != nil {
			return nil, nil, false
		}
		return eanOnly, id, true
	},
	'e': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		if m == '0' {
			return gs1Only, gs1(p), true
		}
		return nil, nil, false
	},
	'M': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		if m == '0' || m == '1' {
			return msiOnly, generic(p), true
		}
		return nil, nil, false
	},
	'J': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		switch m {
		case '0':
			return ppnOrHIBC, generic(p), true
		case '1':
			return gs1Only, gs1(p), true
		}
		return nil, nil, false
	},
	'Q': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		switch m {
		case '0', '1', '2':
			return ppnOrHIBC, generic(p), true
		case '3', '4':
			return gs1Only, gs1(p), true
		}
		return nil, nil, false
	},
	'X': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		return allFormats, generic(p), true
	},
	'z': func(m byte, p string) ([]barcode.Type, barcode.SymbologyIdentifier, bool) {
		switch m {
		case '0':
			return ppnOrHIBC, generic(p), true
		case '1':
			return gs1Only, gs1(p), true
		}
		return nil, nil, false
	},
}

// Candidates returns the formats that may carry s, in priority order, and
// the symbology identifier of its prefix.
//
// Any payload starting with "]Z" is marked as not being a barcode and yields
// no candidates. Other payloads without a prefix, or too short to carry data
// after it, may be any format and have no identifier. A known code letter
// with an unhandled modifier returns a *barcode.NotImplementedError; an
// unknown code letter falls back to every format with a generic identifier.
func Candidates(s string) ([]registry.Entry, barcode.SymbologyIdentifier, error) {
	if strings.HasPrefix(s, "]Z") {
		return nil, nil, nil
	}
	if len(s) <= 3 || s[0] != barcode.SymbologyPrefix {
		return registry.All(), nil, nil
	}
	prefix := s[:3]
	letter, modifier := s[1], s[2]
	resolve, known := table[letter]
	if !known {
		return registry.All(), generic(prefix), nil
	}
	types, id, ok := resolve(modifier, prefix)
	if !ok {
		return nil, nil, &barcode.NotImplementedError{Identifier: prefix}
	}
	if types == nil {
		return registry.All(), id, nil
	}
	return registry.Select(types...), id, nil
}
