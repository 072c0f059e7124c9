// Package registry lists the supported barcode formats in the order a
// format agnostic parser tries them.
//
// The list is built once at package initialisation and never modified, so
// it can be read from any number of goroutines. GS1 comes last since its
// grammar accepts the most payloads.
package registry

import (
	"fmt"
	"slices"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
	"github.com/MeKo-Tech/scancode/pkg/code128"
	"github.com/MeKo-Tech/scancode/pkg/code39"
	"github.com/MeKo-Tech/scancode/pkg/ean"
	"github.com/MeKo-Tech/scancode/pkg/gs1"
	"github.com/MeKo-Tech/scancode/pkg/hibc"
	"github.com/MeKo-Tech/scancode/pkg/msi"
	"github.com/MeKo-Tech/scancode/pkg/ppn"
)

// Entry binds a format to its parse and build functions.
type Entry struct {
	Type  barcode.Type
	Parse func(s string) (barcode.Barcode, error)
	Build func(b barcode.Barcode) (string, error)
}

var entries = []Entry{
	adapt(barcode.TypePPN, ppn.Parse, ppn.Build),
	adapt(barcode.TypeHIBC, hibc.Parse, hibc.Build),
	adapt(barcode.TypeEAN, ean.Parse, ean.Build),
	adapt(barcode.TypeMSI, msi.Parse, msi.Build),
	adapt(barcode.TypeCode39, code39.Parse, code39.Build),
	adapt(barcode.TypeCode128, code128.Parse, code128.Build),
	adapt(barcode.TypeGS1128, gs1.Parse128, gs1.Build128),
	adapt(barcode.TypeGS1, gs1.Parse, gs1.Build),
}

// adapt erases the concrete barcode type of a format's functions.
func adapt[B barcode.Barcode](typ barcode.Type, parse func(string) (B, error), build func(B) (string, error)) Entry {
	return Entry{
		Type: typ,
		Parse: func(s string) (barcode.Barcode, error) {
			if barcode.IsBlank(s) {
				return nil, nil
			}
			b, err := parse(s)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		Build: func(b barcode.Barcode) (string, error) {
			if b == nil {
				return "", nil
			}
			v, ok := b.(B)
			if !ok {
				return "", fmt.Errorf("%w: %s builder got %T", barcode.ErrTypeMismatch, typ, b)
			}
			return build(v)
		},
	}
}

// All returns every entry in priority order.
func All() []Entry {
	return slices.Clone(entries)
}

// Types returns the registered formats in priority order.
func Types() []barcode.Type {
	out := make([]barcode.Type, len(entries))
	for i, e := range entries {
		out[i] = e.Type
	}
	return out
}

// Lookup returns the entry of typ.
func Lookup(typ barcode.Type) (Entry, bool) {
	for _, e := range entries {
		if e.Type == typ {
			return e, true
		}
	}
	return Entry{}, false
}

// Select returns the entries of types in priority order. Unknown types are
// skipped.
func Select(types ...barcode.Type) []Entry {
	out := make([]Entry, 0, len(types))
	for _, e := range entries {
		if slices.Contains(types, e.Type) {
			out = append(out, e)
		}
	}
	return out
}
