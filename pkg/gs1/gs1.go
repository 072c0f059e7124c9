package gs1

import (
	"errors"
	"strings"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Element is one application identifier with its raw data.
type Element struct {
	AI    string
	Title string
	Raw   string
	Fixed bool
}

var semantics = map[barcode.Semantic]string{
	barcode.ProductCodeField:    "01",
	barcode.BatchNumberField:    "10",
	barcode.SerialNumberField:   "21",
	barcode.ExpirationDateField: "17",
	barcode.ProductionDateField: "11",
}

var errEmptyPayload = errors.New("barcode contains no element strings")

// Barcode is a GS1 element string barcode.
type Barcode struct {
	barcode.Base
}

// New returns an empty GS1 barcode.
func New() *Barcode {
	return &Barcode{Base: barcode.NewBase(barcode.TypeGS1, newFields(), semantics)}
}

// Value returns the typed value of ai, or nil when unset or unknown.
func (b *Barcode) Value(ai string) any { return b.Fields().Value(ai) }

// Set assigns a typed value to ai.
func (b *Barcode) Set(ai string, v any) error { return b.Fields().Set(ai, v) }

// SetRaw parses raw into ai.
func (b *Barcode) SetRaw(ai, raw string) error { return b.Fields().Parse(ai, raw) }

// Elements returns the set elements in ascending identifier order.
func (b *Barcode) Elements() ([]Element, error) { return elements(b.Fields()) }

func symbologyFor(prefix string) barcode.SymbologyIdentifier {
	if id, err := barcode.NewGS1SymbologyIdentifier(prefix); err == nil {
		return id
	}
	if id, err := barcode.NewAimSymbologyIdentifier(prefix); err == nil {
		return id
	}
	return nil
}

// Parse reads a GS1 element string. Blank input returns nil without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeGS1, err)
	}
	return b, nil
}

func parse(s string) (*Barcode, error) {
	prefix, rest := barcode.StripSymbology(s)
	rest = strings.TrimPrefix(rest, string(barcode.GroupSeparator))
	if rest == "" {
		return nil, errEmptyPayload
	}
	b := New()
	if prefix != "" {
		b.SetSymbologyIdentifier(symbologyFor(prefix))
	}
	if err := scan(b.Fields(), rest); err != nil {
		return nil, err
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

// Build writes the set elements in ascending identifier order. Variable
// length elements are followed by a group separator unless they come last.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	els, err := b.Elements()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, e := range els {
		sb.WriteString(e.AI)
		sb.WriteString(e.Raw)
		if !e.Fixed {
			sb.WriteByte(barcode.GroupSeparator)
		}
	}
	return strings.TrimSuffix(sb.String(), string(barcode.GroupSeparator)), nil
}
