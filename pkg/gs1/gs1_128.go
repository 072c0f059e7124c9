package gs1

import (
	"errors"
	"strings"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Prefix128 is the AIM symbology identifier that starts every GS1-128
// element and replaces the group separator between elements.
const Prefix128 = "]C1"

var errMissingPrefix = errors.New("Barcode does not start with the Symbology Prefix.")

// Barcode128 is a GS1-128 barcode. It shares the application identifier
// table with Barcode.
type Barcode128 struct {
	barcode.Base
}

// New128 returns an empty GS1-128 barcode.
func New128() *Barcode128 {
	b := &Barcode128{Base: barcode.NewBase(barcode.TypeGS1128, newFields(), semantics)}
	b.SetSymbologyIdentifier(symbologyFor(Prefix128))
	return b
}

// Value returns the typed value of ai, or nil when unset or unknown.
func (b *Barcode128) Value(ai string) any { return b.Fields().Value(ai) }

// Set assigns a typed value to ai.
func (b *Barcode128) Set(ai string, v any) error { return b.Fields().Set(ai, v) }

// SetRaw parses raw into ai.
func (b *Barcode128) SetRaw(ai, raw string) error { return b.Fields().Parse(ai, raw) }

// Elements returns the set elements in ascending identifier order.
func (b *Barcode128) Elements() ([]Element, error) { return elements(b.Fields()) }

// Parse128 reads a GS1-128 payload. Blank input returns nil without error.
func Parse128(s string) (*Barcode128, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse128(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeGS1128, err)
	}
	return b, nil
}

func parse128(s string) (*Barcode128, error) {
	if !strings.HasPrefix(s, Prefix128) {
		return nil, errMissingPrefix
	}
	s = strings.ReplaceAll(s, string(barcode.GroupSeparator), Prefix128)

	b := New128()
	found := false
	for _, chunk := range strings.Split(s, Prefix128) {
		if chunk == "" {
			continue
		}
		found = true
		if err := scan(b.Fields(), chunk); err != nil {
			return nil, err
		}
	}
	if !found {
		return nil, errEmptyPayload
	}
	return b, nil
}

// TryParse128 is like Parse128 but reports failure as false.
func TryParse128(s string) (*Barcode128, bool) {
	b, _, ok := barcode.TryParse(Parse128, s)
	return b, ok
}

// TryParse128Feedback is like TryParse128 and also returns the failure
// message.
func TryParse128Feedback(s string) (*Barcode128, string, bool) {
	return barcode.TryParse(Parse128, s)
}

// Build128 writes every set element as its own "]C1" prefixed chunk.
func Build128(b *Barcode128) (string, error) {
	if b == nil {
		return "", nil
	}
	els, err := b.Elements()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, e := range els {
		sb.WriteString(Prefix128)
		sb.WriteString(e.AI)
		sb.WriteString(e.Raw)
	}
	return sb.String(), nil
}
