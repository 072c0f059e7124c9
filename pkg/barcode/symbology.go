package barcode

import (
	"fmt"
	"strings"
)

// SymbologyPrefix starts every AIM symbology identifier.
const SymbologyPrefix = ']'

// SymbologyIdentifier is an AIM symbology identifier such as "]A1": a code
// letter naming the symbology and a reader modifier.
type SymbologyIdentifier interface {
	// Value returns code letter and modifier, e.g. "A1".
	Value() string
	CodeLetter() byte
	Modifier() byte
	// Prefix returns the wire form, e.g. "]A1".
	Prefix() string
}

// AimSymbologyIdentifier is the generic identifier used when no format
// specific subtype applies.
type AimSymbologyIdentifier struct {
	value string
}

// NewAimSymbologyIdentifier accepts "]xy" or "xy".
func NewAimSymbologyIdentifier(s string) (AimSymbologyIdentifier, error) {
	v := strings.TrimPrefix(s, string(SymbologyPrefix))
	if len(v) != 2 {
		return AimSymbologyIdentifier{}, fmt.Errorf("invalid symbology identifier '%s'", s)
	}
	return AimSymbologyIdentifier{value: v}, nil
}

func (a AimSymbologyIdentifier) Value() string    { return a.value }
func (a AimSymbologyIdentifier) CodeLetter() byte { return a.value[0] }
func (a AimSymbologyIdentifier) Modifier() byte   { return a.value[1] }
func (a AimSymbologyIdentifier) Prefix() string   { return string(SymbologyPrefix) + a.value }
func (a AimSymbologyIdentifier) String() string   { return a.Prefix() }

func newRestricted(s, kind string, legal ...string) (AimSymbologyIdentifier, error) {
	id, err := NewAimSymbologyIdentifier(s)
	if err != nil {
		return id, err
	}
	for _, l := range legal {
		if id.value == l {
			return id, nil
		}
	}
	return AimSymbologyIdentifier{}, fmt.Errorf("'%s' is not a valid %s symbology identifier (expected one of %s)", s, kind, strings.Join(legal, ", "))
}

// Code39SymbologyIdentifier restricts the modifier to the Code 39 set.
type Code39SymbologyIdentifier struct {
	AimSymbologyIdentifier
}

// NewCode39SymbologyIdentifier accepts A0, A1, A3, A4, A5 and A7.
func NewCode39SymbologyIdentifier(s string) (*Code39SymbologyIdentifier, error) {
	id, err := newRestricted(s, "Code39", "A0", "A1", "A3", "A4", "A5", "A7")
	if err != nil {
		return nil, err
	}
	return &Code39SymbologyIdentifier{id}, nil
}

// CheckCharacterTransmitted reports whether the reader left the mod-43
// check character in the payload.
func (c *Code39SymbologyIdentifier) CheckCharacterTransmitted() bool {
	return c.Modifier() == '1' || c.Modifier() == '5'
}

// FullASCII reports whether the reader performed full ASCII conversion.
func (c *Code39SymbologyIdentifier) FullASCII() bool {
	switch c.Modifier() {
	case '4', '5', '7':
		return true
	}
	return false
}

// Code128SymbologyIdentifier restricts the modifier to the Code 128 set.
type Code128SymbologyIdentifier struct {
	AimSymbologyIdentifier
}

// NewCode128SymbologyIdentifier accepts C0, C1, C2 and C4.
func NewCode128SymbologyIdentifier(s string) (*Code128SymbologyIdentifier, error) {
	id, err := newRestricted(s, "Code128", "C0", "C1", "C2", "C4")
	if err != nil {
		return nil, err
	}
	return &Code128SymbologyIdentifier{id}, nil
}

// EanSymbologyIdentifier restricts the modifier to the EAN/UPC set.
type EanSymbologyIdentifier struct {
	AimSymbologyIdentifier
}

// NewEanSymbologyIdentifier accepts E0 to E4.
func NewEanSymbologyIdentifier(s string) (*EanSymbologyIdentifier, error) {
	id, err := newRestricted(s, "EAN", "E0", "E1", "E2", "E3", "E4")
	if err != nil {
		return nil, err
	}
	return &EanSymbologyIdentifier{id}, nil
}

// GS1SymbologyIdentifier covers the identifiers announcing GS1 data in the
// symbologies that can carry it.
type GS1SymbologyIdentifier struct {
	AimSymbologyIdentifier
}

// NewGS1SymbologyIdentifier accepts C1, d2, e0, J1, Q3, Q4 and z1.
func NewGS1SymbologyIdentifier(s string) (*GS1SymbologyIdentifier, error) {
	id, err := newRestricted(s, "GS1", "C1", "d2", "e0", "J1", "Q3", "Q4", "z1")
	if err != nil {
		return nil, err
	}
	return &GS1SymbologyIdentifier{id}, nil
}
