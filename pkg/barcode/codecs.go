package barcode

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Codec converts between the raw text of a field and its typed value. Parse
// performs character set, grammar and checksum validation; length bounds are
// enforced by the owning Field before Parse is called.
type Codec[T any] interface {
	Parse(raw string) (T, error)
	Build(v T) (string, error)
}

// StringCodec validates raw text against a pattern. A nil Pattern accepts
// any text.
type StringCodec struct {
	Pattern *regexp.Regexp
	Name    string
}

var (
	// NumericString accepts digits only.
	NumericString = StringCodec{Pattern: regexp.MustCompile(`^[0-9]+$`), Name: "numeric"}
	// AlphanumericString accepts upper case letters and digits.
	AlphanumericString = StringCodec{Pattern: regexp.MustCompile(`^[0-9A-Z]+$`), Name: "alphanumeric"}
	// GS1String accepts the 82 character GS1 subset of ISO 646.
	GS1String = StringCodec{Pattern: regexp.MustCompile(`^[!"%&'()*+,\-./0-9:;<=>?A-Z_a-z]+$`), Name: "GS1"}
	// PrintableString accepts printable ASCII.
	PrintableString = StringCodec{Pattern: regexp.MustCompile(`^[\x20-\x7E]+$`), Name: "printable"}
)

func (c StringCodec) check(s string) error {
	if c.Pattern != nil && !c.Pattern.MatchString(s) {
		return NewValidateError(s, "Invalid %s value '%s'.", c.Name, s)
	}
	return nil
}

func (c StringCodec) Parse(raw string) (string, error) {
	if err := c.check(raw); err != nil {
		return "", err
	}
	return raw, nil
}

func (c StringCodec) Build(v string) (string, error) {
	if err := c.check(v); err != nil {
		return "", err
	}
	return v, nil
}

// IntCodec reads unsigned decimal integers. Build zero pads to Width when
// Width is positive.
type IntCodec struct {
	Width int
}

func (c IntCodec) Parse(raw string) (int, error) {
	if !NumericString.Pattern.MatchString(raw) {
		return 0, NewValidateError(raw, "Invalid numeric value '%s'.", raw)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValidateError{Value: raw, Message: fmt.Sprintf("Invalid numeric value '%s'.", raw), Err: err}
	}
	return v, nil
}

func (c IntCodec) Build(v int) (string, error) {
	if v < 0 {
		return "", NewValidateError(strconv.Itoa(v), "Negative value %d can not be encoded.", v)
	}
	if c.Width > 0 {
		return fmt.Sprintf("%0*d", c.Width, v), nil
	}
	return strconv.Itoa(v), nil
}

// Decimal is a fixed point number as carried by GS1 measure fields: Units
// scaled down by 10^Places.
type Decimal struct {
	Units  int64
	Places int
}

// NewDecimal picks the smallest number of decimal places (up to 9) that
// represents f exactly.
func NewDecimal(f float64) (Decimal, error) {
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("invalid decimal value %v", f)
	}
	for places := 0; places <= 9; places++ {
		scaled := f * math.Pow10(places)
		if r := math.Round(scaled); math.Abs(r-scaled) < 1e-6 {
			return Decimal{Units: int64(r), Places: places}, nil
		}
	}
	return Decimal{}, fmt.Errorf("decimal value %v needs more than 9 places", f)
}

// Float returns the value as float64.
func (d Decimal) Float() float64 {
	return float64(d.Units) / math.Pow10(d.Places)
}

func (d Decimal) String() string {
	return strconv.FormatFloat(d.Float(), 'f', d.Places, 64)
}

// DecimalCodec reads the GS1 implied decimal encoding: the first digit is the
// number of decimal places, the remaining digits are the units. Width is the
// total encoded width including the indicator digit, 0 for variable width.
type DecimalCodec struct {
	Width int
}

func (c DecimalCodec) Parse(raw string) (Decimal, error) {
	if len(raw) < 2 || !NumericString.Pattern.MatchString(raw) {
		return Decimal{}, NewValidateError(raw, "Invalid decimal value '%s'.", raw)
	}
	places := int(raw[0] - '0')
	units, err := strconv.ParseInt(raw[1:], 10, 64)
	if err != nil {
		return Decimal{}, &ValidateError{Value: raw, Message: fmt.Sprintf("Invalid decimal value '%s'.", raw), Err: err}
	}
	if places > len(raw)-1 {
		return Decimal{}, NewValidateError(raw, "Invalid decimal value '%s'. %d decimal places exceed %d digits.", raw, places, len(raw)-1)
	}
	return Decimal{Units: units, Places: places}, nil
}

func (c DecimalCodec) Build(v Decimal) (string, error) {
	if v.Places < 0 || v.Places > 9 || v.Units < 0 {
		return "", NewValidateError(v.String(), "Decimal value %s can not be encoded.", v)
	}
	digits := strconv.FormatInt(v.Units, 10)
	if c.Width > 0 {
		if len(digits) > c.Width-1 {
			return "", NewValidateError(v.String(), "Decimal value %s does not fit %d digits.", v, c.Width-1)
		}
		digits = strings.Repeat("0", c.Width-1-len(digits)) + digits
	}
	return strconv.Itoa(v.Places) + digits, nil
}

// DateCodec reads a DateTime with a fixed format.
type DateCodec struct {
	Format string
}

func (c DateCodec) Parse(raw string) (DateTime, error) {
	return ParseDateTime(raw, c.Format)
}

func (c DateCodec) Build(v DateTime) (string, error) {
	if v.IsZero() {
		return "", nil
	}
	d, err := v.Reformat(c.Format)
	if err != nil {
		return "", err
	}
	return d.Code(), nil
}

// ProductCodeCodec validates raw text through a product code constructor.
type ProductCodeCodec[P ProductCode] struct {
	New func(string) (P, error)
}

func (c ProductCodeCodec[P]) Parse(raw string) (P, error) {
	return c.New(raw)
}

func (c ProductCodeCodec[P]) Build(v P) (string, error) {
	if rv := reflect.ValueOf(v); !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		return "", nil
	}
	return v.Code(), nil
}
