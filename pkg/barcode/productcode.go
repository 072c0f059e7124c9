package barcode

import (
	"errors"
	"regexp"

	"github.com/MeKo-Tech/scancode/internal/checksum"
)

// ProductCodeType tags the variant of a ProductCode.
type ProductCodeType int

const (
	ProductCodeGTIN ProductCodeType = iota + 1
	ProductCodeEAN
	ProductCodePPN
	ProductCodeMSI
	ProductCodeHIBC
	ProductCodeCode39
	ProductCodeCode128
)

func (t ProductCodeType) String() string {
	switch t {
	case ProductCodeGTIN:
		return "GTIN"
	case ProductCodeEAN:
		return "EAN"
	case ProductCodePPN:
		return "PPN"
	case ProductCodeMSI:
		return "MSI"
	case ProductCodeHIBC:
		return "HIBC"
	case ProductCodeCode39:
		return "Code39"
	case ProductCodeCode128:
		return "Code128"
	default:
		return "Unknown"
	}
}

// ProductCode is a validated product identifier. Instances only come out of
// the New* constructors and never change afterwards.
type ProductCode interface {
	Type() ProductCodeType
	Code() string
	String() string
}

type productCode struct {
	code string
}

func (p productCode) Code() string   { return p.code }
func (p productCode) String() string { return p.code }

// GTIN is a 14 digit Global Trade Item Number.
type GTIN struct{ productCode }

func (*GTIN) Type() ProductCodeType { return ProductCodeGTIN }

// Data returns the code without its check digit.
func (g *GTIN) Data() string { return g.code[:len(g.code)-1] }

// EAN is an EAN-8 or EAN-13 code. UPC-A values are held padded to 13 digits.
type EAN struct{ productCode }

func (*EAN) Type() ProductCodeType { return ProductCodeEAN }

// Data returns the code without its check digit.
func (e *EAN) Data() string { return e.code[:len(e.code)-1] }

// PPN is a Pharmacy Product Number.
type PPN struct{ productCode }

func (*PPN) Type() ProductCodeType { return ProductCodePPN }

// MSI is an MSI Plessey product code.
type MSI struct{ productCode }

func (*MSI) Type() ProductCodeType { return ProductCodeMSI }

// HIBC is a HIBC product or catalog number (without labeler id).
type HIBC struct{ productCode }

func (*HIBC) Type() ProductCodeType { return ProductCodeHIBC }

// Code39 is a Code 39 payload.
type Code39 struct {
	productCode
	fullASCII bool
}

func (*Code39) Type() ProductCodeType { return ProductCodeCode39 }

// FullASCII reports whether the code was validated against the full ASCII
// character set.
func (c *Code39) FullASCII() bool { return c.fullASCII }

// Code128 is a Code 128 payload.
type Code128 struct{ productCode }

func (*Code128) Type() ProductCodeType { return ProductCodeCode128 }

var (
	alnumUpperPattern = regexp.MustCompile(`^[0-9A-Z]+$`)
	code39Restricted  = regexp.MustCompile(`^[0-9A-Z\-. $/+%]+$`)
	digitsOnlyPattern = regexp.MustCompile(`^[0-9]+$`)
	asciiPattern      = regexp.MustCompile(`^[\x00-\x7F]+$`)
)

// checksumError converts a checksum failure into a ValidateError that keeps
// the found and expected values.
func checksumError(code string, err error) *ValidateError {
	var mm *checksum.MismatchError
	if errors.As(err, &mm) {
		return &ValidateError{Value: code, Found: mm.Found, Expected: mm.Expected, Message: mm.Error(), Err: err}
	}
	return &ValidateError{Value: code, Message: "Invalid code '" + code + "'. " + err.Error(), Err: err}
}

func validateGtinOrEan(code string) error {
	if l := len(code); l != 8 && l != 13 && l != 14 {
		return NewValidateError(code, "Invalid GTIN/EAN length %d for '%s'. Expected 8, 13 or 14 digits.", len(code), code)
	}
	if !digitsOnlyPattern.MatchString(code) {
		return NewValidateError(code, "Invalid GTIN/EAN '%s'. Only digits are allowed.", code)
	}
	if err := checksum.GTIN(code); err != nil {
		return checksumError(code, err)
	}
	return nil
}

// NewGTIN validates a 14 digit GTIN.
func NewGTIN(code string) (*GTIN, error) {
	if len(code) != 14 {
		return nil, NewValidateError(code, "Invalid GTIN length %d for '%s'. Expected 14 digits.", len(code), code)
	}
	if err := validateGtinOrEan(code); err != nil {
		return nil, err
	}
	return &GTIN{productCode{code}}, nil
}

// NewEAN validates an EAN-8 or EAN-13 code.
func NewEAN(code string) (*EAN, error) {
	if len(code) == 14 {
		return nil, NewValidateError(code, "Invalid EAN length 14 for '%s'. Use a GTIN instead.", code)
	}
	if err := validateGtinOrEan(code); err != nil {
		return nil, err
	}
	return &EAN{productCode{code}}, nil
}

// NewGtinOrEan validates code and returns a GTIN for 14 digits and an EAN
// for every other legal length.
func NewGtinOrEan(code string) (ProductCode, error) {
	if len(code) == 14 {
		return NewGTIN(code)
	}
	return NewEAN(code)
}

// NewPPN validates a Pharmacy Product Number.
func NewPPN(code string) (*PPN, error) {
	if len(code) < 3 || len(code) > 22 {
		return nil, NewValidateError(code, "Invalid PPN length %d for '%s'. Expected 3 to 22 characters.", len(code), code)
	}
	if !alnumUpperPattern.MatchString(code) {
		return nil, NewValidateError(code, "Invalid PPN '%s'. Only [0-9A-Z] are allowed.", code)
	}
	if err := checksum.PPN(code); err != nil {
		return nil, checksumError(code, err)
	}
	return &PPN{productCode{code}}, nil
}

// NewMSI validates an MSI code including its check digit.
func NewMSI(code string) (*MSI, error) {
	if len(code) < 3 || len(code) > 10 {
		return nil, NewValidateError(code, "Invalid MSI length %d for '%s'. Expected 3 to 10 digits.", len(code), code)
	}
	if !digitsOnlyPattern.MatchString(code) {
		return nil, NewValidateError(code, "Invalid MSI '%s'. Only digits are allowed.", code)
	}
	if err := checksum.MSI(code); err != nil {
		return nil, checksumError(code, err)
	}
	return &MSI{productCode{code}}, nil
}

// NewHIBC validates a HIBC product/catalog number.
func NewHIBC(code string) (*HIBC, error) {
	if len(code) < 1 || len(code) > 18 {
		return nil, NewValidateError(code, "Invalid HIBC product code length %d for '%s'. Expected 1 to 18 characters.", len(code), code)
	}
	if !alnumUpperPattern.MatchString(code) {
		return nil, NewValidateError(code, "Invalid HIBC product code '%s'. Only [0-9A-Z] are allowed.", code)
	}
	return &HIBC{productCode{code}}, nil
}

// NewCode39 validates a Code 39 payload against the restricted character set
// or, with fullASCII, against ASCII 0-127.
func NewCode39(code string, fullASCII bool) (*Code39, error) {
	if len(code) < 1 || len(code) > 48 {
		return nil, NewValidateError(code, "Invalid Code39 length %d for '%s'. Expected 1 to 48 characters.", len(code), code)
	}
	if fullASCII {
		if !asciiPattern.MatchString(code) {
			return nil, NewValidateError(code, "Invalid Code39 '%s'. Only ASCII characters are allowed.", code)
		}
	} else if !code39Restricted.MatchString(code) {
		return nil, NewValidateError(code, "Invalid Code39 '%s'. Only [0-9A-Z-. $/+%%] are allowed.", code)
	}
	return &Code39{productCode: productCode{code}, fullASCII: fullASCII}, nil
}

// NewCode128 validates a Code 128 payload.
func NewCode128(code string) (*Code128, error) {
	if len(code) < 1 || len(code) > 80 {
		return nil, NewValidateError(code, "Invalid Code128 length %d for '%s'. Expected 1 to 80 characters.", len(code), code)
	}
	if !asciiPattern.MatchString(code) {
		return nil, NewValidateError(code, "Invalid Code128 '%s'. Only ASCII characters are allowed.", code)
	}
	return &Code128{productCode{code}}, nil
}
