package barcode

import "strings"

// Type identifies a barcode grammar.
type Type int

const (
	TypeUnknown Type = iota
	TypeGS1
	TypeGS1128
	TypeEAN
	TypePPN
	TypeMSI
	TypeHIBC
	TypeCode39
	TypeCode128
)

// String returns the display name used in error messages.
func (t Type) String() string {
	switch t {
	case TypeGS1:
		return "GS1"
	case TypeGS1128:
		return "GS1-128"
	case TypeEAN:
		return "EAN"
	case TypePPN:
		return "PPN"
	case TypeMSI:
		return "MSI"
	case TypeHIBC:
		return "HIBC"
	case TypeCode39:
		return "Code39"
	case TypeCode128:
		return "Code128"
	default:
		return "Unknown"
	}
}

// ParseType maps a configuration name to a Type. Matching ignores case and
// accepts the common spellings with and without dashes.
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gs1":
		return TypeGS1, true
	case "gs1-128", "gs1128", "ucc/ean-128", "ean128":
		return TypeGS1128, true
	case "ean", "upc", "ean/upc":
		return TypeEAN, true
	case "ppn":
		return TypePPN, true
	case "msi":
		return TypeMSI, true
	case "hibc":
		return TypeHIBC, true
	case "code39", "code-39":
		return TypeCode39, true
	case "code128", "code-128":
		return TypeCode128, true
	default:
		return TypeUnknown, false
	}
}

// Semantic names a format independent field that typed accessors expose.
type Semantic int

const (
	ProductCodeField Semantic = iota
	BatchNumberField
	SerialNumberField
	ExpirationDateField
	ProductionDateField
)

func (s Semantic) String() string {
	switch s {
	case ProductCodeField:
		return "ProductCode"
	case BatchNumberField:
		return "BatchNumber"
	case SerialNumberField:
		return "SerialNumber"
	case ExpirationDateField:
		return "ExpirationDate"
	case ProductionDateField:
		return "ProductionDate"
	default:
		return "Unknown"
	}
}

// Control characters used by the GS1 and ANSI MH10.8.2 envelopes.
const (
	GroupSeparator  byte = 0x1D
	RecordSeparator byte = 0x1E
	EndOfTransmit   byte = 0x04
)
