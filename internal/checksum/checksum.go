// Package checksum implements the check digit and check character
// algorithms used by the supported barcode grammars.
//
// All functions are pure. Validation functions return a *MismatchError when
// the transmitted check value differs from the computed one, so callers can
// report both the found and the expected value.
package checksum

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty          = errors.New("value is empty")
	ErrNotNumeric     = errors.New("value contains non-numeric characters")
	ErrInvalidChar    = errors.New("value contains characters outside the check character table")
	ErrTooShort       = errors.New("value is too short to carry a check value")
	ErrNotAlphaNumber = errors.New("value contains characters outside [0-9A-Z]")
)

// MismatchError reports a transmitted check value that did not match the
// computed one.
type MismatchError struct {
	Kind     string
	Value    string
	Found    string
	Expected string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("Invalid %s '%s' in '%s'. Expected '%s'.", e.Kind, e.Found, e.Value, e.Expected)
}

// Mod43Alphabet is the 43 character table shared by Code 39 and HIBC.
// A character's weight is its index.
const Mod43Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ-. $/+%"

// Mod43Value returns the weight of c in Mod43Alphabet, or -1.
func Mod43Value(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'A' && c <= 'Z':
		return int(c) - 55
	}
	return strings.IndexByte(Mod43Alphabet, c)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// GTINDigit computes the GS1 mod-10 check digit for data (the code without
// its check digit). data is left-padded to 13 digits; weight 3 applies to
// even indices of the padded value.
func GTINDigit(data string) (int, error) {
	if data == "" {
		return 0, ErrEmpty
	}
	if !isDigits(data) {
		return 0, ErrNotNumeric
	}
	if len(data) > 13 {
		return 0, fmt.Errorf("GTIN data %q longer than 13 digits", data)
	}
	padded := strings.Repeat("0", 13-len(data)) + data
	sum := 0
	for i := 0; i < len(padded); i++ {
		d := int(padded[i] - '0')
		if i%2 == 0 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10, nil
}

// GTIN validates the trailing check digit of a GTIN/EAN/UPC code.
func GTIN(code string) error {
	if len(code) < 2 {
		return ErrTooShort
	}
	expected, err := GTINDigit(code[:len(code)-1])
	if err != nil {
		return err
	}
	found := code[len(code)-1]
	if found < '0' || found > '9' {
		return ErrNotNumeric
	}
	if int(found-'0') != expected {
		return &MismatchError{Kind: "check digit", Value: code, Found: string(found), Expected: strconv.Itoa(expected)}
	}
	return nil
}

// PPNDigits computes the two digit mod-97 check value of a Pharmacy Product
// Number: the sum of each character's ordinal times (index+2).
func PPNDigits(data string) (string, error) {
	if data == "" {
		return "", ErrEmpty
	}
	sum := 0
	for i := 0; i < len(data); i++ {
		c := data[i]
		if !(c >= '0' && c <= '9') && !(c >= 'A' && c <= 'Z') {
			return "", ErrNotAlphaNumber
		}
		sum += int(c) * (i + 2)
	}
	return fmt.Sprintf("%02d", sum%97), nil
}

// PPN validates the two trailing check digits of a PPN.
func PPN(code string) error {
	if len(code) < 3 {
		return ErrTooShort
	}
	expected, err := PPNDigits(code[:len(code)-2])
	if err != nil {
		return err
	}
	found := code[len(code)-2:]
	if found != expected {
		return &MismatchError{Kind: "check digits", Value: code, Found: found, Expected: expected}
	}
	return nil
}

// MSIDigit computes the MSI mod-10 check digit. The data digits are read from
// right to left and every digit at an even reversed index is doubled, with 9
// subtracted from doubled values above 9.
func MSIDigit(data string) (int, error) {
	if data == "" {
		return 0, ErrEmpty
	}
	if !isDigits(data) {
		return 0, ErrNotNumeric
	}
	sum := 0
	for i := 0; i < len(data); i++ {
		d := int(data[len(data)-1-i] - '0')
		if i%2 == 0 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return (10 - sum%10) % 10, nil
}

// MSI validates the trailing check digit of an MSI code.
func MSI(code string) error {
	if len(code) < 2 {
		return ErrTooShort
	}
	expected, err := MSIDigit(code[:len(code)-1])
	if err != nil {
		return err
	}
	found := code[len(code)-1]
	if found < '0' || found > '9' {
		return ErrNotNumeric
	}
	if int(found-'0') != expected {
		return &MismatchError{Kind: "check digit", Value: code, Found: string(found), Expected: strconv.Itoa(expected)}
	}
	return nil
}

// Mod43Char computes the mod-43 check character over s.
func Mod43Char(s string) (byte, error) {
	if s == "" {
		return 0, ErrEmpty
	}
	sum := 0
	for i := 0; i < len(s); i++ {
		v := Mod43Value(s[i])
		if v < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidChar, s[i])
		}
		sum += v
	}
	return Mod43Alphabet[sum%43], nil
}
