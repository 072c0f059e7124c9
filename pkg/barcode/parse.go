package barcode

import "strings"

// IsBlank reports whether s is empty or only whitespace. Blank payloads parse
// to a nil barcode without error.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// TryParse runs parse and converts its outcome into the try style used by
// every format: the barcode, the failure message and whether parse
// succeeded. Blank input never succeeds and carries no feedback.
func TryParse[B any](parse func(string) (B, error), s string) (B, string, bool) {
	var zero B
	if IsBlank(s) {
		return zero, "", false
	}
	b, err := parse(s)
	if err != nil {
		return zero, err.Error(), false
	}
	return b, "", true
}

// WrapParseError attaches the format to a parser failure.
func WrapParseError(format Type, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Err: err}
}

// HasSymbologyPrefix reports whether s starts with an AIM "]xy" prefix.
func HasSymbologyPrefix(s string) bool {
	return len(s) >= 3 && s[0] == SymbologyPrefix
}

// StripSymbology splits an AIM prefix off s. prefix is "" when s has none.
func StripSymbology(s string) (prefix, rest string) {
	if !HasSymbologyPrefix(s) {
		return "", s
	}
	return s[:3], s[3:]
}
