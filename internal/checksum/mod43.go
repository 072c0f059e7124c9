package checksum

import (
	"fmt"
	"strings"
)

// code39FullASCII maps every ASCII character to its Code 39 full ASCII
// representation. Characters of the restricted set map to themselves.
var code39FullASCII = buildFullASCII()

func buildFullASCII() [128]string {
	var t [128]string
	t[0] = "%U"
	for c := 1; c <= 26; c++ {
		t[c] = "$" + string(rune('A'+c-1))
	}
	for c := 27; c <= 31; c++ {
		t[c] = "%" + string(rune('A'+c-27))
	}
	t[' '] = " "
	for c := '!'; c <= ','; c++ {
		t[c] = "/" + string('A'+c-'!')
	}
	t['-'] = "-"
	t['.'] = "."
	t['/'] = "/O"
	for c := '0'; c <= '9'; c++ {
		t[c] = string(c)
	}
	t[':'] = "/Z"
	for c := ';'; c <= '?'; c++ {
		t[c] = "%" + string('F'+c-';')
	}
	t['@'] = "%V"
	for c := 'A'; c <= 'Z'; c++ {
		t[c] = string(c)
	}
	for c := '['; c <= '_'; c++ {
		t[c] = "%" + string('K'+c-'[')
	}
	t['`'] = "%W"
	for c := 'a'; c <= 'z'; c++ {
		t[c] = "+" + string(c-'a'+'A')
	}
	for c := '{'; c <= 127; c++ {
		t[c] = "%" + string('P'+c-'{')
	}
	return t
}

// ExpandFullASCII rewrites s into the restricted Code 39 character set using
// the full ASCII escape pairs.
func ExpandFullASCII(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c > 127 {
			return "", fmt.Errorf("%w: %q is not ASCII", ErrInvalidChar, c)
		}
		b.WriteString(code39FullASCII[c])
	}
	return b.String(), nil
}

// Code39Char computes the Code 39 mod-43 check character for data. In full
// ASCII mode the weights are taken from the escape pair of each character.
func Code39Char(data string, fullASCII bool) (byte, error) {
	if fullASCII {
		expanded, err := ExpandFullASCII(data)
		if err != nil {
			return 0, err
		}
		data = expanded
	}
	return Mod43Char(data)
}

// Code39 validates the trailing mod-43 check character of code.
func Code39(code string, fullASCII bool) error {
	if len(code) < 2 {
		return ErrTooShort
	}
	expected, err := Code39Char(code[:len(code)-1], fullASCII)
	if err != nil {
		return err
	}
	if found := code[len(code)-1]; found != expected {
		return &MismatchError{Kind: "check character", Value: code, Found: string(found), Expected: string(expected)}
	}
	return nil
}

// HIBCChar computes the HIBC check character of a segment (including its
// leading flag character) without the check character itself.
func HIBCChar(segment string) (byte, error) {
	return Mod43Char(segment)
}

// HIBC validates the trailing check character of a HIBC segment.
func HIBC(segment string) error {
	if len(segment) < 2 {
		return ErrTooShort
	}
	expected, err := HIBCChar(segment[:len(segment)-1])
	if err != nil {
		return err
	}
	if found := segment[len(segment)-1]; found != expected {
		return &MismatchError{Kind: "check character", Value: segment, Found: string(found), Expected: string(expected)}
	}
	return nil
}
