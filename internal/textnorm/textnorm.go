// Package textnorm prepares scanner input for parsing. Keyboard wedge
// scanners on some layouts emit full width digits and letters; Unicode
// compatibility normalization folds them back to ASCII.
package textnorm

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var forms = map[string]norm.Form{
	"NFC":  norm.NFC,
	"NFD":  norm.NFD,
	"NFKC": norm.NFKC,
	"NFKD": norm.NFKD,
}

// ParseForm resolves a normalization form name, ignoring case.
func ParseForm(name string) (norm.Form, error) {
	f, ok := forms[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown normalization form %q (must be one of: NFC, NFD, NFKC, NFKD)", name)
	}
	return f, nil
}

// Normalizer rewrites input before parsing. The zero value returns input
// unchanged.
type Normalizer struct {
	form    norm.Form
	enabled bool
	trim    bool
}

// New returns a Normalizer applying the named form. An empty form disables
// normalization.
func New(form string, trim bool) (Normalizer, error) {
	n := Normalizer{trim: trim}
	if form == "" {
		return n, nil
	}
	f, err := ParseForm(form)
	if err != nil {
		return Normalizer{}, err
	}
	n.form, n.enabled = f, true
	return n, nil
}

// Enabled reports whether Apply can change its input.
func (n Normalizer) Enabled() bool { return n.enabled || n.trim }

// Apply normalizes s. Control characters such as GS, RS and EOT carry
// framing and are never removed; trimming only strips Unicode white space.
func (n Normalizer) Apply(s string) string {
	if n.enabled && !n.form.IsNormalString(s) {
		s = n.form.String(s)
	}
	if n.trim {
		s = strings.TrimFunc(s, unicode.IsSpace)
	}
	return s
}
