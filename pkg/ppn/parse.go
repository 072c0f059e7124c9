package ppn

import (
	"errors"
	"strings"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Envelope framing of the "06" format.
const (
	FormatPrefix  = "[)>\x1E06\x1D"
	FormatTrailer = "\x1E\x04"
)

// recordHeader opens a further "06" record after a record separator.
const recordHeader = "06\x1D"

const maxIdentifierLength = 3

var (
	errMissingPrefix  = errors.New("Barcode does not start with the Format Prefix.")
	errMissingTrailer = errors.New("Barcode does not end with the Format Trailer.")
	errEmptyPayload   = errors.New("barcode contains no data identifiers")
)

func isTerminator(c byte) bool {
	return c == barcode.GroupSeparator || c == barcode.RecordSeparator || c == barcode.EndOfTransmit
}

func isIdentifierChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z')
}

// Parse reads a PPN payload. Blank input returns nil without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypePPN, err)
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

func parse(s string) (*Barcode, error) {
	prefix, rest := barcode.StripSymbology(s)
	if !strings.HasPrefix(rest, FormatPrefix) {
		return nil, errMissingPrefix
	}
	if !strings.HasSuffix(rest, FormatTrailer) || len(rest) < len(FormatPrefix)+len(FormatTrailer) {
		return nil, errMissingTrailer
	}
	payload := rest[len(FormatPrefix) : len(rest)-len(FormatTrailer)]
	if payload == "" {
		return nil, errEmptyPayload
	}

	b := New()
	if prefix != "" {
		if id, err := barcode.NewAimSymbologyIdentifier(prefix); err == nil {
			b.SetSymbologyIdentifier(id)
		}
	}
	if err := scan(b.Fields(), payload); err != nil {
		return nil, err
	}
	if err := b.checkProductCodes(); err != nil {
		return nil, err
	}
	return b, nil
}

// readIdentifier accumulates up to three characters until they name a known
// data identifier.
func readIdentifier(fields *barcode.FieldCollection, st *barcode.Stream) (string, error) {
	di := make([]byte, 0, maxIdentifierLength)
	for len(di) < maxIdentifierLength {
		c, ok := st.Next()
		if !ok || !isIdentifierChar(c) {
			if ok {
				di = append(di, c)
			}
			return "", barcode.NewValidateError(string(di), "invalid character detected in data identifier '%s'", di)
		}
		di = append(di, c)
		if fields.Contains(string(di)) {
			return string(di), nil
		}
	}
	return "", barcode.NewValidateError(string(di), "unknown data identifier '%s'", di)
}

// scan reads data identifiers and their values from payload. Values end at
// a group separator, a record separator or EOT. The fields of a following
// "06" record are merged into the same barcode and a repeated identifier
// overwrites the earlier value.
func scan(fields *barcode.FieldCollection, payload string) error {
	st := barcode.NewStream(payload)
	for !st.EOF() {
		di, err := readIdentifier(fields, st)
		if err != nil {
			return err
		}
		f, _ := fields.Get(di)
		if err := f.Parse(st.ReadUntil(isTerminator, 0)); err != nil {
			return err
		}
		if st.EOF() {
			break
		}
		switch {
		case st.Skip(barcode.GroupSeparator):
		case st.Skip(barcode.RecordSeparator):
			if strings.HasPrefix(st.Remaining(), recordHeader) {
				st.ReadN(len(recordHeader))
			}
		default:
			c, _ := st.Peek()
			return barcode.NewValidateError(st.Remaining(), "unexpected separator 0x%02X after data identifier '%s'", c, di)
		}
	}
	return nil
}

// Build writes the envelope with every set data identifier in table order.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	if err := b.checkProductCodes(); err != nil {
		return "", err
	}
	parts := make([]string, 0, b.Fields().Len())
	for _, f := range b.Fields().All() {
		if !f.IsSet() {
			continue
		}
		raw, err := f.Build()
		if err != nil {
			return "", err
		}
		if raw != "" {
			parts = append(parts, f.Identifier()+raw)
		}
	}
	if len(parts) == 0 {
		return "", errEmptyPayload
	}
	return FormatPrefix + strings.Join(parts, string(barcode.GroupSeparator)) + FormatTrailer, nil
}
