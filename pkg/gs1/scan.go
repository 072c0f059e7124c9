package gs1

import (
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

func isGroupSeparator(c byte) bool { return c == barcode.GroupSeparator }

// readAI accumulates digits until they name a registered application
// identifier. Two and three digit candidates that cannot grow into a known
// identifier fail immediately; four digits are the upper bound.
func readAI(st *barcode.Stream) (string, error) {
	ai := make([]byte, 0, 4)
	for {
		c, ok := st.Next()
		if !ok {
			return "", barcode.NewValidateError(string(ai), "invalid character detected in AI '%s'", ai)
		}
		ai = append(ai, c)
		if c < '0' || c > '9' {
			return "", barcode.NewValidateError(string(ai), "invalid character detected in AI '%s'", ai)
		}
		if len(ai) < 2 {
			continue
		}
		if _, known := byAI[string(ai)]; known {
			return string(ai), nil
		}
		if len(ai) >= 4 {
			return "", barcode.NewValidateError(string(ai), "unknown application identifier '%s'", ai)
		}
		if !aiPrefixes[string(ai)] {
			return "", barcode.NewValidateError(string(ai), "invalid character detected in AI '%s'", ai)
		}
	}
}

// scan reads element strings from payload into fields. Fixed length
// elements take exactly their length; variable length elements end at a
// group separator, at their maximum length or at the end of the payload.
// A repeated identifier overwrites the earlier value.
func scan(fields *barcode.FieldCollection, payload string) error {
	st := barcode.NewStream(payload)
	for !st.EOF() {
		ai, err := readAI(st)
		if err != nil {
			return err
		}
		f, ok := fields.Get(ai)
		if !ok {
			return barcode.NewValidateError(ai, "unknown application identifier '%s'", ai)
		}
		if err := f.Read(st, isGroupSeparator); err != nil {
			return err
		}
		st.Skip(barcode.GroupSeparator)
	}
	return nil
}

// elements returns the set fields in ascending identifier order together
// with their raw values.
func elements(fields *barcode.FieldCollection) ([]Element, error) {
	var out []Element
	for _, f := range fields.Sorted() {
		if !f.IsSet() {
			continue
		}
		raw, err := f.Build()
		if err != nil {
			return nil, &barcode.ValidateError{Field: f.Identifier(), Message: "failed to build element '" + f.Identifier() + "': " + err.Error(), Err: err}
		}
		if raw == "" {
			continue
		}
		def := byAI[f.Identifier()]
		out = append(out, Element{AI: f.Identifier(), Title: def.Title, Raw: raw, Fixed: f.FixedLength()})
	}
	return out, nil
}
