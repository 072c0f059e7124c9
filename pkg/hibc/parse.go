package hibc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/MeKo-Tech/scancode/internal/checksum"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

var (
	charsetPattern = regexp.MustCompile(`^[A-Z0-9\-. $/+%]+$`)
	// anchorPattern marks a possible segment start: a flag character
	// followed by data.
	anchorPattern = regexp.MustCompile(`[+/][A-Za-z0-9$]`)
)

// segmentFormat describes one date layout of a multiplexed "$$" segment.
type segmentFormat struct {
	format string
	// skip is the number of selector characters in front of the date.
	skip int
}

// segmentFormats is keyed by the selector digit. Selectors 0 and 1 are the
// first month digit of an MMYY date and are therefore part of the date.
var segmentFormats = map[byte]segmentFormat{
	'0': {barcode.FormatMMYY, 0},
	'1': {barcode.FormatMMYY, 0},
	'2': {barcode.FormatMMDDYY, 1},
	'3': {barcode.FormatYYMMDD, 1},
	'4': {barcode.FormatYYMMDDHH, 1},
	'5': {barcode.FormatYYJJJ, 1},
	'6': {barcode.FormatYYJJJHH, 1},
}

const noDateSelector = '7'

// Parse reads a HIBC payload. Blank input returns nil without error.
func Parse(s string) (*Barcode, error) {
	if barcode.IsBlank(s) {
		return nil, nil
	}
	b, err := parse(s)
	if err != nil {
		return nil, barcode.WrapParseError(barcode.TypeHIBC, err)
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
	prefix, payload := barcode.StripSymbology(s)
	if payload == "" {
		return nil, errors.New("barcode contains no segments")
	}
	if !charsetPattern.MatchString(payload) {
		return nil, barcode.NewValidateError(payload, "Barcode '%s' contains characters outside the HIBC character set.", payload)
	}
	if payload[0] != '+' {
		return nil, barcode.NewValidateError(payload, "Barcode '%s' does not start with '+'.", payload)
	}

	b := New()
	if prefix != "" {
		if id, err := barcode.NewAimSymbologyIdentifier(prefix); err == nil {
			b.SetSymbologyIdentifier(id)
		}
	}

	var contents []string
	var err error
	plus, slash := countAnchors(payload)
	if slash > 0 && plus == 1 {
		b.twoDimensional = true
		contents, err = split2D(payload)
	} else {
		contents, err = split1D(payload)
	}
	if err != nil {
		return nil, err
	}

	if err := b.applyPrimary(contents[0]); err != nil {
		return nil, err
	}
	for _, c := range contents[1:] {
		if err := b.applySecondary(c, true); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func anchors(s string) []int {
	var starts []int
	for _, m := range anchorPattern.FindAllStringIndex(s, -1) {
		starts = append(starts, m[0])
	}
	return starts
}

// countAnchors counts segment starts per flag character. The "+" of a
// "$+" or "$$+" serial flag opening a segment is not a segment start.
func countAnchors(s string) (plus, slash int) {
	for _, i := range anchors(s) {
		if serialFlag(s, i) {
			continue
		}
		if s[i] == '+' {
			plus++
		} else {
			slash++
		}
	}
	return plus, slash
}

func isFlag(c byte) bool { return c == '+' || c == '/' }

func serialFlag(s string, i int) bool {
	if s[i] != '+' || i < 2 || s[i-1] != '$' {
		return false
	}
	return isFlag(s[i-2]) || (i >= 3 && s[i-2] == '$' && isFlag(s[i-3]))
}

func splitAt(s string, starts []int) []string {
	out := make([]string, 0, len(starts))
	for i, st := range starts {
		end := len(s)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		out = append(out, s[st:end])
	}
	return out
}

func anchorsOf(s string, flag byte) []int {
	var out []int
	for _, i := range anchors(s) {
		if s[i] == flag || i == 0 {
			out = append(out, i)
		}
	}
	return out
}

func checkError(segment string, err error) error {
	var mm *checksum.MismatchError
	if errors.As(err, &mm) {
		return &barcode.ValidateError{
			Value:    segment,
			Found:    mm.Found,
			Expected: mm.Expected,
			Message:  fmt.Sprintf("Check Character did not match. Found '%s', expected '%s' in '%s'.", mm.Found, mm.Expected, segment),
			Err:      err,
		}
	}
	return &barcode.ValidateError{Value: segment, Message: fmt.Sprintf("Check Character could not be verified for '%s': %v", segment, err), Err: err}
}

// split2D validates the trailing check character over the whole payload,
// strips it and splits the rest at "/" anchors.
func split2D(payload string) ([]string, error) {
	if err := checksum.HIBC(payload); err != nil {
		return nil, checkError(payload, err)
	}
	body := payload[:len(payload)-1]
	starts := anchorsOf(body, '/')
	if len(starts) == 0 || starts[0] != 0 {
		return nil, barcode.NewValidateError(payload, "Barcode '%s' does not start with a primary segment.", payload)
	}
	segs := splitAt(body, starts)
	contents := make([]string, len(segs))
	for i, seg := range segs {
		contents[i] = seg[1:]
	}
	return contents, nil
}

// split1D splits at "+" anchors and validates link and check characters per
// segment. A link or check character that is itself a flag character can
// fake an anchor, so on failure the split is retried using the link
// character as the segment terminator.
func split1D(payload string) ([]string, error) {
	starts := anchorsOf(payload, '+')
	if len(starts) == 0 || starts[0] != 0 {
		return nil, barcode.NewValidateError(payload, "Barcode '%s' does not start with a primary segment.", payload)
	}
	contents, err := validate1D(splitAt(payload, starts))
	if err == nil {
		return contents, nil
	}
	if alt := linkAwareSplit(payload, starts); alt != nil {
		if c, altErr := validate1D(alt); altErr == nil {
			return c, nil
		}
	}
	return nil, err
}

func validate1D(segs []string) ([]string, error) {
	primary := segs[0]
	if len(primary) < 3 {
		return nil, barcode.NewValidateError(primary, "Segment '%s' is too short.", primary)
	}
	if err := checksum.HIBC(primary); err != nil {
		return nil, checkError(primary, err)
	}
	link := primary[len(primary)-1]
	contents := []string{primary[1 : len(primary)-1]}

	for _, seg := range segs[1:] {
		if len(seg) < 4 {
			return nil, barcode.NewValidateError(seg, "Segment '%s' is too short.", seg)
		}
		if found := seg[len(seg)-2]; found != link {
			return nil, &barcode.ValidateError{
				Value:    seg,
				Found:    string(found),
				Expected: string(link),
				Message:  fmt.Sprintf("Link Character did not match. Found '%c', expected '%c' in '%s'.", found, link, seg),
			}
		}
		if err := checksum.HIBC(seg); err != nil {
			return nil, checkError(seg, err)
		}
		contents = append(contents, seg[1:len(seg)-2])
	}
	return contents, nil
}

func linkAwareSplit(payload string, starts []int) []string {
	if len(starts) < 2 {
		return nil
	}
	link := payload[starts[1]-1]
	accepted := []int{0, starts[1]}
	for _, st := range starts[2:] {
		prev := accepted[len(accepted)-1]
		if st-prev >= 4 && payload[st-2] == link {
			accepted = append(accepted, st)
		}
	}
	return splitAt(payload, accepted)
}

func isLetter(c byte) bool { return c >= 'A' && c <= 'Z' }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

func (b *Barcode) applyPrimary(content string) error {
	if content == "" || !isLetter(content[0]) {
		return barcode.NewValidateError(content, "Barcode does not start with a primary segment: '+%s' must begin with a letter.", content)
	}
	if len(content) < 6 {
		return barcode.NewValidateError(content, "Primary segment '+%s' is too short.", content)
	}
	f := b.Fields()
	if err := f.Parse(FieldLabeler, content[:4]); err != nil {
		return err
	}
	if err := f.Parse(FieldProductCode, content[4:len(content)-1]); err != nil {
		return err
	}
	return f.Parse(FieldUnitOfMeasure, content[len(content)-1:])
}

var fieldNames = map[string]string{
	FieldQuantity:       "Quantity",
	FieldBatchNumber:    barcode.BatchNumberField.String(),
	FieldSerialNumber:   barcode.SerialNumberField.String(),
	FieldExpirationDate: barcode.ExpirationDateField.String(),
	FieldProductionDate: barcode.ProductionDateField.String(),
}

func (b *Barcode) ensureUnset(id string) error {
	if f, _ := b.Fields().Get(id); f.IsSet() {
		return fmt.Errorf("%s already parsed before", fieldNames[id])
	}
	return nil
}

func (b *Barcode) parseOnce(id, raw string) error {
	if err := b.ensureUnset(id); err != nil {
		return err
	}
	return b.Fields().Parse(id, raw)
}

// applySecondary dispatches one secondary segment by its data identifier.
// Segments starting with a digit use the legacy YYJJJ layout and are read
// as a "$$5" segment.
func (b *Barcode) applySecondary(c string, allowLegacy bool) error {
	if c == "" {
		return errors.New("empty secondary segment")
	}
	switch {
	case strings.HasPrefix(c, "14D"):
		return b.parseOnce(FieldExpirationDate, c[3:])
	case strings.HasPrefix(c, "16D"):
		return b.parseOnce(FieldProductionDate, c[3:])
	case c[0] == 'S':
		return b.parseOnce(FieldSerialNumber, c[1:])
	case c[0] == 'Q':
		if uom, _ := b.UnitOfMeasure(); uom != 9 {
			return barcode.NewValidateError(c, "Quantity segment '%s' requires unit of measure 9.", c)
		}
		return b.parseOnce(FieldQuantity, c[1:])
	case isDigit(c[0]) && allowLegacy:
		return b.applySecondary("$$5"+c, false)
	case strings.HasPrefix(c, "$$+"):
		return b.applyMultiplexed(c, c[3:], FieldSerialNumber)
	case strings.HasPrefix(c, "$$"):
		return b.applyMultiplexed(c, c[2:], FieldBatchNumber)
	case strings.HasPrefix(c, "$+"):
		return b.parseOnce(FieldSerialNumber, c[2:])
	case c[0] == '$':
		return b.parseOnce(FieldBatchNumber, c[1:])
	default:
		return barcode.NewValidateError(c, "Unsupported secondary segment '%s'.", c)
	}
}

// applyMultiplexed reads the body of a "$$" segment: an optional quantity
// (selector 8 or 9), an optional date selected by 0-7 and the lot or serial
// number stored in lotField.
func (b *Barcode) applyMultiplexed(segment, r, lotField string) error {
	if r == "" {
		return barcode.NewValidateError(segment, "Segment '%s' has no segment format.", segment)
	}

	quantity := false
	if width := map[byte]int{'8': 2, '9': 5}[r[0]]; width > 0 {
		if len(r) < 1+width {
			return barcode.NewValidateError(segment, "Segment '%s' is too short for a %d digit quantity.", segment, width)
		}
		if err := b.parseOnce(FieldQuantity, r[1:1+width]); err != nil {
			return err
		}
		r = r[1+width:]
		quantity = true
	}

	switch {
	case r == "" && quantity:
	case r != "" && r[0] == noDateSelector:
		r = r[1:]
	case r != "" && segmentFormats[r[0]].format != "":
		sf := segmentFormats[r[0]]
		end := sf.skip + len(sf.format)
		if len(r) < end {
			return barcode.NewValidateError(segment, "Segment '%s' is too short for date format %s.", segment, sf.format)
		}
		d, err := barcode.ParseDateTime(r[sf.skip:end], sf.format)
		if err != nil {
			return err
		}
		if err := b.ensureUnset(FieldExpirationDate); err != nil {
			return err
		}
		if err := b.Fields().Set(FieldExpirationDate, d); err != nil {
			return err
		}
		r = r[end:]
	case !quantity:
		return barcode.NewValidateError(segment, "Unknown segment format '%c' in '%s'.", r[0], segment)
	}

	if r == "" {
		return nil
	}
	return b.parseOnce(lotField, r)
}
