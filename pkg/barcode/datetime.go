package barcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date formats used by the supported grammars. A format is a sequence of
// letter runs: Y year, M month, D day, H hour, J day of year.
const (
	FormatGS1Date  = "YYMMDD"
	FormatPPNDate  = "YYYYMMDD"
	FormatMMYY     = "MMYY"
	FormatMMDDYY   = "MMDDYY"
	FormatYYMMDD   = "YYMMDD"
	FormatYYMMDDHH = "YYMMDDHH"
	FormatYYJJJ    = "YYJJJ"
	FormatYYJJJHH  = "YYJJJHH"
	FormatYYYYMMDD = "YYYYMMDD"
)

var dateFormatPattern = regexp.MustCompile(`^(?:M{1,2}|Y{1,4}|D{1,2}|H{1,2}|J{1,3})+$`)

var dateRunLimits = map[byte]int{'M': 2, 'Y': 4, 'D': 2, 'H': 2, 'J': 3}

// DateTime is an immutable barcode date: the resolved calendar time, the
// original digits and the format they were read with.
type DateTime struct {
	t      time.Time
	code   string
	format string
}

type dateRun struct {
	letter byte
	start  int
	length int
}

// dateRuns validates format and splits it into letter runs.
func dateRuns(format string) ([]dateRun, error) {
	format = strings.ToUpper(format)
	if !dateFormatPattern.MatchString(format) {
		return nil, fmt.Errorf("invalid date format '%s'", format)
	}
	var runs []dateRun
	seen := make(map[byte]bool)
	for i := 0; i < len(format); {
		j := i
		for j < len(format) && format[j] == format[i] {
			j++
		}
		letter := format[i]
		if j-i > dateRunLimits[letter] {
			return nil, fmt.Errorf("invalid date format '%s': too many '%c'", format, letter)
		}
		if seen[letter] {
			return nil, fmt.Errorf("invalid date format '%s': '%c' appears twice", format, letter)
		}
		seen[letter] = true
		runs = append(runs, dateRun{letter: letter, start: i, length: j - i})
		i = j
	}
	if !seen['Y'] {
		return nil, fmt.Errorf("invalid date format '%s': missing year", format)
	}
	if seen['J'] && (seen['M'] || seen['D']) {
		return nil, fmt.Errorf("invalid date format '%s': day of year cannot be combined with month or day", format)
	}
	if !seen['J'] && !seen['M'] {
		return nil, fmt.Errorf("invalid date format '%s': missing month", format)
	}
	return runs, nil
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseDateTime decodes code with format. Two digit years resolve to 20YY,
// a day of 00 (or a format without a day) resolves to the last day of the
// month and a J run counts days from January 1st after the hour is applied.
func ParseDateTime(code, format string) (DateTime, error) {
	runs, err := dateRuns(format)
	if err != nil {
		return DateTime{}, err
	}
	format = strings.ToUpper(format)
	if len(code) != len(format) {
		return DateTime{}, NewValidateError(code, "Invalid date '%s'. Expected %d digits for format '%s'.", code, len(format), format)
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return DateTime{}, NewValidateError(code, "Invalid date '%s'. Only digits are allowed.", code)
		}
	}

	year, month, day, hour, julian := 0, 0, 0, 0, 0
	for _, r := range runs {
		v, _ := strconv.Atoi(code[r.start : r.start+r.length])
		switch r.letter {
		case 'Y':
			if r.length < 4 {
				v += 2000
			}
			year = v
		case 'M':
			month = v
		case 'D':
			day = v
		case 'H':
			hour = v
		case 'J':
			julian = v
		}
	}

	if hour > 23 {
		return DateTime{}, NewValidateError(code, "Invalid date '%s'. Hour %d out of range.", code, hour)
	}

	var t time.Time
	if strings.ContainsRune(format, 'J') {
		yearDays := 365
		if daysIn(year, time.February) == 29 {
			yearDays = 366
		}
		if julian < 1 || julian > yearDays {
			return DateTime{}, NewValidateError(code, "Invalid date '%s'. Day of year %d out of range.", code, julian)
		}
		t = time.Date(year, time.January, 1, hour, 0, 0, 0, time.UTC)
		t = t.AddDate(0, 0, julian-1)
	} else {
		if month < 1 || month > 12 {
			return DateTime{}, NewValidateError(code, "Invalid date '%s'. Month %d out of range.", code, month)
		}
		last := daysIn(year, time.Month(month))
		if day == 0 {
			day = last
		}
		if day > last {
			return DateTime{}, NewValidateError(code, "Invalid date '%s'. Day %d out of range.", code, day)
		}
		t = time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
	}
	return DateTime{t: t, code: code, format: format}, nil
}

// MustParseDateTime is like ParseDateTime but panics on error. It is meant
// for tests and static tables.
func MustParseDateTime(code, format string) DateTime {
	d, err := ParseDateTime(code, format)
	if err != nil {
		panic(err)
	}
	return d
}

// NewDateTime encodes t with format. Years below 2000 cannot be written in
// two digit formats.
func NewDateTime(t time.Time, format string) (DateTime, error) {
	runs, err := dateRuns(format)
	if err != nil {
		return DateTime{}, err
	}
	var b strings.Builder
	for _, r := range runs {
		var v int
		switch r.letter {
		case 'Y':
			v = t.Year()
			if r.length < 4 {
				if v < 2000 {
					return DateTime{}, fmt.Errorf("year %d cannot be encoded with format '%s'", v, format)
				}
				v -= 2000
			}
		case 'M':
			v = int(t.Month())
		case 'D':
			v = t.Day()
		case 'H':
			v = t.Hour()
		case 'J':
			v = t.YearDay()
		}
		digits := fmt.Sprintf("%0*d", r.length, v)
		if len(digits) > r.length {
			return DateTime{}, fmt.Errorf("value %d does not fit '%s' run of format '%s'", v, strings.Repeat(string(r.letter), r.length), format)
		}
		b.WriteString(digits)
	}
	return ParseDateTime(b.String(), format)
}

// Time returns the resolved calendar time (UTC).
func (d DateTime) Time() time.Time { return d.t }

// Code returns the digits as they appeared on the barcode.
func (d DateTime) Code() string { return d.code }

// Format returns the date format the code was read with.
func (d DateTime) Format() string { return d.format }

// IsZero reports whether d holds no date.
func (d DateTime) IsZero() bool { return d.code == "" }

// Equal reports whether both dates resolve to the same instant.
func (d DateTime) Equal(o DateTime) bool { return d.t.Equal(o.t) }

func (d DateTime) String() string {
	if d.t.Hour() != 0 {
		return d.t.Format("2006-01-02T15")
	}
	return d.t.Format("2006-01-02")
}

// Reformat returns the same calendar time encoded with another format. When
// the format is unchanged the original code is kept, so a 00 day survives.
func (d DateTime) Reformat(format string) (DateTime, error) {
	if strings.EqualFold(d.format, format) {
		return d, nil
	}
	return NewDateTime(d.t, format)
}
