package hibc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MeKo-Tech/scancode/internal/checksum"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// dateSelectors maps multiplexed date formats to their selector digit. MMYY
// has no selector because its first digit already is 0 or 1.
var dateSelectors = map[string]string{
	barcode.FormatMMYY:     "",
	barcode.FormatMMDDYY:   "2",
	barcode.FormatYYMMDD:   "3",
	barcode.FormatYYMMDDHH: "4",
	barcode.FormatYYJJJ:    "5",
	barcode.FormatYYJJJHH:  "6",
}

// multiplexedDate encodes d for a "$$" segment. ok is false when the date
// cannot be written with two digit years.
func multiplexedDate(d barcode.DateTime) (string, bool) {
	if sel, known := dateSelectors[d.Format()]; known {
		return sel + d.Code(), true
	}
	short, err := d.Reformat(barcode.FormatYYMMDD)
	if err != nil {
		return "", false
	}
	return "3" + short.Code(), true
}

// Build encodes b with the framing selected by TwoDimensional. Labeler code,
// product code and unit of measure are required.
func Build(b *Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	segments, err := b.segments()
	if err != nil {
		return "", err
	}
	if b.twoDimensional {
		return frame2D(segments)
	}
	return frame1D(segments)
}

func (b *Barcode) segments() ([]string, error) {
	f := b.Fields()
	lic, okLIC := barcode.Get[string](f, FieldLabeler)
	pcn, okPCN := barcode.Get[*barcode.HIBC](f, FieldProductCode)
	uom, okUOM := b.UnitOfMeasure()
	if !okLIC || !okPCN || pcn == nil || !okUOM {
		return nil, errors.New("labeler identification code, product code and unit of measure are required")
	}
	segments := []string{fmt.Sprintf("%s%s%d", lic, pcn.Code(), uom)}

	batch, hasBatch := barcode.Get[string](f, FieldBatchNumber)
	serial, hasSerial := barcode.Get[string](f, FieldSerialNumber)
	qty, hasQty := b.Quantity()
	exp, hasExp := barcode.Get[barcode.DateTime](f, FieldExpirationDate)
	prod, hasProd := barcode.Get[barcode.DateTime](f, FieldProductionDate)

	flag, lot := "$$", batch
	if !hasBatch && hasSerial {
		flag, lot = "$$+", serial
	}
	hasLot := hasBatch || hasSerial

	var dateCode string
	dateEncodable := false
	if hasExp {
		dateCode, dateEncodable = multiplexedDate(exp)
	}

	// Without a batch number the serial number is the lot of the first
	// secondary segment.
	usedExp, usedSerial, usedQty := false, !hasBatch && hasSerial, false
	switch {
	case hasQty && uom != 9:
		q := fmt.Sprintf("8%02d", qty)
		if qty > 99 {
			q = fmt.Sprintf("9%05d", qty)
		}
		d := "7"
		if dateEncodable {
			d = dateCode
			usedExp = true
		}
		segments = append(segments, flag+q+d+lot)
		usedQty = true
	case dateEncodable && hasLot:
		segments = append(segments, flag+dateCode+lot)
		usedExp = true
	case hasBatch:
		segments = append(segments, "$"+batch)
	case hasSerial:
		segments = append(segments, "$+"+serial)
	}

	if hasQty && !usedQty {
		segments = append(segments, fmt.Sprintf("Q%d", qty))
	}
	if hasExp && !usedExp {
		full, err := exp.Reformat(barcode.FormatYYYYMMDD)
		if err != nil {
			return nil, err
		}
		segments = append(segments, "14D"+full.Code())
	}
	if hasProd {
		full, err := prod.Reformat(barcode.FormatYYYYMMDD)
		if err != nil {
			return nil, err
		}
		segments = append(segments, "16D"+full.Code())
	}
	if hasSerial && !usedSerial {
		segments = append(segments, "S"+serial)
	}
	return segments, nil
}

func frame1D(segments []string) (string, error) {
	var sb strings.Builder
	var link byte
	for i, s := range segments {
		seg := "+" + s
		if i > 0 {
			seg += string(link)
		}
		c, err := checksum.HIBCChar(seg)
		if err != nil {
			return "", fmt.Errorf("failed to compute check character for '%s': %w", seg, err)
		}
		if i == 0 {
			link = c
		}
		sb.WriteString(seg)
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

func frame2D(segments []string) (string, error) {
	body := "+" + strings.Join(segments, "/")
	c, err := checksum.HIBCChar(body)
	if err != nil {
		return "", fmt.Errorf("failed to compute check character for '%s': %w", body, err)
	}
	return body + string(c), nil
}
