package hibc

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// optional yields unset about half of the time.
func optional(g gopter.Gen, unset any) gopter.Gen {
	return gen.OneGenOf(gen.Const(unset), g)
}

// TestBuildParse_RoundTrip builds random barcodes in both framings and
// checks that parsing returns the same values. An empty batch or serial, a
// zero quantity and a negative day offset leave the value unset.
func TestBuildParse_RoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("linear and 2D framings round trip", prop.ForAll(
		func(lic, pcn string, uom int, batch, serial string, qty, days int, twoD bool) bool {
			b := New()
			pc, err := barcode.NewHIBC(pcn)
			if err != nil {
				return false
			}
			if b.SetLabelerIdentificationCode(lic) != nil || b.SetProductCode(pc) != nil ||
				b.SetUnitOfMeasure(uom) != nil {
				return false
			}
			if batch != "" && b.SetBatchNumber(batch) != nil {
				return false
			}
			if serial != "" && b.SetSerialNumber(serial) != nil {
				return false
			}
			if qty > 0 && b.SetQuantity(qty) != nil {
				return false
			}
			var exp *barcode.DateTime
			if days >= 0 {
				start := barcode.MustParseDateTime("240101", barcode.FormatYYMMDD)
				d, err := barcode.NewDateTime(start.Time().AddDate(0, 0, days), barcode.FormatYYMMDD)
				if err != nil || b.SetExpirationDate(&d) != nil {
					return false
				}
				exp = &d
			}
			b.SetTwoDimensional(twoD)

			wire, err := Build(b)
			if err != nil {
				return false
			}
			p, err := Parse(wire)
			if err != nil {
				t.Logf("%q: %v", wire, err)
				return false
			}

			gotPC, _ := p.ProductCode()
			gotBatch, _ := p.BatchNumber()
			gotSerial, _ := p.SerialNumber()
			gotExp, _ := p.ExpirationDate()
			gotUOM, _ := p.UnitOfMeasure()
			gotQty, _ := p.Quantity()

			expOK := gotExp == nil
			if exp != nil {
				expOK = gotExp != nil && gotExp.Equal(*exp)
			}
			secondary := batch != "" || serial != "" || qty > 0 || exp != nil
			return p.TwoDimensional() == (twoD && secondary) &&
				p.LabelerIdentificationCode() == lic &&
				gotPC.Code() == pcn &&
				gotUOM == uom &&
				gotBatch == batch &&
				gotSerial == serial &&
				expOK &&
				gotQty == qty
		},
		gen.RegexMatch(`^[A-Z][0-9A-Z]{3}$`),
		gen.RegexMatch(`^[0-9A-Z]{1,18}$`),
		gen.IntRange(0, 8),
		optional(gen.RegexMatch(`^[0-9A-Z]{1,18}$`), ""),
		optional(gen.RegexMatch(`^[0-9A-Z]{1,18}$`), ""),
		optional(gen.IntRange(1, 99999), 0),
		gen.IntRange(-500, 2000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
