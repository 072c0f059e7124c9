package gs1

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/MeKo-Tech/scancode/internal/checksum"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

func gtinGen() gopter.Gen {
	return gen.RegexMatch(`^[0-9]{13}$`).Map(func(data string) string {
		d, _ := checksum.GTINDigit(data)
		return data + string(rune('0'+d))
	})
}

// TestBuildParse_RoundTrip verifies that building and parsing again yields
// the same element values in both wire forms.
func TestBuildParse_RoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("gtin, batch, serial and expiry survive", prop.ForAll(
		func(gtin, batch, serial string, days int) bool {
			b := New()
			pc, err := barcode.NewGTIN(gtin)
			if err != nil {
				return false
			}
			exp := barcode.MustParseDateTime("250101", barcode.FormatGS1Date)
			exp, err = barcode.NewDateTime(exp.Time().AddDate(0, 0, days), barcode.FormatGS1Date)
			if err != nil {
				return false
			}
			if b.SetProductCode(pc) != nil || b.SetBatchNumber(batch) != nil ||
				b.SetSerialNumber(serial) != nil || b.SetExpirationDate(&exp) != nil {
				return false
			}

			plain, err := Build(b)
			if err != nil {
				return false
			}
			p, err := Parse(plain)
			if err != nil {
				return false
			}

			b128 := New128()
			for _, f := range b.Fields().All() {
				if f.IsSet() && b128.Set(f.Identifier(), f.Value()) != nil {
					return false
				}
			}
			wire, err := Build128(b128)
			if err != nil {
				return false
			}
			q, err := Parse128(wire)
			if err != nil {
				return false
			}

			for _, id := range []string{"01", "10", "17", "21"} {
				if p.Fields().Value(id) == nil || q.Fields().Value(id) == nil {
					return false
				}
			}
			pb, _ := p.BatchNumber()
			qs, _ := q.SerialNumber()
			pe, _ := p.ExpirationDate()
			pp, _ := q.ProductCode()
			return pb == batch && qs == serial && pe.Equal(exp) && pp.Code() == gtin
		},
		gtinGen(),
		gen.RegexMatch(`^[A-Za-z0-9\-./]{1,20}$`),
		gen.RegexMatch(`^[A-Za-z0-9]{1,20}$`),
		gen.IntRange(0, 3000),
	))

	properties.TestingRun(t)
}
