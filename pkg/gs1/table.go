package gs1

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

//go:embed ai.yaml
var aiTableYAML []byte

// ApplicationIdentifier describes one GS1 application identifier.
type ApplicationIdentifier struct {
	AI     string `yaml:"ai"`
	Title  string `yaml:"title"`
	Length int    `yaml:"length"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Type   string `yaml:"type"`
}

// Fixed reports whether the identifier's data has a fixed length.
func (a ApplicationIdentifier) Fixed() bool { return a.Length > 0 }

type aiTable struct {
	ApplicationIdentifiers []ApplicationIdentifier `yaml:"applicationIdentifiers"`
}

var (
	definitions []ApplicationIdentifier
	byAI        map[string]ApplicationIdentifier
	aiPrefixes  map[string]bool
)

func init() {
	defs, err := loadTable(aiTableYAML)
	if err != nil {
		panic(fmt.Sprintf("gs1: %v", err))
	}
	definitions = defs
	byAI = make(map[string]ApplicationIdentifier, len(defs))
	aiPrefixes = make(map[string]bool)
	for _, d := range defs {
		if _, err := d.newField(); err != nil {
			panic(fmt.Sprintf("gs1: %v", err))
		}
		byAI[d.AI] = d
		for n := 2; n < len(d.AI); n++ {
			aiPrefixes[d.AI[:n]] = true
		}
	}
}

func loadTable(data []byte) ([]ApplicationIdentifier, error) {
	var t aiTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode application identifier table: %w", err)
	}
	seen := make(map[string]bool, len(t.ApplicationIdentifiers))
	for i := range t.ApplicationIdentifiers {
		d := &t.ApplicationIdentifiers[i]
		if len(d.AI) < 2 || len(d.AI) > 4 {
			return nil, fmt.Errorf("application identifier %q must have 2 to 4 digits", d.AI)
		}
		if seen[d.AI] {
			return nil, fmt.Errorf("duplicate application identifier %q", d.AI)
		}
		seen[d.AI] = true
		if d.Length == 0 && d.Max == 0 {
			return nil, fmt.Errorf("application identifier %q needs a length or a max", d.AI)
		}
		if d.Length == 0 && d.Min == 0 {
			d.Min = 1
		}
		if d.Type == "" {
			d.Type = "string"
		}
	}
	for _, a := range t.ApplicationIdentifiers {
		for _, b := range t.ApplicationIdentifiers {
			if a.AI != b.AI && len(b.AI) > len(a.AI) && b.AI[:len(a.AI)] == a.AI {
				return nil, fmt.Errorf("application identifier %q is a prefix of %q", a.AI, b.AI)
			}
		}
	}
	return t.ApplicationIdentifiers, nil
}

// Definitions returns the known application identifiers in table order.
func Definitions() []ApplicationIdentifier {
	return slices.Clone(definitions)
}

// Lookup returns the definition of ai.
func Lookup(ai string) (ApplicationIdentifier, bool) {
	d, ok := byAI[ai]
	return d, ok
}

func (a ApplicationIdentifier) newField() (barcode.FieldValue, error) {
	switch a.Type {
	case "gtin":
		if !a.Fixed() {
			return nil, fmt.Errorf("gtin identifier %q must be fixed length", a.AI)
		}
		return barcode.NewFixedField[*barcode.GTIN](a.AI, a.Length, barcode.ProductCodeCodec[*barcode.GTIN]{New: barcode.NewGTIN}), nil
	case "date":
		return barcode.NewFixedField[barcode.DateTime](a.AI, len(barcode.FormatGS1Date), barcode.DateCodec{Format: barcode.FormatGS1Date}), nil
	case "decimal":
		if a.Fixed() {
			return barcode.NewFixedField[barcode.Decimal](a.AI, a.Length, barcode.DecimalCodec{Width: a.Length}), nil
		}
		return barcode.NewField[barcode.Decimal](a.AI, a.Min, a.Max, barcode.DecimalCodec{}), nil
	case "int":
		if a.Fixed() {
			return barcode.NewFixedField[int](a.AI, a.Length, barcode.IntCodec{Width: a.Length}), nil
		}
		return barcode.NewField[int](a.AI, a.Min, a.Max, barcode.IntCodec{}), nil
	case "numeric":
		if a.Fixed() {
			return barcode.NewFixedField[string](a.AI, a.Length, barcode.NumericString), nil
		}
		return barcode.NewField[string](a.AI, a.Min, a.Max, barcode.NumericString), nil
	case "string":
		if a.Fixed() {
			return barcode.NewFixedField[string](a.AI, a.Length, barcode.GS1String), nil
		}
		return barcode.NewField[string](a.AI, a.Min, a.Max, barcode.GS1String), nil
	default:
		return nil, fmt.Errorf("application identifier %q has unknown type %q", a.AI, a.Type)
	}
}

func newFields() *barcode.FieldCollection {
	fields := make([]barcode.FieldValue, 0, len(definitions))
	for _, d := range definitions {
		f, err := d.newField()
		if err != nil {
			panic(fmt.Sprintf("gs1: %v", err))
		}
		fields = append(fields, f)
	}
	return barcode.NewFieldCollection(fields...)
}
