package barcode

import "fmt"

// Barcode is the format independent view of a parsed or assembled barcode.
//
// The typed accessors return an *UnusedFieldError when the format does not
// define the semantic at all. A defined but empty field yields the zero
// value and a nil error.
type Barcode interface {
	Type() Type
	Fields() *FieldCollection
	SymbologyIdentifier() SymbologyIdentifier
	ProductCode() (ProductCode, error)
	BatchNumber() (string, error)
	SerialNumber() (string, error)
	ExpirationDate() (*DateTime, error)
	ProductionDate() (*DateTime, error)
}

// Base implements Barcode on top of a field collection. Format types embed it
// and declare which field backs each semantic.
type Base struct {
	typ       Type
	fields    *FieldCollection
	symbology SymbologyIdentifier
	semantics map[Semantic]string
}

// NewBase wires a field collection to its semantics.
func NewBase(typ Type, fields *FieldCollection, semantics map[Semantic]string) Base {
	for s, id := range semantics {
		if !fields.Contains(id) {
			panic(fmt.Sprintf("barcode: %s semantic %s maps to unknown field %q", typ, s, id))
		}
	}
	return Base{typ: typ, fields: fields, semantics: semantics}
}

func (b *Base) Type() Type                               { return b.typ }
func (b *Base) Fields() *FieldCollection                 { return b.fields }
func (b *Base) SymbologyIdentifier() SymbologyIdentifier { return b.symbology }

// SetSymbologyIdentifier records the identifier the payload was read with.
func (b *Base) SetSymbologyIdentifier(id SymbologyIdentifier) { b.symbology = id }

// FieldFor returns the identifier of the field backing s.
func (b *Base) FieldFor(s Semantic) (string, error) {
	id, ok := b.semantics[s]
	if !ok {
		return "", &UnusedFieldError{Format: b.typ, Field: s}
	}
	return id, nil
}

func (b *Base) semanticValue(s Semantic) (any, error) {
	id, err := b.FieldFor(s)
	if err != nil {
		return nil, err
	}
	return b.fields.Value(id), nil
}

func (b *Base) setSemantic(s Semantic, v any) error {
	id, err := b.FieldFor(s)
	if err != nil {
		return err
	}
	return b.fields.Set(id, v)
}

func (b *Base) ProductCode() (ProductCode, error) {
	v, err := b.semanticValue(ProductCodeField)
	if err != nil || v == nil {
		return nil, err
	}
	pc, ok := v.(ProductCode)
	if !ok {
		return nil, fmt.Errorf("%w: %s field holds %T", ErrTypeMismatch, ProductCodeField, v)
	}
	return pc, nil
}

// SetProductCode replaces the product code. Passing nil clears it.
func (b *Base) SetProductCode(pc ProductCode) error {
	if pc == nil {
		return b.setSemantic(ProductCodeField, nil)
	}
	return b.setSemantic(ProductCodeField, pc)
}

func (b *Base) stringSemantic(s Semantic) (string, error) {
	v, err := b.semanticValue(s)
	if err != nil || v == nil {
		return "", err
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s field holds %T", ErrTypeMismatch, s, v)
	}
	return str, nil
}

func (b *Base) setString(s Semantic, v string) error {
	if v == "" {
		return b.setSemantic(s, nil)
	}
	return b.setSemantic(s, v)
}

func (b *Base) BatchNumber() (string, error)  { return b.stringSemantic(BatchNumberField) }
func (b *Base) SerialNumber() (string, error) { return b.stringSemantic(SerialNumberField) }

// SetBatchNumber assigns the batch/lot number. An empty string clears it.
func (b *Base) SetBatchNumber(v string) error { return b.setString(BatchNumberField, v) }

// SetSerialNumber assigns the serial number. An empty string clears it.
func (b *Base) SetSerialNumber(v string) error { return b.setString(SerialNumberField, v) }

func (b *Base) dateSemantic(s Semantic) (*DateTime, error) {
	v, err := b.semanticValue(s)
	if err != nil || v == nil {
		return nil, err
	}
	d, ok := v.(DateTime)
	if !ok {
		return nil, fmt.Errorf("%w: %s field holds %T", ErrTypeMismatch, s, v)
	}
	return &d, nil
}

func (b *Base) setDate(s Semantic, d *DateTime) error {
	if d == nil {
		return b.setSemantic(s, nil)
	}
	return b.setSemantic(s, *d)
}

func (b *Base) ExpirationDate() (*DateTime, error) { return b.dateSemantic(ExpirationDateField) }
func (b *Base) ProductionDate() (*DateTime, error) { return b.dateSemantic(ProductionDateField) }

// SetExpirationDate assigns the expiration date. nil clears it.
func (b *Base) SetExpirationDate(d *DateTime) error { return b.setDate(ExpirationDateField, d) }

// SetProductionDate assigns the production date. nil clears it.
func (b *Base) SetProductionDate(d *DateTime) error { return b.setDate(ProductionDateField, d) }
