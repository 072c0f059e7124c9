package barcode

import (
	"errors"
	"fmt"
	"strings"
)

// FieldValue is the type erased view of a Field that collections and
// scanners work with.
type FieldValue interface {
	Identifier() string
	MinLength() int
	// MaxLength returns 0 for unbounded fields.
	MaxLength() int
	FixedLength() bool
	IsSet() bool
	// Value returns the typed value or nil when unset.
	Value() any
	// SetValue assigns a typed value and validates it as parsing would.
	SetValue(v any) error
	// Parse validates and stores raw.
	Parse(raw string) error
	// Read consumes the field's share of st. Variable length fields stop at
	// the first character for which stop returns true.
	Read(st *Stream, stop func(byte) bool) error
	// Build returns the raw text of the current value, "" when unset.
	Build() (string, error)
	Clear()
}

// Field is a typed barcode field with length bounds and a codec.
type Field[T any] struct {
	id    string
	min   int
	max   int
	codec Codec[T]
	value T
	set   bool
}

// NewField creates a variable length field. max 0 means unbounded.
func NewField[T any](id string, min, max int, codec Codec[T]) *Field[T] {
	return &Field[T]{id: id, min: min, max: max, codec: codec}
}

// NewFixedField creates a field that always holds exactly length characters.
func NewFixedField[T any](id string, length int, codec Codec[T]) *Field[T] {
	return &Field[T]{id: id, min: length, max: length, codec: codec}
}

func (f *Field[T]) Identifier() string { return f.id }
func (f *Field[T]) MinLength() int     { return f.min }
func (f *Field[T]) MaxLength() int     { return f.max }
func (f *Field[T]) FixedLength() bool  { return f.max > 0 && f.min == f.max }
func (f *Field[T]) IsSet() bool        { return f.set }

// Get returns the typed value and whether it is set.
func (f *Field[T]) Get() (T, bool) {
	return f.value, f.set
}

func (f *Field[T]) Value() any {
	if !f.set {
		return nil
	}
	return f.value
}

func (f *Field[T]) Clear() {
	var zero T
	f.value = zero
	f.set = false
}

func (f *Field[T]) checkLength(raw string) error {
	n := len(raw)
	switch {
	case f.FixedLength() && n != f.min:
		return &ValidateError{Field: f.id, Value: raw, Message: fmt.Sprintf("Invalid value Length %d. Expected %d Bytes.", n, f.min)}
	case f.max > 0 && n > f.max:
		return &ValidateError{Field: f.id, Value: raw, Message: fmt.Sprintf("Invalid value Length %d. Expected Max %d Bytes.", n, f.max)}
	case n < f.min:
		return &ValidateError{Field: f.id, Value: raw, Message: fmt.Sprintf("Invalid value Length %d. Expected Min %d Bytes.", n, f.min)}
	}
	return nil
}

func (f *Field[T]) decode(raw string) (T, error) {
	if err := f.checkLength(raw); err != nil {
		var zero T
		return zero, err
	}
	v, err := f.codec.Parse(raw)
	if err != nil {
		var ve *ValidateError
		if errors.As(err, &ve) && ve.Field == "" {
			ve.Field = f.id
		}
		return v, err
	}
	return v, nil
}

func (f *Field[T]) Parse(raw string) error {
	if raw == "" && f.min == 0 {
		f.Clear()
		return nil
	}
	v, err := f.decode(raw)
	if err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

func (f *Field[T]) Read(st *Stream, stop func(byte) bool) error {
	if f.FixedLength() {
		raw := st.ReadN(f.min)
		if stop != nil && strings.IndexFunc(raw, func(r rune) bool { return r < 0x80 && stop(byte(r)) }) >= 0 {
			return &ValidateError{Field: f.id, Value: raw, Message: fmt.Sprintf("Invalid value '%s'. Separator found inside fixed length field.", raw)}
		}
		return f.Parse(raw)
	}
	return f.Parse(st.ReadUntil(stop, f.max))
}

func (f *Field[T]) Build() (string, error) {
	if !f.set {
		return "", nil
	}
	return f.codec.Build(f.value)
}

// Set assigns v after building it through the codec and decoding the
// result, so the same length and grammar checks apply as for scanned input.
// The value itself is kept as given.
func (f *Field[T]) Set(v T) error {
	raw, err := f.codec.Build(v)
	if err != nil {
		return err
	}
	if raw == "" && f.min == 0 {
		f.Clear()
		return nil
	}
	if _, err := f.decode(raw); err != nil {
		return err
	}
	f.value = v
	f.set = true
	return nil
}

func (f *Field[T]) SetValue(v any) error {
	if v == nil {
		f.Clear()
		return nil
	}
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: field '%s' holds %T, got %T", ErrTypeMismatch, f.id, f.value, v)
	}
	return f.Set(tv)
}
