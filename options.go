package scancode

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/MeKo-Tech/scancode/internal/textnorm"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// Option configures a Parser.
type Option func(*Parser) error

// WithFormats restricts the formats a Parser tries. The registry priority
// order is kept regardless of the argument order. No formats means all.
func WithFormats(types ...barcode.Type) Option {
	return func(p *Parser) error {
		for _, t := range types {
			if t == barcode.TypeUnknown {
				return fmt.Errorf("unsupported format %s", t)
			}
		}
		p.formats = append([]barcode.Type(nil), types...)
		return nil
	}
}

// WithNormalization applies a Unicode normalization form (NFC, NFD, NFKC or
// NFKD) to input before dispatch. An empty form only trims when trim is set.
func WithNormalization(form string, trim bool) Option {
	return func(p *Parser) error {
		n, err := textnorm.New(form, trim)
		if err != nil {
			return err
		}
		p.normalizer = n
		return nil
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		p.logger = logger
		return nil
	}
}

// WithMetrics toggles prometheus instrumentation.
func WithMetrics(enabled bool) Option {
	return func(p *Parser) error {
		p.metrics = enabled
		return nil
	}
}
