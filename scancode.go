// Package scancode parses scanned barcode payloads without knowing their
// format in advance and builds payloads from barcode values.
//
// The AIM symbology identifier in front of a payload narrows the formats
// that are tried; the first format that accepts the payload wins. Payloads
// without an identifier are offered to every format in registry order, with
// the permissive GS1 grammars last.
package scancode

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/MeKo-Tech/scancode/internal/common"
	"github.com/MeKo-Tech/scancode/internal/config"
	"github.com/MeKo-Tech/scancode/internal/metrics"
	"github.com/MeKo-Tech/scancode/internal/textnorm"
	"github.com/MeKo-Tech/scancode/pkg/aim"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
	"github.com/MeKo-Tech/scancode/pkg/registry"
)

// NoCandidateError is returned by Parse when no format accepts a payload.
// Cause is set when the symbology identifier itself was rejected.
type NoCandidateError struct {
	Input string
	Cause error
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("Failed to parse barcode : %v '%s'.", barcode.ErrNoCandidate, e.Input)
}

func (e *NoCandidateError) Is(target error) bool { return target == barcode.ErrNoCandidate }

func (e *NoCandidateError) Unwrap() error { return e.Cause }

// Parser dispatches payloads to the format parsers. It is immutable after
// New and safe for concurrent use.
type Parser struct {
	formats    []barcode.Type
	normalizer textnorm.Normalizer
	logger     *slog.Logger
	metrics    bool
}

// New returns a Parser trying every format, without normalization or
// metrics, logging to slog.Default.
func New(opts ...Option) (*Parser, error) {
	p := &Parser{}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid parser option: %w", err)
		}
	}
	return p, nil
}

// NewFromConfig loads the configuration file at path, or searches the
// default locations when path is empty, and returns a Parser configured
// from it. Options are applied after the configuration.
func NewFromConfig(path string, opts ...Option) (*Parser, error) {
	cfg, err := config.NewLoader().LoadWithFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	base := []Option{
		WithFormats(cfg.FormatTypes()...),
		WithNormalization(cfg.Parser.Normalize, cfg.Parser.TrimSpace),
		WithMetrics(cfg.Metrics.Enabled),
		WithLogger(logger),
	}
	return New(append(base, opts...)...)
}

// Formats returns the formats the parser tries, in priority order.
func (p *Parser) Formats() []barcode.Type {
	if len(p.formats) == 0 {
		return registry.Types()
	}
	out := make([]barcode.Type, 0, len(p.formats))
	for _, t := range registry.Types() {
		if slices.Contains(p.formats, t) {
			out = append(out, t)
		}
	}
	return out
}

func (p *Parser) log() *slog.Logger {
	if p.logger == nil {
		return slog.Default()
	}
	return p.logger
}

func (p *Parser) allowed(entries []registry.Entry) []registry.Entry {
	if len(p.formats) == 0 {
		return entries
	}
	return slices.DeleteFunc(entries, func(e registry.Entry) bool {
		return !slices.Contains(p.formats, e.Type)
	})
}

// TryParse returns the barcode of the first format accepting s. On failure
// the feedback names the rejected input. Blank input fails without
// feedback.
func (p *Parser) TryParse(s string) (barcode.Barcode, string, bool) {
	b, err := p.Parse(s)
	if err != nil {
		return nil, err.Error(), false
	}
	if b == nil {
		return nil, "", false
	}
	return b, "", true
}

// Parse returns the barcode of the first format accepting s. Blank input
// returns nil without error. Failure returns a *NoCandidateError.
func (p *Parser) Parse(s string) (barcode.Barcode, error) {
	timer := common.NewNamedTimer("parse")
	if barcode.IsBlank(s) {
		p.recordParse(metrics.OutcomeBlank, timer)
		return nil, nil
	}
	in := p.normalizer.Apply(s)

	candidates, id, err := aim.Candidates(in)
	if err != nil {
		p.log().Debug("Symbology identifier rejected", "input", in, "error", err)
		p.recordParse(metrics.OutcomeFailure, timer)
		return nil, &NoCandidateError{Input: s, Cause: err}
	}
	candidates = p.allowed(candidates)

	for _, c := range candidates {
		b, err := c.Parse(in)
		if p.metrics {
			metrics.RecordAttempt(c.Type.String(), err == nil && b != nil)
		}
		if err != nil {
			p.log().Debug("Format rejected barcode", "format", c.Type.String(), "error", err)
			continue
		}
		if b == nil {
			continue
		}
		p.recordParse(metrics.OutcomeSuccess, timer)
		p.log().Debug("Parsed barcode", "format", b.Type().String(), "symbology", symbologyValue(id), "timer", timer)
		return b, nil
	}

	p.recordParse(metrics.OutcomeFailure, timer)
	p.log().Debug("No format accepted barcode", "input", in, "candidates", len(candidates), "timer", timer)
	return nil, &NoCandidateError{Input: s}
}

func (p *Parser) recordParse(outcome string, timer *common.Timer) {
	d := timer.Stop()
	if p.metrics {
		metrics.RecordParse(outcome, d)
	}
}

func symbologyValue(id barcode.SymbologyIdentifier) string {
	if id == nil {
		return ""
	}
	return id.Value()
}

// Build encodes b with the builder of its format. A nil barcode builds to
// the empty string. Build errors are returned unchanged.
func (p *Parser) Build(b barcode.Barcode) (string, error) {
	if b == nil {
		return "", nil
	}
	entry, ok := registry.Lookup(b.Type())
	if !ok {
		return "", fmt.Errorf("no builder for %s barcode", b.Type())
	}
	out, err := entry.Build(b)
	if p.metrics {
		metrics.RecordBuild(b.Type().String(), err)
	}
	if err != nil {
		p.log().Debug("Build failed", "format", b.Type().String(), "error", err)
		return "", err
	}
	return out, nil
}

var defaultParser = &Parser{}

// TryParse calls TryParse on a Parser trying every format.
func TryParse(s string) (barcode.Barcode, string, bool) {
	return defaultParser.TryParse(s)
}

// Parse calls Parse on a Parser trying every format.
func Parse(s string) (barcode.Barcode, error) {
	return defaultParser.Parse(s)
}

// Build calls Build on the default Parser.
func Build(b barcode.Barcode) (string, error) {
	return defaultParser.Build(b)
}

// IsNoCandidate reports whether err means no format accepted a payload.
func IsNoCandidate(err error) bool {
	return errors.Is(err, barcode.ErrNoCandidate)
}
