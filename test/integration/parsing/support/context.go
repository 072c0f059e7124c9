// Package support holds the godog step definitions of the parsing feature
// suite.
package support

import (
	"strings"

	"github.com/MeKo-Tech/scancode"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// TestContext holds the state of one scenario.
type TestContext struct {
	Parser *scancode.Parser

	// Parse state
	LastInput    string
	LastBarcode  barcode.Barcode
	LastFeedback string
	LastOK       bool
	LastError    error

	// Build state
	LastPayload    string
	LastBuildError error

	// Dispatch state
	LastCandidates []barcode.Type
	LastIdentifier barcode.SymbologyIdentifier
	LastDispatch   error
}

// NewTestContext returns a context using a parser that tries every format.
func NewTestContext() *TestContext {
	p, err := scancode.New()
	if err != nil {
		panic(err)
	}
	return &TestContext{Parser: p}
}

// controlNames lets feature files spell out the framing characters that
// cannot be written in Gherkin strings.
var controlNames = strings.NewReplacer(
	"<GS>", "\x1d",
	"<RS>", "\x1e",
	"<EOT>", "\x04",
)

// expand replaces control character placeholders in s.
func expand(s string) string {
	return controlNames.Replace(s)
}
