package support

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/scancode"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// aParserRestrictedTo replaces the parser with one trying only the listed
// formats.
func (testCtx *TestContext) aParserRestrictedTo(list string) error {
	var types []barcode.Type
	for _, name := range strings.Split(list, ",") {
		t, ok := barcode.ParseType(name)
		if !ok {
			return fmt.Errorf("unknown format %q", name)
		}
		types = append(types, t)
	}
	p, err := scancode.New(scancode.WithFormats(types...))
	if err != nil {
		return err
	}
	testCtx.Parser = p
	return nil
}

// aParserNormalizing replaces the parser with one applying form and
// trimming white space.
func (testCtx *TestContext) aParserNormalizing(form string) error {
	p, err := scancode.New(scancode.WithNormalization(form, true))
	if err != nil {
		return err
	}
	testCtx.Parser = p
	return nil
}

// RegisterParserSteps registers parser setup steps.
func (testCtx *TestContext) RegisterParserSteps(sc *godog.ScenarioContext) {
	sc.Step(`^a parser for all formats$`, func() error { return nil })
	sc.Step(`^a parser restricted to "([^"]*)"$`, testCtx.aParserRestrictedTo)
	sc.Step(`^a parser normalizing "([^"]*)"$`, testCtx.aParserNormalizing)
}
