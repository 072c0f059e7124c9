package support

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/scancode/pkg/aim"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

func (testCtx *TestContext) iDispatch(input string) error {
	entries, id, err := aim.Candidates(expand(input))
	testCtx.LastCandidates = testCtx.LastCandidates[:0]
	for _, e := range entries {
		testCtx.LastCandidates = append(testCtx.LastCandidates, e.Type)
	}
	testCtx.LastIdentifier, testCtx.LastDispatch = id, err
	return nil
}

func (testCtx *TestContext) theCandidatesShouldBe(want string) error {
	names := make([]string, len(testCtx.LastCandidates))
	for i, t := range testCtx.LastCandidates {
		names[i] = t.String()
	}
	if got := strings.Join(names, ", "); got != want {
		return fmt.Errorf("expected candidates %q, got %q", want, got)
	}
	return nil
}

func (testCtx *TestContext) thereShouldBeNoCandidates() error {
	if len(testCtx.LastCandidates) != 0 {
		return fmt.Errorf("expected no candidates, got %v", testCtx.LastCandidates)
	}
	if testCtx.LastIdentifier != nil {
		return fmt.Errorf("expected no identifier, got %s", testCtx.LastIdentifier.Value())
	}
	return nil
}

func (testCtx *TestContext) theSymbologyIdentifierShouldBe(want string) error {
	if testCtx.LastIdentifier == nil {
		return fmt.Errorf("expected identifier %s, got none", want)
	}
	if got := testCtx.LastIdentifier.Value(); got != want {
		return fmt.Errorf("expected identifier %s, got %s", want, got)
	}
	return nil
}

func (testCtx *TestContext) theDispatchShouldBeNotImplemented() error {
	if !errors.Is(testCtx.LastDispatch, barcode.ErrNotImplemented) {
		return fmt.Errorf("expected a not implemented error, got %v", testCtx.LastDispatch)
	}
	return nil
}

// RegisterDispatchSteps registers symbology dispatch steps.
func (testCtx *TestContext) RegisterDispatchSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I dispatch "([^"]*)"$`, testCtx.iDispatch)
	sc.Step(`^the candidates should be "([^"]*)"$`, testCtx.theCandidatesShouldBe)
	sc.Step(`^there should be no candidates$`, testCtx.thereShouldBeNoCandidates)
	sc.Step(`^the symbology identifier should be "([^"]*)"$`, testCtx.theSymbologyIdentifierShouldBe)
	sc.Step(`^the dispatch should report a not implemented identifier$`, testCtx.theDispatchShouldBeNotImplemented)
}
