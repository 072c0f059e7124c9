package support

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// iBuildTheBarcode builds the last parsed barcode.
func (testCtx *TestContext) iBuildTheBarcode() error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	testCtx.LastPayload, testCtx.LastBuildError = testCtx.Parser.Build(b)
	return nil
}

func (testCtx *TestContext) theBuiltPayloadShouldBe(want string) error {
	if testCtx.LastBuildError != nil {
		return fmt.Errorf("build failed: %w", testCtx.LastBuildError)
	}
	if testCtx.LastPayload != expand(want) {
		return fmt.Errorf("expected payload %q, got %q", expand(want), testCtx.LastPayload)
	}
	return nil
}

func (testCtx *TestContext) theBuiltPayloadShouldEqualTheInput() error {
	return testCtx.theBuiltPayloadShouldBe(testCtx.LastInput)
}

func (testCtx *TestContext) theBuildErrorShouldMention(substr string) error {
	if testCtx.LastBuildError == nil {
		return fmt.Errorf("expected a build error mentioning %q", substr)
	}
	if !strings.Contains(testCtx.LastBuildError.Error(), substr) {
		return fmt.Errorf("expected build error to mention %q, got: %v", substr, testCtx.LastBuildError)
	}
	return nil
}

// RegisterBuildSteps registers build steps.
func (testCtx *TestContext) RegisterBuildSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I build the barcode$`, testCtx.iBuildTheBarcode)
	sc.Step(`^the built payload should be "([^"]*)"$`, testCtx.theBuiltPayloadShouldBe)
	sc.Step(`^the built payload should equal the input$`, testCtx.theBuiltPayloadShouldEqualTheInput)
	sc.Step(`^the build error should mention "([^"]*)"$`, testCtx.theBuildErrorShouldMention)
}
