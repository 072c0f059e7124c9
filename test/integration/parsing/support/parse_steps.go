package support

import (
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/MeKo-Tech/scancode/pkg/barcode"
)

// iParse runs TryParse and Parse on the expanded input.
func (testCtx *TestContext) iParse(input string) error {
	testCtx.LastInput = expand(input)
	testCtx.LastBarcode, testCtx.LastFeedback, testCtx.LastOK = testCtx.Parser.TryParse(testCtx.LastInput)
	_, testCtx.LastError = testCtx.Parser.Parse(testCtx.LastInput)
	return nil
}

func (testCtx *TestContext) parsingShouldSucceed() error {
	if !testCtx.LastOK {
		return fmt.Errorf("expected %q to parse, got feedback: %s", testCtx.LastInput, testCtx.LastFeedback)
	}
	return nil
}

func (testCtx *TestContext) parsingShouldFail() error {
	if testCtx.LastOK {
		return fmt.Errorf("expected %q to fail, parsed as %s", testCtx.LastInput, testCtx.LastBarcode.Type())
	}
	return nil
}

func (testCtx *TestContext) theFeedbackShouldBe(want string) error {
	if testCtx.LastFeedback != expand(want) {
		return fmt.Errorf("expected feedback %q, got %q", want, testCtx.LastFeedback)
	}
	return nil
}

// theErrorShouldMention checks the error returned by Parse.
func (testCtx *TestContext) theErrorShouldMention(substr string) error {
	if testCtx.LastError == nil {
		return fmt.Errorf("expected an error mentioning %q", substr)
	}
	if !strings.Contains(testCtx.LastError.Error(), substr) {
		return fmt.Errorf("expected error to mention %q, got: %v", substr, testCtx.LastError)
	}
	return nil
}

func (testCtx *TestContext) barcodeOrError() (barcode.Barcode, error) {
	if testCtx.LastBarcode == nil {
		return nil, fmt.Errorf("no barcode was parsed from %q: %s", testCtx.LastInput, testCtx.LastFeedback)
	}
	return testCtx.LastBarcode, nil
}

func (testCtx *TestContext) theFormatShouldBe(want string) error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	if got := b.Type().String(); got != want {
		return fmt.Errorf("expected format %s, got %s", want, got)
	}
	return nil
}

func (testCtx *TestContext) theProductCodeShouldBe(want string) error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	pc, err := b.ProductCode()
	if err != nil {
		return err
	}
	if pc == nil || pc.Code() != want {
		return fmt.Errorf("expected product code %q, got %v", want, pc)
	}
	return nil
}

func (testCtx *TestContext) theBatchNumberShouldBe(want string) error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	return compareString("batch number", want, b.BatchNumber)
}

func (testCtx *TestContext) theSerialNumberShouldBe(want string) error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	return compareString("serial number", want, b.SerialNumber)
}

func (testCtx *TestContext) theExpirationDateShouldBe(want string) error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	return compareDate("expiration date", want, b.ExpirationDate)
}

func (testCtx *TestContext) theProductionDateShouldBe(want string) error {
	b, err := testCtx.barcodeOrError()
	if err != nil {
		return err
	}
	return compareDate("production date", want, b.ProductionDate)
}

func compareString(name, want string, get func() (string, error)) error {
	got, err := get()
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected %s %q, got %q", name, want, got)
	}
	return nil
}

func compareDate(name, want string, get func() (*barcode.DateTime, error)) error {
	got, err := get()
	if err != nil {
		return err
	}
	if got == nil {
		return fmt.Errorf("expected %s %s, got none", name, want)
	}
	if got.String() != want {
		return fmt.Errorf("expected %s %s, got %s", name, want, got.String())
	}
	return nil
}

// RegisterParseSteps registers parse steps.
func (testCtx *TestContext) RegisterParseSteps(sc *godog.ScenarioContext) {
	sc.Step(`^I parse "([^"]*)"$`, testCtx.iParse)
	sc.Step(`^parsing should succeed$`, testCtx.parsingShouldSucceed)
	sc.Step(`^parsing should fail$`, testCtx.parsingShouldFail)
	sc.Step(`^the feedback should be "([^"]*)"$`, testCtx.theFeedbackShouldBe)
	sc.Step(`^the error should mention "([^"]*)"$`, testCtx.theErrorShouldMention)
	sc.Step(`^the format should be "([^"]*)"$`, testCtx.theFormatShouldBe)
	sc.Step(`^the product code should be "([^"]*)"$`, testCtx.theProductCodeShouldBe)
	sc.Step(`^the batch number should be "([^"]*)"$`, testCtx.theBatchNumberShouldBe)
	sc.Step(`^the serial number should be "([^"]*)"$`, testCtx.theSerialNumberShouldBe)
	sc.Step(`^the expiration date should be "([^"]*)"$`, testCtx.theExpirationDateShouldBe)
	sc.Step(`^the production date should be "([^"]*)"$`, testCtx.theProductionDateShouldBe)
}
