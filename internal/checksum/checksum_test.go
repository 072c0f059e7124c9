package checksum

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGTIN(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"ean13", "5420046520228", false},
		{"ean13 other", "4006381333931", false},
		{"ean8", "59012344", false},
		{"gtin14", "04150123456782", false},
		{"ean8 wrong digit", "27066028", true},
		{"ean13 wrong digit", "5420046520227", true},
		{"letters", "54200465A0228", true},
		{"single char", "5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GTIN(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGTIN_MismatchNamesBothDigits(t *testing.T) {
	err := GTIN("27066028")
	require.Error(t, err)

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "8", mismatch.Found)
	assert.Equal(t, "7", mismatch.Expected)
	assert.Contains(t, err.Error(), "Expected '7'")
}

func TestGTINDigit(t *testing.T) {
	d, err := GTINDigit("542004652022")
	require.NoError(t, err)
	assert.Equal(t, 8, d)

	d, err = GTINDigit("0415012345678")
	require.NoError(t, err)
	assert.Equal(t, 2, d)

	_, err = GTINDigit("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = GTINDigit("12345678901234")
	assert.Error(t, err)
}

func TestPPN(t *testing.T) {
	digits, err := PPNDigits("1112345678")
	require.NoError(t, err)
	assert.Equal(t, "42", digits)

	assert.NoError(t, PPN("111234567842"))
	assert.NoError(t, PPN("1103752866"))

	err = PPN("111234567843")
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "43", mismatch.Found)
	assert.Equal(t, "42", mismatch.Expected)

	_, err = PPNDigits("11a")
	assert.ErrorIs(t, err, ErrNotAlphaNumber)
}

func TestMSI(t *testing.T) {
	for _, code := range []string{"12345674", "805234", "1234567897", "12344"} {
		assert.NoError(t, MSI(code), code)
	}
	assert.Error(t, MSI("12345675"))
	assert.ErrorIs(t, MSI("12a4"), ErrNotNumeric)
}

// TestMSIDigit_WorkedExample pins the doubling order. For the data 1234 the
// reversed digits are 4 3 2 1; doubling indices 0 and 2 gives 8+3+4+1 = 16,
// so the check digit is 4 and 12344 is valid. Doubling from the check digit
// instead would weigh 12344 as 8+4+6+2+2 = 22 and expect 12343.
func TestMSIDigit_WorkedExample(t *testing.T) {
	d, err := MSIDigit("1234")
	require.NoError(t, err)
	assert.Equal(t, 4, d)

	assert.NoError(t, MSI("12344"))
	assert.Error(t, MSI("12343"))
}

func TestMod43(t *testing.T) {
	assert.Equal(t, 0, Mod43Value('0'))
	assert.Equal(t, 10, Mod43Value('A'))
	assert.Equal(t, 36, Mod43Value('-'))
	assert.Equal(t, 41, Mod43Value('+'))
	assert.Equal(t, 42, Mod43Value('%'))
	assert.Equal(t, -1, Mod43Value('a'))

	c, err := Mod43Char("CODE39")
	require.NoError(t, err)
	assert.Equal(t, byte('W'), c)

	_, err = Mod43Char("code")
	assert.ErrorIs(t, err, ErrInvalidChar)
}

func TestCode39(t *testing.T) {
	assert.NoError(t, Code39("CODE39W", false))
	assert.NoError(t, Code39("HELLO WORLD.", false))
	assert.Error(t, Code39("CODE39X", false))

	expanded, err := ExpandFullASCII("ab")
	require.NoError(t, err)
	assert.Equal(t, "+A+B", expanded)

	lower, err := Code39Char("ab", true)
	require.NoError(t, err)
	upper, err := Mod43Char("+A+B")
	require.NoError(t, err)
	assert.Equal(t, upper, lower)

	_, err = ExpandFullASCII("\xc3")
	assert.Error(t, err)
}

func TestExpandFullASCII_Table(t *testing.T) {
	tests := map[string]string{
		"\x00":  "%U",
		"\x01":  "$A",
		"\x1d":  "%C",
		"!":     "/A",
		"$":     "/D",
		"+":     "/K",
		"/":     "/O",
		":":     "/Z",
		"@":     "%V",
		"_":     "%O",
		"`":     "%W",
		"z":     "+Z",
		"\x7f":  "%T",
		"A1 -.": "A1 -.",
	}
	for in, want := range tests {
		got, err := ExpandFullASCII(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestHIBC(t *testing.T) {
	c, err := HIBCChar("+A99912345")
	require.NoError(t, err)
	assert.Equal(t, byte('7'), c)

	assert.NoError(t, HIBC("+A999123457"))
	assert.NoError(t, HIBC("+A123BJC5D6E71G"))

	err = HIBC("+A999123458")
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "8", mismatch.Found)
	assert.Equal(t, "7", mismatch.Expected)
}
