package scancode

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scancode/internal/testutil"
	"github.com/MeKo-Tech/scancode/pkg/barcode"
	"github.com/MeKo-Tech/scancode/pkg/code128"
	"github.com/MeKo-Tech/scancode/pkg/hibc"
)

func TestParse_Corpus(t *testing.T) {
	corpus := testutil.LoadCorpus(t, "corpus")
	for _, c := range corpus.Cases {
		t.Run(c.Name, func(t *testing.T) {
			b, feedback, ok := TryParse(c.Input)
			if c.Format == "" {
				assert.False(t, ok)
				assert.Nil(t, b)
				assert.Contains(t, feedback, c.Error)
				return
			}
			require.True(t, ok, feedback)
			assert.Empty(t, feedback)
			assert.Equal(t, c.Format, b.Type().String())

			pc, err := b.ProductCode()
			require.NoError(t, err)
			require.NotNil(t, pc)
			assert.Equal(t, c.ProductCode, pc.Code())

			assertString(t, c.Batch, b.BatchNumber)
			assertString(t, c.Serial, b.SerialNumber)
			assertDate(t, c.Expiration, b.ExpirationDate)
			assertDate(t, c.Production, b.ProductionDate)
		})
	}
}

func assertString(t *testing.T, want string, get func() (string, error)) {
	t.Helper()
	got, err := get()
	if errors.Is(err, barcode.ErrUnusedField) {
		assert.Empty(t, want)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func assertDate(t *testing.T, want string, get func() (*barcode.DateTime, error)) {
	t.Helper()
	got, err := get()
	if errors.Is(err, barcode.ErrUnusedField) {
		assert.Empty(t, want)
		return
	}
	require.NoError(t, err)
	if want == "" {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.Equal(t, want, got.String())
}

func TestTryParse_Feedback(t *testing.T) {
	b, feedback, ok := TryParse("not a barcode")
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.Equal(t, "Failed to parse barcode : no parser could accept barcode 'not a barcode'.", feedback)
}

func TestTryParse_Blank(t *testing.T) {
	for _, s := range []string{"", "  "} {
		b, feedback, ok := TryParse(s)
		assert.False(t, ok)
		assert.Nil(t, b)
		assert.Empty(t, feedback)

		b, err := Parse(s)
		assert.NoError(t, err)
		assert.Nil(t, b)
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("]C3ABC")
	require.Error(t, err)
	assert.True(t, IsNoCandidate(err))
	assert.True(t, errors.Is(err, barcode.ErrNotImplemented))

	var nc *NoCandidateError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "]C3ABC", nc.Input)

	_, err = Parse("]Z0ignored")
	require.Error(t, err)
	assert.True(t, IsNoCandidate(err))
	assert.False(t, errors.Is(err, barcode.ErrNotImplemented))
}

func TestParse_DispatchOrder(t *testing.T) {
	// ]C0 is offered to HIBC before Code128.
	b, err := Parse("]C0+A999123457")
	require.NoError(t, err)
	assert.Equal(t, barcode.TypeHIBC, b.Type())

	b, err = Parse("]C0A999")
	require.NoError(t, err)
	assert.Equal(t, barcode.TypeCode128, b.Type())
}

func TestWithFormats(t *testing.T) {
	p, err := New(WithFormats(barcode.TypeGS1, barcode.TypeEAN))
	require.NoError(t, err)
	assert.Equal(t, []barcode.Type{barcode.TypeEAN, barcode.TypeGS1}, p.Formats())

	_, err = p.Parse("+A999123457")
	assert.True(t, IsNoCandidate(err))

	b, err := p.Parse("59012344")
	require.NoError(t, err)
	assert.Equal(t, barcode.TypeEAN, b.Type())

	_, err = New(WithFormats(barcode.TypeUnknown))
	assert.ErrorContains(t, err, "unsupported format Unknown")
}

func TestFormats_Default(t *testing.T) {
	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, []barcode.Type{
		barcode.TypePPN, barcode.TypeHIBC, barcode.TypeEAN, barcode.TypeMSI,
		barcode.TypeCode39, barcode.TypeCode128, barcode.TypeGS1128, barcode.TypeGS1,
	}, p.Formats())
}

func TestWithNormalization(t *testing.T) {
	raw := "　５９０１２３４４　"

	_, err := Parse(raw)
	assert.Error(t, err)

	p, err := New(WithNormalization("NFKC", true))
	require.NoError(t, err)
	b, err := p.Parse(raw)
	require.NoError(t, err)
	pc, _ := b.ProductCode()
	assert.Equal(t, "59012344", pc.Code())

	_, err = New(WithNormalization("NFQ", false))
	assert.ErrorContains(t, err, "invalid parser option")
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := New(WithLogger(logger))
	require.NoError(t, err)
	_, _, ok := p.TryParse("hello")
	assert.False(t, ok)

	out := buf.String()
	assert.Contains(t, out, "Format rejected barcode")
	assert.Contains(t, out, "format=HIBC")
	assert.Contains(t, out, "No format accepted barcode")

	_, err = New(WithLogger(nil))
	assert.Error(t, err)
}

func TestWithMetrics(t *testing.T) {
	p, err := New(WithMetrics(true))
	require.NoError(t, err)

	before := counterValue(t, "scancode_parse_total", map[string]string{"outcome": "success"})
	_, err = p.Parse("]E04006381333931")
	require.NoError(t, err)
	after := counterValue(t, "scancode_parse_total", map[string]string{"outcome": "success"})
	assert.InDelta(t, 1, after-before, 1e-9)

	attempts := counterValue(t, "scancode_parse_attempts_total", map[string]string{"format": "EAN", "outcome": "success"})
	assert.GreaterOrEqual(t, attempts, 1.0)
}

func counterValue(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestBuild(t *testing.T) {
	out, err := Build(nil)
	require.NoError(t, err)
	assert.Empty(t, out)

	b, err := Parse("]C2PALLET 42")
	require.NoError(t, err)
	out, err = Build(b)
	require.NoError(t, err)
	assert.Equal(t, "]C2PALLET 42", out)

	c, err := code128.New("")
	require.NoError(t, err)
	pc, err := barcode.NewCode128("XYZ")
	require.NoError(t, err)
	require.NoError(t, c.SetProductCode(pc))
	out, err = Build(c)
	require.NoError(t, err)
	assert.Equal(t, "]C0XYZ", out)
}

func TestBuild_ErrorsAreReturned(t *testing.T) {
	h := hibc.New()
	_, err := Build(h)
	assert.ErrorContains(t, err, "are required")
}

func TestParseBuild_RoundTrip(t *testing.T) {
	corpus := testutil.LoadCorpus(t, "corpus")
	for _, c := range corpus.Cases {
		if c.Format == "" {
			continue
		}
		t.Run(c.Name, func(t *testing.T) {
			b, err := Parse(c.Input)
			require.NoError(t, err)
			out, err := Build(b)
			require.NoError(t, err)

			again, err := Parse(out)
			require.NoError(t, err, "rebuilt payload %q", out)
			assert.Equal(t, b.Type(), again.Type())
			want, _ := b.ProductCode()
			got, _ := again.ProductCode()
			assert.Equal(t, want.Code(), got.Code())
		})
	}
}

func TestParser_Concurrent(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	inputs := []string{"]E04006381333931", "+A999123457", "]M012344", "]A1CODE39W"}
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			_, _, ok := p.TryParse(s)
			assert.True(t, ok, s)
		}(inputs[i%len(inputs)])
	}
	wg.Wait()
}

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scancode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level: warn
parser:
  formats: [hibc]
  normalize: NFKC
  trim_space: true
`), 0o600))

	p, err := NewFromConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []barcode.Type{barcode.TypeHIBC}, p.Formats())

	b, err := p.Parse(" ＋A999123457 ")
	require.NoError(t, err)
	assert.Equal(t, barcode.TypeHIBC, b.Type())

	_, err = p.Parse("59012344")
	assert.True(t, IsNoCandidate(err))

	_, err = NewFromConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to load configuration")
}
