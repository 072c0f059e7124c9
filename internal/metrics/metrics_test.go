package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/scancode/internal/version"
)

func TestRecordAttempt(t *testing.T) {
	before := testutil.ToFloat64(parseAttemptsTotal.WithLabelValues("HIBC", OutcomeFailure))
	RecordAttempt("HIBC", false)
	RecordAttempt("HIBC", false)
	after := testutil.ToFloat64(parseAttemptsTotal.WithLabelValues("HIBC", OutcomeFailure))
	assert.InDelta(t, 2, after-before, 1e-9)
}

func TestRecordParse(t *testing.T) {
	before := testutil.ToFloat64(parseTotal.WithLabelValues(OutcomeSuccess))
	RecordParse(OutcomeSuccess, 50*time.Microsecond)
	after := testutil.ToFloat64(parseTotal.WithLabelValues(OutcomeSuccess))
	assert.InDelta(t, 1, after-before, 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(parseDuration))
}

func TestRecordBuild(t *testing.T) {
	okBefore := testutil.ToFloat64(buildTotal.WithLabelValues("EAN", OutcomeSuccess))
	failBefore := testutil.ToFloat64(buildTotal.WithLabelValues("EAN", OutcomeFailure))

	RecordBuild("EAN", nil)
	RecordBuild("EAN", errors.New("boom"))

	assert.InDelta(t, 1, testutil.ToFloat64(buildTotal.WithLabelValues("EAN", OutcomeSuccess))-okBefore, 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(buildTotal.WithLabelValues("EAN", OutcomeFailure))-failBefore, 1e-9)
}

func TestBuildInfo(t *testing.T) {
	require.Equal(t, 1, testutil.CollectAndCount(buildInfo))
	assert.InDelta(t, 1, testutil.ToFloat64(buildInfo.WithLabelValues(version.Version, version.GitCommit)), 1e-9)
}
