package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"procure-service/internal/procure/model"
)

func TestRecordRun(t *testing.T) {
	okBefore := testutil.ToFloat64(RunsTotal.WithLabelValues("test", "ok"))
	fuzzyBefore := testutil.ToFloat64(LinesResolved.WithLabelValues(string(model.MethodFuzzy)))
	noneBefore := testutil.ToFloat64(LinesResolved.WithLabelValues(string(model.MethodNone)))
	warnBefore := testutil.ToFloat64(WarningsTotal.WithLabelValues(model.WarnUnresolved))

	RecordRun("test", model.Result{
		Summary:  model.Summary{PoLines: 5, DictionaryHits: 1, FuzzyHits: 3},
		Warnings: []model.Warning{{Code: model.WarnUnresolved, Count: 1}},
	}, 10*time.Millisecond)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(RunsTotal.WithLabelValues("test", "ok")))
	assert.Equal(t, fuzzyBefore+3, testutil.ToFloat64(LinesResolved.WithLabelValues(string(model.MethodFuzzy))))
	assert.Equal(t, noneBefore+1, testutil.ToFloat64(LinesResolved.WithLabelValues(string(model.MethodNone))))
	assert.Equal(t, warnBefore+1, testutil.ToFloat64(WarningsTotal.WithLabelValues(model.WarnUnresolved)))
}

func TestRecordFailure(t *testing.T) {
	before := testutil.ToFloat64(RunsTotal.WithLabelValues("test", "error"))
	RecordFailure("test", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(RunsTotal.WithLabelValues("test", "error")))
}
