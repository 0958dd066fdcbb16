package selection

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wpreg/internal/cuts"
	"github.com/vk/wpreg/internal/workpoint"
	"github.com/vk/wpreg/internal/wperr"
)

func newWP90(t *testing.T) *workpoint.Definition {
	t.Helper()
	table, err := cuts.New(map[int]float64{0: 0.284, 1: 0.432})
	require.NoError(t, err)
	def, err := workpoint.New("wp90", "p:Values", "p:Categories", table, workpoint.WithApproval(true))
	require.NoError(t, err)
	return def
}

func TestBuildOrdersRecordsByCategory(t *testing.T) {
	records, err := Build(newWP90(t))
	require.NoError(t, err)

	want := []CutRecord{
		{Category: 0, Threshold: 0.284, ScoreSource: "p:Values", CategorySource: "p:Categories"},
		{Category: 1, Threshold: 0.432, ScoreSource: "p:Values", CategorySource: "p:Categories"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("Build() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	def := newWP90(t)
	first, err := Build(def)
	require.NoError(t, err)
	second, err := Build(def)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildConfigCarriesIdentity(t *testing.T) {
	def := newWP90(t)
	cfg, err := BuildConfig(def)
	require.NoError(t, err)

	assert.Equal(t, "wp90", cfg.Name)
	assert.Equal(t, def.Fingerprint(), cfg.Fingerprint)
	assert.Equal(t, "p:Values", cfg.ScoreSource)
	assert.Equal(t, "p:Categories", cfg.CategorySource)
	assert.True(t, cfg.Approved)
	assert.Len(t, cfg.Cuts, 2)
}

func TestEvaluatorPass(t *testing.T) {
	records, err := Build(newWP90(t))
	require.NoError(t, err)
	eval, err := NewEvaluator(records)
	require.NoError(t, err)

	testCases := []struct {
		name     string
		score    float64
		category int
		want     bool
	}{
		{name: "barrel above cut", score: 0.3, category: 0, want: true},
		{name: "barrel on cut", score: 0.284, category: 0, want: false},
		{name: "endcap below its cut but above barrel cut", score: 0.3, category: 1, want: false},
		{name: "endcap above cut", score: 0.9, category: 1, want: true},
		{name: "NaN score", score: math.NaN(), category: 0, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := eval.Pass(tc.score, tc.category)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err = eval.Pass(0.5, 2)
	require.ErrorIs(t, err, wperr.ErrCategoryOutOfRange)
}

func TestNewEvaluatorRejectsBrokenRecords(t *testing.T) {
	_, err := NewEvaluator([]CutRecord{{Category: 0}, {Category: 0}})
	require.ErrorIs(t, err, wperr.ErrMalformedCutTable)

	_, err = NewEvaluator([]CutRecord{{Category: 1}})
	require.ErrorIs(t, err, wperr.ErrMalformedCutTable)
}
