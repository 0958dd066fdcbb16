package phomva

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wpreg/internal/config"
	"github.com/vk/wpreg/internal/cuts"
	"github.com/vk/wpreg/internal/producer"
	"github.com/vk/wpreg/internal/workpoint"
)

func TestContribute(t *testing.T) {
	m := config.NewModel()
	require.NoError(t, Fragment{}.Contribute(context.Background(), m))

	def := m.Models[ModelID]
	require.NotNil(t, def)
	assert.Equal(t, []string{"EB", "EE"}, def.Categories)
	assert.Len(t, def.WeightFiles, 2)
	assert.Len(t, def.RequiredInputs, 11)
	assert.Equal(t, "fixedGridRhoFastjetAll", def.Inputs["rho"])

	require.Len(t, m.WorkingPoints, 1)
	wp := m.WorkingPoints[0]
	assert.Equal(t, WP90, wp.Name)
	assert.Equal(t, map[int]float64{0: 0.284, 1: 0.432}, wp.Cuts)
	assert.True(t, wp.Approved)
}

func TestContributeTwiceIsHarmless(t *testing.T) {
	m := config.NewModel()
	require.NoError(t, Fragment{}.Contribute(context.Background(), m))
	require.NoError(t, Fragment{}.Contribute(context.Background(), m))
	assert.Len(t, m.Models, 1)
	assert.Len(t, m.WorkingPoints, 2)
}

func TestPinnedFingerprintMatchesDefinition(t *testing.T) {
	table, err := cuts.FromSlice([]float64{0.284, 0.432})
	require.NoError(t, err)
	def, err := workpoint.New(WP90,
		producer.ValueMapRef(ProducerLabel, ModelID),
		producer.CategoryMapRef(ProducerLabel, ModelID),
		table)
	require.NoError(t, err)

	assert.Equal(t, wp90Fingerprint, def.Fingerprint())
}
