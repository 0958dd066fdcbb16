package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/wpreg/internal/app"
	"github.com/vk/wpreg/internal/producer"
	"github.com/vk/wpreg/internal/registry"
	"github.com/vk/wpreg/internal/selection"
	"gopkg.in/yaml.v3"
)

func testResult() *app.Result {
	return &app.Result{
		Producers: []*producer.Config{{
			ModelID:     "PhotonMVA",
			WeightFiles: []string{"eb.weights.xml", "ee.weights.xml"},
			NamedInputs: map[string]string{"rho": "fixedGridRhoFastjetAll"},
		}},
		Selections: []*selection.Config{{
			Name:           "wp90",
			Fingerprint:    "abc123",
			ScoreSource:    "p:PhotonMVAValues",
			CategorySource: "p:PhotonMVACategories",
			Approved:       true,
			Cuts: []selection.CutRecord{
				{Category: 0, Threshold: 0.284, ScoreSource: "p:PhotonMVAValues", CategorySource: "p:PhotonMVACategories"},
				{Category: 1, Threshold: 0.432, ScoreSource: "p:PhotonMVAValues", CategorySource: "p:PhotonMVACategories"},
			},
		}},
		Registry: []registry.Entry{{Name: "wp90", Fingerprint: "abc123"}},
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"json", "YAML", " hcl "} {
		_, err := ParseFormat(in)
		require.NoError(t, err, in)
	}
	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, testResult()))

	var decoded app.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testResult(), &decoded)
	assert.Contains(t, buf.String(), `"score_source": "p:PhotonMVAValues"`)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatYAML, testResult()))

	var decoded app.Result
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, testResult(), &decoded)
	assert.Contains(t, buf.String(), "threshold: 0.284")
}

func TestWriteHCL(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatHCL, testResult()))
	out := buf.String()

	_, diags := hclparse.NewParser().ParseHCL(buf.Bytes(), "out.hcl")
	require.False(t, diags.HasErrors(), diags.Error())

	assert.Contains(t, out, `producer "PhotonMVA" {`)
	assert.Contains(t, out, `selection "wp90" {`)
	assert.Contains(t, out, `registry_entry "wp90" {`)
	assert.Contains(t, out, "0.284")
	assert.Contains(t, out, "0.432")
	assert.Contains(t, out, `rho = "fixedGridRhoFastjetAll"`)
}

func TestWriteUnknownFormat(t *testing.T) {
	require.Error(t, Write(&bytes.Buffer{}, Format("xml"), testResult()))
}
