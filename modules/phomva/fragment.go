// Package phomva contributes the Spring15 50ns non-triggering photon MVA and
// its 90% efficiency working point.
//
// The model has two categories, configured in this strict order for both
// weight files and cuts:
//
//	0  barrel photons (EB)
//	1  endcap photons (EE)
package phomva

import (
	"context"
	"sort"

	"github.com/vk/wpreg/internal/config"
)

const (
	// ModelID is the MVA estimator class the producer instantiates.
	ModelID = "PhotonMVAEstimatorRun2Spring15NonTrig"

	// ProducerLabel publishes <label>:<ModelID>Values and
	// <label>:<ModelID>Categories for every photon.
	ProducerLabel = "photonMVAValueMapProducer"

	// WP90 keeps about 90% of signal in each category for photons with
	// pt > 30 GeV, somewhat less at lower pt.
	WP90 = "mvaPhoID-Spring15-50ns-nonTrig-V1-wp90"

	wp90Fingerprint = "e7444f7c87dec2c22be5a57c3fdd4b3fa648c14be81ccbaf6b73138714d7056b"

	idValueMaps = "photonIDValueMapProducer"
	source      = "builtin:phomva"
)

var weightFiles = []string{
	"RecoEgamma/PhotonIdentification/data/Spring15/photon_general_MVA_Spring15_50ns_EB_V1.weights.xml",
	"RecoEgamma/PhotonIdentification/data/Spring15/photon_general_MVA_Spring15_50ns_EE_V1.weights.xml",
}

// inputs are the value maps produced upstream, plus the event's pile-up
// density.
var inputs = map[string]string{
	"full5x5SigmaIEtaIEtaMap":  idValueMaps + ":phoFull5x5SigmaIEtaIEta",
	"full5x5SigmaIEtaIPhiMap":  idValueMaps + ":phoFull5x5SigmaIEtaIPhi",
	"full5x5E1x3Map":           idValueMaps + ":phoFull5x5E1x3",
	"full5x5E2x2Map":           idValueMaps + ":phoFull5x5E2x2",
	"full5x5E2x5MaxMap":        idValueMaps + ":phoFull5x5E2x5Max",
	"full5x5E5x5Map":           idValueMaps + ":phoFull5x5E5x5",
	"esEffSigmaRRMap":          idValueMaps + ":phoESEffSigmaRR",
	"phoChargedIsolation":      idValueMaps + ":phoChargedIsolation",
	"phoPhotonIsolation":       idValueMaps + ":phoPhotonIsolation",
	"phoWorstChargedIsolation": idValueMaps + ":phoWorstChargedIsolation",
	"rho":                      "fixedGridRhoFastjetAll",
}

// Fragment implements config.Fragment.
type Fragment struct{}

func (Fragment) Name() string { return "phomva" }

// Contribute adds the model and the wp90 working point.
func (Fragment) Contribute(_ context.Context, m *config.Model) error {
	required := make([]string, 0, len(inputs))
	named := make(map[string]string, len(inputs))
	for k, v := range inputs {
		required = append(required, k)
		named[k] = v
	}
	sort.Strings(required)

	err := m.AddModel(&config.ModelDefinition{
		ID:             ModelID,
		ProducerLabel:  ProducerLabel,
		Categories:     []string{"EB", "EE"},
		WeightFiles:    append([]string(nil), weightFiles...),
		RequiredInputs: required,
		Inputs:         named,
		Source:         source,
	})
	if err != nil {
		return err
	}

	m.AddWorkingPoint(&config.WorkingPoint{
		Name:        WP90,
		Model:       ModelID,
		Cuts:        map[int]float64{0: 0.284, 1: 0.432},
		Approved:    true,
		Description: "Spring15 50ns non-triggering photon MVA, ~90% signal efficiency",
		Fingerprint: wp90Fingerprint,
		Source:      source,
	})
	return nil
}
