package app

import (
	"github.com/vk/wpreg/internal/config"
	"github.com/vk/wpreg/modules/phomva"
)

// coreFragments is the definitive list of configuration fragments compiled
// into the binary.
var coreFragments = []config.Fragment{
	phomva.Fragment{},
}
