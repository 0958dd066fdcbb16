// Package render writes an assembly result for the external consumers: the
// score producer, the selection stage, and anyone pinning a working point
// by fingerprint.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vk/wpreg/internal/app"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatHCL}

// ParseFormat accepts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q: must be one of %v", s, Formats)
}

// Write renders res to w in the given format.
func Write(w io.Writer, format Format, res *app.Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case FormatHCL:
		return writeHCL(w, res)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
