package output

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Format selects how command results are rendered.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatHuman:
		return FormatHuman, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", goerr.New("invalid output format '"+s+"': valid values are human, json, yaml",
			goerr.V("format", s))
	}
}

// Render writes v to w in the given format. Human rendering is handled by
// the typed formatters in this package; the generic path falls back to YAML,
// which reads well enough for records without a dedicated formatter.
func Render(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode JSON output")
		}
		return nil
	default:
		enc := yaml.NewEncoder(w)
		defer func() { _ = enc.Close() }()
		if err := enc.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode YAML output")
		}
		return nil
	}
}
