package setversion

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// Manifest holds the chart manifest fields the packaging scripts care
// about. The chart publish step re-reads Chart.yaml after a bump, so this
// is what downstream tooling will see.
type Manifest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
	AppVersion  string `json:"appVersion,omitempty"`
}

// Manifest decodes the chart manifest from disk.
func (r *Release) Manifest() (*Manifest, error) {
	content, err := os.ReadFile(r.ChartFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ChartFile, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", r.ChartFile, err)
	}
	return &m, nil
}
