package setversion

import "io"

// config configures a Release, mainly the locations of the three version
// bearing files relative to the project directory.
type config struct {
	// PipelineFile is the CI pipeline descriptor (default: ".gitlab-ci.yml")
	PipelineFile string
	// ChartFile is the Helm chart manifest (default: "helm/Chart.yaml")
	ChartFile string
	// ValuesFile is the Helm chart values file (default: "helm/values.yaml")
	ValuesFile string
	// Out receives the per-file progress lines printed during Apply
	Out io.Writer
}

// defaultConfig returns the file locations used by this repository's
// standard layout.
func defaultConfig() *config {
	return &config{
		PipelineFile: ".gitlab-ci.yml",
		ChartFile:    "helm/Chart.yaml",
		ValuesFile:   "helm/values.yaml",
	}
}

// Option is a functional option for configuring a Release.
type Option func(*config)

// WithPipelineFile sets the pipeline descriptor path.
func WithPipelineFile(path string) Option {
	return func(c *config) {
		c.PipelineFile = path
	}
}

// WithChartFile sets the chart manifest path.
func WithChartFile(path string) Option {
	return func(c *config) {
		c.ChartFile = path
	}
}

// WithValuesFile sets the chart values path.
func WithValuesFile(path string) Option {
	return func(c *config) {
		c.ValuesFile = path
	}
}

// WithOutput sets the writer for progress output.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.Out = w
	}
}

// applyOptions applies the given options to the config.
func applyOptions(c *config, opts []Option) *config {
	for _, option := range opts {
		option(c)
	}
	return c
}
