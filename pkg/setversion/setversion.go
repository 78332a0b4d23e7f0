package setversion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
)

// Release represents the version-bearing files of one project checkout.
// It reads the current version from the pipeline descriptor and applies a
// new version to all three target files.
type Release struct {
	// Dir is the root directory of the project
	Dir string
	// PipelineFile is the resolved path to the CI pipeline descriptor
	PipelineFile string
	// ChartFile is the resolved path to the chart manifest
	ChartFile string
	// ValuesFile is the resolved path to the chart values file
	ValuesFile string
	// options contains the release processing configuration
	options *config
}

// currentTagRegex finds the first TAG entry carrying a version-shaped
// value, with or without quotes.
var currentTagRegex = regexp.MustCompile(`TAG\s*:\s*"?([0-9]+\.[0-9]+\.[0-9]+)`)

// NewRelease creates a Release for the project rooted at dir. It validates
// the directory and resolves the target file paths from the options.
func NewRelease(dir string, opts ...Option) (*Release, error) {
	if dir == "" {
		return nil, fmt.Errorf("project directory cannot be empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid project directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path %s is not a directory", dir)
	}

	cfg := applyOptions(defaultConfig(), opts)
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	return &Release{
		Dir:          dir,
		PipelineFile: filepath.Join(dir, cfg.PipelineFile),
		ChartFile:    filepath.Join(dir, cfg.ChartFile),
		ValuesFile:   filepath.Join(dir, cfg.ValuesFile),
		options:      cfg,
	}, nil
}

// CurrentVersion extracts the version currently embedded in the pipeline
// descriptor. The pipeline descriptor is the single source of truth; the
// chart files are not consulted.
func (r *Release) CurrentVersion() (string, error) {
	content, err := os.ReadFile(r.PipelineFile)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrVersionNotFound, r.PipelineFile)
		}
		return "", fmt.Errorf("reading %s: %w", r.PipelineFile, err)
	}

	m := currentTagRegex.FindSubmatch(content)
	if m == nil {
		return "", fmt.Errorf("%w: no TAG entry in %s", ErrVersionNotFound, r.PipelineFile)
	}
	return string(m[1]), nil
}

// Apply validates version and writes it into the pipeline descriptor, the
// chart manifest and the chart values file, in that order. It stops at the
// first failing file; files patched before the failure stay patched, there
// is no cross-file rollback.
func (r *Release) Apply(version string) error {
	if err := Validate(version); err != nil {
		return err
	}

	steps := []struct {
		path  string
		field string
		apply patchFunc
	}{
		{r.PipelineFile, "TAG", patchPipeline},
		{r.ChartFile, "version, appVersion", patchChart},
		{r.ValuesFile, "tag", patchValues},
	}

	for _, step := range steps {
		fmt.Fprintf(r.out(), "Updating %s (%s)\n", step.path, step.field)
		if err := patchFile(step.path, version, step.apply); err != nil {
			return err
		}
	}
	return nil
}

func (r *Release) out() io.Writer {
	if r.options == nil || r.options.Out == nil {
		return os.Stdout
	}
	return r.options.Out
}
