package main

import (
	"fmt"
	"os"

	"github.com/pascalweiss/paperless-scan-adapter/pkg/setversion"
	"github.com/spf13/cobra"
)

// RootCmd is the root command for setversion
var RootCmd = &cobra.Command{
	Use:   "setversion [version]",
	Short: "Set the release version across pipeline and chart files",
	Long: `setversion synchronizes the release version across the files the build
pipeline reads it from: the TAG variable in .gitlab-ci.yml, the version and
appVersion fields in helm/Chart.yaml, and the image tag in helm/values.yaml.

Without arguments it reports the version currently embedded in the pipeline
descriptor. With a single MAJOR.MINOR.PATCH argument it writes that version
into all three files.

Example:
  setversion 0.2.1`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		pipeline, _ := cmd.Flags().GetString("pipeline")
		chart, _ := cmd.Flags().GetString("chart")
		values, _ := cmd.Flags().GetString("values")

		rel, err := setversion.NewRelease(dir,
			setversion.WithPipelineFile(pipeline),
			setversion.WithChartFile(chart),
			setversion.WithValuesFile(values),
		)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return reportVersion(rel)
		}
		return applyVersion(rel, args[0])
	},
	Version: setversion.Version,
}

func init() {
	registerFlags(RootCmd)
	RootCmd.SetVersionTemplate(`{{.Version}}
`)

	// Add example usage
	RootCmd.Example = `  # Show the current version
  setversion

  # Set a new version
  setversion 0.2.1

  # Operate on a checkout in another directory
  setversion -C ../paperless-scan-adapter 0.2.1`
}

func registerFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("dir", "C", ".", "project directory to operate on")
	cmd.Flags().String("pipeline", ".gitlab-ci.yml", "pipeline descriptor path, relative to the project directory")
	cmd.Flags().String("chart", "helm/Chart.yaml", "chart manifest path, relative to the project directory")
	cmd.Flags().String("values", "helm/values.yaml", "chart values path, relative to the project directory")
}

func reportVersion(rel *setversion.Release) error {
	current, err := rel.CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Printf("Current version: %s\n", current)
	fmt.Println("Run 'setversion MAJOR.MINOR.PATCH' to set a new version.")
	return nil
}

func applyVersion(rel *setversion.Release, version string) error {
	if err := rel.Apply(version); err != nil {
		return err
	}

	manifest, err := rel.Manifest()
	if err != nil {
		return err
	}

	fmt.Printf("Version set to %s (chart %s)\n", version, manifest.Name)
	fmt.Println("Next steps:")
	fmt.Println("  ./scripts/build_and_push.sh   # build and push the image")
	fmt.Println("  ./scripts/publish_chart.sh    # package and publish the chart")
	return nil
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
