/*
Package setversion updates the release version embedded in the project's
build and deployment files so that the CI pipeline, the Helm chart and the
image tag all agree on a single version number.

A version bump touches three files:

  - the pipeline descriptor (.gitlab-ci.yml), whose TAG variable is the
    source of truth for the current version
  - the chart manifest (helm/Chart.yaml), version and appVersion fields
  - the chart values (helm/values.yaml), the image tag field

Basic usage:

	rel, err := setversion.NewRelease(".")
	if err != nil {
		log.Fatal(err)
	}

	current, err := rel.CurrentVersion()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("current:", current)

	if err := rel.Apply("0.2.1"); err != nil {
		log.Fatal(err)
	}

Each file is rewritten as a whole: the targeted field is replaced in
memory, the result is checked to still be valid YAML, and the file is then
swapped in atomically via a temporary file. Everything outside the
targeted field is preserved byte for byte. Files are patched in a fixed
order (pipeline, chart manifest, chart values) and the first failure stops
the run; files patched earlier in the same run stay patched.

Version strings must have the exact MAJOR.MINOR.PATCH shape. No "v"
prefix, prerelease or build metadata suffixes are accepted.

The package performs no locking. Concurrent invocations against the same
working tree can race and corrupt files; it is meant for a single operator
or CI step performing one bump at a time.
*/
package setversion
