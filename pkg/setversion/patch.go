package setversion

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Regular expressions locating the version fields in the target files.
// All replacements are first-occurrence; the field regexes are anchored to
// line starts so values inside comments or nested blocks stay untouched.
var (
	// Matches TAG: 1.2.3 or TAG: "1.2.3", keeping key and separator in group 1
	pipelineTagRegex = regexp.MustCompile(`(?m)^(\s*TAG\s*:\s*)"?[0-9]+\.[0-9]+\.[0-9]+"?`)

	// Matches the top-level version field of a chart manifest
	chartVersionRegex = regexp.MustCompile(`(?m)^version:[^\n]*`)

	// Matches a quoted appVersion field
	chartAppVersionQuotedRegex = regexp.MustCompile(`(?m)^appVersion:\s*"[^"\n]*"[ \t]*`)

	// Matches an appVersion field of any value shape
	chartAppVersionRegex = regexp.MustCompile(`(?m)^appVersion:[^\n]*`)

	// Matches a tag field at any indentation level, keeping the indentation in group 1
	valuesTagRegex = regexp.MustCompile(`(?m)^([ \t]*)tag:[^\n]*`)
)

// patchFunc rewrites the version field of one file's content in memory.
type patchFunc func(content []byte, version string) ([]byte, error)

// patchPipeline replaces the first TAG entry with the new version in
// double quotes, regardless of previous quoting.
func patchPipeline(content []byte, version string) ([]byte, error) {
	loc := pipelineTagRegex.FindSubmatchIndex(content)
	if loc == nil {
		return nil, fmt.Errorf("%w: TAG", ErrFieldNotFound)
	}
	repl := append([]byte{}, content[loc[2]:loc[3]]...)
	repl = append(repl, `"`+version+`"`...)
	return splice(content, loc[0], loc[1], repl), nil
}

// patchChart rewrites the version and appVersion fields of a chart
// manifest. version is required and written bare; appVersion is written
// quoted, preferring a quoted match so unrelated line content is never
// clobbered, and is appended when the manifest has no appVersion at all.
func patchChart(content []byte, version string) ([]byte, error) {
	out, n := replaceFirst(content, chartVersionRegex, []byte("version: "+version))
	if n == 0 {
		return nil, fmt.Errorf("%w: version", ErrFieldNotFound)
	}

	quoted := []byte(`appVersion: "` + version + `"`)
	out, n = replaceFirst(out, chartAppVersionQuotedRegex, quoted)
	if n == 0 {
		out, n = replaceFirst(out, chartAppVersionRegex, quoted)
	}
	if n == 0 {
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		out = append(out, quoted...)
		out = append(out, '\n')
	}
	return out, nil
}

// patchValues replaces the first tag entry with the new version in double
// quotes, preserving the line's indentation.
func patchValues(content []byte, version string) ([]byte, error) {
	loc := valuesTagRegex.FindSubmatchIndex(content)
	if loc == nil {
		return nil, fmt.Errorf("%w: tag", ErrFieldNotFound)
	}
	repl := append([]byte{}, content[loc[2]:loc[3]]...)
	repl = append(repl, `tag: "`+version+`"`...)
	return splice(content, loc[0], loc[1], repl), nil
}

// replaceFirst replaces the first match of re in content with repl and
// reports how many replacements were made (0 or 1).
func replaceFirst(content []byte, re *regexp.Regexp, repl []byte) ([]byte, int) {
	loc := re.FindIndex(content)
	if loc == nil {
		return content, 0
	}
	return splice(content, loc[0], loc[1], repl), 1
}

// splice returns content with the byte range [start, end) replaced by repl.
func splice(content []byte, start, end int, repl []byte) []byte {
	out := make([]byte, 0, len(content)-(end-start)+len(repl))
	out = append(out, content[:start]...)
	out = append(out, repl...)
	out = append(out, content[end:]...)
	return out
}

// patchFile applies a patchFunc to the file at path. The file is read
// whole, patched in memory, checked to still parse as YAML and then
// replaced atomically. On any error the file on disk is left unmodified.
func patchFile(path, version string, apply patchFunc) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	patched, err := apply(content, version)
	if err != nil {
		return fmt.Errorf("patching %s: %w", path, err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(patched, &node); err != nil {
		return fmt.Errorf("patched %s is not valid YAML: %w", path, err)
	}

	return writeFileAtomic(path, patched)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so a failed write never leaves a half-written target.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
