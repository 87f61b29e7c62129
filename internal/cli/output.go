package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for path; "-" or "" selects w.
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == "" || path == stdoutPath {
		return nopCloser{w}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath strips the extension from p: "runs/iter42.json" → "runs/iter42".
func basePath(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// fileSafe replaces the separators of hierarchical cell names.
var fileSafe = strings.NewReplacer("/", "_", "\\", "_", "[", "_", "]", "_", ".", "_")

// outputPaths decides where each format goes. With a single format an
// explicit output is used as-is; otherwise files are named base.format, with
// base taken from output when given.
func outputPaths(base, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	if output != "" && output != stdoutPath {
		base = basePath(output)
	}
	for _, f := range formats {
		paths[f] = fmt.Sprintf("%s.%s", base, f)
	}
	return paths
}

// artifactWriteParams holds parameters for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // default path without extension
	output    string
}

// writeArtifacts writes each artifact in format order and returns the
// written paths ("-" for standard output).
func writeArtifacts(w io.Writer, p artifactWriteParams) ([]string, error) {
	if p.output == stdoutPath && len(p.formats) > 1 {
		return nil, fmt.Errorf("cannot write %d formats to stdout", len(p.formats))
	}
	paths := outputPaths(p.base, p.output, p.formats)

	var written []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := paths[format]
		if err := writeFile(w, path, data); err != nil {
			return written, fmt.Errorf("write %s: %w", format, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(w io.Writer, path string, data []byte) error {
	out, err := openOutput(w, path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
