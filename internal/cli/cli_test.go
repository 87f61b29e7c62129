package cli

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/placeviz/placeviz/pkg/errors"
)

func TestRootCommandSubcommands(t *testing.T) {
	c, _ := testCLI(t)
	root := c.RootCommand()

	var got []string
	for _, cmd := range root.Commands() {
		got = append(got, cmd.Name())
	}
	sort.Strings(got)

	for _, want := range []string{"cache", "completion", "info", "nets", "pick", "render", "step"} {
		if i := sort.SearchStrings(got, want); i == len(got) || got[i] != want {
			t.Errorf("subcommand %q not registered (have %v)", want, got)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default single", "", []string{"svg"}, map[string]string{"svg": "runs/iter1.svg"}},
		{"explicit single", "out/a.png", []string{"png"}, map[string]string{"png": "out/a.png"}},
		{"stdout single", "-", []string{"txt"}, map[string]string{"txt": "-"}},
		{"default multiple", "", []string{"svg", "json"}, map[string]string{
			"svg": "runs/iter1.svg", "json": "runs/iter1.json",
		}},
		{"base multiple", "out/frame.svg", []string{"svg", "pdf"}, map[string]string{
			"svg": "out/frame.svg", "pdf": "out/frame.pdf",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths("runs/iter1", tt.output, tt.formats)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("outputPaths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := map[string]string{
		"iter42.json":          "iter42",
		"runs/iter42.json":     "runs/iter42",
		"runs/v1.2/frame.json": "runs/v1.2/frame",
		"noext":                "noext",
	}
	for in, want := range tests {
		if got := basePath(in); got != want {
			t.Errorf("basePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteArtifactsStdout(t *testing.T) {
	c, out := testCLI(t)

	paths, err := writeArtifacts(c.Out, artifactWriteParams{
		artifacts: map[string][]byte{"txt": []byte("grid")},
		formats:   []string{"txt"},
		base:      "unused",
		output:    stdoutPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != stdoutPath {
		t.Errorf("paths = %v, want [-]", paths)
	}
	if out.String() != "grid" {
		t.Errorf("stdout = %q, want %q", out.String(), "grid")
	}

	_, err = writeArtifacts(c.Out, artifactWriteParams{
		artifacts: map[string][]byte{"svg": nil, "txt": nil},
		formats:   []string{"svg", "txt"},
		output:    stdoutPath,
	})
	if err == nil {
		t.Error("writing two formats to stdout should fail")
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeSnapshot(t, dir)

	c, out := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "svg,json,txt", "--pick", "50,50", "--config", writeConfig(t, dir)})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, ext := range []string{"svg", "json", "txt"} {
		path := filepath.Join(dir, "iter1_overlay."+ext)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing %s output: %v", ext, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s output is empty", ext)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "iter1_overlay.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"bins"`) {
		t.Error("config draw_bins = true should add the bins layer")
	}
	if strings.Contains(string(data), `"forces"`) {
		t.Error("config force_layer = never should drop the forces layer")
	}
	if !strings.Contains(out.String(), "instance u1") {
		t.Errorf("output does not report the selection:\n%s", out.String())
	}
}

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "placeviz.toml")
	cfg := "[overlay]\ndraw_bins = true\nforce_layer = \"never\"\n"
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommandStdout(t *testing.T) {
	input := writeSnapshot(t, t.TempDir())

	c, out := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"render", input, "-f", "txt", "-o", "-", "--cols", "20", "--rows", "10"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(out.String(), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != 20 {
			t.Errorf("line %d has %d columns, want 20", i, n)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	input := writeSnapshot(t, t.TempDir())

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", input, "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad pick", []string{"render", input, "--pick", "abc"}, errors.ErrCodeInvalidPoint},
		{"bad force layer", []string{"render", input, "--force-layer", "sometimes"}, errors.ErrCodeInvalidInput},
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.json")}, errors.ErrCodeFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI(t)
			root := c.RootCommand()
			root.SilenceErrors = true
			root.SetArgs(tt.args)
			err := root.ExecuteContext(context.Background())
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestPickCommand(t *testing.T) {
	input := writeSnapshot(t, t.TempDir())

	tests := []struct {
		point string
		layer string
		want  []string
	}{
		{"50,50", "", []string{"instance", "u1", "NAND2"}},
		{"20,20", "", []string{"internal"}},
		{"90,90", "", []string{"none", "nothing selected"}},
		{"50,50", "metal2", []string{"none"}},
	}

	for _, tt := range tests {
		t.Run(tt.point+tt.layer, func(t *testing.T) {
			c, out := testCLI(t)
			root := c.RootCommand()
			args := []string{"pick", input, tt.point}
			if tt.layer != "" {
				args = append(args, "--layer", tt.layer)
			}
			root.SetArgs(args)
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("pick: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("output missing %q:\n%s", w, out.String())
				}
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	s := summarize(testDesign(t))

	if s.instances != 1 || s.fillers != 1 {
		t.Errorf("cells = %d instances, %d fillers, want 1, 1", s.instances, s.fillers)
	}
	if s.nets != 1 || s.pins != 2 || s.unattached != 0 {
		t.Errorf("nets = %d, pins = %d (%d unattached), want 1, 2 (0)", s.nets, s.pins, s.unattached)
	}
	if s.minDensity != 0.5 || s.maxDensity != 1.2 {
		t.Errorf("density = %v..%v, want 0.5..1.2", s.minDensity, s.maxDensity)
	}
	if s.maxForce != 2 {
		t.Errorf("maxForce = %v, want 2", s.maxForce)
	}
	if s.region != "(0, 0) - (100, 100)" {
		t.Errorf("region = %q", s.region)
	}
}

func TestInfoCommand(t *testing.T) {
	input := writeSnapshot(t, t.TempDir())

	c, out := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"info", input})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	for _, want := range []string{"Property", "instances", "max arrow"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("info output missing %q", want)
		}
	}
}

func TestNetsCommand(t *testing.T) {
	input := writeSnapshot(t, t.TempDir())

	c, out := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"nets", input, "u1", "-o", "-"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("nets: %v", err)
	}
	dot := out.String()
	if !strings.Contains(dot, "digraph") && !strings.Contains(dot, "graph") {
		t.Errorf("output is not DOT:\n%s", dot)
	}
	if !strings.Contains(dot, "fill0") {
		t.Errorf("DOT missing the connected filler:\n%s", dot)
	}

	c, _ = testCLI(t)
	root = c.RootCommand()
	root.SilenceErrors = true
	root.SetArgs([]string{"nets", input, "u99"})
	if err := root.ExecuteContext(context.Background()); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown cell error = %v, want %s", err, errors.ErrCodeNotFound)
	}
}

func TestCompletionCommand(t *testing.T) {
	c, out := testCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"completion", "bash"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "placeviz") {
		t.Error("bash completion does not mention placeviz")
	}
}

func TestRenderCommandCaches(t *testing.T) {
	input := writeSnapshot(t, t.TempDir())
	c, out := testCLI(t)

	for i := range 2 {
		out.Reset()
		root := c.RootCommand()
		root.SetArgs([]string{"render", input, "-f", "svg,txt"})
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("render #%d: %v", i+1, err)
		}
	}
	if !strings.Contains(out.String(), "2 cached") {
		t.Errorf("second render did not use the cache:\n%s", out.String())
	}

	root := c.RootCommand()
	out.Reset()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Cleared 2 cached artifacts") {
		t.Errorf("cache clear output:\n%s", out.String())
	}
}
