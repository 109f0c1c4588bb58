package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeToolScript prints a nine-line banner, its arguments as the
// description and one option line.
const fakeToolScript = `#!/bin/sh
for i in 1 2 3 4 5 6 7 8 9; do echo "banner $i"; done
echo "args: $*"
echo
echo
echo "  -h, --help  show help"
`

// writeTool writes an executable shell script into a temp dir and returns
// its path.
func writeTool(t *testing.T, name, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestCaptureHelpAppendsHelpFlag(t *testing.T) {
	tool := writeTool(t, "fake-tool", fakeToolScript)

	out, err := captureHelp(context.Background(), tool, "--help", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), "args: --help\n")

	out, err = captureHelp(context.Background(), tool+" sub", "-h", 0)
	require.NoError(t, err)
	assert.Contains(t, string(out), "args: sub -h\n")
}

func TestCaptureHelpNonZeroExit(t *testing.T) {
	tool := writeTool(t, "failing-tool", "#!/bin/sh\necho 'unknown option' >&2\nexit 3\n")

	_, err := captureHelp(context.Background(), tool, "--help", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errCommandFailed)

	var cerr *commandError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 3, cerr.ExitCode)
	assert.Equal(t, "unknown option", cerr.Stderr)
	assert.Contains(t, err.Error(), "exit status 3")
}

func TestCaptureHelpProgramNotFound(t *testing.T) {
	_, err := captureHelp(context.Background(), "help2rst-no-such-program", "--help", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errCommandFailed)
	assert.ErrorIs(t, err, exec.ErrNotFound)
}

func TestCaptureHelpTimeout(t *testing.T) {
	tool := writeTool(t, "slow-tool", "#!/bin/sh\nexec sleep 5\n")

	start := time.Now()
	_, err := captureHelp(context.Background(), tool, "--help", 100*time.Millisecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCaptureHelpEmptyName(t *testing.T) {
	_, err := captureHelp(context.Background(), "   ", "--help", 0)
	assert.ErrorIs(t, err, errEmptyName)
}

func TestDecodeHelp(t *testing.T) {
	tests := map[string]struct {
		raw  []byte
		want string
	}{
		"plain":    {[]byte("tool\n"), "tool\n"},
		"utf8 bom": {[]byte("\xef\xbb\xbftool"), "tool"},
		"utf16le":  {[]byte("\xff\xfet\x00o\x00o\x00l\x00"), "tool"},
		"invalid":  {[]byte("a\xffb"), "a\uFFFDb"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := decodeHelp(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveOutputPath(t *testing.T) {
	assert.Equal(t, "mytool.rst", resolveOutputPath(config{Name: "mytool"}))
	assert.Equal(t, "mytool.rst", resolveOutputPath(config{Name: "mytool", Format: "rst"}))
	assert.Equal(t, "mytool.txt", resolveOutputPath(config{Name: "mytool", Format: ".txt"}))
	assert.Equal(t, "docs/out.rst", resolveOutputPath(config{Name: "mytool", Out: "docs/out.rst"}))
	assert.Equal(t, "-", resolveOutputPath(config{Name: "mytool", Out: "-"}))
}

func TestConversionFromInputFile(t *testing.T) {
	want, err := os.ReadFile(filepath.Join("testdata", "votca_property.rst"))
	require.NoError(t, err)
	target := filepath.Join(t.TempDir(), "nested", "votca_property.rst")

	c := conversion{cfg: config{
		Name:     "votca_property",
		Out:      target,
		Preamble: defaultPreamble,
		Input:    filepath.Join("testdata", "votca_property.help"),
	}}
	path, err := c.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, target, path)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestConversionFromStdin(t *testing.T) {
	var out strings.Builder
	c := conversion{
		cfg:    config{Name: "mytool", Out: "-", Input: "-"},
		stdin:  strings.NewReader("A tool.\n\n  -h, --help  show help\n"),
		stdout: &out,
	}
	_, err := c.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "mytool\n######\nA tool.\n\n**Available Options**\n::\n    -h, --help  show help\n", out.String())
}

func TestConversionRunsTool(t *testing.T) {
	tool := writeTool(t, "fake-tool", fakeToolScript)

	c := conversion{cfg: config{Name: tool, Preamble: defaultPreamble, HelpFlag: "--help"}}
	path, err := c.run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tool+".rst", path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	underline := strings.Repeat("#", len(tool))
	assert.Equal(t, tool+"\n"+underline+"\nargs: --help\n\n**Available Options**\n::\n    -h, --help  show help\n", string(got))
}

func TestConversionToolFailureWritesNothing(t *testing.T) {
	tool := writeTool(t, "failing-tool", "#!/bin/sh\nexit 1\n")

	c := conversion{cfg: config{Name: tool, Preamble: defaultPreamble, HelpFlag: "--help"}}
	_, err := c.run(context.Background())
	assert.ErrorIs(t, err, errCommandFailed)
	assert.NoFileExists(t, tool+".rst")
}

func TestConversionShortHelp(t *testing.T) {
	tool := writeTool(t, "terse-tool", "#!/bin/sh\necho usage: terse-tool\n")

	c := conversion{cfg: config{Name: tool, Preamble: defaultPreamble, HelpFlag: "--help"}}
	_, err := c.run(context.Background())
	assert.ErrorIs(t, err, errInputTooShort)
	assert.NoFileExists(t, tool+".rst")
}
