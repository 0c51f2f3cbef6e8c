package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/noticepdf/builder"
	"github.com/wudi/noticepdf/config"
	"github.com/wudi/noticepdf/observability"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		renderFlags.output, renderFlags.format = "", ""
		renderFlags.watch, renderFlags.force = false, false
		configPath, verbose = "", false
	}()
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCmd(t *testing.T) {
	original := version
	version = "test-version-1.0.0"
	defer func() { version = original }()

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "noticepdf version test-version-1.0.0")
}

func TestRenderFromStdin(t *testing.T) {
	out, _, err := execute(t, "1. FACTS\nThe cheque bounced.", "render")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix([]byte(out), []byte("%PDF-1.4\n")))
	assert.Contains(t, out, "(1. FACTS) Tj")
}

func TestRenderToFileThenVerify(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notice.md")
	pdf := filepath.Join(dir, "notice.pdf")
	require.NoError(t, os.WriteFile(in, []byte("# Demand\n\nPay within 15 days."), 0600))

	_, errOut, err := execute(t, "", "render", in, "-o", pdf)
	require.NoError(t, err)
	assert.Contains(t, errOut, "1 pages")

	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.Contains(t, string(data), "(Demand) Tj")

	out, _, err := execute(t, "", "verify", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")
	assert.Contains(t, out, "6")
}

func TestVerifyRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nnot really"), 0600))
	_, _, err := execute(t, "", "verify", path)
	assert.Error(t, err)
}

func TestRenderUsesConfig(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "heading.js")
	require.NoError(t, os.WriteFile(script, []byte(`function isHeading(l) { return l.endsWith(":"); }`), 0600))
	cfgPath := filepath.Join(dir, "noticepdf.toml")
	cfg := "[render]\ntitle = \"DEMAND NOTICE\"\nheading_script = " + `"` + filepath.ToSlash(script) + `"` + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0600))

	out, _, err := execute(t, "Particulars:\nbody", "render", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "(DEMAND NOTICE) Tj")
	assert.Contains(t, out, "/F2 12 Tf\n0.14 0.14 0.14 rg\n1 0 0 1 52 690 Tm\n(Particulars:) Tj")
}

func TestRenderRejectsBadFlags(t *testing.T) {
	_, _, err := execute(t, "x", "render", "--format", "docx")
	assert.ErrorIs(t, err, builder.ErrUnknownFormat)

	_, _, err = execute(t, "x", "render", "--watch")
	assert.Error(t, err)
}

func TestResolveFormat(t *testing.T) {
	cases := []struct {
		flag, input string
		want        builder.Format
	}{
		{"", "a.md", builder.FormatMarkdown},
		{"", "a.HTML", builder.FormatHTML},
		{"", "a.txt", builder.FormatText},
		{"", "-", builder.FormatText},
		{"html", "a.md", builder.FormatHTML},
		{"markdown", "-", builder.FormatMarkdown},
	}
	for _, c := range cases {
		got, err := resolveFormat(c.flag, c.input)
		require.NoError(t, err)
		assert.Equal(t, c.want, got, "%s %s", c.flag, c.input)
	}
}

func TestNewBuilderRejectsUnknownWidthModel(t *testing.T) {
	_, err := newBuilder(config.RenderConfig{WidthModel: "metric"}, observability.NopLogger{})
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(&bytes.Buffer{}))
}
