package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/kurdg2p/internal/model"
)

// run executes the root command with args and returns stdout. Flags keep
// their values between executions, so every flag is reset first.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestWordCommand(t *testing.T) {
	out, err := run(t, "", "word", "شەو", "گرتن")
	require.NoError(t, err)
	assert.Equal(t, "شەو\tˈşew\nگرتن\tˈgirˈtin\n", out)

	out, err = run(t, "", "word", "--all", "بووین")
	require.NoError(t, err)
	assert.Equal(t, "بووین\tˈbûyn¶ˈbuˈwîn¶ˈbuˈwiyn\n", out)
}

func TestWordCommand_Explain(t *testing.T) {
	out, err := run(t, "", "word", "--explain", "گرفت")
	require.NoError(t, err)
	assert.Contains(t, out, "گرفت => ˈgiˈrift¶ˈgiˈriˈfit¶ˈgirˈfit")
	assert.Contains(t, out, "*")

	out, err = run(t, "", "word", "--explain", "--format", "json", "گرفت")
	require.NoError(t, err)

	var explanations []model.WordExplanation
	require.NoError(t, json.Unmarshal([]byte(out), &explanations))
	require.Len(t, explanations, 1)
	assert.Equal(t, "ˈgiˈrift", explanations[0].Candidates[0].Phonemes)
	assert.True(t, explanations[0].Candidates[0].Selected)
}

func TestConvertCommand(t *testing.T) {
	out, err := run(t, "", "convert", "شەو و ڕۆژ")
	require.NoError(t, err)
	assert.Equal(t, "ˈşeˈwû ˈřoj\n", out)

	out, err = run(t, "", "convert", "--no-merge", "شەو", "و", "ڕۆژ")
	require.NoError(t, err)
	assert.Equal(t, "ˈşew û ˈřoj\n", out)

	out, err = run(t, "کتێب ١٢ دانە", "convert", "--numbers", "-")
	require.NoError(t, err)
	assert.Equal(t, "ˈkiˈtêb ˈdwazˈde ˈdaˈne\n", out)
}

func TestConvertCommand_EnvOverride(t *testing.T) {
	t.Setenv("KURDG2P_G2P_MERGE_CONJUNCTION", "false")

	out, err := run(t, "", "convert", "شەو و ڕۆژ")
	require.NoError(t, err)
	assert.Equal(t, "ˈşew û ˈřoj\n", out)
}

func TestConvertCommand_BadFormat(t *testing.T) {
	_, err := run(t, "", "convert", "--format", "xml", "شەو")
	assert.Error(t, err)
}

func TestPoemCommand(t *testing.T) {
	poem := "شەو و ڕۆژ\nشەو و ڕۆژ\nشەو و ڕۆژ\n"
	dir := t.TempDir()
	mdPath := filepath.Join(dir, "poem.md")

	out, err := run(t, poem, "poem", "-", "--format", "json", "--md", mdPath)
	require.NoError(t, err)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.NotNil(t, report.Classification)
	assert.Equal(t, model.MeterSyllabic, report.Classification.OveralMeterType)
	assert.Equal(t, "3Syllabic", report.Classification.OveralPattern)

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Meter")
}

func TestTranslitCommand(t *testing.T) {
	out, err := run(t, "", "translit", "ˈşeˈwû ˈřoj")
	require.NoError(t, err)
	assert.Equal(t, "şewû řoj\n", out)

	out, err = run(t, "", "translit", "--to", "simple", "--convert", "شەو و ڕۆژ")
	require.NoError(t, err)
	assert.Equal(t, "şewû roj\n", out)

	out, err = run(t, "Ez çûm bo mal\n", "translit", "--to", "arabic")
	require.NoError(t, err)
	assert.Equal(t, "ئەز چووم بۆ مال\n", out)

	_, err = run(t, "", "translit", "--to", "cyrillic", "x")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")
	require.NoError(t, os.WriteFile(first, []byte("شەو و ڕۆژ"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("درێژیی دیوارەکەی گرتن"), 0o644))

	list := filepath.Join(dir, "list.txt")
	require.NoError(t, os.WriteFile(list, []byte(first+"\n# skipped\n"+second+"\n"), 0o644))

	outDir := filepath.Join(dir, "reports")
	_, err := run(t, "", "batch", list, "--output-dir", outDir, "--workers", "2")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "second.json"))
	require.NoError(t, err)

	var report model.Report
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, "ˈdiˈrêˈjîy ˈdîˈwaˈreˈkey ˈgirˈtin", report.Output)
	assert.FileExists(t, filepath.Join(outDir, "first.md"))
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := run(t, "", "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	assert.FileExists(t, path)

	_, err = run(t, "", "config", "init", "--config", path)
	assert.Error(t, err, "init must not overwrite without --force")

	out, err = run(t, "", "config", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "merge_conjunction: true")
	assert.Contains(t, out, "timeout: 15s")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "نالی-غەزەل", sanitizeFilename("نالی غەزەل", 0))
	assert.Equal(t, "a_b", sanitizeFilename("a/b", 0))
	assert.Equal(t, "input-003", sanitizeFilename("  ", 2))

	used := map[string]int{}
	assert.Equal(t, "x", uniqueSlug(used, "x"))
	assert.Equal(t, "x-2", uniqueSlug(used, "x"))
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "kurdg2p "+Version+"\n", out)
}
