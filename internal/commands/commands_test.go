package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qif-tools/tbank2qif/internal/config"
	"github.com/qif-tools/tbank2qif/internal/convert"
)

const fixture = "../../testdata/tbank_operations.csv"

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

func runTool(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func firstLine(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line, _, _ := strings.Cut(string(data), "\n")
	return line
}

func TestConvert(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.qif")

	stdout, _, err := runTool(t, "convert", fixture, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote 4 transactions to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "!Type:Bank\nD20/01/2025\nT6045.50\nPПеревод средств\nLПереводы\n^\n"))
}

func TestConvert_AccountTypeFlag(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.qif")

	_, _, err := runTool(t, "convert", fixture, out, "--account-type", "CCard")
	require.NoError(t, err)
	assert.Equal(t, "!Type:CCard", firstLine(t, out))
}

func TestConvert_AccountTypeEnv(t *testing.T) {
	t.Setenv("TBANK2QIF_ACCOUNT_TYPE", "Cash")
	out := filepath.Join(t.TempDir(), "out.qif")

	_, _, err := runTool(t, "convert", fixture, out)
	require.NoError(t, err)
	assert.Equal(t, "!Type:Cash", firstLine(t, out))
}

func TestConvert_AccountTypeFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, config.FileName)
	cfg := config.Default()
	cfg.Output.AccountType = "Oth A"
	require.NoError(t, config.Save(cfgPath, cfg))
	out := filepath.Join(dir, "out.qif")

	_, _, err := runTool(t, "--config", cfgPath, "convert", fixture, out)
	require.NoError(t, err)
	assert.Equal(t, "!Type:Oth A", firstLine(t, out))

	// Flag wins over the settings file.
	_, _, err = runTool(t, "--config", cfgPath, "convert", fixture, out, "--account-type", "Bank")
	require.NoError(t, err)
	assert.Equal(t, "!Type:Bank", firstLine(t, out))
}

func TestConvert_UnknownAccountTypeWarns(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.qif")

	_, stderr, err := runTool(t, "convert", fixture, out, "--account-type", "CreditCard")
	require.NoError(t, err)
	assert.Equal(t, "!Type:CreditCard", firstLine(t, out))
	assert.Contains(t, stderr, "not a standard QIF label")
}

func TestConvert_DefaultPaths(t *testing.T) {
	data, err := os.ReadFile(fixture)
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultInput), data, 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	_, _, err = runTool(t, "convert")
	require.NoError(t, err)
	assert.Equal(t, "!Type:Bank", firstLine(t, filepath.Join(dir, defaultOutput)))
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runTool(t, "convert", filepath.Join(dir, "missing.csv"), filepath.Join(dir, "out.qif"))
	require.Error(t, err)

	var ioErr *convert.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.NotContains(t, stdout, "Done!")
}

func TestConvert_TooManyArgs(t *testing.T) {
	_, _, err := runTool(t, "convert", "a.csv", "b.qif", "c")
	require.Error(t, err)
}

func TestConvert_InvalidLogLevel(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.qif")

	_, _, err := runTool(t, "--log-level", "loud", "convert", fixture, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConvert_DebugLogging(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.qif")

	_, stderr, err := runTool(t, "--log-level", "debug", "--log-format", "json", "convert", fixture, out)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"entry written"`)
	assert.Contains(t, stderr, `"transactions":4`)
}

func TestConvert_MissingConfigFlag(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runTool(t, "--config", filepath.Join(dir, "nope.yaml"), "convert", fixture, filepath.Join(dir, "out.qif"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runTool(t, "init", dir, "--account-type", "CCard")
	require.NoError(t, err)
	assert.Contains(t, stdout, config.FileName)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "CCard", cfg.Output.AccountType)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, _, err := runTool(t, "init", dir)
	require.NoError(t, err)

	_, _, err = runTool(t, "init", dir, "--account-type", "Cash")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runTool(t, "init", dir, "--account-type", "Cash", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Cash", cfg.Output.AccountType)
}

func TestVersion(t *testing.T) {
	stdout, _, err := runTool(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "tbank2qif dev")
}
