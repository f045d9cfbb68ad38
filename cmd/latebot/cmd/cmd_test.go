package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/corey/latebot/internal/adapters/bbolt"
	"github.com/corey/latebot/internal/adapters/socket"
	"github.com/corey/latebot/internal/app"
	"github.com/corey/latebot/internal/config"
	"github.com/corey/latebot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetOut(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(exitStatus{0}))
	assert.Equal(t, 1, ExitCode(exitStatus{1}))
	assert.Equal(t, 2, ExitCode(exitStatus{2}))
	assert.Equal(t, -1, ExitCode(errors.New("boom")))
	assert.Equal(t, "no match", exitStatus{1}.Error())
}

func TestCheckText(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Phrases = []string{"im crying", "i am crying"}

	tests := []struct {
		text   string
		want   bool
		phrase string
	}{
		{"im crying", true, "im crying"},
		{"i am crying", true, "i am crying"},
		{"im cryjing", true, "im crying"},
		{"im crayoning", false, ""},
		{"im literally crying", true, "im crying"},
		{"i am so so so crying", false, ""},
		{"i'm crying...", true, "im crying"},
		{"~im ~crying~", true, "im crying"},
		{"crying am i", false, ""},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			phrase, ok, err := checkText(&cfg, tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
			assert.Equal(t, tc.phrase, phrase.String())
		})
	}
}

func TestCheckText_InterruptWidens(t *testing.T) {
	cfg := config.Default()
	cfg.Match.Phrases = []string{"i am crying"}
	cfg.Match.InterruptThreshold = 3

	_, ok, err := checkText(&cfg, "i am so so so crying")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckText_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Match.SimilarityThreshold = 1.2

	_, _, err := checkText(&cfg, "ill be late")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "similarity_threshold")
}

func TestFormatMatch(t *testing.T) {
	assert.Contains(t, formatMatch("ill be late", true), `"ill be late"`)
	assert.Contains(t, formatMatch("", false), "no match")
}

func TestPaint(t *testing.T) {
	defer func(prev bool) { colorEnabled = prev }(colorEnabled)

	colorEnabled = false
	assert.Equal(t, "late", paint(colorGreen, "late"))

	colorEnabled = true
	assert.Equal(t, colorGreen+"late"+colorReset, paint(colorGreen, "late"))
}

func TestFormatCounts(t *testing.T) {
	assert.Contains(t, formatCounts(&socket.CountsResult{}), "nobody")

	out := formatCounts(&socket.CountsResult{
		Counts: []ports.UserCount{{UserID: "bob", Count: 3}, {UserID: "alice", Count: 1}},
		Total:  4,
	})
	assert.Contains(t, out, "4 late (2 users)")
	assert.Contains(t, strings.ToUpper(out), "TOTAL")
	assert.Less(t, strings.Index(out, "bob"), strings.Index(out, "alice"))
}

func TestFormatHealth(t *testing.T) {
	out := formatHealth(&socket.HealthResult{Status: "ok", PhraseCount: 3, Scorer: "levenshtein", Uptime: "5s"})
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "Phrases:  3")
	assert.Contains(t, out, "levenshtein")
}

// =============================================================================
// bbolt lock diagnostics
// =============================================================================

func TestIsDBLockError(t *testing.T) {
	assert.False(t, isDBLockError(nil))
	assert.True(t, isDBLockError(errors.New("bbolt open: timeout")))
	assert.False(t, isDBLockError(errors.New("permission denied")))
}

func TestDiagnoseDBLock_UnknownHolder(t *testing.T) {
	msg := diagnoseDBLock(t.TempDir())
	assert.Contains(t, msg, "another process")
}

func TestDiagnoseDBLock_StaleSocket(t *testing.T) {
	root := t.TempDir()
	sockPath := socket.SocketPath(root)
	require.NoError(t, os.WriteFile(sockPath, nil, 0600))
	t.Cleanup(func() { os.Remove(sockPath) })

	msg := diagnoseDBLock(root)
	assert.Contains(t, msg, "not responding")
	assert.Contains(t, msg, sockPath)
}

func TestOpenStore_LockedReportsGuidance(t *testing.T) {
	root := t.TempDir()
	paths := app.NewPaths(root)
	require.NoError(t, paths.EnsureDirs())

	holder, err := bbolt.NewStore(paths.DB)
	require.NoError(t, err)
	defer holder.Close()

	_, err = openStore(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open counters")
}

// =============================================================================
// Commands without a daemon
// =============================================================================

func TestInitThenCounters(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, "init", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, ".latebot", "config.toml"))

	_, err = run(t, "init", "--root", root)
	require.Error(t, err, "init must not overwrite an existing config")

	store, err := bbolt.NewStore(app.NewPaths(root).DB)
	require.NoError(t, err)
	_, err = store.Increment("bob")
	require.NoError(t, err)
	_, err = store.Increment("bob")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err = run(t, "count", "--root", root, "bob")
	require.NoError(t, err)
	assert.Equal(t, "This user bob has been late 2 times\n", out)

	out, err = run(t, "counts", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "bob")

	out, err = run(t, "reset", "--root", root, "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "reset bob")

	out, err = run(t, "count", "--root", root, "bob")
	require.NoError(t, err)
	assert.Equal(t, "This user bob has been late 0 times\n", out)
}

func TestConfigCommandShowsDefaults(t *testing.T) {
	root := t.TempDir()
	out, err := run(t, "config", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "missing, using defaults")
	assert.Contains(t, out, "Scorer:     levenshtein")
	assert.Contains(t, out, "not running")
}
