package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, ModePositional, cfg.Check.Mode)
	assert.Equal(t, defaultSeed, cfg.Check.Seed)
	assert.Equal(t, defaultOps, cfg.Check.Ops)
	assert.Equal(t, int64(defaultValueRange), cfg.Check.ValueRange)
	assert.Equal(t, defaultVerifyEvery, cfg.Check.VerifyEvery)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check.yaml")
	content := `check:
  mode: sorted
  ops: 500
  value_range: 10
  seed: nightly
logging:
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ModeSorted, cfg.Check.Mode)
	assert.Equal(t, 500, cfg.Check.Ops)
	assert.Equal(t, int64(10), cfg.Check.ValueRange)
	assert.Equal(t, "nightly", cfg.Check.Seed)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, defaultVerifyEvery, cfg.Check.VerifyEvery)
}

func TestLoad_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TREAPCHECK_CHECK_OPS", "42")
	t.Setenv("TREAPCHECK_CHECK_MODE", "sorted")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.Check.Ops)
	assert.Equal(t, ModeSorted, cfg.Check.Mode)
}

func TestLoad_Flags(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TREAPCHECK_CHECK_OPS", "42")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("ops", 0, "")
	flags.Int64("value-range", 0, "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--ops=7", "--log-level=debug"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Check.Ops)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// unchanged flags don't shadow defaults.
	assert.Equal(t, int64(defaultValueRange), cfg.Check.ValueRange)
}

func TestLoad_Invalid(t *testing.T) {
	chdir(t, t.TempDir())

	cases := []struct {
		env  string
		val  string
		want error
	}{
		{"TREAPCHECK_CHECK_MODE", "random", ErrInvalidMode},
		{"TREAPCHECK_CHECK_OPS", "0", ErrInvalidOps},
		{"TREAPCHECK_CHECK_VALUE_RANGE", "-1", ErrInvalidValueRange},
		{"TREAPCHECK_CHECK_VERIFY_EVERY", "0", ErrInvalidVerifyEvery},
		{"TREAPCHECK_LOGGING_LEVEL", "loud", ErrInvalidLogLevel},
		{"TREAPCHECK_LOGGING_FORMAT", "xml", ErrInvalidLogFormat},
	}
	for _, c := range cases {
		t.Run(c.env, func(t *testing.T) {
			t.Setenv(c.env, c.val)

			_, err := Load("", nil)
			require.ErrorIs(t, err, c.want)
		})
	}
}

func TestCheckConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := CheckConfig{Mode: ModeSorted, Ops: 1, ValueRange: 1, VerifyEvery: 1}
	require.NoError(t, valid.Validate())

	noOps := valid
	noOps.Ops = 0
	require.ErrorIs(t, noOps.Validate(), ErrInvalidOps)

	noVerify := valid
	noVerify.VerifyEvery = 0
	require.ErrorIs(t, noVerify.Validate(), ErrInvalidVerifyEvery)
}

// chdir changes the working directory to dir for the duration of the test, like testing.T.Chdir
// in Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(prev))
	})
}
