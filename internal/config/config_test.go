package config

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govmmc/internal/errors"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"RNG_SEED", "WORKERS", "OUTPUT_DIR", "TRAJECTORY_FILE", "VMD_SCRIPT", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Nil(t, cfg.RNG.Seed)
	assert.Equal(t, 4, cfg.RNG.Workers)
	assert.Equal(t, ".", cfg.Output.Dir)
	assert.Equal(t, "trajectory.xyz", cfg.Output.TrajectoryFile)
	assert.Equal(t, "vmd.tcl", cfg.Output.ScriptFile)
	assert.Equal(t, "INFO", cfg.Log.Level)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("RNG_SEED", "42")
	t.Setenv("WORKERS", "8")
	t.Setenv("OUTPUT_DIR", "/tmp/run")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.RNG.Seed)
	assert.Equal(t, uint32(42), *cfg.RNG.Seed)
	assert.Equal(t, 8, cfg.RNG.Workers)
	assert.Equal(t, "/tmp/run", cfg.Output.Dir)
	assert.Equal(t, "DEBUG", cfg.Log.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "negative seed", key: "RNG_SEED", value: "-1"},
		{name: "seed overflow", key: "RNG_SEED", value: "4294967296"},
		{name: "zero workers", key: "WORKERS", value: "0"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(test.key, test.value)

			_, err := Load()
			assert.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func TestParseSeed(t *testing.T) {
	seed, err := ParseSeed(" 4294967295 ")
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), seed)

	_, err = ParseSeed("forty-two")
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
	assert.ErrorIs(t, err, strconv.ErrSyntax)

	_, err = ParseSeed("4294967296")
	assert.ErrorIs(t, err, strconv.ErrRange)
}
