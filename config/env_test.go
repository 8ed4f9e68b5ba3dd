package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	env, err := LoadEnv("confdispatch.txt")
	require.NoError(t, err)
	assert.Equal(t, "confdispatch.txt", env.ConfigPath)
	assert.Equal(t, "info", env.LogLevel)
}

func TestLoadEnv_fromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/seatrouter/dispatcher.txt")
	t.Setenv("LOG_LEVEL", "debug")

	env, err := LoadEnv("confdispatch.txt")
	require.NoError(t, err)
	assert.Equal(t, "/etc/seatrouter/dispatcher.txt", env.ConfigPath)
	assert.Equal(t, "debug", env.LogLevel)
}
