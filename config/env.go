package config

import (
	"fmt"

	"github.com/vrischmann/envconfig"
)

// Env is the process environment every binary reads before its configuration file.
type Env struct {
	ConfigPath string `envconfig:"CONFIG_PATH,optional"`
	LogLevel   string `envconfig:"LOG_LEVEL,default=info"`
}

// LoadEnv reads Env. An unset CONFIG_PATH becomes defaultPath, the file name the binary looks
// for in its working directory.
func LoadEnv(defaultPath string) (Env, error) {
	var env Env
	if err := envconfig.Init(&env); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	if env.ConfigPath == "" {
		env.ConfigPath = defaultPath
	}
	return env, nil
}
