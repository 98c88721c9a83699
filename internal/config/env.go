package config

import "os"

// Environment variables that override the config file.
const (
	EnvEnv        = "MUDRA_ENV"
	EnvAddr       = "MUDRA_ADDR"
	EnvModelPath  = "MUDRA_MODEL_PATH"
	EnvLabelsPath = "MUDRA_LABELS_PATH"
	EnvLogLevel   = "MUDRA_LOG_LEVEL"
)

// ApplyEnv overrides fields from the environment using lookup.
// Pass os.LookupEnv in production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set(EnvEnv, &c.Env)
	set(EnvAddr, &c.Server.Addr)
	set(EnvModelPath, &c.Model.Path)
	set(EnvLabelsPath, &c.Labels.Path)
	set(EnvLogLevel, &c.Log.Level)
}

// FromEnv applies the process environment.
func (c *Config) FromEnv() {
	c.ApplyEnv(os.LookupEnv)
}
