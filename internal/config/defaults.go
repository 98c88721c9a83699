package config

import "time"

// Default values.
const (
	DefaultAddr            = ":8000"
	DefaultModelPath       = "gesture_recognizer.db"
	DefaultLogLevel        = "info"
	DefaultLogFile         = "logs/mudra.log"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
	DefaultMaxResults      = 3
)

// Default returns a Config with every field set to its default.
func Default() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     Duration(DefaultReadTimeout),
			WriteTimeout:    Duration(DefaultWriteTimeout),
			IdleTimeout:     Duration(DefaultIdleTimeout),
			ShutdownTimeout: Duration(DefaultShutdownTimeout),
			MaxBodyBytes:    DefaultMaxBodyBytes,
		},
		Model: ModelConfig{
			Path: DefaultModelPath,
		},
		Classifier: ClassifierConfig{
			MaxResults: DefaultMaxResults,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
			File:  DefaultLogFile,
		},
	}
}
