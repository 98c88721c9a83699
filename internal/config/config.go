// Package config loads the mudra configuration from YAML, the environment and
// command-line flags, in that order of increasing precedence.
package config

import "time"

// Config holds the main configuration for the application.
type Config struct {
	Env        string           `json:"env,omitempty"        yaml:"env,omitempty"`
	Server     ServerConfig     `json:"server,omitempty"     yaml:"server,omitempty"`
	Model      ModelConfig      `json:"model,omitempty"      yaml:"model,omitempty"`
	Labels     LabelsConfig     `json:"labels,omitempty"     yaml:"labels,omitempty"`
	Classifier ClassifierConfig `json:"classifier,omitempty" yaml:"classifier,omitempty"`
	Log        LogConfig        `json:"log,omitempty"        yaml:"log,omitempty"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string   `json:"addr,omitempty"             yaml:"addr,omitempty"`
	ReadTimeout     Duration `json:"read_timeout,omitempty"     yaml:"read_timeout,omitempty"`
	WriteTimeout    Duration `json:"write_timeout,omitempty"    yaml:"write_timeout,omitempty"`
	IdleTimeout     Duration `json:"idle_timeout,omitempty"     yaml:"idle_timeout,omitempty"`
	ShutdownTimeout Duration `json:"shutdown_timeout,omitempty" yaml:"shutdown_timeout,omitempty"`
	MaxBodyBytes    int64    `json:"max_body_bytes,omitempty"   yaml:"max_body_bytes,omitempty"`
}

// ModelConfig locates the gesture template model.
type ModelConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LabelsConfig locates the optional category-to-label map.
type LabelsConfig struct {
	Path  string `json:"path,omitempty"  yaml:"path,omitempty"`
	Watch bool   `json:"watch,omitempty" yaml:"watch,omitempty"`
}

// ClassifierConfig tunes the template classifier.
type ClassifierConfig struct {
	MaxResults int     `json:"max_results,omitempty" yaml:"max_results,omitempty"`
	MinScore   float64 `json:"min_score,omitempty"   yaml:"min_score,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level,omitempty"   yaml:"level,omitempty"`
	File   string `json:"file,omitempty"    yaml:"file,omitempty"`
	ToFile bool   `json:"to_file,omitempty" yaml:"to_file,omitempty"`
}

// Duration is a time.Duration written as a Go duration string ("10s").
type Duration time.Duration

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
