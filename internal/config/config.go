// Package config loads simplekit host settings from a config file, the
// environment and command-line flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stlalpha/simplekit/internal/logging"
	"github.com/stlalpha/simplekit/pkg/simplekit"
)

// EnvPrefix prefixes every environment override, e.g. SIMPLEKIT_FRAME_RATE
const EnvPrefix = "simplekit"

// Config is the full host configuration
type Config struct {
	FrameRate   int               `mapstructure:"frame_rate"`
	Debug       bool              `mapstructure:"debug"`
	Translators simplekit.Options `mapstructure:"translators"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	SSH         SSHConfig         `mapstructure:"ssh"`
	Record      RecordConfig      `mapstructure:"record"`
}

// MetricsConfig controls the Prometheus endpoint and the periodic stats report
type MetricsConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Addr           string `mapstructure:"addr"`
	ReportSchedule string `mapstructure:"report_schedule"` // cron syntax, empty disables
}

// SSHConfig controls the SSH host
type SSHConfig struct {
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
	HostKey string `mapstructure:"host_key"`
}

// RecordConfig controls session recording
type RecordConfig struct {
	Path string `mapstructure:"path"` // empty disables
}

// Addr is the SSH listen address
func (s SSHConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Validate checks the values a host cannot run with
func (c Config) Validate() error {
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return fmt.Errorf("frame_rate %d out of range 1-240", c.FrameRate)
	}
	if c.SSH.Port < 0 || c.SSH.Port > 65535 {
		return fmt.Errorf("ssh.port %d out of range", c.SSH.Port)
	}
	t := c.Translators
	if t.ClickTolerance < 0 || t.DoubleClickTolerance < 0 || t.DragThreshold < 0 {
		return errors.New("translator distances must not be negative")
	}
	return nil
}

// Defaults returns the configuration used when no file is present
func Defaults() Config {
	return Config{
		FrameRate:   60,
		Translators: simplekit.DefaultOptions(),
		Metrics: MetricsConfig{
			Addr:           "127.0.0.1:9464",
			ReportSchedule: "@every 1m",
		},
		SSH: SSHConfig{
			Host:    "0.0.0.0",
			Port:    2222,
			HostKey: "simplekit_host_ed25519",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("frame_rate", d.FrameRate)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("translators.click_tolerance", d.Translators.ClickTolerance)
	v.SetDefault("translators.click_timeout", d.Translators.ClickTimeout)
	v.SetDefault("translators.double_click_window", d.Translators.DoubleClickWindow)
	v.SetDefault("translators.double_click_tolerance", d.Translators.DoubleClickTolerance)
	v.SetDefault("translators.drag_threshold", d.Translators.DragThreshold)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.addr", d.Metrics.Addr)
	v.SetDefault("metrics.report_schedule", d.Metrics.ReportSchedule)
	v.SetDefault("ssh.host", d.SSH.Host)
	v.SetDefault("ssh.port", d.SSH.Port)
	v.SetDefault("ssh.host_key", d.SSH.HostKey)
	v.SetDefault("record.path", d.Record.Path)
}

// Loader reads Config through its own viper instance. Flags bound with
// BindFlag win over the file and the environment when set.
type Loader struct {
	v    *viper.Viper
	path string
}

// NewLoader creates a loader for path. An empty path searches the working
// directory and the home directory for simplekit.{yaml,json,toml}.
func NewLoader(path string) *Loader {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("simplekit")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	return &Loader{v: v, path: path}
}

// BindFlag binds a command-line flag to a config key
func (l *Loader) BindFlag(key string, f *pflag.Flag) error {
	if f == nil {
		return fmt.Errorf("no flag for config key %s", key)
	}
	return l.v.BindPFlag(key, f)
}

// Path returns the config file in use, or "" when running on defaults
func (l *Loader) Path() string {
	return l.v.ConfigFileUsed()
}

// Load reads the config file (if any), applies environment and flag
// overrides and validates the result. A missing file is not an error.
func (l *Loader) Load() (Config, error) {
	log := logging.For("config")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), errors.Is(err, fs.ErrNotExist):
			log.Warnf("config file not found (%s). Using default settings.", l.describe())
		default:
			return Defaults(), fmt.Errorf("failed to read config %s: %w", l.describe(), err)
		}
	} else {
		log.Infof("Loaded configuration from %s", l.v.ConfigFileUsed())
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Defaults(), fmt.Errorf("failed to decode config %s: %w", l.describe(), err)
	}
	if err := cfg.Validate(); err != nil {
		return Defaults(), fmt.Errorf("invalid config %s: %w", l.describe(), err)
	}
	return cfg, nil
}

func (l *Loader) describe() string {
	if l.path != "" {
		return l.path
	}
	if used := l.v.ConfigFileUsed(); used != "" {
		return used
	}
	return "simplekit.{yaml,json,toml}"
}

// Load is NewLoader(path).Load()
func Load(path string) (Config, error) {
	return NewLoader(path).Load()
}
