package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/signalsfoundry/footprint-geometry/ephemeris"
	"github.com/signalsfoundry/footprint-geometry/geometry"
	"github.com/signalsfoundry/footprint-geometry/internal/logging"
	"github.com/signalsfoundry/footprint-geometry/internal/observability"
	"github.com/signalsfoundry/footprint-geometry/model"
	"github.com/signalsfoundry/footprint-geometry/timectrl"
)

// EnvPrefix namespaces environment overrides: FOOTPRINT_ORBIT_SEMIMAJOR_KM
// maps to orbit.semimajor_km.
const EnvPrefix = "FOOTPRINT"

// Config holds all run configuration.
type Config struct {
	Orbit     OrbitConfig     `mapstructure:"orbit"`
	Attitude  AttitudeConfig  `mapstructure:"attitude"`
	Ephemeris EphemerisConfig `mapstructure:"ephemeris"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
	Workers   int             `mapstructure:"workers"`
}

type OrbitConfig struct {
	SemimajorKm float64 `mapstructure:"semimajor_km"`
}

type AttitudeConfig struct {
	RollDeg     float64 `mapstructure:"roll_deg"`
	PitchDeg    float64 `mapstructure:"pitch_deg"`
	YawDeg      float64 `mapstructure:"yaw_deg"`
	ApertureDeg float64 `mapstructure:"aperture_deg"`
}

// EphemerisConfig describes a TLE-driven track: the element set plus a
// sampling schedule.
type EphemerisConfig struct {
	TLELine1 string        `mapstructure:"tle_line1"`
	TLELine2 string        `mapstructure:"tle_line2"`
	Start    string        `mapstructure:"start"` // RFC 3339
	Step     time.Duration `mapstructure:"step"`
	Count    int           `mapstructure:"count"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"` // text | czml | geojson
	Scale  bool   `mapstructure:"scale"`  // print Earth-fixed positions in metres
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	ServiceName string  `mapstructure:"service_name"`
	Exporter    string  `mapstructure:"exporter"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

type MetricsConfig struct {
	Textfile string `mapstructure:"textfile"` // empty disables the dump
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("orbit.semimajor_km", 0.0)
	v.SetDefault("attitude.roll_deg", 0.0)
	v.SetDefault("attitude.pitch_deg", 0.0)
	v.SetDefault("attitude.yaw_deg", 0.0)
	v.SetDefault("attitude.aperture_deg", 0.0)
	v.SetDefault("ephemeris.tle_line1", "")
	v.SetDefault("ephemeris.tle_line2", "")
	v.SetDefault("ephemeris.start", "")
	v.SetDefault("ephemeris.step", "10s")
	v.SetDefault("ephemeris.count", 0)
	v.SetDefault("output.format", "text")
	v.SetDefault("output.scale", true)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.service_name", observability.DefaultServiceName)
	v.SetDefault("tracing.exporter", "stdout")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("workers", 4)
}

// Load reads configuration from defaults, an optional file at path (YAML,
// JSON or TOML by extension) and FOOTPRINT_* environment variables, in
// increasing precedence. An empty path skips the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}

// Validate checks the sections every run needs. Orbit and attitude values are
// validated by the projectors themselves once the CLI has applied its flags.
func (c *Config) Validate() error {
	var errs []string

	switch c.Output.Format {
	case "text", "czml", "geojson":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be text, czml or geojson, got %q", c.Output.Format))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("logging.format must be text or json, got %q", c.Logging.Format))
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 || math.IsNaN(c.Tracing.SampleRatio) {
		errs = append(errs, fmt.Sprintf("tracing.sample_ratio must be in [0, 1], got %v", c.Tracing.SampleRatio))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Sprintf("workers must be positive, got %d", c.Workers))
	}
	if c.Ephemeris.TLELine1 != "" || c.Ephemeris.TLELine2 != "" {
		if c.Ephemeris.TLELine1 == "" || c.Ephemeris.TLELine2 == "" {
			errs = append(errs, "ephemeris.tle_line1 and ephemeris.tle_line2 must be set together")
		}
		if _, err := c.Ephemeris.Schedule(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// HasTLE reports whether a TLE-driven track is configured.
func (e EphemerisConfig) HasTLE() bool {
	return e.TLELine1 != "" && e.TLELine2 != ""
}

// Schedule parses the sampling schedule.
func (e EphemerisConfig) Schedule() (timectrl.Schedule, error) {
	start, err := time.Parse(time.RFC3339, e.Start)
	if err != nil {
		return timectrl.Schedule{}, fmt.Errorf("ephemeris.start must be RFC 3339, got %q", e.Start)
	}
	s, err := timectrl.NewSchedule(start, e.Step, e.Count)
	if err != nil {
		return timectrl.Schedule{}, fmt.Errorf("ephemeris: %w", err)
	}
	return s, nil
}

// OrbitModel converts the orbit section to the core value type, deriving
// the semimajor axis from the TLE when orbit.semimajor_km is unset.
func (c *Config) OrbitModel() (model.OrbitConfig, error) {
	a, err := c.Semimajor()
	if err != nil {
		return model.OrbitConfig{}, err
	}
	return model.NewOrbitConfig(a)
}

// AttitudeModel converts the attitude section to the core value type.
func (c *Config) AttitudeModel() (model.Attitude, error) {
	att := model.Attitude{
		RollDeg:     c.Attitude.RollDeg,
		PitchDeg:    c.Attitude.PitchDeg,
		YawDeg:      c.Attitude.YawDeg,
		ApertureDeg: c.Attitude.ApertureDeg,
	}
	return att, att.Validate()
}

// LoggerConfig maps the logging section onto internal/logging.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: c.Logging.Format}
}

// TracingConfig maps the tracing section onto internal/observability.
func (c *Config) TracingConfig() observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     c.Tracing.Enabled,
		ServiceName: c.Tracing.ServiceName,
		Exporter:    c.Tracing.Exporter,
		Endpoint:    c.Tracing.Endpoint,
		SampleRatio: c.Tracing.SampleRatio,
	}
}

// Semimajor is orbit.semimajor_km when set, otherwise the value derived
// from the configured TLE.
func (c *Config) Semimajor() (float64, error) {
	if c.Orbit.SemimajorKm != 0 {
		return c.Orbit.SemimajorKm, nil
	}
	if c.Ephemeris.HasTLE() {
		return ephemeris.SemimajorFromTLE(c.Ephemeris.TLELine2)
	}
	return 0, geometry.InvalidInput("orbit.semimajor_km", "is required when no TLE is configured")
}
