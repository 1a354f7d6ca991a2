// Package config loads hostprobe settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/vertti/hostprobe/pkg/cgroup"
	"github.com/vertti/hostprobe/pkg/dbprobe"
	"github.com/vertti/hostprobe/pkg/size"
	"github.com/vertti/hostprobe/pkg/version"
)

// Environment variables that override the file.
const (
	EnvConnection = "HOSTPROBE_CONNECTION"
	EnvDriver     = "HOSTPROBE_DRIVER"
)

type Config struct {
	Banner   bool           `yaml:"banner"`
	Output   string         `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
	Cgroup   CgroupConfig   `yaml:"cgroup"`
	Database DatabaseConfig `yaml:"database"`
	Serve    ServeConfig    `yaml:"serve"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type CgroupConfig struct {
	LimitPaths  []string `yaml:"limit_paths"`
	UsagePaths  []string `yaml:"usage_paths"`
	TotalMemory string   `yaml:"total_memory"` // overrides detected total, e.g. "2GiB"
}

type DatabaseConfig struct {
	Driver        string        `yaml:"driver"`
	Connection    string        `yaml:"connection"`
	Table         string        `yaml:"table"`
	Column        string        `yaml:"column"`
	InsertValue   string        `yaml:"insert_value"`
	CreateTable   bool          `yaml:"create_table"`
	ServerVersion string        `yaml:"server_version"`
	Timeout       time.Duration `yaml:"timeout"`
}

type ServeConfig struct {
	Listen string `yaml:"listen"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Banner:  true,
		Output:  "text",
		Logging: LoggingConfig{Level: "warn"},
		Cgroup: CgroupConfig{
			LimitPaths: append([]string(nil), cgroup.DefaultLimitPaths...),
			UsagePaths: append([]string(nil), cgroup.DefaultUsagePaths...),
		},
		Database: DatabaseConfig{
			Driver:      dbprobe.Postgres.Name,
			Table:       "test.test",
			Column:      "column1",
			InsertValue: "Hello world",
			Timeout:     30 * time.Second,
		},
		Serve: ServeConfig{Listen: ":8080"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // intentional: user supplied config file
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
		log.Debugf("config: loaded %s", path)
	}

	if v, ok := os.LookupEnv(EnvConnection); ok {
		config.Database.Connection = v
		log.Debugf("config: connection from %s", EnvConnection)
	}
	if v, ok := os.LookupEnv(EnvDriver); ok {
		config.Database.Driver = v
	}

	return config, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output %q (want text or json)", c.Output)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	if _, err := c.TotalMemoryOverride(); err != nil {
		return err
	}

	if _, err := dbprobe.LookupDialect(c.Database.Driver); err != nil {
		return err
	}
	if c.Database.ServerVersion != "" {
		if _, err := version.ParseConstraint(c.Database.ServerVersion); err != nil {
			return err
		}
	}
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("database timeout must be positive, got %s", c.Database.Timeout)
	}

	if strings.TrimSpace(c.Serve.Listen) == "" {
		return fmt.Errorf("serve listen address is empty")
	}

	return nil
}

// TotalMemoryOverride returns the configured total memory, or 0 if unset.
func (c *Config) TotalMemoryOverride() (uint64, error) {
	if c.Cgroup.TotalMemory == "" {
		return 0, nil
	}
	n, err := size.ParseSize(c.Cgroup.TotalMemory)
	if err != nil {
		return 0, fmt.Errorf("invalid total_memory: %w", err)
	}
	return n, nil
}

// DatabaseEnabled is true when a connection string is configured.
func (c *Config) DatabaseEnabled() bool {
	return strings.TrimSpace(c.Database.Connection) != ""
}
