package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	S3      S3Config      `mapstructure:"s3"`
	Browser BrowserConfig `mapstructure:"browser"`
	Log     LogConfig     `mapstructure:"log"`
}

// S3Config holds the object store credentials and target bucket.
// Endpoint is optional and only needed for minio or another alternate
// S3 provider; setting it switches the client to path-style addressing.
type S3Config struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
}

// BrowserConfig holds the folder-browser preferences
type BrowserConfig struct {
	Workdir     string   `mapstructure:"workdir"`
	PerPage     int      `mapstructure:"per_page"`
	Extensions  []string `mapstructure:"extensions"`
	ThumbWidth  int      `mapstructure:"thumb_width"`
	ThumbHeight int      `mapstructure:"thumb_height"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConfigError reports a missing or unparseable configuration. The
// upload flow refuses to start on one of these instead of failing
// halfway through a transfer.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error (%s): %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Load loads configuration from multiple sources with priority:
// 1. Command line flags (highest)
// 2. Environment variables
// 3. Configuration file
// 4. Defaults (lowest)
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("MEMEDIR")
	v.AutomaticEnv()

	v.BindEnv("s3.access_key_id", "MEMEDIR_S3_ACCESS_KEY_ID")
	v.BindEnv("s3.secret_access_key", "MEMEDIR_S3_SECRET_ACCESS_KEY")
	v.BindEnv("s3.bucket", "MEMEDIR_S3_BUCKET")
	v.BindEnv("s3.region", "MEMEDIR_S3_REGION")
	v.BindEnv("s3.endpoint", "MEMEDIR_S3_ENDPOINT")
	v.BindEnv("browser.workdir", "MEMEDIR_WORKDIR")
	v.BindEnv("browser.per_page", "MEMEDIR_PER_PAGE")
	v.BindEnv("log.level", "MEMEDIR_LOG_LEVEL")
	v.BindEnv("log.format", "MEMEDIR_LOG_FORMAT")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")

		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.memedir")
		v.AddConfigPath("/etc/memedir/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{Path: v.ConfigFileUsed(), Err: err}
		}
		// Config file not found is not an error - we can use defaults and env vars
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, &ConfigError{Path: v.ConfigFileUsed(), Err: err}
	}

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// S3 defaults
	v.SetDefault("s3.region", "auto")

	// Browser defaults
	v.SetDefault("browser.workdir", "~/Downloads")
	v.SetDefault("browser.per_page", 20)
	v.SetDefault("browser.extensions", []string{"jpg", "jpeg", "png", "gif"})
	v.SetDefault("browser.thumb_width", 200)
	v.SetDefault("browser.thumb_height", 150)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Save writes the configuration back to the given path (or the default
// location when empty), creating the directory if needed.
func (c *Config) Save(configPath string) error {
	if configPath == "" {
		configPath = GetDefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return &ConfigError{Path: configPath, Err: err}
	}

	v := viper.New()
	v.Set("s3.access_key_id", c.S3.AccessKeyID)
	v.Set("s3.secret_access_key", c.S3.SecretAccessKey)
	v.Set("s3.bucket", c.S3.Bucket)
	v.Set("s3.region", c.S3.Region)
	v.Set("s3.endpoint", c.S3.Endpoint)
	v.Set("browser.workdir", c.Browser.Workdir)
	v.Set("browser.per_page", c.Browser.PerPage)
	v.Set("browser.extensions", c.Browser.Extensions)
	v.Set("browser.thumb_width", c.Browser.ThumbWidth)
	v.Set("browser.thumb_height", c.Browser.ThumbHeight)
	v.Set("log.level", c.Log.Level)
	v.Set("log.format", c.Log.Format)

	if err := v.WriteConfigAs(configPath); err != nil {
		return &ConfigError{Path: configPath, Err: err}
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./config.toml"
	}
	return filepath.Join(homeDir, ".memedir", "config.toml")
}

// ExpandWorkdir resolves a leading ~ in the configured workdir
func ExpandWorkdir(dir string) string {
	if dir == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}
	if len(dir) > 1 && dir[0] == '~' && (dir[1] == '/' || dir[1] == filepath.Separator) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dir[2:])
		}
	}
	return dir
}
