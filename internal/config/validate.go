package config

import (
	"fmt"
	"strings"
)

// Validate validates the configuration and returns an error if invalid
func Validate(config *Config) error {
	if err := validateBrowserConfig(&config.Browser); err != nil {
		return fmt.Errorf("browser config validation failed: %w", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	return nil
}

// ValidateS3 validates the object-store credentials. This is split from
// Validate because browsing a local folder works without any S3 config;
// only the upload flow requires it.
func ValidateS3(config *S3Config) error {
	if strings.TrimSpace(config.AccessKeyID) == "" {
		return &ConfigError{Err: fmt.Errorf("access_key_id is required")}
	}

	if strings.TrimSpace(config.SecretAccessKey) == "" {
		return &ConfigError{Err: fmt.Errorf("secret_access_key is required")}
	}

	if strings.TrimSpace(config.Bucket) == "" {
		return &ConfigError{Err: fmt.Errorf("bucket is required")}
	}

	if !isValidBucketName(config.Bucket) {
		return &ConfigError{Err: fmt.Errorf("invalid bucket format: %s", config.Bucket)}
	}

	return nil
}

// validateBrowserConfig validates browser configuration
func validateBrowserConfig(config *BrowserConfig) error {
	if config.PerPage <= 0 {
		return fmt.Errorf("per_page must be positive, got: %d", config.PerPage)
	}

	if config.ThumbWidth <= 0 || config.ThumbHeight <= 0 {
		return fmt.Errorf("thumbnail size must be positive, got: %dx%d", config.ThumbWidth, config.ThumbHeight)
	}

	if len(config.Extensions) == 0 {
		return fmt.Errorf("at least one allowed extension is required")
	}

	return nil
}

// validateLogConfig validates log configuration
func validateLogConfig(config *LogConfig) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
		"panic": true,
	}

	level := strings.ToLower(config.Level)
	if !validLevels[level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error, fatal, panic)", config.Level)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}

	format := strings.ToLower(config.Format)
	if !validFormats[format] {
		return fmt.Errorf("invalid log format: %s (valid: text, json)", config.Format)
	}

	return nil
}

// isValidBucketName checks if the bucket name follows basic S3 naming rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}

	// Must start and end with letter or number
	if !isAlphaNum(name[0]) || !isAlphaNum(name[len(name)-1]) {
		return false
	}

	for i, char := range name {
		if !isAlphaNum(byte(char)) && char != '-' && char != '.' {
			return false
		}

		// Cannot have consecutive periods or period-dash combinations
		if i > 0 {
			prev := name[i-1]
			if char == '.' && (prev == '.' || prev == '-') {
				return false
			}
			if char == '-' && prev == '.' {
				return false
			}
		}
	}

	return true
}

// isAlphaNum checks if a byte is alphanumeric
func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
