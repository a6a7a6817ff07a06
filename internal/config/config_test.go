package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "~/Downloads", cfg.Browser.Workdir)
	assert.Equal(t, 20, cfg.Browser.PerPage)
	assert.Equal(t, []string{"jpg", "jpeg", "png", "gif"}, cfg.Browser.Extensions)
	assert.Equal(t, 200, cfg.Browser.ThumbWidth)
	assert.Equal(t, 150, cfg.Browser.ThumbHeight)
	assert.Equal(t, "auto", cfg.S3.Region)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[s3]
access_key_id = "key"
secret_access_key = "secret"
bucket = "my-memes"
endpoint = "http://localhost:9000"

[browser]
workdir = "/data/memes"
per_page = 8

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-memes", cfg.S3.Bucket)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, "/data/memes", cfg.Browser.Workdir)
	assert.Equal(t, 8, cfg.Browser.PerPage)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 200, cfg.Browser.ThumbWidth)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MEMEDIR_S3_BUCKET", "env-bucket")
	t.Setenv("MEMEDIR_WORKDIR", "/env/dir")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-bucket", cfg.S3.Bucket)
	assert.Equal(t, "/env/dir", cfg.Browser.Workdir)
}

func TestLoad_UnparseableFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is [not toml"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	var ce *ConfigError
	assert.True(t, errors.As(err, &ce))
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{
		S3: S3Config{
			AccessKeyID:     "key",
			SecretAccessKey: "secret",
			Bucket:          "my-memes",
			Region:          "auto",
		},
		Browser: BrowserConfig{
			Workdir:     "/data/memes",
			PerPage:     10,
			Extensions:  []string{"png"},
			ThumbWidth:  100,
			ThumbHeight: 80,
		},
		Log: LogConfig{Level: "warn", Format: "json"},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.S3.Bucket, loaded.S3.Bucket)
	assert.Equal(t, cfg.Browser.PerPage, loaded.Browser.PerPage)
	assert.Equal(t, cfg.Log.Level, loaded.Log.Level)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Browser: BrowserConfig{
			PerPage:     20,
			Extensions:  []string{"png"},
			ThumbWidth:  200,
			ThumbHeight: 150,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
	assert.NoError(t, Validate(valid))

	badPage := *valid
	badPage.Browser.PerPage = 0
	assert.Error(t, Validate(&badPage))

	badThumb := *valid
	badThumb.Browser.ThumbHeight = -1
	assert.Error(t, Validate(&badThumb))

	noExts := *valid
	noExts.Browser.Extensions = nil
	assert.Error(t, Validate(&noExts))

	badLevel := *valid
	badLevel.Log.Level = "chatty"
	assert.Error(t, Validate(&badLevel))

	badFormat := *valid
	badFormat.Log.Format = "xml"
	assert.Error(t, Validate(&badFormat))
}

func TestValidateS3(t *testing.T) {
	valid := S3Config{
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Bucket:          "my-memes",
	}
	assert.NoError(t, ValidateS3(&valid))

	for name, mutate := range map[string]func(*S3Config){
		"missing key":    func(c *S3Config) { c.AccessKeyID = "  " },
		"missing secret": func(c *S3Config) { c.SecretAccessKey = "" },
		"missing bucket": func(c *S3Config) { c.Bucket = "" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			err := ValidateS3(&cfg)
			require.Error(t, err)
			var ce *ConfigError
			assert.True(t, errors.As(err, &ce))
		})
	}
}

func TestIsValidBucketName(t *testing.T) {
	assert.True(t, isValidBucketName("my-memes"))
	assert.True(t, isValidBucketName("my.bucket.name"))
	assert.True(t, isValidBucketName("abc"))

	assert.False(t, isValidBucketName("ab"), "too short")
	assert.False(t, isValidBucketName("-starts-with-dash"))
	assert.False(t, isValidBucketName("ends-with-dash-"))
	assert.False(t, isValidBucketName("double..period"))
	assert.False(t, isValidBucketName("period.-dash"))
	assert.False(t, isValidBucketName("under_score"))
}

func TestExpandWorkdir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, ExpandWorkdir("~"))
	assert.Equal(t, filepath.Join(home, "memes"), ExpandWorkdir("~/memes"))
	assert.Equal(t, "/abs/path", ExpandWorkdir("/abs/path"))
	assert.Equal(t, "relative", ExpandWorkdir("relative"))
}
