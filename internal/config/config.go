// Package config loads and holds the application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// VaultConfig describes the Zettelkasten vault being backed up.
type VaultConfig struct {
	Dir string `mapstructure:"dir"`
}

// BackupConfig controls backup creation and scheduling. Backups are always
// age-encrypted; every other component parses the .age artifact name.
type BackupConfig struct {
	AgeRecipient      string `mapstructure:"age_recipient"`
	Schedule          string `mapstructure:"schedule"`
	CleanupOnSchedule bool   `mapstructure:"cleanup_on_schedule"`
}

// LocalStorageConfig configures the local directory storage location.
type LocalStorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// S3Config configures the S3-compatible storage location.
type S3Config struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// StorageConfig groups all storage locations.
type StorageConfig struct {
	Local LocalStorageConfig `mapstructure:"local"`
	S3    S3Config           `mapstructure:"s3"`
}

// TranscribeConfig configures the ffmpeg + whisper.cpp pipeline.
type TranscribeConfig struct {
	WhisperBin string `mapstructure:"whisper_bin"`
	ModelPath  string `mapstructure:"model_path"`
	Language   string `mapstructure:"language"`
	Threads    int    `mapstructure:"threads"`
}

// DiarizeConfig configures the external diarization CLI.
type DiarizeConfig struct {
	Bin string `mapstructure:"bin"`
}

// DiscordConfig configures the Discord webhook notifier.
type DiscordConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Webhook string `mapstructure:"webhook"`
}

// NotifiersConfig groups all notifiers.
type NotifiersConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Discord DiscordConfig `mapstructure:"discord"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Config is the root configuration.
type Config struct {
	Vault      VaultConfig      `mapstructure:"vault"`
	Backup     BackupConfig     `mapstructure:"backup"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Transcribe TranscribeConfig `mapstructure:"transcribe"`
	Diarize    DiarizeConfig    `mapstructure:"diarize"`
	Notifiers  NotifiersConfig  `mapstructure:"notifiers"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("vault.dir", "")
	v.SetDefault("backup.age_recipient", "")
	v.SetDefault("backup.schedule", "0 3 * * *")
	v.SetDefault("backup.cleanup_on_schedule", false)
	v.SetDefault("storage.local.enabled", true)
	v.SetDefault("storage.local.dir", "")
	v.SetDefault("storage.s3.enabled", false)
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.access_key", "")
	v.SetDefault("storage.s3.secret_key", "")
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.prefix", "zettelkasten")
	v.SetDefault("transcribe.whisper_bin", "whisper-cli")
	v.SetDefault("transcribe.model_path", "")
	v.SetDefault("transcribe.language", "de")
	v.SetDefault("transcribe.threads", runtime.NumCPU())
	v.SetDefault("diarize.bin", "diarize")
	v.SetDefault("notifiers.enabled", false)
	v.SetDefault("notifiers.discord.enabled", false)
	v.SetDefault("notifiers.discord.webhook", "")
	v.SetDefault("logging.level", "info")
}

// Load reads configuration from defaults, an optional config file and
// ZETTELKIT_* environment variables, in increasing precedence.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "zettelkit"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ZETTELKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
