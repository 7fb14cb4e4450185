package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Log    LogConfig
	Backup BackupConfig
	Export ExportConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// BackupConfig controls the snapshot root and retention pruning.
type BackupConfig struct {
	RootDir   string
	Retention int
}

// ExportConfig controls the default directory for ad-hoc exports.
type ExportConfig struct {
	DataDir string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	retention := v.GetInt("BACKUP_RETENTION")
	if retention < 0 {
		retention = 0
	}
	cfg.Backup = BackupConfig{
		RootDir:   v.GetString("BACKUP_ROOT_DIR"),
		Retention: retention,
	}

	cfg.Export = ExportConfig{
		DataDir: v.GetString("DATA_EXPORT_DIR"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("BACKUP_ROOT_DIR", "./backups")
	v.SetDefault("BACKUP_RETENTION", 5)
	v.SetDefault("DATA_EXPORT_DIR", "./exports")
}
