package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/julianstephens/dayplan/internal/constants"
)

// Config holds the small amount of ambient configuration the app needs.
// Everything else (watermark, remote folder id, ...) lives in the settings
// store so it travels with the data directory.
type Config struct {
	DataDir       string `mapstructure:"data_dir"`
	Timezone      string `mapstructure:"timezone"`
	RemoteBaseURL string `mapstructure:"remote_base_url"`
	RemoteUploadURL string `mapstructure:"remote_upload_url"`
	RemoteFolder  string `mapstructure:"remote_folder"`
	Debug         bool   `mapstructure:"debug"`
}

// Load reads configuration from ~/.dayplan.yaml (optional), the working
// directory, and DAYPLAN_* environment variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("timezone", "Local")
	v.SetDefault("remote_base_url", "https://www.googleapis.com/drive/v3")
	v.SetDefault("remote_upload_url", "https://www.googleapis.com/upload/drive/v3")
	v.SetDefault("remote_folder", constants.RemoteFolderName)
	v.SetDefault("debug", false)

	v.SetConfigName(".dayplan")
	v.SetConfigType("yaml")
	v.AddConfigPath("./")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("DAYPLAN")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// PlansDir is where per-date plan records live.
func (c *Config) PlansDir() string {
	return filepath.Join(c.DataDir, constants.PlansDirName)
}

// SettingsPath is the key-value settings database file.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.DataDir, constants.SettingsFileName)
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, constants.AppName)
}
