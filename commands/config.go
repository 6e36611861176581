package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// configName is the config file name without extension.
const configName = ".cs-activity"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for cs-activity settings.
const envPrefix = "CS_ACTIVITY"

// FileConfig holds the settings that may come from the config file or
// environment. Flags set on the command line take precedence over all of it.
type FileConfig struct {
	Dir        string        `mapstructure:"dir"`
	Interval   time.Duration `mapstructure:"interval"`
	Output     string        `mapstructure:"output"`
	Chart      string        `mapstructure:"chart"`
	SaveDir    string        `mapstructure:"save_dir"`
	DPI        int           `mapstructure:"dpi"`
	SkipLabels int           `mapstructure:"skip_labels"`
	Timezone   string        `mapstructure:"timezone"`
	View       bool          `mapstructure:"view"`
}

// LoadFileConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME. A missing config
// file is not an error; defaults are used.
func LoadFileConfig(configPath string) (*FileConfig, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg FileConfig

	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("dir", defaultLogRoot)
	viperCfg.SetDefault("interval", "30m")
	viperCfg.SetDefault("output", "summary")
	viperCfg.SetDefault("chart", "line")
	viperCfg.SetDefault("save_dir", ".")
	viperCfg.SetDefault("dpi", 200)
	viperCfg.SetDefault("skip_labels", 2)
	viperCfg.SetDefault("timezone", "Local")
	viperCfg.SetDefault("view", false)
}
