// Package config locates and loads the harness CLI configuration
// (`lmeval.yaml`), applying defaults and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	log "github.com/baberabb/lm-evaluation-harness-sub001/pkg/logger"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/merge"
	"github.com/baberabb/lm-evaluation-harness-sub001/pkg/schema"
)

const (
	// ConfigFileName is the base name of the CLI config file.
	ConfigFileName = "lmeval"
	// ConfigFileType is the config file format.
	ConfigFileType = "yaml"
	// EnvPrefix prefixes environment variable overrides, e.g. LMEVAL_LOGS_LEVEL.
	EnvPrefix = "LMEVAL"
)

// setDefaults seeds viper with the built-in configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("base_path", ".")
	v.SetDefault("tasks.base_path", "tasks")
	v.SetDefault("tasks.included_paths", []string{"**/*.yaml", "**/*.yml"})
	v.SetDefault("tasks.excluded_paths", []string{})
	v.SetDefault("logs.file", "/dev/stderr")
	v.SetDefault("logs.level", "Info")
	v.SetDefault("settings.list_merge_strategy", merge.ListMergeStrategyReplace)
	v.SetDefault("settings.max_include_depth", 10)
}

// InitHarnessConfig finds and processes the CLI configuration.
//
// Lookup order (first found wins): an explicit path, the current directory,
// $HOME/.lmeval. A missing config file is not an error: defaults and
// environment overrides still apply.
func InitHarnessConfig(configPath string) (schema.HarnessConfiguration, error) {
	var harnessConfig schema.HarnessConfiguration

	v := viper.New()
	v.SetConfigType(ConfigFileType)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return harnessConfig, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+ConfigFileName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return harnessConfig, err
			}
			log.Debug("no config file found, using defaults")
		}
	}

	if err := v.Unmarshal(&harnessConfig); err != nil {
		return harnessConfig, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if used := v.ConfigFileUsed(); used != "" {
		log.Debug("loaded config", "file", used)
	}

	harnessConfig.Initialized = true
	return harnessConfig, nil
}

// TaskDirAbsolutePath returns the absolute path of the task definitions
// directory, resolving it against the base path when relative.
func TaskDirAbsolutePath(harnessConfig *schema.HarnessConfiguration) (string, error) {
	taskDir := harnessConfig.Tasks.BasePath
	if !filepath.IsAbs(taskDir) {
		taskDir = filepath.Join(harnessConfig.BasePath, taskDir)
	}
	return filepath.Abs(taskDir)
}
