package config

import (
	"github.com/spf13/viper"

	"github.com/inferloop/tabclean/pkg/constants"
)

type CLIConfig struct {
	ServerURL     string         `mapstructure:"server_url"`
	DefaultOutput string         `mapstructure:"default_output"`
	DefaultFormat string         `mapstructure:"default_format"`
	Cleaning      CleaningConfig `mapstructure:"cleaning"`
}

type CleaningConfig struct {
	WinsorizeMinSamples int     `mapstructure:"winsorize_min_samples"`
	IQRMultiplier       float64 `mapstructure:"iqr_multiplier"`
	TextFill            string  `mapstructure:"text_fill"`
	ParallelWorkers     int     `mapstructure:"parallel_workers"`
}

// LoadConfig reads the CLI configuration from viper's already
// initialized state (config file plus TABCLEAN_* environment).
func LoadConfig() (*CLIConfig, error) {
	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("default_output", "-")
	viper.SetDefault("default_format", "csv")
	viper.SetDefault("cleaning.winsorize_min_samples", constants.DefaultWinsorizeMinSamples)
	viper.SetDefault("cleaning.iqr_multiplier", constants.DefaultIQRMultiplier)
	viper.SetDefault("cleaning.text_fill", constants.DefaultTextFill)
	viper.SetDefault("cleaning.parallel_workers", constants.DefaultParallelWorkers)

	config := &CLIConfig{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}
	return config, nil
}
