// This file defines the configuration structure for the application.
package config

import (
	// use Viper for loading the config.yml file.
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	Port     int `mapstructure:"port"`
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Recommendations struct {
		TTLHours      int `mapstructure:"ttl_hours"`
		SweepInterval int `mapstructure:"sweep_interval"` // minutes, 0 disables the sweep
	} `mapstructure:"recommendations"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
}

// Load reads configuration from a file named "config.yml" in the
// current directory and unmarshals it into a Config struct.
func Load() (*Config, error) {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yml")    // or "yaml"
	viper.AddConfigPath(".")      // looking for config in the current directory

	// --- Environment Variable Overrides ---
	// This tells Viper to look for environment variables with a "BOOKBUDDY_"
	// prefix. e.g., BOOKBUDDY_DATABASE_PATH overrides the `database.path` key.
	viper.SetEnvPrefix("BOOKBUDDY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("port", 8080)
	viper.SetDefault("database.path", "./bookbuddy.db")
	viper.SetDefault("recommendations.ttl_hours", 24)
	viper.SetDefault("recommendations.sweep_interval", 60)
	viper.SetDefault("openai_api_key", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error and use defaults
		} else {
			// Config file was found but another error was produced
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
