package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/repoghost/repoghost/constants/lipgloss"
	"github.com/repoghost/repoghost/providers"
)

// Config represents the structure of the configuration file
type Config struct {
	Version             string                      `mapstructure:"version"`
	ChunkSize           int                         `mapstructure:"chunk_size"`
	ChunkWorkers        int                         `mapstructure:"chunk_workers"`
	MaxDepth            int                         `mapstructure:"max_depth"`
	CacheFile           string                      `mapstructure:"cache_file"`
	OutputFile          string                      `mapstructure:"output_file"`
	ResummarizeDegraded bool                        `mapstructure:"resummarize_degraded"`
	CopyToClipboard     bool                        `mapstructure:"copy_to_clipboard"`
	ExcludedDirs        []string                    `mapstructure:"excluded_dirs"`
	ExcludedFiles       []string                    `mapstructure:"excluded_files"`
	ValidExtensions     []string                    `mapstructure:"valid_extensions"`
	AIProviderConfig    *providers.AIProviderConfig `mapstructure:"ai_provider_config"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:             "1.1",
	ChunkSize:           30,
	ChunkWorkers:        1,
	MaxDepth:            5,
	CacheFile:           "hash_cache.json",
	OutputFile:          "summaries.json",
	ResummarizeDegraded: false,
	CopyToClipboard:     true,
	AIProviderConfig: &providers.AIProviderConfig{
		Provider:              "openai",
		BaseURL:               "https://api.openai.com/v1",
		Model:                 "gpt-4o",
		ApiKey:                "",
		Temperature:           nil,
		RequestTimeoutSeconds: 120,
	},
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from file, flags, and environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) *Config {
	var config *Config

	// Set default values using Viper
	setDefaults()

	// Automatically read environment variables
	viper.AutomaticEnv()

	// Explicitly bind environment variables to config keys
	bindEnv()

	// Check if the user provided a config file
	if cfgFile != "" {
		// Use the config file from the flag
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error reading config file: %v", err)))
			os.Exit(1)
		}
	} else {
		// Look for configuration files in the current directory
		viper.SetConfigName("repoghost-config")
		viper.AddConfigPath(cwd)

		// Support both YAML and JSON formats
		viper.SetConfigType("yaml")
		if err := viper.ReadInConfig(); err != nil {
			viper.SetConfigType("json")
			if err := viper.ReadInConfig(); err != nil {
				// No configuration file found, continue with defaults
				_ = err
			}
		}
	}

	// Bind CLI flags to override config values
	bindFlags(rootCmd)

	// Unmarshal the configuration into the Config struct
	if err := viper.Unmarshal(&config); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Unable to decode into struct: %v", err)))
		os.Exit(1)
	}

	return config
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("chunk_size", DefaultConfig.ChunkSize)
	viper.SetDefault("chunk_workers", DefaultConfig.ChunkWorkers)
	viper.SetDefault("max_depth", DefaultConfig.MaxDepth)
	viper.SetDefault("cache_file", DefaultConfig.CacheFile)
	viper.SetDefault("output_file", DefaultConfig.OutputFile)
	viper.SetDefault("resummarize_degraded", DefaultConfig.ResummarizeDegraded)
	viper.SetDefault("copy_to_clipboard", DefaultConfig.CopyToClipboard)
	viper.SetDefault("excluded_dirs", DefaultConfig.ExcludedDirs)
	viper.SetDefault("excluded_files", DefaultConfig.ExcludedFiles)
	viper.SetDefault("valid_extensions", DefaultConfig.ValidExtensions)
	viper.SetDefault("ai_provider_config.provider", DefaultConfig.AIProviderConfig.Provider)
	viper.SetDefault("ai_provider_config.base_url", DefaultConfig.AIProviderConfig.BaseURL)
	viper.SetDefault("ai_provider_config.model", DefaultConfig.AIProviderConfig.Model)
	viper.SetDefault("ai_provider_config.api_key", DefaultConfig.AIProviderConfig.ApiKey)
	viper.SetDefault("ai_provider_config.temperature", DefaultConfig.AIProviderConfig.Temperature)
	viper.SetDefault("ai_provider_config.request_timeout", DefaultConfig.AIProviderConfig.RequestTimeoutSeconds)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("chunk_size", "CHUNK_SIZE")
	_ = viper.BindEnv("chunk_workers", "CHUNK_WORKERS")
	_ = viper.BindEnv("max_depth", "MAX_DEPTH")
	_ = viper.BindEnv("cache_file", "CACHE_FILE")
	_ = viper.BindEnv("output_file", "OUTPUT_FILE")
	_ = viper.BindEnv("resummarize_degraded", "RESUMMARIZE_DEGRADED")
	_ = viper.BindEnv("copy_to_clipboard", "COPY_TO_CLIPBOARD")
	_ = viper.BindEnv("ai_provider_config.provider", "PROVIDER")
	_ = viper.BindEnv("ai_provider_config.base_url", "BASE_URL")
	_ = viper.BindEnv("ai_provider_config.model", "MODEL")
	_ = viper.BindEnv("ai_provider_config.temperature", "TEMPERATURE")
	_ = viper.BindEnv("ai_provider_config.api_key", "API_KEY", "OPENAI_API_KEY")
	_ = viper.BindEnv("ai_provider_config.request_timeout", "REQUEST_TIMEOUT")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	_ = viper.BindPFlag("chunk_size", rootCmd.PersistentFlags().Lookup("chunk_size"))
	_ = viper.BindPFlag("chunk_workers", rootCmd.PersistentFlags().Lookup("chunk_workers"))
	_ = viper.BindPFlag("max_depth", rootCmd.PersistentFlags().Lookup("max_depth"))
	_ = viper.BindPFlag("cache_file", rootCmd.PersistentFlags().Lookup("cache_file"))
	_ = viper.BindPFlag("output_file", rootCmd.PersistentFlags().Lookup("output_file"))
	_ = viper.BindPFlag("resummarize_degraded", rootCmd.PersistentFlags().Lookup("resummarize_degraded"))
	_ = viper.BindPFlag("copy_to_clipboard", rootCmd.PersistentFlags().Lookup("copy_to_clipboard"))
	_ = viper.BindPFlag("ai_provider_config.provider", rootCmd.PersistentFlags().Lookup("provider"))
	_ = viper.BindPFlag("ai_provider_config.base_url", rootCmd.PersistentFlags().Lookup("base_url"))
	_ = viper.BindPFlag("ai_provider_config.model", rootCmd.PersistentFlags().Lookup("model"))
	_ = viper.BindPFlag("ai_provider_config.temperature", rootCmd.PersistentFlags().Lookup("temperature"))
	_ = viper.BindPFlag("ai_provider_config.api_key", rootCmd.PersistentFlags().Lookup("api_key"))
	_ = viper.BindPFlag("ai_provider_config.request_timeout", rootCmd.PersistentFlags().Lookup("request_timeout"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	// Use PersistentFlags so that these flags are available in all subcommands
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")

	rootCmd.PersistentFlags().Int("chunk_size", DefaultConfig.ChunkSize, "Number of lines grouped into one summarization chunk.")
	rootCmd.PersistentFlags().Int("chunk_workers", DefaultConfig.ChunkWorkers, "Number of chunk summarization calls issued concurrently per file.")
	rootCmd.PersistentFlags().Int("max_depth", DefaultConfig.MaxDepth, "Maximum depth of the generated repository map.")
	rootCmd.PersistentFlags().String("cache_file", DefaultConfig.CacheFile, "Path of the persisted hash cache snapshot.")
	rootCmd.PersistentFlags().String("output_file", DefaultConfig.OutputFile, "Path of the combined summaries snapshot.")
	rootCmd.PersistentFlags().Bool("resummarize_degraded", DefaultConfig.ResummarizeDegraded, "Re-summarize files whose cached entries contain oracle failure text.")
	rootCmd.PersistentFlags().Bool("copy_to_clipboard", DefaultConfig.CopyToClipboard, "Copy the latest summary to the clipboard when the run finishes.")

	// Version flag
	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")

	// AI Provider configuration
	rootCmd.PersistentFlags().String("provider", DefaultConfig.AIProviderConfig.Provider, "The name of the AI provider (e.g., 'openai', 'ollama').")
	rootCmd.PersistentFlags().String("base_url", DefaultConfig.AIProviderConfig.BaseURL, "The base URL of the AI provider.")
	rootCmd.PersistentFlags().String("model", DefaultConfig.AIProviderConfig.Model, "The name of the model used for chunk summarization, such as 'gpt-4o'.")
	rootCmd.PersistentFlags().Float32("temperature", 0, "Adjusts the AI model's creativity (0-1).")
	rootCmd.PersistentFlags().String("api_key", DefaultConfig.AIProviderConfig.ApiKey, "The API key used to authenticate with the AI service provider.")
	rootCmd.PersistentFlags().Int("request_timeout", DefaultConfig.AIProviderConfig.RequestTimeoutSeconds, "Per-chunk oracle call timeout in seconds.")
}

// GetConfigFileType returns the type of the configuration file based on its extension
func GetConfigFileType(filename string) string {
	if strings.HasSuffix(filename, ".json") {
		return "json"
	} else if strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml") {
		return "yaml"
	}
	return ""
}
