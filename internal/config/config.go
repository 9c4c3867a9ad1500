package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("pathwise version %s, commit %s, built at %s", version, commit, date)
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Logging LoggingConfig `mapstructure:"logging"`
	Storage StorageConfig `mapstructure:"storage"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
}

// APIConfig describes the remote learning-pathway service.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
	OutputPath        string `mapstructure:"output_path"`
	AppendToFile      bool   `mapstructure:"append_to_file"`
	DisableConsole    bool   `mapstructure:"disable_console"`
}

// StorageConfig locates the durable client-side state: the token pair file
// and the onboarding draft file.
type StorageConfig struct {
	Dir string `mapstructure:"dir"`
}

// OAuthConfig configures the loopback listener that receives the provider
// callback during the browser-based sign-in flow.
type OAuthConfig struct {
	CallbackHost string `mapstructure:"callback_host"`
	CallbackPort int    `mapstructure:"callback_port"`
}

// InitFlags initializes command line flags (without parsing)
func InitFlags() {
	pflag.String("api.base-url", "", "Base URL of the pathway service API")
	pflag.String("storage.dir", "", "Directory for tokens and drafts")
	// Note: no pflag.Parse() here as it's called in main.go
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".pathwise"
	}
	return filepath.Join(base, "pathwise")
}

func Load() (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("PATHWISE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	stateDir := defaultStateDir()

	viper.SetDefault("api.base_url", "http://localhost:5000")
	viper.SetDefault("api.timeout", 30*time.Second)
	viper.SetDefault("storage.dir", stateDir)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", filepath.Join(stateDir, "pathwise.log"))
	viper.SetDefault("logging.append_to_file", true)
	// The TUI owns the terminal, so console logging is off by default.
	viper.SetDefault("logging.disable_console", true)
	viper.SetDefault("oauth.callback_host", "127.0.0.1")
	viper.SetDefault("oauth.callback_port", 53682)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(stateDir)

	if err := viper.ReadInConfig(); err != nil {
		// A client without a config file runs on defaults.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Set base URL from flag or environment
	if baseURL := viper.GetString("api.base-url"); baseURL != "" {
		config.API.BaseURL = baseURL
	}
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")
	if config.API.BaseURL == "" {
		return nil, fmt.Errorf("api base URL is required, please adjust the config or pass --api.base-url or PATHWISE_API_BASE_URL environment variable")
	}

	if dir := viper.GetString("storage.dir"); dir != "" {
		config.Storage.Dir = dir
	}

	return &config, nil
}
