package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/morler/codeassist/app_errors"
	"github.com/morler/codeassist/embed_data"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// ReadPolicyAbort drops the whole README request when one file cannot be read.
	ReadPolicyAbort = "abort"
	// ReadPolicySkip leaves the unreadable file out of the README request.
	ReadPolicySkip = "skip"
)

// Config represents the structure of the configuration file
type Config struct {
	Version            string        `mapstructure:"version"`
	ProjectDir         string        `mapstructure:"project_dir"`
	IncludedExtensions []string      `mapstructure:"included_extensions"`
	ExcludedFiles      []string      `mapstructure:"excluded_files"`
	IgnoredDirs        []string      `mapstructure:"ignored_dirs"`
	Model              string        `mapstructure:"model"`
	ApiKeyVar          string        `mapstructure:"api_key_var"`
	ApiEndpointVar     string        `mapstructure:"api_endpoint_var"`
	ApiKeyHeader       string        `mapstructure:"api_key_header"`
	ReadmePrompt       string        `mapstructure:"readme_prompt"`
	AnalysisPrompt     string        `mapstructure:"analysis_prompt"`
	ReadmeFile         string        `mapstructure:"readme_file"`
	AnalysisDir        string        `mapstructure:"analysis_dir"`
	ReadmeReadPolicy   string        `mapstructure:"readme_read_policy"`
	LogDir             string        `mapstructure:"log_dir"`
	RequestTimeout     time.Duration `mapstructure:"request_timeout"`
	Preview            bool          `mapstructure:"preview"`
	Theme              string        `mapstructure:"theme"`
}

// DefaultConfig values
var DefaultConfig = Config{
	Version:            "1.0.0",
	ProjectDir:         "",
	IncludedExtensions: []string{"*.py", "*.ps1", "*.sql"},
	ExcludedFiles:      []string{"config.py"},
	IgnoredDirs:        []string{".git", ".idea", ".vscode", "node_modules", "__pycache__", ".venv", "venv"},
	Model:              "gpt-4o",
	ApiKeyVar:          "CHATAI_KEY",
	ApiEndpointVar:     "CHATAI_ENDPOINT",
	ApiKeyHeader:       "api-key",
	ReadmePrompt:       string(embed_data.ReadmePrompt),
	AnalysisPrompt:     string(embed_data.AnalysisPrompt),
	ReadmeFile:         "README.md",
	AnalysisDir:        "AI analysis",
	ReadmeReadPolicy:   ReadPolicyAbort,
	LogDir:             "logs",
	RequestTimeout:     0,
	Preview:            false,
	Theme:              "dracula",
}

// cfgFile holds the path to the configuration file (set via CLI)
var cfgFile string

// LoadConfigs initializes the configuration from a .env file, the config file, flags and
// environment variables, and returns the final config.
func LoadConfigs(rootCmd *cobra.Command, cwd string) (*Config, error) {
	var config *Config

	// Credentials may live in a .env next to the project; a missing file is fine
	_ = godotenv.Load(filepath.Join(cwd, ".env"))

	setDefaults()

	viper.AutomaticEnv()
	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: error reading config file: %v", app_errors.ErrConfiguration, err)
		}
	} else {
		viper.SetConfigName("codeassist-config")
		viper.AddConfigPath(cwd)
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: error reading config file: %v", app_errors.ErrConfiguration, err)
			}
		}
	}

	if rootCmd != nil {
		bindFlags(rootCmd)
	}

	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("%w: unable to decode into struct: %v", app_errors.ErrConfiguration, err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// UsedConfigFile returns the config file viper read, or "" when defaults were used.
func UsedConfigFile() string {
	return viper.ConfigFileUsed()
}

func (c *Config) validate() error {
	switch c.ReadmeReadPolicy {
	case ReadPolicyAbort, ReadPolicySkip:
	default:
		return fmt.Errorf("%w: readme_read_policy must be %q or %q, got %q", app_errors.ErrConfiguration, ReadPolicyAbort, ReadPolicySkip, c.ReadmeReadPolicy)
	}
	if len(c.IncludedExtensions) == 0 {
		return fmt.Errorf("%w: included_extensions is empty", app_errors.ErrConfiguration)
	}
	for _, pattern := range c.IncludedExtensions {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: bad extension pattern %q: %v", app_errors.ErrConfiguration, pattern, err)
		}
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("%w: request_timeout must not be negative", app_errors.ErrConfiguration)
	}
	return nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("version", DefaultConfig.Version)
	viper.SetDefault("project_dir", DefaultConfig.ProjectDir)
	viper.SetDefault("included_extensions", DefaultConfig.IncludedExtensions)
	viper.SetDefault("excluded_files", DefaultConfig.ExcludedFiles)
	viper.SetDefault("ignored_dirs", DefaultConfig.IgnoredDirs)
	viper.SetDefault("model", DefaultConfig.Model)
	viper.SetDefault("api_key_var", DefaultConfig.ApiKeyVar)
	viper.SetDefault("api_endpoint_var", DefaultConfig.ApiEndpointVar)
	viper.SetDefault("api_key_header", DefaultConfig.ApiKeyHeader)
	viper.SetDefault("readme_prompt", DefaultConfig.ReadmePrompt)
	viper.SetDefault("analysis_prompt", DefaultConfig.AnalysisPrompt)
	viper.SetDefault("readme_file", DefaultConfig.ReadmeFile)
	viper.SetDefault("analysis_dir", DefaultConfig.AnalysisDir)
	viper.SetDefault("readme_read_policy", DefaultConfig.ReadmeReadPolicy)
	viper.SetDefault("log_dir", DefaultConfig.LogDir)
	viper.SetDefault("request_timeout", DefaultConfig.RequestTimeout)
	viper.SetDefault("preview", DefaultConfig.Preview)
	viper.SetDefault("theme", DefaultConfig.Theme)
}

// bindEnv explicitly binds environment variables to configuration keys
func bindEnv() {
	_ = viper.BindEnv("project_dir", "PROJECT_DIR")
	_ = viper.BindEnv("model", "MODEL")
	_ = viper.BindEnv("readme_read_policy", "README_READ_POLICY")
	_ = viper.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	_ = viper.BindEnv("theme", "THEME")
}

// bindFlags binds the CLI flags to configuration values.
func bindFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("project_dir", flags.Lookup("project_dir"))
	_ = viper.BindPFlag("included_extensions", flags.Lookup("included_extensions"))
	_ = viper.BindPFlag("excluded_files", flags.Lookup("excluded_files"))
	_ = viper.BindPFlag("model", flags.Lookup("model"))
	_ = viper.BindPFlag("readme_read_policy", flags.Lookup("readme_read_policy"))
	_ = viper.BindPFlag("request_timeout", flags.Lookup("request_timeout"))
	_ = viper.BindPFlag("preview", flags.Lookup("preview"))
	_ = viper.BindPFlag("theme", flags.Lookup("theme"))
}

// InitFlags initializes the flags for the root command.
func InitFlags(rootCmd *cobra.Command) {
	flags := rootCmd.PersistentFlags()

	flags.StringVarP(&cfgFile, "config", "c", "", "Specifies the path to a configuration file (JSON or YAML) that contains all the settings for the application.")
	flags.StringP("project_dir", "p", DefaultConfig.ProjectDir, "The project directory to scan for source files.")
	flags.StringSlice("included_extensions", DefaultConfig.IncludedExtensions, "File name patterns to include (e.g., '*.py,*.sql').")
	flags.StringSlice("excluded_files", DefaultConfig.ExcludedFiles, "File names to leave out of every request.")
	flags.String("model", DefaultConfig.Model, "The model name used for token estimation, such as 'gpt-4o'.")
	flags.String("readme_read_policy", DefaultConfig.ReadmeReadPolicy, "What to do when a file cannot be read while building the README request: 'abort' or 'skip'.")
	flags.Duration("request_timeout", DefaultConfig.RequestTimeout, "Timeout for a single chat request (0 waits indefinitely).")
	flags.Bool("preview", DefaultConfig.Preview, "Print every generated markdown file to the terminal after saving it.")
	flags.String("theme", DefaultConfig.Theme, "Set customize theme for the markdown preview. (e.g., 'dracula', 'monokai', 'github')")

	rootCmd.Flags().BoolP("version", "v", false, "Specifies the version of the application.")
}

// ProjectRoot returns the configured project directory as an absolute path, or "" when unset.
// An unset directory is reported by the collector, not here.
func (c *Config) ProjectRoot() string {
	if c.ProjectDir == "" {
		return ""
	}
	if abs, err := filepath.Abs(c.ProjectDir); err == nil {
		return abs
	}
	return c.ProjectDir
}
