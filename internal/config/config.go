package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level reposcribe configuration. Credentials are held
// here and passed explicitly to the clients that need them; nothing in the
// program reads tokens from globals after Load returns.
type Config struct {
	GitHubToken string `mapstructure:"github_token"`
	AIKey       string `mapstructure:"ai_key"`
	VercelToken string `mapstructure:"vercel_token"`

	Model      string `mapstructure:"model"`
	ListenAddr string `mapstructure:"listen_addr"`

	TreeDepth int `mapstructure:"tree_depth"`
	TreeWidth int `mapstructure:"tree_width"`

	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`

	Limits Limits `mapstructure:"limits"`
	Output Output `mapstructure:"output"`
}

// Limits defines prompt truncation bounds for README generation.
type Limits struct {
	DepsPerEcosystem int `mapstructure:"deps_per_ecosystem"`
	StructureLines   int `mapstructure:"structure_lines"`
	ReadmeExcerpt    int `mapstructure:"readme_excerpt"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. A local .env file is
// loaded first so that GITHUB_TOKEN, GOOGLE_AI_API_KEY and VERCEL_TOKEN can
// be kept out of the shell environment during development.
func Load(cfgFile string) (*Config, error) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults.
	v.SetDefault("model", DefaultModel)
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("tree_depth", DefaultTreeDepth)
	v.SetDefault("tree_width", DefaultTreeWidth)
	v.SetDefault("request_timeout", DefaultRequestTimeout)
	v.SetDefault("generate_timeout", DefaultGenerateTimeout)
	v.SetDefault("limits.deps_per_ecosystem", DefaultLimits.DepsPerEcosystem)
	v.SetDefault("limits.structure_lines", DefaultLimits.StructureLines)
	v.SetDefault("limits.readme_excerpt", DefaultLimits.ReadmeExcerpt)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.SetConfigFile(filepath.Join(ConfigDir(), DefaultConfigFile))
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Environment variables override the config file for credentials.
	if t := os.Getenv("GITHUB_TOKEN"); t != "" {
		cfg.GitHubToken = t
	}
	if k := os.Getenv("GOOGLE_AI_API_KEY"); k != "" {
		cfg.AIKey = k
	}
	if t := os.Getenv("VERCEL_TOKEN"); t != "" {
		cfg.VercelToken = t
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite history database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
