package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appName = "catty"

// DefaultRenameFormat orders filename components: artist, album, number, title.
const DefaultRenameFormat = "aAnt"

// Config contains the program configuration
type Config struct {
	Verbose      bool   `yaml:"verbose"`
	LibraryDir   string `yaml:"library_dir"`
	YtDlpPath    string `yaml:"ytdlp_path"`
	FFmpegPath   string `yaml:"ffmpeg_path"`
	ParallelJobs int    `yaml:"parallel_jobs"`
	RenameFormat string `yaml:"rename_format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Verbose:      false,
		LibraryDir:   ".",
		ParallelJobs: 1,
		RenameFormat: DefaultRenameFormat,
	}
}

// LoadConfigFile loads configuration from a YAML file.
// If path is empty, searches standard locations. Returns defaults if no file found.
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg.LibraryDir = ExpandHome(cfg.LibraryDir)
	cfg.YtDlpPath = ExpandHome(cfg.YtDlpPath)
	cfg.FFmpegPath = ExpandHome(cfg.FFmpegPath)

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(xdg.Home, path[2:])
	}
	return path
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() string {
	locations := []string{
		"./" + appName + ".yaml",
		"./" + appName + ".yml",
		filepath.Join(xdg.ConfigHome, appName, "config.yaml"),
		filepath.Join(xdg.ConfigHome, appName, "config.yml"),
		filepath.Join(xdg.Home, "."+appName+".yaml"),
		filepath.Join(xdg.Home, "."+appName+".yml"),
	}

	for _, path := range locations {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// SaveConfigFile saves the configuration to a YAML file
func SaveConfigFile(cfg Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// GetDefaultLogPath returns the default log directory path
func GetDefaultLogPath() string {
	return filepath.Join(xdg.DataHome, appName, "logs")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ParallelJobs < 1 {
		return fmt.Errorf("parallel jobs must be at least 1, got %d", c.ParallelJobs)
	}
	if c.ParallelJobs > 10 {
		return fmt.Errorf("parallel jobs cannot exceed 10 (to avoid rate limiting), got %d", c.ParallelJobs)
	}

	if c.LibraryDir == "" {
		return fmt.Errorf("library_dir cannot be empty")
	}

	if err := ValidateRenameFormat(c.RenameFormat); err != nil {
		return err
	}

	return nil
}

// ValidateRenameFormat checks that format only uses the letters a, A, n and t,
// each at most once.
func ValidateRenameFormat(format string) error {
	if format == "" {
		return fmt.Errorf("rename format cannot be empty")
	}
	seen := make(map[rune]bool, len(format))
	for _, r := range format {
		switch r {
		case 'a', 'A', 'n', 't':
		default:
			return fmt.Errorf("unknown rename format letter %q, valid letters: a (artist), A (album), n (number), t (title)", r)
		}
		if seen[r] {
			return fmt.Errorf("rename format letter %q used more than once", r)
		}
		seen[r] = true
	}
	return nil
}
