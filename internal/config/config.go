package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/lcexplorer/internal/utils"
)

// Global configuration structure.
type Global struct {
	Mode    string `mapstructure:"mode" yaml:"mode"`
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	Addr    string `mapstructure:"addr" yaml:"addr"`

	// CSV format
	Delimiter        string `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator string `mapstructure:"decimal_separator" yaml:"decimal_separator"`

	// Circle-size slider
	MinCircleSize     float64 `mapstructure:"min_circle_size" yaml:"min_circle_size"`
	MaxCircleSize     float64 `mapstructure:"max_circle_size" yaml:"max_circle_size"`
	DefaultCircleSize float64 `mapstructure:"default_circle_size" yaml:"default_circle_size"`

	MaxUploadMB int `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`

	// Page content
	Title       string `mapstructure:"title" yaml:"title"`
	Subtitle    string `mapstructure:"subtitle" yaml:"subtitle"`
	Conclusion  string `mapstructure:"conclusion" yaml:"conclusion"`
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.lcexplorer/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env (.env included) > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LCEXPLORER")
	v.AutomaticEnv()

	v.SetDefault("mode", "upload")
	v.SetDefault("data_dir", "data")
	v.SetDefault("addr", "127.0.0.1:8501")
	v.SetDefault("delimiter", ";")
	v.SetDefault("decimal_separator", ",")
	v.SetDefault("min_circle_size", 1.0)
	v.SetDefault("max_circle_size", 100.0)
	v.SetDefault("default_circle_size", 1.0)
	v.SetDefault("max_upload_mb", 32)
	v.SetDefault("title", "Astronomical Data Explorer")
	v.SetDefault("subtitle", "For the analysis and comparison of astronomical data")
	v.SetDefault("conclusion", "")
	v.SetDefault("chart_width", 900)
	v.SetDefault("chart_height", 500)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Rune returns the single rune of s, or 0 when s is empty or longer.
func Rune(s string) rune {
	switch s {
	case "tab", `\t`:
		return '\t'
	case "comma":
		return ','
	case "dot":
		return '.'
	case "semicolon":
		return ';'
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0
	}
	return r[0]
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	dir := filepath.Join(home, ".lcexplorer")
	_ = os.MkdirAll(dir, 0o755)
	return dir, nil
}
