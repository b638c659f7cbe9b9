// Package config loads title-triage settings from defaults, an optional YAML
// file, a .env file, TRIAGE_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "TRIAGE"

// Default values.
const (
	DefaultOutputRoot = "./res"
	DefaultLanguage   = "eng"
	DefaultLogLevel   = "info"
	DefaultLogDir     = "logs"
)

// Config is the complete runtime configuration.
type Config struct {
	Output OutputConfig `mapstructure:"output" yaml:"output"`
	OCR    OCRConfig    `mapstructure:"ocr" yaml:"ocr"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

// OutputConfig controls where routed images are written.
type OutputConfig struct {
	// Root is the destination root holding category folders and error/.
	Root string `mapstructure:"root" yaml:"root"`
}

// OCRConfig controls the text recognizer.
type OCRConfig struct {
	Language string `mapstructure:"language" yaml:"language"`
	// TessdataDir is where models are provisioned to and loaded from.
	// Empty means the per-user cache directory.
	TessdataDir string `mapstructure:"tessdata_dir" yaml:"tessdata_dir"`
	// ModelSourceDir holds *.traineddata files to provision. Empty skips
	// provisioning and lets Tesseract use its system data path.
	ModelSourceDir string `mapstructure:"model_source_dir" yaml:"model_source_dir"`
	Preprocess     bool   `mapstructure:"preprocess" yaml:"preprocess"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Dir         string `mapstructure:"dir" yaml:"dir"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// FlagBindings maps config keys to command-line flag names.
var FlagBindings = map[string]string{
	"output.root":  "res-path",
	"ocr.language": "lang",
	"log.level":    "log-level",
	"log.dir":      "log-dir",
}

// Options controls how Load finds its sources.
type Options struct {
	// File is an explicit config file path. Empty searches for
	// title-triage.yaml in the working directory and ./config.
	File string
	// Flags are bound over the other sources when they were set.
	Flags *pflag.FlagSet
	// Debug forces the debug log level.
	Debug bool
}

// Load builds a Config from all sources.
func Load(opts Options) (*Config, error) {
	// .env is optional; existing environment variables are not overwritten
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("title-triage")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for key, name := range FlagBindings {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if opts.Debug {
		v.Set("log.level", "debug")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that required settings are present.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Root) == "" {
		return errors.New("output.root must not be empty")
	}
	if strings.TrimSpace(c.OCR.Language) == "" {
		return errors.New("ocr.language must not be empty")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("output.root", DefaultOutputRoot)
	v.SetDefault("ocr.language", DefaultLanguage)
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.model_source_dir", "")
	v.SetDefault("ocr.preprocess", true)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.dir", DefaultLogDir)
	v.SetDefault("log.development", false)
}
