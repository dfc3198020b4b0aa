// Package config loads runtime settings from flags, environment, .env and
// an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix         = "BIPDF"
	DefaultConfigFile = "bilingual-pdf.yaml"
	DefaultListenAddr = ":5000"
)

const (
	EngineLatexOnline = "latexonline"
	EngineXeLaTeX     = "xelatex"
	EngineChrome      = "chrome"
)

type Config struct {
	ListenAddr     string        `mapstructure:"listen_addr" yaml:"listen_addr" validate:"required"`
	Port           string        `mapstructure:"port" yaml:"-"`
	SefariaURL     string        `mapstructure:"sefaria_url" yaml:"sefaria_url" validate:"required,url"`
	EnglishVersion string        `mapstructure:"english_version" yaml:"english_version"`
	Engine         string        `mapstructure:"engine" yaml:"engine" validate:"required,oneof=latexonline xelatex chrome"`
	LatexOnlineURL string        `mapstructure:"latexonline_url" yaml:"latexonline_url" validate:"required_if=Engine latexonline,omitempty,url"`
	XeLaTeXPath    string        `mapstructure:"xelatex_path" yaml:"xelatex_path" validate:"required_if=Engine xelatex"`
	ChromePath     string        `mapstructure:"chrome_path" yaml:"chrome_path"`
	FontDir        string        `mapstructure:"font_dir" yaml:"font_dir" validate:"required"`
	HebrewFont     string        `mapstructure:"hebrew_font" yaml:"hebrew_font" validate:"required"`
	EnglishFont    string        `mapstructure:"english_font" yaml:"english_font" validate:"required"`
	DropFootnotes  bool          `mapstructure:"drop_footnotes" yaml:"drop_footnotes"`
	RetryCount     int           `mapstructure:"retry_count" yaml:"retry_count" validate:"gte=0,lte=10"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout" validate:"required"`
	CompileTimeout time.Duration `mapstructure:"compile_timeout" yaml:"compile_timeout" validate:"required"`
	Debug          bool          `mapstructure:"debug" yaml:"debug"`
	JSONLogs       bool          `mapstructure:"json_logs" yaml:"json_logs"`
}

// SetDefaults registers every key with its default so that environment
// variables are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("port", "")
	v.SetDefault("sefaria_url", "https://www.sefaria.org")
	v.SetDefault("english_version", "The_Koren_Jerusalem_Bible")
	v.SetDefault("engine", EngineLatexOnline)
	v.SetDefault("latexonline_url", "https://latexonline.cc/compile")
	v.SetDefault("xelatex_path", "xelatex")
	v.SetDefault("chrome_path", "")
	v.SetDefault("font_dir", "./")
	v.SetDefault("hebrew_font", "TaameyFrankCLM-Medium")
	v.SetDefault("english_font", "Cardo-Regular")
	v.SetDefault("drop_footnotes", false)
	v.SetDefault("retry_count", 3)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("compile_timeout", 120*time.Second)
	v.SetDefault("debug", false)
	v.SetDefault("json_logs", false)
}

// Prepare wires environment lookup and the config file into v. cfgFile may
// be empty, in which case ./bilingual-pdf.yaml is used when present.
func Prepare(v *viper.Viper, cfgFile string) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(DefaultConfigFile, ".yaml"))
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("port", "PORT")
}

// LoadDotEnv reads .env into the process environment. A missing file is
// not an error; existing variables are not overridden.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads the config file (if any) and decodes v into a validated Config.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// PORT only applies while listen_addr is left at its default.
	if cfg.Port != "" && cfg.ListenAddr == DefaultListenAddr {
		cfg.ListenAddr = ":" + cfg.Port
	}

	if errs := cfg.Validate(); errs != nil {
		return nil, &ValidationError{Errors: errs}
	}
	return cfg, nil
}

// ValidationError lists invalid keys with the rule each one broke.
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Errors))
	for k, v := range e.Errors {
		keys = append(keys, k+": "+v)
	}
	sort.Strings(keys)
	return "invalid config: " + strings.Join(keys, ", ")
}

var validate = validator.New()

// Validate returns nil when the config is usable, otherwise a map from
// field name to the failed rule.
func (c *Config) Validate() map[string]string {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return map[string]string{"config": err.Error()}
		}
		out := make(map[string]string, len(verrs))
		for _, e := range verrs {
			out[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return out
	}
	return nil
}
