package config

import (
	"flag"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/basicflag"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix is stripped from environment variable names before they become keys.
const envPrefix = "DISPO_"

// AppConfig holds configuration values layered from defaults, environment
// variables and command-line flags, in that order of precedence.
type AppConfig struct {
	// Env is the runtime environment, either "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel controls log verbosity: "debug", "info", "warn", or "error".
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	// Input is the file of candidate addresses, one per line.
	Input string `koanf:"input" validate:"required"`

	// Output receives the disposable addresses. Truncated on every run.
	Output string `koanf:"output" validate:"required,nefield=Input"`

	// Refresh replaces the local domain list from the remote source before filtering.
	Refresh bool `koanf:"refresh"`

	// Store is the local domain list file.
	Store string `koanf:"store" validate:"required"`

	SourceURL    string        `koanf:"source_url" validate:"required,http_url"`
	SourceFormat string        `koanf:"source_format" validate:"required,oneof=markup plain"`
	SourceClass  string        `koanf:"source_class" validate:"omitempty,css_class"`
	FetchTimeout time.Duration `koanf:"fetch_timeout" validate:"gt=0"`

	// CacheSize bounds the verdict cache; 0 disables it.
	CacheSize uint `koanf:"cache_size"`

	// BloomFPRate is the target false-positive rate of the membership prefilter.
	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"gt=0,lt=1"`
}

// DEFAULT_APP_CONFIG defines the documented defaults. Components never embed
// these values; the caller passes the loaded AppConfig down.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:          "prod",
	LogLevel:     "info",
	Input:        "emails.txt",
	Output:       "filtered_emails.txt",
	Refresh:      false,
	Store:        "disposable_domains.txt",
	SourceURL:    "https://gist.github.com/michenriksen/8710649",
	SourceFormat: "markup",
	SourceClass:  "js-file-line",
	FetchTimeout: 30 * time.Second,
	CacheSize:    1024,
	BloomFPRate:  0.01,
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"i": "input",
	"o": "output",
	"r": "refresh",
}

var cssClassRe = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// validCSSClass reports whether the field is a single CSS class token.
func validCSSClass(fl validator.FieldLevel) bool {
	return cssClassRe.MatchString(fl.Field().String())
}

// defaultLoader loads DEFAULT_APP_CONFIG through the structs provider.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// envLoader loads environment variables with the prefix "DISPO_".
// Keys are lowercased with the prefix removed; values are trimmed.
// It can be replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), strings.TrimSpace(value)
		},
	}), nil)
}

// flagLoader parses args into a FlagSet whose defaults are the values loaded
// so far, then merges it on top. Flags left unset therefore keep the env or
// default value.
var flagLoader = func(k *koanf.Koanf, fs *flag.FlagSet, args []string) error {
	fs.String("i", k.String("input"), "Path of input file with the email addresses.")
	fs.String("o", k.String("output"), "Path where the output will be put.")
	fs.Bool("r", k.Bool("refresh"), "Refresh local copy of the disposable domains file.")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	return k.Load(basicflag.ProviderWithValue(fs, ".", func(name, value string) (string, any) {
		key, ok := flagKeys[name]
		if !ok {
			return "", nil
		}
		return key, value
	}), nil)
}

// registerValidation registers the custom "css_class" validation.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("css_class", validCSSClass)
}

// Load builds an AppConfig from defaults, the environment and args (without
// the program name). fs receives the flag definitions so callers control its
// output and error handling.
func Load(fs *flag.FlagSet, args []string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("error loading env: %w", err)
	}

	if err := flagLoader(k, fs, args); err != nil {
		return nil, fmt.Errorf("error loading flags: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(validate); err != nil {
		return nil, fmt.Errorf("error registering validation: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if cfg.SourceFormat == "markup" && cfg.SourceClass == "" {
		return nil, fmt.Errorf("validation failed: source_class is required for the markup format")
	}

	return &cfg, nil
}
