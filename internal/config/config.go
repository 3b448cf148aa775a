// Package config loads and persists user settings.
//
// Settings live in a flat YAML file at $XDG_CONFIG_HOME/go-wotd/config.yaml
// (or ~/.config/go-wotd/config.yaml). Environment variables prefixed with
// WOTD_ override the file (WOTD_MAX_ATTEMPTS, WOTD_RETRY_BASE, ...).
// API keys are never stored here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/alnah/go-wotd/internal/lang"
)

// Config keys.
const (
	KeyProvider       = "provider"
	KeyPrimaryModel   = "primary-model"
	KeyFallbackModel  = "fallback-model"
	KeyMaxAttempts    = "max-attempts"
	KeyRetryBase      = "retry-base"
	KeyWordLanguage   = "word-language"
	KeyNativeLanguage = "native-language"
	KeyStyle          = "style"
	KeyLogLevel       = "log-level"
	KeyOutputDir      = "output-dir"
)

// EnvPrefix prefixes environment overrides: output-dir -> WOTD_OUTPUT_DIR.
const EnvPrefix = "WOTD"

// NoFallback as fallback-model disables the fallback candidate.
const NoFallback = "none"

const fileName = "config.yaml"

// Retry bounds. They must match the max-attempts and retry-base tags on Config.
const (
	MinAttempts  = 1
	MaxAttempts  = 10
	MaxRetryBase = time.Minute
)

// Config holds user settings. Empty model names mean "provider default".
type Config struct {
	Provider       string        `mapstructure:"provider" validate:"required,oneof=gemini openai deepseek"`
	PrimaryModel   string        `mapstructure:"primary-model"`
	FallbackModel  string        `mapstructure:"fallback-model"`
	MaxAttempts    int           `mapstructure:"max-attempts" validate:"min=1,max=10"`
	RetryBase      time.Duration `mapstructure:"retry-base" validate:"gte=0,lte=1m"`
	WordLanguage   string        `mapstructure:"word-language" validate:"required"`
	NativeLanguage string        `mapstructure:"native-language" validate:"required"`
	Style          string        `mapstructure:"style" validate:"required,oneof=daily brief"`
	LogLevel       string        `mapstructure:"log-level" validate:"required,oneof=debug info warn error"`
	OutputDir      string        `mapstructure:"output-dir"`
}

// Defaults returns the built-in settings.
func Defaults() Config {
	return Config{
		Provider:       "gemini",
		MaxAttempts:    3,
		RetryBase:      3 * time.Second,
		WordLanguage:   "de",
		NativeLanguage: "pl",
		Style:          "daily",
		LogLevel:       "info",
	}
}

// Keys returns every config key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(keyKinds))
	for k := range keyKinds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

type kind int

const (
	kindString kind = iota
	kindInt
	kindDuration
)

var keyKinds = map[string]kind{
	KeyProvider:       kindString,
	KeyPrimaryModel:   kindString,
	KeyFallbackModel:  kindString,
	KeyMaxAttempts:    kindInt,
	KeyRetryBase:      kindDuration,
	KeyWordLanguage:   kindString,
	KeyNativeLanguage: kindString,
	KeyStyle:          kindString,
	KeyLogLevel:       kindString,
	KeyOutputDir:      kindString,
}

// IsKey reports whether key is a config setting.
func IsKey(key string) bool {
	_, ok := keyKinds[key]
	return ok
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report config keys, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

// Validate checks every setting and the language pair.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%s: %w", strings.Join(msgs, "; "), ErrInvalid)
		}
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	if _, err := lang.NewPair(c.WordLanguage, c.NativeLanguage); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalid)
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

// ---------------------------------------------------------------------------
// Paths
// ---------------------------------------------------------------------------

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/go-wotd.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "go-wotd"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "go-wotd"), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, fileName), nil
}

// ---------------------------------------------------------------------------
// Load
// ---------------------------------------------------------------------------

// Load reads the config file and WOTD_* environment overrides.
// Precedence: environment, then file, then Defaults().
// A missing file is not an error.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile is Load with an explicit file path.
func LoadFile(p string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(p)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault(KeyProvider, d.Provider)
	v.SetDefault(KeyPrimaryModel, d.PrimaryModel)
	v.SetDefault(KeyFallbackModel, d.FallbackModel)
	v.SetDefault(KeyMaxAttempts, d.MaxAttempts)
	v.SetDefault(KeyRetryBase, d.RetryBase)
	v.SetDefault(KeyWordLanguage, d.WordLanguage)
	v.SetDefault(KeyNativeLanguage, d.NativeLanguage)
	v.SetDefault(KeyStyle, d.Style)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyOutputDir, d.OutputDir)

	if err := readFile(v); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %v: %w", p, err, ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", p, err)
	}
	return cfg, nil
}

// readFile reads v's config file, ignoring a missing one.
func readFile(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// fileOnly returns a viper bound to p without defaults or environment.
func fileOnly(p string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(p)
	v.SetConfigType("yaml")
	if err := readFile(v); err != nil {
		return nil, err
	}
	return v, nil
}

// ---------------------------------------------------------------------------
// Save / Get / List
// ---------------------------------------------------------------------------

// Save writes one setting to the config file. See SaveAll.
func Save(key, value string) error {
	return SaveAll(map[string]string{key: value})
}

// SaveAll writes several settings to the config file at once. The merged
// file is validated as a whole before anything is written, so dependent keys
// (word-language and native-language) can be changed together.
// Creates the config directory and file if they don't exist. Other keys
// already in the file are preserved.
func SaveAll(values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		if !IsKey(key) {
			return fmt.Errorf("%q (valid keys: %s): %w", key, strings.Join(Keys(), ", "), ErrUnknownKey)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	p, err := Path()
	if err != nil {
		return err
	}

	v, err := fileOnly(p)
	if err != nil {
		return err
	}

	for _, key := range keys {
		typed, err := typedValue(key, values[key])
		if err != nil {
			return err
		}
		v.Set(key, typed)
	}

	// Validate the merged result before touching the file.
	merged := Defaults()
	if err := v.Unmarshal(&merged); err != nil {
		return fmt.Errorf("%s: %v: %w", strings.Join(keys, ", "), err, ErrInvalid)
	}
	if err := merged.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	if err := v.WriteConfigAs(p); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// typedValue converts a raw value to the type stored in the file.
func typedValue(key, value string) (any, error) {
	switch keyKinds[key] {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q: %w", key, value, ErrInvalid)
		}
		return n, nil
	case kindDuration:
		d, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%s must be a duration like 3s or 500ms, got %q: %w", key, value, ErrInvalid)
		}
		return d.String(), nil
	default:
		return value, nil
	}
}

// Get reads a single value from the config file.
// Returns empty string if the key is not set.
func Get(key string) (string, error) {
	if !IsKey(key) {
		return "", fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}

	p, err := Path()
	if err != nil {
		return "", err
	}
	v, err := fileOnly(p)
	if err != nil {
		return "", err
	}
	if !v.IsSet(key) {
		return "", nil
	}
	return v.GetString(key), nil
}

// List returns the values stored in the config file.
func List() (map[string]string, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	v, err := fileOnly(p)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	for _, key := range v.AllKeys() {
		values[key] = v.GetString(key)
	}
	return values, nil
}

// ---------------------------------------------------------------------------
// Output paths
// ---------------------------------------------------------------------------

// ResolveOutputPath resolves the final output path using the following precedence:
//  1. If output is absolute, use it as-is
//  2. If output is relative and outputDir is set, join them
//  3. If output is empty, use defaultName in outputDir (or cwd if no outputDir)
func ResolveOutputPath(output, outputDir, defaultName string) string {
	if output != "" && filepath.IsAbs(output) {
		return filepath.Clean(output)
	}

	if output != "" {
		if outputDir != "" {
			return filepath.Clean(filepath.Join(outputDir, output))
		}
		return filepath.Clean(output)
	}

	if outputDir != "" {
		return filepath.Clean(filepath.Join(outputDir, defaultName))
	}
	return filepath.Clean(defaultName)
}

// EnsureOutputDir creates d if needed and checks that it is a writable directory.
func EnsureOutputDir(d string) error {
	if d == "" {
		return fmt.Errorf("output-dir cannot be empty: %w", ErrInvalid)
	}
	d = ExpandPath(d)

	info, err := os.Stat(d)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot access directory: %w", err)
		}
		if err := os.MkdirAll(d, 0750); err != nil { // #nosec G301 -- user output dir
			return fmt.Errorf("cannot create directory: %w", err)
		}
		return nil
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", d, ErrNotDirectory)
	}

	f, err := os.CreateTemp(d, ".go-wotd-write-test-*")
	if err != nil {
		return fmt.Errorf("%s: %w: %v", d, ErrNotWritable, err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
