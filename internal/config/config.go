// Package config handles command-line parsing, the optional defaults file and
// validation of the result.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Exported variables.
var (
	// ErrShown means help or version text was printed and the program should
	// exit successfully.
	ErrShown = errors.New("help or version shown")
)

// Config holds the application configuration.
//
// Precedence, highest first: command-line flags, DIRLIST_* environment
// variables, the defaults file, built-in defaults.
type Config struct {
	Paths       []string `arg:"positional" help:"directories or URLs to list (sftp://user@host/path, s3://bucket/prefix)" mapstructure:"-"`
	Long        bool     `arg:"-l,--long" help:"show type and size columns" mapstructure:"long"`
	Pattern     string   `arg:"-p,--pattern" help:"only show entries whose name matches this glob (case-insensitive)" mapstructure:"pattern" validate:"omitempty,glob"`
	Interactive bool     `arg:"-i,--interactive" help:"browse interactively" mapstructure:"interactive"`
	Summary     bool     `arg:"--summary" help:"print entry counts and total size after each listing" mapstructure:"summary"`
	LogFile     string   `arg:"--log-file" help:"append log lines to this file" mapstructure:"log_file"`
	LogLevel    string   `arg:"--log-level" help:"debug, info, warn or error" mapstructure:"log_level" validate:"oneof=debug info warn error"`
	PoolSize    int      `arg:"--pool-size" help:"maximum concurrent SFTP sessions" mapstructure:"pool_size" validate:"min=1,max=16"`
	S3Endpoint  string   `arg:"--s3-endpoint" help:"custom S3 endpoint (MinIO, localstack)" mapstructure:"s3_endpoint" validate:"omitempty,url"`
	S3Region    string   `arg:"--s3-region" help:"S3 region" mapstructure:"s3_region"`
	S3AccessKey string   `arg:"--s3-access-key" help:"static S3 access key id (default: AWS credential chain)" mapstructure:"s3_access_key" validate:"required_with=S3SecretKey"`
	S3SecretKey string   `arg:"--s3-secret-key" help:"static S3 secret access key" mapstructure:"s3_secret_key" validate:"required_with=S3AccessKey"`
}

// Description returns the program description for go-arg.
func (Config) Description() string {
	return "List directories on the local disk, over SFTP or in S3 buckets"
}

// Version returns the version string for go-arg.
func (Config) Version() string {
	return "dirlist 1.0.0"
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dirlist/config.yaml, falling back
// to ~/.config.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// Load reads defaults from configPath (or the default location when empty)
// and the environment. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("long", false)
	v.SetDefault("pattern", "")
	v.SetDefault("interactive", false)
	v.SetDefault("summary", false)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("pool_size", defaultPoolSize)
	v.SetDefault("s3_endpoint", "")
	v.SetDefault("s3_region", "")
	v.SetDefault("s3_access_key", "")
	v.SetDefault("s3_secret_key", "")

	v.SetEnvPrefix("DIRLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(configDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Parse fills defaults with the command-line args, then post-processes and
// validates the result. Help and version text go to out and yield ErrShown.
func Parse(args []string, defaults *Config, out io.Writer) (*Config, error) {
	cfg := *defaults

	parser, err := arg.NewParser(arg.Config{Program: "dirlist"}, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	err = parser.Parse(args)

	switch {
	case errors.Is(err, arg.ErrHelp):
		parser.WriteHelp(out)
		return nil, ErrShown
	case errors.Is(err, arg.ErrVersion):
		_, _ = fmt.Fprintln(out, cfg.Version())
		return nil, ErrShown
	case err != nil:
		return nil, fmt.Errorf("%w (see --help)", err)
	}

	return PostProcess(&cfg)
}

// PostProcess applies defaults that depend on other fields and validates.
func PostProcess(cfg *Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		cfg.Paths = []string{"."}
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	err := Validate(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err != nil {
		return formatValidationError(err)
	}

	return nil
}

// unexported constants.
const (
	defaultPoolSize = 4
)

// validate is the shared validator; "glob" checks doublestar pattern syntax.
//
//nolint:gochecknoglobals // Validators cache struct metadata and are meant to be shared
var validate = func() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("glob", func(fl validator.FieldLevel) bool {
		return doublestar.ValidatePattern(fl.Field().String())
	})

	return v
}()

func configDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "dirlist")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".config", "dirlist")
}

// formatValidationError reports the first failed constraint by flag name.
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		e := validationErrs[0]

		return fmt.Errorf("invalid %s: %v fails '%s' check", flagName(e.Field()), e.Value(), e.Tag()) //nolint:err113 // Includes the offending value
	}

	return fmt.Errorf("invalid configuration: %w", err)
}

func flagName(field string) string {
	var b strings.Builder

	b.WriteString("--")

	for i, r := range field {
		if i > 0 && r >= 'A' && r <= 'Z' && !(field[i-1] >= 'A' && field[i-1] <= 'Z') {
			b.WriteByte('-')
		}

		b.WriteRune(r)
	}

	return strings.ToLower(b.String())
}
