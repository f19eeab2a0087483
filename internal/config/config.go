// Package config loads diskdetect settings from flags and the environment.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nhdewitt/diskdetect/internal/detector"
	"github.com/nhdewitt/diskdetect/internal/volume"
	"github.com/sirupsen/logrus"
)

// Scope selects which drives a run describes.
type Scope string

const (
	ScopeFixed Scope = "fixed"
	ScopeAll   Scope = "all"
)

// Format selects the report renderer.
type Format string

const (
	FormatAuto  Format = "auto"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Environment variables read by Load. Flags take precedence.
const (
	EnvStrategy = "DISKDETECT_STRATEGY"
	EnvFallback = "DISKDETECT_FALLBACK"
	EnvScope    = "DISKDETECT_SCOPE"
	EnvFormat   = "DISKDETECT_FORMAT"
	EnvLogLevel = "DISKDETECT_LOG_LEVEL"
	EnvEndpoint = "DISKDETECT_ENDPOINT"
)

// Config holds the runtime configuration
type Config struct {
	Strategy         detector.QueryStrategy
	UseFallbackQuery bool
	Scope            Scope
	Drive            byte // 0 means every drive
	Format           Format
	LogLevel         string
	// Endpoint, when set, receives the report as gzip-compressed JSON.
	Endpoint string
}

// Default mirrors detector.DefaultOptions with every drive of any kind.
func Default() Config {
	opts := detector.DefaultOptions()
	return Config{
		Strategy:         opts.Strategy,
		UseFallbackQuery: opts.UseFallbackQuery,
		Scope:            ScopeAll,
		Format:           FormatAuto,
		LogLevel:         "info",
	}
}

// Options returns the detector options for c.
func (c Config) Options() detector.Options {
	return detector.Options{Strategy: c.Strategy, UseFallbackQuery: c.UseFallbackQuery}
}

// ErrHelp is returned when -h or -help was given.
var ErrHelp = flag.ErrHelp

// Load parses args (without the program name). getenv supplies environment
// defaults; pass os.Getenv outside of tests. Usage output goes to usage.
func Load(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	cfg := Default()

	strategy := envOr(getenv, EnvStrategy, cfg.Strategy.String())
	fallback := cfg.UseFallbackQuery
	if v := envOr(getenv, EnvFallback, ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvFallback, err)
		}
		fallback = b
	}
	scope := envOr(getenv, EnvScope, string(cfg.Scope))
	format := envOr(getenv, EnvFormat, string(cfg.Format))
	level := envOr(getenv, EnvLogLevel, cfg.LogLevel)
	endpoint := envOr(getenv, EnvEndpoint, "")
	var drive string

	fs := flag.NewFlagSet("diskdetect", flag.ContinueOnError)
	if usage != nil {
		fs.SetOutput(usage)
	}
	fs.StringVar(&strategy, "strategy", strategy, "query strategy: seek-penalty or rotation-rate")
	fs.BoolVar(&fallback, "fallback", fallback, "fall back to seek-penalty when rotation-rate needs elevation")
	fs.StringVar(&scope, "scope", scope, "drives to describe: fixed or all")
	fs.StringVar(&drive, "drive", "", "describe a single drive letter, e.g. C")
	fs.StringVar(&format, "format", format, "output format: auto, table or json")
	fs.StringVar(&level, "log-level", level, "log level: debug, info, warn, error")
	fs.StringVar(&endpoint, "post", endpoint, "also POST the report to this http(s) URL")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var err error
	if cfg.Strategy, err = detector.ParseQueryStrategy(strategy); err != nil {
		return Config{}, err
	}
	cfg.UseFallbackQuery = fallback

	if cfg.Scope, err = parseScope(scope); err != nil {
		return Config{}, err
	}
	if cfg.Format, err = parseFormat(format); err != nil {
		return Config{}, err
	}

	if drive != "" {
		if cfg.Drive, err = volume.ParseLetter(drive); err != nil {
			return Config{}, fmt.Errorf("-drive: %w", err)
		}
	}

	if _, err := logrus.ParseLevel(level); err != nil {
		return Config{}, err
	}
	cfg.LogLevel = strings.ToLower(level)
	cfg.Endpoint = endpoint

	return cfg, nil
}

func envOr(getenv func(string) string, key, def string) string {
	if getenv == nil {
		return def
	}
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return def
}

var errScope = errors.New("scope must be fixed or all")

func parseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(s)) {
	case ScopeFixed:
		return ScopeFixed, nil
	case ScopeAll, "any":
		return ScopeAll, nil
	}
	return "", fmt.Errorf("%q: %w", s, errScope)
}

func parseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatAuto, FormatTable, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}
