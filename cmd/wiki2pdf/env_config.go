package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-wiki2pdf/internal/config"
)

// envPrefix marks the environment variables read by wiki2pdf.
const envPrefix = "WIKI2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // WIKI2PDF_CONFIG: config file name or path
	Title      string        // WIKI2PDF_TITLE: document title
	AssetsDir  string        // WIKI2PDF_ASSETS_DIR: css/ and templates/ directory
	OutputDir  string        // WIKI2PDF_OUTPUT_DIR: output directory
	PageSize   string        // WIKI2PDF_PAGE_SIZE: a4, letter, legal
	Timeout    time.Duration // WIKI2PDF_TIMEOUT: PDF generation timeout
	Workers    int           // WIKI2PDF_WORKERS: parallel workers
	LogLevel   string        // WIKI2PDF_LOG_LEVEL: debug, info, warn, error
	LogFormat  string        // WIKI2PDF_LOG_FORMAT: pretty, json, text

	// Warnings collects unusable values; they are logged once the
	// logger exists.
	Warnings []string
}

// knownEnvVars lists valid WIKI2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"WIKI2PDF_CONFIG":     true,
	"WIKI2PDF_TITLE":      true,
	"WIKI2PDF_ASSETS_DIR": true,
	"WIKI2PDF_OUTPUT_DIR": true,
	"WIKI2PDF_PAGE_SIZE":  true,
	"WIKI2PDF_TIMEOUT":    true,
	"WIKI2PDF_WORKERS":    true,
	"WIKI2PDF_LOG_LEVEL":  true,
	"WIKI2PDF_LOG_FORMAT": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(deps *Dependencies) *envConfig {
	get := func(name string) string {
		v, _ := deps.LookupEnv(name)
		return strings.TrimSpace(v)
	}

	cfg := &envConfig{
		ConfigPath: get("WIKI2PDF_CONFIG"),
		Title:      get("WIKI2PDF_TITLE"),
		AssetsDir:  get("WIKI2PDF_ASSETS_DIR"),
		OutputDir:  get("WIKI2PDF_OUTPUT_DIR"),
		PageSize:   get("WIKI2PDF_PAGE_SIZE"),
		LogLevel:   get("WIKI2PDF_LOG_LEVEL"),
		LogFormat:  get("WIKI2PDF_LOG_FORMAT"),
	}

	if timeout := get("WIKI2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring WIKI2PDF_TIMEOUT=%q: want a positive duration", timeout))
		}
	}

	if workers := get("WIKI2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("ignoring WIKI2PDF_WORKERS=%q: want a positive integer", workers))
		}
	}

	cfg.Warnings = append(cfg.Warnings, unknownEnvVars(deps.Environ())...)
	return cfg
}

// unknownEnvVars reports unrecognized WIKI2PDF_* variables.
// Helps catch typos like WIKI2PDF_TITEL.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			unknown = append(unknown, fmt.Sprintf("unknown environment variable %s (typo?)", name))
		}
	}
	sort.Strings(unknown)
	return unknown
}

// applyEnvConfig applies environment variable values over the config file.
// Order: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Title != "" {
		cfg.Title = env.Title
	}
	if env.AssetsDir != "" {
		cfg.Assets.Dir = env.AssetsDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.PageSize != "" {
		cfg.Page.Size = env.PageSize
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
}
