package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/skilltree/internal/publish"
)

// Command selects what Run does.
type Command string

const (
	CommandExport Command = "export"
	CommandLevels Command = "levels"
	CommandServe  Command = "serve"
)

// Catalog sources.
const (
	SourceHCL = "hcl"
	SourceAPI = "api"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Command Command

	Source       string
	CatalogPaths []string // hcl files or directories
	APIURL       string
	APIKey       string

	SkillSetID       int64
	SkillSetSelected bool // false lets an HCL catalog pick its only set
	OwnerUID         int64

	MaxLevel     int
	StrictCycles bool

	OutputPath string
	Publish    bool
	Storage    publish.Config

	JSON bool
	Port int

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	switch cfg.Command {
	case CommandExport, CommandLevels, CommandServe:
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	switch cfg.Source {
	case SourceHCL:
		if len(cfg.CatalogPaths) == 0 {
			return nil, errors.New("a catalog path is required when the source is 'hcl'")
		}
	case SourceAPI:
		if cfg.APIURL == "" {
			return nil, errors.New("an API URL is required when the source is 'api'")
		}
		if !cfg.SkillSetSelected {
			return nil, errors.New("a skill set id is required when the source is 'api'")
		}
	default:
		return nil, fmt.Errorf("invalid source %q: must be 'hcl' or 'api'", cfg.Source)
	}

	if cfg.MaxLevel < 1 {
		return nil, fmt.Errorf("invalid max level %d: must be at least 1", cfg.MaxLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	switch cfg.Command {
	case CommandExport:
		if cfg.OutputPath == "" && !cfg.Publish {
			return nil, errors.New("export needs an output file or --publish")
		}
		if cfg.Publish && !cfg.Storage.Enabled() {
			return nil, fmt.Errorf("cannot publish: %w (set SKILLTREE_S3_ENDPOINT and SKILLTREE_S3_BUCKET)", publish.ErrNotConfigured)
		}
	case CommandServe:
		if cfg.Port < 1 || cfg.Port > 65535 {
			return nil, fmt.Errorf("invalid port %d", cfg.Port)
		}
	}

	cfg.CatalogPaths = append([]string(nil), cfg.CatalogPaths...)
	return &cfg, nil
}
