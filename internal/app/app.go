package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/ctxlog"
	"github.com/specialistvlad/skilltree/internal/hclcatalog"
	"github.com/specialistvlad/skilltree/internal/skilldisplay"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	source     catalog.Source
	skillSetID int64
}

// NewApp builds an App: it configures an isolated logger writing to logW and
// opens the catalog source. Command output goes to outW.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	source, setID, err := openSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Catalog source ready.", "source", cfg.Source, "skill_set", setID)

	return &App{
		outW:       outW,
		logger:     logger,
		config:     cfg,
		source:     source,
		skillSetID: setID,
	}, nil
}

// openSource creates the configured catalog source and resolves the skill
// set to work on.
func openSource(ctx context.Context, cfg *Config) (catalog.Source, int64, error) {
	switch cfg.Source {
	case SourceAPI:
		client, err := skilldisplay.NewClient(cfg.APIURL, skilldisplay.WithAPIKey(cfg.APIKey))
		if err != nil {
			return nil, 0, err
		}
		return client, cfg.SkillSetID, nil

	case SourceHCL:
		cat, err := hclcatalog.NewLoader().Load(ctx, cfg.CatalogPaths...)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to load catalog: %w", err)
		}
		ctxlog.FromContext(ctx).Info("Catalog loaded.", "files", len(cat.Files()), "skills", len(cat.SkillIDs()), "skill_sets", len(cat.SkillSetIDs()))
		if cfg.SkillSetSelected {
			return cat, cfg.SkillSetID, nil
		}
		setID, err := cat.DefaultSkillSetID()
		if err != nil {
			return nil, 0, err
		}
		return cat, setID, nil

	default:
		return nil, 0, fmt.Errorf("invalid source %q", cfg.Source)
	}
}

// SkillSetID returns the skill set the App works on.
func (a *App) SkillSetID() int64 {
	return a.skillSetID
}
