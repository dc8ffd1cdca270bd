package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/ctxlog"
	"github.com/specialistvlad/skilltree/internal/leveling"
	"github.com/specialistvlad/skilltree/internal/publish"
	"github.com/specialistvlad/skilltree/internal/render"
)

// Run executes the configured command.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "command", a.config.Command)

	var err error
	switch a.config.Command {
	case CommandExport:
		err = a.export(ctx)
	case CommandLevels:
		err = a.levels(ctx)
	case CommandServe:
		err = a.Serve(ctx)
	default:
		err = fmt.Errorf("unknown command %q", a.config.Command)
	}

	a.logger.Debug("App.Run method finished.")
	return err
}

// build fetches the skill set and computes its levels.
func (a *App) build(ctx context.Context) (*catalog.Prepared, *leveling.Tree, error) {
	p, err := catalog.Prepare(ctx, a.source, a.skillSetID, catalog.PrepareOptions{OwnerUID: a.config.OwnerUID})
	if err != nil {
		return nil, nil, err
	}

	opts := []leveling.Option{
		leveling.WithMaxLevel(a.config.MaxLevel),
		leveling.WithLogger(ctxlog.FromContext(ctx)),
	}
	if a.config.StrictCycles {
		opts = append(opts, leveling.WithCycleCheck())
	}
	tree, err := leveling.Compute(p.IDs(), p.Dependencies, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to level skill set %d: %w", a.skillSetID, err)
	}

	if tree.Truncated() {
		ctxlog.FromContext(ctx).Warn("Level ceiling reached, some skills are not placed.", "max_level", a.config.MaxLevel)
	}
	return p, tree, nil
}

func (a *App) export(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	p, tree, err := a.build(ctx)
	if err != nil {
		return err
	}

	var doc bytes.Buffer
	if err := render.Markdown(&doc, p, tree); err != nil {
		return err
	}

	if path := a.config.OutputPath; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		if err := os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
		logger.Info("Document written.", "path", path, "skills", len(p.Skills), "levels", tree.Depth())
	}

	if a.config.Publish {
		publisher, err := publish.New(a.config.Storage)
		if err != nil {
			return err
		}
		location, err := publisher.Upload(ctx, a.publishKey(), doc.Bytes(), render.MarkdownContentType)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.outW, location)
	}
	return nil
}

// publishKey names the uploaded object after the output file, or after the
// skill set when the document is only published.
func (a *App) publishKey() string {
	if a.config.OutputPath != "" {
		return filepath.Base(a.config.OutputPath)
	}
	return fmt.Sprintf("skillset-%d.md", a.skillSetID)
}

func (a *App) levels(ctx context.Context) error {
	p, tree, err := a.build(ctx)
	if err != nil {
		return err
	}

	if a.config.JSON {
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(newLevelsResponse(a.skillSetID, tree))
	}
	return render.Summary(a.outW, p, tree)
}

type levelsResponse struct {
	SkillSet  int64          `json:"skill_set"`
	Truncated bool           `json:"truncated"`
	Levels    *leveling.Tree `json:"levels"`
}

func newLevelsResponse(setID int64, tree *leveling.Tree) levelsResponse {
	return levelsResponse{SkillSet: setID, Truncated: tree.Truncated(), Levels: tree}
}
