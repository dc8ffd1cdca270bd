package hclcatalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/samber/lo"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/ctxlog"
	"github.com/specialistvlad/skilltree/internal/fsutil"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

// ErrSkillSetAmbiguous is returned by DefaultSkillSetID when the catalog
// holds more than one skill set.
var ErrSkillSetAmbiguous = errors.New("catalog defines more than one skill set")

// DefaultSkillSetName names the skill set synthesized for catalogs without a
// `skillset` block.
const DefaultSkillSetName = "Skills"

// Catalog is a loaded HCL catalog. It implements catalog.Source.
type Catalog struct {
	*catalog.MemorySource
	files []string
}

// Files returns the files the catalog was loaded from.
func (c *Catalog) Files() []string {
	return append([]string(nil), c.files...)
}

// DefaultSkillSetID returns the ID of the only skill set in the catalog.
func (c *Catalog) DefaultSkillSetID() (int64, error) {
	ids := c.SkillSetIDs()
	if len(ids) != 1 {
		return 0, fmt.Errorf("%w: %v; select one by id", ErrSkillSetAmbiguous, ids)
	}
	return ids[0], nil
}

// Loader reads catalogs from HCL files.
type Loader struct{}

// NewLoader creates a new HCL catalog loader.
func NewLoader() *Loader {
	return &Loader{}
}

type decodedSkill struct {
	file  string
	block *skillBlock
}

type decodedSkillSet struct {
	file  string
	block *skillSetBlock
}

// Load parses every .hcl file under paths and builds the catalog.
func (l *Loader) Load(ctx context.Context, paths ...string) (*Catalog, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL catalog loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	var skills []*decodedSkill
	var sets []*decodedSkillSet
	parser := hclparse.NewParser()
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		for _, b := range root.Skills {
			skills = append(skills, &decodedSkill{file: file, block: b})
		}
		for _, b := range root.SkillSets {
			sets = append(sets, &decodedSkillSet{file: file, block: b})
		}
	}

	if err := checkUnique(skills); err != nil {
		return nil, err
	}

	src := catalog.NewMemorySource()
	evalCtx := evalContext(skills)
	for _, s := range skills {
		translated, err := translateSkill(s, evalCtx)
		if err != nil {
			return nil, err
		}
		src.AddSkill(translated)
	}

	byLabel := lo.SliceToMap(skills, func(s *decodedSkill) (string, *skillBlock) {
		return s.block.Label, s.block
	})
	if len(sets) == 0 {
		src.AddSkillSet(&catalog.SkillSet{
			Name:   DefaultSkillSetName,
			Skills: summaries(lo.Map(skills, func(s *decodedSkill, _ int) *skillBlock { return s.block })),
		})
	}
	seenSets := make(map[int64]string)
	for _, set := range sets {
		if other, dup := seenSets[set.block.ID]; dup {
			return nil, fmt.Errorf("skill set id %d in %s is already used by skill set %q", set.block.ID, set.file, other)
		}
		seenSets[set.block.ID] = set.block.Label

		translated, err := translateSkillSet(set, byLabel, skills)
		if err != nil {
			return nil, err
		}
		src.AddSkillSet(translated)
	}

	logger.Debug("HCL catalog loading complete.", "skills", len(skills), "skill_sets", len(sets))
	return &Catalog{MemorySource: src, files: files}, nil
}

func checkUnique(skills []*decodedSkill) error {
	labels := make(map[string]string)
	ids := make(map[int64]string)
	for _, s := range skills {
		if file, dup := labels[s.block.Label]; dup {
			return fmt.Errorf("skill %q in %s is already declared in %s", s.block.Label, s.file, file)
		}
		labels[s.block.Label] = s.file

		if other, dup := ids[s.block.ID]; dup {
			return fmt.Errorf("skill id %d of %q in %s is already used by %q", s.block.ID, s.block.Label, s.file, other)
		}
		ids[s.block.ID] = s.block.Label
	}
	return nil
}

// translateSkill converts a decoded skill block into the catalog model.
func translateSkill(s *decodedSkill, evalCtx *hcl.EvalContext) (*catalog.Skill, error) {
	b := s.block
	prerequisites, err := prerequisiteIDs(b.Prerequisites, evalCtx)
	if err != nil {
		return nil, fmt.Errorf("in %s, skill %q: %w", s.file, b.Label, err)
	}

	out := &catalog.Skill{
		ID:            skillid.ID(b.ID),
		Title:         b.Title,
		Description:   strings.TrimSpace(b.Description),
		Goals:         strings.TrimSpace(b.Goals),
		Tags:          b.Tags,
		Prerequisites: prerequisites,
	}
	if b.Owner != nil {
		out.Owner = &catalog.Owner{
			UID:       b.Owner.UID,
			FirstName: b.Owner.FirstName,
			LastName:  b.Owner.LastName,
		}
	}
	for _, link := range b.Links {
		out.Links = append(out.Links, catalog.Link{Title: link.Title, URL: link.URL})
	}
	return out, nil
}

// translateSkillSet resolves the skill labels of a set. An empty list means
// every skill of the catalog.
func translateSkillSet(set *decodedSkillSet, byLabel map[string]*skillBlock, all []*decodedSkill) (*catalog.SkillSet, error) {
	b := set.block
	name := b.Name
	if name == "" {
		name = b.Label
	}

	if len(b.Skills) == 0 {
		return &catalog.SkillSet{
			ID:     b.ID,
			Name:   name,
			Skills: summaries(lo.Map(all, func(s *decodedSkill, _ int) *skillBlock { return s.block })),
		}, nil
	}

	blocks := make([]*skillBlock, 0, len(b.Skills))
	for _, label := range b.Skills {
		sb, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("in %s, skill set %q: unknown skill %q: %w", set.file, b.Label, label, catalog.ErrNotFound)
		}
		blocks = append(blocks, sb)
	}
	return &catalog.SkillSet{ID: b.ID, Name: name, Skills: summaries(blocks)}, nil
}

func summaries(blocks []*skillBlock) []catalog.SkillSummary {
	return lo.Map(blocks, func(b *skillBlock, _ int) catalog.SkillSummary {
		return catalog.SkillSummary{ID: skillid.ID(b.ID), Title: b.Title}
	})
}
