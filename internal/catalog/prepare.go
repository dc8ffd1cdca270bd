package catalog

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/specialistvlad/skilltree/internal/ctxlog"
	"github.com/specialistvlad/skilltree/internal/dependencies"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

// PrepareOptions controls which skills of a set end up in the export.
type PrepareOptions struct {
	// OwnerUID keeps only skills owned by this user. Zero disables the filter.
	OwnerUID int64
}

// Prepared is a skill set ready for leveling and rendering.
type Prepared struct {
	SkillSet *SkillSet
	// Skills holds the full records in title order.
	Skills []*Skill
	// Dependencies has one requirement per prerequisite of a kept skill.
	Dependencies *dependencies.Registry

	byID map[skillid.ID]*Skill
}

// IDs returns the IDs of the prepared skills in title order.
func (p *Prepared) IDs() []skillid.ID {
	return lo.Map(p.Skills, func(s *Skill, _ int) skillid.ID {
		return s.ID
	})
}

// Lookup returns the prepared skill with the given ID.
func (p *Prepared) Lookup(id skillid.ID) (*Skill, bool) {
	s, ok := p.byID[id]
	return s, ok
}

// Prepare fetches a skill set and the full record of each of its skills,
// orders them by title and records their prerequisites.
//
// A skill listed more than once is fetched and kept once. With an owner
// filter, skills of other owners are dropped entirely and skills without an
// owner are kept without their prerequisites, so they end up on level 0.
func Prepare(ctx context.Context, src Source, setID int64, opts PrepareOptions) (*Prepared, error) {
	logger := ctxlog.FromContext(ctx)

	set, err := src.SkillSet(ctx, setID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch skill set %d: %w", setID, err)
	}
	logger.Debug("Skill set fetched.", "skill_set", set.ID, "name", set.Name, "count", len(set.Skills))

	skills := make([]*Skill, 0, len(set.Skills))
	seen := make(map[skillid.ID]struct{}, len(set.Skills))
	for _, summary := range set.Skills {
		if _, dup := seen[summary.ID]; dup {
			logger.Warn("Skill listed twice in skill set.", "skill_set", set.ID, "skill_id", summary.ID)
			continue
		}
		seen[summary.ID] = struct{}{}
		s, err := src.Skill(ctx, summary.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch skill %d: %w", summary.ID, err)
		}
		skills = append(skills, s)
	}
	SortByTitle(skills)

	p := &Prepared{
		SkillSet:     set,
		Skills:       make([]*Skill, 0, len(skills)),
		Dependencies: dependencies.New(),
		byID:         make(map[skillid.ID]*Skill, len(skills)),
	}
	for _, s := range skills {
		if s.Owner == nil {
			logger.Warn("Skill does not have an owner.", "skill_id", s.ID, "title", s.Title)
			if opts.OwnerUID != 0 {
				p.add(s)
				continue
			}
		} else if opts.OwnerUID != 0 && s.Owner.UID != opts.OwnerUID {
			logger.Debug("Skill dropped, owned by someone else.", "skill_id", s.ID, "owner_uid", s.Owner.UID)
			continue
		}
		for _, required := range s.Prerequisites {
			p.Dependencies.AddRequirement(s.ID, required)
		}
		p.add(s)
	}

	logger.Debug("Skill set prepared.", "skills", len(p.Skills), "requirements", p.Dependencies.Len())
	return p, nil
}

func (p *Prepared) add(s *Skill) {
	p.Skills = append(p.Skills, s)
	p.byID[s.ID] = s
}
