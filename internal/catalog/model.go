package catalog

import (
	"strings"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// Owner is the person responsible for a skill.
type Owner struct {
	UID       int64
	FirstName string
	LastName  string
}

// FullName returns "First Last", trimmed.
func (o *Owner) FullName() string {
	if o == nil {
		return ""
	}
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

// Link is an external reference attached to a skill.
type Link struct {
	Title string
	URL   string
}

// Skill is the full record of a single skill.
type Skill struct {
	ID          skillid.ID
	Title       string
	Description string // HTML
	Goals       string // HTML
	Owner       *Owner // nil when the catalog does not know the owner
	Links       []Link
	Tags        []string
	// Prerequisites are the skills this skill requires, in catalog order.
	Prerequisites []skillid.ID
}

// SkillSummary is the entry of a skill inside a skill set listing.
type SkillSummary struct {
	ID    skillid.ID
	Title string
}

// SkillSet is a named collection of skills. It only lists the skills; the
// full records are fetched separately.
type SkillSet struct {
	ID     int64
	Name   string
	Skills []SkillSummary
}

// Clone returns a deep copy of the skill.
func (s *Skill) Clone() *Skill {
	if s == nil {
		return nil
	}
	c := *s
	if s.Owner != nil {
		owner := *s.Owner
		c.Owner = &owner
	}
	c.Links = append([]Link(nil), s.Links...)
	c.Tags = append([]string(nil), s.Tags...)
	c.Prerequisites = append([]skillid.ID(nil), s.Prerequisites...)
	return &c
}

// Clone returns a deep copy of the skill set.
func (s *SkillSet) Clone() *SkillSet {
	if s == nil {
		return nil
	}
	c := *s
	c.Skills = append([]SkillSummary(nil), s.Skills...)
	return &c
}
