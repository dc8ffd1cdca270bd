package skilldisplay

import (
	"github.com/samber/lo"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

type skillSetResponse struct {
	UID    int64  `json:"uid"`
	Name   string `json:"name"`
	Skills []struct {
		UID   int64  `json:"uid"`
		Title string `json:"title"`
	} `json:"skills"`
}

type ownerResponse struct {
	UID       int64  `json:"uid"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type skillResponse struct {
	UID         int64          `json:"uid"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Goals       string         `json:"goals"`
	Owner       *ownerResponse `json:"owner"`
	Links       []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"links"`
	Tags []struct {
		Title string `json:"title"`
	} `json:"tags"`
	Prerequisites []uidRef `json:"prerequisites"`
}

type uidRef struct {
	UID int64 `json:"uid"`
}

func (r *skillSetResponse) toModel() *catalog.SkillSet {
	set := &catalog.SkillSet{ID: r.UID, Name: r.Name}
	for _, s := range r.Skills {
		set.Skills = append(set.Skills, catalog.SkillSummary{ID: skillid.ID(s.UID), Title: s.Title})
	}
	return set
}

func (r *skillResponse) toModel() *catalog.Skill {
	s := &catalog.Skill{
		ID:          skillid.ID(r.UID),
		Title:       r.Title,
		Description: r.Description,
		Goals:       r.Goals,
	}
	if r.Owner != nil {
		s.Owner = &catalog.Owner{UID: r.Owner.UID, FirstName: r.Owner.FirstName, LastName: r.Owner.LastName}
	}
	for _, l := range r.Links {
		s.Links = append(s.Links, catalog.Link{Title: l.Title, URL: l.URL})
	}
	for _, t := range r.Tags {
		s.Tags = append(s.Tags, t.Title)
	}
	s.Prerequisites = lo.Map(r.Prerequisites, func(p uidRef, _ int) skillid.ID {
		return skillid.ID(p.UID)
	})
	return s
}
