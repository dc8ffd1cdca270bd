package hclcatalog

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks of a catalog file.
type fileRoot struct {
	SkillSets []*skillSetBlock `hcl:"skillset,block"`
	Skills    []*skillBlock    `hcl:"skill,block"`
}

type skillSetBlock struct {
	Label  string   `hcl:"label,label"`
	ID     int64    `hcl:"id"`
	Name   string   `hcl:"name,optional"`
	Skills []string `hcl:"skills,optional"`
}

type skillBlock struct {
	Label         string         `hcl:"label,label"`
	ID            int64          `hcl:"id"`
	Title         string         `hcl:"title"`
	Description   string         `hcl:"description,optional"`
	Goals         string         `hcl:"goals,optional"`
	Tags          []string       `hcl:"tags,optional"`
	Owner         *ownerBlock    `hcl:"owner,block"`
	Links         []*linkBlock   `hcl:"link,block"`
	Prerequisites hcl.Expression `hcl:"prerequisites,optional"`
}

type ownerBlock struct {
	UID       int64  `hcl:"uid"`
	FirstName string `hcl:"first_name,optional"`
	LastName  string `hcl:"last_name,optional"`
}

type linkBlock struct {
	Title string `hcl:"title"`
	URL   string `hcl:"url"`
}
