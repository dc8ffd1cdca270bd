package dependencies

import (
	"slices"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// Registry is a bidirectional adjacency index over requirement edges.
type Registry struct {
	required  map[skillid.ID][]skillid.ID // Key: requiring skill, Value: skills it requires
	requiring map[skillid.ID][]skillid.ID // Key: required skill, Value: skills requiring it
	edges     int
}

// New creates a new, empty registry.
func New() *Registry {
	return &Registry{
		required:  make(map[skillid.ID][]skillid.ID),
		requiring: make(map[skillid.ID][]skillid.ID),
	}
}

// AddRequirement records that requiringSkill cannot be placed below
// requiredSkill.
func (r *Registry) AddRequirement(requiringSkill, requiredSkill skillid.ID) {
	r.required[requiringSkill] = append(r.required[requiringSkill], requiredSkill)
	r.requiring[requiredSkill] = append(r.requiring[requiredSkill], requiringSkill)
	r.edges++
}

// RequiredSkills returns the skills the given skill directly requires, in the
// order they were added.
func (r *Registry) RequiredSkills(requiringSkill skillid.ID) []skillid.ID {
	return cloneOrEmpty(r.required[requiringSkill])
}

// RequiringSkills returns the skills that directly require the given skill,
// in the order they were added.
func (r *Registry) RequiringSkills(requiredSkill skillid.ID) []skillid.ID {
	return cloneOrEmpty(r.requiring[requiredSkill])
}

// Len returns the number of edges added, duplicates included.
func (r *Registry) Len() int {
	return r.edges
}

func cloneOrEmpty(ids []skillid.ID) []skillid.ID {
	if len(ids) == 0 {
		return []skillid.ID{}
	}
	return slices.Clone(ids)
}
