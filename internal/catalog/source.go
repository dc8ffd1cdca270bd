package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// ErrNotFound is returned (wrapped) by sources when a skill or skill set does
// not exist.
var ErrNotFound = errors.New("not found")

// Source provides skill sets and skill records.
//
// Implementations must be safe for concurrent use; serve mode queries the
// same source from several requests at once.
type Source interface {
	// SkillSet returns the skill set with the given ID.
	SkillSet(ctx context.Context, id int64) (*SkillSet, error)
	// Skill returns the full record of a single skill.
	Skill(ctx context.Context, id skillid.ID) (*Skill, error)
}

// MemorySource is a Source kept entirely in memory.
type MemorySource struct {
	mu     sync.RWMutex
	sets   map[int64]*SkillSet
	skills map[skillid.ID]*Skill
}

// NewMemorySource creates a new, empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		sets:   make(map[int64]*SkillSet),
		skills: make(map[skillid.ID]*Skill),
	}
}

// AddSkill stores a skill, replacing any skill with the same ID.
func (m *MemorySource) AddSkill(s *Skill) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[s.ID] = s.Clone()
}

// AddSkillSet stores a skill set, replacing any set with the same ID.
func (m *MemorySource) AddSkillSet(set *SkillSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets[set.ID] = set.Clone()
}

// SkillSet implements Source.
func (m *MemorySource) SkillSet(ctx context.Context, id int64) (*SkillSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	set, ok := m.sets[id]
	if !ok {
		return nil, fmt.Errorf("skill set %d: %w", id, ErrNotFound)
	}
	return set.Clone(), nil
}

// Skill implements Source.
func (m *MemorySource) Skill(ctx context.Context, id skillid.ID) (*Skill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.skills[id]
	if !ok {
		return nil, fmt.Errorf("skill %d: %w", id, ErrNotFound)
	}
	return s.Clone(), nil
}

// SkillSetIDs returns the IDs of all stored skill sets in ascending order.
func (m *MemorySource) SkillSetIDs() []int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.sets))
	for id := range m.sets {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// SkillIDs returns the IDs of all stored skills in ascending order.
func (m *MemorySource) SkillIDs() []skillid.ID {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]skillid.ID, 0, len(m.skills))
	for id := range m.skills {
		ids = append(ids, id)
	}
	skillid.Sort(ids)
	return ids
}
