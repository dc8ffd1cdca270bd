package leveling

import (
	"bytes"
	"encoding/json"
	"slices"
	"strconv"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// Tree is the result of leveling: skills grouped by level, each skill on
// exactly one level. A Tree is immutable; accessors return copies.
type Tree struct {
	levels    [][]skillid.ID
	index     map[skillid.ID]int
	truncated bool
}

func newTree(levels [][]skillid.ID, truncated bool) *Tree {
	index := make(map[skillid.ID]int)
	for level, ids := range levels {
		for _, id := range ids {
			index[id] = level
		}
	}
	return &Tree{levels: levels, index: index, truncated: truncated}
}

// Levels returns a copy of all levels, indexed by level number.
func (t *Tree) Levels() [][]skillid.ID {
	out := make([][]skillid.ID, len(t.levels))
	for i, ids := range t.levels {
		out[i] = slices.Clone(ids)
		if out[i] == nil {
			out[i] = []skillid.ID{}
		}
	}
	return out
}

// Level returns the skills on level n in ascending order, or nil when n is
// out of range.
func (t *Tree) Level(n int) []skillid.ID {
	if n < 0 || n >= len(t.levels) {
		return nil
	}
	return append([]skillid.ID{}, t.levels[n]...)
}

// Depth returns the number of levels, empty ones included.
func (t *Tree) Depth() int {
	return len(t.levels)
}

// LevelOf reports the level a skill was placed on.
func (t *Tree) LevelOf(id skillid.ID) (int, bool) {
	level, ok := t.index[id]
	return level, ok
}

// Skills returns every placed skill, level by level.
func (t *Tree) Skills() []skillid.ID {
	out := make([]skillid.ID, 0, len(t.index))
	for _, ids := range t.levels {
		out = append(out, ids...)
	}
	return out
}

// Truncated reports whether propagation was stopped by the level ceiling
// while there were still skills to place.
func (t *Tree) Truncated() bool {
	return t.truncated
}

// MarshalJSON encodes the tree as an object keyed by level number, in level
// order: {"0":[1],"1":[2,3]}.
func (t *Tree) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for level, ids := range t.levels {
		if level > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(level)))
		buf.WriteByte(':')
		if ids == nil {
			ids = []skillid.ID{}
		}
		encoded, err := json.Marshal(ids)
		if err != nil {
			return nil, err
		}
		buf.Write(encoded)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
