package leveling

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// Dependencies is the query side of a requirement registry.
// dependencies.Registry implements it.
type Dependencies interface {
	// RequiredSkills returns the skills id directly requires.
	RequiredSkills(id skillid.ID) []skillid.ID
	// RequiringSkills returns the skills that directly require id.
	RequiringSkills(id skillid.ID) []skillid.ID
}

// New levels ids using deps with the default ceiling. It never fails.
func New(ids []skillid.ID, deps Dependencies) *Tree {
	tree, _ := Compute(ids, deps)
	return tree
}

// Compute levels ids using deps. Without WithCycleCheck the returned error is
// always nil.
func Compute(ids []skillid.ID, deps Dependencies, opts ...Option) (*Tree, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger

	if o.cycleCheck {
		if cycle := findCycle(ids, deps); cycle != nil {
			return nil, fmt.Errorf("%w: %s", ErrCircularDependency, formatPath(cycle))
		}
	}

	raw, truncated := groupByLevel(ids, deps, o.maxLevel)
	logger.Debug("Skills grouped by level.", "levels", len(raw), "truncated", truncated)

	levels := keepHighestLevelOnly(raw)
	tree := newTree(levels, truncated)
	logger.Debug("Duplicate skills removed from lower levels.", "placed", len(tree.index), "input", len(ids))

	if o.cycleCheck && truncated {
		return nil, fmt.Errorf("%w: propagation stopped at level %d", ErrLevelCeilingReached, o.maxLevel)
	}
	return tree, nil
}

// groupByLevel runs the propagation phase. A skill may appear on several
// levels of the result. The boolean reports whether the ceiling cut off a
// non-empty next level.
func groupByLevel(ids []skillid.ID, deps Dependencies, maxLevel int) ([][]skillid.ID, bool) {
	roots := lo.Filter(ids, func(id skillid.ID, _ int) bool {
		return len(deps.RequiredSkills(id)) == 0
	})
	current := sortedUnique(roots)
	levels := [][]skillid.ID{current}

	for level := 1; ; level++ {
		next := dependentsOf(current, deps)
		if len(next) == 0 {
			return levels, false
		}
		levels = append(levels, next)
		current = next

		if level >= maxLevel {
			return levels, len(dependentsOf(current, deps)) > 0
		}
	}
}

// dependentsOf returns every skill directly requiring one of frontier,
// deduplicated and sorted ascending.
func dependentsOf(frontier []skillid.ID, deps Dependencies) []skillid.ID {
	return sortedUnique(lo.FlatMap(frontier, func(id skillid.ID, _ int) []skillid.ID {
		return deps.RequiringSkills(id)
	}))
}

// keepHighestLevelOnly runs the collapse phase: walking from the top level
// down, each skill is kept only on the first (highest) level it is seen on.
func keepHighestLevelOnly(raw [][]skillid.ID) [][]skillid.ID {
	out := make([][]skillid.ID, len(raw))
	placed := make(map[skillid.ID]struct{})

	for level := len(raw) - 1; level >= 0; level-- {
		kept := make([]skillid.ID, 0, len(raw[level]))
		for _, id := range raw[level] {
			if _, higher := placed[id]; !higher {
				kept = append(kept, id)
			}
		}
		for _, id := range kept {
			placed[id] = struct{}{}
		}
		out[level] = kept
	}
	return out
}

// findCycle walks prerequisites depth-first from every input skill and
// returns the first cycle found as a path that starts and ends with the same
// skill, or nil.
func findCycle(ids []skillid.ID, deps Dependencies) []skillid.ID {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[skillid.ID]int)
	var stack []skillid.ID

	var visit func(id skillid.ID) []skillid.ID
	visit = func(id skillid.ID) []skillid.ID {
		state[id] = visiting
		stack = append(stack, id)
		for _, req := range deps.RequiredSkills(id) {
			switch state[req] {
			case visiting:
				start := slices.Index(stack, req)
				return append(slices.Clone(stack[start:]), req)
			case unvisited:
				if cycle := visit(req); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return nil
	}

	for _, id := range sortedUnique(ids) {
		if state[id] == unvisited {
			if cycle := visit(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

func sortedUnique(ids []skillid.ID) []skillid.ID {
	out := lo.Uniq(ids)
	if out == nil {
		out = []skillid.ID{}
	}
	slices.Sort(out)
	return out
}

func formatPath(path []skillid.ID) string {
	return strings.Join(lo.Map(path, func(id skillid.ID, _ int) string {
		return id.String()
	}), " -> ")
}
