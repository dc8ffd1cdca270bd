// Package leveling assigns skills to presentation levels from their
// prerequisite relations.
//
// Level 0 holds the skills without prerequisites. Every following level holds
// the skills that directly require something on the level below it. A skill
// reachable through chains of different lengths shows up on several of those
// raw levels; a second pass keeps only its highest occurrence, which is the
// length of its longest prerequisite chain.
//
// # Phases
//
//  1. **Propagation:** breadth-first, one level per iteration, each level
//     deduplicated and sorted ascending. Stops when a level comes out empty
//     or when the level ceiling (DefaultMaxLevel unless overridden) is reached.
//  2. **Collapse:** levels are walked from the top down; a skill already seen
//     on a higher level is removed from the current one. Levels that become
//     empty keep their number.
//
// The ceiling is what keeps cyclic input from propagating forever. By default
// cycles are not reported: they produce a truncated tree. WithCycleCheck turns
// cycles and truncation into errors.
//
// Skills whose prerequisites never get placed (dangling references, cycles
// without a root) are left out of the tree without an error. Callers that
// need completeness compare the input with Tree.Skills.
package leveling
