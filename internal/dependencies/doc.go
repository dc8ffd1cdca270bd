// Package dependencies provides the registry of "requires" relations between
// skills.
//
// # Why Registry Exists
//
// Leveling needs to walk the prerequisite relation in both directions: down
// to find the skills without prerequisites, and up to find every skill that
// depends on something already placed. The Registry keeps one index per
// direction so both queries are a single map lookup.
//
// # Lifecycle
//
//  1. **Created** empty with New.
//  2. **Populated** with one AddRequirement call per observed edge.
//  3. **Queried** by the leveling engine. Edges are never removed.
//
// # Semantics
//
// Edges are not deduplicated and self-loops are not rejected: inserting the
// same edge twice records it twice in both indexes. Unknown identifiers query
// as an empty slice.
//
// The Registry is not safe for concurrent mutation. One owner builds it
// completely before anything reads from it.
package dependencies
