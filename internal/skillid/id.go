// internal/skillid/id.go
package skillid

import (
	"fmt"
	"slices"
)

// ID identifies a single skill.
type ID int64

// AnchorPrefix is the prefix of the anchor form of an ID, e.g. `skill_42`.
const AnchorPrefix = "skill_"

// String returns the decimal form of the ID.
func (id ID) String() string {
	return fmt.Sprintf("%d", int64(id))
}

// Anchor returns the document anchor for the ID.
func (id ID) Anchor() string {
	return AnchorPrefix + id.String()
}

// Compare orders two IDs ascending. It returns -1, 0 or +1.
func Compare(a, b ID) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Sort sorts ids ascending in place.
func Sort(ids []ID) {
	slices.Sort(ids)
}
