package catalog

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/specialistvlad/skilltree/internal/skillid"
)

// SortByTitle orders skills by title the way people read them: case does not
// matter and digit runs compare by value ("Step 2" before "Step 10"). Equal
// titles fall back to the ID so the order is total.
func SortByTitle(skills []*Skill) {
	c := collate.New(language.Und, collate.IgnoreCase, collate.Numeric)
	slices.SortStableFunc(skills, func(a, b *Skill) int {
		if r := c.CompareString(a.Title, b.Title); r != 0 {
			return r
		}
		return skillid.Compare(a.ID, b.ID)
	})
}
