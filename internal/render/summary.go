package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/leveling"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

var (
	levelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#005f87", Dark: "#59c2ff"})

	idStyle = lipgloss.NewStyle().
		Width(8).
		Align(lipgloss.Right).
		Foreground(lipgloss.Color("8"))

	emptyStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("8"))

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
)

// Summary writes a compact, human-readable listing of the levels.
func Summary(w io.Writer, p *catalog.Prepared, tree *leveling.Tree) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%d skills, %d levels)\n", p.SkillSet.Name, len(p.Skills), tree.Depth())
	for n, ids := range tree.Levels() {
		b.WriteString(levelStyle.Render(fmt.Sprintf("Level %d", n)))
		b.WriteByte('\n')
		if len(ids) == 0 {
			b.WriteString(emptyStyle.Render("        (empty)"))
			b.WriteByte('\n')
			continue
		}
		for _, id := range ids {
			writeRow(&b, p, id)
		}
	}

	var unplaced []skillid.ID
	for _, s := range p.Skills {
		if _, ok := tree.LevelOf(s.ID); !ok {
			unplaced = append(unplaced, s.ID)
		}
	}
	if len(unplaced) > 0 {
		b.WriteString(levelStyle.Render("Unplaced"))
		b.WriteByte('\n')
		for _, id := range unplaced {
			writeRow(&b, p, id)
		}
	}

	if tree.Truncated() {
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning: stopped at level %d, deeper skills are unplaced", tree.Depth()-1)))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, p *catalog.Prepared, id skillid.ID) {
	title := "skill " + id.String()
	if s, ok := p.Lookup(id); ok {
		title = s.Title
	}
	fmt.Fprintf(b, "%s  %s\n", idStyle.Render(id.String()), title)
}
